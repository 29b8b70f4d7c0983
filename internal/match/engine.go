package match

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/tradewise-kr/buyerscout/internal/config"
	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/normalize"
	"github.com/tradewise-kr/buyerscout/internal/tabular"
)

// PathResolver locates a dataset file by its configured filename.
type PathResolver interface {
	Resolve(filename string) (string, bool)
}

// RecordCache is the optional persistence layer consulted before re-reading
// source files. Implementations decide freshness from the stored import
// timestamp.
type RecordCache interface {
	CachedRecords(ctx context.Context, source string, ttl time.Duration) ([]model.BuyerRecord, bool)
	StoreRecords(ctx context.Context, status model.SourceStatus, records []model.BuyerRecord) error
}

// Engine runs the full buyer matching pipeline: load → score → filter →
// dedupe → rank → truncate. One Match call is one synchronous pipeline run
// over an immutable snapshot of the sources; there is no cross-run state.
type Engine struct {
	resolver PathResolver
	cache    RecordCache
	scorer   *Scorer
	sources  []config.Source
	weights  map[string]int
	cacheTTL time.Duration
	maxHits  int
}

// NewEngine creates a matching engine. cache may be nil, in which case every
// run re-reads the source files.
func NewEngine(cfg *config.Config, resolver PathResolver, cache RecordCache) *Engine {
	return &Engine{
		resolver: resolver,
		cache:    cache,
		scorer:   NewScorer(),
		sources:  cfg.Sources,
		weights:  cfg.SourceWeights(),
		cacheTTL: cfg.CacheTTL,
		maxHits:  cfg.MaxResults,
	}
}

// Result is the outcome of one match run.
type Result struct {
	Buyers   []model.DisplayBuyer
	Statuses []model.SourceStatus
	Scanned  int
}

// Match executes the pipeline for one query. Per-source failures are
// reported in the result statuses and never abort the run; an empty result
// list means no candidate cleared the threshold, not an error.
func (e *Engine) Match(ctx context.Context, query model.MatchQuery) (*Result, error) {
	if query.Industry != "" && !IsKnownIndustry(query.Industry) {
		return nil, fmt.Errorf("unknown industry %q", query.Industry)
	}
	if query.SourceWeights == nil {
		query.SourceWeights = e.weights
	}
	if query.MaxResults <= 0 {
		query.MaxResults = e.maxHits
	}

	records, statuses := e.LoadAll(ctx)

	threshold := Threshold(query)
	var candidates []model.ScoredCandidate
	for _, rec := range records {
		score := e.scorer.Score(rec, query)
		if score < threshold {
			continue
		}
		candidates = append(candidates, model.ScoredCandidate{
			Record:         rec,
			MatchScore:     score,
			Industry:       query.Industry,
			CountryTargets: query.Countries,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	candidates = Dedupe(candidates)
	if len(candidates) > query.MaxResults {
		candidates = candidates[:query.MaxResults]
	}

	buyers := make([]model.DisplayBuyer, 0, len(candidates))
	for _, c := range candidates {
		buyers = append(buyers, Display(c))
	}

	slog.Info("Match run complete",
		"records_scanned", len(records),
		"threshold", threshold,
		"candidates", len(buyers))

	return &Result{
		Buyers:   buyers,
		Statuses: statuses,
		Scanned:  len(records),
	}, nil
}

// LoadAll loads and normalizes every configured source, consulting the
// record cache first when one is available.
func (e *Engine) LoadAll(ctx context.Context) ([]model.BuyerRecord, []model.SourceStatus) {
	var all []model.BuyerRecord
	statuses := make([]model.SourceStatus, 0, len(e.sources))

	for _, src := range e.sources {
		records, status := e.loadSource(ctx, src)
		all = append(all, records...)
		statuses = append(statuses, status)
	}

	return all, statuses
}

// loadSource loads one source: cache hit, or file read + detect + normalize.
func (e *Engine) loadSource(ctx context.Context, src config.Source) ([]model.BuyerRecord, model.SourceStatus) {
	if e.cache != nil {
		if records, ok := e.cache.CachedRecords(ctx, src.Name, e.cacheTTL); ok {
			return records, model.SourceStatus{
				Source: src.Name,
				Status: model.StatusOK,
				Detail: "cache",
				Rows:   len(records),
			}
		}
	}

	path, ok := e.resolver.Resolve(src.Filename)
	if !ok {
		slog.Warn("Source file not found, skipping",
			"source", src.Name,
			"filename", src.Filename)
		return nil, model.SourceStatus{
			Source: src.Name,
			Status: model.StatusMissing,
			Detail: "path not resolved",
		}
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from configured data dirs
	if err != nil {
		slog.Warn("Failed to read source file, skipping",
			"source", src.Name,
			"path", path,
			"error", err)
		return nil, model.SourceStatus{
			Source: src.Name,
			Status: model.StatusFailed,
			Detail: err.Error(),
			Path:   path,
		}
	}

	table, det := tabular.ReadTable(raw)
	records := normalize.Records(table, src.Name)

	status := model.SourceStatus{
		Source:    src.Name,
		Status:    model.StatusOK,
		Path:      path,
		Encoding:  det.Encoding,
		Delimiter: string(det.Delimiter),
		Rows:      len(records),
		Columns:   table.Columns(),
	}

	if e.cache != nil {
		if err := e.cache.StoreRecords(ctx, status, records); err != nil {
			slog.Warn("Failed to cache source records",
				"source", src.Name,
				"error", err)
		}
	}

	return records, status
}
