package match

import (
	"strings"
	"time"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

// Score bounds and filter thresholds.
const (
	MinScore = -999
	MaxScore = 100

	// ThresholdWithHS applies when the query carries an HS code; the extra
	// +45 signal justifies a stricter cut.
	ThresholdWithHS = 35
	// ThresholdDefault applies when no HS code was supplied.
	ThresholdDefault = 20
)

// Scorer computes match scores for buyer records. The clock is injectable so
// the recency bonus is testable.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a scorer using the wall clock.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// NewScorerAt creates a scorer with a fixed notion of "now".
func NewScorerAt(now time.Time) *Scorer {
	return &Scorer{now: func() time.Time { return now }}
}

// Score computes the additive relevance score of a record against a query,
// clamped to [MinScore, MaxScore]. All text comparisons are case-insensitive
// substring checks. The recency and source-weight terms influence ranking
// only and are never surfaced to the user.
func (s *Scorer) Score(rec model.BuyerRecord, query model.MatchQuery) int {
	score := 0

	product := strings.ToLower(rec.ProductText)
	company := strings.ToLower(rec.CompanyName)
	hs := strings.ReplaceAll(rec.HSCode, " ", "")
	country := strings.ToLower(rec.Country)

	if keywords := IndustryKeywords[query.Industry]; len(keywords) > 0 {
		if containsAny(product, keywords) {
			score += 30
		}
		if containsAny(company, keywords) {
			score += 10
		}
	}

	if queryHS := strings.ReplaceAll(query.HSCode, " ", ""); queryHS != "" {
		if strings.Contains(hs, queryHS) {
			score += 45
		}
	}

	if len(query.Countries) > 0 {
		hit := false
		for _, c := range query.Countries {
			if c != "" && strings.Contains(country, strings.ToLower(c)) {
				hit = true
				break
			}
		}
		if hit {
			score += 20
		} else {
			score -= 15
		}
	}

	if rec.Email != "" {
		score += 20
	}
	if rec.ContactPerson != "" {
		score += 8
	}
	if rec.Phone != "" {
		score += 6
	}
	if rec.Website != "" {
		score += 6
	}

	// Forces exclusion via the threshold but does not short-circuit the
	// remaining additive terms.
	if query.RequireEmail && rec.Email == "" {
		score -= 999
	}

	if rec.Date != nil {
		daysAgo := int(s.now().Sub(*rec.Date).Hours() / 24)
		switch {
		case daysAgo <= 90:
			score += 10
		case daysAgo <= 365:
			score += 5
		}
	}

	score += query.SourceWeights[rec.Source]

	return clamp(score, MinScore, MaxScore)
}

// Threshold returns the minimum score a candidate must reach for the query.
func Threshold(query model.MatchQuery) int {
	if strings.TrimSpace(query.HSCode) != "" {
		return ThresholdWithHS
	}
	return ThresholdDefault
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
