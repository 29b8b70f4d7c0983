package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tradewise-kr/buyerscout/internal/cli"
	"github.com/tradewise-kr/buyerscout/internal/common"
	"github.com/tradewise-kr/buyerscout/internal/config"
	"github.com/tradewise-kr/buyerscout/internal/discovery"
	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/normalize"
	"github.com/tradewise-kr/buyerscout/internal/tabular"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the configured buyer datasets into the local database",
		Long: `Read every configured dataset CSV, normalize the rows into buyer records
and store them in the local SQLite database. Subsequent match runs within
the cache TTL use the stored records instead of re-reading the files.

Examples:
  # Import everything found under the data dirs
  buyerscout import

  # Re-import a single source
  buyerscout import --source kotra_overseas_buyers_20240829`,
		RunE: runImport,
	}

	cmd.Flags().StringP("source", "s", "", "import only this source")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	only, _ := cmd.Flags().GetString("source")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sources := cfg.Sources
	if only != "" {
		src, ok := cfg.FindSource(only)
		if !ok {
			return fmt.Errorf("unknown source %q", only)
		}
		sources = []config.Source{src}
	}

	finder := discovery.NewFinder(cfg.DataDirs)

	bar := progressbar.NewOptions(len(sources),
		progressbar.OptionSetDescription("importing datasets"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var statuses []model.SourceStatus
	imported := 0

	for _, src := range sources {
		status := importSource(cmd, store, finder, src)
		statuses = append(statuses, status)
		if status.Status == model.StatusOK {
			imported += status.Rows
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Println()
	for _, st := range statuses {
		fmt.Println(formatStatus(st))
	}

	// A bulk import tolerates per-source failures; an explicitly requested
	// source that cannot be imported is an error.
	if only != "" {
		if err := statusErr(statuses[0]); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d buyer records imported", imported)))

	return nil
}

// statusErr converts a non-ok source status into its sentinel error.
func statusErr(st model.SourceStatus) error {
	switch st.Status {
	case model.StatusMissing:
		return common.NewUserError(
			fmt.Sprintf("source %s: %s", st.Source, st.Detail), common.ErrSourceMissing)
	case model.StatusFailed:
		return common.NewUserError(
			fmt.Sprintf("source %s: %s", st.Source, st.Detail), common.ErrSourceFailed)
	}
	return nil
}

// importSource reads, normalizes and stores one dataset. Failures are local
// to the source: they surface in its status and never abort the import.
func importSource(cmd *cobra.Command, store recordStore, finder *discovery.Finder, src config.Source) model.SourceStatus {
	path, ok := finder.Resolve(src.Filename)
	if !ok {
		status := model.SourceStatus{
			Source: src.Name,
			Status: model.StatusMissing,
			Detail: "path not resolved",
		}
		_ = store.StoreRecords(cmd.Context(), status, nil)
		return status
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from configured data dirs
	if err != nil {
		status := model.SourceStatus{
			Source: src.Name,
			Status: model.StatusFailed,
			Detail: err.Error(),
			Path:   path,
		}
		_ = store.StoreRecords(cmd.Context(), status, nil)
		return status
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

	if err := store.StoreRecords(cmd.Context(), status, records); err != nil {
		status.Status = model.StatusFailed
		status.Detail = err.Error()
	}

	return status
}

// recordStore is the subset of storage the import path needs.
type recordStore interface {
	StoreRecords(ctx context.Context, status model.SourceStatus, records []model.BuyerRecord) error
}
