package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradewise-kr/buyerscout/internal/cli"
	"github.com/tradewise-kr/buyerscout/internal/common"
	"github.com/tradewise-kr/buyerscout/internal/config"
	"github.com/tradewise-kr/buyerscout/internal/discovery"
	"github.com/tradewise-kr/buyerscout/internal/match"
)

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show the configured datasets and their load status",
		RunE:  runSources,
	}

	cmd.Flags().Bool("imported", false, "show the status recorded by the last import instead of probing files")

	return cmd
}

func runSources(cmd *cobra.Command, _ []string) error {
	imported, _ := cmd.Flags().GetBool("imported")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	fmt.Println(cli.FormatTitle("Buyer datasets"))

	if imported {
		store, err := openStorage(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		statuses, err := store.SourceImports(ctx)
		if err != nil {
			return err
		}
		if len(statuses) == 0 {
			return common.NewUserError("no imports recorded yet; run 'buyerscout import' first", common.ErrNoRecords)
		}
		for _, st := range statuses {
			fmt.Println(formatStatus(st))
		}
		return nil
	}

	// Probe the files directly, bypassing the cache.
	engine := match.NewEngine(cfg, discovery.NewFinder(cfg.DataDirs), nil)
	records, statuses := engine.LoadAll(ctx)

	for _, st := range statuses {
		fmt.Println(formatStatus(st))
	}
	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d buyer records across %d datasets", len(records), len(cfg.Sources))))

	return nil
}
