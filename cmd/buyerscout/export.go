package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tradewise-kr/buyerscout/internal/cli"
	"github.com/tradewise-kr/buyerscout/internal/common"
	"github.com/tradewise-kr/buyerscout/internal/config"
	"github.com/tradewise-kr/buyerscout/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the latest match run to Google Sheets",
		Long: `Write the candidates of the most recent 'buyerscout match' run to a Google
Sheets spreadsheet. Authentication uses either a service account key or
OAuth2 refresh-token credentials from the config file
(sheets.client_id / sheets.client_secret / sheets.refresh_token or
sheets.service_account_path).`,
		RunE: runExport,
	}

	cmd.Flags().String("spreadsheet-id", "", "write into this spreadsheet instead of creating one")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	spreadsheetID, _ := cmd.Flags().GetString("spreadsheet-id")

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

	run, err := store.LatestMatchRun(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError("no match run to export; run 'buyerscout match' first", nil)
	}
	if err != nil {
		return err
	}
	if len(run.Buyers) == 0 {
		return common.NewUserError("the latest match run had no results; nothing to export", common.ErrNoResults)
	}

	sheetsCfg, err := sheets.LoadConfig()
	if err != nil {
		return common.NewUserError("Google Sheets is not configured", err)
	}
	if spreadsheetID != "" {
		sheetsCfg.SpreadsheetID = spreadsheetID
	}

	writer, err := sheets.NewWriter(ctx, sheetsCfg, slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, run); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d candidates from run %s", len(run.Buyers), run.ID)))

	return nil
}
