package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tradewise-kr/buyerscout/internal/cli"
	"github.com/tradewise-kr/buyerscout/internal/common"
	"github.com/tradewise-kr/buyerscout/internal/config"
	"github.com/tradewise-kr/buyerscout/internal/discovery"
	"github.com/tradewise-kr/buyerscout/internal/match"
	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/session"
	"github.com/tradewise-kr/buyerscout/internal/tui"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Find buyer candidates for a product",
		Long: `Score every buyer record in the configured datasets against an industry,
an optional HS code and a set of target countries, then print the ranked,
deduplicated candidates.

Examples:
  # Cosmetics buyers in the US
  buyerscout match --industry 화장품/뷰티 --country "United States"

  # Narrow by HS code and require an email address
  buyerscout match --industry 화장품/뷰티 --hs 3304 --require-email

  # Browse results interactively
  buyerscout match --industry 전자제품 --all-countries --interactive`,
		RunE: runMatch,
	}

	cmd.Flags().StringP("industry", "i", "", "industry label (see 'buyerscout match --list-industries')")
	cmd.Flags().String("hs", "", "HS code, full or partial (e.g. 3304)")
	cmd.Flags().StringSliceP("country", "c", []string{"United States"}, "target country (repeatable)")
	cmd.Flags().Bool("all-countries", false, "target every supported country")
	cmd.Flags().Bool("require-email", false, "only candidates with an email address")
	cmd.Flags().IntP("max", "m", 0, "maximum candidates to return (default from config)")
	cmd.Flags().Bool("interactive", false, "browse results in an interactive viewer")
	cmd.Flags().Bool("no-cache", false, "always re-read source files")
	cmd.Flags().Bool("no-save", false, "do not persist this run for later export")
	cmd.Flags().Bool("list-industries", false, "print the supported industry labels and exit")

	return cmd
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if list, _ := cmd.Flags().GetBool("list-industries"); list {
		for _, label := range match.Industries() {
			fmt.Println(label)
		}
		return nil
	}

	industry, _ := cmd.Flags().GetString("industry")
	hsCode, _ := cmd.Flags().GetString("hs")
	countries, _ := cmd.Flags().GetStringSlice("country")
	allCountries, _ := cmd.Flags().GetBool("all-countries")
	requireEmail, _ := cmd.Flags().GetBool("require-email")
	maxResults, _ := cmd.Flags().GetInt("max")
	interactive, _ := cmd.Flags().GetBool("interactive")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	noSave, _ := cmd.Flags().GetBool("no-save")

	if industry == "" {
		return common.NewUserError("--industry is required (try --list-industries)", nil)
	}
	if !match.IsKnownIndustry(industry) {
		return common.NewUserError(
			fmt.Sprintf("unknown industry %q; supported: %s", industry, strings.Join(match.Industries(), ", ")), nil)
	}
	if allCountries {
		countries = match.CountryOptions
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	store := openStorageOrNil(ctx, cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	var cache match.RecordCache
	if store != nil && !noCache {
		cache = store
	}

	engine := match.NewEngine(cfg, discovery.NewFinder(cfg.DataDirs), cache)

	query := model.MatchQuery{
		Industry:     industry,
		HSCode:       strings.TrimSpace(hsCode),
		Countries:    countries,
		RequireEmail: requireEmail,
		MaxResults:   maxResults,
	}

	result, err := engine.Match(ctx, query)
	if err != nil {
		return err
	}

	for _, st := range result.Statuses {
		fmt.Println(formatStatus(st))
	}
	fmt.Println()

	if len(result.Buyers) == 0 {
		if result.Scanned == 0 {
			fmt.Println(cli.FormatWarning("No buyer data loaded. Place the dataset CSVs in one of the data dirs and run 'buyerscout import'."))
		} else {
			fmt.Println(cli.FormatWarning("No results. Try adding an HS code or a different industry."))
		}
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d buyer candidates found", len(result.Buyers))))
	fmt.Println()

	if store != nil && !noSave {
		run := &model.MatchRun{
			ID:           uuid.NewString(),
			Industry:     query.Industry,
			HSCode:       query.HSCode,
			Countries:    query.Countries,
			RequireEmail: query.RequireEmail,
			CreatedAt:    time.Now().UTC(),
			Buyers:       result.Buyers,
		}
		if err := store.SaveMatchRun(ctx, run); err != nil {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("could not persist run for export: %v", err)))
		}
	}

	if interactive {
		sess := session.New(query, result.Buyers)
		program := tea.NewProgram(tui.New(sess), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("interactive viewer failed: %w", err)
		}
		return nil
	}

	for i, buyer := range result.Buyers {
		fmt.Println(renderBuyer(i+1, buyer))
	}

	return nil
}

func renderBuyer(rank int, b model.DisplayBuyer) string {
	domain := b.Domain
	if domain == "" {
		domain = "no-domain"
	}

	badge := "unverified"
	if b.HasContact() {
		badge = "contact available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Website:        %s\n", orNA(b.Website))
	fmt.Fprintf(&sb, "Industry:       %s\n", orNA(b.Industry))
	fmt.Fprintf(&sb, "Target markets: %s\n", orNA(strings.Join(b.CountryTargets, ", ")))
	fmt.Fprintf(&sb, "Origin:         %s\n", orNA(strings.TrimSpace(b.RawCountry+" "+b.RawCity)))
	fmt.Fprintf(&sb, "Products/offer: %s\n", orNA(b.RawProductText))
	fmt.Fprintf(&sb, "HS code:        %s\n", orNA(b.RawHSCode))
	fmt.Fprintf(&sb, "Contact:        %s\n", orNA(b.ContactPerson))
	fmt.Fprintf(&sb, "Email:          %s\n", orNA(b.Email))
	fmt.Fprintf(&sb, "Phone:          %s", orNA(b.RawPhone))

	title := fmt.Sprintf("%d. %s (%s) · %s", rank, b.CompanyName, domain, badge)
	return cli.RenderBox(title, sb.String())
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
