package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/tradewise-kr/buyerscout/internal/common"
	"github.com/tradewise-kr/buyerscout/internal/model"
)

// Writer exports match runs to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write exports one match run. Existing sheet contents are cleared first so
// the spreadsheet always mirrors the latest run.
func (w *Writer) Write(ctx context.Context, run *model.MatchRun) error {
	w.logger.Info("starting sheet export",
		"run_id", run.ID,
		"candidates", len(run.Buyers))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	values := prepareRows(run)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeRows(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet verifies the configured spreadsheet or creates one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.config.SpreadsheetName,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created spreadsheet",
		"spreadsheet_id", created.SpreadsheetId,
		"title", w.config.SpreadsheetName)

	return created.SpreadsheetId, nil
}

// writeRows clears the first sheet and writes the prepared rows.
func (w *Writer) writeRows(ctx context.Context, spreadsheetID string, values [][]any) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return wrapAPIError("clear sheet", err)
	}

	_, err = w.service.Spreadsheets.Values.Update(spreadsheetID, "A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return wrapAPIError("update sheet", err)
	}

	return nil
}

// prepareRows flattens a match run into sheet rows. The exported columns are
// exactly the display fields; ranking internals stay out of the export.
func prepareRows(run *model.MatchRun) [][]any {
	values := [][]any{
		{"Company", "Domain", "Website", "Industry", "Target Countries",
			"Email", "Contact", "Country", "City", "Products", "HS Code", "Phone"},
	}

	for _, b := range run.Buyers {
		values = append(values, []any{
			b.CompanyName,
			b.Domain,
			b.Website,
			b.Industry,
			strings.Join(b.CountryTargets, ", "),
			b.Email,
			b.ContactPerson,
			b.RawCountry,
			b.RawCity,
			b.RawProductText,
			b.RawHSCode,
			b.RawPhone,
		})
	}

	return values
}

// wrapAPIError marks quota errors as retryable rate limits so WithRetry
// backs off instead of giving up.
func wrapAPIError(op string, err error) error {
	if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "quota") {
		return fmt.Errorf("%s: %w", op, common.ErrRateLimit)
	}
	return fmt.Errorf("%s: %w", op, err)
}
