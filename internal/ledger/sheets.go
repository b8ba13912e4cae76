package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ardhimansyah/catatduit/internal/common"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// dataRange covers the contractual six columns.
const dataRange = "A:F"

// SheetsStore implements RowStore against the first sheet of a Google
// Sheets spreadsheet.
type SheetsStore struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
	sheetID int64
}

// NewSheetsStore creates a Sheets-backed row store using service-account
// authentication and verifies the spreadsheet is reachable.
func NewSheetsStore(ctx context.Context, config Config, logger *slog.Logger) (*SheetsStore, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheet, err := service.Spreadsheets.Get(config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to access spreadsheet %s: %w", config.SpreadsheetID, err)
	}
	if len(spreadsheet.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", config.SpreadsheetID)
	}

	return &SheetsStore{
		service: service,
		logger:  logger,
		config:  config,
		sheetID: spreadsheet.Sheets[0].Properties.SheetId,
	}, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	jsonKey, err := os.ReadFile(config.ServiceAccountPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (s *SheetsStore) retryOpts() common.RetryOptions {
	return common.RetryOptions{
		MaxAttempts:  s.config.RetryAttempts,
		InitialDelay: s.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// Append adds one data row after the last non-empty row.
func (s *SheetsStore) Append(ctx context.Context, row []string) error {
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	valueRange := &sheets.ValueRange{Values: [][]any{values}}

	err := common.WithRetry(ctx, func() error {
		_, appendErr := s.service.Spreadsheets.Values.
			Append(s.config.SpreadsheetID, dataRange, valueRange).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return appendErr
	}, s.retryOpts())
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}

	s.logger.Debug("appended row", "spreadsheet_id", s.config.SpreadsheetID)
	return nil
}

// Rows returns every row including the header at index 0.
func (s *SheetsStore) Rows(ctx context.Context) ([][]string, error) {
	var resp *sheets.ValueRange
	err := common.WithRetry(ctx, func() error {
		var getErr error
		resp, getErr = s.service.Spreadsheets.Values.
			Get(s.config.SpreadsheetID, dataRange).
			Context(ctx).
			Do()
		return getErr
	}, s.retryOpts())
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DeleteRow removes the data row at the given 1-based position. The header
// occupies position 0, so the position maps directly onto the sheet's
// 0-based row index.
func (s *SheetsStore) DeleteRow(ctx context.Context, position int) error {
	if position < 1 {
		return fmt.Errorf("position %d is not a data row", position)
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    s.sheetID,
						Dimension:  "ROWS",
						StartIndex: int64(position),
						EndIndex:   int64(position) + 1,
					},
				},
			},
		},
	}

	err := common.WithRetry(ctx, func() error {
		_, deleteErr := s.service.Spreadsheets.
			BatchUpdate(s.config.SpreadsheetID, request).
			Context(ctx).
			Do()
		return deleteErr
	}, s.retryOpts())
	if err != nil {
		return fmt.Errorf("deleting row at position %d: %w", position, err)
	}

	s.logger.Debug("deleted row", "position", position)
	return nil
}
