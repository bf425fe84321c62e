package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"telegram-article-digest-bot/config"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// ErrPersistence wraps any failure reaching or writing the spreadsheet.
var ErrPersistence = errors.New("persistence failed")

const (
	noInformation = "No information"

	scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	scopeDrive        = "https://www.googleapis.com/auth/drive"

	newWorksheetRows = 1000
	newWorksheetCols = 20
)

var worksheetHeader = []interface{}{"Subject", "Title", "Summary", "ArticleLink", "Timestamp"}

// SheetSink appends records to a Google Sheet identified by its spreadsheet
// ID, creating the worksheet and its header row lazily on first use.
type SheetSink struct {
	cfg config.SheetsConfig

	mu  sync.Mutex
	svc *sheets.Service
}

func NewSheetSink(cfg config.SheetsConfig) *SheetSink {
	return &SheetSink{cfg: cfg}
}

// Append writes one row in fixed column order. Empty fields are defaulted at
// write time, never in the record itself.
func (s *SheetSink) Append(ctx context.Context, rec Record) error {
	svc, err := s.service(ctx)
	if err != nil {
		return errors.Join(ErrPersistence, err)
	}

	worksheet, err := s.ensureWorksheet(ctx, svc)
	if err != nil {
		return errors.Join(ErrPersistence, err)
	}

	if err := s.ensureHeader(ctx, svc, worksheet); err != nil {
		return errors.Join(ErrPersistence, err)
	}

	row := []interface{}{
		defaultIfEmpty(rec.Subject),
		defaultIfEmpty(rec.Title),
		defaultIfEmpty(rec.Summary),
		rec.URL,
		rec.Timestamp,
	}

	if err := s.appendRow(ctx, svc, worksheet, row); err != nil {
		return errors.Join(ErrPersistence, err)
	}

	slog.Info("journal: record appended to spreadsheet", "spreadsheet", s.cfg.SpreadsheetID, "worksheet", worksheet)

	return nil
}

// service authenticates on first use so credential problems surface as
// persistence errors of the call, not at process start.
func (s *SheetSink) service(ctx context.Context) (*sheets.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.svc != nil {
		return s.svc, nil
	}

	if _, err := os.Stat(s.cfg.CredentialsFile); err != nil {
		return nil, fmt.Errorf("credentials file not found at %s: %w", s.cfg.CredentialsFile, err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.cfg.CredentialsFile),
		option.WithScopes(scopeSpreadsheets, scopeDrive),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create sheets service: %w", err)
	}

	s.svc = svc

	return svc, nil
}

// ensureWorksheet returns the title of the first worksheet, adding one with
// a fixed name and generous capacity when the spreadsheet has none.
func (s *SheetSink) ensureWorksheet(ctx context.Context, svc *sheets.Service) (string, error) {
	spreadsheet, err := svc.Spreadsheets.Get(s.cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("cannot open spreadsheet %s: %w", s.cfg.SpreadsheetID, err)
	}

	if len(spreadsheet.Sheets) > 0 {
		return spreadsheet.Sheets[0].Properties.Title, nil
	}

	slog.Info("journal: spreadsheet has no worksheet, creating one", "title", s.cfg.WorksheetTitle)

	_, err = svc.Spreadsheets.BatchUpdate(s.cfg.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: s.cfg.WorksheetTitle,
						GridProperties: &sheets.GridProperties{
							RowCount:    newWorksheetRows,
							ColumnCount: newWorksheetCols,
						},
					},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("cannot create worksheet: %w", err)
	}

	return s.cfg.WorksheetTitle, nil
}

// ensureHeader writes the fixed 5-column header when row 1 is empty.
func (s *SheetSink) ensureHeader(ctx context.Context, svc *sheets.Service, worksheet string) error {
	firstRow, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, worksheet+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("cannot read header row: %w", err)
	}

	if len(firstRow.Values) > 0 {
		return nil
	}

	slog.Info("journal: adding header row to the worksheet")

	return s.appendRow(ctx, svc, worksheet, worksheetHeader)
}

func (s *SheetSink) appendRow(ctx context.Context, svc *sheets.Service, worksheet string, row []interface{}) error {
	_, err := svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, worksheet, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("cannot append row: %w", err)
	}

	return nil
}

func defaultIfEmpty(value string) string {
	if value == "" {
		return noInformation
	}

	return value
}
