// Package gsheets mirrors records into a Google Sheets tab.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
)

const valueInputOption = "USER_ENTERED"

var _ export.Exporter = (*Client)(nil)

// Settings identify the target tab and the service account used to reach it.
type Settings struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

func New(ctx context.Context, s Settings) (*Client, error) {
	if s.SpreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if s.SheetName == "" {
		s.SheetName = "Expenses"
	}

	credentialsJSON, err := loadCredentials(ctx, s)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created", "sheet", s.SheetName)
	return &Client{svc: svc, spreadsheetID: s.SpreadsheetID, sheetName: s.SheetName}, nil
}

func loadCredentials(ctx context.Context, s Settings) ([]byte, error) {
	file := s.ServiceAccountFile
	if s.ServiceAccountJSON == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case s.ServiceAccountJSON != "":
		slog.DebugContext(ctx, "Using inline JSON credentials")
		return []byte(s.ServiceAccountJSON), nil
	case file != "":
		slog.DebugContext(ctx, "Reading credentials from file", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Export replaces the tab content with records. path is ignored.
func (c *Client) Export(ctx context.Context, _ string, records []core.Record) error {
	return c.ReplaceAll(ctx, records)
}

// ReplaceAll clears columns A:D of the tab and writes the header and records.
func (c *Client) ReplaceAll(ctx context.Context, records []core.Record) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:D", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: values(records)}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption(valueInputOption).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %s: %w", writeRange, err)
	}

	slog.InfoContext(ctx, "Mirrored records to Google Sheets", "sheet", c.sheetName, "rows", len(records))
	return nil
}

// values builds the header row followed by one row per record.
func values(records []core.Record) [][]interface{} {
	out := make([][]interface{}, 0, len(records)+1)
	out = append(out, toInterfaces(export.Header))
	for _, r := range records {
		out = append(out, toInterfaces(export.Row(r)))
	}
	return out
}

func toInterfaces(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
