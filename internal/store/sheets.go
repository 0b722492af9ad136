package store

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSession is the Google Sheets Session backend. The spreadsheet is
// addressed by its key and authorized via a service-account credentials
// file.
type SheetsSession struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
}

func DialSheets(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsSession, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsSession{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsSession) GetOrCreateTable(ctx context.Context, name string, header []string) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	s.sheet = name

	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return nil
		}
	}

	// Worksheet missing: add it and write the header row once.
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add worksheet %q: %w", name, err)
	}
	return s.AppendRows(ctx, [][]string{header})
}

func (s *SheetsSession) ReadAllRows(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheet).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", s.sheet, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		out = append(out, cells)
	}
	return out, nil
}

func (s *SheetsSession) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, c := range row {
			cells = append(cells, c)
		}
		values = append(values, cells)
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %q: %w", s.sheet, err)
	}
	return nil
}

func (s *SheetsSession) Close() error { return nil }
