package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"ledgerbot/internal/core"
	ports "ledgerbot/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client adapts one worksheet of a Google spreadsheet to the row-store
// ports. All API calls go through a pacer that enforces a minimum
// interval between requests; that spacing is the only write-side
// consistency mitigation, not a locking guarantee.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	pace          *pacer
}

var (
	_ ports.RowSource     = (*Client)(nil)
	_ ports.RowAppender   = (*Client)(nil)
	_ ports.CellUpdater   = (*Client)(nil)
	_ ports.HeaderEnsurer = (*Client)(nil)
)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME
// (default "Ledger").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		pace:          newPacer(defaultMinInterval),
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// GetAllRows returns the worksheet's full contents, header row
// included, as a frozen snapshot.
func (c *Client) GetAllRows(ctx context.Context) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	c.pace.wait()
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		out[i] = cells
	}
	return out, nil
}

// AppendRow appends one ledger row after the last non-empty row.
func (c *Client) AppendRow(ctx context.Context, row []string) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	c.pace.wait()
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to %s: %w", c.sheetName, err)
	}
	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Appended ledger row", "sheet", c.sheetName, "ref", ref)
	return ref, nil
}

// UpdateCell overwrites one cell, 1-based coordinates.
func (c *Client) UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if rowIndex < 1 || colIndex < 1 {
		return fmt.Errorf("invalid cell (%d,%d)", rowIndex, colIndex)
	}
	c.pace.wait()
	cell := fmt.Sprintf("%s!%s%d", c.sheetName, columnLetter(colIndex), rowIndex)
	vr := &gsheet.ValueRange{Values: [][]any{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, cell, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", cell, err)
	}
	return nil
}

// EnsureHeaders makes the first row the canonical header, creating it
// on an empty sheet or rewriting a first row that doesn't match.
func (c *Client) EnsureHeaders(ctx context.Context) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	c.pace.wait()
	rng := fmt.Sprintf("%s!1:1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	current := []string{}
	if len(resp.Values) > 0 {
		for _, v := range resp.Values[0] {
			current = append(current, strings.TrimSpace(fmt.Sprint(v)))
		}
	}
	if equalHeaders(current, core.Headers) {
		return nil
	}

	values := make([]any, len(core.Headers))
	for i, h := range core.Headers {
		values[i] = h
	}
	c.pace.wait()
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	if len(current) == 0 || core.IsHeaderRow(current) {
		// Empty or malformed header row: overwrite in place.
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
		slog.InfoContext(ctx, "Repaired header row", "sheet", c.sheetName)
		return nil
	}
	// First row holds data: shift it down and insert the header.
	sheetID, err := c.sheetID(ctx)
	if err != nil {
		return fmt.Errorf("resolve sheet id: %w", err)
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			InsertDimension: &gsheet.InsertDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: 0,
					EndIndex:   1,
				},
				InheritFromBefore: false,
			},
		}},
	}
	c.pace.wait()
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert header row: %w", err)
	}
	c.pace.wait()
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	slog.InfoContext(ctx, "Inserted header row above existing data", "sheet", c.sheetName)
	return nil
}

func (c *Client) sheetID(ctx context.Context) (int64, error) {
	c.pace.wait()
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", c.sheetName)
}

func equalHeaders(got, want []string) bool {
	if len(got) < len(want) {
		return false
	}
	for i, w := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), w) {
			return false
		}
	}
	return true
}

// columnLetter converts a 1-based column index to its A1 letter.
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}
