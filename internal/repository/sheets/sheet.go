package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/procurement/internal/config"
)

// Sheet is the subset of the Sheets API the register needs.
type Sheet interface {
	AppendRow(ctx context.Context, sheetRange string, values []interface{}) error
	ReadRows(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// Client talks to one spreadsheet through the Sheets v4 API.
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewClient authenticates with a service account credentials file.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		return nil, errors.New("sheets register is not configured")
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Client{service: service, spreadsheetID: cfg.SpreadsheetID, logger: logger}, nil
}

// AppendRow inserts values as a new row after the last filled row of the range.
func (c *Client) AppendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row into %s: %w", sheetRange, err)
	}

	c.logger.Debug("register row appended", zap.String("range", sheetRange))
	return nil
}

// ReadRows returns every populated row in the range.
func (c *Client) ReadRows(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}
