package candidates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"lunch-bot/internal/restaurant"
)

const DefaultSheetsRange = "Sheet1!A:D"

type SheetsConfig struct {
	APIKey              string
	SpreadsheetID       string
	Range               string
	CredentialsJSONPath string
}

// SheetsSource reads candidates from a spreadsheet whose first row holds
// the column names.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewSheetsSource authenticates with a service account when a credentials
// file is configured and with the API key otherwise. Extra client options
// are appended last.
func NewSheetsSource(ctx context.Context, cfg SheetsConfig, extra ...option.ClientOption) (*SheetsSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if cfg.Range == "" {
		cfg.Range = DefaultSheetsRange
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSONPath != "":
		data, err := os.ReadFile(cfg.CredentialsJSONPath)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(jwt.Client(ctx)))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	opts = append(opts, extra...)

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsSource{svc: svc, spreadsheetID: cfg.SpreadsheetID, readRange: cfg.Range}, nil
}

func (s *SheetsSource) Name() string { return "google-sheets" }

func (s *SheetsSource) Fetch(ctx context.Context) ([]restaurant.Restaurant, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get sheet values: %w", err)
	}
	return ParseRows(resp.Values)
}

var headerAliases = map[string]string{
	"name":        "name",
	"genre":       "genre",
	"address":     "address",
	"url":         "url",
	"orderurl":    "order_url",
	"order_url":   "order_url",
	"phone":       "phone",
	"description": "description",
}

// ParseRows maps data rows onto restaurants by the header row. Missing cells
// are empty; unknown columns are ignored; rows without a name are dropped.
func ParseRows(rows [][]interface{}) ([]restaurant.Restaurant, error) {
	if len(rows) == 0 {
		return nil, errors.New("no data found in the spreadsheet")
	}

	fields := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(fmt.Sprint(h)))
		fields[i] = headerAliases[key]
	}

	out := make([]restaurant.Restaurant, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var r restaurant.Restaurant
		for i, field := range fields {
			if i >= len(row) || field == "" {
				continue
			}
			v := fmt.Sprint(row[i])
			switch field {
			case "name":
				r.Name = v
			case "genre":
				r.Genre = v
			case "address":
				r.Address = v
			case "url":
				r.URL = v
			case "order_url":
				r.OrderURL = v
			case "phone":
				r.Phone = v
			case "description":
				r.Description = v
			}
		}
		out = append(out, r)
	}
	return restaurant.Dedup(out), nil
}
