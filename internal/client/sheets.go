package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/krakosik/happenings/internal/dto"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var ErrNoSheetData = errors.New("No data found in the Google Sheet")

type SheetsClient interface {
	FetchValues(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

type sheetsClient struct {
	service *sheets.Service
}

type unconfiguredSheetsClient struct{}

// NewSheetsClient builds a Sheets API client authenticated with a plain API key,
// which is enough for sheets shared by link.
func NewSheetsClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (SheetsClient, error) {
	if apiKey == "" {
		return unconfiguredSheetsClient{}, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &sheetsClient{service: service}, nil
}

func (s *sheetsClient) FetchValues(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet data: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, ErrNoSheetData
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func (unconfiguredSheetsClient) FetchValues(context.Context, string, string) ([][]string, error) {
	return nil, fmt.Errorf("%w: GOOGLE_API_KEY missing", dto.ErrNotConfigured)
}
