package service

import (
	"context"
	"fmt"

	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/sirupsen/logrus"
)

type FormService interface {
	// Sync returns the raw rows of the form responses sheet.
	Sync(ctx context.Context) ([][]string, error)
}

type formService struct {
	sheetsClient client.SheetsClient
	sheetID      string
	sheetRange   string
	metrics      *metrics.Metrics
}

func newFormService(sheetsClient client.SheetsClient, config dto.Config, m *metrics.Metrics) FormService {
	return &formService{
		sheetsClient: sheetsClient,
		sheetID:      config.GoogleSheetID,
		sheetRange:   config.GoogleSheetRange,
		metrics:      m,
	}
}

func (f *formService) Sync(ctx context.Context) ([][]string, error) {
	if f.sheetID == "" {
		f.metrics.FormSyncs.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: GOOGLE_SHEET_ID missing", dto.ErrNotConfigured)
	}

	rows, err := f.sheetsClient.FetchValues(ctx, f.sheetID, f.sheetRange)
	if err != nil {
		logrus.Errorf("Error syncing Google Form responses: %v", err)
		f.metrics.FormSyncs.WithLabelValues("error").Inc()
		return nil, err
	}

	logrus.Infof("Fetched %d rows from sheet range %q", len(rows), f.sheetRange)
	f.metrics.FormSyncs.WithLabelValues("ok").Inc()
	return rows, nil
}
