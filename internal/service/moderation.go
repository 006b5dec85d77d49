package service

import (
	"context"

	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/drive"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/sirupsen/logrus"
)

const (
	minNudityNone   = 0.8
	maxRiskCategory = 0.05
)

type ModerationService interface {
	IsImageSafe(ctx context.Context, imageURL string) bool
}

type moderationService struct {
	moderationClient client.ModerationClient
	metrics          *metrics.Metrics
}

func newModerationService(moderationClient client.ModerationClient, m *metrics.Metrics) ModerationService {
	return &moderationService{
		moderationClient: moderationClient,
		metrics:          m,
	}
}

// IsImageSafe fails closed: anything short of a successful check under the
// thresholds counts as unsafe.
func (m *moderationService) IsImageSafe(ctx context.Context, imageURL string) bool {
	if imageURL == "" {
		logrus.Error("Image URL is empty, treating image as unsafe")
		m.record(metrics.ModerationSkipped)
		return false
	}

	directURL, ok := drive.DirectDownloadURL(imageURL)
	if !ok {
		logrus.Errorf("Invalid Google Drive link: %s", imageURL)
		m.record(metrics.ModerationSkipped)
		return false
	}

	result, err := m.moderationClient.Check(ctx, directURL)
	if err != nil {
		logrus.Errorf("Error checking image safety: %v", err)
		m.record(metrics.ModerationFailed)
		return false
	}

	if result.Status != "success" || result.Error != nil {
		message := "Unknown error."
		if result.Error != nil && result.Error.Message != "" {
			message = result.Error.Message
		}
		logrus.Errorf("Sightengine API error: %s", message)
		m.record(metrics.ModerationFailed)
		return false
	}

	if !isWithinThresholds(result) {
		m.record(metrics.ModerationUnsafe)
		return false
	}

	m.record(metrics.ModerationSafe)
	return true
}

func (m *moderationService) record(outcome string) {
	m.metrics.ModerationChecks.WithLabelValues(outcome).Inc()
}

func isWithinThresholds(result client.ModerationResult) bool {
	var nudityNone float64
	if result.Nudity != nil {
		nudityNone = result.Nudity.None
	}

	return nudityNone > minNudityNone &&
		prob(result.Weapon) < maxRiskCategory &&
		prob(result.RecreationalDrug) < maxRiskCategory &&
		prob(result.Medical) < maxRiskCategory &&
		prob(result.Gore) < maxRiskCategory &&
		prob(result.Violence) < maxRiskCategory
}

func prob(score *client.ProbabilityScore) float64 {
	if score == nil {
		return 0
	}
	return score.Prob
}
