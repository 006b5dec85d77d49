package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/drive"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/model"
	"github.com/krakosik/happenings/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	displayDateLayout = "January 2, 2006"
	displayTimeLayout = "03:04 PM"

	submissionCreatedType = "submission.created"
)

// Layouts accepted for eventDate, tried in order. Values without a zone are read as UTC.
var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"January 2, 2006",
}

type SubmissionService interface {
	List(ctx context.Context) ([]dto.NewsItem, error)
	Add(ctx context.Context, request dto.AddSubmissionRequest) (model.Submission, error)
}

type submissionService struct {
	submissionRepository repository.SubmissionRepository
	similarityService    SimilarityService
	imageService         ImageService
	rabbitClient         client.RabbitClient
	metrics              *metrics.Metrics
	location             *time.Location
	now                  func() time.Time
}

func newSubmissionService(
	submissionRepository repository.SubmissionRepository,
	similarityService SimilarityService,
	imageService ImageService,
	rabbitClient client.RabbitClient,
	m *metrics.Metrics,
	location *time.Location,
) SubmissionService {
	if location == nil {
		location = time.UTC
	}
	return &submissionService{
		submissionRepository: submissionRepository,
		similarityService:    similarityService,
		imageService:         imageService,
		rabbitClient:         rabbitClient,
		metrics:              m,
		location:             location,
		now:                  time.Now,
	}
}

func (s *submissionService) List(ctx context.Context) ([]dto.NewsItem, error) {
	submissions, err := s.submissionRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]dto.NewsItem, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, s.toNewsItem(submission, now))
	}
	return items, nil
}

func (s *submissionService) toNewsItem(submission model.Submission, now time.Time) dto.NewsItem {
	createdAt := submission.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	hoursAgo := int64(now.Sub(createdAt).Hours())
	if hoursAgo < 0 {
		hoursAgo = 0
	}

	local := createdAt.In(s.location)
	return dto.NewsItem{
		ID:          submission.ID,
		Title:       submission.Title,
		Description: submission.Description,
		Location:    submission.Location,
		Author:      submission.Name,
		Photo:       drive.FeedPhoto(submission.ImageURL),
		Date:        local.Format(displayDateLayout),
		Time:        local.Format(displayTimeLayout),
		HoursAgo:    hoursAgo,
		UpdatedAt:   createdAt,
	}
}

func (s *submissionService) Add(ctx context.Context, request dto.AddSubmissionRequest) (model.Submission, error) {
	existing, err := s.submissionRepository.List(ctx)
	if err != nil {
		return model.Submission{}, err
	}

	best, err := s.similarityService.FindDuplicate(request.Description, existing)
	s.metrics.SimilarityScores.Observe(best)
	if err != nil {
		s.metrics.DuplicatesRejected.Inc()
		logrus.Infof("Rejected submission %q as a duplicate (score %.2f)", request.Title, best)
		return model.Submission{}, err
	}

	eventDate, err := parseEventDate(request.EventDate)
	if err != nil {
		return model.Submission{}, err
	}

	imageURL := s.imageService.ResolveImage(ctx, strings.TrimSpace(request.ImageURL))

	submission := model.Submission{
		Title:           request.Title,
		Description:     request.Description,
		Location:        request.Location,
		Name:            request.Name,
		Phone:           optional(request.Phone),
		Category:        optional(request.Category),
		ImageURL:        &imageURL,
		EventDate:       eventDate,
		IsApproved:      false,
		IsDuplicate:     false,
		SimilarityScore: nil,
	}

	created, err := s.submissionRepository.Create(ctx, submission)
	if err != nil {
		return model.Submission{}, err
	}

	s.metrics.SubmissionsCreated.Inc()
	logrus.Infof("Created submission %d %q at %s", created.ID, created.Title, created.Location)
	s.publishCreated(ctx, created)

	return created, nil
}

func (s *submissionService) publishCreated(ctx context.Context, submission model.Submission) {
	message, err := json.Marshal(dto.SubmissionCreatedMessage{
		Type:         submissionCreatedType,
		SubmissionID: submission.ID,
		Title:        submission.Title,
		Location:     submission.Location,
		Category:     submission.Category,
		CreatedAt:    submission.CreatedAt,
	})
	if err != nil {
		logrus.Errorf("Error marshaling submission %d: %v", submission.ID, err)
		return
	}

	if err := s.rabbitClient.PublishMessage(ctx, message); err != nil {
		s.metrics.BrokerPublishErrors.Inc()
		logrus.Errorf("Error publishing submission %d: %v", submission.ID, err)
	}
}

// parseEventDate reduces an optional date string to its UTC calendar day.
func parseEventDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		t = t.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day, nil
	}

	return nil, fmt.Errorf("%w: eventDate %q is not a recognised date", dto.ErrInvalidInput, raw)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
