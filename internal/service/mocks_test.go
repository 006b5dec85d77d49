package service

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

type mockSubmissionRepository struct {
	mock.Mock
}

func (m *mockSubmissionRepository) Create(ctx context.Context, submission model.Submission) (model.Submission, error) {
	args := m.Called(ctx, submission)
	if fn, ok := args.Get(0).(func(context.Context, model.Submission) model.Submission); ok {
		return fn(ctx, submission), args.Error(1)
	}
	return args.Get(0).(model.Submission), args.Error(1)
}

func (m *mockSubmissionRepository) List(ctx context.Context) ([]model.Submission, error) {
	args := m.Called(ctx)
	submissions, _ := args.Get(0).([]model.Submission)
	return submissions, args.Error(1)
}

func (m *mockSubmissionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockModerationClient struct {
	mock.Mock
}

func (m *mockModerationClient) Check(ctx context.Context, imageURL string) (client.ModerationResult, error) {
	args := m.Called(ctx, imageURL)
	return args.Get(0).(client.ModerationResult), args.Error(1)
}

type mockModerationService struct {
	mock.Mock
}

func (m *mockModerationService) IsImageSafe(ctx context.Context, imageURL string) bool {
	return m.Called(ctx, imageURL).Bool(0)
}

type mockRabbitClient struct {
	mock.Mock
}

func (m *mockRabbitClient) PublishMessage(ctx context.Context, message []byte) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockRabbitClient) Close() error {
	return m.Called().Error(0)
}

type mockSheetsClient struct {
	mock.Mock
}

func (m *mockSheetsClient) FetchValues(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	args := m.Called(ctx, spreadsheetID, readRange)
	rows, _ := args.Get(0).([][]string)
	return rows, args.Error(1)
}

type mockAuthClient struct {
	mock.Mock
}

func (m *mockAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	token, _ := args.Get(0).(*auth.Token)
	return token, args.Error(1)
}
