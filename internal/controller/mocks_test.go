package controller

import (
	"context"

	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/model"
	"github.com/krakosik/happenings/internal/repository"
	"github.com/krakosik/happenings/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockServices struct {
	submission service.SubmissionService
	image      service.ImageService
	form       service.FormService
	auth       service.AuthService
}

func (m mockServices) Submission() service.SubmissionService { return m.submission }
func (m mockServices) Image() service.ImageService { return m.image }
func (m mockServices) Form() service.FormService { return m.form }
func (m mockServices) Auth() service.AuthService { return m.auth }

type mockSubmissionService struct {
	mock.Mock
}

func (m *mockSubmissionService) List(ctx context.Context) ([]dto.NewsItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]dto.NewsItem)
	return items, args.Error(1)
}

func (m *mockSubmissionService) Add(ctx context.Context, request dto.AddSubmissionRequest) (model.Submission, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(model.Submission), args.Error(1)
}

type mockImageService struct {
	mock.Mock
}

func (m *mockImageService) ResolveImage(ctx context.Context, submitted string) string {
	return m.Called(ctx, submitted).String(0)
}

func (m *mockImageService) ProxyURL(fileID string) string {
	return m.Called(fileID).String(0)
}

type mockFormService struct {
	mock.Mock
}

func (m *mockFormService) Sync(ctx context.Context) ([][]string, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([][]string)
	return rows, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (dto.Admin, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(dto.Admin), args.Error(1)
}

type mockRepositories struct {
	mock.Mock
	submissions *mockSubmissionRepository
}

func (m *mockRepositories) Submission() repository.SubmissionRepository {
	return m.submissions
}

func (m *mockRepositories) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSubmissionRepository struct {
	mock.Mock
}

func (m *mockSubmissionRepository) Create(ctx context.Context, submission model.Submission) (model.Submission, error) {
	args := m.Called(ctx, submission)
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
