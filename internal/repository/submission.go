package repository

import (
	"context"
	"fmt"

	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission model.Submission) (model.Submission, error)
	List(ctx context.Context) ([]model.Submission, error)
	Count(ctx context.Context) (int64, error)
}

type submission struct {
	db *gorm.DB
}

func newSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submission{
		db: db,
	}
}

func (s *submission) Create(ctx context.Context, submission model.Submission) (model.Submission, error) {
	result := s.db.WithContext(ctx).Create(&submission)
	if result.Error != nil {
		return model.Submission{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return submission, nil
}

// List returns every row in storage scan order, approved or not.
func (s *submission) List(ctx context.Context) ([]model.Submission, error) {
	var submissions []model.Submission
	result := s.db.WithContext(ctx).Find(&submissions)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return submissions, nil
}

func (s *submission) Count(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.Submission{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return count, nil
}
