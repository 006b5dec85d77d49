package repository

import (
	"context"
	"fmt"

	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repositories interface {
	Submission() SubmissionRepository
	Ping(ctx context.Context) error
}

type repositories struct {
	db                   *gorm.DB
	submissionRepository SubmissionRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	err := db.AutoMigrate(&model.Submission{})
	if err != nil {
		logrus.Panic(err)
	}
	return &repositories{
		db:                   db,
		submissionRepository: newSubmissionRepository(db),
	}
}

func (r repositories) Submission() SubmissionRepository {
	return r.submissionRepository
}

func (r repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}
	return nil
}
