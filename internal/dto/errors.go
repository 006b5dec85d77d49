package dto

import (
	"errors"
	"fmt"
)

var (
	ErrInternalFailure = errors.New("internal failure")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicate       = errors.New("duplicate submission")
	ErrNotConfigured   = errors.New("not configured")
)

// DuplicateError is returned when a new description is too close to a stored one.
type DuplicateError struct {
	Score        float64
	SubmissionID uint
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: similarity %.2f with submission %d", ErrDuplicate, e.Score, e.SubmissionID)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}
