package service

import (
	"strings"
	"unicode"

	strmetrics "github.com/adrg/strutil/metrics"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/model"
)

// DuplicateThreshold is the similarity at or above which a submission is rejected.
const DuplicateThreshold = 0.8

type SimilarityService interface {
	Compare(a, b string) float64
	FindDuplicate(description string, existing []model.Submission) (float64, error)
}

type similarityService struct {
	metric *strmetrics.SorensenDice
}

func newSimilarityService() SimilarityService {
	metric := strmetrics.NewSorensenDice()
	metric.CaseSensitive = true
	metric.NgramSize = 2
	return &similarityService{metric: metric}
}

// Compare returns the Dice coefficient of the character bigrams of a and b,
// ignoring whitespace. Identical inputs score 1 and inputs too short to
// form a bigram score 0.
func (s *similarityService) Compare(a, b string) float64 {
	a, b = stripSpace(a), stripSpace(b)
	if a == b {
		return 1
	}
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return 0
	}
	return s.metric.Compare(a, b)
}

// FindDuplicate scans existing rows in order and stops at the first one whose
// description reaches DuplicateThreshold. It returns the highest score seen and
// a *dto.DuplicateError when a duplicate was found.
func (s *similarityService) FindDuplicate(description string, existing []model.Submission) (float64, error) {
	var best float64
	for _, submission := range existing {
		score := s.Compare(description, submission.Description)
		if score >= DuplicateThreshold {
			return score, &dto.DuplicateError{Score: score, SubmissionID: submission.ID}
		}
		if score > best {
			best = score
		}
	}
	return best, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
