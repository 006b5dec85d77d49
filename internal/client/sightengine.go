package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/krakosik/happenings/internal/dto"
)

const moderationModels = "nudity-2.1,weapon,recreational_drug,medical,gore-2.0,violence"

type ModerationClient interface {
	Check(ctx context.Context, imageURL string) (ModerationResult, error)
}

type ModerationResult struct {
	Status           string               `json:"status"`
	Nudity           *NudityScores        `json:"nudity,omitempty"`
	Weapon           *ProbabilityScore    `json:"weapon,omitempty"`
	RecreationalDrug *ProbabilityScore    `json:"recreational_drug,omitempty"`
	Medical          *ProbabilityScore    `json:"medical,omitempty"`
	Gore             *ProbabilityScore    `json:"gore,omitempty"`
	Violence         *ProbabilityScore    `json:"violence,omitempty"`
	Error            *ModerationAPIError  `json:"error,omitempty"`
	Request          *ModerationRequestID `json:"request,omitempty"`
}

type NudityScores struct {
	None             float64 `json:"none"`
	SexualActivity   float64 `json:"sexual_activity"`
	SexualDisplay    float64 `json:"sexual_display"`
	Erotica          float64 `json:"erotica"`
	VerySuggestive   float64 `json:"very_suggestive"`
	Suggestive       float64 `json:"suggestive"`
	MildlySuggestive float64 `json:"mildly_suggestive"`
}

type ProbabilityScore struct {
	Prob float64 `json:"prob"`
}

type ModerationAPIError struct {
	Type    string `json:"type"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ModerationRequestID struct {
	ID         string  `json:"id"`
	Timestamp  float64 `json:"timestamp"`
	Operations int     `json:"operations"`
}

type sightengineClient struct {
	httpClient *resty.Client
	apiUser    string
	apiSecret  string
}

func NewSightengineClient(baseURL, apiUser, apiSecret string, timeout time.Duration) ModerationClient {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimRight(baseURL, "/"))
	httpClient.SetTimeout(timeout)

	return &sightengineClient{
		httpClient: httpClient,
		apiUser:    apiUser,
		apiSecret:  apiSecret,
	}
}

func (s *sightengineClient) Check(ctx context.Context, imageURL string) (ModerationResult, error) {
	if s.apiUser == "" || s.apiSecret == "" {
		return ModerationResult{}, fmt.Errorf("%w: sightengine credentials missing", dto.ErrNotConfigured)
	}

	// Sightengine reports API errors in the body, often with a 4xx status, so
	// the body is decoded as JSON whatever the status or content type.
	var result ModerationResult
	resp, err := s.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetFormData(map[string]string{
			"url":        imageURL,
			"models":     moderationModels,
			"api_user":   s.apiUser,
			"api_secret": s.apiSecret,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/check.json")
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return ModerationResult{}, fmt.Errorf("%w: moderation request (status %d): %v", dto.ErrInternalFailure, status, err)
	}

	return result, nil
}
