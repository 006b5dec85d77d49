package service

import (
	"context"

	"github.com/krakosik/happenings/internal/drive"
)

type ImageService interface {
	// ResolveImage returns the URL to store for a submitted image link.
	ResolveImage(ctx context.Context, submitted string) string
	ProxyURL(fileID string) string
}

type imageService struct {
	moderationService ModerationService
	googleAPIKey      string
}

func newImageService(moderationService ModerationService, googleAPIKey string) ImageService {
	return &imageService{
		moderationService: moderationService,
		googleAPIKey:      googleAPIKey,
	}
}

func (i *imageService) ResolveImage(ctx context.Context, submitted string) string {
	fallback := drive.ViewURL(drive.DefaultImage)
	if submitted == "" {
		return fallback
	}

	viewURL := drive.ViewURL(submitted)
	if !i.moderationService.IsImageSafe(ctx, viewURL) {
		return fallback
	}
	return viewURL
}

func (i *imageService) ProxyURL(fileID string) string {
	return drive.MediaURL(fileID, i.googleAPIKey)
}
