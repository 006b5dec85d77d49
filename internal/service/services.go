package service

import (
	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/repository"
)

type Services interface {
	Submission() SubmissionService
	Image() ImageService
	Form() FormService
	// Auth is nil when no Firebase client is configured.
	Auth() AuthService
}

type services struct {
	submissionService SubmissionService
	imageService      ImageService
	formService       FormService
	authService       AuthService
}

func NewServices(repositories repository.Repositories, config dto.Config, clients client.Clients, m *metrics.Metrics) Services {
	moderationService := newModerationService(clients.ModerationClient(), m)
	imageService := newImageService(moderationService, config.GoogleAPIKey)

	var authService AuthService
	if authClient := clients.AuthClient(); authClient != nil {
		authService = newAuthService(authClient, clients.TokenExpireVerifier(), config.AdminEmails)
	}

	return &services{
		submissionService: newSubmissionService(
			repositories.Submission(),
			newSimilarityService(),
			imageService,
			clients.RabbitMQClient(),
			m,
			config.DisplayLocation,
		),
		imageService: imageService,
		formService:  newFormService(clients.SheetsClient(), config, m),
		authService:  authService,
	}
}

func (s services) Submission() SubmissionService {
	return s.submissionService
}

func (s services) Image() ImageService {
	return s.imageService
}

func (s services) Form() FormService {
	return s.formService
}

func (s services) Auth() AuthService {
	return s.authService
}
