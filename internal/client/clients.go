package client

import (
	"context"

	firebase "firebase.google.com/go/v4"
	authV4 "firebase.google.com/go/v4/auth"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type Clients interface {
	// AuthClient is nil when no Firebase key is configured.
	AuthClient() AuthClient
	TokenExpireVerifier() TokenExpireVerifier
	RabbitMQClient() RabbitClient
	SheetsClient() SheetsClient
	ModerationClient() ModerationClient
	Close() error
}

type clients struct {
	authClient       AuthClient
	rabbitClient     RabbitClient
	sheetsClient     SheetsClient
	moderationClient ModerationClient
}

func (c clients) AuthClient() AuthClient {
	return c.authClient
}

func (c clients) TokenExpireVerifier() TokenExpireVerifier {
	return authV4.IsIDTokenExpired
}

func (c clients) RabbitMQClient() RabbitClient {
	return c.rabbitClient
}

func (c clients) SheetsClient() SheetsClient {
	return c.sheetsClient
}

func (c clients) ModerationClient() ModerationClient {
	return c.moderationClient
}

func (c clients) Close() error {
	return c.rabbitClient.Close()
}

func NewClients(cfg dto.Config) Clients {
	ctx := context.Background()

	var authClient AuthClient
	if cfg.FirebaseKey != "" {
		decodedFirebaseKey, err := cfg.DecodeFirebaseKey()
		if err != nil {
			logrus.Panic(err)
		}
		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(decodedFirebaseKey))
		if err != nil {
			logrus.Panic(err)
		}
		firebaseAuth, err := app.Auth(ctx)
		if err != nil {
			logrus.Panic(err)
		}
		authClient = firebaseAuth
	} else {
		logrus.Warn("FIREBASE_KEY not set, form sync is not protected")
	}

	rabbitClient := NewNoopRabbitClient()
	if cfg.RabbitMQURL != "" {
		rc, err := NewRabbitMQClient(cfg)
		if err != nil {
			// Serve without fan-out.
			logrus.Errorf("Failed to connect to RabbitMQ: %v", err)
		} else {
			rabbitClient = rc
		}
	}

	sheetsClient, err := NewSheetsClient(ctx, cfg.GoogleAPIKey)
	if err != nil {
		logrus.Panic(err)
	}

	if !cfg.ModerationEnabled() {
		logrus.Warn("Sightengine credentials not set, every submitted image will be replaced by the default")
	}
	moderationClient := NewSightengineClient(cfg.SightengineBaseURL, cfg.SightengineAPIUser, cfg.SightengineAPISecret, cfg.ModerationTimeout)

	return &clients{
		authClient:       authClient,
		rabbitClient:     rabbitClient,
		sheetsClient:     sheetsClient,
		moderationClient: moderationClient,
	}
}
