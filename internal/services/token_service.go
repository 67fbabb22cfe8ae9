package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/models"
)

// tokenFailedMessage is all a caller ever sees of a platform failure
const tokenFailedMessage = "Failed to create token"

// tokenService implements TokenService
type tokenService struct {
	config   config.StreamConfig
	platform MessagingPlatform
}

// NewTokenService creates a new token service. platform may be nil when the
// messaging platform is not configured.
func NewTokenService(cfg config.StreamConfig, platform MessagingPlatform) TokenService {
	return &tokenService{
		config:   cfg,
		platform: platform,
	}
}

// CheckConfiguration reports missing platform credentials
func (s *tokenService) CheckConfiguration() error {
	if !s.config.Configured() || s.platform == nil {
		logrus.WithField("config", s.config.Diagnostics()).Error("Missing STREAM_API_KEY or STREAM_API_SECRET")
		return NewMisconfiguredError(s.config.Diagnostics())
	}
	return nil
}

// IssueToken registers userId and its members with the platform, then mints
// a token scoped to userId alone. The platform rejects channels that
// reference unknown users, so the upsert must finish first.
func (s *tokenService) IssueToken(ctx context.Context, req *models.TokenRequest) (*models.TokenResponse, error) {
	if req == nil {
		req = &models.TokenRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.CheckConfiguration(); err != nil {
		return nil, err
	}

	identities := req.Identities()
	logger := logrus.WithFields(logrus.Fields{
		"user_id":    req.UserID,
		"identities": len(identities),
	})

	if err := s.platform.UpsertIdentities(ctx, identities); err != nil {
		logger.WithError(err).Error("Identity upsert error")
		return nil, NewUpstreamError(tokenFailedMessage, err)
	}

	token, err := s.platform.IssueToken(ctx, req.UserID)
	if err != nil {
		logger.WithError(err).Error("Token error")
		return nil, NewUpstreamError(tokenFailedMessage, err)
	}

	logger.Info("Token issued")
	return &models.TokenResponse{Token: token}, nil
}
