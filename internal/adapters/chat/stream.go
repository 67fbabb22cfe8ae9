package chat

import (
	"context"
	"fmt"
	"time"

	stream "github.com/GetStream/stream-chat-go/v6"

	"stream-token-backend/internal/config"
)

// StreamPlatform registers users and signs user tokens through Stream Chat
type StreamPlatform struct {
	client   *stream.Client
	tokenTTL time.Duration
	now      func() time.Time
}

// NewStreamPlatform creates a server-side Stream client. It performs no
// network calls.
func NewStreamPlatform(cfg config.StreamConfig) (*StreamPlatform, error) {
	client, err := stream.NewClient(cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %w", err)
	}
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}

	return &StreamPlatform{
		client:   client,
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
	}, nil
}

// UpsertIdentities creates or updates one user per id
func (p *StreamPlatform) UpsertIdentities(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	users := make([]*stream.User, 0, len(userIDs))
	for _, id := range userIDs {
		users = append(users, &stream.User{ID: id})
	}

	if _, err := p.client.UpsertUsers(ctx, users...); err != nil {
		return fmt.Errorf("failed to upsert %d users: %w", len(users), err)
	}
	return nil
}

// IssueToken signs a token for userID. A zero TTL issues a token without expiry.
func (p *StreamPlatform) IssueToken(ctx context.Context, userID string) (string, error) {
	var expire time.Time
	issuedAt := p.now()
	if p.tokenTTL > 0 {
		expire = issuedAt.Add(p.tokenTTL)
	}

	token, err := p.client.CreateToken(userID, expire, issuedAt)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}
	return token, nil
}
