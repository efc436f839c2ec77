package upload

import (
	"context"

	"github.com/dreadedbot/group_games_bot/pkg/errors"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
)

// Provider uploads a file to one hosting service and returns its public URL.
type Provider interface {
	Name() string
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Chain tries providers in order and returns the first successful URL.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var lastErr error
	for _, p := range c.providers {
		url, err := p.Upload(ctx, filename, data)
		if err == nil {
			return url, nil
		}
		lastErr = err
		logger.Warn("Upload provider failed, trying next", "provider", p.Name(), "error", err)
	}
	return "", errors.Wrap(lastErr, errors.ErrCodeUpload, "all upload providers failed")
}
