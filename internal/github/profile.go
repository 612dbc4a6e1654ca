// internal/github/profile.go
package github

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/model"
)

// ProfileCache serves one user's profile, refetching it once it is older than ttl.
type ProfileCache struct {
	client *Client
	login  string
	ttl    time.Duration

	mu    sync.Mutex
	stats *model.ProfileStats
}

// NewProfileCache creates a cache for login.
func NewProfileCache(client *Client, login string, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, login: login, ttl: ttl}
}

// Profile returns the cached profile or fetches a fresh one. When a refetch fails
// a stale profile is still returned.
func (p *ProfileCache) Profile(ctx context.Context) (*model.ProfileStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stats != nil && p.client.now().Sub(p.stats.FetchedAt) < p.ttl {
		return p.stats, nil
	}
	stats, err := p.client.GetProfile(ctx, p.login)
	if err != nil {
		if p.stats != nil {
			p.client.logger.Warn("Serving stale profile", "login", p.login, "error", err)
			return p.stats, nil
		}
		return nil, err
	}
	p.stats = stats
	return stats, nil
}
