// internal/github/client.go
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"portfolio/internal/model"
)

const (
	maxRetries   = 3
	retryBackoff = 100 * time.Millisecond
)

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewClient creates and configures a new Client instance.
// A non-empty token is used to create an authenticated http.Client; an empty one
// falls back to unauthenticated requests with the lower rate limit.
func NewClient(token string, logger *slog.Logger) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		gh:     github.NewClient(hc),
		logger: logger,
		now:    time.Now,
	}
}

// GetProfile fetches the public counters of a user profile.
func (c *Client) GetProfile(ctx context.Context, login string) (*model.ProfileStats, error) {
	var user *github.User
	err := c.withRetry(ctx, "get user", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		user, resp, err = c.gh.Users.Get(ctx, login)
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return toProfileStats(user, c.now()), nil
}

// withRetry runs call up to maxRetries times. Server errors are retried with a
// linear backoff, rate limit errors wait until the limit resets. Any other error
// is returned at once.
func (c *Client) withRetry(ctx context.Context, op string, call func() (*github.Response, error)) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var resp *github.Response
		resp, err = call()
		if err == nil {
			return nil
		}

		var wait time.Duration
		var rateErr *github.RateLimitError
		switch {
		case errors.As(err, &rateErr):
			wait = time.Until(rateErr.Rate.Reset.Time)
			c.logger.Warn("GitHub rate limit hit, waiting for reset", "op", op, "attempt", attempt, "wait", wait)
		case resp != nil && resp.StatusCode >= http.StatusInternalServerError:
			wait = retryBackoff * time.Duration(attempt)
			c.logger.Warn("GitHub server error, retrying", "op", op, "attempt", attempt, "status", resp.StatusCode)
		default:
			return err
		}

		if attempt == maxRetries {
			break
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	c.logger.Error("GitHub request failed after retries", "op", op, "attempts", maxRetries, "error", err)
	return err
}

// toProfileStats translates a github.User object to our internal model.ProfileStats.
func toProfileStats(u *github.User, fetchedAt time.Time) *model.ProfileStats {
	return &model.ProfileStats{
		Login:       u.GetLogin(),
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		FetchedAt:   fetchedAt,
	}
}
