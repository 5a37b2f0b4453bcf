package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/tiffin/internal/config"
	"github.com/mmcdole/tiffin/internal/domain"
)

const defaultTimeout = 10 * time.Second

// UserResponse is the subset of the GitHub users endpoint the profile card shows
type UserResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// Client loads user profiles
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a profile client
func NewClient(cfg config.ProfileConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchProfile loads one user. Any failure is reported as domain.ErrProfileFailed.
func (c *Client) FetchProfile(ctx context.Context, login string) (*domain.Profile, error) {
	if login == "" {
		return nil, fmt.Errorf("%w: login is required", domain.ErrProfileFailed)
	}

	reqURL := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrProfileFailed, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	c.logger.Debug("profile request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("profile request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrProfileFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("profile request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrProfileFailed, resp.StatusCode)
	}

	var user UserResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrProfileFailed, err)
	}

	return MapProfile(user), nil
}

// MapProfile converts the API response to a domain profile
func MapProfile(u UserResponse) *domain.Profile {
	return &domain.Profile{
		Login:       u.Login,
		Name:        u.Name,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
	}
}
