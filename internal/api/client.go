// Package api talks to the metadata backend, which turns a post link into media URLs.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrBackend = errors.New("backend error")
)

// BackendError is the message the backend reported in its "error" field.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

type Config struct {
	// Base URL of the backend, e.g. "http://localhost:3000".
	BaseURL string
	Timeout time.Duration
}

var DefaultConfig = Config{
	BaseURL: "http://localhost:3000",
	Timeout: 30 * time.Second,
}

type Client struct {
	config Config
	client *http.Client
	log    *zap.SugaredLogger
}

func New(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    zap.S().Named("api"),
	}
}

// Fetch asks the backend to describe link. If the backend reports an error, it is returned as a *BackendError, with
// the message unchanged.
func (c *Client) Fetch(ctx context.Context, link string) (*Response, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/api/download?url=" + url.QueryEscape(link)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debugf("fetching %s", endpoint)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}
	var data Response
	if err := json.Unmarshal(body, &data); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: %s", ErrBackend, resp.Status)
		}
		return nil, fmt.Errorf("invalid backend response: %w", err)
	}
	if data.Error != "" {
		return nil, &BackendError{Message: data.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBackend, resp.Status)
	}
	return &data, nil
}
