package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const contentType = "application/json"

// Client is the HTTP client shared by every RapidAPI-backed connector.
// Each marketplace lives behind its own host header but the request shape and
// error mapping are identical.
type Client struct {
	HTTPClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

func NewClient(apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey: apiKey,
		logger: logger,
	}
}

func (c *Client) postJSON(ctx context.Context, rawURL, host string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req, host, target)
}

func (c *Client) getJSON(ctx context.Context, rawURL, host string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return c.do(req, host, target)
}

func (c *Client) do(req *http.Request, host string, target any) error {
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if host != "" {
		req.Header.Set("X-RapidAPI-Host", host)
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode, resp.Status); err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return nil
}

func classifyStatus(code int, status string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, status)
	case code >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, status)
	default:
		return fmt.Errorf("%w: unexpected status %s", ErrInvalidResponse, status)
	}
}

