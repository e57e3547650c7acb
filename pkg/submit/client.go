package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const maxResponseSize = 1 << 20

// Response is what the server answered
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status indicates success
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Creator sends an encoded recipe to the creation endpoint. An error means
// no interpretable response was received.
type Creator interface {
	Create(ctx context.Context, p *Payload) (*Response, error)
}

// Client posts payloads to a fixed endpoint. It makes exactly one request
// per call and never retries.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for endpoint. A zero timeout keeps the
// transport default.
func NewClient(endpoint string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// WithHTTPClient returns a copy of the client using httpClient
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		Endpoint:   c.Endpoint,
		HTTPClient: httpClient,
		log:        c.log,
	}
}

// Create posts the payload and returns the status and body
func (c *Client) Create(ctx context.Context, p *Payload) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(p.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", p.ContentType)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("posting recipe", "endpoint", c.Endpoint, "bytes", len(p.Body), "title", p.Title)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("recipe endpoint answered", "status", resp.StatusCode, "bytes", len(body))
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
