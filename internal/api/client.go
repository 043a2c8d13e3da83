package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

// HTTPDoer is the subset of tls_client.HttpClient the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BackendInterface is what the chat widget needs from the backend
type BackendInterface interface {
	Chat(ctx context.Context, message string) (*models.ChatResponse, error)
	Health(ctx context.Context) (*models.HealthStatus, error)
}

// Client talks to the documentation assistant backend
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	timeout    time.Duration
}

// Ensure Client implements BackendInterface
var _ BackendInterface = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the default TLS client
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout bounds each chat request. Zero (the default) means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new Client for the backend at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	client := &Client{
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		// Deadlines come from the request context, not the transport
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request chat timeout (zero when disabled)
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do sends req and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, req *http.Request, operation, endpoint string) ([]byte, error) {
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(fmt.Sprintf("%s after %s", operation, c.timeout))
		}
		return nil, apierrors.NewNetworkError(operation, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	// One byte past the limit tells a full body from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, apierrors.NewNetworkError(operation, endpoint, fmt.Errorf("read body: %w", err))
	}
	tooLarge := len(body) > maxBodySize
	if tooLarge {
		body = body[:maxBodySize]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, operation+" failed").WithBody(string(body))
	}

	if tooLarge {
		return nil, fmt.Errorf("%s %s: %w (limit %d bytes)", operation, endpoint, apierrors.ErrBodyTooLarge, maxBodySize)
	}

	return body, nil
}
