// Package squid talks to the cross-chain route and status service.
package squid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

const (
	// DefaultBaseURL is the public route service endpoint
	DefaultBaseURL = "https://apiplus.squidrouter.com"

	serviceName        = "route service"
	integratorIDHeader = "x-integrator-id"
	requestIDHeader    = "x-request-id"
	defaultTimeout     = 30 * time.Second
	maxErrorBody       = 4096
)

// Client is the HTTP client for the route service
type Client struct {
	baseURL      string
	integratorID string
	httpClient   *http.Client
	log          *slog.Logger
}

// NewClient creates a client from the API settings
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.API.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		integratorID: cfg.API.IntegratorID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With("component", "RouteService"),
	}
}

// do sends a request and decodes a 200 response into out. Non-200 responses
// become RemoteServiceError, 404 additionally wraps ErrTransactionNotFound.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, out any) (http.Header, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.integratorID != "" {
		req.Header.Set(integratorIDHeader, c.integratorID)
	}

	c.log.Debug("request", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RemoteServiceError{
			Service: serviceName,
			Method:  method,
			URL:     endpoint,
			Payload: payload,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		remoteErr := &domain.RemoteServiceError{
			Service:    serviceName,
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
			Payload:    payload,
		}
		if resp.StatusCode == http.StatusNotFound {
			remoteErr.Err = domain.ErrTransactionNotFound
		}
		return resp.Header, remoteErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.Header, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.Header, nil
}
