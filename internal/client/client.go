// Package client talks to a running dinner planner relay over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

const (
	planPath     = "/api/plan-dinners"
	maxBodyBytes = 5 << 20
)

// APIError is a non-2xx answer from the relay.
type APIError struct {
	StatusCode int
	Body       types.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("relay returned %d: %s", e.StatusCode, e.Body.Message)
	}
	return fmt.Sprintf("relay returned %d", e.StatusCode)
}

// Client posts plan requests to the relay endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the relay at baseURL. A nil httpClient gets a
// client whose timeout exceeds the relay's own upstream timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// PlanDinners sends req and returns the raw success body for normalization.
func (c *Client) PlanDinners(ctx context.Context, req types.PlanRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+planPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build plan request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plan request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read plan response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, &apiErr.Body)
		return nil, apiErr
	}
	return data, nil
}

// IsAPIError reports whether err came from a non-2xx relay answer.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
