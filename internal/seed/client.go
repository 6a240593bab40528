package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoutdesk/internal/domain/types"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the scouting desk HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks that the service answers on /healthz.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Code: "unhealthy"}
	}
	return nil
}

// Board fetches the resolved board.
func (c *Client) Board(ctx context.Context, scoutID, search string) (types.BoardView, error) {
	q := url.Values{}
	if scoutID != "" {
		q.Set("scout_id", scoutID)
	}
	if search != "" {
		q.Set("q", search)
	}
	var view types.BoardView
	err := c.do(ctx, http.MethodGet, "/board?"+q.Encode(), nil, &view)
	return view, err
}

// Performance fetches the scout performance summary.
func (c *Client) Performance(ctx context.Context) (types.PerformanceView, error) {
	var view types.PerformanceView
	err := c.do(ctx, http.MethodGet, "/performance", nil, &view)
	return view, err
}

// created is the part of every create response the seeder needs.
type created struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Post sends body to path under a fresh Idempotency-Key and returns the
// new record's id. dup reports that the service had already seen the key.
func (c *Client) Post(ctx context.Context, path string, body any) (id string, dup bool, err error) {
	var out created
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", false, err
	}
	return out.ID, out.Duplicate, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}
