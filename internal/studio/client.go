// Package studio provides the HTTP client for the Griha Studio backend:
// room uploads, design generation, Vastu reports, and cost estimates.
package studio

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

	"github.com/grihastudio/griha/internal/model"
)

const (
	// DefaultBaseURL is the production API root. Overridable for staging
	// and tests via config or --api-url.
	DefaultBaseURL = "https://api.grihastudio.com"

	requestTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB

	tokenPrefix = "eyJ" // access tokens are JWTs
)

var (
	// ErrUnauthorized indicates the access token is expired or invalid.
	ErrUnauthorized = errors.New("studio: unauthorized (access token expired or invalid)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("studio: rate limited")
	// ErrNotFound indicates the requested room, design, or job does not exist.
	ErrNotFound = errors.New("studio: not found")
)

// Client talks to the Griha Studio API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the given base URL and access token.
// Returns nil if the token is empty or does not look like a JWT.
func NewClient(baseURL, token string) *Client {
	token = strings.TrimSpace(token)
	if token == "" || !strings.HasPrefix(token, tokenPrefix) {
		return nil
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
	}
}

// Me returns the authenticated account with plan and quota.
func (c *Client) Me(ctx context.Context) (*model.Account, error) {
	body, err := c.get(ctx, "/v1/me")
	if err != nil {
		return nil, err
	}
	var acct model.Account
	if err := json.Unmarshal(body, &acct); err != nil {
		return nil, fmt.Errorf("studio: parsing account: %w", err)
	}
	return &acct, nil
}

// ListRooms returns all rooms for the account, newest first.
func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	body, err := c.get(ctx, "/v1/rooms")
	if err != nil {
		return nil, err
	}
	var rooms []model.Room
	if err := json.Unmarshal(body, &rooms); err != nil {
		return nil, fmt.Errorf("studio: parsing rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns a single room by ID.
func (c *Client) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	body, err := c.get(ctx, "/v1/rooms/"+id)
	if err != nil {
		return nil, err
	}
	var room model.Room
	if err := json.Unmarshal(body, &room); err != nil {
		return nil, fmt.Errorf("studio: parsing room: %w", err)
	}
	return &room, nil
}

// RequestDesigns submits a generation brief for a room and returns the job
// tracking it.
func (c *Client) RequestDesigns(ctx context.Context, roomID string, brief model.DesignBrief) (*model.GenerationJob, error) {
	body, err := c.postJSON(ctx, "/v1/rooms/"+roomID+"/designs", brief)
	if err != nil {
		return nil, err
	}
	var job model.GenerationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("studio: parsing job: %w", err)
	}
	return &job, nil
}

// GetJob returns the current state of a generation job.
func (c *Client) GetJob(ctx context.Context, id string) (*model.GenerationJob, error) {
	body, err := c.get(ctx, "/v1/jobs/"+id)
	if err != nil {
		return nil, err
	}
	var job model.GenerationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("studio: parsing job: %w", err)
	}
	return &job, nil
}

// ListActiveJobs returns jobs that are still queued or processing.
func (c *Client) ListActiveJobs(ctx context.Context) ([]model.GenerationJob, error) {
	body, err := c.get(ctx, "/v1/jobs?status=active")
	if err != nil {
		return nil, err
	}
	var jobs []model.GenerationJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("studio: parsing jobs: %w", err)
	}
	return jobs, nil
}

// ListDesigns returns the rendered designs for a room, newest first.
func (c *Client) ListDesigns(ctx context.Context, roomID string) ([]model.Design, error) {
	body, err := c.get(ctx, "/v1/rooms/"+roomID+"/designs")
	if err != nil {
		return nil, err
	}
	var designs []model.Design
	if err := json.Unmarshal(body, &designs); err != nil {
		return nil, fmt.Errorf("studio: parsing designs: %w", err)
	}
	return designs, nil
}

// GetDesign returns a single design by ID.
func (c *Client) GetDesign(ctx context.Context, id string) (*model.Design, error) {
	body, err := c.get(ctx, "/v1/designs/"+id)
	if err != nil {
		return nil, err
	}
	var d model.Design
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("studio: parsing design: %w", err)
	}
	return &d, nil
}

// VastuReport returns the orientation analysis for a room.
func (c *Client) VastuReport(ctx context.Context, roomID string) (*model.VastuReport, error) {
	body, err := c.get(ctx, "/v1/rooms/"+roomID+"/vastu")
	if err != nil {
		return nil, err
	}
	var rep model.VastuReport
	if err := json.Unmarshal(body, &rep); err != nil {
		return nil, fmt.Errorf("studio: parsing vastu report: %w", err)
	}
	return &rep, nil
}

// Estimate returns the itemized cost estimate for a design.
func (c *Client) Estimate(ctx context.Context, designID string) (*model.CostEstimate, error) {
	body, err := c.get(ctx, "/v1/designs/"+designID+"/estimate")
	if err != nil {
		return nil, err
	}
	var est model.CostEstimate
	if err := json.Unmarshal(body, &est); err != nil {
		return nil, fmt.Errorf("studio: parsing estimate: %w", err)
	}
	return &est, nil
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("studio: creating request: %w", err)
	}
	return c.do(req)
}

// postJSON performs an authenticated POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("studio: encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("studio: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// do sends the request with auth headers and maps error statuses to
// sentinels. The response body is read fully, bounded by maxBodySize.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "griha/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("studio: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusNotFound:
		return nil, ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("studio: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("studio: reading response: %w", err)
	}
	return body, nil
}
