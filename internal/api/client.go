// Package api implements the HTTP client for the backend task API. All
// calls are JSON over HTTP; non-2xx responses are decoded into *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
	"go.uber.org/zap"
)

// Client talks to one backend instance
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a backend client. The token, when non-empty, is sent
// as a bearer credential on every request.
func NewClient(baseURL, token string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ListTasks fetches the tasks matching the filter
func (c *Client) ListTasks(ctx context.Context, f filter.Filter) ([]models.Task, error) {
	path := "/tasks"
	if q := f.Query().Encode(); q != "" {
		path += "?" + q
	}
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Archive fetches the date-grouped completed tasks
func (c *Client) Archive(ctx context.Context) ([]models.ArchiveGroup, error) {
	var groups []models.ArchiveGroup
	if err := c.do(ctx, http.MethodGet, "/archive", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Tags fetches the known tag names
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.do(ctx, http.MethodGet, "/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTask creates a task and returns the server-confirmed result
func (c *Client) CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial update and returns the updated task
func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id, patch, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ToggleTask flips the completion flag server-side
func (c *Client) ToggleTask(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id+"/toggle", nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes the task server-side
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// Health probes the backend health endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("backend_request_failed",
			zap.String("method", method),
			zap.String("url", logger.SanitizeURL(c.baseURL+path)),
			zap.Error(err),
		)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend_request",
		zap.String("method", method),
		zap.String("url", logger.SanitizeURL(c.baseURL+path)),
		zap.Int("status_code", resp.StatusCode),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError builds an *APIError from a non-2xx response. A body that does
// not parse still yields an APIError carrying the status code.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(data) > 0 {
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
