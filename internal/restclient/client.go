// Package restclient implements the remote store over the HTTP items resource
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/taskboard/internal/api"
	"github.com/thenoetrevino/taskboard/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client talks to a taskboard server
type Client struct {
	baseURL  string
	http     *http.Client
	clientID string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithClientID sends id in the X-Client-ID header so the server can skip
// this client when broadcasting its own changes
func WithClientID(id string) Option {
	return func(client *Client) {
		client.clientID = id
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List implements gateway.TaskReader
func (c *Client) List(ctx context.Context, status models.Status) ([]models.Task, error) {
	path := "/items"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return tasks, nil
}

// Count implements gateway.TaskReader
func (c *Client) Count(ctx context.Context, status models.Status) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	path := "/items/count?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return resp.Count, nil
}

// Insert implements gateway.TaskWriter
func (c *Client) Insert(ctx context.Context, task models.Task) (models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, "/items", task, &created); err != nil {
		return models.Task{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return created, nil
}

// Update implements gateway.TaskWriter
func (c *Client) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	var updated models.Task
	if err := c.do(ctx, http.MethodPatch, "/items/"+url.PathEscape(id), patch, &updated); err != nil {
		return models.Task{}, fmt.Errorf("failed to update item %s: %w", id, err)
	}
	return updated, nil
}

// BatchUpsert implements gateway.TaskWriter
func (c *Client) BatchUpsert(ctx context.Context, updates []models.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, "/items/upsert", updates, nil); err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}
	return nil
}

// Delete implements gateway.TaskWriter
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// ListExecutors implements gateway.ExecutorRepository
func (c *Client) ListExecutors(ctx context.Context) ([]models.Executor, error) {
	var executors []models.Executor
	if err := c.do(ctx, http.MethodGet, "/executors", nil, &executors); err != nil {
		return nil, fmt.Errorf("failed to list executors: %w", err)
	}
	return executors, nil
}

// CreateExecutor implements gateway.ExecutorRepository
func (c *Client) CreateExecutor(ctx context.Context, name, email string) (models.Executor, error) {
	body := map[string]string{"name": name, "email": email}
	var created models.Executor
	if err := c.do(ctx, http.MethodPost, "/executors", body, &created); err != nil {
		return models.Executor{}, fmt.Errorf("failed to create executor: %w", err)
	}
	return created, nil
}

// Ping checks that the server is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		req.Header.Set(api.ClientIDHeader, c.clientID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError maps an error response back to the domain errors the stores return
func decodeError(resp *http.Response) error {
	var body api.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body)

	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Code:       body.Error.Code,
		Message:    body.Error.Message,
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && strings.Contains(body.Error.Message, models.ErrExecutorNotFound.Error()):
		return fmt.Errorf("%w: %w", models.ErrExecutorNotFound, statusErr)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", models.ErrTaskNotFound, statusErr)
	case resp.StatusCode == http.StatusBadRequest && strings.Contains(body.Error.Message, models.ErrInvalidStatus.Error()):
		return fmt.Errorf("%w: %w", models.ErrInvalidStatus, statusErr)
	case resp.StatusCode == http.StatusBadRequest && strings.Contains(body.Error.Message, models.ErrInvalidPriority.Error()):
		return fmt.Errorf("%w: %w", models.ErrInvalidPriority, statusErr)
	}
	return statusErr
}

