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

	"github.com/sandeepkv93/taskapi/internal/model"
)

// ErrNotFound reports a task id the server does not know.
var ErrNotFound = errors.New("client: task not found")

// Client calls the task API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// ListTasks returns every task on the server.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id int64) (model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, http.StatusOK, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// CreateTask stores a new task and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", task, http.StatusCreated, &created); err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// UpdateTask overwrites the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, task model.Task) error {
	return c.do(ctx, http.MethodPut, taskPath(task.ID), task, http.StatusNoContent, nil)
}

// DeleteTask removes a task and returns its last stored state.
func (c *Client) DeleteTask(ctx context.Context, id int64) (model.Task, error) {
	var deleted model.Task
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, http.StatusOK, &deleted); err != nil {
		return model.Task{}, err
	}
	return deleted, nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("/tasks/%d", id)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, wantStatus int, dest any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != wantStatus {
		return readErrorResponse(resp)
	}
	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]string
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		if message, ok := payload["error"]; ok {
			return fmt.Errorf("taskapi error: %s", message)
		}
	}
	return fmt.Errorf("taskapi error: %s", resp.Status)
}
