package gateway

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

	model "taskboard.com/taskboard/internal/models"
)

// Client talks to the task service over HTTP/JSON. All wire field names are
// snake_case; due dates travel as RFC3339.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type createTaskBody struct {
	Title      string           `json:"title"`
	UserID     string           `json:"user_id"`
	BuildingID string           `json:"building_id"`
	Status     model.TaskStatus `json:"status"`
	DueDate    time.Time        `json:"due_date"`
}

type updateStatusBody struct {
	Status model.TaskStatus `json:"status"`
}

type listTasksResponse struct {
	Count int          `json:"count"`
	Tasks []model.Task `json:"tasks"`
}

func (c *Client) ListTasks(ctx context.Context, filter Filter) ([]model.Task, error) {
	path := "/tasks"
	query := url.Values{}
	if filter.UserID != "" {
		query.Set("user_id", filter.UserID)
	}
	if filter.BuildingID != "" {
		query.Set("building_id", filter.BuildingID)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp listTasksResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListBuildings(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	if err := c.do(ctx, http.MethodGet, "/buildings", nil, &buildings); err != nil {
		return nil, err
	}
	return buildings, nil
}

func (c *Client) CreateTask(ctx context.Context, draft Draft) (model.Task, error) {
	body := createTaskBody{
		Title:      draft.Title,
		UserID:     draft.UserID,
		BuildingID: draft.BuildingID,
		Status:     draft.Status,
		DueDate:    draft.DueDate,
	}
	if body.Status == "" {
		body.Status = model.StatusToDo
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	var task model.Task
	path := "/tasks/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, updateStatusBody{Status: status}, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx statuses map onto the gateway error kinds: 404 is NotFoundError,
// 400 and 422 are ValidationError, everything else is TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: method + " " + path, Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	return nil
}

func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	message := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{ID: pathTaskID(path)}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Reason: message}
	default:
		return &TransportError{
			Op:  method + " " + path,
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, message),
		}
	}
}

// readErrorMessage pulls the message out of an echo error body, falling
// back to the raw body text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}

func pathTaskID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "tasks" {
		return parts[1]
	}
	return ""
}
