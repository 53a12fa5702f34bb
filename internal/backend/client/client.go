package client

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

	"github.com/goaltrack/goaltrack/internal/backend"
	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/session"
)

// BackendConfig is the configuration for the HTTP backend client.
type BackendConfig struct {
	// BaseURL is the remote service base URL, e.g. https://api.example.com.
	BaseURL     string
	Credentials session.Credentials
	HTTPClient  *http.Client
	Logger      log.Logger
}

func (c *BackendConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if c.Credentials == nil {
		return fmt.Errorf("credentials are required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "backend.Client"})
	return nil
}

// Backend is an HTTP implementation of backend.Backend against the remote
// goal tracking service.
type Backend struct {
	baseURL string
	creds   session.Credentials
	client  *http.Client
	logger  log.Logger
}

// NewBackend creates a new HTTP backend client.
func NewBackend(cfg BackendConfig) (*Backend, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Backend{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		creds:   cfg.Credentials,
		client:  cfg.HTTPClient,
		logger:  cfg.Logger,
	}, nil
}

type goalDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Progress    int      `json:"progress"`
	Status      string   `json:"status"`
	Private     bool     `json:"private"`
	OwnerID     string   `json:"owner_id"`
	WorkspaceID string   `json:"workspace_id"`
	ParentID    string   `json:"parent_id"`
	Source      string   `json:"progress_source"`
	TaskIDs     []string `json:"task_ids,omitempty"`
	ProjectIDs  []string `json:"project_ids,omitempty"`
	Timeframe   string   `json:"timeframe"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

type taskDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	GoalID    string `json:"goal_id"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type projectDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GoalID    string `json:"goal_id"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type goalDeltaDTO struct {
	GoalID   string `json:"goal_id"`
	Progress int    `json:"progress"`
}

// FetchGoals lists goals, optionally filtered.
func (b *Backend) FetchGoals(ctx context.Context, filter *backend.GoalFilter) ([]model.Goal, error) {
	q := url.Values{}
	if filter != nil {
		if filter.WorkspaceID != "" {
			q.Set("workspace", filter.WorkspaceID)
		}
		if filter.OwnerID != "" {
			q.Set("owner", filter.OwnerID)
		}
		if filter.Private != nil {
			q.Set("private", fmt.Sprintf("%t", *filter.Private))
		}
	}

	path := "/api/v1/goals"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var dtos []goalDTO
	if err := b.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	goals := make([]model.Goal, 0, len(dtos))
	for _, d := range dtos {
		goals = append(goals, d.toModel())
	}

	return goals, nil
}

// FetchGoal fetches a single goal by id.
func (b *Backend) FetchGoal(ctx context.Context, id string) (*model.Goal, error) {
	var dto goalDTO
	if err := b.do(ctx, http.MethodGet, "/api/v1/goals/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, err
	}

	goal := dto.toModel()
	return &goal, nil
}

// CalculateProgress asks the service to recompute a goal's progress.
func (b *Backend) CalculateProgress(ctx context.Context, goalID string) (int, error) {
	var resp struct {
		Progress int `json:"progress"`
	}
	path := "/api/v1/goals/" + url.PathEscape(goalID) + "/progress/calculate"
	if err := b.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return 0, err
	}

	return resp.Progress, nil
}

// UpdateTaskCompletion marks a task as completed or not.
func (b *Backend) UpdateTaskCompletion(ctx context.Context, taskID string, completed bool, goalID string) (*backend.TaskUpdate, error) {
	req := struct {
		Completed bool   `json:"completed"`
		GoalID    string `json:"goal_id,omitempty"`
	}{Completed: completed, GoalID: goalID}

	var resp struct {
		Task         taskDTO        `json:"task"`
		UpdatedGoals []goalDeltaDTO `json:"updated_goals"`
	}

	path := "/api/v1/tasks/" + url.PathEscape(taskID) + "/completion"
	if err := b.do(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, err
	}

	return &backend.TaskUpdate{
		Task:         resp.Task.toModel(),
		UpdatedGoals: toDeltas(resp.UpdatedGoals),
	}, nil
}

// UpdateProjectStatus marks a project as completed or not.
func (b *Backend) UpdateProjectStatus(ctx context.Context, projectID string, completed bool, goalID string) (*backend.ProjectUpdate, error) {
	req := struct {
		Completed bool   `json:"completed"`
		GoalID    string `json:"goal_id,omitempty"`
	}{Completed: completed, GoalID: goalID}

	var resp struct {
		Project      projectDTO     `json:"project"`
		UpdatedGoals []goalDeltaDTO `json:"updated_goals"`
	}

	path := "/api/v1/projects/" + url.PathEscape(projectID) + "/status"
	if err := b.do(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, err
	}

	return &backend.ProjectUpdate{
		Project:      resp.Project.toModel(),
		UpdatedGoals: toDeltas(resp.UpdatedGoals),
	}, nil
}

// CreateGoal creates a new goal.
func (b *Backend) CreateGoal(ctx context.Context, goal model.Goal) (*model.Goal, error) {
	var dto goalDTO
	if err := b.do(ctx, http.MethodPost, "/api/v1/goals", fromModelGoal(goal), &dto); err != nil {
		return nil, err
	}

	created := dto.toModel()
	return &created, nil
}

// CreateTask creates a new task.
func (b *Backend) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	req := struct {
		Title  string `json:"title"`
		GoalID string `json:"goal_id,omitempty"`
	}{Title: task.Title, GoalID: task.GoalID}

	var dto taskDTO
	if err := b.do(ctx, http.MethodPost, "/api/v1/tasks", req, &dto); err != nil {
		return nil, err
	}

	created := dto.toModel()
	return &created, nil
}

// CreateProject creates a new project.
func (b *Backend) CreateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	req := struct {
		Name   string `json:"name"`
		GoalID string `json:"goal_id,omitempty"`
	}{Name: project.Name, GoalID: project.GoalID}

	var dto projectDTO
	if err := b.do(ctx, http.MethodPost, "/api/v1/projects", req, &dto); err != nil {
		return nil, err
	}

	created := dto.toModel()
	return &created, nil
}

// SetGoalParent assigns a goal's parent.
func (b *Backend) SetGoalParent(ctx context.Context, goalID, parentID string) error {
	req := struct {
		ParentID string `json:"parent_id"`
	}{ParentID: parentID}

	path := "/api/v1/goals/" + url.PathEscape(goalID) + "/parent"
	return b.do(ctx, http.MethodPut, path, req, nil)
}

// do performs an authenticated JSON request and decodes the response into
// out when it is not nil.
func (b *Backend) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := b.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain so the connection can be reused.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s returned %d (%s): %w", method, path, resp.StatusCode, strings.TrimSpace(string(msg)), statusError(resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusConflict:
		return model.ErrAlreadyExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return model.ErrNotValid
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.ErrNoSession
	default:
		return fmt.Errorf("unexpected status code %d", code)
	}
}

func toDeltas(dtos []goalDeltaDTO) []model.GoalProgressDelta {
	if len(dtos) == 0 {
		return nil
	}
	deltas := make([]model.GoalProgressDelta, 0, len(dtos))
	for _, d := range dtos {
		deltas = append(deltas, model.GoalProgressDelta{GoalID: d.GoalID, Progress: d.Progress})
	}
	return deltas
}

func (d goalDTO) toModel() model.Goal {
	return model.Goal{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Progress:    model.ClampProgress(d.Progress),
		Status:      model.GoalStatus(d.Status),
		Private:     d.Private,
		OwnerID:     d.OwnerID,
		WorkspaceID: d.WorkspaceID,
		ParentID:    d.ParentID,
		Source:      model.ProgressSource(d.Source),
		TaskIDs:     d.TaskIDs,
		ProjectIDs:  d.ProjectIDs,
		Timeframe:   d.Timeframe,
		CreatedAt:   time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt:   time.Unix(d.UpdatedAt, 0).UTC(),
	}
}

func fromModelGoal(g model.Goal) goalDTO {
	return goalDTO{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Progress:    g.Progress,
		Status:      string(g.Status),
		Private:     g.Private,
		OwnerID:     g.OwnerID,
		WorkspaceID: g.WorkspaceID,
		ParentID:    g.ParentID,
		Source:      string(g.Source),
		Timeframe:   g.Timeframe,
		CreatedAt:   g.CreatedAt.Unix(),
		UpdatedAt:   g.UpdatedAt.Unix(),
	}
}

func (d taskDTO) toModel() model.Task {
	return model.Task{
		ID:        d.ID,
		Title:     d.Title,
		GoalID:    d.GoalID,
		Completed: d.Completed,
		CreatedAt: time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(d.UpdatedAt, 0).UTC(),
	}
}

func (d projectDTO) toModel() model.Project {
	return model.Project{
		ID:        d.ID,
		Name:      d.Name,
		GoalID:    d.GoalID,
		Completed: d.Completed,
		CreatedAt: time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(d.UpdatedAt, 0).UTC(),
	}
}
