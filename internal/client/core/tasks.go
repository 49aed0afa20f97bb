package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/meetly/sync-client/internal/models"
)

// TasksByProject lists the project's tasks. statusFilter, when non-empty,
// is passed through as a query parameter verbatim; the backend decides what
// it means.
func (c *Client) TasksByProject(ctx context.Context, projectID, statusFilter string) ([]models.Task, error) {
	var query url.Values
	if statusFilter != "" {
		query = url.Values{"status_filter": {statusFilter}}
	}
	body, status, err := c.api.JSON(ctx, http.MethodGet, "/tasks/"+projectID, query, nil)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	if !ok(status) {
		return nil, domainFailure("get tasks", status, body)
	}

	var payloads []taskPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}

	tasks := make([]models.Task, len(payloads))
	for i, p := range payloads {
		tasks[i] = mapTask(p, c.seq.Add(1))
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, newTask models.NewTask, authorID string) (models.Task, error) {
	dueDate, err := normalizeTimestamp(newTask.DueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	req := createTaskRequest{
		Title:       newTask.Title,
		Description: newTask.Description,
		Priority:    string(newTask.Priority),
		ProjectID:   newTask.ProjectID,
		DueDate:     dueDate,
		Tags:        newTask.Tags,
		AuthorID:    authorID,
	}
	if newTask.AssigneeID != "" {
		req.AssigneeID = &newTask.AssigneeID
	}

	body, status, err := c.api.JSON(ctx, http.MethodPost, "/tasks/", nil, req)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	if !ok(status) {
		return models.Task{}, domainFailure("create task", status, body)
	}

	var p taskPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.Task{}, fmt.Errorf("parse created task: %w", err)
	}
	return mapTask(p, c.seq.Add(1)), nil
}

// UpdateTaskStatus hits the dedicated status endpoint. Drag-and-drop is the
// highest-frequency mutation and must not require the full task body.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, newStatus models.TaskStatus) (models.Task, error) {
	query := url.Values{"new_status": {string(newStatus)}}
	body, status, err := c.api.JSON(ctx, http.MethodPatch, "/tasks/"+taskID+"/status", query, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}
	if !ok(status) {
		return models.Task{}, domainFailure("update task status", status, body)
	}

	var p taskPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.Task{}, fmt.Errorf("parse updated task: %w", err)
	}
	return mapTask(p, c.seq.Add(1)), nil
}

// UpdateTask forwards exactly the fields the caller set. Presence is
// pointer-based, so an explicit empty value clears the field; nil fields
// never reach the wire.
func (c *Client) UpdateTask(ctx context.Context, taskID string, updates models.TaskUpdate) (models.Task, error) {
	req := updateTaskRequest{
		Title:       updates.Title,
		Description: updates.Description,
		Status:      (*string)(updates.Status),
		Priority:    (*string)(updates.Priority),
		Tags:        updates.Tags,
		StartDate:   updates.StartDate,
		DueDate:     updates.DueDate,
		AssigneeID:  updates.AssigneeID,
	}

	body, status, err := c.api.JSON(ctx, http.MethodPatch, "/tasks/"+taskID, nil, req)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	if !ok(status) {
		return models.Task{}, domainFailure("update task", status, body)
	}

	var p taskPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.Task{}, fmt.Errorf("parse updated task: %w", err)
	}
	return mapTask(p, c.seq.Add(1)), nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	body, status, err := c.api.JSON(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !ok(status) {
		return domainFailure("delete task", status, body)
	}
	return nil
}
