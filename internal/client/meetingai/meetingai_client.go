// Package meetingai talks to the meeting-analysis AI backend, a separate
// service instance from the primary API. Its rest client is built with the
// attach-token flag so the bearer token still reaches it.
package meetingai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meetly/sync-client/internal/client/rest"
	"github.com/meetly/sync-client/internal/models"
)

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

type processTranscriptRequest struct {
	Transcript string `json:"transcript"`
}

type taskPayload struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"due_date"`
	AuthorID    string   `json:"author_id"`
	AssigneeID  string   `json:"assignee_id"`
	ProjectID   string   `json:"project_id"`
	CreatedAt   string   `json:"created_at"`
}

type chatRequest struct {
	Transcript string `json:"transcript"`
}

type chatResponse struct {
	Transcript string `json:"transcript"`
}

// ProcessTranscript asks the agent to extract action items from a raw
// transcript. The backend materializes them as tasks of the meeting's
// project and returns them.
func (c *Client) ProcessTranscript(ctx context.Context, meetingID, transcript string) ([]models.Task, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/ai/meeting/"+meetingID+"/process-transcript", nil, processTranscriptRequest{
		Transcript: transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("process transcript: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("process transcript: api error status %d", status)
	}

	var payloads []taskPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("parse extracted tasks: %w", err)
	}

	tasks := make([]models.Task, len(payloads))
	for i, p := range payloads {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		tasks[i] = models.Task{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Status:      models.TaskStatus(p.Status),
			Priority:    models.TaskPriority(p.Priority),
			Tags:        tags,
			StartDate:   p.CreatedAt,
			DueDate:     p.DueDate,
			AuthorID:    p.AuthorID,
			AssigneeID:  p.AssigneeID,
			ProjectID:   p.ProjectID,
			CreatedAt:   p.CreatedAt,
		}
	}
	return tasks, nil
}

// Chat is a single request/response exchange with the meeting assistant.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/ai/chat", nil, chatRequest{Transcript: prompt})
	if err != nil {
		return "", fmt.Errorf("ai chat: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("ai chat: api error status %d", status)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse ai chat response: %w", err)
	}
	return resp.Transcript, nil
}
