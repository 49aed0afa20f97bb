// Package assistant talks to the project-manager AI agent, a third service
// instance with deep knowledge of the current project. It has no header
// interceptor; the session token travels as an explicit body field.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/meetly/sync-client/internal/client/rest"
)

type Client struct {
	api      *rest.Client
	tokens   rest.TokenSource
	threadID string
}

// NewClient creates an assistant client with a fresh conversation thread.
// The agent keeps per-thread memory server-side, so one client instance is
// one conversation.
func NewClient(api *rest.Client, tokens rest.TokenSource) *Client {
	return &Client{
		api:      api,
		tokens:   tokens,
		threadID: uuid.NewString(),
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	ProjectID string `json:"project_id,omitempty"`
	ThreadID  string `json:"thread_id"`
	UserID    string `json:"user_id"`
	Token     string `json:"token,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// Chat forwards the message together with the acting user, the project in
// context and the session token.
func (c *Client) Chat(ctx context.Context, message, projectID, userID string) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if userID == "" {
		userID = "1"
	}

	body, status, err := c.api.JSON(ctx, http.MethodPost, "/chat", nil, chatRequest{
		Message:   message,
		ProjectID: projectID,
		ThreadID:  c.threadID,
		UserID:    userID,
		Token:     token,
	})
	if err != nil {
		return "", fmt.Errorf("assistant chat: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("assistant chat: api error status %d", status)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse assistant response: %w", err)
	}
	return resp.Response, nil
}
