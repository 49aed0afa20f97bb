package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meetly/sync-client/internal/models"
)

// InitialData fetches all projects and derives the de-duplicated set of
// users referenced by project membership. The first occurrence of an id
// wins; later duplicates are ignored.
func (c *Client) InitialData(ctx context.Context) ([]models.Project, []models.User, error) {
	body, status, err := c.api.JSON(ctx, http.MethodGet, "/projects/", nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("get projects: %w", err)
	}
	if !ok(status) {
		return nil, nil, domainFailure("get projects", status, body)
	}

	var payloads []projectPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, nil, fmt.Errorf("parse projects: %w", err)
	}

	projects := make([]models.Project, len(payloads))
	users := []models.User{}
	seen := make(map[string]struct{})
	for i, p := range payloads {
		projects[i] = mapProject(p)
		for _, m := range p.Members {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			users = append(users, mapUser(m))
		}
	}
	return projects, users, nil
}

func (c *Client) CreateProject(ctx context.Context, data models.ProjectCreate, ownerID string) (models.Project, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/projects/", nil, createProjectRequest{
		Name:        data.Name,
		Description: data.Description,
		MemberIDs:   data.MemberIDs,
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	if !ok(status) {
		return models.Project{}, domainFailure("create project", status, body)
	}

	var p projectPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.Project{}, fmt.Errorf("parse created project: %w", err)
	}
	return mapProject(p), nil
}

// AddMember invites an existing account into the project by email. When the
// email does not resolve or the account is already a member, the backend's
// detail message comes back as a DomainError, verbatim.
func (c *Client) AddMember(ctx context.Context, projectID, email string) (models.User, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/projects/"+projectID+"/members", nil, addMemberRequest{Email: email})
	if err != nil {
		return models.User{}, fmt.Errorf("add member: %w", err)
	}
	if !ok(status) {
		if detail := errorDetail(body, ""); detail != "" {
			return models.User{}, &DomainError{Detail: detail}
		}
		return models.User{}, &DomainError{Detail: "Failed to add member"}
	}

	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.User{}, fmt.Errorf("parse added member: %w", err)
	}
	return mapUser(p), nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	body, status, err := c.api.JSON(ctx, http.MethodDelete, "/projects/"+projectID, nil, nil)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if !ok(status) {
		return domainFailure("delete project", status, body)
	}
	return nil
}

func (c *Client) RemoveMember(ctx context.Context, projectID, userID string) error {
	body, status, err := c.api.JSON(ctx, http.MethodDelete, "/projects/"+projectID+"/members/"+userID, nil, nil)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if !ok(status) {
		return domainFailure("remove member", status, body)
	}
	return nil
}
