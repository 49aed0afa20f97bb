package client

import (
	"context"

	"github.com/meetly/sync-client/internal/models"
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (models.User, error)
	CurrentUser(ctx context.Context) (models.User, error)
}

type ProjectAPI interface {
	InitialData(ctx context.Context) ([]models.Project, []models.User, error)
	CreateProject(ctx context.Context, data models.ProjectCreate, ownerID string) (models.Project, error)
	AddMember(ctx context.Context, projectID, email string) (models.User, error)
	DeleteProject(ctx context.Context, projectID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}

type TaskAPI interface {
	TasksByProject(ctx context.Context, projectID, statusFilter string) ([]models.Task, error)
	CreateTask(ctx context.Context, newTask models.NewTask, authorID string) (models.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, newStatus models.TaskStatus) (models.Task, error)
	UpdateTask(ctx context.Context, taskID string, updates models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type MeetingAPI interface {
	MeetingsByProject(ctx context.Context, projectID string) ([]models.Meeting, error)
	CreateMeeting(ctx context.Context, data models.MeetingCreate, projectID string) (models.Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
}

// WorkspaceAPI is the full primary-backend gateway surface the sync service
// depends on.
type WorkspaceAPI interface {
	AuthAPI
	ProjectAPI
	TaskAPI
	MeetingAPI
}
