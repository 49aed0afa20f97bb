package core

import (
	"fmt"
	"time"

	"github.com/meetly/sync-client/internal/models"
)

const (
	defaultAvatar = "https://via.placeholder.com/150"
	defaultRole   = "Member"
)

func mapUser(p userPayload) models.User {
	avatar := p.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}
	return models.User{
		ID:       p.ID,
		Name:     p.Name,
		Username: p.Username,
		Email:    p.Email,
		Avatar:   avatar,
		Role:     defaultRole,
		Bio:      "",
	}
}

// mapProject keeps the member list exactly as the backend returned it,
// order and duplicates included; only InitialData's derived user set
// deduplicates.
func mapProject(p projectPayload) models.Project {
	members := make([]string, len(p.Members))
	for i, m := range p.Members {
		members[i] = m.ID
	}
	return models.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Members:     members,
	}
}

// mapTask defaults the optional fields. seq is a client-local insertion
// counter that keeps ordering stable when created_at is missing; it never
// replaces a backend timestamp.
func mapTask(p taskPayload, seq int64) models.Task {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Task{
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
		Comments:    p.Comments,
		CreatedAt:   p.CreatedAt,
		Seq:         seq,
	}
}

// mapMeeting projects ai_tasks down to their titles only.
func mapMeeting(p meetingPayload) models.Meeting {
	attendees := p.AttendeeIDs
	if attendees == nil {
		attendees = []string{}
	}
	actionItems := make([]string, len(p.AITasks))
	for i, t := range p.AITasks {
		actionItems[i] = t.Title
	}
	return models.Meeting{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Attendees:     attendees,
		RecordingURL:  p.RecordingURL,
		Transcript:    p.Transcript,
		ProjectID:     p.ProjectID,
		AISummary:     p.Summary,
		AIActionItems: actionItems,
	}
}

// normalizeTimestamp turns an ISO date or date-time string into a full
// RFC 3339 timestamp for transmission. Empty input yields nil, which the
// request structs serialize as JSON null.
func normalizeTimestamp(s string) (*string, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		v := t.UTC().Format(time.RFC3339)
		return &v, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	v := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	return &v, nil
}
