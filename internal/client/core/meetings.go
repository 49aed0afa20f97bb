package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meetly/sync-client/internal/models"
)

func (c *Client) MeetingsByProject(ctx context.Context, projectID string) ([]models.Meeting, error) {
	body, status, err := c.api.JSON(ctx, http.MethodGet, "/meetings/"+projectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get meetings: %w", err)
	}
	if !ok(status) {
		return nil, domainFailure("get meetings", status, body)
	}

	var payloads []meetingPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("parse meetings: %w", err)
	}

	meetings := make([]models.Meeting, len(payloads))
	for i, p := range payloads {
		meetings[i] = mapMeeting(p)
	}
	return meetings, nil
}

// CreateMeeting schedules a meeting in the given project. Start and end are
// normalized to full timestamps; recording, transcript and summary start
// empty and are filled by the analysis pipeline later.
func (c *Client) CreateMeeting(ctx context.Context, data models.MeetingCreate, projectID string) (models.Meeting, error) {
	start, err := normalizeTimestamp(data.StartDate)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}
	end, err := normalizeTimestamp(data.EndDate)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}

	attendees := data.AttendeeIDs
	if attendees == nil {
		attendees = []string{}
	}
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/meetings/", nil, createMeetingRequest{
		Title:        data.Title,
		Description:  data.Description,
		StartDate:    start,
		EndDate:      end,
		ProjectID:    projectID,
		AttendeeIDs:  attendees,
		RecordingURL: "",
		Transcript:   "",
		Summary:      "",
	})
	if err != nil {
		return models.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}
	if !ok(status) {
		return models.Meeting{}, domainFailure("create meeting", status, body)
	}

	var p meetingPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.Meeting{}, fmt.Errorf("parse created meeting: %w", err)
	}
	return mapMeeting(p), nil
}

func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	body, status, err := c.api.JSON(ctx, http.MethodDelete, "/meetings/"+meetingID, nil, nil)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if !ok(status) {
		return domainFailure("delete meeting", status, body)
	}
	return nil
}

// TriggerAnalysis starts the server-side meeting analysis job. The call
// returns immediately: either a plain "processing" acknowledgment, or a
// proposed summary plus action items awaiting human confirmation.
func (c *Client) TriggerAnalysis(ctx context.Context, meetingID string) (models.AnalysisResult, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/meetings/"+meetingID+"/analyze", nil, nil)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("trigger analysis: %w", err)
	}
	if !ok(status) {
		return models.AnalysisResult{}, domainFailure("trigger analysis", status, body)
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("parse analysis response: %w", err)
	}

	result := models.AnalysisResult{
		MeetingID: resp.MeetingID,
		Status:    resp.Status,
		Summary:   resp.MinutesOfMeeting,
	}
	if result.MeetingID == "" {
		result.MeetingID = meetingID
	}
	for _, item := range resp.ActionItems {
		result.ActionItems = append(result.ActionItems, models.ActionItem{
			Title:    item.Title,
			Assignee: item.Assignee,
			DueDate:  item.DueDate,
			Priority: item.Priority,
		})
	}
	return result, nil
}

// ConfirmAnalysis commits a reviewed analysis: the backend stores the
// summary and materializes the approved action items as real tasks.
func (c *Client) ConfirmAnalysis(ctx context.Context, meetingID, summary string, tasks []models.ActionItem) error {
	req := confirmAnalysisRequest{Summary: summary}
	for _, t := range tasks {
		req.Tasks = append(req.Tasks, analyzeTaskItem{
			Title:    t.Title,
			Assignee: t.Assignee,
			DueDate:  t.DueDate,
			Priority: t.Priority,
		})
	}

	body, status, err := c.api.JSON(ctx, http.MethodPost, "/meetings/"+meetingID+"/analyze/confirm", nil, req)
	if err != nil {
		return fmt.Errorf("confirm analysis: %w", err)
	}
	if !ok(status) {
		return domainFailure("confirm analysis", status, body)
	}
	return nil
}
