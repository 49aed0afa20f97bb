package models

// Meeting is the client-side view of a scheduled meeting. AIActionItems
// holds only the titles of the backend's extracted tasks; the projection is
// lossy and one-way.
type Meeting struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Attendees     []string `json:"attendees"`
	RecordingURL  string   `json:"recordingUrl"`
	Transcript    string   `json:"transcript"`
	ProjectID     string   `json:"projectId"`
	AISummary     string   `json:"aiSummary"`
	AIActionItems []string `json:"aiActionItems"`
}

type MeetingCreate struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	AttendeeIDs []string
}

// ActionItem is one task proposed by the meeting-analysis agent, pending
// human confirmation.
type ActionItem struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// AnalysisResult is the acknowledgment returned by the analyze endpoint.
// Status is "processing" when the job runs in the background, or the result
// carries a proposed summary and action items awaiting confirmation.
type AnalysisResult struct {
	MeetingID   string
	Status      string
	Summary     string
	ActionItems []ActionItem
}
