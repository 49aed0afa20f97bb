package core

// Wire payloads of the primary backend. Field names are snake_case on the
// wire; translation to the camelCase view models happens in mapper.go and
// nowhere else.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type projectPayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerID     string        `json:"owner_id"`
	Members     []userPayload `json:"members"`
}

type createProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type addMemberRequest struct {
	Email string `json:"email"`
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
	Comments    int      `json:"comments"`
	CreatedAt   string   `json:"created_at"`
}

// createTaskRequest keeps assignee_id and due_date as pointers so an absent
// value is transmitted as an explicit JSON null.
type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	ProjectID   string   `json:"project_id"`
	AssigneeID  *string  `json:"assignee_id"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
	AuthorID    string   `json:"author_id"`
}

// updateTaskRequest carries only the fields the caller set: a nil pointer is
// omitted from the body, a non-nil pointer is sent even when it points at a
// zero value, so clearing a field to empty works.
type updateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	StartDate   *string   `json:"start_date,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
}

type meetingPayload struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	AttendeeIDs  []string        `json:"attendee_ids"`
	RecordingURL string          `json:"recording_url"`
	Transcript   string          `json:"transcript"`
	ProjectID    string          `json:"project_id"`
	Summary      string          `json:"summary"`
	AITasks      []aiTaskPayload `json:"ai_tasks"`
}

type aiTaskPayload struct {
	Title string `json:"title"`
}

type createMeetingRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	ProjectID    string   `json:"project_id"`
	AttendeeIDs  []string `json:"attendee_ids"`
	RecordingURL string   `json:"recording_url"`
	Transcript   string   `json:"transcript"`
	Summary      string   `json:"summary"`
}

type analyzeResponse struct {
	MeetingID        string            `json:"meeting_id"`
	Status           string            `json:"status"`
	Message          string            `json:"message"`
	MinutesOfMeeting string            `json:"minutes_of_meeting"`
	ActionItems      []analyzeTaskItem `json:"action_items"`
}

type analyzeTaskItem struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
}

type confirmAnalysisRequest struct {
	Summary string            `json:"summary"`
	Tasks   []analyzeTaskItem `json:"tasks"`
}

type avatarUploadResponse struct {
	URL string `json:"url"`
}
