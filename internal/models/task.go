package models

// TaskStatus is a kanban column name. The four canonical values below are
// what the backend seeds, but boards support renamed and user-added columns,
// so any string is a valid status.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// Task is the client-side view of a work item. Date fields are ISO-8601
// strings as received from the backend. Seq is a client-local insertion
// counter used as an ordering tiebreaker when the backend omits created_at;
// it is stable within a session but never transmitted.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Tags        []string     `json:"tags"`
	StartDate   string       `json:"startDate"`
	DueDate     string       `json:"dueDate"`
	AuthorID    string       `json:"authorId"`
	AssigneeID  string       `json:"assigneeId"`
	ProjectID   string       `json:"projectId"`
	Comments    int          `json:"comments"`
	CreatedAt   string       `json:"createdAt"`
	Seq         int64        `json:"-"`
}

type NewTask struct {
	Title       string
	Description string
	Priority    TaskPriority
	AssigneeID  string
	ProjectID   string
	DueDate     string
	Tags        []string
}

// TaskUpdate is a partial update. A nil field means "leave unchanged"; a
// non-nil pointer is always transmitted, so setting a field to its zero
// value (empty string, empty slice) legitimately clears it.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	Tags        *[]string
	StartDate   *string
	DueDate     *string
	AssigneeID  *string
}
