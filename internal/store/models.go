package store

// Status is a task's workflow state. Values match the persisted numeric
// encoding; StatusNone is reserved and not reachable through validated input.
type Status int

const (
	StatusTodo Status = iota + 1
	StatusInProgress
	StatusCompleted
	StatusNone
)

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "TODO"
	case StatusInProgress:
		return "IN PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return ""
	}
}

// Priority is a task's urgency level. PriorityNone is reserved and not
// reachable through validated input.
type Priority int

const (
	PriorityUrgent Priority = iota + 1
	PriorityHigh
	PriorityNormal
	PriorityLow
	PriorityNone
)

func (p Priority) String() string {
	switch p {
	case PriorityUrgent:
		return "URGENT"
	case PriorityHigh:
		return "HIGH"
	case PriorityNormal:
		return "NORMAL"
	case PriorityLow:
		return "LOW"
	default:
		return ""
	}
}

// User is an account holder. Passwords are stored and compared verbatim;
// hardening them is out of scope for this tool.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Task is a single task owned by a user. Username is a weak reference to a
// User; no referential integrity is enforced. Dates are kept as validated
// YYYY-MM-DD strings so they sort lexicographically in date order.
type Task struct {
	ID          string   `json:"id,omitempty"`
	Username    string   `json:"username"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date"`
	StartDate   string   `json:"start_date"`
	Tags        []string `json:"tags"`
}
