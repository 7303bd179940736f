package models

import (
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every status in board column order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// Display returns a human-readable label, e.g. "In Progress".
func (s TaskStatus) Display() string {
	return StatusDisplay(string(s))
}

// Next cycles TODO -> IN_PROGRESS -> DONE -> TODO.
func (s TaskStatus) Next() TaskStatus {
	for i, st := range TaskStatuses {
		if st == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return StatusTodo
}

// TaskPriority is the urgency of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

// TaskPriorities lists every priority from lowest to highest.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p TaskPriority) Display() string {
	return StatusDisplay(string(p))
}

// Task is a task as returned by the backend.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Assignee    *User        `json:"assignee,omitempty"`
	Creator     *User        `json:"creator,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
}

// AssigneeName returns the assignee display name or "Unassigned".
func (t Task) AssigneeName() string {
	if t.Assignee == nil {
		return "Unassigned"
	}
	return t.Assignee.DisplayName()
}

// NewTask is the payload of the create endpoint.
type NewTask struct {
	Title       string       `json:"title" validate:"required,max=255"`
	Description string       `json:"description" validate:"max=4000"`
	Status      TaskStatus   `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    TaskPriority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	AssigneeID  int64        `json:"assigneeId,omitempty"`
	CreatorID   int64        `json:"creatorId,omitempty"`
}

// UpdateTask is the payload of the update endpoint. Nil fields are left
// untouched by the backend.
type UpdateTask struct {
	Title       *string       `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string       `json:"description,omitempty" validate:"omitempty,max=4000"`
	Status      *TaskStatus   `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	AssigneeID  *int64        `json:"assigneeId,omitempty"`
}

// StatusChange is the payload of the status patch endpoint.
type StatusChange struct {
	Status TaskStatus `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}

// Board groups tasks into status columns.
type Board struct {
	Columns    map[TaskStatus][]Task
	Pagination Pagination
	// Users holds assignable users. It is only loaded for admins.
	Users []User
}

// Count returns the number of tasks across all columns.
func (b Board) Count() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col)
	}
	return n
}

// GroupByStatus splits tasks into board columns keeping their order.
// Every known status gets a column, possibly empty.
func GroupByStatus(tasks []Task) map[TaskStatus][]Task {
	cols := make(map[TaskStatus][]Task, len(TaskStatuses))
	for _, st := range TaskStatuses {
		cols[st] = []Task{}
	}
	for _, t := range tasks {
		cols[t.Status] = append(cols[t.Status], t)
	}
	return cols
}

// StatusDisplay converts "PENDING_PAYMENT" into "Pending Payment".
// An empty status yields "Unknown Status".
func StatusDisplay(status string) string {
	if status == "" {
		return "Unknown Status"
	}
	return humanize(status)
}

func humanize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
