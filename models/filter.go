package models

import (
	"net/url"
	"strconv"
)

// SortOption is an entry of the task sort menu. Name is sent verbatim as
// the "sort" query parameter.
type SortOption struct {
	Label string
	Name  string
}

// TaskSortOptions is the fixed sort menu of the task board.
var TaskSortOptions = []SortOption{
	{Label: "Priority: High to Low", Name: "priority,desc"},
	{Label: "Priority: Low to High", Name: "priority,asc"},
	{Label: "Due Date: Soonest First", Name: "dueDate,asc"},
	{Label: "Due Date: Latest First", Name: "dueDate,desc"},
	{Label: "Created: Newest First", Name: "createdAt,desc"},
	{Label: "Created: Oldest First", Name: "createdAt,asc"},
	{Label: "Status", Name: "status"},
}

// TaskFilter holds the task list criteria. Zero fields are not sent.
type TaskFilter struct {
	Status     TaskStatus   `validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority   TaskPriority `validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID int64        `validate:"gte=0"`
	Search     string
	Page       int `validate:"gte=0"`
	Size       int `validate:"gte=0,lte=100"`
	Sort       string
}

// Query encodes the non-zero fields as URL query parameters.
func (f TaskFilter) Query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.AssigneeID != 0 {
		q.Set("assigneeId", strconv.FormatInt(f.AssigneeID, 10))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page != 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size != 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

// Reset keeps paging size and sort but drops every criterion.
func (f TaskFilter) Reset() TaskFilter {
	return TaskFilter{Size: f.Size, Sort: f.Sort}
}

// UserQuery holds the admin user list criteria. Page is zero-based.
type UserQuery struct {
	Page   int    `validate:"gte=0"`
	Size   int    `validate:"gte=0,lte=100"`
	Sort   string // e.g. "fullName,asc"
	Search string
}

// Query encodes the query. Page is always sent because zero is meaningful.
func (q UserQuery) Query() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	if q.Size != 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}
