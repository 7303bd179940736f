package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Next(t *testing.T) {
	tests := []struct {
		in   TaskStatus
		want TaskStatus
	}{
		{StatusTodo, StatusInProgress},
		{StatusInProgress, StatusDone},
		{StatusDone, StatusTodo},
		{TaskStatus("ARCHIVED"), StatusTodo},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Next())
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IN_PROGRESS", "In Progress"},
		{"PENDING_PAYMENT", "Pending Payment"},
		{"todo", "Todo"},
		{"", "Unknown Status"},
		{"__DONE__", "Done"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusDisplay(tt.in))
		})
	}

	assert.Equal(t, "Critical", PriorityCritical.Display())
}

func TestGroupByStatus(t *testing.T) {
	tasks := []Task{
		{ID: 1, Status: StatusDone},
		{ID: 2, Status: StatusTodo},
		{ID: 3, Status: StatusDone},
	}

	cols := GroupByStatus(tasks)

	assert.Len(t, cols, len(TaskStatuses))
	assert.Empty(t, cols[StatusInProgress])
	assert.NotNil(t, cols[StatusInProgress])
	assert.Equal(t, []Task{{ID: 2, Status: StatusTodo}}, cols[StatusTodo])
	assert.Equal(t, []int64{1, 3}, []int64{cols[StatusDone][0].ID, cols[StatusDone][1].ID})

	assert.Equal(t, 3, Board{Columns: cols}.Count())
}

func TestTask_AssigneeName(t *testing.T) {
	assert.Equal(t, "Unassigned", Task{}.AssigneeName())
	assert.Equal(t, "bob", Task{Assignee: &User{Username: "bob", Email: "bob@example.com"}}.AssigneeName())
}
