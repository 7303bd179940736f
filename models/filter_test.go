package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskFilter_Query(t *testing.T) {
	t.Run("zero filter sends nothing", func(t *testing.T) {
		assert.Empty(t, TaskFilter{}.Query())
	})

	t.Run("all fields", func(t *testing.T) {
		f := TaskFilter{
			Status:     StatusInProgress,
			Priority:   PriorityHigh,
			AssigneeID: 12,
			Search:     "release notes",
			Page:       2,
			Size:       20,
			Sort:       "dueDate,asc",
		}

		assert.Equal(t, "assigneeId=12&page=2&priority=HIGH&search=release+notes&size=20&sort=dueDate%2Casc&status=IN_PROGRESS", f.Query().Encode())
	})
}

func TestTaskFilter_Reset(t *testing.T) {
	f := TaskFilter{Status: StatusDone, Search: "x", Page: 3, Size: 10, Sort: "status"}

	assert.Equal(t, TaskFilter{Size: 10, Sort: "status"}, f.Reset())
}

func TestUserQuery_Query(t *testing.T) {
	assert.Equal(t, "page=0", UserQuery{}.Query().Encode())
	assert.Equal(t, "page=1&search=al&size=5&sort=email%2Cdesc",
		UserQuery{Page: 1, Size: 5, Sort: "email,desc", Search: "al"}.Query().Encode())
}
