package fakeapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-client/internal/app"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
)

var (
	statusRank   = map[models.TaskStatus]int{models.StatusTodo: 0, models.StatusInProgress: 1, models.StatusDone: 2}
	priorityRank = map[models.TaskPriority]int{models.PriorityLow: 0, models.PriorityMedium: 1, models.PriorityHigh: 2, models.PriorityCritical: 3}
)

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	assigneeID, _ := strconv.ParseInt(q.Get("assigneeId"), 10, 64)

	s.mu.Lock()
	tasks := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch {
		case q.Get("status") != "" && string(t.Status) != q.Get("status"):
			continue
		case q.Get("priority") != "" && string(t.Priority) != q.Get("priority"):
			continue
		case assigneeID != 0 && (t.Assignee == nil || t.Assignee.UserID != assigneeID):
			continue
		case search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search):
			continue
		}
		tasks = append(tasks, *t)
	}
	s.mu.Unlock()

	field, desc := parseSort(q.Get("sort"))
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		var c int
		switch field {
		case "priority":
			c = priorityRank[a.Priority] - priorityRank[b.Priority]
		case "status":
			c = statusRank[a.Status] - statusRank[b.Status]
		case "dueDate":
			c = compareDue(a.DueDate, b.DueDate)
		case "createdAt":
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = compareInt(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})

	writePage(w, tasks, q.Get("page"), q.Get("size"))
}

// compareDue orders tasks without a due date last.
func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskID")
	if !ok {
		return
	}

	s.mu.Lock()
	t, found := s.tasks[taskID]
	s.mu.Unlock()

	if !found {
		utils.WriteError(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}
	writeEnvelope(w, *t, http.StatusOK)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req models.NewTask
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		utils.WriteError(w, app.MsgTitleRequired, http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.nextTaskID++
	t := &models.Task{
		ID:          s.nextTaskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if creator, ok := s.accounts[userID]; ok {
		u := creator.user
		t.Creator = &u
	}
	if req.AssigneeID != 0 {
		assignee, ok := s.accounts[req.AssigneeID]
		if !ok {
			s.nextTaskID--
			utils.WriteError(w, app.MsgAssigneeNotFound, http.StatusBadRequest)
			return
		}
		u := assignee.user
		t.Assignee = &u
	}
	s.tasks[t.ID] = t

	writeEnvelope(w, *t, http.StatusCreated)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskID")
	if !ok {
		return
	}
	var req models.UpdateTask
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tasks[taskID]
	if !found {
		utils.WriteError(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == 0 {
			t.Assignee = nil
		} else {
			assignee, ok := s.accounts[*req.AssigneeID]
			if !ok {
				utils.WriteError(w, app.MsgAssigneeNotFound, http.StatusBadRequest)
				return
			}
			u := assignee.user
			t.Assignee = &u
		}
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	t.UpdatedAt = s.clock.Now()

	writeEnvelope(w, *t, http.StatusOK)
}

func (s *Server) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskID")
	if !ok {
		return
	}
	var req models.StatusChange
	if !decode(w, r, &req) {
		return
	}
	if _, known := statusRank[req.Status]; !known {
		utils.WriteError(w, app.MsgInvalidStatus, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tasks[taskID]
	if !found {
		utils.WriteError(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}
	t.Status = req.Status
	t.UpdatedAt = s.clock.Now()

	writeEnvelope(w, *t, http.StatusOK)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskID")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[taskID]; !found {
		utils.WriteError(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}
	delete(s.tasks, taskID)
	w.WriteHeader(http.StatusNoContent)
}
