package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const unassigned = "Unassigned"

// Field indexes of the task editor.
const (
	editTitle = iota
	editDescription
	editDueDate
)

// Selector indexes of the task editor.
const (
	selPriority = iota
	selStatus
	selAssignee
)

// taskEditor creates a task, or edits one when original is set. Focus runs
// over the text inputs first and then over the selectors.
type taskEditor struct {
	original  *models.Task
	form      form
	selectors []selector
	assignees []models.User
	focus     int
	saving    bool
	errMsg    string
}

func newTaskEditor(original *models.Task, users []models.User) taskEditor {
	e := taskEditor{
		original: original,
		form: newForm(
			formField{label: "Title", input: newInput("what needs to be done", 255, false)},
			formField{label: "Description", input: newInput("optional", 4000, false)},
			formField{label: "Due date", input: newInput(dateLayout, 10, false)},
		),
		assignees: users,
	}

	priority, status, assignee := models.PriorityMedium, models.StatusTodo, unassigned
	if original != nil {
		e.form.setValue(editTitle, original.Title)
		e.form.setValue(editDescription, original.Description)
		if original.DueDate != nil {
			e.form.setValue(editDueDate, original.DueDate.Format(dateLayout))
		}
		priority, status = original.Priority, original.Status
		if original.Assignee != nil {
			assignee = original.Assignee.DisplayName()
		}
	}

	priorities := make([]string, 0, len(models.TaskPriorities))
	for _, p := range models.TaskPriorities {
		priorities = append(priorities, string(p))
	}
	statuses := make([]string, 0, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		statuses = append(statuses, string(st))
	}
	e.selectors = []selector{
		newSelector("Priority", priorities, string(priority)),
		newSelector("Status", statuses, string(status)),
	}

	if len(users) > 0 {
		names := []string{unassigned}
		for _, u := range users {
			names = append(names, u.DisplayName())
		}
		e.selectors = append(e.selectors, newSelector("Assignee", names, assignee))
	}
	return e
}

func (e taskEditor) init() tea.Cmd {
	return textinput.Blink
}

func (e *taskEditor) fieldCount() int {
	return len(e.form.fields) + len(e.selectors)
}

func (e *taskEditor) moveFocus(delta int) {
	n := e.fieldCount()
	e.focus = (e.focus + delta + n) % n
	if e.focus < len(e.form.fields) {
		e.form.setFocus(e.focus)
		return
	}
	e.form.fields[e.form.focus].input.Blur()
}

// focusedSelector returns nil while a text input has focus.
func (e *taskEditor) focusedSelector() *selector {
	i := e.focus - len(e.form.fields)
	if i < 0 {
		return nil
	}
	return &e.selectors[i]
}

func (e *taskEditor) forward(msg tea.Msg) tea.Cmd {
	if e.focusedSelector() != nil {
		return nil
	}
	return e.form.update(msg)
}

// assigneeID returns the selected assignee; zero means unassigned.
func (e taskEditor) assigneeID() (int64, bool) {
	if len(e.selectors) <= selAssignee {
		return 0, false
	}
	i := e.selectors[selAssignee].idx
	if i == 0 {
		return 0, true
	}
	return e.assignees[i-1].UserID, true
}

func (e taskEditor) newTask(creatorID int64) (models.NewTask, error) {
	title := e.form.value(editTitle)
	if title == "" {
		return models.NewTask{}, errors.New("title is required")
	}
	due, err := parseDate(e.form.value(editDueDate))
	if err != nil {
		return models.NewTask{}, err
	}
	assignee, _ := e.assigneeID()

	return models.NewTask{
		Title:       title,
		Description: e.form.value(editDescription),
		Status:      models.TaskStatus(e.selectors[selStatus].value()),
		Priority:    models.TaskPriority(e.selectors[selPriority].value()),
		DueDate:     due,
		AssigneeID:  assignee,
		CreatorID:   creatorID,
	}, nil
}

// update lists only the fields that differ from the original task.
func (e taskEditor) update() (models.UpdateTask, error) {
	var u models.UpdateTask
	orig := e.original

	title := e.form.value(editTitle)
	if title == "" {
		return u, errors.New("title is required")
	}
	if title != orig.Title {
		u.Title = &title
	}
	if desc := e.form.value(editDescription); desc != orig.Description {
		u.Description = &desc
	}

	due, err := parseDate(e.form.value(editDueDate))
	if err != nil {
		return u, err
	}
	if formatDate(due) != formatDate(orig.DueDate) {
		u.DueDate = due
	}

	if st := models.TaskStatus(e.selectors[selStatus].value()); st != orig.Status {
		u.Status = &st
	}
	if p := models.TaskPriority(e.selectors[selPriority].value()); p != orig.Priority {
		u.Priority = &p
	}
	if id, ok := e.assigneeID(); ok {
		var current int64
		if orig.Assignee != nil {
			current = orig.Assignee.UserID
		}
		if id != current {
			u.AssigneeID = &id
		}
	}
	return u, nil
}

func (e taskEditor) view() string {
	var b strings.Builder

	width := selectorWidth(e.form, e.selectors)
	e.form.viewWidth(&b, width)
	for i, s := range e.selectors {
		s.view(&b, width, e.focus == len(e.form.fields)+i)
	}

	switch {
	case e.saving:
		b.WriteString("\n[Saving...]\n")
	case e.original != nil:
		b.WriteString("\n[Save changes]\n")
	default:
		b.WriteString("\n[Create task]\n")
	}
	renderMessages(&b, "", e.errMsg)

	title := "NEW TASK"
	if e.original != nil {
		title = fmt.Sprintf("EDIT TASK #%d", e.original.ID)
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab/↑/↓: move │ ←/→: change choice │ enter: save │ esc: cancel")
}

func (m mainLoopModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.editor

	switch msg.String() {
	case "esc":
		m.screen = screenBoard
		return m, nil
	case "tab", "down":
		e.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		e.moveFocus(-1)
		return m, nil
	case "enter":
		if e.saving {
			return m, nil
		}
		return m.submitEditor()
	}

	if s := e.focusedSelector(); s != nil {
		switch msg.String() {
		case "left", "h":
			s.prev()
		case "right", "l", " ":
			s.next()
		}
		return m, nil
	}

	var cmd tea.Cmd
	e.form.fields[e.form.focus].input, cmd = e.form.fields[e.form.focus].input.Update(msg)
	return m, cmd
}

func (m mainLoopModel) submitEditor() (tea.Model, tea.Cmd) {
	e := &m.editor
	ctx, tasks := m.ctx, m.services.TaskService

	if e.original == nil {
		task, err := e.newTask(m.user.UserID)
		if err != nil {
			e.errMsg = err.Error()
			return m, nil
		}
		e.saving, e.errMsg = true, ""
		return m, func() tea.Msg {
			created, err := tasks.Create(ctx, task)
			return taskSavedMsg{task: created, created: true, err: err}
		}
	}

	update, err := e.update()
	if err != nil {
		e.errMsg = err.Error()
		return m, nil
	}
	e.saving, e.errMsg = true, ""
	return m, cmdUpdateTask(ctx, tasks, e.original.ID, update)
}

func cmdUpdateTask(ctx context.Context, tasks service.TaskService, taskID int64, update models.UpdateTask) tea.Cmd {
	return func() tea.Msg {
		updated, err := tasks.Update(ctx, taskID, update)
		return taskSavedMsg{task: updated, err: err}
	}
}
