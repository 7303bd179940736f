package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-client/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m mainLoopModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.errMsg = "", ""
	task := m.detail

	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
		m.screen = screenBoard
	case key.Matches(msg, keys.edit):
		m.editor = newTaskEditor(&task, m.board.Users)
		m.screen = screenEditor
		return m, m.editor.init()
	case key.Matches(msg, keys.status):
		return m, m.cmdCycleStatus(task)
	case key.Matches(msg, keys.delete):
		m.askDeleteTask(task, screenDetail)
	case key.Matches(msg, keys.copy):
		return m, cmdCopy(fmt.Sprintf("#%d %s", task.ID, task.Title))
	}
	return m, nil
}

func (m *mainLoopModel) askDeleteTask(task models.Task, back screen) {
	m.confirm = confirmDialog{
		prompt: fmt.Sprintf("Delete task #%d %q?", task.ID, task.Title),
		action: m.cmdDeleteTask(task.ID),
		back:   back,
	}
	m.screen = screenConfirm
}

func (m mainLoopModel) viewDetail() string {
	t := m.detail

	var b strings.Builder
	rows := [][2]string{
		{"Title", t.Title},
		{"Status", t.Status.Display()},
		{"Priority", priorityBadge(string(t.Priority))},
		{"Assignee", t.AssigneeName()},
		{"Creator", creatorName(t)},
		{"Due date", formatDate(t.DueDate)},
		{"Created", t.CreatedAt.Format(dateLayout)},
		{"Updated", t.UpdatedAt.Format(dateLayout)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-9s %s\n", r[0]+":", valueOrDash(r[1])))
	}
	b.WriteString("\n")
	b.WriteString(overlayBoxStyle.Render(valueOrDash(t.Description)))
	b.WriteString("\n")
	renderMessages(&b, m.status, m.errMsg)

	return renderPage(fmt.Sprintf("TASK #%d", t.ID), strings.TrimRight(b.String(), "\n"),
		"e: edit │ s: next status │ d: delete │ c: copy │ esc: back")
}

func creatorName(t models.Task) string {
	if t.Creator == nil {
		return ""
	}
	return t.Creator.DisplayName()
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}
