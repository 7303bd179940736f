package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const anyOption = "Any"

// filterEditor edits the board criteria. Paging and sort are preserved.
type filterEditor struct {
	base      models.TaskFilter
	search    textinput.Model
	selectors []selector
	assignees []models.User
	// focus 0 is the search input, the rest index selectors.
	focus int
}

func newFilterEditor(current models.TaskFilter, users []models.User) filterEditor {
	search := newInput("title or description", 100, false)
	search.SetValue(current.Search)
	search.Focus()

	statuses := []string{anyOption}
	for _, st := range models.TaskStatuses {
		statuses = append(statuses, string(st))
	}
	priorities := []string{anyOption}
	for _, p := range models.TaskPriorities {
		priorities = append(priorities, string(p))
	}

	f := filterEditor{
		base:   current,
		search: search,
		selectors: []selector{
			newSelector("Status", statuses, string(current.Status)),
			newSelector("Priority", priorities, string(current.Priority)),
		},
		assignees: users,
	}

	if len(users) > 0 {
		names := []string{anyOption}
		selected := anyOption
		for _, u := range users {
			names = append(names, u.DisplayName())
			if u.UserID == current.AssigneeID {
				selected = u.DisplayName()
			}
		}
		f.selectors = append(f.selectors, newSelector("Assignee", names, selected))
	}
	return f
}

func (f filterEditor) init() tea.Cmd {
	return textinput.Blink
}

func (f *filterEditor) moveFocus(delta int) {
	n := len(f.selectors) + 1
	f.focus = (f.focus + delta + n) % n
	if f.focus == 0 {
		f.search.Focus()
	} else {
		f.search.Blur()
	}
}

func (f *filterEditor) forward(msg tea.Msg) tea.Cmd {
	if f.focus != 0 {
		return nil
	}
	var cmd tea.Cmd
	f.search, cmd = f.search.Update(msg)
	return cmd
}

// result builds the filter starting from the first page.
func (f filterEditor) result() models.TaskFilter {
	out := f.base.Reset()
	out.Search = strings.TrimSpace(f.search.Value())
	if v := f.selectors[0].value(); v != anyOption {
		out.Status = models.TaskStatus(v)
	}
	if v := f.selectors[1].value(); v != anyOption {
		out.Priority = models.TaskPriority(v)
	}
	if len(f.selectors) > 2 && f.selectors[2].idx > 0 {
		out.AssigneeID = f.assignees[f.selectors[2].idx-1].UserID
	}
	return out
}

func (f filterEditor) view() string {
	var b strings.Builder

	width := len("Priority")
	for _, s := range f.selectors {
		width = max(width, len(s.label))
	}
	search := "Search"
	b.WriteString(search + strings.Repeat(" ", width-len(search)+1) + "│ [" + f.search.View() + "]\n")
	for i, s := range f.selectors {
		s.view(&b, width, f.focus == i+1)
	}

	return renderPage("FILTER TASKS", strings.TrimRight(b.String(), "\n"),
		"tab/↑/↓: move │ ←/→: change choice │ enter: apply │ ctrl+x: reset │ esc: cancel")
}

func (m mainLoopModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.filters

	switch msg.String() {
	case "esc":
		m.screen = screenBoard
		return m, nil
	case "tab", "down":
		f.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		f.moveFocus(-1)
		return m, nil
	case "enter":
		m.filter = f.result()
		m.screen = screenBoard
		return m.reload()
	}

	if key.Matches(msg, keys.reset) {
		m.filter = m.filter.Reset()
		m.screen = screenBoard
		m.status = "Filters cleared"
		return m.reload()
	}

	if f.focus > 0 {
		s := &f.selectors[f.focus-1]
		switch msg.String() {
		case "left", "h":
			s.prev()
		case "right", "l", " ":
			s.next()
		}
		return m, nil
	}
	cmd := f.forward(msg)
	return m, cmd
}

// describeFilter summarises the active criteria for the board header.
func describeFilter(f models.TaskFilter, users []models.User) string {
	var parts []string
	if f.Status != "" {
		parts = append(parts, "status="+f.Status.Display())
	}
	if f.Priority != "" {
		parts = append(parts, "priority="+f.Priority.Display())
	}
	if f.AssigneeID != 0 {
		name := fmt.Sprintf("#%d", f.AssigneeID)
		for _, u := range users {
			if u.UserID == f.AssigneeID {
				name = u.DisplayName()
			}
		}
		parts = append(parts, "assignee="+name)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}

	sort := f.Sort
	for _, o := range models.TaskSortOptions {
		if o.Name == f.Sort {
			sort = o.Label
		}
	}

	if len(parts) == 0 {
		return "all tasks │ sort: " + valueOrDash(sort)
	}
	return strings.Join(parts, ", ") + " │ sort: " + valueOrDash(sort)
}

// ── Sort ────────────────────────────────────────────────────────────────────

func (m mainLoopModel) updateSort(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenBoard
	case key.Matches(msg, keys.up):
		if m.sortIdx > 0 {
			m.sortIdx--
		}
	case key.Matches(msg, keys.down):
		if m.sortIdx < len(models.TaskSortOptions)-1 {
			m.sortIdx++
		}
	case key.Matches(msg, keys.enter):
		m.filter.Sort = models.TaskSortOptions[m.sortIdx].Name
		m.filter.Page = 0
		m.screen = screenBoard
		return m.reload()
	}
	return m, nil
}

func (m mainLoopModel) viewSort() string {
	var b strings.Builder
	for i, o := range models.TaskSortOptions {
		line := "  " + o.Label
		if o.Name == m.filter.Sort {
			line += " (current)"
		}
		if i == m.sortIdx {
			line = selectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return renderPage("SORT TASKS", strings.TrimRight(b.String(), "\n"), "↑/↓: move │ enter: apply │ esc: cancel")
}
