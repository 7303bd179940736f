package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenBoard screen = iota
	screenDetail
	screenEditor
	screenFilter
	screenSort
	screenUsers
	screenUserEdit
	screenPassword
	screenProfile
	screenConfirm
)

type mainLoopModel struct {
	ctx       context.Context
	services  *service.ClientServices
	user      models.User
	interval  time.Duration
	refreshed chan boardLoadedMsg

	screen  screen
	filter  models.TaskFilter
	board   models.Board
	col     int
	row     int
	loading bool
	status  string
	errMsg  string

	detail   models.Task
	editor   taskEditor
	filters  filterEditor
	sortIdx  int
	users    usersPanel
	userEdit userEditor
	password passwordForm
	profile  profileForm
	confirm  confirmDialog

	logout  bool
	expired bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, user models.User, opts Options) mainLoopModel {
	return mainLoopModel{
		ctx:       ctx,
		services:  services,
		user:      user,
		interval:  opts.RefreshInterval,
		refreshed: make(chan boardLoadedMsg, 1),
		filter:    models.TaskFilter{Size: opts.PageSize, Sort: models.TaskSortOptions[0].Name},
		loading:   true,
		users:     newUsersPanel(opts.PageSize),
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadBoard(), m.cmdRestartRefresh(), m.waitForRefresh())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionExpiredMsg:
		m.expired = true
		return m, tea.Quit

	case boardLoadedMsg:
		var next tea.Cmd
		if msg.background {
			next = m.waitForRefresh()
		}
		if isSessionExpired(msg.err) {
			m.expired = true
			return m, tea.Quit
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, next
		}
		m.board = msg.board
		m.clampCursor()
		if !msg.background {
			m.errMsg = ""
		}
		return m, next

	case detailLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.detail = msg.task
		m.screen = screenDetail
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m.fail(msg.err)
			}
			m.editor.saving = false
			m.editor.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.screen = screenBoard
		if msg.created {
			m.status = fmt.Sprintf("Task #%d created", msg.task.ID)
		} else {
			m.status = fmt.Sprintf("Task #%d updated", msg.task.ID)
		}
		return m, m.cmdLoadBoard()

	case statusChangedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.status = fmt.Sprintf("Task #%d moved to %s", msg.task.ID, msg.task.Status.Display())
		if m.screen == screenDetail {
			m.detail = msg.task
		}
		return m, m.cmdLoadBoard()

	case taskDeletedMsg:
		if msg.err != nil {
			m.screen = screenBoard
			return m.fail(msg.err)
		}
		m.screen = screenBoard
		m.status = "Task deleted"
		return m, m.cmdLoadBoard()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Copied to clipboard"
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			m.users.loading = false
			if isSessionExpired(msg.err) {
				return m.fail(msg.err)
			}
			m.users.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.users.loaded(msg)
		return m, nil

	case userSavedMsg:
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m.fail(msg.err)
			}
			m.userEdit.saving = false
			m.userEdit.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.screen = screenUsers
		m.users.status = "User " + msg.user.DisplayName() + " updated"
		return m.loadUsers(false)

	case userDeletedMsg:
		m.screen = screenUsers
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m.fail(msg.err)
			}
			m.users.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.users.status = "User deleted"
		return m.loadUsers(false)

	case passwordChangedMsg:
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m.fail(msg.err)
			}
			m.password.saving = false
			m.password.errMsg = passwordErrorMessage(msg.err)
			return m, nil
		}
		m.screen = screenBoard
		m.status = "Password changed"
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m.fail(msg.err)
			}
			m.profile.saving = false
			m.profile.errMsg = profileErrorMessage(msg.err)
			return m, nil
		}
		m.user = msg.user
		m.screen = screenBoard
		m.status = "Profile saved"
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.logout = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenBoard:
			return m.updateBoard(msg)
		case screenDetail:
			return m.updateDetail(msg)
		case screenEditor:
			return m.updateEditor(msg)
		case screenFilter:
			return m.updateFilter(msg)
		case screenSort:
			return m.updateSort(msg)
		case screenUsers:
			return m.updateUsers(msg)
		case screenUserEdit:
			return m.updateUserEdit(msg)
		case screenPassword:
			return m.updatePassword(msg)
		case screenProfile:
			return m.updateProfile(msg)
		case screenConfirm:
			return m.updateConfirm(msg)
		}
	}

	cmd := m.forwardToInput(msg)
	return m, cmd
}

// fail shows err on the board, or ends the loop when the session is gone.
func (m mainLoopModel) fail(err error) (tea.Model, tea.Cmd) {
	if isSessionExpired(err) {
		m.expired = true
		return m, tea.Quit
	}
	m.errMsg = humanizeServerUnavailableError(err)
	return m, nil
}

// forwardToInput delivers non-key messages (cursor blink) to the focused
// text input of the active screen.
func (m *mainLoopModel) forwardToInput(msg tea.Msg) tea.Cmd {
	switch m.screen {
	case screenEditor:
		return m.editor.forward(msg)
	case screenFilter:
		return m.filters.forward(msg)
	case screenUsers:
		return m.users.forward(msg)
	case screenUserEdit:
		return m.userEdit.form.update(msg)
	case screenPassword:
		return m.password.form.update(msg)
	case screenProfile:
		return m.profile.form.update(msg)
	}
	return nil
}

// ── Board ───────────────────────────────────────────────────────────────────

func (m mainLoopModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.left):
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
	case key.Matches(msg, keys.right):
		if m.col < len(models.TaskStatuses)-1 {
			m.col++
			m.clampCursor()
		}
	case key.Matches(msg, keys.up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, keys.down):
		if m.row < len(m.column())-1 {
			m.row++
		}
	case key.Matches(msg, keys.enter):
		if task, ok := m.current(); ok {
			return m, m.cmdLoadDetail(task.ID)
		}
	case key.Matches(msg, keys.newItem):
		m.editor = newTaskEditor(nil, m.board.Users)
		m.screen = screenEditor
		return m, m.editor.init()
	case key.Matches(msg, keys.edit):
		if task, ok := m.current(); ok {
			m.editor = newTaskEditor(&task, m.board.Users)
			m.screen = screenEditor
			return m, m.editor.init()
		}
	case key.Matches(msg, keys.delete):
		if task, ok := m.current(); ok {
			m.askDeleteTask(task, screenBoard)
		}
	case key.Matches(msg, keys.status):
		if task, ok := m.current(); ok {
			return m, m.cmdCycleStatus(task)
		}
	case key.Matches(msg, keys.filter):
		m.filters = newFilterEditor(m.filter, m.board.Users)
		m.screen = screenFilter
		return m, m.filters.init()
	case key.Matches(msg, keys.sort):
		m.screen = screenSort
	case key.Matches(msg, keys.prevPage):
		if m.board.Pagination.HasPrev() {
			m.filter.Page--
			return m.reload()
		}
	case key.Matches(msg, keys.nextPage):
		if m.board.Pagination.HasNext() {
			m.filter.Page++
			return m.reload()
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdLoadBoard()
	case key.Matches(msg, keys.users):
		if !m.user.IsAdmin() {
			m.errMsg = "User management is available to admins only"
			return m, nil
		}
		m.screen = screenUsers
		return m.loadUsers(true)
	case key.Matches(msg, keys.password):
		m.password = newPasswordForm()
		m.screen = screenPassword
		return m, m.password.init()
	case key.Matches(msg, keys.profile):
		m.profile = newProfileForm(m.user)
		m.screen = screenProfile
		return m, m.profile.init()
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	}

	return m, nil
}

// reload fetches the board for a changed filter and points the refresh job
// at it.
func (m mainLoopModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.row = 0
	return m, tea.Batch(m.cmdLoadBoard(), m.cmdRestartRefresh())
}

func (m mainLoopModel) column() []models.Task {
	if m.board.Columns == nil {
		return nil
	}
	return m.board.Columns[models.TaskStatuses[m.col]]
}

func (m mainLoopModel) current() (models.Task, bool) {
	col := m.column()
	if m.row < 0 || m.row >= len(col) {
		return models.Task{}, false
	}
	return col[m.row], true
}

func (m *mainLoopModel) clampCursor() {
	n := len(m.column())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m mainLoopModel) View() string {
	switch m.screen {
	case screenDetail:
		return m.viewDetail()
	case screenEditor:
		return m.editor.view()
	case screenFilter:
		return m.filters.view()
	case screenSort:
		return m.viewSort()
	case screenUsers:
		return m.users.view()
	case screenUserEdit:
		return m.userEdit.view()
	case screenPassword:
		return m.password.view()
	case screenProfile:
		return m.profile.view()
	case screenConfirm:
		return m.confirm.view()
	}
	return m.viewBoard()
}

func (m mainLoopModel) viewBoard() string {
	var b strings.Builder

	role := "user"
	if m.user.IsAdmin() {
		role = "admin"
	}
	b.WriteString(fmt.Sprintf("%s (%s)", m.user.DisplayName(), role))
	if m.loading {
		b.WriteString("  loading...")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(describeFilter(m.filter, m.board.Users)))
	b.WriteString("\n\n")

	columns := make([]string, 0, len(models.TaskStatuses))
	for i, st := range models.TaskStatuses {
		tasks := m.board.Columns[st]

		var c strings.Builder
		c.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", st.Display(), len(tasks))))
		c.WriteString("\n")
		if len(tasks) == 0 {
			c.WriteString(helpStyle.Render("no tasks"))
		}
		for j, t := range tasks {
			line := fmt.Sprintf("#%d %s %s", t.ID, priorityBadge(string(t.Priority)), fitText(t.Title, 18))
			if i == m.col && j == m.row {
				line = selectedStyle.Render(line)
			}
			c.WriteString(line)
			if j < len(tasks)-1 {
				c.WriteString("\n")
			}
		}

		style := columnStyle
		if i == m.col {
			style = activeColumn
		}
		columns = append(columns, style.Render(c.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	b.WriteString(pageInfo(m.board.Pagination.CurrentPage, m.board.Pagination.TotalPages, m.board.Pagination.TotalElements))
	b.WriteString("\n")
	renderMessages(&b, m.status, m.errMsg)

	hotKeys := "←/→ ↑/↓: move │ enter: open │ n: new │ e: edit │ s: next status │ d: delete │ f: filter │ o: sort │ [/]: page │ r: reload │ p: password │ u: profile │ x: log out │ q: quit"
	if m.user.IsAdmin() {
		hotKeys += " │ a: users"
	}
	return renderPage("TASK BOARD", strings.TrimRight(b.String(), "\n"), hotKeys)
}

// ── Commands ────────────────────────────────────────────────────────────────

func (m mainLoopModel) cmdLoadBoard() tea.Cmd {
	ctx, tasks, filter, withUsers := m.ctx, m.services.TaskService, m.filter, m.user.IsAdmin()
	return func() tea.Msg {
		board, err := tasks.Board(ctx, filter, withUsers)
		return boardLoadedMsg{board: board, err: err}
	}
}

func (m mainLoopModel) cmdRestartRefresh() tea.Cmd {
	ctx, job, filter, withUsers, interval, ch := m.ctx, m.services.BoardRefreshJob, m.filter, m.user.IsAdmin(), m.interval, m.refreshed
	return func() tea.Msg {
		job.Start(ctx, filter, withUsers, interval, func(board models.Board, err error) {
			select {
			case ch <- boardLoadedMsg{board: board, err: err, background: true}:
			default:
			}
		})
		return nil
	}
}

func (m mainLoopModel) waitForRefresh() tea.Cmd {
	ctx, ch := m.ctx, m.refreshed
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (m mainLoopModel) cmdLoadDetail(taskID int64) tea.Cmd {
	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.Get(ctx, taskID)
		return detailLoadedMsg{task: task, err: err}
	}
}

func (m mainLoopModel) cmdCycleStatus(task models.Task) tea.Cmd {
	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		updated, err := tasks.UpdateStatus(ctx, task.ID, task.Status.Next())
		return statusChangedMsg{task: updated, err: err}
	}
}

func (m mainLoopModel) cmdDeleteTask(taskID int64) tea.Cmd {
	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		return taskDeletedMsg{err: tasks.Delete(ctx, taskID)}
	}
}

func (m mainLoopModel) cmdLogout() tea.Cmd {
	ctx, auth := m.ctx, m.services.AuthService
	return func() tea.Msg {
		return logoutDoneMsg{err: auth.Logout(ctx)}
	}
}
