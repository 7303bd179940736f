package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// userSortOptions is the sort menu of the users panel.
var userSortOptions = []models.SortOption{
	{Label: "Name A-Z", Name: "fullName,asc"},
	{Label: "Name Z-A", Name: "fullName,desc"},
	{Label: "Email A-Z", Name: "email,asc"},
	{Label: "Email Z-A", Name: "email,desc"},
}

// usersPanel is the admin list of accounts.
type usersPanel struct {
	query     models.UserQuery
	sortIdx   int
	page      models.Page[models.User]
	roles     []models.Role
	row       int
	searching bool
	search    textinput.Model
	loading   bool
	status    string
	errMsg    string
}

func newUsersPanel(pageSize int) usersPanel {
	return usersPanel{
		query:  models.UserQuery{Size: pageSize, Sort: userSortOptions[0].Name},
		search: newInput("name or email", 40, false),
	}
}

func (p *usersPanel) loaded(msg usersLoadedMsg) {
	p.loading = false
	p.errMsg = ""
	p.page = msg.page
	if msg.roles != nil {
		p.roles = msg.roles
	}
	if p.row >= len(p.page.Items) {
		p.row = max(len(p.page.Items)-1, 0)
	}
}

func (p *usersPanel) forward(msg tea.Msg) tea.Cmd {
	if !p.searching {
		return nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return cmd
}

func (p usersPanel) current() (models.User, bool) {
	if p.row < 0 || p.row >= len(p.page.Items) {
		return models.User{}, false
	}
	return p.page.Items[p.row], true
}

func (p usersPanel) view() string {
	var b strings.Builder

	if p.searching {
		b.WriteString("Search │ [" + p.search.View() + "]\n\n")
	} else if p.query.Search != "" {
		b.WriteString(helpStyle.Render(fmt.Sprintf("search=%q", p.query.Search)) + "\n")
	}
	b.WriteString(helpStyle.Render("sort: "+userSortOptions[p.sortIdx].Label) + "\n\n")

	b.WriteString(fmt.Sprintf("%-5s │ %-24s │ %-28s │ %s\n", "ID", "Name", "Email", "Role"))
	b.WriteString(strings.Repeat("─", 6) + "┼" + strings.Repeat("─", 26) + "┼" + strings.Repeat("─", 30) + "┼" + strings.Repeat("─", 12) + "\n")
	if len(p.page.Items) == 0 {
		b.WriteString("no users\n")
	}
	for i, u := range p.page.Items {
		line := fmt.Sprintf("%-5d │ %-24s │ %-28s │ %s", u.UserID, fitText(u.DisplayName(), 24), fitText(u.Email, 28), userRoles(u))
		if i == p.row {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(pageInfo(p.page.Pagination.CurrentPage, p.page.Pagination.TotalPages, p.page.Pagination.TotalElements))
	b.WriteString("\n")
	if p.loading {
		b.WriteString("\n[Loading...]\n")
	}
	renderMessages(&b, p.status, p.errMsg)

	hotKeys := "↑/↓: move │ e: edit │ d: delete │ /: search │ o: sort │ [/]: page │ esc: back"
	if p.searching {
		hotKeys = "enter: search │ esc: cancel"
	}
	return renderPage("USERS", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func userRoles(u models.User) string {
	roles := u.Roles
	if len(roles) == 0 && u.Role != "" {
		roles = []string{u.Role}
	}
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, models.FormatRole(r))
	}
	return valueOrDash(strings.Join(out, ", "))
}

func (m mainLoopModel) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.users

	if p.searching {
		switch msg.String() {
		case "esc":
			p.searching = false
			p.search.Blur()
			return m, nil
		case "enter":
			p.searching = false
			p.search.Blur()
			p.query.Search = strings.TrimSpace(p.search.Value())
			p.query.Page = 0
			return m.loadUsers(false)
		}
		cmd := p.forward(msg)
		return m, cmd
	}

	p.status = ""
	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
		m.screen = screenBoard
		return m, m.cmdLoadBoard()
	case key.Matches(msg, keys.up):
		if p.row > 0 {
			p.row--
		}
	case key.Matches(msg, keys.down):
		if p.row < len(p.page.Items)-1 {
			p.row++
		}
	case key.Matches(msg, keys.search):
		p.searching = true
		p.search.SetValue(p.query.Search)
		cmd := p.search.Focus()
		return m, cmd
	case key.Matches(msg, keys.sort):
		p.sortIdx = (p.sortIdx + 1) % len(userSortOptions)
		p.query.Sort = userSortOptions[p.sortIdx].Name
		p.query.Page = 0
		return m.loadUsers(false)
	case key.Matches(msg, keys.prevPage):
		if p.page.Pagination.HasPrev() {
			p.query.Page--
			return m.loadUsers(false)
		}
	case key.Matches(msg, keys.nextPage):
		if p.page.Pagination.HasNext() {
			p.query.Page++
			return m.loadUsers(false)
		}
	case key.Matches(msg, keys.refresh):
		return m.loadUsers(true)
	case key.Matches(msg, keys.edit), key.Matches(msg, keys.enter):
		if u, ok := p.current(); ok {
			m.userEdit = newUserEditor(u, p.roles)
			m.screen = screenUserEdit
			return m, textinput.Blink
		}
	case key.Matches(msg, keys.delete):
		u, ok := p.current()
		if !ok {
			return m, nil
		}
		if u.UserID == m.user.UserID {
			p.errMsg = "You cannot delete your own account"
			return m, nil
		}
		m.confirm = confirmDialog{
			prompt: fmt.Sprintf("Delete user %s <%s>?", u.DisplayName(), u.Email),
			action: m.cmdDeleteUser(u.UserID),
			back:   screenUsers,
		}
		m.screen = screenConfirm
	}
	return m, nil
}

func (m mainLoopModel) loadUsers(withRoles bool) (tea.Model, tea.Cmd) {
	m.users.loading = true
	return m, m.cmdLoadUsers(withRoles)
}

// cmdLoadUsers fetches the current page, and the role catalogue when
// withRoles is set.
func (m mainLoopModel) cmdLoadUsers(withRoles bool) tea.Cmd {
	ctx, users, query := m.ctx, m.services.UserService, m.users.query
	return func() tea.Msg {
		page, err := users.List(ctx, query)
		if err != nil {
			return usersLoadedMsg{err: err}
		}
		var roles []models.Role
		if withRoles {
			if roles, err = users.Roles(ctx); err != nil {
				return usersLoadedMsg{err: err}
			}
		}
		return usersLoadedMsg{page: page, roles: roles}
	}
}

func (m mainLoopModel) cmdDeleteUser(userID int64) tea.Cmd {
	ctx, users := m.ctx, m.services.UserService
	return func() tea.Msg {
		return userDeletedMsg{err: users.Delete(ctx, userID)}
	}
}

// ── User editor ─────────────────────────────────────────────────────────────

const (
	userFullName = iota
	userEmail
	userContact
)

// userEditor edits another account. The role selector is shown only when
// the role catalogue is known.
type userEditor struct {
	user   models.User
	form   form
	role   *selector
	focus  int
	saving bool
	errMsg string
}

func newUserEditor(u models.User, roles []models.Role) userEditor {
	e := userEditor{
		user: u,
		form: newForm(
			formField{label: "Full name", input: newInput("full name", 40, false)},
			formField{label: "Email", input: newInput("email", 40, false)},
			formField{label: "Contact", input: newInput("phone", 13, false)},
		),
	}
	e.form.setValue(userFullName, u.FullName)
	e.form.setValue(userEmail, u.Email)
	e.form.setValue(userContact, u.Contact)

	if len(roles) > 0 {
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		current := u.Role
		if len(u.Roles) > 0 {
			current = u.Roles[0]
		}
		s := newSelector("Role", names, current)
		e.role = &s
	}
	return e
}

func (e *userEditor) moveFocus(delta int) {
	n := len(e.form.fields)
	if e.role != nil {
		n++
	}
	e.focus = (e.focus + delta + n) % n
	if e.focus < len(e.form.fields) {
		e.form.setFocus(e.focus)
		return
	}
	e.form.fields[e.form.focus].input.Blur()
}

// request lists only the changed fields.
func (e userEditor) request() models.UpdateUserRequest {
	var req models.UpdateUserRequest
	if v := e.form.value(userFullName); v != e.user.FullName {
		req.FullName = v
	}
	if v := e.form.value(userEmail); v != e.user.Email {
		req.Email = v
	}
	if v := e.form.value(userContact); v != e.user.Contact {
		req.Contact = v
	}
	if e.role != nil {
		current := e.user.Role
		if len(e.user.Roles) > 0 {
			current = e.user.Roles[0]
		}
		if v := e.role.value(); v != current {
			req.Role = v
		}
	}
	return req
}

func (e userEditor) view() string {
	var b strings.Builder

	var selectors []selector
	if e.role != nil {
		selectors = append(selectors, *e.role)
	}
	width := selectorWidth(e.form, selectors)
	e.form.viewWidth(&b, width)
	if e.role != nil {
		e.role.view(&b, width, e.focus == len(e.form.fields))
	}

	if e.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	renderMessages(&b, "", e.errMsg)

	return renderPage("EDIT USER #"+fmt.Sprint(e.user.UserID), strings.TrimRight(b.String(), "\n"),
		"tab/↑/↓: move │ ←/→: change role │ enter: save │ esc: cancel")
}

func (m mainLoopModel) updateUserEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.userEdit

	switch msg.String() {
	case "esc":
		m.screen = screenUsers
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
		req := e.request()
		if req == (models.UpdateUserRequest{}) {
			e.errMsg = "Nothing changed"
			return m, nil
		}
		e.saving, e.errMsg = true, ""
		ctx, users, userID := m.ctx, m.services.UserService, e.user.UserID
		return m, func() tea.Msg {
			user, err := users.Update(ctx, userID, req)
			return userSavedMsg{user: user, err: err}
		}
	}

	if e.focus >= len(e.form.fields) {
		switch msg.String() {
		case "left", "h":
			e.role.prev()
		case "right", "l", " ":
			e.role.next()
		}
		return m, nil
	}

	var cmd tea.Cmd
	e.form.fields[e.form.focus].input, cmd = e.form.fields[e.form.focus].input.Update(msg)
	return m, cmd
}
