package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmDialog asks a yes/no question before running action.
type confirmDialog struct {
	prompt string
	action tea.Cmd
	back   screen
}

func (c confirmDialog) view() string {
	body := overlayBoxStyle.Render(c.prompt + "\n\n" + helpStyle.Render("y: yes │ n/esc: no"))
	return renderPage("CONFIRM", body, "")
}

func (m mainLoopModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		action := m.confirm.action
		m.screen = m.confirm.back
		m.confirm = confirmDialog{}
		return m, action
	case key.Matches(msg, keys.no):
		m.screen = m.confirm.back
		m.confirm = confirmDialog{}
	}
	return m, nil
}
