package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is one labelled text input.
type formField struct {
	label string
	input textinput.Model
}

// form is a vertical list of text inputs with tab focus handling.
type form struct {
	fields []formField
	focus  int
}

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) focusNext() {
	f.setFocus((f.focus + 1) % len(f.fields))
}

func (f *form) focusPrev() {
	f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
}

func (f *form) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = i
	f.fields[f.focus].input.Focus()
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// rawValue returns the value untrimmed, for passwords.
func (f *form) rawValue(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) setValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

// update handles tab navigation and forwards other messages to the focused
// input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.focusNext()
			return nil
		case "shift+tab", "up":
			f.focusPrev()
			return nil
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view(b *strings.Builder) {
	f.viewWidth(b, selectorWidth(*f, nil))
}

// viewWidth renders the table with a fixed label column.
func (f *form) viewWidth(b *strings.Builder, width int) {
	b.WriteString("Field")
	b.WriteString(strings.Repeat(" ", width-len("Field")+1))
	b.WriteString("│ Value\n")
	b.WriteString(strings.Repeat("─", width+1))
	b.WriteString("┼────────────────────────────────────────────\n")
	for _, fld := range f.fields {
		b.WriteString(fld.label)
		b.WriteString(strings.Repeat(" ", width-len(fld.label)+1))
		b.WriteString("│ [")
		b.WriteString(fld.input.View())
		b.WriteString("]\n")
	}
}
