package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	logout   key.Binding
	newItem  key.Binding
	refresh  key.Binding
	edit     key.Binding
	delete   key.Binding
	status   key.Binding
	filter   key.Binding
	sort     key.Binding
	prevPage key.Binding
	nextPage key.Binding
	users    key.Binding
	password key.Binding
	profile  key.Binding
	search   key.Binding
	copy     key.Binding
	resend   key.Binding
	reset    key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	left:     key.NewBinding(key.WithKeys("left", "h")),
	right:    key.NewBinding(key.WithKeys("right", "l")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:   key.NewBinding(key.WithKeys("x")),
	newItem:  key.NewBinding(key.WithKeys("n")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	edit:     key.NewBinding(key.WithKeys("e")),
	delete:   key.NewBinding(key.WithKeys("d")),
	status:   key.NewBinding(key.WithKeys("s")),
	filter:   key.NewBinding(key.WithKeys("f")),
	sort:     key.NewBinding(key.WithKeys("o")),
	prevPage: key.NewBinding(key.WithKeys("[", "pgup")),
	nextPage: key.NewBinding(key.WithKeys("]", "pgdown")),
	users:    key.NewBinding(key.WithKeys("a")),
	password: key.NewBinding(key.WithKeys("p")),
	profile:  key.NewBinding(key.WithKeys("u")),
	search:   key.NewBinding(key.WithKeys("/")),
	copy:     key.NewBinding(key.WithKeys("c")),
	resend:   key.NewBinding(key.WithKeys("ctrl+r")),
	reset:    key.NewBinding(key.WithKeys("ctrl+x")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}
