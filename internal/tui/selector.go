package tui

import "strings"

// selector is a labelled choice cycled with left/right.
type selector struct {
	label   string
	options []string
	idx     int
}

func newSelector(label string, options []string, selected string) selector {
	s := selector{label: label, options: options}
	for i, o := range options {
		if o == selected {
			s.idx = i
		}
	}
	return s
}

func (s *selector) next() {
	if len(s.options) > 0 {
		s.idx = (s.idx + 1) % len(s.options)
	}
}

func (s *selector) prev() {
	if len(s.options) > 0 {
		s.idx = (s.idx - 1 + len(s.options)) % len(s.options)
	}
}

func (s selector) value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.idx]
}

func (s selector) view(b *strings.Builder, width int, focused bool) {
	b.WriteString(s.label)
	b.WriteString(strings.Repeat(" ", max(width-len(s.label), 0)+1))
	b.WriteString("│ ")
	line := "‹ " + s.value() + " ›"
	if focused {
		line = selectedStyle.Render(line)
	}
	b.WriteString(line)
	b.WriteString("\n")
}

// selectorWidth returns the label column width shared by a form and its
// selectors.
func selectorWidth(f form, selectors []selector) int {
	width := len("Field")
	for _, fld := range f.fields {
		width = max(width, len(fld.label))
	}
	for _, s := range selectors {
		width = max(width, len(s.label))
	}
	return width
}
