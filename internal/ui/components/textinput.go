package components

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/ui/theme"
)

// InputMode restricts which single characters a TextInput accepts.
type InputMode int

const (
	InputAny      InputMode = iota
	InputQNum               // digits and a leading '#'
	InputLetters            // letters only
)

// TextInput wraps bubbles/textinput with quiz styling.
type TextInput struct {
	Model    textinput.Model
	Mode     InputMode
	MaxWidth int
	tone     lipgloss.Style
	marked   bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, mode InputMode, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Mode:     mode,
		MaxWidth: maxWidth,
	}
}

// Accepts reports whether key may be typed into the input.
func (t TextInput) Accepts(key string) bool {
	r := []rune(key)
	if len(r) != 1 {
		return true
	}
	switch t.Mode {
	case InputQNum:
		return unicode.IsDigit(r[0]) || (r[0] == '#' && t.Model.Value() == "")
	case InputLetters:
		return unicode.IsLetter(r[0])
	}
	return true
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && !t.Accepts(kmsg.String()) {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.marked {
		view += " " + t.tone.Render("●")
	}
	return view
}

// Value returns the current input value, trimmed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Reset clears the value and any result mark.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
	t.marked = false
}

// Mark shows a colored dot after the input, e.g. after grading.
func (t *TextInput) Mark(good bool) {
	t.marked = true
	if good {
		t.tone = lipgloss.NewStyle().Foreground(theme.Success)
	} else {
		t.tone = lipgloss.NewStyle().Foreground(theme.Error)
	}
}
