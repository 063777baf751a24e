package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput with an optional digits-only filter.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput creates a new unfocused text input.
func NewTextInput(placeholder string, numericOnly bool, maxChars int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if maxChars > 0 {
		ti.CharLimit = maxChars
	}
	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages. Numeric inputs drop printable non-digit keys.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if r < '0' || r > '9' {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// NumericValue returns the trimmed input value as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}
