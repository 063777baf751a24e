package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// Button is a focusable action. Key, when set, is the shortcut shown in
// front of the label. A disabled button still renders but ignores Enter.
type Button struct {
	Label    string
	Key      string
	Active   bool
	Disabled bool
	OnPress  func() tea.Cmd
}

// NewButton creates an enabled button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

// WithKey returns a copy showing key as its shortcut.
func (b Button) WithKey(key string) Button {
	b.Key = key
	return b
}

// Update fires OnPress when the focused, enabled button receives Enter.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.Disabled || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
