package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

// Step button labels.
const (
	LabelNext   = "Next"
	LabelSubmit = "Submit Quiz"
)

// StepButton advances a quiz. It starts disabled for every question, is
// enabled once an answer is chosen, and reads "Submit Quiz" on the last
// question. Methods use pointer receivers so OnPress may change the button.
type StepButton struct {
	label   string
	enabled bool
	onPress func() tea.Cmd
}

// NewStepButton returns a disabled "Next" button that calls onPress on Enter.
func NewStepButton(onPress func() tea.Cmd) *StepButton {
	return &StepButton{label: LabelNext, onPress: onPress}
}

// ResetFor prepares the button for a new question.
func (b *StepButton) ResetFor(last bool) {
	b.enabled = false
	b.label = LabelNext
	if last {
		b.label = LabelSubmit
	}
}

// Enable marks an answer as chosen.
func (b *StepButton) Enable() { b.enabled = true }

// Disable blocks further presses, e.g. while a submission is in flight.
func (b *StepButton) Disable() { b.enabled = false }

func (b *StepButton) Enabled() bool { return b.enabled }
func (b *StepButton) Label() string { return b.label }

// Press runs the action for Enter on an enabled button. Other keys and
// presses on a disabled button return nil.
func (b *StepButton) Press(msg tea.KeyMsg) tea.Cmd {
	if !b.enabled || b.onPress == nil || msg.String() != "enter" {
		return nil
	}
	return b.onPress()
}

// View renders the button.
func (b *StepButton) View() string {
	if b.enabled {
		return theme.ButtonActive.Render("▸ " + b.label)
	}
	return theme.ButtonInactive.Foreground(theme.TextDim).Render(b.label)
}
