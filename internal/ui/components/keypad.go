package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/matteflyt/internal/ui/theme"
)

var keypadRows = [][]string{
	{"7", "8", "9"},
	{"4", "5", "6"},
	{"1", "2", "3"},
	{"⌫", "0", "↵"},
}

// Keypad is the digit entry buffer shown on the play screen.
type Keypad struct {
	digits    []byte
	MaxDigits int
}

// NewKeypad creates an empty keypad that holds at most maxDigits digits.
func NewKeypad(maxDigits int) Keypad {
	return Keypad{MaxDigits: maxDigits}
}

// Press appends a digit. It reports false when r is not a digit or the
// buffer is full.
func (k *Keypad) Press(r rune) bool {
	if r < '0' || r > '9' || len(k.digits) >= k.MaxDigits {
		return false
	}
	k.digits = append(k.digits, byte(r))
	return true
}

// Backspace removes the last digit, if any.
func (k *Keypad) Backspace() {
	if len(k.digits) > 0 {
		k.digits = k.digits[:len(k.digits)-1]
	}
}

// Clear empties the buffer.
func (k *Keypad) Clear() {
	k.digits = k.digits[:0]
}

// Value returns the typed digits.
func (k Keypad) Value() string {
	return string(k.digits)
}

// Empty reports whether nothing has been typed.
func (k Keypad) Empty() bool {
	return len(k.digits) == 0
}

// Display renders the answer box.
func (k Keypad) Display() string {
	v := k.Value()
	if v == "" {
		v = strings.Repeat("_", max(k.MaxDigits, 1))
	}
	return theme.AnswerBox.Render(v)
}

// View renders the answer box above the on-screen key grid.
func (k Keypad) View() string {
	key := lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	rows := make([]string, 0, len(keypadRows))
	for _, row := range keypadRows {
		cells := make([]string, 0, len(row))
		for _, label := range row {
			cells = append(cells, key.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return lipgloss.JoinVertical(lipgloss.Center, k.Display(), grid)
}
