package problemgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxAnswerDigits is the longest answer the keypad accepts.
const MaxAnswerDigits = 2

// ErrEmptyAnswer is returned for blank keypad input.
var ErrEmptyAnswer = errors.New("empty answer")

// ParseAnswer converts keypad input into a number. Whitespace is trimmed,
// leading zeros are ignored and only up to MaxAnswerDigits digits are
// accepted.
func ParseAnswer(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrEmptyAnswer
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("answer %q is not a number", input)
		}
	}
	if len(input) > MaxAnswerDigits {
		return 0, fmt.Errorf("answer %q has more than %d digits", input, MaxAnswerDigits)
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid answer: %w", err)
	}
	return n, nil
}
