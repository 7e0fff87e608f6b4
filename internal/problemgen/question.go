package problemgen

import (
	"strconv"
	"strings"

	"github.com/abhisek/matteflyt/internal/catalog"
)

// Blank marks the quantity the learner has to supply in a rendered equation.
const Blank = "___"

// Position names the quantity of an equation the learner supplies.
type Position string

const (
	MissingResult Position = "result"
	MissingNum2   Position = "num2"
	MissingNum3   Position = "num3"
)

// Question is one arithmetic item. Num1 op Num2 (op Num3) always equals
// Answer; Missing says which of those quantities is hidden.
type Question struct {
	Num1     int
	Num2     int
	Num3     *int
	Operator catalog.Operator
	Answer   int
	Missing  Position

	// TextPrompt replaces the rendered equation when set. The learner then
	// supplies Answer regardless of Missing.
	TextPrompt string
}

// Expected returns the value the learner must enter.
func (q Question) Expected() int {
	if q.TextPrompt != "" {
		return q.Answer
	}
	switch q.Missing {
	case MissingNum2:
		return q.Num2
	case MissingNum3:
		if q.Num3 != nil {
			return *q.Num3
		}
	}
	return q.Answer
}

// Correct reports whether input is the expected value.
func (q Question) Correct(input int) bool {
	return input == q.Expected()
}

// Evaluate applies the operator to the operands.
func (q Question) Evaluate() int {
	v := apply(q.Operator, q.Num1, q.Num2)
	if q.Num3 != nil {
		v = apply(q.Operator, v, *q.Num3)
	}
	return v
}

// Holds reports whether the operands produce Answer.
func (q Question) Holds() bool {
	return q.Evaluate() == q.Answer
}

func apply(op catalog.Operator, a, b int) int {
	if op == catalog.OpSubtract {
		return a - b
	}
	return a + b
}

// Equation renders the question for display, e.g. "3 + ___ = 5". Text
// prompt questions render as their prompt.
func (q Question) Equation() string {
	if q.TextPrompt != "" {
		return q.TextPrompt
	}
	sym := q.Operator.Symbol()
	parts := []string{strconv.Itoa(q.Num1), sym, q.show(MissingNum2, q.Num2)}
	if q.Num3 != nil {
		parts = append(parts, sym, q.show(MissingNum3, *q.Num3))
	}
	parts = append(parts, "=", q.show(MissingResult, q.Answer))
	return strings.Join(parts, " ")
}

func (q Question) show(pos Position, v int) string {
	if q.Missing == pos {
		return Blank
	}
	return strconv.Itoa(v)
}

// ReviewText is the line shown for a mistake after the session.
func (q Question) ReviewText() string {
	return q.Equation()
}

// CorrectText is the expected value as displayed in the mistake review.
func (q Question) CorrectText() string {
	return strconv.Itoa(q.Expected())
}
