// Package problemgen generates arithmetic questions for catalog levels.
package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/abhisek/matteflyt/internal/catalog"
)

// Generate draws one question for level from r. The level type selects the
// recipe; a type without a recipe panics because the catalog rejects such
// levels at load time.
func Generate(r *rand.Rand, level catalog.Level, p Prompts) Question {
	switch level.Type {
	case catalog.TypeTutorialButtons:
		return digit(r.IntN(10))
	case catalog.TypeAdd10Within10:
		return addFixed(r, []int{0, 1}, 10)
	case catalog.TypeAdd2Within10:
		return addFixed(r, []int{2}, 10)
	case catalog.TypeAddWithin5:
		return addWithin(r, 5)
	case catalog.TypeAddWithin10:
		return addWithin(r, 10)
	case catalog.TypeAddWithin20:
		return addWithin(r, 20)
	case catalog.TypeDoublesTo10:
		return doubles(r, 5)
	case catalog.TypeBond5:
		return bond(r, 5)
	case catalog.TypeBond10:
		return bond(r, 10)
	case catalog.TypeBond20:
		return bond(r, 20)
	case catalog.TypeSub10Within10:
		return subSmall(r, 10)
	case catalog.TypeSubWithin5:
		return subWithin(r, 5)
	case catalog.TypeSubWithin10:
		return subWithin(r, 10)
	case catalog.TypeSubWithin20:
		return subWithin(r, 20)
	case catalog.TypeSub10X:
		return subFrom(r, 10)
	case catalog.TypeBridge10Three:
		return bridge10(r)
	case catalog.TypeDoubleText:
		return doubleText(r, p)
	case catalog.TypeHalfText:
		return halfText(r, p)
	default:
		panic(fmt.Sprintf("problemgen: no recipe for level type %q", level.Type))
	}
}

// Questions builds the ordered question list for one session of level.
func Questions(r *rand.Rand, level catalog.Level, p Prompts) []Question {
	if level.IsTutorial() {
		return Tutorial(r)
	}
	qs := make([]Question, level.QuestionCount)
	for i := range qs {
		qs[i] = Generate(r, level, p)
	}
	return qs
}

// Tutorial returns one question per digit 0-9 in shuffled order. The learner
// presses the digit shown.
func Tutorial(r *rand.Rand) []Question {
	digits := make([]int, 10)
	for i := range digits {
		digits[i] = i
	}
	r.Shuffle(len(digits), func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})

	qs := make([]Question, len(digits))
	for i, d := range digits {
		qs[i] = digit(d)
	}
	return qs
}

func digit(d int) Question {
	return Question{
		Num1:       d,
		Num2:       0,
		Operator:   catalog.OpAdd,
		Answer:     d,
		Missing:    MissingResult,
		TextPrompt: strconv.Itoa(d),
	}
}

func sum(a, b int) Question {
	return Question{Num1: a, Num2: b, Operator: catalog.OpAdd, Answer: a + b, Missing: MissingResult}
}

func difference(a, b int) Question {
	return Question{Num1: a, Num2: b, Operator: catalog.OpSubtract, Answer: a - b, Missing: MissingResult}
}

// addFixed adds one of addends to a free operand so the sum stays within
// bound. The fixed addend lands on either side.
func addFixed(r *rand.Rand, addends []int, bound int) Question {
	fixed := addends[r.IntN(len(addends))]
	free := r.IntN(bound - fixed + 1)
	if r.IntN(2) == 0 {
		return sum(fixed, free)
	}
	return sum(free, fixed)
}

// addWithin picks the sum first so every total in [0, bound] is equally
// likely.
func addWithin(r *rand.Rand, bound int) Question {
	total := r.IntN(bound + 1)
	a := r.IntN(total + 1)
	return sum(a, total-a)
}

func subWithin(r *rand.Rand, bound int) Question {
	m := r.IntN(bound + 1)
	return difference(m, r.IntN(m+1))
}

// subSmall subtracts 0, 1 or the whole minuend.
func subSmall(r *rand.Rand, bound int) Question {
	m := r.IntN(bound + 1)
	choices := []int{0}
	if m >= 1 {
		choices = append(choices, 1)
	}
	if m > 1 {
		choices = append(choices, m)
	}
	return difference(m, choices[r.IntN(len(choices))])
}

func subFrom(r *rand.Rand, minuend int) Question {
	return difference(minuend, r.IntN(minuend+1))
}

func bond(r *rand.Rand, target int) Question {
	a := r.IntN(target + 1)
	return Question{
		Num1:     a,
		Num2:     target - a,
		Operator: catalog.OpAdd,
		Answer:   target,
		Missing:  MissingNum2,
	}
}

func doubles(r *rand.Rand, maxBase int) Question {
	b := r.IntN(maxBase + 1)
	return sum(b, b)
}

// bridge10 builds a three-operand sum where two operands make ten.
func bridge10(r *rand.Rand) Question {
	a := 1 + r.IntN(9)
	pair := 10 - a
	c := 1 + r.IntN(9)

	var ops [3]int
	switch r.IntN(3) {
	case 0:
		ops = [3]int{a, pair, c}
	case 1:
		ops = [3]int{a, c, pair}
	default:
		ops = [3]int{c, a, pair}
	}
	third := ops[2]
	return Question{
		Num1:     ops[0],
		Num2:     ops[1],
		Num3:     &third,
		Operator: catalog.OpAdd,
		Answer:   10 + c,
		Missing:  MissingResult,
	}
}

func doubleText(r *rand.Rand, p Prompts) Question {
	base := 1 + r.IntN(10)
	q := sum(base, base)
	q.TextPrompt = fmt.Sprintf(p.Double, base)
	return q
}

func halfText(r *rand.Rand, p Prompts) Question {
	half := 1 + r.IntN(10)
	base := 2 * half
	q := difference(base, half)
	q.TextPrompt = fmt.Sprintf(p.Half, base)
	return q
}
