package components

import (
	"strings"

	"github.com/abhisek/matteflyt/internal/ui/theme"
)

// MaxStars is the most stars a level can award.
const MaxStars = 3

// Stars renders n filled stars followed by empty ones up to MaxStars.
func Stars(n int) string {
	n = min(max(n, 0), MaxStars)
	return theme.StarOn.Render(strings.Repeat("★", n)) +
		theme.StarOff.Render(strings.Repeat("☆", MaxStars-n))
}
