package mastery

// LevelState is a level's position relative to the learner.
type LevelState int

const (
	StateLocked    LevelState = iota // Previous level not finished fast and accurately enough
	StateAvailable                   // Unlocked, never completed
	StatePlaying                     // Completed at least once, below the passing score
	StatePassed                      // Best result meets the level's passing score
)

// Icon returns the display icon for a level state.
func (s LevelState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🔓"
	case StatePlaying:
		return "📖"
	case StatePassed:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the English label used by the levels command output.
func (s LevelState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StatePlaying:
		return "In progress"
	case StatePassed:
		return "Passed"
	default:
		return "Unknown"
	}
}
