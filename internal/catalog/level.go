package catalog

import "time"

// Operator classifies a level for display. Question generation is driven by
// the level type, never by the operator.
type Operator string

const (
	OpAdd      Operator = "add"
	OpSubtract Operator = "subtract"
)

// Symbol returns the arithmetic sign for display.
func (o Operator) Symbol() string {
	if o == OpSubtract {
		return "-"
	}
	return "+"
}

// Valid reports whether o is a known operator.
func (o Operator) Valid() bool {
	return o == OpAdd || o == OpSubtract
}

// LevelType names the recipe a level's questions are generated with.
type LevelType string

const (
	TypeTutorialButtons LevelType = "tutorial_buttons"
	TypeAdd10Within10   LevelType = "add_1_0_within_10"
	TypeAdd2Within10    LevelType = "add_2_within_10"
	TypeAddWithin5      LevelType = "add_within_5"
	TypeAddWithin10     LevelType = "add_within_10"
	TypeAddWithin20     LevelType = "add_within_20"
	TypeDoublesTo10     LevelType = "doubles_to_10"
	TypeBond5           LevelType = "bond_5"
	TypeBond10          LevelType = "bond_10"
	TypeBond20          LevelType = "bond_20"
	TypeSub10Within10   LevelType = "sub_1_0_within_10"
	TypeSubWithin5      LevelType = "sub_within_5"
	TypeSubWithin10     LevelType = "sub_within_10"
	TypeSubWithin20     LevelType = "sub_within_20"
	TypeSub10X          LevelType = "sub_10_x"
	TypeBridge10Three   LevelType = "bridge_10_three"
	TypeDoubleText      LevelType = "double_text"
	TypeHalfText        LevelType = "half_text"
)

var allTypes = []LevelType{
	TypeTutorialButtons,
	TypeAdd10Within10,
	TypeAdd2Within10,
	TypeAddWithin5,
	TypeAddWithin10,
	TypeAddWithin20,
	TypeDoublesTo10,
	TypeBond5,
	TypeBond10,
	TypeBond20,
	TypeSub10Within10,
	TypeSubWithin5,
	TypeSubWithin10,
	TypeSubWithin20,
	TypeSub10X,
	TypeBridge10Three,
	TypeDoubleText,
	TypeHalfText,
}

// AllTypes returns every level type the generator has a recipe for.
func AllTypes() []LevelType {
	out := make([]LevelType, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t belongs to the closed set of level types.
func (t LevelType) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Level is one entry of the catalog. Levels are immutable once loaded.
type Level struct {
	ID                   int       `yaml:"id"`
	Name                 string    `yaml:"name"`
	Description          string    `yaml:"description"`
	Type                 LevelType `yaml:"type"`
	Operator             Operator  `yaml:"operator"`
	QuestionCount        int       `yaml:"questionCount"`
	TimeLimitPerQuestion float64   `yaml:"timeLimitPerQuestion"`
	PassingScore         int       `yaml:"passingScore"`
	AlwaysUnlocked       bool      `yaml:"alwaysUnlocked"`
}

// TimeLimit returns the advisory per-question time limit.
func (l Level) TimeLimit() time.Duration {
	return time.Duration(l.TimeLimitPerQuestion * float64(time.Second))
}

// IsTutorial reports whether the level is the digit-button tutorial.
func (l Level) IsTutorial() bool {
	return l.Type == TypeTutorialButtons
}
