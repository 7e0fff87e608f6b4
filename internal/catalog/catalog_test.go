package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Loads(t *testing.T) {
	c := Default()
	if c.Len() != 15 {
		t.Fatalf("Len() = %d, want 15", c.Len())
	}
	if c.First() != 0 || c.Last() != 14 {
		t.Errorf("range = %d..%d, want 0..14", c.First(), c.Last())
	}
	if !c.Root().IsTutorial() {
		t.Errorf("root type = %q, want tutorial", c.Root().Type)
	}
	for i, id := range c.IDs() {
		if id != i {
			t.Errorf("IDs()[%d] = %d, want %d", i, id, i)
		}
	}
}

func TestDefault_EveryTypeIsKnown(t *testing.T) {
	for _, l := range Default().Levels() {
		if !l.Type.Valid() {
			t.Errorf("level %d: unknown type %q", l.ID, l.Type)
		}
		if l.Name == "" {
			t.Errorf("level %d: empty name", l.ID)
		}
	}
}

func TestGet(t *testing.T) {
	c := Default()
	l, ok := c.Get(6)
	if !ok {
		t.Fatal("Get(6) not found")
	}
	if l.Type != TypeBond10 {
		t.Errorf("Get(6).Type = %q, want %q", l.Type, TypeBond10)
	}
	if _, ok := c.Get(99); ok {
		t.Error("Get(99) should not be found")
	}
	if _, ok := c.Get(-1); ok {
		t.Error("Get(-1) should not be found")
	}
}

func TestPrevious(t *testing.T) {
	c := Default()
	if _, ok := c.Previous(0); ok {
		t.Error("root should have no previous level")
	}
	p, ok := c.Previous(5)
	if !ok || p.ID != 4 {
		t.Errorf("Previous(5) = %d, %v; want 4, true", p.ID, ok)
	}
}

func TestLevels_ReturnsCopy(t *testing.T) {
	c := Default()
	levels := c.Levels()
	levels[0].Name = "changed"
	if c.Root().Name == "changed" {
		t.Error("mutating Levels() result changed the catalog")
	}
}

func TestLevel_TimeLimit(t *testing.T) {
	l := Level{TimeLimitPerQuestion: 1.5}
	if got := l.TimeLimit().Milliseconds(); got != 1500 {
		t.Errorf("TimeLimit() = %dms, want 1500ms", got)
	}
}

const validTable = `version: 1
levels:
  - id: 3
    name: a
    type: add_within_5
    operator: add
    questionCount: 5
    timeLimitPerQuestion: 10
    passingScore: 80
  - id: 4
    name: b
    type: sub_within_5
    operator: subtract
    questionCount: 5
    timeLimitPerQuestion: 10
    passingScore: 80
`

func TestLoad_CustomRoot(t *testing.T) {
	c, err := Load([]byte(validTable))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.First() != 3 {
		t.Errorf("First() = %d, want 3", c.First())
	}
	if c.Root().Type != TypeAddWithin5 {
		t.Errorf("Root().Type = %q", c.Root().Type)
	}
}

func TestLoad_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing version", strings.Replace(validTable, "version: 1\n", "", 1)},
		{"unknown field", strings.Replace(validTable, "name: a", "name: a\n    bogus: 1", 1)},
		{"passing score too high", strings.Replace(validTable, "passingScore: 80", "passingScore: 150", 1)},
		{"zero time limit", strings.Replace(validTable, "timeLimitPerQuestion: 10", "timeLimitPerQuestion: 0", 1)},
		{"bad operator", strings.Replace(validTable, "operator: add", "operator: multiply", 1)},
		{"no levels", "version: 1\nlevels: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "schema") {
				t.Errorf("error should come from schema validation, got: %v", err)
			}
		})
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	if _, err := Load([]byte("levels: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateLevels_ReportsAllProblems(t *testing.T) {
	levels := []Level{
		{ID: 0, Name: "t", Type: TypeTutorialButtons, Operator: OpAdd, QuestionCount: 5, TimeLimitPerQuestion: 5, PassingScore: 80},
		{ID: 2, Name: "x", Type: "multiply_table", Operator: OpAdd, QuestionCount: 5, TimeLimitPerQuestion: 5, PassingScore: 80},
	}
	err := validateLevels(levels)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"tutorial level 0", "position 1 has id 2", "unknown type"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestValidateLevels_DetectsDuplicateID(t *testing.T) {
	levels := []Level{
		{ID: 0, Name: "a", Type: TypeBond5, Operator: OpAdd, QuestionCount: 5, TimeLimitPerQuestion: 5},
		{ID: 0, Name: "b", Type: TypeBond5, Operator: OpAdd, QuestionCount: 5, TimeLimitPerQuestion: 5},
	}
	err := validateLevels(levels)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got: %v", err)
	}
}

func TestValidateLevels_Empty(t *testing.T) {
	if err := validateLevels(nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestNew(t *testing.T) {
	c, err := New([]Level{
		{ID: 0, Name: "a", Type: TypeBond5, Operator: OpAdd, QuestionCount: 5, TimeLimitPerQuestion: 5, PassingScore: 80},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Len() != 1 || !c.Contains(0) {
		t.Errorf("unexpected catalog: len=%d", c.Len())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, []byte(validTable), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
