package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// TutorialQuestions is the fixed length of the digit tutorial: one question
// per digit 0-9.
const TutorialQuestions = 10

//go:embed schema.json
var documentSchema []byte

const schemaURL = "schema://matteflyt/levels.json"

// compiledSchema is built during package variable initialization so it is
// ready before init() loads the embedded table.
var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	var parsed any
	if err := json.Unmarshal(documentSchema, &parsed); err != nil {
		panic(fmt.Sprintf("catalog: parse schema.json: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, parsed); err != nil {
		panic(fmt.Sprintf("catalog: add schema resource: %v", err))
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("catalog: compile schema: %v", err))
	}
	return sch
}

// validateDocument checks the raw YAML document against the level table
// schema. The YAML tree is round-tripped through JSON so the validator sees
// plain JSON values.
func validateDocument(data []byte) error {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse levels: %w", err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("convert levels to JSON: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("convert levels to JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("levels schema validation failed: %w", err)
	}
	return nil
}

// validateLevels performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("catalog validation failed:\n  no levels defined")
	}

	var errs []string
	seen := make(map[int]bool, len(levels))
	root := levels[0].ID
	if root < 0 {
		errs = append(errs, fmt.Sprintf("root level id %d is negative", root))
	}

	for i, l := range levels {
		if seen[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate level id: %d", l.ID))
		}
		seen[l.ID] = true

		if want := root + i; l.ID != want {
			errs = append(errs, fmt.Sprintf("level at position %d has id %d, want %d", i, l.ID, want))
		}
		if strings.TrimSpace(l.Name) == "" {
			errs = append(errs, fmt.Sprintf("level %d has no name", l.ID))
		}
		if !l.Type.Valid() {
			errs = append(errs, fmt.Sprintf("level %d has unknown type %q", l.ID, l.Type))
		}
		if !l.Operator.Valid() {
			errs = append(errs, fmt.Sprintf("level %d has unknown operator %q", l.ID, l.Operator))
		}
		if l.QuestionCount <= 0 {
			errs = append(errs, fmt.Sprintf("level %d has questionCount %d, want > 0", l.ID, l.QuestionCount))
		}
		if l.IsTutorial() && l.QuestionCount != TutorialQuestions {
			errs = append(errs, fmt.Sprintf("tutorial level %d has questionCount %d, want %d", l.ID, l.QuestionCount, TutorialQuestions))
		}
		if l.TimeLimitPerQuestion <= 0 {
			errs = append(errs, fmt.Sprintf("level %d has timeLimitPerQuestion %g, want > 0", l.ID, l.TimeLimitPerQuestion))
		}
		if l.PassingScore < 0 || l.PassingScore > 100 {
			errs = append(errs, fmt.Sprintf("level %d has passingScore %d, want 0-100", l.ID, l.PassingScore))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
