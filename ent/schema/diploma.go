package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Diploma is an accepted diploma submission.
type Diploma struct {
	ent.Schema
}

func (Diploma) Fields() []ent.Field {
	return []ent.Field{
		field.String("uid").
			Unique().
			Immutable().
			Comment("Server-assigned UUID"),
		field.String("student_name").
			NotEmpty(),
		field.Int("total_stars"),
		field.Int("avg_accuracy"),
		field.Text("level_results").
			Comment("Per-level results as JSON"),
		field.Time("completed_at").
			Default(time.Now),
	}
}

func (Diploma) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("completed_at"),
	}
}
