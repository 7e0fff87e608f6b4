package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.Int("level_id").
			Comment("Level being played"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.Int("questions").
			Default(0).
			Comment("Questions in the session"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on end only)"),
		field.Int("accuracy").
			Default(0).
			Comment("Rounded percentage (on end only)"),
		field.Float("avg_time").
			Default(0).
			Comment("Mean seconds per question (on end only)"),
		field.Int("stars").
			Default(0).
			Comment("Stars earned (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
