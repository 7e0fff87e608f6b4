package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answer event within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("level_id").
			Comment("Level this question was for"),
		field.String("question_text").
			NotEmpty().
			Comment("The equation shown"),
		field.Int("expected").
			Comment("The correct answer"),
		field.Int("given").
			Comment("What the learner entered"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int64("time_ms").
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("level_id"),
		index.Fields("session_id"),
	}
}
