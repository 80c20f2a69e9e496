package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answer within a lesson attempt.
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
		field.Int("node_id"),
		field.Int("step").
			Comment("Zero-based position in the lesson"),
		field.String("kind").
			NotEmpty().
			Comment("Exercise kind, e.g. trace or scramble"),
		field.Bool("correct"),
		field.Int64("elapsed_ms").
			Comment("Milliseconds to answer"),
		field.Int("points").
			Default(0),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
