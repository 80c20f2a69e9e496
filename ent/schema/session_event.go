package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records a lesson attempt starting, ending or being
// abandoned.
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
			Comment("UUID grouping events of one attempt"),
		field.Int("node_id").
			Comment("Journey node the lesson belongs to"),
		field.String("language").
			NotEmpty(),
		field.String("action").
			NotEmpty().
			Comment("start, end or abandon"),
		field.Bool("completed").
			Default(false),
		field.Int("stars").
			Default(0),
		field.Int("correct").
			Default(0).
			Comment("Correct answers (on end only)"),
		field.Int("total").
			Default(0).
			Comment("Steps in the lesson"),
		field.Int("hearts").
			Default(0).
			Comment("Hearts left when the attempt finished"),
		field.Int("best_streak").
			Default(0),
		field.Int("points").
			Default(0).
			Comment("XP earned, completion bonus included"),
		field.Int64("duration_ms").
			Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
