package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KV holds the learner's journey documents as JSON keyed by name.
type KV struct {
	ent.Schema
}

func (KV) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty().
			Unique().
			Comment("Document key, e.g. journey.progress"),
		field.Text("value").
			Comment("JSON document"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
