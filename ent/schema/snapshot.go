package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot is one saved version of a tracker record. The newest row per
// kind wins on load; older rows are pruned.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Enum("kind").
			Values("state", "settings"),
		field.JSON("data", map[string]any{}).
			Comment("Record payload as written by the store"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind", "sequence"),
	}
}
