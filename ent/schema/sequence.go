package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Sequence is a single-row counter. Record versions and LLM events draw
// from it so they can be ordered against each other.
type Sequence struct {
	ent.Schema
}

func (Sequence) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("next_val").
			Default(1),
	}
}
