package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin adds the ordering columns shared by append-only tables:
// a value from the global Sequence and the write time in unix millis.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable(),
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{index.Fields("timestamp")}
}
