package store

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/pyqtrack/ent/schema"
)

// entities maps each SQLite table to the ent schema that describes it.
var entities = []struct {
	name   string
	schema ent.Interface
}{
	{"snapshots", schema.Snapshot{}},
	{"llm_request_events", schema.LLMRequestEvent{}},
	{"global_sequence", schema.Sequence{}},
}

// storage overrides ent's SQLite column types where the repositories
// read and write a different representation. Times are unix millis.
var storage = map[field.Type]string{
	field.TypeTime: "integer",
	field.TypeBool: "integer",
	field.TypeJSON: "text",
}

// tables builds the migration tables from the ent schemas, the same
// shape entc writes into migrate/schema.go.
func tables() ([]*entschema.Table, error) {
	out := make([]*entschema.Table, 0, len(entities))
	for _, e := range entities {
		t := entschema.NewTable(e.name).
			AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

		fields, indexes := describe(e.schema)
		for _, f := range fields {
			c, err := column(f.Descriptor())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.name, err)
			}
			t.AddColumn(c)
		}
		for _, idx := range indexes {
			d := idx.Descriptor()
			name := d.StorageKey
			if name == "" {
				name = e.name + "_" + strings.Join(d.Fields, "_")
			}
			t.AddIndex(name, d.Unique, d.Fields)
		}
		out = append(out, t)
	}
	return out, nil
}

// describe flattens mixin fields and indexes ahead of the schema's own.
func describe(s ent.Interface) ([]ent.Field, []ent.Index) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	return append(fields, s.Fields()...), append(indexes, s.Indexes()...)
}

func column(d *field.Descriptor) (*entschema.Column, error) {
	if d.Err != nil {
		return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
	}
	c := &entschema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Size:     d.Size,
		Unique:   d.Unique,
		Nullable: d.Optional || d.Nillable,
	}
	if typ, ok := storage[d.Info.Type]; ok {
		c.SchemaType = map[string]string{dialect.SQLite: typ}
	}
	for _, e := range d.Enums {
		c.Enums = append(c.Enums, e.V)
	}
	// Function defaults such as time.Now are applied by the repositories.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c, nil
}

// migrate creates missing tables, columns and indexes with ent's migration
// engine. It never drops anything.
func migrate(ctx context.Context, db *sql.DB) error {
	tbls, err := tables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	m, err := entschema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tbls...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
