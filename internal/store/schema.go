package store

import (
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/matteflyt/ent/schema"
)

const (
	slotsTable         = "slots"
	diplomasTable      = "diplomas"
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
)

var (
	// SlotsTable holds the schema information for the "slots" table.
	SlotsTable = tableFor(slotsTable, "slot", entschema.Slot{})
	// DiplomasTable holds the schema information for the "diplomas" table.
	DiplomasTable = tableFor(diplomasTable, "diploma", entschema.Diploma{})
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = tableFor(sessionEventsTable, "sessionevent", entschema.SessionEvent{})
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = tableFor(answerEventsTable, "answerevent", entschema.AnswerEvent{})

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SlotsTable,
		DiplomasTable,
		SessionEventsTable,
		AnswerEventsTable,
	}
)

// tableFor builds the migration table for an ent entity: an auto-increment
// id followed by the mixin fields and the entity's own fields, in
// declaration order. Index names are prefix_field1_field2.
func tableFor(name, prefix string, e ent.Interface) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range e.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, e.Fields()...)
	indexes = append(indexes, e.Indexes()...)

	byName := make(map[string]*schema.Column, len(fields))
	for _, f := range fields {
		c := columnFor(f.Descriptor())
		t.Columns = append(t.Columns, c)
		byName[c.Name] = c
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		ix := &schema.Index{
			Name:   d.StorageKey,
			Unique: d.Unique,
		}
		if ix.Name == "" {
			ix.Name = prefix + "_" + strings.Join(d.Fields, "_")
		}
		for _, f := range d.Fields {
			if c, ok := byName[f]; ok {
				ix.Columns = append(ix.Columns, c)
			}
		}
		t.Indexes = append(t.Indexes, ix)
	}
	return t
}

func columnFor(d *field.Descriptor) *schema.Column {
	name := d.StorageKey
	if name == "" {
		name = d.Name
	}
	c := &schema.Column{
		Name:     name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional,
	}
	// Function defaults such as time.Now are applied by the repos.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}
