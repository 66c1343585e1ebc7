package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	recordsTable = "progress_records"
	eventsTable  = "progress_events"

	sequencesTable = "journal_sequences"
)

var (
	recordsColumns = []*schema.Column{
		{Name: "record_key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeBytes},
		{Name: "updated_at", Type: field.TypeTime},
	}
	recordsTableDef = &schema.Table{
		Name:       recordsTable,
		Columns:    recordsColumns,
		PrimaryKey: []*schema.Column{recordsColumns[0]},
	}

	eventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "curriculum_id", Type: field.TypeString},
		{Name: "course_code", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "grade", Type: field.TypeFloat64, Nullable: true},
		{Name: "revision", Type: field.TypeString},
		{Name: "reset", Type: field.TypeBool},
		{Name: "created_at", Type: field.TypeTime},
	}
	eventsTableDef = &schema.Table{
		Name:       eventsTable,
		Columns:    eventsColumns,
		PrimaryKey: []*schema.Column{eventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "progressevent_sequence", Unique: true, Columns: []*schema.Column{eventsColumns[1]}},
			{Name: "progressevent_curriculum_id", Columns: []*schema.Column{eventsColumns[2]}},
		},
	}

	sequencesColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "last_val", Type: field.TypeInt64},
	}
	sequencesTableDef = &schema.Table{
		Name:       sequencesTable,
		Columns:    sequencesColumns,
		PrimaryKey: []*schema.Column{sequencesColumns[0]},
	}

	tables = []*schema.Table{recordsTableDef, eventsTableDef, sequencesTableDef}
)

// migrate creates or upgrades the tables owned by the store.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

// journalSeq numbers progress events for one journal. History is paged by
// sequence (QueryOpts.After), so numbers only grow. A missing counter row is
// seeded past the highest stored sequence.
type journalSeq struct {
	drv  *entsql.Driver
	name string
}

func newJournalSeq(drv *entsql.Driver, name string) *journalSeq {
	return &journalSeq{drv: drv, name: name}
}

// Next claims the next sequence number.
func (j *journalSeq) Next(ctx context.Context) (int64, error) {
	query := `INSERT INTO ` + sequencesTable + ` (name, last_val)
		VALUES (?, COALESCE((SELECT MAX(sequence) FROM ` + eventsTable + `), 0) + 1)
		ON CONFLICT(name) DO UPDATE SET last_val = last_val + 1
		RETURNING last_val`

	var rows entsql.Rows
	if err := j.drv.Query(ctx, query, []any{j.name}, &rows); err != nil {
		return 0, fmt.Errorf("claim %s sequence: %w", j.name, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("claim %s sequence: %w", j.name, err)
		}
		return 0, fmt.Errorf("claim %s sequence: no row returned", j.name)
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("scan %s sequence: %w", j.name, err)
	}
	return n, nil
}
