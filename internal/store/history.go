package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/currimap/internal/progress"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Course string    // only this course code
	From   time.Time // timestamp >= From
}

// History is the append-only log of progress changes. It implements
// progress.Journal.
type History struct {
	drv *entsql.Driver
	seq *journalSeq
}

var _ progress.Journal = (*History)(nil)

// Append records a change under the next journal sequence number.
func (h *History) Append(ctx context.Context, c progress.Change) error {
	seqNum, err := h.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var grade any
	if c.Grade != nil {
		grade = *c.Grade
	}
	at := c.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	query, args := builder().Insert(eventsTable).
		Columns("sequence", "curriculum_id", "course_code", "status", "grade", "revision", "reset", "created_at").
		Values(seqNum, c.CurriculumID, c.Code, string(c.Status), grade, c.Revision, c.Reset, at).
		Query()

	var res sql.Result
	if err := h.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

// List returns the changes for a curriculum, newest first.
func (h *History) List(ctx context.Context, curriculumID string, opts QueryOpts) ([]progress.Change, error) {
	b := builder()
	preds := []*entsql.Predicate{entsql.EQ("curriculum_id", curriculumID)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Course != "" {
		preds = append(preds, entsql.EQ("course_code", opts.Course))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From))
	}

	sel := b.Select("sequence", "curriculum_id", "course_code", "status", "grade", "revision", "reset", "created_at").
		From(b.Table(eventsTable)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := h.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var changes []progress.Change
	for rows.Next() {
		var (
			c      progress.Change
			status string
			grade  sql.NullFloat64
		)
		if err := rows.Scan(&c.Sequence, &c.CurriculumID, &c.Code, &status, &grade, &c.Revision, &c.Reset, &c.At); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		c.Status = progress.Status(status)
		if grade.Valid {
			g := grade.Float64
			c.Grade = &g
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
