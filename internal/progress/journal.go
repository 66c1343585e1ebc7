package progress

import (
	"context"
	"time"
)

// Change is one course update as written to a Journal.
type Change struct {
	Sequence     int64
	CurriculumID string
	// Code is empty when Reset is set.
	Code     string
	Status   Status
	Grade    *float64
	Revision string
	Reset    bool
	At       time.Time
}

// Journal keeps an append-only history of progress changes. The record
// stored in the Medium stays the source of truth; the journal is only read
// for display.
type Journal interface {
	Append(ctx context.Context, c Change) error
}

// MemoryJournal collects changes in memory.
type MemoryJournal struct {
	Changes []Change
}

// Append implements Journal.
func (j *MemoryJournal) Append(_ context.Context, c Change) error {
	c.Sequence = int64(len(j.Changes) + 1)
	j.Changes = append(j.Changes, c)
	return nil
}
