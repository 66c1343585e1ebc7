package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix prefixes every progress key in the medium.
const KeyPrefix = "progress_"

// Key returns the medium key for a curriculum's progress record.
func Key(curriculumID string) string {
	return KeyPrefix + curriculumID
}

// ErrMalformedRecord indicates a stored value that could not be decoded.
type ErrMalformedRecord struct {
	Key string
	Err error
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("malformed progress record %q: %v", e.Key, e.Err)
}

func (e *ErrMalformedRecord) Unwrap() error { return e.Err }

// Store reads and writes progress records through a Medium. Every call
// reads the medium again; nothing is cached between calls.
//
// Medium failures never reach the caller: a failed read yields an empty
// record and a failed write is dropped. Both are logged at warn level.
type Store struct {
	medium  Medium
	journal Journal
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithJournal records every successful course change in j.
func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

// NewStore creates a Store over m. A nil medium behaves like NopMedium.
func NewStore(m Medium, opts ...Option) *Store {
	if m == nil {
		m = NopMedium{}
	}
	s := &Store{
		medium: m,
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the progress record for a curriculum, or an empty record when
// none is stored. The only error is *ErrMalformedRecord.
func (s *Store) Get(ctx context.Context, curriculumID string) (*Record, error) {
	key := Key(curriculumID)
	raw, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		s.logger.Warn("progress read failed, using empty record", "curriculum", curriculumID, "key", key, "err", err)
		return NewRecord(curriculumID), nil
	}
	if !ok {
		return NewRecord(curriculumID), nil
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &ErrMalformedRecord{Key: key, Err: err}
	}
	if rec.CurriculumID == "" {
		rec.CurriculumID = curriculumID
	}
	if rec.Courses == nil {
		rec.Courses = []Entry{}
	}
	return &rec, nil
}

// Set overwrites the stored record for rec.CurriculumID, stamping it with
// the current time and a fresh revision.
func (s *Store) Set(ctx context.Context, rec *Record) {
	s.save(ctx, rec)
}

// save writes rec and reports whether the write reached the medium.
func (s *Store) save(ctx context.Context, rec *Record) bool {
	rec.LastUpdated = s.now()
	rec.Revision = uuid.NewString()

	key := Key(rec.CurriculumID)
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn("progress encode failed, write dropped", "curriculum", rec.CurriculumID, "err", err)
		return false
	}
	if err := s.medium.Put(ctx, key, data); err != nil {
		s.logger.Warn("progress write failed, write dropped", "curriculum", rec.CurriculumID, "key", key, "err", err)
		return false
	}
	s.logger.Debug("progress saved", "curriculum", rec.CurriculumID, "revision", rec.Revision, "courses", len(rec.Courses))
	return true
}

// record appends the change for code to the journal, if one is configured.
func (s *Store) record(ctx context.Context, rec *Record, code string) {
	if s.journal == nil {
		return
	}
	e, _ := rec.Entry(code)
	c := Change{
		CurriculumID: rec.CurriculumID,
		Code:         code,
		Status:       rec.Status(code),
		Grade:        e.Grade,
		Revision:     rec.Revision,
		At:           rec.LastUpdated,
	}
	if err := s.journal.Append(ctx, c); err != nil {
		s.logger.Warn("progress journal append failed", "curriculum", rec.CurriculumID, "course", code, "err", err)
	}
}

// SetCourseStatus upserts one course entry and writes the record back.
// The grade is replaced (nil clears it). The enrollment time is stamped when
// the status becomes in-progress and the completion time when it becomes
// completed; otherwise both are cleared.
func (s *Store) SetCourseStatus(ctx context.Context, curriculumID, code string, status Status, grade *float64) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := checkGrade(grade); err != nil {
		return err
	}
	rec, err := s.Get(ctx, curriculumID)
	if err != nil {
		return fmt.Errorf("set course status: %w", err)
	}
	rec.apply(code, status, grade, s.now())
	if s.save(ctx, rec) {
		s.record(ctx, rec, code)
	}
	return nil
}

// CycleStatus moves a course to the next status in the rotation and returns it.
func (s *Store) CycleStatus(ctx context.Context, curriculumID, code string) (Status, error) {
	rec, err := s.Get(ctx, curriculumID)
	if err != nil {
		return "", fmt.Errorf("cycle course status: %w", err)
	}
	next := rec.Status(code).Next()
	rec.apply(code, next, nil, s.now())
	if s.save(ctx, rec) {
		s.record(ctx, rec, code)
	}
	return next, nil
}

// SetCourseGrade records a grade without touching the course status or dates.
// A nil grade clears it.
func (s *Store) SetCourseGrade(ctx context.Context, curriculumID, code string, grade *float64) error {
	if err := checkGrade(grade); err != nil {
		return err
	}
	rec, err := s.Get(ctx, curriculumID)
	if err != nil {
		return fmt.Errorf("set course grade: %w", err)
	}
	var g *float64
	if grade != nil {
		v := *grade
		g = &v
	}
	if i := rec.find(code); i >= 0 {
		rec.Courses[i].Grade = g
	} else {
		rec.Courses = append(rec.Courses, Entry{Code: code, Status: NotStarted, Grade: g})
	}
	if s.save(ctx, rec) {
		s.record(ctx, rec, code)
	}
	return nil
}

// Reset removes the stored record for a curriculum.
func (s *Store) Reset(ctx context.Context, curriculumID string) {
	key := Key(curriculumID)
	if err := s.medium.Delete(ctx, key); err != nil {
		s.logger.Warn("progress reset failed", "curriculum", curriculumID, "key", key, "err", err)
		return
	}
	if s.journal != nil {
		c := Change{CurriculumID: curriculumID, Reset: true, At: s.now()}
		if err := s.journal.Append(ctx, c); err != nil {
			s.logger.Warn("progress journal append failed", "curriculum", curriculumID, "err", err)
		}
	}
}

// Curricula lists the IDs of curricula that have a stored record.
func (s *Store) Curricula(ctx context.Context) []string {
	keys, err := s.medium.Keys(ctx, KeyPrefix)
	if err != nil {
		s.logger.Warn("progress list failed", "err", err)
		return nil
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, KeyPrefix))
	}
	return ids
}
