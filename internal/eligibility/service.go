package eligibility

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/progress"
)

// ErrNotEligible is returned by Toggle for a not-started course whose
// requirements are unmet.
var ErrNotEligible = errors.New("course is not eligible yet")

// Service answers eligibility questions against the stored progress.
// Each call re-reads the progress record, so answers always reflect the
// latest write.
type Service struct {
	store *progress.Store
}

// NewService creates a Service backed by store.
func NewService(store *progress.Store) *Service {
	return &Service{store: store}
}

// Record returns the current progress record for the curriculum.
func (s *Service) Record(ctx context.Context, cur *curriculum.Curriculum) (*progress.Record, error) {
	return s.store.Get(ctx, cur.ID)
}

// CanTake reports whether the course may be started now.
func (s *Service) CanTake(ctx context.Context, cur *curriculum.Curriculum, code string) (bool, error) {
	rec, err := s.store.Get(ctx, cur.ID)
	if err != nil {
		return false, err
	}
	return CanTake(cur, rec, code), nil
}

// Check explains the eligibility of a course.
func (s *Service) Check(ctx context.Context, cur *curriculum.Curriculum, code string) (Verdict, error) {
	rec, err := s.store.Get(ctx, cur.ID)
	if err != nil {
		return Verdict{}, err
	}
	return Check(cur, rec, code), nil
}

// Toggle advances a course to its next status. A not-started course is only
// advanced when it can be taken; otherwise ErrNotEligible is returned with
// an empty status and nothing is written.
func (s *Service) Toggle(ctx context.Context, cur *curriculum.Curriculum, code string) (progress.Status, error) {
	if !cur.Has(code) {
		return "", fmt.Errorf("toggle %q: %w", code, ErrNotEligible)
	}
	rec, err := s.store.Get(ctx, cur.ID)
	if err != nil {
		return "", err
	}
	if StateOf(cur, rec, code) == StateLocked {
		return "", fmt.Errorf("toggle %q: %w", code, ErrNotEligible)
	}
	return s.store.CycleStatus(ctx, cur.ID, code)
}

// SetStatus records an explicit status for a course of the curriculum.
// Unlike Toggle it does not check eligibility, so a learner can record
// courses validated elsewhere.
func (s *Service) SetStatus(ctx context.Context, cur *curriculum.Curriculum, code string, status progress.Status, grade *float64) error {
	if !cur.Has(code) {
		return fmt.Errorf("set status: unknown course %q", code)
	}
	return s.store.SetCourseStatus(ctx, cur.ID, code, status, grade)
}

// SetGrade records a grade for a course of the curriculum.
func (s *Service) SetGrade(ctx context.Context, cur *curriculum.Curriculum, code string, grade *float64) error {
	if !cur.Has(code) {
		return fmt.Errorf("set grade: unknown course %q", code)
	}
	return s.store.SetCourseGrade(ctx, cur.ID, code, grade)
}

// Summary computes the credit overview from the stored progress.
func (s *Service) Summary(ctx context.Context, cur *curriculum.Curriculum) (Summary, error) {
	rec, err := s.store.Get(ctx, cur.ID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(cur, rec), nil
}

// ByStatus lists the curriculum's courses with the given status.
func (s *Service) ByStatus(ctx context.Context, cur *curriculum.Curriculum, status progress.Status) ([]curriculum.Course, error) {
	rec, err := s.store.Get(ctx, cur.ID)
	if err != nil {
		return nil, err
	}
	return ByStatus(cur, rec, status), nil
}

// Available lists the courses that can be started now.
func (s *Service) Available(ctx context.Context, cur *curriculum.Curriculum) ([]curriculum.Course, error) {
	rec, err := s.store.Get(ctx, cur.ID)
	if err != nil {
		return nil, err
	}
	return Available(cur, rec), nil
}

// Reset clears all progress for the curriculum.
func (s *Service) Reset(ctx context.Context, cur *curriculum.Curriculum) {
	s.store.Reset(ctx, cur.ID)
}
