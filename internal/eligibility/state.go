package eligibility

import (
	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/progress"
)

// CourseState is a course's display state relative to the learner.
type CourseState int

const (
	StateLocked     CourseState = iota // Not started and not takeable yet
	StateAvailable                     // Not started and takeable now
	StateInProgress                    // Currently being taken
	StateCompleted                     // Passed
)

// StateOf computes the display state of a course. Courses already in
// progress or completed keep that state even if their requirements are
// no longer met.
func StateOf(cur *curriculum.Curriculum, rec *progress.Record, code string) CourseState {
	switch rec.Status(code) {
	case progress.Completed:
		return StateCompleted
	case progress.InProgress:
		return StateInProgress
	}
	if CanTake(cur, rec, code) {
		return StateAvailable
	}
	return StateLocked
}

// Interactive reports whether a learner may change the course status from
// this state. Locked courses ignore toggles.
func (s CourseState) Interactive() bool {
	return s != StateLocked
}

// Icon returns the display icon for a course state.
func (s CourseState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "○"
	case StateInProgress:
		return "◐"
	case StateCompleted:
		return "●"
	default:
		return "?"
	}
}

// Label returns the display label for a course state.
func (s CourseState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateInProgress:
		return "In progress"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
