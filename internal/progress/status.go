package progress

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidStatus is returned when a status string is not recognized.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidGrade is returned for a grade that is not a finite number.
var ErrInvalidGrade = errors.New("invalid grade")

// Status is a learner's state for one course.
type Status string

const (
	NotStarted Status = "not-started"
	InProgress Status = "in-progress"
	Completed  Status = "completed"
)

// MaxGrade is the highest grade the CLI and TUI accept.
const MaxGrade = 100

func checkGrade(grade *float64) error {
	if grade != nil && (math.IsNaN(*grade) || math.IsInf(*grade, 0)) {
		return fmt.Errorf("%w: %v", ErrInvalidGrade, *grade)
	}
	return nil
}

// AllStatuses returns every status in cycle order.
func AllStatuses() []Status {
	return []Status{NotStarted, InProgress, Completed}
}

// Next returns the status that follows s in the rotation
// not-started → in-progress → completed → not-started.
// Unknown values restart the rotation.
func (s Status) Next() Status {
	switch s {
	case NotStarted:
		return InProgress
	case InProgress:
		return Completed
	case Completed:
		return NotStarted
	default:
		return InProgress
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case NotStarted, InProgress, Completed:
		return true
	}
	return false
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case NotStarted:
		return "Pending"
	case InProgress:
		return "In progress"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParseStatus converts user input to a Status. "pending" is accepted as an
// alias of not-started.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not-started", "pending", "":
		return NotStarted, nil
	case "in-progress", "inprogress", "started":
		return InProgress, nil
	case "completed", "done":
		return Completed, nil
	default:
		return "", fmt.Errorf("%w: %q (want not-started, in-progress or completed)", ErrInvalidStatus, s)
	}
}
