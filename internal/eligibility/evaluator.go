// Package eligibility decides which courses a learner may start, given a
// curriculum and a progress record.
//
// All functions here are pure: they take the curriculum and a record snapshot
// as arguments and do no I/O. Service wraps them with a progress store.
package eligibility

import (
	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/progress"
)

// CanTake reports whether the course may be started now.
//
//   - Unknown courses are never takeable.
//   - Every prerequisite must be completed.
//   - Every corequisite must be completed, in progress, or startable itself.
//     A corequisite is startable when its own prerequisites are completed;
//     its own corequisites are not consulted, which keeps courses that
//     co-require each other from recursing forever.
func CanTake(cur *curriculum.Curriculum, rec *progress.Record, code string) bool {
	course, ok := cur.Course(code)
	if !ok {
		return false
	}
	for _, pre := range course.Prerequisites {
		if rec.Status(pre) != progress.Completed {
			return false
		}
	}
	for _, co := range course.Corequisites {
		if !corequisiteSatisfied(cur, rec, co) {
			return false
		}
	}
	return true
}

// corequisiteSatisfied applies the one-level corequisite rule.
func corequisiteSatisfied(cur *curriculum.Curriculum, rec *progress.Record, code string) bool {
	co, ok := cur.Course(code)
	if !ok {
		return false
	}
	switch rec.Status(code) {
	case progress.Completed, progress.InProgress:
		return true
	}
	return prerequisitesMet(rec, co)
}

func prerequisitesMet(rec *progress.Record, course curriculum.Course) bool {
	for _, pre := range course.Prerequisites {
		if rec.Status(pre) != progress.Completed {
			return false
		}
	}
	return true
}

// RequirementKind classifies an unmet requirement.
type RequirementKind int

const (
	UnknownCourse RequirementKind = iota // The course or a corequisite is not in the curriculum
	Prerequisite                         // A prerequisite is not completed
	Corequisite                          // A corequisite is neither taken nor startable
)

// String returns the display name for a requirement kind.
func (k RequirementKind) String() string {
	switch k {
	case UnknownCourse:
		return "unknown course"
	case Prerequisite:
		return "prerequisite"
	case Corequisite:
		return "corequisite"
	default:
		return "requirement"
	}
}

// Requirement is one unmet condition of a course.
type Requirement struct {
	Kind RequirementKind
	Code string
	// Status is the learner's status for Code when the course exists.
	Status progress.Status
}

// Verdict explains an eligibility decision.
type Verdict struct {
	Code     string
	Eligible bool
	Unmet    []Requirement
}

// Check evaluates the course like CanTake but reports every unmet requirement
// instead of stopping at the first. Corequisites are only examined once all
// prerequisites are completed, matching CanTake.
func Check(cur *curriculum.Curriculum, rec *progress.Record, code string) Verdict {
	v := Verdict{Code: code}

	course, ok := cur.Course(code)
	if !ok {
		v.Unmet = append(v.Unmet, Requirement{Kind: UnknownCourse, Code: code})
		return v
	}

	for _, pre := range course.Prerequisites {
		if st := rec.Status(pre); st != progress.Completed {
			v.Unmet = append(v.Unmet, Requirement{Kind: Prerequisite, Code: pre, Status: st})
		}
	}
	if len(v.Unmet) > 0 {
		return v
	}

	for _, co := range course.Corequisites {
		if corequisiteSatisfied(cur, rec, co) {
			continue
		}
		if !cur.Has(co) {
			v.Unmet = append(v.Unmet, Requirement{Kind: UnknownCourse, Code: co})
			continue
		}
		v.Unmet = append(v.Unmet, Requirement{Kind: Corequisite, Code: co, Status: rec.Status(co)})
	}

	v.Eligible = len(v.Unmet) == 0
	return v
}
