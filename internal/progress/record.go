package progress

import (
	"slices"
	"time"
)

// Entry is the learner data kept for one course.
type Entry struct {
	Code        string     `json:"code"`
	Status      Status     `json:"status"`
	Grade       *float64   `json:"grade,omitempty"`
	EnrolledAt  *time.Time `json:"enrollmentDate,omitempty"`
	CompletedAt *time.Time `json:"completionDate,omitempty"`
}

// Record is the progress of one learner through one curriculum.
// It holds at most one entry per course code.
type Record struct {
	CurriculumID string    `json:"curriculumId"`
	Courses      []Entry   `json:"courses"`
	LastUpdated  time.Time `json:"lastUpdated"`
	Revision     string    `json:"revision,omitempty"`
}

// NewRecord returns an empty record for the curriculum.
func NewRecord(curriculumID string) *Record {
	return &Record{CurriculumID: curriculumID, Courses: []Entry{}}
}

// Entry returns the entry for code, if any.
func (r *Record) Entry(code string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	i := r.find(code)
	if i < 0 {
		return Entry{}, false
	}
	return r.Courses[i], true
}

// Status returns the status for code. Courses without an entry are not started.
func (r *Record) Status(code string) Status {
	e, ok := r.Entry(code)
	if !ok || e.Status == "" {
		return NotStarted
	}
	return e.Status
}

// Grade returns the recorded grade for code.
func (r *Record) Grade(code string) (float64, bool) {
	e, ok := r.Entry(code)
	if !ok || e.Grade == nil {
		return 0, false
	}
	return *e.Grade, true
}

// Codes returns the codes that have the given status, in entry order.
func (r *Record) Codes(status Status) []string {
	if r == nil {
		return nil
	}
	var codes []string
	for _, e := range r.Courses {
		if e.Status == status {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	c.Courses = make([]Entry, len(r.Courses))
	for i, e := range r.Courses {
		c.Courses[i] = e.clone()
	}
	return &c
}

// apply upserts the entry for code. Grade is replaced, the enrollment time
// is set only for in-progress and the completion time only for completed.
func (r *Record) apply(code string, status Status, grade *float64, now time.Time) {
	e := Entry{Code: code, Status: status}
	if grade != nil {
		g := *grade
		e.Grade = &g
	}
	switch status {
	case InProgress:
		e.EnrolledAt = &now
	case Completed:
		e.CompletedAt = &now
	}

	if i := r.find(code); i >= 0 {
		r.Courses[i] = e
		return
	}
	r.Courses = append(r.Courses, e)
}

func (r *Record) find(code string) int {
	return slices.IndexFunc(r.Courses, func(e Entry) bool { return e.Code == code })
}

func (e Entry) clone() Entry {
	if e.Grade != nil {
		g := *e.Grade
		e.Grade = &g
	}
	if e.EnrolledAt != nil {
		t := *e.EnrolledAt
		e.EnrolledAt = &t
	}
	if e.CompletedAt != nil {
		t := *e.CompletedAt
		e.CompletedAt = &t
	}
	return e
}
