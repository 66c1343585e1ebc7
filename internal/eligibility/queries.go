package eligibility

import (
	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/progress"
)

// CompletedCredits sums the credits of the curriculum's courses whose status
// is completed. Entries for codes outside the curriculum are ignored.
func CompletedCredits(cur *curriculum.Curriculum, rec *progress.Record) int {
	total := 0
	for _, c := range cur.Courses() {
		if rec.Status(c.Code) == progress.Completed {
			total += c.Credits
		}
	}
	return total
}

// ByStatus returns the curriculum's courses with the given status, in block order.
func ByStatus(cur *curriculum.Curriculum, rec *progress.Record, status progress.Status) []curriculum.Course {
	var result []curriculum.Course
	for _, c := range cur.Courses() {
		if rec.Status(c.Code) == status {
			result = append(result, c)
		}
	}
	return result
}

// Available returns the not-started courses that can be taken now, in block order.
func Available(cur *curriculum.Curriculum, rec *progress.Record) []curriculum.Course {
	var result []curriculum.Course
	for _, c := range cur.Courses() {
		if rec.Status(c.Code) == progress.NotStarted && CanTake(cur, rec, c.Code) {
			result = append(result, c)
		}
	}
	return result
}

// Locked returns the not-started courses that cannot be taken yet.
func Locked(cur *curriculum.Curriculum, rec *progress.Record) []curriculum.Course {
	var result []curriculum.Course
	for _, c := range cur.Courses() {
		if rec.Status(c.Code) == progress.NotStarted && !CanTake(cur, rec, c.Code) {
			result = append(result, c)
		}
	}
	return result
}

// Summary is the credit overview shown above the curriculum map.
type Summary struct {
	TotalCredits      int
	CompletedCredits  int
	InProgressCredits int
	Completed         int
	InProgress        int
	Available         int
	Courses           int
}

// Percent returns completed credits as a fraction of total credits in [0, 1].
func (s Summary) Percent() float64 {
	if s.TotalCredits <= 0 {
		return 0
	}
	p := float64(s.CompletedCredits) / float64(s.TotalCredits)
	if p > 1 {
		return 1
	}
	return p
}

// Summarize computes the Summary for a record.
func Summarize(cur *curriculum.Curriculum, rec *progress.Record) Summary {
	s := Summary{
		TotalCredits:     cur.TotalCredits(),
		CompletedCredits: CompletedCredits(cur, rec),
	}
	for _, c := range cur.Courses() {
		s.Courses++
		switch rec.Status(c.Code) {
		case progress.Completed:
			s.Completed++
		case progress.InProgress:
			s.InProgress++
			s.InProgressCredits += c.Credits
		default:
			if CanTake(cur, rec, c.Code) {
				s.Available++
			}
		}
	}
	return s
}
