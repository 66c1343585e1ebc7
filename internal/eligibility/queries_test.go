package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/progress"
)

func codesOf(courses []curriculum.Course) []string {
	codes := make([]string, 0, len(courses))
	for _, c := range courses {
		codes = append(codes, c.Code)
	}
	return codes
}

func TestCompletedCredits(t *testing.T) {
	cur := scenario()

	assert.Zero(t, CompletedCredits(cur, progress.NewRecord("scenario")))
	assert.Zero(t, CompletedCredits(cur, nil))

	rec := record(map[string]progress.Status{"A": done, "B": taking, "X": done})
	assert.Equal(t, 7, CompletedCredits(cur, rec))
}

func TestCompletedCredits_IgnoresForeignCodes(t *testing.T) {
	cur := scenario()
	rec := record(map[string]progress.Status{"A": done, "ELSEWHERE": done})
	assert.Equal(t, 3, CompletedCredits(cur, rec))
}

func TestCompletedCredits_NeverExceedsTotal(t *testing.T) {
	cur := scenario()
	all := map[string]progress.Status{}
	for _, code := range codeList(cur) {
		all[code] = done
	}
	rec := record(all)

	got := CompletedCredits(cur, rec)
	assert.Equal(t, 36, got)
	assert.LessOrEqual(t, got, cur.TotalCredits())
	assert.InDelta(t, 1.0, Summarize(cur, rec).Percent(), 1e-9)
}

func TestByStatus(t *testing.T) {
	cur := scenario()
	rec := record(map[string]progress.Status{"A": done, "Z": done, "B": taking})

	assert.Equal(t, []string{"A", "Z"}, codesOf(ByStatus(cur, rec, progress.Completed)))
	assert.Equal(t, []string{"B"}, codesOf(ByStatus(cur, rec, progress.InProgress)))
	assert.Equal(t, []string{"C", "W", "P", "Q", "X", "Y", "G", "H"}, codesOf(ByStatus(cur, rec, progress.NotStarted)))
}

func TestAvailableAndLocked(t *testing.T) {
	cur := scenario()
	rec := record(map[string]progress.Status{"A": done, "B": done})

	assert.Equal(t, []string{"C", "W", "P", "Q", "X"}, codesOf(Available(cur, rec)))
	assert.Equal(t, []string{"Y", "Z", "G", "H"}, codesOf(Locked(cur, rec)))
}

func TestSummarize(t *testing.T) {
	cur := scenario()
	rec := record(map[string]progress.Status{"A": done, "B": done, "C": taking})

	s := Summarize(cur, rec)
	assert.Equal(t, Summary{
		TotalCredits:      36,
		CompletedCredits:  6,
		InProgressCredits: 2,
		Completed:         2,
		InProgress:        1,
		Available:         4, // W, P, Q, X
		Courses:           11,
	}, s)
	assert.InDelta(t, 6.0/36.0, s.Percent(), 1e-9)
}

func TestSummary_PercentWithoutTotal(t *testing.T) {
	assert.Zero(t, Summary{CompletedCredits: 4}.Percent())
	assert.Equal(t, 1.0, Summary{TotalCredits: 2, CompletedCredits: 4}.Percent())
}
