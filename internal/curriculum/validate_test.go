package curriculum

import (
	"strings"
	"testing"
)

func TestValidate_SampleCurriculumPasses(t *testing.T) {
	if err := sampleCurriculumValid().Validate(); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
}

func sampleCurriculumValid() *Curriculum {
	return New("ok", "OK",
		Block{ID: 1, Name: "One", TotalCredits: 6, Courses: []Course{
			{Code: "A", Credits: 3, Corequisites: []string{"B"}},
			{Code: "B", Credits: 3, Corequisites: []string{"A"}},
		}},
	)
}

func TestValidate_DetectsCycle(t *testing.T) {
	c := New("cyc", "Cycle", Block{ID: 1, Courses: []Course{
		{Code: "a", Credits: 1, Prerequisites: []string{"b"}},
		{Code: "b", Credits: 1, Prerequisites: []string{"a"}},
		{Code: "c", Credits: 1},
	}})
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error should mention cycle, got: %v", err)
	}
	if strings.Contains(err.Error(), "involving courses: a, b, c") {
		t.Errorf("c is not part of the cycle: %v", err)
	}
}

func TestValidate_MutualCorequisitesAreNotACycle(t *testing.T) {
	if err := sampleCurriculumValid().Validate(); err != nil {
		t.Fatalf("mutual corequisites should be allowed: %v", err)
	}
}

func TestValidate_DetectsDanglingReferences(t *testing.T) {
	c := New("dangling", "Dangling", Block{ID: 1, Courses: []Course{
		{Code: "a", Credits: 1, Prerequisites: []string{"ghost"}},
		{Code: "b", Credits: 1, Corequisites: []string{"phantom"}},
	}})
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for dangling references, got nil")
	}
	for _, want := range []string{"ghost", "phantom"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestValidate_DetectsDuplicateCode(t *testing.T) {
	c := New("dup", "Dup",
		Block{ID: 1, Courses: []Course{{Code: "a", Credits: 1}}},
		Block{ID: 2, Courses: []Course{{Code: "a", Credits: 2}}},
	)
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for duplicate code, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidate_DetectsSelfReference(t *testing.T) {
	c := New("self", "Self", Block{ID: 1, Courses: []Course{
		{Code: "a", Credits: 1, Prerequisites: []string{"a"}},
	}})
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for self reference, got nil")
	}
	if !strings.Contains(err.Error(), "itself") {
		t.Errorf("error should mention self reference, got: %v", err)
	}
}

func TestValidate_DetectsNonPositiveCredits(t *testing.T) {
	c := New("credits", "Credits", Block{ID: 1, Courses: []Course{
		{Code: "a", Credits: 0},
	}})
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for zero credits, got nil")
	}
	if !strings.Contains(err.Error(), "credits must be > 0") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DetectsEmptyID(t *testing.T) {
	c := New("", "Nameless")
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for empty ID, got nil")
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	c := New("many", "Many", Block{ID: 1, Courses: []Course{
		{Code: "a", Credits: 0, Prerequisites: []string{"ghost"}},
		{Code: "a", Credits: 1},
	}})
	got := c.problems()
	if len(got) != 3 {
		t.Errorf("got %d problems, want 3: %v", len(got), got)
	}
}
