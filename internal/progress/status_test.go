package progress

import (
	"errors"
	"testing"
)

func TestNext_Rotation(t *testing.T) {
	tests := []struct {
		from Status
		want Status
	}{
		{NotStarted, InProgress},
		{InProgress, Completed},
		{Completed, NotStarted},
		{Status("bogus"), InProgress},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%q.Next() = %q, want %q", tt.from, got, tt.want)
		}
	}
}

func TestNext_ThreeStepsReturnToStart(t *testing.T) {
	for _, start := range AllStatuses() {
		s := start
		for i := 0; i < 3; i++ {
			s = s.Next()
		}
		if s != start {
			t.Errorf("three steps from %q ended at %q", start, s)
		}
		if s.Next() != start.Next() {
			t.Errorf("fourth step from %q = %q, want %q", start, s.Next(), start.Next())
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"not-started", NotStarted, false},
		{"pending", NotStarted, false},
		{"In-Progress", InProgress, false},
		{" completed ", Completed, false},
		{"done", Completed, false},
		{"finished?", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseStatus(%q): expected ErrInvalidStatus, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("").Valid() {
		t.Error("empty status should not be valid")
	}
}
