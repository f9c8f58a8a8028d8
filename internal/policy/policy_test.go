package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

type emptyPolicy struct{}

func (emptyPolicy) Name() string { return "broken" }
func (emptyPolicy) Apply(*course.Course, *course.Student) ([]*course.Student, error) {
	return nil, nil
}

func TestPipelineRejectsEmptyCandidateSet(t *testing.T) {
	crs := accomCourse(t)
	students := map[int]*course.Student{1: accomStudent(t, crs, 0)}

	p := NewPipeline(crs, nil, emptyPolicy{})
	_, err := p.Run(students)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("err = %v, want ErrNoCandidates", err)
	}
}

func TestStandardPipelineExpansion(t *testing.T) {
	// One category, slip budget 1, one late assignment, drop count 1 over
	// two assignments. Slip days triple the set to 2 (original + spend 1),
	// drops then double it: 4 candidates total.
	crs, err := course.New(
		[]course.Category{{Name: "Homework", Weight: 1, Drops: 1, SlipDays: 1, HasLateMultiplier: true}},
		[]course.Assignment{
			{Name: "hw1", Category: "Homework", Possible: 10, Weight: 1},
			{Name: "hw2", Category: "Homework", Possible: 10, Weight: 1},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	students, err := crs.BuildStudents(
		[]course.RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]course.GradeRecord{
			{StudentID: 1, Assignment: "hw1", Score: 8, Lateness: 10 * time.Hour},
			{StudentID: 1, Assignment: "hw2", Score: 9},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	pipeline, err := NewStandardPipeline(crs, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := pipeline.Run(students)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(out[1]); got != 4 {
		t.Fatalf("got %d candidates, want 4", got)
	}
}

func TestPipelineSlipDaysPrecedeLateMultiplier(t *testing.T) {
	// hw1 is 10 hours late with a slip budget of 1: the best candidate
	// spends the slip day and escapes the multiplier entirely, which only
	// works when the multiplier stage sees slip-adjusted lateness.
	crs, err := course.New(
		[]course.Category{{Name: "Homework", Weight: 1, SlipDays: 1, HasLateMultiplier: true}},
		[]course.Assignment{{Name: "hw1", Category: "Homework", Possible: 10, Weight: 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	students, err := crs.BuildStudents(
		[]course.RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]course.GradeRecord{{StudentID: 1, Assignment: "hw1", Score: 8, Lateness: 10 * time.Hour}},
	)
	if err != nil {
		t.Fatal(err)
	}

	pipeline, err := NewStandardPipeline(crs, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := pipeline.Run(students)
	if err != nil {
		t.Fatal(err)
	}

	clean := false
	for _, cand := range out[1] {
		if len(cand.Grades["hw1"].Multipliers) == 0 {
			clean = true
		}
	}
	if !clean {
		t.Fatal("no candidate escaped the late multiplier by spending a slip day")
	}
}
