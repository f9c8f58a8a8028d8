package course

import (
	"errors"
	"testing"
	"time"
)

func TestNewRejectsUnknownCategory(t *testing.T) {
	_, err := New(
		[]Category{{Name: "Homework", Weight: 1}},
		[]Assignment{{Name: "q1", Category: "Quizzes", Possible: 10, Weight: 1}},
	)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestBuildStudentsDefaultsMissingGrades(t *testing.T) {
	crs, err := New(
		[]Category{{Name: "Homework", Weight: 1}},
		[]Assignment{
			{Name: "hw1", Category: "Homework", Possible: 10, Weight: 1},
			{Name: "hw2", Category: "Homework", Possible: 10, Weight: 1},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	students, err := crs.BuildStudents(
		[]RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]GradeRecord{{StudentID: 1, Assignment: "hw1", Score: 7, Lateness: time.Hour}},
	)
	if err != nil {
		t.Fatal(err)
	}
	s := students[1]
	if s.Grades["hw1"].Score != 7 || s.Grades["hw1"].Lateness != time.Hour {
		t.Errorf("hw1 = %+v", s.Grades["hw1"])
	}
	hw2 := s.Grades["hw2"]
	if hw2 == nil || hw2.Score != 0 || hw2.Lateness != 0 {
		t.Errorf("missing grade not defaulted: %+v", hw2)
	}
}

func TestBuildStudentsSkipsUnknownStudents(t *testing.T) {
	crs, err := New(
		[]Category{{Name: "Homework", Weight: 1}},
		[]Assignment{{Name: "hw1", Category: "Homework", Possible: 10, Weight: 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	students, err := crs.BuildStudents(
		[]RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]GradeRecord{{StudentID: 99, Assignment: "hw1", Score: 7}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 1 || students[1].Grades["hw1"].Score != 0 {
		t.Errorf("grade row for off-roster student not skipped")
	}
}

func TestCloneIsolatesCandidates(t *testing.T) {
	crs, err := New(
		[]Category{{Name: "Homework", Weight: 1, SlipDays: 2}},
		[]Assignment{{Name: "hw1", Category: "Homework", Possible: 10, Weight: 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	students, err := crs.BuildStudents(
		[]RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]GradeRecord{{StudentID: 1, Assignment: "hw1", Score: 7, Lateness: time.Hour}},
	)
	if err != nil {
		t.Fatal(err)
	}
	s := students[1]

	c := s.Clone()
	c.Categories["Homework"].SlipDays = 0
	c.Grades["hw1"].Dropped = true
	c.Grades["hw1"].Multipliers = append(c.Grades["hw1"].Multipliers, Multiplier{Value: 0.5})
	v := 3.0
	c.Grades["hw1"].Override = &v

	if s.Categories["Homework"].SlipDays != 2 {
		t.Errorf("clone mutated original category")
	}
	if s.Grades["hw1"].Dropped || len(s.Grades["hw1"].Multipliers) != 0 || s.Grades["hw1"].Override != nil {
		t.Errorf("clone mutated original grade: %+v", s.Grades["hw1"])
	}
}

func TestEffectiveScore(t *testing.T) {
	g := &Grade{Score: 8, Multipliers: []Multiplier{{Value: 0.9}, {Value: 0.5}}}
	if got := g.EffectiveScore(); got != 8*0.9*0.5 {
		t.Errorf("effective = %v", got)
	}
	v := 2.0
	g.Override = &v
	if got := g.EffectiveScore(); got != 2 {
		t.Errorf("override ignored: %v", got)
	}
}
