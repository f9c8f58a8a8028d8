package policy

import (
	"errors"
	"testing"

	"github.com/gradeflow/gradeflow/internal/course"
)

func clobberCourse(t *testing.T) *course.Course {
	t.Helper()
	crs, err := course.New(
		[]course.Category{{Name: "Exams", Weight: 1}},
		[]course.Assignment{
			{Name: "midterm", Category: "Exams", Possible: 10, Weight: 1},
			{Name: "final", Category: "Exams", Possible: 20, Weight: 2},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return crs
}

func clobberStudent(t *testing.T, crs *course.Course) *course.Student {
	t.Helper()
	students, err := crs.BuildStudents(
		[]course.RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]course.GradeRecord{
			{StudentID: 1, Assignment: "midterm", Score: 4},
			{StudentID: 1, Assignment: "final", Score: 18},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return students[1]
}

func TestClobberAbsolute(t *testing.T) {
	crs := clobberCourse(t)
	p, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeAssignment, Target: "midterm", Source: "final", Kind: course.ClobberAbsolute, Scale: 1.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := clobberStudent(t, crs)
	out, err := p.Apply(crs, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d candidates, want original + clobbered", len(out))
	}
	if out[0] != s {
		t.Errorf("no-clobber candidate is not the original")
	}
	g := out[1].Grades["midterm"]
	// Absolute takes the source's effective score in raw points, even though
	// the source is out of 20 and the target out of 10.
	if g.EffectiveScore() != 18 {
		t.Errorf("absolute clobber: effective %v, want 18", g.EffectiveScore())
	}
	if g.Clobber == nil || g.Clobber.Source != "final" {
		t.Errorf("clobber descriptor not recorded: %+v", g.Clobber)
	}
	if len(g.Comments) == 0 {
		t.Errorf("clobber not annotated")
	}
}

func TestClobberScaled(t *testing.T) {
	crs := clobberCourse(t)
	p, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeAssignment, Target: "midterm", Source: "final", Kind: course.ClobberScaled, Scale: 1.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Apply(crs, clobberStudent(t, crs))
	if err != nil {
		t.Fatal(err)
	}
	// 18/20 normalized, re-scaled to 10 points: 9.
	if got := out[1].Grades["midterm"].EffectiveScore(); got != 9 {
		t.Errorf("scaled clobber: effective %v, want 9", got)
	}
}

func TestClobberZScoreFailsLoudly(t *testing.T) {
	crs := clobberCourse(t)
	p, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeAssignment, Target: "midterm", Source: "final", Kind: course.ClobberZScore, Scale: 1.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Apply(crs, clobberStudent(t, crs))
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("zscore clobber: err = %v, want ErrNotImplemented", err)
	}
}

func TestClobberCategoryScopeFailsLoudly(t *testing.T) {
	crs := clobberCourse(t)
	p, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeCategory, Target: "Exams", Source: "final", Kind: course.ClobberAbsolute, Scale: 1.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Apply(crs, clobberStudent(t, crs))
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("category clobber: err = %v, want ErrNotImplemented", err)
	}
}

func TestClobberUnknownNames(t *testing.T) {
	crs := clobberCourse(t)
	if _, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeAssignment, Target: "nope", Source: "final", Kind: course.ClobberAbsolute},
	}); !errors.Is(err, course.ErrUnknownAssignment) {
		t.Errorf("unknown target: err = %v", err)
	}
	if _, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeAssignment, Target: "midterm", Source: "nope", Kind: course.ClobberAbsolute},
	}); !errors.Is(err, course.ErrUnknownAssignment) {
		t.Errorf("unknown source: err = %v", err)
	}
}

func TestClobberCrossProduct(t *testing.T) {
	crs := clobberCourse(t)
	p, err := NewClobberPolicy(crs, []course.ClobberRecord{
		{Scope: course.ScopeAssignment, Target: "midterm", Source: "final", Kind: course.ClobberAbsolute, Scale: 1.0},
		{Scope: course.ScopeAssignment, Target: "midterm", Source: "final", Kind: course.ClobberScaled, Scale: 1.0},
		{Scope: course.ScopeAssignment, Target: "final", Source: "midterm", Kind: course.ClobberScaled, Scale: 1.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Apply(crs, clobberStudent(t, crs))
	if err != nil {
		t.Fatal(err)
	}
	// Choice sets: {none, abs, scaled} × {none, scaled} = 6, minus the
	// all-none duplicate, plus the original = 6.
	if len(out) != 6 {
		t.Fatalf("got %d candidates, want 6", len(out))
	}
}
