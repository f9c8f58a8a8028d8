package policy

import (
	"testing"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

func lateCourse(t *testing.T, hasLateMultiplier bool) *course.Course {
	t.Helper()
	crs, err := course.New(
		[]course.Category{{Name: "Homework", Weight: 1, HasLateMultiplier: hasLateMultiplier}},
		[]course.Assignment{{Name: "hw1", Category: "Homework", Possible: 10, Weight: 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return crs
}

func lateStudent(t *testing.T, crs *course.Course, lateness time.Duration) *course.Student {
	t.Helper()
	students, err := crs.BuildStudents(
		[]course.RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]course.GradeRecord{{StudentID: 1, Assignment: "hw1", Score: 5, Lateness: lateness}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return students[1]
}

func applyLate(t *testing.T, p *LateMultiplierPolicy, crs *course.Course, s *course.Student) *course.Grade {
	t.Helper()
	out, err := p.Apply(crs, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
	return out[0].Grades["hw1"]
}

func TestLateMultiplierTiers(t *testing.T) {
	crs := lateCourse(t, true)
	p := NewLateMultiplierPolicy(nil, 0)

	cases := []struct {
		lateness time.Duration
		want     float64
	}{
		{20 * time.Hour, 0.9},  // partial day rounds up to one
		{26 * time.Hour, 0.8},  // one day plus change rounds up to two
		{100 * time.Hour, 0.0}, // past the end of the tier table
	}
	for _, c := range cases {
		g := applyLate(t, p, crs, lateStudent(t, crs, c.lateness))
		if len(g.Multipliers) != 1 {
			t.Fatalf("lateness %v: got %d multipliers, want 1", c.lateness, len(g.Multipliers))
		}
		m := g.Multipliers[0]
		if m.Value != c.want {
			t.Errorf("lateness %v: multiplier %v, want %v", c.lateness, m.Value, c.want)
		}
		if m.Description != LateMultiplierDesc {
			t.Errorf("lateness %v: description %q", c.lateness, m.Description)
		}
	}
}

func TestLateMultiplierOnTime(t *testing.T) {
	crs := lateCourse(t, true)
	g := applyLate(t, NewLateMultiplierPolicy(nil, 0), crs, lateStudent(t, crs, 0))
	if len(g.Multipliers) != 0 {
		t.Errorf("on-time work got %d multipliers", len(g.Multipliers))
	}
}

func TestLateMultiplierGraceBoundary(t *testing.T) {
	crs := lateCourse(t, true)
	p := NewLateMultiplierPolicy(nil, 0) // default 5m grace

	// Exactly at the grace threshold: still one day late.
	g := applyLate(t, p, crs, lateStudent(t, crs, 24*time.Hour+5*time.Minute))
	if got := g.Multipliers[0].Value; got != 0.9 {
		t.Errorf("at grace: multiplier %v, want 0.9", got)
	}
	// One second past: two days late.
	g = applyLate(t, p, crs, lateStudent(t, crs, 24*time.Hour+5*time.Minute+time.Second))
	if got := g.Multipliers[0].Value; got != 0.8 {
		t.Errorf("past grace: multiplier %v, want 0.8", got)
	}
	// Within grace of the first day boundary: not late at all.
	g = applyLate(t, p, crs, lateStudent(t, crs, 4*time.Minute))
	if len(g.Multipliers) != 0 {
		t.Errorf("within grace of on-time: got %d multipliers", len(g.Multipliers))
	}
}

func TestLateMultiplierDisabledCategory(t *testing.T) {
	crs := lateCourse(t, false)
	g := applyLate(t, NewLateMultiplierPolicy(nil, 0), crs, lateStudent(t, crs, time.Hour))
	if len(g.Multipliers) != 1 || g.Multipliers[0].Value != 0.0 {
		t.Errorf("disabled category: got %+v, want single 0.0 multiplier", g.Multipliers)
	}
}

func TestLateMultiplierEmptyTierTable(t *testing.T) {
	crs := lateCourse(t, true)
	g := applyLate(t, NewLateMultiplierPolicy([]float64{}, 0), crs, lateStudent(t, crs, time.Hour))
	if len(g.Multipliers) != 1 || g.Multipliers[0].Value != 0.0 {
		t.Errorf("empty tier table: got %+v, want single 0.0 multiplier", g.Multipliers)
	}
}

func TestLateMultiplierGroupSharesTier(t *testing.T) {
	crs, err := course.New(
		[]course.Category{{Name: "Labs", Weight: 1, HasLateMultiplier: true}},
		[]course.Assignment{
			{Name: "lab1a", Category: "Labs", Possible: 10, Weight: 1, SlipGroup: "lab1"},
			{Name: "lab1b", Category: "Labs", Possible: 10, Weight: 1, SlipGroup: "lab1"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	students, err := crs.BuildStudents(
		[]course.RosterRecord{{StudentID: 1, Name: "Alice"}},
		[]course.GradeRecord{
			{StudentID: 1, Assignment: "lab1a", Score: 5, Lateness: 30 * time.Hour},
			{StudentID: 1, Assignment: "lab1b", Score: 5},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewLateMultiplierPolicy(nil, 0).Apply(crs, students[1])
	if err != nil {
		t.Fatal(err)
	}
	// The group is only as on-time as its latest member: both take the
	// two-day tier.
	for _, name := range []string{"lab1a", "lab1b"} {
		ms := out[0].Grades[name].Multipliers
		if len(ms) != 1 || ms[0].Value != 0.8 {
			t.Errorf("%s: got %+v, want single 0.8 multiplier", name, ms)
		}
	}
}
