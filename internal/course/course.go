package course

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownAssignment = errors.New("unknown assignment")
)

// Course is the immutable configuration shared by every candidate: the
// category and assignment definitions as loaded. Per-student copies of the
// categories live on the Student, since accommodations adjust them.
type Course struct {
	Categories  map[string]*Category
	Assignments map[string]*Assignment
}

// New validates the configuration and builds the course. An assignment
// referencing a category that does not exist is a fatal configuration error.
func New(categories []Category, assignments []Assignment) (*Course, error) {
	c := &Course{
		Categories:  make(map[string]*Category, len(categories)),
		Assignments: make(map[string]*Assignment, len(assignments)),
	}
	for i := range categories {
		cat := categories[i]
		if cat.Weight < 0 {
			return nil, fmt.Errorf("category %q: negative weight %v", cat.Name, cat.Weight)
		}
		c.Categories[cat.Name] = &cat
	}
	for i := range assignments {
		a := assignments[i]
		if _, ok := c.Categories[a.Category]; !ok {
			return nil, fmt.Errorf("assignment %q references %w %q", a.Name, ErrUnknownCategory, a.Category)
		}
		if a.Weight < 0 {
			return nil, fmt.Errorf("assignment %q: negative weight %v", a.Name, a.Weight)
		}
		c.Assignments[a.Name] = &a
	}
	return c, nil
}

// CategoryNames returns category names in sorted order, for deterministic
// enumeration.
func (c *Course) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AssignmentsIn returns the assignments of one category, sorted by name.
func (c *Course) AssignmentsIn(category string) []*Assignment {
	var out []*Assignment
	for _, a := range c.Assignments {
		if a.Category == category {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BuildStudents turns the roster and grade records into one Student snapshot
// per student. Every assignment gets a Grade: missing records default to a
// zero score with zero lateness. Grade records for students absent from the
// roster are skipped. Score capping happens in the import layer, before the
// records reach this point.
func (c *Course) BuildStudents(roster []RosterRecord, grades []GradeRecord) (map[int]*Student, error) {
	students := make(map[int]*Student, len(roster))
	for _, r := range roster {
		s := &Student{
			ID:         r.StudentID,
			Name:       r.Name,
			Categories: make(map[string]*Category, len(c.Categories)),
			Grades:     make(map[string]*Grade, len(c.Assignments)),
		}
		for name, cat := range c.Categories {
			cp := *cat
			cp.Comments = append([]string(nil), cat.Comments...)
			s.Categories[name] = &cp
		}
		for name := range c.Assignments {
			s.Grades[name] = &Grade{Assignment: name}
		}
		students[r.StudentID] = s
	}
	for _, g := range grades {
		s, ok := students[g.StudentID]
		if !ok {
			continue
		}
		if _, ok := c.Assignments[g.Assignment]; !ok {
			return nil, fmt.Errorf("grade record for student %d references %w %q", g.StudentID, ErrUnknownAssignment, g.Assignment)
		}
		s.Grades[g.Assignment] = &Grade{Assignment: g.Assignment, Score: g.Score, Lateness: g.Lateness}
	}
	return students, nil
}
