// Package report turns fully-resolved student candidates into audited grade
// reports and selects the candidate most favorable to each student.
package report

import (
	"github.com/gradeflow/gradeflow/internal/course"
)

type AssignmentEntry struct {
	Raw      float64  `json:"raw"`
	Adjusted float64  `json:"adjusted"`
	Weighted float64  `json:"weighted"`
	Comments []string `json:"comments,omitempty"`
}

type CategoryEntry struct {
	Raw      float64  `json:"raw"`
	Adjusted float64  `json:"adjusted"`
	Weighted float64  `json:"weighted"`
	Comments []string `json:"comments,omitempty"`
}

// GradeReport is the audited output for one student: totals per assignment,
// per category, and overall, with every policy action annotated in the
// relevant comment list.
type GradeReport struct {
	StudentID   int                        `json:"student_id"`
	Name        string                     `json:"name"`
	Total       float64                    `json:"total"`
	Percentile  float64                    `json:"percentile,omitempty"`
	Letter      string                     `json:"letter,omitempty"`
	Categories  map[string]CategoryEntry   `json:"categories"`
	Assignments map[string]AssignmentEntry `json:"assignments"`
}

// Aggregate computes the report for one candidate. Per category it runs two
// passes: the denominator pass sums the weights of non-dropped assignments,
// then the entry pass accumulates adjusted×weight into the numerator. An
// empty or fully-dropped category has raw 0 by convention, never a division
// fault.
func Aggregate(c *course.Course, s *course.Student) GradeReport {
	rep := GradeReport{
		StudentID:   s.ID,
		Name:        s.Name,
		Categories:  make(map[string]CategoryEntry, len(s.Categories)),
		Assignments: make(map[string]AssignmentEntry, len(s.Grades)),
	}

	for _, name := range c.CategoryNames() {
		cat := s.Categories[name]
		assignments := c.AssignmentsIn(name)

		denominator := 0.0
		for _, a := range assignments {
			if !s.Grades[a.Name].Dropped {
				denominator += a.Weight
			}
		}

		numerator := 0.0
		for _, a := range assignments {
			g := s.Grades[a.Name]
			entry := AssignmentEntry{
				Comments: append([]string(nil), g.Comments...),
			}
			if a.Possible > 0 {
				entry.Raw = g.Score / a.Possible
				entry.Adjusted = g.EffectiveScore() / a.Possible
			}
			if !g.Dropped {
				numerator += entry.Adjusted * a.Weight
				if denominator > 0 {
					entry.Weighted = entry.Adjusted / denominator * a.Weight * cat.Weight
				}
			}
			rep.Assignments[a.Name] = entry
		}

		catEntry := CategoryEntry{
			Comments: append([]string(nil), cat.Comments...),
		}
		if denominator > 0 {
			catEntry.Raw = numerator / denominator
		}
		catEntry.Adjusted = catEntry.Raw
		if cat.Override != nil {
			catEntry.Adjusted = *cat.Override
		}
		catEntry.Weighted = catEntry.Adjusted * cat.Weight
		rep.Categories[name] = catEntry
		rep.Total += catEntry.Weighted
	}
	return rep
}
