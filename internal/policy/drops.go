package policy

import (
	"github.com/gradeflow/gradeflow/internal/course"
)

// DropComment is the annotation attached to dropped grades.
const DropComment = "Dropped"

// DropPolicy enumerates, per category with drop count D over n assignments,
// every C(n, D) choice of assignments to exclude, and crosses the
// per-category choices. A drop count of zero yields exactly one no-op choice,
// so the cross product always contains at least the unchanged candidate.
type DropPolicy struct{}

func NewDropPolicy() *DropPolicy { return &DropPolicy{} }

func (p *DropPolicy) Name() string { return "drops" }

func (p *DropPolicy) Apply(c *course.Course, s *course.Student) ([]*course.Student, error) {
	categories := c.CategoryNames()

	namesByCat := make([][]string, len(categories))
	combosByCat := make([][][]int, len(categories))
	sizes := make([]int, len(categories))
	for i, name := range categories {
		assignments := c.AssignmentsIn(name)
		names := make([]string, len(assignments))
		for j, a := range assignments {
			names[j] = a.Name
		}
		namesByCat[i] = names
		// combinations clamps a drop count above n to "drop everything".
		combosByCat[i] = combinations(len(names), s.Categories[name].Drops)
		sizes[i] = len(combosByCat[i])
	}

	var out []*course.Student
	for _, joint := range crossIndex(sizes) {
		empty := true
		for i := range joint {
			if len(combosByCat[i][joint[i]]) > 0 {
				empty = false
				break
			}
		}
		if empty {
			// Nothing to drop anywhere: the candidate passes through as-is.
			out = append(out, s)
			continue
		}
		cand := s.Clone()
		for i := range joint {
			for _, idx := range combosByCat[i][joint[i]] {
				g := cand.Grades[namesByCat[i][idx]]
				g.Dropped = true
				g.Comments = append(g.Comments, DropComment)
			}
		}
		out = append(out, cand)
	}
	return out, nil
}
