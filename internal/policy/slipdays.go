package policy

import (
	"fmt"
	"sort"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

// SlipDayPolicy enumerates every way the student could spend each category's
// slip-day budget across that category's currently-late slip groups, and
// crosses the per-category enumerations. This is the dominant cost driver of
// the whole run: one category alone contributes C(budget+groups, groups)
// candidates, and categories multiply.
type SlipDayPolicy struct{}

func NewSlipDayPolicy() *SlipDayPolicy { return &SlipDayPolicy{} }

func (p *SlipDayPolicy) Name() string { return "slip days" }

// slipGroup is one deadline-extension unit: either a configured slip group or
// a singleton for an ungrouped assignment.
type slipGroup struct {
	key     string
	members []string // assignment names
}

// lateGroups returns the category's slip groups that contain at least one
// currently-late assignment, sorted by key for deterministic enumeration.
func lateGroups(c *course.Course, s *course.Student, category string) []slipGroup {
	byKey := make(map[string][]string)
	for _, a := range c.AssignmentsIn(category) {
		g := s.Grades[a.Name]
		if g == nil || g.Lateness <= 0 {
			continue
		}
		key := a.SlipGroup
		if key == course.SlipGroupNone {
			key = "assignment:" + a.Name
		} else {
			key = "group:" + key
		}
		byKey[key] = append(byKey[key], a.Name)
	}
	groups := make([]slipGroup, 0, len(byKey))
	for key, members := range byKey {
		sort.Strings(members)
		groups = append(groups, slipGroup{key: key, members: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	return groups
}

func (p *SlipDayPolicy) Apply(c *course.Course, s *course.Student) ([]*course.Student, error) {
	categories := c.CategoryNames()

	// Per category: the groups that could receive slip days and every legal
	// distribution of the budget across them. The zero vector is always
	// present so the cross product includes "spend nothing here".
	groupsByCat := make([][]slipGroup, len(categories))
	vectorsByCat := make([][][]int, len(categories))
	sizes := make([]int, len(categories))
	for i, name := range categories {
		groups := lateGroups(c, s, name)
		budget := s.Categories[name].SlipDays
		if len(groups) == 0 || budget == 0 {
			groupsByCat[i] = nil
			vectorsByCat[i] = [][]int{nil}
		} else {
			groupsByCat[i] = groups
			vectorsByCat[i] = boundedVectors(len(groups), budget)
		}
		sizes[i] = len(vectorsByCat[i])
	}

	out := []*course.Student{s} // the all-zero distribution is the original
	for _, joint := range crossIndex(sizes) {
		zero := true
		for i := range joint {
			if !allZero(vectorsByCat[i][joint[i]]) {
				zero = false
				break
			}
		}
		if zero {
			continue
		}
		cand := s.Clone()
		for i := range joint {
			vec := vectorsByCat[i][joint[i]]
			for gi, days := range vec {
				if days == 0 {
					continue
				}
				for _, name := range groupsByCat[i][gi].members {
					g := cand.Grades[name]
					g.Lateness -= time.Duration(days) * 24 * time.Hour
					if g.Lateness < 0 {
						g.Lateness = 0
					}
					g.Comments = append(g.Comments, fmt.Sprintf("%d slip days applied", days))
				}
			}
		}
		out = append(out, cand)
	}
	return out, nil
}
