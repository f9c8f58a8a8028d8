package policy

import (
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

// LateMultiplierDesc is the annotation attached to every late multiplier.
const LateMultiplierDesc = "Late multiplier"

// DefaultLateMultipliers is the tier table used when configuration does not
// override it: index 0 applies to one day late, index 1 to two, and so on.
var DefaultLateMultipliers = []float64{0.9, 0.8, 0.6}

// DefaultGrace is how far past a day boundary a submission may land before it
// counts as another day late.
const DefaultGrace = 5 * time.Minute

// LateMultiplierPolicy appends a tiered penalty multiplier to every grade
// that is still late after slip days. A slip group is only as on-time as its
// latest member, so the tier is computed once per group from the maximum
// member lateness. Deterministic: always one candidate.
type LateMultiplierPolicy struct {
	tiers []float64
	grace time.Duration
}

func NewLateMultiplierPolicy(tiers []float64, grace time.Duration) *LateMultiplierPolicy {
	if tiers == nil {
		tiers = DefaultLateMultipliers
	}
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &LateMultiplierPolicy{tiers: tiers, grace: grace}
}

func (p *LateMultiplierPolicy) Name() string { return "late multiplier" }

// daysLate converts a lateness duration to whole days, forgiving up to the
// grace window past each day boundary.
func (p *LateMultiplierPolicy) daysLate(lateness time.Duration) int {
	days := int(lateness / (24 * time.Hour))
	if lateness%(24*time.Hour) > p.grace {
		days++
	}
	return days
}

func (p *LateMultiplierPolicy) Apply(c *course.Course, s *course.Student) ([]*course.Student, error) {
	for _, name := range c.CategoryNames() {
		cat := s.Categories[name]

		// Group members share one deadline, so the whole group is penalized
		// by its latest member.
		byKey := make(map[string][]string)
		maxLate := make(map[string]time.Duration)
		for _, a := range c.AssignmentsIn(name) {
			key := a.SlipGroup
			if key == course.SlipGroupNone {
				key = "assignment:" + a.Name
			} else {
				key = "group:" + key
			}
			byKey[key] = append(byKey[key], a.Name)
			if late := s.Grades[a.Name].Lateness; late > maxLate[key] {
				maxLate[key] = late
			}
		}

		for key, members := range byKey {
			days := p.daysLate(maxLate[key])
			if days == 0 {
				continue
			}
			// Disabled categories have an empty tier table: any positive
			// days-late is an immediate zero.
			tiers := p.tiers
			if !cat.HasLateMultiplier {
				tiers = nil
			}
			mult := 0.0
			if days <= len(tiers) {
				mult = tiers[days-1]
			}
			for _, member := range members {
				g := s.Grades[member]
				g.Multipliers = append(g.Multipliers, course.Multiplier{Value: mult, Description: LateMultiplierDesc})
			}
		}
	}
	return []*course.Student{s}, nil
}
