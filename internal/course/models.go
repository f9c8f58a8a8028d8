package course

import "time"

// ClobberKind selects how a replacement score is computed from the source.
type ClobberKind string

const (
	ClobberAbsolute ClobberKind = "absolute"
	ClobberScaled   ClobberKind = "scaled"
	ClobberZScore   ClobberKind = "zscore"
)

// SlipGroupNone marks an assignment whose deadline is shared with nobody.
const SlipGroupNone = ""

// Category is one weighted bucket of assignments. Drops and SlipDays are
// per-student once accommodations have been applied, so every Student carries
// its own copy.
type Category struct {
	Name              string
	Weight            float64
	Drops             int
	SlipDays          int
	HasLateMultiplier bool
	Override          *float64
	Comments          []string
}

// Assignment is immutable after load.
type Assignment struct {
	Name      string
	Category  string
	Possible  float64
	Weight    float64 // weight within the category
	SlipGroup string  // SlipGroupNone when ungrouped
}

type Multiplier struct {
	Value       float64
	Description string
}

// Clobber records which substitution was applied to a grade, for auditing.
type Clobber struct {
	Kind   ClobberKind
	Source string
	Scale  float64
}

// Grade is one student's result on one assignment. Policies brand it dropped,
// append multipliers, or attach an override as the pipeline runs.
type Grade struct {
	Assignment  string
	Score       float64
	Lateness    time.Duration
	Dropped     bool
	Multipliers []Multiplier
	Override    *float64
	Clobber     *Clobber
	Comments    []string
}

// EffectiveScore is the override when present, otherwise the raw score times
// the product of all applied multipliers.
func (g *Grade) EffectiveScore() float64 {
	if g.Override != nil {
		return *g.Override
	}
	score := g.Score
	for _, m := range g.Multipliers {
		score *= m.Value
	}
	return score
}

// Student is one candidate: a complete hypothesis of how every discretionary
// policy was exercised. Branching policies clone a candidate and mutate only
// the clone, so earlier candidates stay valid.
type Student struct {
	ID         int
	Name       string
	Categories map[string]*Category
	Grades     map[string]*Grade
}

// Clone deep-copies the student so a policy can branch without touching the
// original.
func (s *Student) Clone() *Student {
	out := &Student{
		ID:         s.ID,
		Name:       s.Name,
		Categories: make(map[string]*Category, len(s.Categories)),
		Grades:     make(map[string]*Grade, len(s.Grades)),
	}
	for name, cat := range s.Categories {
		c := *cat
		c.Comments = append([]string(nil), cat.Comments...)
		if cat.Override != nil {
			v := *cat.Override
			c.Override = &v
		}
		out.Categories[name] = &c
	}
	for name, grade := range s.Grades {
		g := *grade
		g.Multipliers = append([]Multiplier(nil), grade.Multipliers...)
		g.Comments = append([]string(nil), grade.Comments...)
		if grade.Override != nil {
			v := *grade.Override
			g.Override = &v
		}
		if grade.Clobber != nil {
			cl := *grade.Clobber
			g.Clobber = &cl
		}
		out.Grades[name] = &g
	}
	return out
}
