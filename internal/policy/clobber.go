package policy

import (
	"fmt"
	"sort"

	"github.com/gradeflow/gradeflow/internal/course"
)

// ClobberPolicy enumerates, per clobber target, the choice of applying no
// clobber or any one of its configured clobbers, and crosses the choices
// over all targets. A chosen clobber replaces the target's effective score
// with a value derived from the source's:
//
//   - absolute: source effective score × scale, in raw points, with no
//     normalization against differing max scores.
//   - scaled: source effective score normalized by the source's possible
//     points, re-scaled to the target's, × scale.
//   - zscore: declared in the input format but not implemented.
//
// Category-scoped clobbers are likewise declared but unimplemented; applying
// either fails the run.
type ClobberPolicy struct {
	byTarget map[string][]course.ClobberRecord
	targets  []string // sorted, for deterministic enumeration
}

func NewClobberPolicy(c *course.Course, records []course.ClobberRecord) (*ClobberPolicy, error) {
	byTarget := make(map[string][]course.ClobberRecord)
	for _, r := range records {
		switch r.Scope {
		case course.ScopeAssignment:
			if _, ok := c.Assignments[r.Target]; !ok {
				return nil, fmt.Errorf("clobber target: %w %q", course.ErrUnknownAssignment, r.Target)
			}
		case course.ScopeCategory:
			if _, ok := c.Categories[r.Target]; !ok {
				return nil, fmt.Errorf("clobber target: %w %q", course.ErrUnknownCategory, r.Target)
			}
		default:
			return nil, fmt.Errorf("clobber target %q: unknown scope %q", r.Target, r.Scope)
		}
		if _, ok := c.Assignments[r.Source]; !ok {
			return nil, fmt.Errorf("clobber source: %w %q", course.ErrUnknownAssignment, r.Source)
		}
		switch r.Kind {
		case course.ClobberAbsolute, course.ClobberScaled, course.ClobberZScore:
		default:
			return nil, fmt.Errorf("clobber target %q: unknown kind %q", r.Target, r.Kind)
		}
		byTarget[r.Target] = append(byTarget[r.Target], r)
	}
	targets := make([]string, 0, len(byTarget))
	for t := range byTarget {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return &ClobberPolicy{byTarget: byTarget, targets: targets}, nil
}

func (p *ClobberPolicy) Name() string { return "clobbers" }

func (p *ClobberPolicy) Apply(c *course.Course, s *course.Student) ([]*course.Student, error) {
	if len(p.targets) == 0 {
		return []*course.Student{s}, nil
	}

	// Choice 0 is "no clobber"; choices 1..n are the configured clobbers.
	sizes := make([]int, len(p.targets))
	for i, t := range p.targets {
		sizes[i] = len(p.byTarget[t]) + 1
	}

	out := []*course.Student{s} // the all-"no clobber" choice is the original
	for _, joint := range crossIndex(sizes) {
		if allZero(joint) {
			continue
		}
		cand := s.Clone()
		for i, choice := range joint {
			if choice == 0 {
				continue
			}
			r := p.byTarget[p.targets[i]][choice-1]
			if err := applyClobber(c, cand, r); err != nil {
				return nil, err
			}
		}
		out = append(out, cand)
	}
	return out, nil
}

func applyClobber(c *course.Course, s *course.Student, r course.ClobberRecord) error {
	if r.Scope == course.ScopeCategory {
		return fmt.Errorf("category-scoped clobber of %q: %w", r.Target, ErrNotImplemented)
	}
	source := c.Assignments[r.Source]
	target := c.Assignments[r.Target]
	sourceEff := s.Grades[r.Source].EffectiveScore()

	var value float64
	switch r.Kind {
	case course.ClobberAbsolute:
		value = sourceEff * r.Scale
	case course.ClobberScaled:
		value = sourceEff / source.Possible * target.Possible * r.Scale
	case course.ClobberZScore:
		return fmt.Errorf("zscore clobber of %q: %w", r.Target, ErrNotImplemented)
	}

	g := s.Grades[r.Target]
	g.Override = &value
	g.Clobber = &course.Clobber{Kind: r.Kind, Source: r.Source, Scale: r.Scale}
	g.Comments = append(g.Comments, fmt.Sprintf("Clobbered by %s using %s at %v scale", r.Source, r.Kind, r.Scale))
	return nil
}
