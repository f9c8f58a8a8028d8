// Package policy implements the grading policies and the pipeline that
// expands each student into every legally distinct way the discretionary
// policies could be exercised.
package policy

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

var (
	// ErrNoCandidates signals a policy that produced an empty candidate set,
	// which is an internal logic defect rather than bad input.
	ErrNoCandidates = errors.New("policy produced no candidates")

	// ErrNotImplemented covers declared-but-unimplemented policy scopes
	// (category clobbers, zscore clobbers).
	ErrNotImplemented = errors.New("not implemented")
)

// Policy expands one candidate into one or more refined candidates.
// Implementations either mutate the candidate in place and return it alone
// (deterministic policies) or return the untouched candidate plus clones
// (branching policies). They never return an empty slice.
type Policy interface {
	Name() string
	Apply(c *course.Course, s *course.Student) ([]*course.Student, error)
}

// Pipeline applies an ordered list of policies, keeping a growing candidate
// list per student. The order matters: the late multiplier must see slip-day
// adjusted lateness, and drops must see multiplier-adjusted scores.
type Pipeline struct {
	course   *course.Course
	policies []Policy
	log      *slog.Logger
}

func NewPipeline(c *course.Course, log *slog.Logger, policies ...Policy) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{course: c, policies: policies, log: log}
}

// Config carries the tunables of the standard pipeline.
type Config struct {
	LateMultipliers []float64
	Grace           time.Duration

	Extensions     []course.ExtensionRecord
	Accommodations []course.AccommodationRecord
	Clobbers       []course.ClobberRecord
	Comments       []course.CommentRecord
}

// NewStandardPipeline wires the policies in their required order:
// accommodations, extensions, slip days, late multiplier, drops, clobbers,
// comments.
func NewStandardPipeline(c *course.Course, cfg Config, log *slog.Logger) (*Pipeline, error) {
	accommodations, err := NewAccommodationPolicy(c, cfg.Accommodations)
	if err != nil {
		return nil, err
	}
	extensions, err := NewExtensionPolicy(c, cfg.Extensions)
	if err != nil {
		return nil, err
	}
	clobbers, err := NewClobberPolicy(c, cfg.Clobbers)
	if err != nil {
		return nil, err
	}
	comments, err := NewCommentPolicy(c, cfg.Comments)
	if err != nil {
		return nil, err
	}
	return NewPipeline(c, log,
		accommodations,
		extensions,
		NewSlipDayPolicy(),
		NewLateMultiplierPolicy(cfg.LateMultipliers, cfg.Grace),
		NewDropPolicy(),
		clobbers,
		comments,
	), nil
}

// Run expands every student through every policy and returns the surviving
// candidate sets, keyed by student id. Students are mutually independent; the
// expansion never crosses student boundaries.
func (p *Pipeline) Run(students map[int]*course.Student) (map[int][]*course.Student, error) {
	out := make(map[int][]*course.Student, len(students))
	for id, s := range students {
		candidates := []*course.Student{s}
		for _, pol := range p.policies {
			var next []*course.Student
			for _, cand := range candidates {
				expanded, err := pol.Apply(p.course, cand)
				if err != nil {
					return nil, fmt.Errorf("policy %s, student %d: %w", pol.Name(), id, err)
				}
				if len(expanded) == 0 {
					return nil, fmt.Errorf("policy %s, student %d: %w", pol.Name(), id, ErrNoCandidates)
				}
				next = append(next, expanded...)
			}
			candidates = next
			p.log.Debug("policy applied", "policy", pol.Name(), "student", id, "candidates", len(candidates))
		}
		out[id] = candidates
	}
	return out, nil
}
