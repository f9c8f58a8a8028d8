package policy

import (
	"fmt"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

// ExtensionPolicy subtracts a fixed number of days from the lateness of one
// assignment, floored at zero. Deterministic: always one candidate.
type ExtensionPolicy struct {
	byStudent map[int][]course.ExtensionRecord
}

func NewExtensionPolicy(c *course.Course, records []course.ExtensionRecord) (*ExtensionPolicy, error) {
	byStudent := make(map[int][]course.ExtensionRecord)
	for _, r := range records {
		if _, ok := c.Assignments[r.Assignment]; !ok {
			return nil, fmt.Errorf("extension for student %d references %w %q", r.StudentID, course.ErrUnknownAssignment, r.Assignment)
		}
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}
	return &ExtensionPolicy{byStudent: byStudent}, nil
}

func (p *ExtensionPolicy) Name() string { return "extensions" }

func (p *ExtensionPolicy) Apply(_ *course.Course, s *course.Student) ([]*course.Student, error) {
	for _, r := range p.byStudent[s.ID] {
		g, ok := s.Grades[r.Assignment]
		if !ok {
			return nil, fmt.Errorf("%w %q", course.ErrUnknownAssignment, r.Assignment)
		}
		g.Lateness -= time.Duration(r.ExtraDays) * 24 * time.Hour
		if g.Lateness < 0 {
			g.Lateness = 0
		}
		g.Comments = append(g.Comments, fmt.Sprintf("%d day extension applied", r.ExtraDays))
	}
	return []*course.Student{s}, nil
}
