package policy

import (
	"fmt"

	"github.com/gradeflow/gradeflow/internal/course"
)

// AccommodationPolicy applies signed drop-count and slip-day-budget deltas to
// a student's copy of a category. Deterministic: always one candidate.
type AccommodationPolicy struct {
	byStudent map[int][]course.AccommodationRecord
}

func NewAccommodationPolicy(c *course.Course, records []course.AccommodationRecord) (*AccommodationPolicy, error) {
	byStudent := make(map[int][]course.AccommodationRecord)
	for _, r := range records {
		if _, ok := c.Categories[r.Category]; !ok {
			return nil, fmt.Errorf("accommodation for student %d references %w %q", r.StudentID, course.ErrUnknownCategory, r.Category)
		}
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}
	return &AccommodationPolicy{byStudent: byStudent}, nil
}

func (p *AccommodationPolicy) Name() string { return "accommodations" }

func (p *AccommodationPolicy) Apply(_ *course.Course, s *course.Student) ([]*course.Student, error) {
	for _, r := range p.byStudent[s.ID] {
		cat, ok := s.Categories[r.Category]
		if !ok {
			return nil, fmt.Errorf("%w %q", course.ErrUnknownCategory, r.Category)
		}
		cat.Drops += r.DropDelta
		cat.SlipDays += r.SlipDayDelta
		// Deltas may be negative, but the running budgets must not be.
		if cat.Drops < 0 {
			return nil, fmt.Errorf("student %d category %q: drop count went negative (%d)", s.ID, r.Category, cat.Drops)
		}
		if cat.SlipDays < 0 {
			return nil, fmt.Errorf("student %d category %q: slip-day budget went negative (%d)", s.ID, r.Category, cat.SlipDays)
		}
	}
	return []*course.Student{s}, nil
}
