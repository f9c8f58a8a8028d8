package policy

import (
	"fmt"

	"github.com/gradeflow/gradeflow/internal/course"
)

// CommentPolicy attaches configured per-student comments to grades, so they
// surface in the report. Deterministic: always one candidate.
type CommentPolicy struct {
	byStudent map[int][]course.CommentRecord
}

func NewCommentPolicy(c *course.Course, records []course.CommentRecord) (*CommentPolicy, error) {
	byStudent := make(map[int][]course.CommentRecord)
	for _, r := range records {
		if _, ok := c.Assignments[r.Assignment]; !ok {
			return nil, fmt.Errorf("comment for student %d references %w %q", r.StudentID, course.ErrUnknownAssignment, r.Assignment)
		}
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}
	return &CommentPolicy{byStudent: byStudent}, nil
}

func (p *CommentPolicy) Name() string { return "comments" }

func (p *CommentPolicy) Apply(_ *course.Course, s *course.Student) ([]*course.Student, error) {
	for _, r := range p.byStudent[s.ID] {
		g := s.Grades[r.Assignment]
		g.Comments = append(g.Comments, r.Comment)
	}
	return []*course.Student{s}, nil
}
