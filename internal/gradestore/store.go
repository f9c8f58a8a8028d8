// Package gradestore persists computed grade reports so the serve command
// can read them back without recomputing.
package gradestore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/gradeflow/gradeflow/internal/report"
)

var ErrNotFound = errors.New("report not found")

// Summary is the listing view of a stored report.
type Summary struct {
	StudentID  int     `json:"student_id"`
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
	Percentile float64 `json:"percentile"`
	Letter     string  `json:"letter,omitempty"`
}

type Store interface {
	SaveReports(ctx context.Context, reports []report.GradeReport) error
	ListReports(ctx context.Context) ([]Summary, error)
	GetReport(ctx context.Context, studentID int) (report.GradeReport, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	reports map[int]report.GradeReport
}

func NewInMemoryStore() Store {
	return &memoryStore{reports: map[int]report.GradeReport{}}
}

func (m *memoryStore) SaveReports(_ context.Context, reports []report.GradeReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range reports {
		m.reports[r.StudentID] = r
	}
	return nil
}

func (m *memoryStore) ListReports(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, Summary{
			StudentID:  r.StudentID,
			Name:       r.Name,
			Total:      r.Total,
			Percentile: r.Percentile,
			Letter:     r.Letter,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (m *memoryStore) GetReport(_ context.Context, studentID int) (report.GradeReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[studentID]
	if !ok {
		return report.GradeReport{}, ErrNotFound
	}
	return r, nil
}
