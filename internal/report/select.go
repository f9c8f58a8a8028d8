package report

import (
	"errors"
	"sort"

	"github.com/gradeflow/gradeflow/internal/course"
)

// ErrNoCandidates mirrors the pipeline invariant: a student must always have
// at least one candidate to aggregate.
var ErrNoCandidates = errors.New("no candidates to select from")

// SelectBest aggregates every candidate and keeps the one with the maximum
// total grade. The first candidate seen wins ties, so the untouched original
// (always first in pipeline output) is preferred over equal-scoring branches.
func SelectBest(c *course.Course, candidates []*course.Student) (GradeReport, error) {
	if len(candidates) == 0 {
		return GradeReport{}, ErrNoCandidates
	}
	best := Aggregate(c, candidates[0])
	for _, cand := range candidates[1:] {
		if rep := Aggregate(c, cand); rep.Total > best.Total {
			best = rep
		}
	}
	return best, nil
}

// Rank fills in the course-wide percentile for every report: a fractional
// rank by descending total grade with no tie handling. The top student gets
// 1, the bottom 1/n.
func Rank(reports []GradeReport) {
	n := len(reports)
	if n == 0 {
		return
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return reports[order[i]].Total > reports[order[j]].Total
	})
	for pos, idx := range order {
		reports[idx].Percentile = float64(n-pos) / float64(n)
	}
}

// GradeBin maps a minimum (unrounded) total to a letter grade.
type GradeBin struct {
	Letter string  `yaml:"letter"`
	Min    float64 `yaml:"min"`
}

// ApplyLetters assigns each report the letter of the highest bin whose
// threshold its total meets. Bins may be listed in any order; no bins means
// no letters.
func ApplyLetters(reports []GradeReport, bins []GradeBin) {
	if len(bins) == 0 {
		return
	}
	sorted := append([]GradeBin(nil), bins...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })
	for i := range reports {
		for _, b := range sorted {
			if reports[i].Total >= b.Min {
				reports[i].Letter = b.Letter
				break
			}
		}
	}
}
