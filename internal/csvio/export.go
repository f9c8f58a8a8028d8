package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/gradeflow/gradeflow/internal/report"
)

// WriteReports writes one row per student: SID, Name, Total, Percentile,
// Letter, then the adjusted value of every category and every assignment.
// Column order is sorted so diffs between runs are stable. Values are
// rounded to digits decimal places.
func WriteReports(w io.Writer, reports []report.GradeReport, digits int) error {
	if len(reports) == 0 {
		return nil
	}

	var catNames, asgNames []string
	for name := range reports[0].Categories {
		catNames = append(catNames, name)
	}
	for name := range reports[0].Assignments {
		asgNames = append(asgNames, name)
	}
	sort.Strings(catNames)
	sort.Strings(asgNames)

	header := []string{"SID", "Name", "Total Grade", "Percentile", "Letter"}
	header = append(header, catNames...)
	header = append(header, asgNames...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	sorted := append([]report.GradeReport(nil), reports...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StudentID < sorted[j].StudentID })

	for _, rep := range sorted {
		row := []string{
			strconv.Itoa(rep.StudentID),
			rep.Name,
			formatValue(rep.Total, digits),
			formatValue(rep.Percentile, digits),
			rep.Letter,
		}
		for _, name := range catNames {
			row = append(row, formatValue(rep.Categories[name].Adjusted, digits))
		}
		for _, name := range asgNames {
			row = append(row, formatValue(rep.Assignments[name].Adjusted, digits))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v float64, digits int) string {
	if digits < 0 {
		digits = -1 // strconv's "shortest" mode
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}
