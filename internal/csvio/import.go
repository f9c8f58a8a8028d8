// Package csvio reads the course configuration and gradebook exports from
// CSV and writes the final report CSV. Column layouts match the upstream
// registrar/gradescope exports.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
)

// table is a header-indexed view of one CSV file.
type table struct {
	header map[string]int
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv")
	}
	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return &table{header: header, rows: records[1:]}, nil
}

func (t *table) get(row []string, column string) (string, bool) {
	i, ok := t.header[column]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func (t *table) require(row []string, column string) (string, error) {
	v, ok := t.get(row, column)
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	return v, nil
}

// ReadRoster parses the registrar roster: Student ID, Name.
func ReadRoster(r io.Reader) ([]course.RosterRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	var out []course.RosterRecord
	for _, row := range t.rows {
		idStr, err := t.require(row, "Student ID")
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("roster: bad student id %q: %w", idStr, err)
		}
		name, _ := t.get(row, "Name")
		out = append(out, course.RosterRecord{StudentID: id, Name: name})
	}
	return out, nil
}

// ReadCategories parses: Name, Weight, Drops, Slip Days, Has Late Multiplier.
func ReadCategories(r io.Reader) ([]course.Category, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	var out []course.Category
	for _, row := range t.rows {
		name, err := t.require(row, "Name")
		if err != nil {
			return nil, fmt.Errorf("categories: %w", err)
		}
		weight, err := floatColumn(t, row, "Weight")
		if err != nil {
			return nil, fmt.Errorf("categories %q: %w", name, err)
		}
		drops, err := intColumn(t, row, "Drops")
		if err != nil {
			return nil, fmt.Errorf("categories %q: %w", name, err)
		}
		slipDays, err := intColumn(t, row, "Slip Days")
		if err != nil {
			return nil, fmt.Errorf("categories %q: %w", name, err)
		}
		hasLate, _ := t.get(row, "Has Late Multiplier")
		out = append(out, course.Category{
			Name:              name,
			Weight:            weight,
			Drops:             drops,
			SlipDays:          slipDays,
			HasLateMultiplier: truthy(hasLate),
		})
	}
	return out, nil
}

// ReadAssignments parses: Name, Category, Possible, Weight, Slip Group.
func ReadAssignments(r io.Reader) ([]course.Assignment, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("assignments: %w", err)
	}
	var out []course.Assignment
	for _, row := range t.rows {
		name, err := t.require(row, "Name")
		if err != nil {
			return nil, fmt.Errorf("assignments: %w", err)
		}
		category, err := t.require(row, "Category")
		if err != nil {
			return nil, fmt.Errorf("assignments %q: %w", name, err)
		}
		possible, err := floatColumn(t, row, "Possible")
		if err != nil {
			return nil, fmt.Errorf("assignments %q: %w", name, err)
		}
		weight, err := floatColumn(t, row, "Weight")
		if err != nil {
			return nil, fmt.Errorf("assignments %q: %w", name, err)
		}
		slipGroup, _ := t.get(row, "Slip Group")
		out = append(out, course.Assignment{
			Name:      name,
			Category:  category,
			Possible:  possible,
			Weight:    weight,
			SlipGroup: slipGroup,
		})
	}
	return out, nil
}

// ReadGrades parses the gradebook export: an SID column, one score column per
// assignment, and a "<assignment> - Lateness (H:M:S)" column alongside each.
// Rows with a non-numeric SID are header cruft and are skipped; empty score
// cells mean no submission; scores above an assignment's possible points are
// capped here, at import.
func ReadGrades(r io.Reader, assignments []course.Assignment) ([]course.GradeRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("grades: %w", err)
	}
	var out []course.GradeRecord
	for _, row := range t.rows {
		sidStr, ok := t.get(row, "SID")
		if !ok {
			return nil, fmt.Errorf("grades: missing column %q", "SID")
		}
		sid, err := strconv.Atoi(sidStr)
		if err != nil {
			continue
		}
		for _, a := range assignments {
			scoreStr, ok := t.get(row, a.Name)
			if !ok || scoreStr == "" {
				continue
			}
			score, err := strconv.ParseFloat(scoreStr, 64)
			if err != nil {
				return nil, fmt.Errorf("grades: student %d assignment %q: bad score %q", sid, a.Name, scoreStr)
			}
			if score > a.Possible {
				score = a.Possible
			}
			var lateness time.Duration
			if latenessStr, ok := t.get(row, a.Name+" - Lateness (H:M:S)"); ok && latenessStr != "" {
				lateness, err = parseLateness(latenessStr)
				if err != nil {
					return nil, fmt.Errorf("grades: student %d assignment %q: %w", sid, a.Name, err)
				}
			}
			out = append(out, course.GradeRecord{
				StudentID:  sid,
				Assignment: a.Name,
				Score:      score,
				Lateness:   lateness,
			})
		}
	}
	return out, nil
}

// ReadExtensions parses: SID, Assignment, Days.
func ReadExtensions(r io.Reader) ([]course.ExtensionRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("extensions: %w", err)
	}
	var out []course.ExtensionRecord
	for _, row := range t.rows {
		sid, err := intColumn(t, row, "SID")
		if err != nil {
			return nil, fmt.Errorf("extensions: %w", err)
		}
		assignment, err := t.require(row, "Assignment")
		if err != nil {
			return nil, fmt.Errorf("extensions: %w", err)
		}
		days, err := intColumn(t, row, "Days")
		if err != nil {
			return nil, fmt.Errorf("extensions: %w", err)
		}
		out = append(out, course.ExtensionRecord{StudentID: sid, Assignment: assignment, ExtraDays: days})
	}
	return out, nil
}

// ReadAccommodations parses: SID, Category, Drop Delta, Slip Day Delta.
func ReadAccommodations(r io.Reader) ([]course.AccommodationRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("accommodations: %w", err)
	}
	var out []course.AccommodationRecord
	for _, row := range t.rows {
		sid, err := intColumn(t, row, "SID")
		if err != nil {
			return nil, fmt.Errorf("accommodations: %w", err)
		}
		category, err := t.require(row, "Category")
		if err != nil {
			return nil, fmt.Errorf("accommodations: %w", err)
		}
		dropDelta, err := intColumn(t, row, "Drop Delta")
		if err != nil {
			return nil, fmt.Errorf("accommodations: %w", err)
		}
		slipDelta, err := intColumn(t, row, "Slip Day Delta")
		if err != nil {
			return nil, fmt.Errorf("accommodations: %w", err)
		}
		out = append(out, course.AccommodationRecord{
			StudentID:    sid,
			Category:     category,
			DropDelta:    dropDelta,
			SlipDayDelta: slipDelta,
		})
	}
	return out, nil
}

// ReadClobbers parses: Scope, Target, Source, Kind, Scale.
func ReadClobbers(r io.Reader) ([]course.ClobberRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("clobbers: %w", err)
	}
	var out []course.ClobberRecord
	for _, row := range t.rows {
		scope, err := t.require(row, "Scope")
		if err != nil {
			return nil, fmt.Errorf("clobbers: %w", err)
		}
		target, err := t.require(row, "Target")
		if err != nil {
			return nil, fmt.Errorf("clobbers: %w", err)
		}
		source, err := t.require(row, "Source")
		if err != nil {
			return nil, fmt.Errorf("clobbers: %w", err)
		}
		kind, err := t.require(row, "Kind")
		if err != nil {
			return nil, fmt.Errorf("clobbers: %w", err)
		}
		scale, err := floatColumn(t, row, "Scale")
		if err != nil {
			return nil, fmt.Errorf("clobbers: %w", err)
		}
		out = append(out, course.ClobberRecord{
			Scope:  course.ClobberScope(strings.ToLower(scope)),
			Target: target,
			Source: source,
			Kind:   course.ClobberKind(strings.ToLower(kind)),
			Scale:  scale,
		})
	}
	return out, nil
}

// ReadComments parses: SID, Assignment, Comment.
func ReadComments(r io.Reader) ([]course.CommentRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	var out []course.CommentRecord
	for _, row := range t.rows {
		sid, err := intColumn(t, row, "SID")
		if err != nil {
			return nil, fmt.Errorf("comments: %w", err)
		}
		assignment, err := t.require(row, "Assignment")
		if err != nil {
			return nil, fmt.Errorf("comments: %w", err)
		}
		comment, _ := t.get(row, "Comment")
		out = append(out, course.CommentRecord{StudentID: sid, Assignment: assignment, Comment: comment})
	}
	return out, nil
}

// parseLateness parses the gradebook's H:M:S lateness format. Hours may
// exceed 24.
func parseLateness(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("bad lateness %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, fmt.Errorf("bad lateness %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

func intColumn(t *table, row []string, column string) (int, error) {
	v, err := t.require(row, column)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("column %q: bad integer %q", column, v)
	}
	return n, nil
}

func floatColumn(t *table, row []string, column string) (float64, error) {
	v, err := t.require(row, column)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: bad number %q", column, v)
	}
	return f, nil
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
