package gradestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/gradeflow/gradeflow/internal/report"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) SaveReports(ctx context.Context, reports []report.GradeReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, r := range reports {
		buf, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO reports (student_id,name,total,percentile,letter,report_json,computed_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (student_id) DO UPDATE SET name=EXCLUDED.name, total=EXCLUDED.total,
			percentile=EXCLUDED.percentile, letter=EXCLUDED.letter,
			report_json=EXCLUDED.report_json, computed_at=EXCLUDED.computed_at`,
			r.StudentID, r.Name, r.Total, r.Percentile, r.Letter, string(buf), now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) ListReports(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT student_id,name,total,percentile,letter FROM reports ORDER BY student_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.StudentID, &sum.Name, &sum.Total, &sum.Percentile, &sum.Letter); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetReport(ctx context.Context, studentID int) (report.GradeReport, error) {
	row := s.db.QueryRowContext(ctx, `SELECT report_json FROM reports WHERE student_id=$1`, studentID)
	var buf string
	if err := row.Scan(&buf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report.GradeReport{}, ErrNotFound
		}
		return report.GradeReport{}, err
	}
	var r report.GradeReport
	if err := json.Unmarshal([]byte(buf), &r); err != nil {
		return report.GradeReport{}, err
	}
	return r, nil
}
