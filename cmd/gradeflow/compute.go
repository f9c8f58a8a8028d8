package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/csvio"
	"github.com/gradeflow/gradeflow/internal/db"
	"github.com/gradeflow/gradeflow/internal/gradestore"
	"github.com/gradeflow/gradeflow/internal/policy"
	"github.com/gradeflow/gradeflow/internal/report"
)

type ComputeCmd struct {
	Roster      string `arg:"" help:"Roster CSV (Student ID, Name)." type:"existingfile"`
	Categories  string `arg:"" help:"Categories CSV." type:"existingfile"`
	Assignments string `arg:"" help:"Assignments CSV." type:"existingfile"`
	Grades      string `arg:"" help:"Gradebook export CSV." type:"existingfile"`

	Extensions     string `help:"Extensions CSV." type:"existingfile" optional:""`
	Accommodations string `help:"Accommodations CSV." type:"existingfile" optional:""`
	Clobbers       string `help:"Clobbers CSV." type:"existingfile" optional:""`
	Comments       string `help:"Comments CSV." type:"existingfile" optional:""`

	PolicyFile string `name:"policy" help:"YAML policy file (late multiplier tiers, grace, bins, rounding)." type:"existingfile" optional:""`
	Output     string `short:"o" help:"Report CSV path. Defaults to stdout."`
	Store      bool   `help:"Also persist reports to the report store (DB_DRIVER/DB_DSN)."`
}

func (cmd *ComputeCmd) Run(app *appContext) error {
	cfg := app.cfg
	if err := cfg.LoadPolicy(cmd.PolicyFile); err != nil {
		return err
	}

	roster, err := readWith(cmd.Roster, csvio.ReadRoster)
	if err != nil {
		return err
	}
	categories, err := readWith(cmd.Categories, csvio.ReadCategories)
	if err != nil {
		return err
	}
	assignments, err := readWith(cmd.Assignments, csvio.ReadAssignments)
	if err != nil {
		return err
	}
	grades, err := readWith(cmd.Grades, func(r io.Reader) ([]course.GradeRecord, error) {
		return csvio.ReadGrades(r, assignments)
	})
	if err != nil {
		return err
	}

	pcfg := policy.Config{
		LateMultipliers: cfg.Policy.LateMultipliers,
		Grace:           cfg.Policy.Grace(),
	}
	if cmd.Extensions != "" {
		if pcfg.Extensions, err = readWith(cmd.Extensions, csvio.ReadExtensions); err != nil {
			return err
		}
	}
	if cmd.Accommodations != "" {
		if pcfg.Accommodations, err = readWith(cmd.Accommodations, csvio.ReadAccommodations); err != nil {
			return err
		}
	}
	if cmd.Clobbers != "" {
		if pcfg.Clobbers, err = readWith(cmd.Clobbers, csvio.ReadClobbers); err != nil {
			return err
		}
	}
	if cmd.Comments != "" {
		if pcfg.Comments, err = readWith(cmd.Comments, csvio.ReadComments); err != nil {
			return err
		}
	}

	crs, err := course.New(categories, assignments)
	if err != nil {
		return err
	}
	students, err := crs.BuildStudents(roster, grades)
	if err != nil {
		return err
	}

	pipeline, err := policy.NewStandardPipeline(crs, pcfg, app.log)
	if err != nil {
		return err
	}

	started := time.Now()
	candidates, err := pipeline.Run(students)
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	reports := make([]report.GradeReport, 0, len(ids))
	for _, id := range ids {
		best, err := report.SelectBest(crs, candidates[id])
		if err != nil {
			return fmt.Errorf("student %d: %w", id, err)
		}
		reports = append(reports, best)
	}
	report.Rank(reports)
	report.ApplyLetters(reports, cfg.Policy.Bins)
	app.log.Info("grades computed", "students", len(reports), "elapsed", time.Since(started))

	out := io.Writer(os.Stdout)
	if cmd.Output != "" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := csvio.WriteReports(out, reports, cfg.Policy.RoundDigits); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	if cmd.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer dbh.Close()
		if err := gradestore.NewSQLStore(dbh, cfg.DBDriver).SaveReports(ctx, reports); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}
	}
	return nil
}

func readWith[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}
