package course

import "time"

// Boundary record types. The import layer (csvio, or any other source) hands
// these in; everything past this point works on Students and Categories.

type RosterRecord struct {
	StudentID int
	Name      string
}

type GradeRecord struct {
	StudentID  int
	Assignment string
	Score      float64
	Lateness   time.Duration
}

type ExtensionRecord struct {
	StudentID  int
	Assignment string
	ExtraDays  int
}

type AccommodationRecord struct {
	StudentID    int
	Category     string
	DropDelta    int
	SlipDayDelta int
}

// ClobberScope is "assignment" or "category". Category scope is declared in
// the input format but not implemented; applying one fails the run.
type ClobberScope string

const (
	ScopeAssignment ClobberScope = "assignment"
	ScopeCategory   ClobberScope = "category"
)

type ClobberRecord struct {
	Scope  ClobberScope
	Target string
	Source string
	Kind   ClobberKind
	Scale  float64
}

type CommentRecord struct {
	StudentID  int
	Assignment string
	Comment    string
}
