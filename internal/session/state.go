// Package session tracks each user's tutoring session: the active drill,
// the conversation around it, and the running performance counters.
package session

import (
	"time"

	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/i18n"
)

// State is the drill lifecycle state.
type State string

const (
	// StateNoDrill means no drill has been generated yet, or the previous
	// one was abandoned.
	StateNoDrill State = "no_drill"

	// StateActive means a drill is in progress.
	StateActive State = "active"

	// StateSolved means the current drill was answered correctly.
	StateSolved State = "solved"
)

// DrillSession is one user's live tutoring session. Counters accumulate
// across drills within the same subject; switching subjects resets them.
type DrillSession struct {
	Subject  drill.Subject
	Language i18n.Language

	Current drill.Drill
	History []drill.Turn
	State   State

	ProblemsAttempted int
	ProblemsSolved    int
	HintsUsed         int
	Score             int

	StartedAt time.Time

	// RecordID links the live session to its persisted record, empty when
	// the session is not being recorded.
	RecordID string
}

// Stats is a read-only snapshot of the session counters.
type Stats struct {
	Subject           drill.Subject `json:"subject"`
	ProblemsAttempted int           `json:"problems_attempted"`
	ProblemsSolved    int           `json:"problems_solved"`
	HintsUsed         int           `json:"hints_used"`
	Score             int           `json:"score"`
	State             State         `json:"state"`
}

// Snapshot returns the session's current stats.
func (s *DrillSession) Snapshot() Stats {
	return Stats{
		Subject:           s.Subject,
		ProblemsAttempted: s.ProblemsAttempted,
		ProblemsSolved:    s.ProblemsSolved,
		HintsUsed:         s.HintsUsed,
		Score:             s.Score,
		State:             s.State,
	}
}
