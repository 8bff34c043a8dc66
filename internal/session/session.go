package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/store"
)

// ErrNoActiveDrill is returned when chat or answer checking is requested
// without a drill in progress.
var ErrNoActiveDrill = errors.New("session: no active drill")

// Recorder persists session records. *store.SessionRepo satisfies it.
type Recorder interface {
	Insert(ctx context.Context, rec *store.SessionRecord) error
	Update(ctx context.Context, rec *store.SessionRecord) error
	End(ctx context.Context, id string, at time.Time) error
}

// Service drives the tutoring session state machine. All state changes
// commit only after the completion round-trip and parse succeed, so a
// failed call leaves the session exactly as it was.
type Service struct {
	tutor    *drill.Tutor
	policy   ScorePolicy
	sessions *Manager

	// records may be nil; the service then keeps sessions in memory only.
	records Recorder
}

// NewService creates a session service. records may be nil.
func NewService(tutor *drill.Tutor, policy ScorePolicy, records Recorder) *Service {
	return &Service{
		tutor:    tutor,
		policy:   policy,
		sessions: NewManager(),
		records:  records,
	}
}

// DrillResult is the outcome of starting a new drill.
type DrillResult struct {
	Question string `json:"question"`
	Hint     string `json:"hint"`
	Stats    Stats  `json:"stats"`
}

// ChatResult is the outcome of a help exchange.
type ChatResult struct {
	Reply  string `json:"reply"`
	Solved bool   `json:"solved"`
	Stats  Stats  `json:"stats"`
}

// AnswerResult is the outcome of an answer submission.
type AnswerResult struct {
	Feedback string `json:"feedback"`
	Correct  bool   `json:"correct"`
	Stats    Stats  `json:"stats"`
}

// StartDrill generates a fresh drill for the user. Requesting a drill in
// the subject already being practiced keeps the session counters; a
// subject switch closes the previous session record and starts counters
// from zero. The session is only touched after generation succeeds.
func (s *Service) StartDrill(ctx context.Context, userID string, subject drill.Subject, lang i18n.Language) (*DrillResult, error) {
	d, err := s.tutor.GenerateDrill(ctx, subject, lang)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Get(userID)
	if sess == nil || sess.Subject != subject {
		if sess != nil {
			s.closeRecord(ctx, sess)
		}
		sess = &DrillSession{
			Subject:   subject,
			Language:  lang,
			StartedAt: time.Now(),
		}
		s.openRecord(ctx, userID, sess)
		s.sessions.Put(userID, sess)
	}

	sess.Language = lang
	sess.Current = d
	sess.History = nil
	sess.State = StateActive

	return &DrillResult{Question: d.Question, Hint: d.Hint, Stats: sess.Snapshot()}, nil
}

// Chat answers a help message about the active drill. Every help message
// counts as a hint. A tutor reply carrying the correctness marker solves
// the drill, counting as both an attempt and a solve so that solved never
// exceeds attempted.
func (s *Service) Chat(ctx context.Context, userID, message string) (*ChatResult, error) {
	sess := s.sessions.Get(userID)
	if sess == nil || sess.State != StateActive {
		return nil, ErrNoActiveDrill
	}

	v, err := s.tutor.Chat(ctx, sess.Subject, sess.Language, sess.Current, message, sess.History)
	if err != nil {
		return nil, err
	}

	sess.HintsUsed++
	sess.History = append(sess.History,
		drill.Turn{Speaker: drill.SpeakerUser, Text: message},
		drill.Turn{Speaker: drill.SpeakerAssistant, Text: v.Feedback},
	)

	reply := v.Feedback
	if v.Correct {
		sess.ProblemsAttempted++
		s.solve(sess)
		reply = fmt.Sprintf("%s\n\n%s", v.Feedback, i18n.T(sess.Language).Congrats)
	} else {
		sess.Score = s.policy.Score(sess.ProblemsAttempted, sess.ProblemsSolved, sess.HintsUsed)
	}
	s.persist(ctx, userID, sess)

	return &ChatResult{Reply: reply, Solved: v.Correct, Stats: sess.Snapshot()}, nil
}

// CheckAnswer submits an answer for the active drill. Every submission
// counts as an attempt; a correct one solves the drill and appends a
// localized congratulation to the feedback.
func (s *Service) CheckAnswer(ctx context.Context, userID, answer string) (*AnswerResult, error) {
	sess := s.sessions.Get(userID)
	if sess == nil || sess.State != StateActive {
		return nil, ErrNoActiveDrill
	}

	v, err := s.tutor.CheckAnswer(ctx, sess.Subject, sess.Language, sess.Current, answer, sess.History)
	if err != nil {
		return nil, err
	}

	sess.ProblemsAttempted++
	sess.History = append(sess.History,
		drill.Turn{Speaker: drill.SpeakerUser, Text: answer},
		drill.Turn{Speaker: drill.SpeakerAssistant, Text: v.Feedback},
	)

	feedback := v.Feedback
	if v.Correct {
		s.solve(sess)
		feedback = fmt.Sprintf("%s\n\n%s", v.Feedback, i18n.T(sess.Language).Congrats)
	} else {
		sess.Score = s.policy.Score(sess.ProblemsAttempted, sess.ProblemsSolved, sess.HintsUsed)
	}
	s.persist(ctx, userID, sess)

	return &AnswerResult{Feedback: feedback, Correct: v.Correct, Stats: sess.Snapshot()}, nil
}

// Stats returns the user's session snapshot. ok is false when the user
// has no live session.
func (s *Service) Stats(userID string) (Stats, bool) {
	sess := s.sessions.Get(userID)
	if sess == nil {
		return Stats{}, false
	}
	return sess.Snapshot(), true
}

// End closes the user's live session and its record, returning the final
// stats. ok is false when there was nothing to end.
func (s *Service) End(ctx context.Context, userID string) (Stats, bool) {
	sess := s.sessions.Remove(userID)
	if sess == nil {
		return Stats{}, false
	}
	s.persist(ctx, userID, sess)
	s.closeRecord(ctx, sess)
	return sess.Snapshot(), true
}

func (s *Service) solve(sess *DrillSession) {
	sess.State = StateSolved
	sess.ProblemsSolved++
	sess.Score = s.policy.Score(sess.ProblemsAttempted, sess.ProblemsSolved, sess.HintsUsed)
}

func (s *Service) openRecord(ctx context.Context, userID string, sess *DrillSession) {
	if s.records == nil {
		return
	}
	rec := &store.SessionRecord{
		UserID:    userID,
		Subject:   string(sess.Subject),
		StartTime: sess.StartedAt,
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: open session record: %v\n", err)
		return
	}
	sess.RecordID = rec.ID
}

func (s *Service) persist(ctx context.Context, userID string, sess *DrillSession) {
	if s.records == nil || sess.RecordID == "" {
		return
	}
	rec := &store.SessionRecord{
		ID:                sess.RecordID,
		UserID:            userID,
		Subject:           string(sess.Subject),
		StartTime:         sess.StartedAt,
		ProblemsAttempted: sess.ProblemsAttempted,
		ProblemsSolved:    sess.ProblemsSolved,
		HintsUsed:         sess.HintsUsed,
		Score:             sess.Score,
	}
	if err := s.records.Update(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: update session record: %v\n", err)
	}
}

func (s *Service) closeRecord(ctx context.Context, sess *DrillSession) {
	if s.records == nil || sess.RecordID == "" {
		return
	}
	if err := s.records.End(ctx, sess.RecordID, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close session record: %v\n", err)
	}
}
