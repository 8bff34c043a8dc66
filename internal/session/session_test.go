package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/llm"
	"github.com/abhisek/mathtutor/internal/store"
)

const drillText = "QUESTION: Solve for x: 2x + 5 = 13\nANSWER: 4\nHINT: Isolate x"

func newTestService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	tutor := drill.NewTutor(mock, drill.DefaultConfig())
	return NewService(tutor, RatioPolicy{}, nil), mock
}

func TestLifecycle_StartSolveRestart(t *testing.T) {
	svc, _ := newTestService(
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Text: "[CORRECT] Great job!"},
		llm.MockResponse{Text: drillText},
	)
	ctx := context.Background()

	res, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if res.Question != "Solve for x: 2x + 5 = 13" {
		t.Errorf("question = %q", res.Question)
	}
	if res.Stats.State != StateActive {
		t.Errorf("state = %s", res.Stats.State)
	}

	ans, err := svc.CheckAnswer(ctx, "u1", "4")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !ans.Correct {
		t.Fatal("expected correct")
	}
	if ans.Stats.State != StateSolved {
		t.Errorf("state = %s", ans.Stats.State)
	}
	if ans.Stats.ProblemsAttempted != 1 || ans.Stats.ProblemsSolved != 1 {
		t.Errorf("counters = %+v", ans.Stats)
	}
	if !strings.Contains(ans.Feedback, "Great job!") {
		t.Errorf("feedback = %q", ans.Feedback)
	}
	if !strings.Contains(ans.Feedback, i18n.T(i18n.LangEnglish).Congrats) {
		t.Errorf("missing congratulation: %q", ans.Feedback)
	}

	// A solved drill accepts no further answers.
	if _, err := svc.CheckAnswer(ctx, "u1", "4"); !errors.Is(err, ErrNoActiveDrill) {
		t.Errorf("expected ErrNoActiveDrill after solve, got %v", err)
	}

	res, err = svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if res.Stats.State != StateActive {
		t.Errorf("state = %s", res.Stats.State)
	}
}

func TestNewDrillSameSubjectKeepsCounters(t *testing.T) {
	svc, _ := newTestService(
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Text: "[CORRECT] Yes."},
		llm.MockResponse{Text: drillText},
	)
	ctx := context.Background()

	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAnswer(ctx, "u1", "4"); err != nil {
		t.Fatal(err)
	}

	res, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.ProblemsAttempted != 1 || res.Stats.ProblemsSolved != 1 {
		t.Errorf("counters reset on same-subject drill: %+v", res.Stats)
	}
}

func TestSubjectSwitchResetsCounters(t *testing.T) {
	svc, _ := newTestService(
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Text: "[CORRECT] Yes."},
		llm.MockResponse{Text: drillText},
	)
	ctx := context.Background()

	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAnswer(ctx, "u1", "4"); err != nil {
		t.Fatal(err)
	}

	res, err := svc.StartDrill(ctx, "u1", drill.SubjectGeometry, i18n.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.ProblemsAttempted != 0 || res.Stats.ProblemsSolved != 0 {
		t.Errorf("counters survived subject switch: %+v", res.Stats)
	}
}

func TestChatCountsHintAndCanSolve(t *testing.T) {
	svc, mock := newTestService(
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Text: "Try subtracting 5 from both sides."},
		llm.MockResponse{Text: "[CORRECT] Exactly, x is 4."},
	)
	ctx := context.Background()

	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Chat(ctx, "u1", "how do I start?")
	if err != nil {
		t.Fatal(err)
	}
	if res.Solved {
		t.Error("hint reply should not solve")
	}
	if res.Stats.HintsUsed != 1 {
		t.Errorf("hints = %d", res.Stats.HintsUsed)
	}

	res, err = svc.Chat(ctx, "u1", "so the answer is 4")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Solved {
		t.Error("marker reply should solve")
	}
	// A chat solve counts as an attempt too.
	if res.Stats.HintsUsed != 2 || res.Stats.ProblemsSolved != 1 || res.Stats.ProblemsAttempted != 1 {
		t.Errorf("counters = %+v", res.Stats)
	}
	if res.Stats.ProblemsSolved > res.Stats.ProblemsAttempted {
		t.Errorf("solved %d exceeds attempted %d", res.Stats.ProblemsSolved, res.Stats.ProblemsAttempted)
	}
	if !strings.Contains(res.Reply, i18n.T(i18n.LangEnglish).Congrats) {
		t.Errorf("missing congratulation on chat solve: %q", res.Reply)
	}

	// The second chat call carries the first exchange as history.
	last := mock.Calls[len(mock.Calls)-1]
	if !strings.Contains(last.Messages[0].Content, "how do I start?") {
		t.Error("history not carried into followup chat")
	}
}

func TestGatewayFailureLeavesSessionUntouched(t *testing.T) {
	svc, _ := newTestService(
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Err: &llm.ErrUnavailable{}},
	)
	ctx := context.Background()

	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CheckAnswer(ctx, "u1", "4")
	if err == nil {
		t.Fatal("expected gateway error")
	}

	stats, ok := svc.Stats("u1")
	if !ok {
		t.Fatal("session lost")
	}
	if stats.ProblemsAttempted != 0 || len(svc.sessions.Get("u1").History) != 0 {
		t.Errorf("failed call mutated session: %+v", stats)
	}
}

func TestChatWithoutDrill(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Chat(context.Background(), "u1", "hi"); !errors.Is(err, ErrNoActiveDrill) {
		t.Errorf("expected ErrNoActiveDrill, got %v", err)
	}
}

func TestScoreMatchesPolicy(t *testing.T) {
	// Three solves, one miss, two hints: 3*100*(3/4)*(1-2/8) = 168.
	responses := []llm.MockResponse{}
	for i := 0; i < 3; i++ {
		responses = append(responses,
			llm.MockResponse{Text: drillText},
			llm.MockResponse{Text: "[CORRECT] Yes."},
		)
	}
	responses = append(responses,
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Text: "Not quite."},
		llm.MockResponse{Text: "Here is a hint."},
		llm.MockResponse{Text: "Another hint."},
	)
	svc, _ := newTestService(responses...)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.CheckAnswer(ctx, "u1", "4"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAnswer(ctx, "u1", "7"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Chat(ctx, "u1", "help"); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Chat(ctx, "u1", "more help")
	if err != nil {
		t.Fatal(err)
	}

	if res.Stats.Score != 168 {
		t.Errorf("score = %d, want 168", res.Stats.Score)
	}
}

type fakeRecorder struct {
	inserted []*store.SessionRecord
	updates  []store.SessionRecord
	ended    []string
}

func (f *fakeRecorder) Insert(ctx context.Context, rec *store.SessionRecord) error {
	rec.ID = "rec-" + rec.Subject
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeRecorder) Update(ctx context.Context, rec *store.SessionRecord) error {
	f.updates = append(f.updates, *rec)
	return nil
}

func (f *fakeRecorder) End(ctx context.Context, id string, at time.Time) error {
	f.ended = append(f.ended, id)
	return nil
}

func TestRecorderLifecycle(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: drillText},
		llm.MockResponse{Text: "[CORRECT] Yes."},
		llm.MockResponse{Text: drillText},
	)
	rec := &fakeRecorder{}
	svc := NewService(drill.NewTutor(mock, drill.DefaultConfig()), RatioPolicy{}, rec)
	ctx := context.Background()

	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectAlgebra, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAnswer(ctx, "u1", "4"); err != nil {
		t.Fatal(err)
	}
	if len(rec.inserted) != 1 || len(rec.updates) != 1 {
		t.Fatalf("inserted=%d updates=%d", len(rec.inserted), len(rec.updates))
	}
	if rec.updates[0].Score != 100 {
		t.Errorf("persisted score = %d", rec.updates[0].Score)
	}

	// Switching subjects closes the algebra record and opens a new one.
	if _, err := svc.StartDrill(ctx, "u1", drill.SubjectGeometry, i18n.LangEnglish); err != nil {
		t.Fatal(err)
	}
	if len(rec.ended) != 1 || rec.ended[0] != "rec-algebra" {
		t.Errorf("ended = %v", rec.ended)
	}
	if len(rec.inserted) != 2 {
		t.Errorf("inserted = %d", len(rec.inserted))
	}

	// Ending the session closes the geometry record.
	if _, ok := svc.End(ctx, "u1"); !ok {
		t.Fatal("nothing to end")
	}
	if len(rec.ended) != 2 {
		t.Errorf("ended = %v", rec.ended)
	}
	if _, ok := svc.Stats("u1"); ok {
		t.Error("session should be gone after End")
	}
}
