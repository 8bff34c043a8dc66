package drill

import (
	"context"
	"fmt"

	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/llm"
)

// Tutor orchestrates prompt building, completion calls, and response
// parsing. It always returns well-typed results or typed errors, never an
// unparsed blob.
type Tutor struct {
	provider llm.Provider
	cfg      Config
}

// NewTutor creates a Tutor backed by the given completion provider.
func NewTutor(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, cfg: cfg}
}

// GenerateDrill produces a new drill with a hint via the tagged-field
// protocol. Gateway failures and malformed responses (missing question or
// answer) are returned to the caller; a missing hint is defaulted.
func (t *Tutor) GenerateDrill(ctx context.Context, subject Subject, lang i18n.Language) (Drill, error) {
	ctx = llm.WithPurpose(ctx, "drill-gen")

	userMsg, err := BuildPrompt(KindDrillWithHint, subject, lang, PromptInput{})
	if err != nil {
		return Drill{}, err
	}

	resp, err := t.provider.Complete(ctx, llm.Request{
		System:      SystemPrompt(KindDrillWithHint, subject, lang),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return Drill{}, fmt.Errorf("drill generation failed: %w", err)
	}

	return ParseTagged(resp.Text, lang)
}

// GenerateProblem produces a question/answer pair via the JSON protocol.
// Parse failures are recovered with the language's fallback problem; only
// gateway failures surface as errors.
func (t *Tutor) GenerateProblem(ctx context.Context, subject Subject, lang i18n.Language) (Drill, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	userMsg, err := BuildPrompt(KindGenerateProblem, subject, lang, PromptInput{})
	if err != nil {
		return Drill{}, err
	}

	resp, err := t.provider.Complete(ctx, llm.Request{
		System:      SystemPrompt(KindGenerateProblem, subject, lang),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return Drill{}, fmt.Errorf("problem generation failed: %w", err)
	}

	return ExtractProblem(resp.Text, lang), nil
}

// CheckAnswer evaluates a submitted answer against the active drill.
func (t *Tutor) CheckAnswer(ctx context.Context, subject Subject, lang i18n.Language, d Drill, answer string, history []Turn) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, "answer-check")

	userMsg, err := BuildPrompt(KindCheckAnswer, subject, lang, PromptInput{
		Question:   d.Question,
		Answer:     d.Answer,
		UserAnswer: answer,
	})
	if err != nil {
		return Verdict{}, err
	}

	resp, err := t.provider.Complete(ctx, llm.Request{
		System:    SystemPrompt(KindCheckAnswer, subject, lang),
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		MaxTokens: t.cfg.MaxTokens,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("answer check failed: %w", err)
	}

	return t.verdict(resp.Text, lang), nil
}

// Chat answers a help message about the active drill, carrying the
// conversation history.
func (t *Tutor) Chat(ctx context.Context, subject Subject, lang i18n.Language, d Drill, message string, history []Turn) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, "chat-help")

	userMsg, err := BuildPrompt(KindChatHelp, subject, lang, PromptInput{
		Question:    d.Question,
		UserMessage: message,
		History:     history,
	})
	if err != nil {
		return Verdict{}, err
	}

	resp, err := t.provider.Complete(ctx, llm.Request{
		System:    SystemPrompt(KindChatHelp, subject, lang),
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		MaxTokens: t.cfg.MaxTokens,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("chat failed: %w", err)
	}

	return t.verdict(resp.Text, lang), nil
}

// verdict applies the configured correctness heuristic.
func (t *Tutor) verdict(text string, lang i18n.Language) Verdict {
	if t.cfg.Correctness == ModeKeyword {
		return Verdict{
			Correct:  KeywordCorrectness(text, lang),
			Feedback: text,
		}
	}
	return DetectMarker(text)
}
