package drill

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathtutor/internal/i18n"
)

// PromptKind selects a template set.
type PromptKind string

const (
	KindGenerateProblem PromptKind = "generate_problem"
	KindDrillWithHint   PromptKind = "generate_drill_with_hint"
	KindCheckAnswer     PromptKind = "check_answer"
	KindChatHelp        PromptKind = "chat_help"
)

// PromptInput carries the session state a template may interpolate.
type PromptInput struct {
	// Question and Answer describe the active drill, when one exists.
	Question string
	Answer   string

	// UserMessage is the learner's chat message (chat_help).
	UserMessage string

	// UserAnswer is the learner's submitted answer (check_answer).
	UserAnswer string

	// History is the accumulated conversation for the active drill.
	History []Turn
}

// SystemPrompt renders the system preamble for the given kind, subject and
// language. Unknown languages fall back to English templates; the subject
// must already be validated.
func SystemPrompt(kind PromptKind, subject Subject, lang i18n.Language) string {
	lang = i18n.Parse(string(lang))
	name := i18n.Subject(lang, string(subject)).Name
	directive := lang.Directive()

	switch kind {
	case KindGenerateProblem:
		return fmt.Sprintf(`You are a math tutor creating practice problems for students learning %s.
%s
Return a single JSON object with exactly two string keys: "question" and "answer".
The question text must be in the requested language; the answer must be the bare numeric or symbolic result.
Do not include any other keys, commentary, or markdown fences.`, name, directive)

	case KindDrillWithHint:
		return fmt.Sprintf(`You are a math tutor creating practice problems for students learning %s.
%s
Return exactly three lines, each starting with one of these English tags:
QUESTION: <the problem, in the requested language>
ANSWER: <the bare correct answer>
HINT: <one helpful hint that does not give the answer away, in the requested language>
The tag keywords must stay in English even when the content is not.`, name, directive)

	case KindCheckAnswer:
		return fmt.Sprintf(`You are a math tutor helping students learn %s.
%s
Evaluate whether the student's answer is correct for the given problem.
If it is correct, begin your reply with the exact marker [CORRECT] and provide encouragement.
If it is incorrect, provide a helpful hint without giving away the answer, and do not use the marker.`, name, directive)

	case KindChatHelp:
		sys := fmt.Sprintf(`You are a friendly and encouraging math tutor specializing in %s.
%s
Provide clear, step-by-step explanations when helping with problems.
Keep responses concise but informative. Guide the student to the solution; never solve a step for them.
If the student's message states the correct final answer, begin your reply with the exact marker [CORRECT].`, name, directive)
		return sys

	default:
		return fmt.Sprintf("You are a helpful math tutor.\n%s", directive)
	}
}

// BuildPrompt renders the user message for the given kind. The subject is
// validated here so an unrecognized key is rejected before any completion
// call is attempted.
func BuildPrompt(kind PromptKind, subject Subject, lang i18n.Language, in PromptInput) (string, error) {
	if _, err := ParseSubject(string(subject)); err != nil {
		return "", err
	}
	lang = i18n.Parse(string(lang))
	name := i18n.Subject(lang, string(subject)).Name

	var b strings.Builder

	switch kind {
	case KindGenerateProblem, KindDrillWithHint:
		fmt.Fprintf(&b, "Subject: %s\n", name)
		fmt.Fprintf(&b, "Generate one new practice problem now.")

	case KindCheckAnswer:
		fmt.Fprintf(&b, "Problem: %s\n", in.Question)
		fmt.Fprintf(&b, "Student's answer: %s\n", in.UserAnswer)
		b.WriteString("Is this correct? Provide feedback:")

	case KindChatHelp:
		fmt.Fprintf(&b, "Current problem being discussed: %s\n", in.Question)
		if h := renderHistory(in.History); h != "" {
			b.WriteString("\nConversation so far:\n")
			b.WriteString(h)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nUser: %s", in.UserMessage)

	default:
		return "", fmt.Errorf("unknown prompt kind: %q", kind)
	}

	return b.String(), nil
}

// renderHistory formats the conversation as alternating "User:" and
// "Assistant:" lines.
func renderHistory(history []Turn) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		label := "User"
		if t.Speaker == SpeakerAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s", label, t.Text)
	}
	return b.String()
}
