package drill

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathtutor/internal/i18n"
)

func TestBuildPrompt_RejectsUnknownSubject(t *testing.T) {
	_, err := BuildPrompt(KindDrillWithHint, Subject("astrology"), i18n.LangEnglish, PromptInput{})
	if !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
}

func TestSystemPrompt_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	sys := SystemPrompt(KindCheckAnswer, SubjectAlgebra, i18n.Language("de"))
	if !strings.Contains(sys, "Respond in English.") {
		t.Errorf("expected English directive, got: %s", sys)
	}
}

func TestSystemPrompt_HebrewDirectiveAndSubject(t *testing.T) {
	sys := SystemPrompt(KindChatHelp, SubjectGeometry, i18n.LangHebrew)
	if !strings.Contains(sys, "השב בעברית.") {
		t.Error("missing Hebrew directive")
	}
	if !strings.Contains(sys, "גאומטריה") {
		t.Error("subject name not translated")
	}
}

func TestSystemPrompt_TagContractStaysEnglish(t *testing.T) {
	sys := SystemPrompt(KindDrillWithHint, SubjectArithmetic, i18n.LangHebrew)
	for _, tag := range []string{"QUESTION:", "ANSWER:", "HINT:"} {
		if !strings.Contains(sys, tag) {
			t.Errorf("missing English tag %s in Hebrew template", tag)
		}
	}
}

func TestSystemPrompt_CheckAnswerNamesMarker(t *testing.T) {
	sys := SystemPrompt(KindCheckAnswer, SubjectAlgebra, i18n.LangEnglish)
	if !strings.Contains(sys, CorrectMarker) {
		t.Errorf("check-answer template must name the marker, got: %s", sys)
	}
}

func TestBuildPrompt_CheckAnswerInterpolation(t *testing.T) {
	msg, err := BuildPrompt(KindCheckAnswer, SubjectAlgebra, i18n.LangEnglish, PromptInput{
		Question:   "Solve for x: 2x + 5 = 13",
		UserAnswer: "4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "Problem: Solve for x: 2x + 5 = 13") {
		t.Error("missing problem")
	}
	if !strings.Contains(msg, "Student's answer: 4") {
		t.Error("missing answer")
	}
}

func TestBuildPrompt_ChatRendersHistory(t *testing.T) {
	msg, err := BuildPrompt(KindChatHelp, SubjectAlgebra, i18n.LangEnglish, PromptInput{
		Question:    "Solve for x: 2x + 5 = 13",
		UserMessage: "so x is 4?",
		History: []Turn{
			{Speaker: SpeakerUser, Text: "how do I start?"},
			{Speaker: SpeakerAssistant, Text: "Subtract 5 from both sides."},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "User: how do I start?") {
		t.Error("missing user turn")
	}
	if !strings.Contains(msg, "Assistant: Subtract 5 from both sides.") {
		t.Error("missing assistant turn")
	}
	if !strings.Contains(msg, "User: so x is 4?") {
		t.Error("missing current message")
	}
}

func TestBuildPrompt_ChatWithoutHistory(t *testing.T) {
	msg, err := BuildPrompt(KindChatHelp, SubjectAlgebra, i18n.LangEnglish, PromptInput{
		Question:    "q",
		UserMessage: "help",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(msg, "Conversation so far:") {
		t.Error("empty history should not render a conversation block")
	}
}

func TestParseSubject(t *testing.T) {
	for _, s := range Subjects() {
		if _, err := ParseSubject(string(s)); err != nil {
			t.Errorf("catalog subject %q rejected", s)
		}
	}
	if _, err := ParseSubject("chemistry"); err == nil {
		t.Error("expected rejection of unknown subject")
	}
}
