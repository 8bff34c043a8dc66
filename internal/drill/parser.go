package drill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mathtutor/internal/i18n"
)

// CorrectMarker is the exact substring a response carries to signal a
// correct answer. Case-sensitive; see the package doc for the full contract.
const CorrectMarker = "[CORRECT]"

const (
	tagQuestion = "QUESTION:"
	tagAnswer   = "ANSWER:"
	tagHint     = "HINT:"
)

// ErrMalformedDrill indicates a tagged response was missing required fields.
// This is a hard parse failure: the caller gets no drill, not a partial one.
type ErrMalformedDrill struct {
	Missing []string
}

func (e *ErrMalformedDrill) Error() string {
	return fmt.Sprintf("malformed drill response: missing %s", strings.Join(e.Missing, ", "))
}

// Verdict is the parsed outcome of a correctness check.
type Verdict struct {
	Correct  bool
	Feedback string
}

// ParseTagged extracts a Drill from a QUESTION:/ANSWER:/HINT: tagged
// response. A missing question or answer is an *ErrMalformedDrill; a missing
// hint is substituted with the language's generic hint.
func ParseTagged(text string, lang i18n.Language) (Drill, error) {
	fields := map[string]*strings.Builder{
		tagQuestion: {},
		tagAnswer:   {},
		tagHint:     {},
	}

	var current *strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if tag, rest, ok := splitTag(trimmed); ok {
			current = fields[tag]
			appendField(current, rest)
			continue
		}

		// Continuation line: belongs to the most recent tag, if any.
		if current != nil {
			appendField(current, trimmed)
		}
	}

	d := Drill{
		Question: strings.TrimSpace(fields[tagQuestion].String()),
		Answer:   strings.TrimSpace(fields[tagAnswer].String()),
		Hint:     strings.TrimSpace(fields[tagHint].String()),
	}

	var missing []string
	if d.Question == "" {
		missing = append(missing, "question")
	}
	if d.Answer == "" {
		missing = append(missing, "answer")
	}
	if len(missing) > 0 {
		return Drill{}, &ErrMalformedDrill{Missing: missing}
	}

	if d.Hint == "" {
		d.Hint = i18n.T(lang).GenericHint
	}
	return d, nil
}

func splitTag(line string) (tag, rest string, ok bool) {
	for _, t := range []string{tagQuestion, tagAnswer, tagHint} {
		if strings.HasPrefix(line, t) {
			return t, strings.TrimSpace(strings.TrimPrefix(line, t)), true
		}
	}
	return "", "", false
}

func appendField(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(s)
}

// ExtractProblem pulls a {"question": ..., "answer": ...} object out of raw
// response text. It never fails: any extraction, decode, or schema error
// yields the deterministic fallback problem for the language.
func ExtractProblem(text string, lang i18n.Language) Drill {
	span, ok := jsonSpan(text)
	if !ok {
		return fallbackProblem(lang)
	}

	if err := validateProblem(span); err != nil {
		return fallbackProblem(lang)
	}

	var out struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return fallbackProblem(lang)
	}
	if strings.TrimSpace(out.Question) == "" || strings.TrimSpace(out.Answer) == "" {
		return fallbackProblem(lang)
	}

	return Drill{
		Question: strings.TrimSpace(out.Question),
		Answer:   strings.TrimSpace(out.Answer),
		Hint:     i18n.T(lang).GenericHint,
	}
}

// jsonSpan returns the first balanced {...} span in text. If braces never
// balance, it falls back to the greedy span ending at the last '}'.
func jsonSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	end := strings.LastIndexByte(text, '}')
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func fallbackProblem(lang i18n.Language) Drill {
	s := i18n.T(lang)
	return Drill{
		Question: s.FallbackQuestion,
		Answer:   s.FallbackAnswer,
		Hint:     s.GenericHint,
	}
}

// DetectMarker reports correctness from the marker convention. The marker
// substring is removed from the feedback and surrounding whitespace trimmed.
func DetectMarker(text string) Verdict {
	correct := strings.Contains(text, CorrectMarker)
	feedback := strings.TrimSpace(strings.ReplaceAll(text, CorrectMarker, ""))
	return Verdict{Correct: correct, Feedback: feedback}
}

// KeywordCorrectness is the legacy heuristic: case-insensitive search for a
// fixed per-language word list. It is only meaningful when the marker
// convention is disabled; the two heuristics are never combined in one flow.
func KeywordCorrectness(text string, lang i18n.Language) bool {
	lower := strings.ToLower(text)
	for _, kw := range i18n.CorrectnessKeywords[i18n.Parse(string(lang))] {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
