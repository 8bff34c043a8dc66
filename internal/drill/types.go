// Package drill generates math practice problems and tutors learners
// through them over a text completion service.
//
// The wire format between prompts and parser is a first-class contract:
//
//   - Correctness marker: the exact substring "[CORRECT]" anywhere in a
//     response. Case-sensitive. The parser strips it from the feedback.
//   - Tagged drill fields: lines prefixed "QUESTION:", "ANSWER:", "HINT:".
//     Tag keywords are English and case-sensitive regardless of the
//     response language. Each tag starts a field; following non-empty,
//     non-tag lines accumulate into it until the next tag.
//   - Problem JSON: an object with required string keys "question" and
//     "answer", embedded anywhere in the response text.
//
// Prompt templates and the parser must change together.
package drill

import "errors"

// Subject is a math subject the tutor can drill.
type Subject string

const (
	SubjectAlgebra    Subject = "algebra"
	SubjectGeometry   Subject = "geometry"
	SubjectArithmetic Subject = "arithmetic"
	SubjectStatistics Subject = "statistics"
)

// ErrUnknownSubject is returned when a request names a subject outside the
// catalog. It is a validation failure: no completion call is made.
var ErrUnknownSubject = errors.New("unknown subject")

// ParseSubject validates a subject key.
func ParseSubject(key string) (Subject, error) {
	switch Subject(key) {
	case SubjectAlgebra, SubjectGeometry, SubjectArithmetic, SubjectStatistics:
		return Subject(key), nil
	default:
		return "", ErrUnknownSubject
	}
}

// Subjects returns the catalog in display order.
func Subjects() []Subject {
	return []Subject{SubjectAlgebra, SubjectGeometry, SubjectArithmetic, SubjectStatistics}
}

// Icon returns the subject's catalog emoji. Icons are language-independent.
func (s Subject) Icon() string {
	switch s {
	case SubjectAlgebra:
		return "📐"
	case SubjectGeometry:
		return "📏"
	case SubjectArithmetic:
		return "🔢"
	case SubjectStatistics:
		return "📊"
	default:
		return ""
	}
}

// Drill is a single generated problem with its expected answer and hint.
// Fields are immutable once generated; a new drill replaces the whole value.
type Drill struct {
	Question string
	Answer   string
	Hint     string
}

// Turn is one exchange entry in a drill's conversation history.
type Turn struct {
	Speaker string // SpeakerUser or SpeakerAssistant
	Text    string
}

const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"
)
