// Package i18n holds the language-conditioned string tables for the tutor.
// All user-visible text (subject catalog entries, fallback problems, canned
// failure messages) is resolved here so the core packages never emit raw
// English by accident.
package i18n

// Language selects a template and message set.
type Language string

const (
	LangEnglish Language = "en"
	LangFrench  Language = "fr"
	LangHebrew  Language = "he"
)

// Parse normalizes a language code. Unknown or empty codes fall back to
// English rather than failing, so a bad Accept-Language never breaks a flow.
func Parse(code string) Language {
	switch Language(code) {
	case LangEnglish, LangFrench, LangHebrew:
		return Language(code)
	default:
		return LangEnglish
	}
}

// Known reports whether code is a supported language without applying the
// English fallback. Used when the caller must reject rather than coerce.
func Known(code string) bool {
	switch Language(code) {
	case LangEnglish, LangFrench, LangHebrew:
		return true
	}
	return false
}

// RTL reports whether the language renders right-to-left.
func (l Language) RTL() bool {
	return l == LangHebrew
}

// Directive is the instruction appended to prompts so the model answers in
// the learner's language.
func (l Language) Directive() string {
	switch l {
	case LangFrench:
		return "Répondez en français."
	case LangHebrew:
		return "השב בעברית."
	default:
		return "Respond in English."
	}
}
