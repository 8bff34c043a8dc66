package i18n

// Strings is the per-language message table.
type Strings struct {
	AppTitle string

	// FallbackQuestion/FallbackAnswer form the deterministic problem
	// substituted when model output cannot be parsed.
	FallbackQuestion string
	FallbackAnswer   string

	// GenericHint substitutes for a missing HINT: field.
	GenericHint string

	// Congrats is appended to feedback when a drill is solved.
	Congrats string

	// Canned user-facing failure messages, one per error category.
	ErrServiceUnavailable string
	ErrInvalidSubject     string
	ErrInvalidLanguage    string
	ErrMissingFields      string
	ErrNoActiveDrill      string
	ErrInternal           string
	ErrUnauthorized       string
}

var tables = map[Language]Strings{
	LangEnglish: {
		AppTitle:              "Math Learning Assistant",
		FallbackQuestion:      "What is 15 + 27?",
		FallbackAnswer:        "42",
		GenericHint:           "Break the problem into smaller steps and check each one.",
		Congrats:              "Great work! Ask for a new problem when you are ready.",
		ErrServiceUnavailable: "The tutor is unavailable right now. Please try again in a moment.",
		ErrInvalidSubject:     "That subject is not available.",
		ErrInvalidLanguage:    "That language is not supported.",
		ErrMissingFields:      "Some required fields are missing.",
		ErrNoActiveDrill:      "There is no active problem. Request a new one first.",
		ErrInternal:           "Something went wrong. Please try again.",
		ErrUnauthorized:       "Please sign in to continue.",
	},
	LangFrench: {
		AppTitle:              "Assistant d'Apprentissage des Mathématiques",
		FallbackQuestion:      "Combien font 15 + 27 ?",
		FallbackAnswer:        "42",
		GenericHint:           "Décomposez le problème en étapes plus petites et vérifiez chacune.",
		Congrats:              "Excellent travail ! Demandez un nouvel exercice quand vous êtes prêt.",
		ErrServiceUnavailable: "Le tuteur est indisponible pour le moment. Réessayez dans un instant.",
		ErrInvalidSubject:     "Ce sujet n'est pas disponible.",
		ErrInvalidLanguage:    "Cette langue n'est pas prise en charge.",
		ErrMissingFields:      "Certains champs obligatoires sont manquants.",
		ErrNoActiveDrill:      "Aucun exercice en cours. Demandez-en un nouveau d'abord.",
		ErrInternal:           "Une erreur s'est produite. Veuillez réessayer.",
		ErrUnauthorized:       "Veuillez vous connecter pour continuer.",
	},
	LangHebrew: {
		AppTitle:              "עוזר למידת מתמטיקה",
		FallbackQuestion:      "כמה זה 15 + 27?",
		FallbackAnswer:        "42",
		GenericHint:           "פרקו את הבעיה לשלבים קטנים ובדקו כל שלב.",
		Congrats:              "עבודה מצוינת! בקשו תרגיל חדש כשאתם מוכנים.",
		ErrServiceUnavailable: "המורה אינו זמין כרגע. נסו שוב בעוד רגע.",
		ErrInvalidSubject:     "הנושא הזה אינו זמין.",
		ErrInvalidLanguage:    "השפה הזו אינה נתמכת.",
		ErrMissingFields:      "חסרים שדות נדרשים.",
		ErrNoActiveDrill:      "אין תרגיל פעיל. בקשו תרגיל חדש קודם.",
		ErrInternal:           "משהו השתבש. נסו שוב.",
		ErrUnauthorized:       "יש להתחבר כדי להמשיך.",
	},
}

// T returns the message table for l, falling back to English.
func T(l Language) Strings {
	if s, ok := tables[l]; ok {
		return s
	}
	return tables[LangEnglish]
}

// SubjectInfo is the translated catalog entry for a math subject.
type SubjectInfo struct {
	Name        string
	Description string
}

var subjects = map[Language]map[string]SubjectInfo{
	LangEnglish: {
		"algebra":    {"Algebra", "Learn equations, functions, and mathematical patterns"},
		"geometry":   {"Geometry", "Explore shapes, angles, and spatial relationships"},
		"arithmetic": {"Arithmetic", "Master basic mathematical operations"},
		"statistics": {"Statistics", "Understand data analysis and probability"},
	},
	LangFrench: {
		"algebra":    {"Algèbre", "Apprenez les équations, les fonctions et les motifs mathématiques"},
		"geometry":   {"Géométrie", "Explorez les formes, les angles et les relations spatiales"},
		"arithmetic": {"Arithmétique", "Maîtrisez les opérations mathématiques de base"},
		"statistics": {"Statistiques", "Comprendre l'analyse des données et la probabilité"},
	},
	LangHebrew: {
		"algebra":    {"אלגברה", "למד משוואות, פונקציות ותבניות מתמטיות"},
		"geometry":   {"גאומטריה", "חקור צורות, זוויות ויחסים מרחביים"},
		"arithmetic": {"אריתמטיקה", "שלוט בפעולות מתמטיות בסיסיות"},
		"statistics": {"סטטיסטיקה", "הבן ניתוח נתונים והסתברות"},
	},
}

// Subject returns the translated catalog entry for the subject key.
// Unknown keys return the key itself as the name so callers always have
// something displayable.
func Subject(l Language, key string) SubjectInfo {
	table, ok := subjects[l]
	if !ok {
		table = subjects[LangEnglish]
	}
	if info, ok := table[key]; ok {
		return info
	}
	return SubjectInfo{Name: key}
}

// CorrectnessKeywords is the per-language word list for the legacy
// correctness heuristic. Matching is case-insensitive substring search.
var CorrectnessKeywords = map[Language][]string{
	LangEnglish: {"correct", "right", "well done", "great job"},
	LangFrench:  {"correct", "exactement", "bravo"},
	LangHebrew:  {"נכון", "מצוין", "כל הכבוד"},
}
