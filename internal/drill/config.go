package drill

// CorrectnessMode selects how correctness is read out of responses.
type CorrectnessMode string

const (
	// ModeMarker uses the [CORRECT] marker convention (default).
	ModeMarker CorrectnessMode = "marker"

	// ModeKeyword uses the legacy per-language keyword heuristic.
	ModeKeyword CorrectnessMode = "keyword"
)

// Config holds tutor generation settings.
type Config struct {
	// MaxTokens caps each completion response.
	MaxTokens int

	// Temperature for problem generation. Checking and chat use 0.
	Temperature float64

	// Correctness selects the marker or keyword heuristic. The two are
	// never combined within a flow.
	Correctness CorrectnessMode
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
		Correctness: ModeMarker,
	}
}
