package llm

import "context"

// Provider is the core abstraction for the completion service.
// Consumers call Complete with a Request and receive the raw response text;
// extracting structure out of that text is the response parser's job, not
// the provider's.
type Provider interface {
	// Complete sends a prompt to the completion service and returns the
	// response text. Implementations must honor ctx cancellation.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the completion service.
type Request struct {
	// System is the system preamble. Sets the tutor's role and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// this contains one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the completion output.
type Response struct {
	// Text is the raw completion text, unparsed.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
