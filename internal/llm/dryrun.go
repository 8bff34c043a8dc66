package llm

import "context"

// CannedResponse is the fixed text the dry-run provider always returns.
const CannedResponse = "This is a canned response from the math tutor for testing purposes."

// DryRunProvider is a Provider that never performs network I/O. Every call
// returns CannedResponse. It exists so the full request path can be
// exercised deterministically in development and CI.
type DryRunProvider struct{}

// NewDryRunProvider creates a dry-run provider.
func NewDryRunProvider() *DryRunProvider {
	return &DryRunProvider{}
}

func (d *DryRunProvider) Complete(_ context.Context, _ Request) (*Response, error) {
	return &Response{
		Text:       CannedResponse,
		Model:      "dryrun",
		StopReason: "end",
	}, nil
}

// ModelID returns "dryrun".
func (d *DryRunProvider) ModelID() string {
	return "dryrun"
}
