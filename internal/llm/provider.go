package llm

import "context"

// Provider is the extraction-phase collaborator: given a prompt and
// optionally the source document, it returns one JSON artifact. The
// artifact package handles malformed responses; providers return the
// raw text.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract runs one extraction call
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest is the input for one extraction-phase call
type ExtractRequest struct {
	// Prompt is the full phase instruction text
	Prompt string

	// Document holds the raw PDF bytes for document-capable providers.
	// Nil for text-only phases (detection, validation).
	Document []byte

	// DocumentText is the extracted page text, used by providers that
	// cannot accept the document itself
	DocumentText string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature for the call (0 for deterministic extraction phases)
	Temperature float64
}

// ExtractResponse is a provider's raw response plus token accounting
type ExtractResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int

	// Temperature default
	Temperature float64
}

// DefaultConfig returns sensible defaults (provider disabled)
func DefaultConfig() Config {
	return Config{
		Provider:    "",
		Model:       "",
		Timeout:     120,
		MaxTokens:   16384,
		Temperature: 0,
	}
}
