package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model's text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text completion.
	// Interpreting the text (JSON or prose) is the caller's job.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Question generation leaves it empty and
	// sends everything as a single user message.
	System string

	// Messages is the conversation history. Every request in mcqgen is
	// single-turn, so this holds one user message.
	Messages []Message

	// MaxTokens caps the response length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
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
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request carrying prompt as the user message.
func UserPrompt(prompt string, temperature float64, maxTokens int) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// Response holds the LLM's output.
type Response struct {
	// Text is the assistant text extracted from the provider envelope.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// named is implemented by providers that can report a provider label
// distinct from their model ID.
type named interface {
	Name() string
}

// ProviderName returns p's provider label, falling back to its model ID.
func ProviderName(p Provider) string {
	if n, ok := p.(named); ok {
		return n.Name()
	}
	return p.ModelID()
}
