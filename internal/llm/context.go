package llm

import "context"

// Purpose labels recorded with every logged request.
const (
	PurposeQuestionGen = "question-gen"
	PurposeExplanation = "explanation"
)

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	sessionKey contextKey = "llm_session"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithSessionID tags requests made on behalf of one quiz attempt.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionIDFrom returns the attempt ID attached to ctx, or "".
func SessionIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey).(string)
	return v
}
