package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// voterIDKey is the context key for the resolved voter identity.
const voterIDKey contextKey = "voter_id"

// ContextWithVoter adds the resolved voter id to the context.
func ContextWithVoter(ctx context.Context, voterID string) context.Context {
	return context.WithValue(ctx, voterIDKey, voterID)
}

// VoterFromContext retrieves the resolved voter id from the context.
// Returns empty string if the request was not authenticated.
func VoterFromContext(ctx context.Context) string {
	id, _ := ctx.Value(voterIDKey).(string)
	return id
}
