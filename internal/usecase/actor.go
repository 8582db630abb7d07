package usecase

import "context"

type actorKey struct{}

// WithActor returns a context carrying the id of the user performing the
// request. Audit entries record it.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the acting user id, or "system" when none is set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return "system"
}
