package logging

import "context"

type cycleKey struct{}

// WithCycle returns a context carrying the load cycle ID used as the log field.
func WithCycle(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, cycleKey{}, cycleID)
}

// CycleFrom returns the cycle ID stored by WithCycle, or "".
func CycleFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(cycleKey{}).(string)
	return id
}
