package respbuilder

import "context"

// context keys use concrete type struct{} to avoid allocating when assigning to an interface{}.
type respCtxKey struct{}

var respTracerKey = respCtxKey{}

type Tracer struct {
	RemoteAddr string
	AppTraceID string
}

// Inject injects the Tracer object into context.
func Inject(ctx context.Context, stuff Tracer) context.Context {
	return context.WithValue(ctx, respTracerKey, stuff)
}

// Extract gets Tracer information from context.
func Extract(ctx context.Context) (Tracer, bool) {
	stuff, ok := ctx.Value(respTracerKey).(Tracer)
	if !ok {
		return Tracer{}, false
	}

	return stuff, ok
}

// MustExtract returns an empty Tracer instead of an error when none is injected.
func MustExtract(ctx context.Context) Tracer {
	stuff, _ := Extract(ctx)
	return stuff
}
