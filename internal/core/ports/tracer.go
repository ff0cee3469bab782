package ports

import "context"

// Tracer starts spans around the units of work of a run.
//
//go:generate go run go.uber.org/mock/mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start opens a span named name as a child of the span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)

	// EmitPlan announces the labels of every target about to run.
	EmitPlan(ctx context.Context, names []string)
}

// Span is one traced unit of work. Output written to it is streamed to the renderer.
type Span interface {
	Write(p []byte) (int, error)
	// End completes the span. It must be called exactly once.
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
