package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans around units of work, such as
// emitting one stage's dependency manifest.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan signals the set of stages about to be processed.
	EmitPlan(ctx context.Context, stageNames []string)
	// Close flushes and ends the recording session.
	Close() error
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records a failure for the span.
	RecordError(err error)
}
