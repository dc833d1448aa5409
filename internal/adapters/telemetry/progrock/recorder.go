// Package progrock provides the Progrock implementation of the tracing
// adapter.
package progrock

import (
	"context"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/ronmichel/rockpile/internal/core/ports"
	"github.com/vito/progrock"
)

// Recorder implements ports.Tracer on top of a progrock recorder.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder whose updates are rendered through the given
// logger.
func New(log ports.Logger) ports.Tracer {
	return NewRecorder(newStatusLogger(log))
}

// NewRecorder creates a Recorder emitting updates to the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins recording a new vertex for the named unit of work.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Span{vertex: v}
}

// EmitPlan records the set of stages about to be processed.
func (r *Recorder) EmitPlan(_ context.Context, stageNames []string) {
	v := r.rec.Vertex(digest.FromString("plan"), "plan")
	_, _ = v.Stdout().Write([]byte(strings.Join(stageNames, "\n") + "\n"))
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
