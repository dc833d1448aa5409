package progrock

import (
	"github.com/vito/progrock"
)

// Span implements ports.Span wrapping a *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder
	done   bool
}

// Write forwards output to the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// End completes the vertex successfully unless an error was recorded first.
func (s *Span) End() {
	if s.done {
		return
	}
	s.done = true
	s.vertex.Done(nil)
}

// RecordError completes the vertex with an error.
func (s *Span) RecordError(err error) {
	if s.done {
		return
	}
	s.done = true
	s.vertex.Done(err)
}
