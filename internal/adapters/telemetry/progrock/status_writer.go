package progrock

import (
	"strings"
	"sync"

	"github.com/ronmichel/rockpile/internal/core/ports"
	"github.com/vito/progrock"
)

// statusLogger is the production sink for the recorder: it renders status
// updates as log lines, so vertex lifecycle events and vertex output reach
// the operator without an interactive renderer.
type statusLogger struct {
	log ports.Logger

	mu      sync.Mutex
	started map[string]struct{}
	done    map[string]struct{}
}

func newStatusLogger(log ports.Logger) *statusLogger {
	return &statusLogger{
		log:     log,
		started: make(map[string]struct{}),
		done:    make(map[string]struct{}),
	}
}

// WriteStatus implements progrock.Writer. Updates can repeat a vertex, so
// start and completion are each logged once per vertex id.
func (w *statusLogger) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if _, ok := w.started[v.Id]; !ok {
			w.started[v.Id] = struct{}{}
			w.log.Info("started " + v.Name)
		}
		if v.Completed == nil {
			continue
		}
		if _, ok := w.done[v.Id]; ok {
			continue
		}
		w.done[v.Id] = struct{}{}
		if v.Error != nil {
			w.log.Warn("failed " + v.Name + ": " + v.GetError())
		} else {
			w.log.Info("completed " + v.Name)
		}
	}

	for _, l := range update.Logs {
		for _, line := range strings.Split(strings.TrimRight(string(l.Data), "\n"), "\n") {
			if line != "" {
				w.log.Info(line)
			}
		}
	}
	return nil
}

// Close implements the optional closer Recorder.Close looks for.
func (w *statusLogger) Close() error {
	return nil
}
