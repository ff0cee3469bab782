package telemetry_test

import (
	"bytes"
	"context"
	"sync"
	"time"
)

type recordingRenderer struct {
	mu        sync.Mutex
	plan      []string
	started   []string
	logs      bytes.Buffer
	completed map[string]error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{completed: make(map[string]error)}
}

func (r *recordingRenderer) Start(_ context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                   { return nil }
func (r *recordingRenderer) Wait() error                   { return nil }

func (r *recordingRenderer) OnPlanEmit(targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plan = targets
}

func (r *recordingRenderer) OnTaskStart(_, _, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, name)
}

func (r *recordingRenderer) OnTaskLog(_ string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs.Write(data)
}

func (r *recordingRenderer) OnTaskComplete(spanID string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed[spanID] = err
}

func (r *recordingRenderer) snapshot() (plan, started []string, logs string, completed map[string]error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]error, len(r.completed))
	for k, v := range r.completed {
		out[k] = v
	}
	return r.plan, r.started, r.logs.String(), out
}
