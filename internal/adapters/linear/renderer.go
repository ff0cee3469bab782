// Package linear provides a synchronous, line-buffered renderer for CI logs.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/zsb/internal/ui/output"
	"go.trai.ch/zsb/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological, prefixed lines.
// Target output goes to stdout, lifecycle lines go to stderr.
type Renderer struct {
	stdout     io.Writer
	stderr     io.Writer
	output     *termenv.Output
	streamLogs bool

	mu       sync.Mutex
	total    int
	finished int
	tasks    map[string]*taskState
}

type taskState struct {
	name      string
	startTime time.Time
	buffer    bytes.Buffer
}

// NewRenderer creates a Renderer. With streamLogs false, target output is dropped
// and only lifecycle lines are printed.
func NewRenderer(stdout, stderr io.Writer, streamLogs bool) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:     stdout,
		stderr:     stderr,
		output:     output.NewWithProfile(stderr, output.ColorProfileANSI),
		streamLogs: streamLogs,
		tasks:      make(map[string]*taskState),
	}
}

// Start is a no-op.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes every pending partial line.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// Wait is a no-op.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the number of planned targets.
func (r *Renderer) OnPlanEmit(targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = len(targets)
	_, _ = fmt.Fprintf(r.stderr, "Planning to build %d target(s)\n", len(targets))
}

// OnTaskStart prints a start line. Spans without a parent are the run itself and are not printed.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	if parentID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnTaskLog prints complete lines with the target prefix, holding back a trailing partial line.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	if !r.streamLogs {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	task.buffer.Write(data)
	for {
		idx := bytes.IndexByte(task.buffer.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := task.buffer.Next(idx + 1)
		r.printLineLocked(task.name, line)
	}
}

// OnTaskComplete flushes the target's output and prints its outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	r.flushLocked(task)
	r.finished++

	duration := endTime.Sub(task.startTime).Round(10 * time.Millisecond)
	prefix := fmt.Sprintf("[%s] (%d/%d)", task.name, r.finished, r.total)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(r.output.Color(string(style.Green))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
	}

	delete(r.tasks, spanID)
}

// flushLocked must be called with r.mu held.
func (r *Renderer) flushLocked(task *taskState) {
	if task.buffer.Len() > 0 {
		r.printLineLocked(task.name, task.buffer.Bytes())
		task.buffer.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
