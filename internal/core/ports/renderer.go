package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output of a parallel run.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once with the labels of every scheduled target.
	OnPlanEmit(targets []string)

	// OnTaskStart is called when a target build begins.
	// spanID: unique identifier for this build
	// parentID: spanID of the enclosing run span (empty if none)
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called with raw output of a target build, possibly partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a target build finishes; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
