// Package telemetry turns OpenTelemetry spans of a run into renderer events.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffer size (4KB) that forces a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the interval after which buffered output is flushed.
	DefaultTimeLimit = 50 * time.Millisecond
)

// ErrBatcherClosed is returned by Write after Close.
var ErrBatcherClosed = errors.New("batch processor is closed")

// BatchProcessor buffers toolchain output until a size or time limit is reached.
// It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatchProcessor returns a started BatchProcessor. Non-positive limits use the defaults.
// Call Close to stop the background ticker.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	bp := &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		buffer:    new(bytes.Buffer),
		stopCh:    make(chan struct{}),
		ticker:    time.NewTicker(timeLimit),
	}
	go bp.run()

	return bp
}

// Write appends p to the buffer, flushing when it grows past the size limit.
func (bp *BatchProcessor) Write(p []byte) (int, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, ErrBatcherClosed
	}

	n, err := bp.buffer.Write(p)
	if err != nil {
		return n, err
	}

	if bp.buffer.Len() >= bp.sizeLimit {
		bp.flushLocked()
		bp.ticker.Reset(bp.timeLimit)
	}
	return n, nil
}

// Flush hands any buffered data to the callback.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return
	}
	bp.flushLocked()
}

// Close stops the ticker and performs a final flush.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true
	close(bp.stopCh)
	bp.flushLocked()
	return nil
}

func (bp *BatchProcessor) run() {
	for {
		select {
		case <-bp.ticker.C:
			bp.Flush()
		case <-bp.stopCh:
			bp.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. The callback runs under the lock to keep order.
func (bp *BatchProcessor) flushLocked() {
	if bp.buffer.Len() == 0 {
		return
	}

	data := make([]byte, bp.buffer.Len())
	copy(data, bp.buffer.Bytes())
	bp.buffer.Reset()

	if bp.onFlush != nil {
		bp.onFlush(data)
	}
}
