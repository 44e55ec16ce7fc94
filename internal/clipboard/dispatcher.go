package clipboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// DefaultTimeout is the longest a single clipboard write may take before it is canceled
const DefaultTimeout = 5 * time.Second

// DispatcherOptions contains options for a Dispatcher
type DispatcherOptions struct {
	// Logger receives failed writes. Defaults to a no-op logger.
	Logger *zap.Logger
	// Timeout limits each write. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Dispatcher sends copy requests to a Writer without blocking the caller
type Dispatcher struct {
	writer  Writer
	logger  *zap.Logger
	timeout time.Duration

	requested atomic.Int64
	failed    atomic.Int64
	pending   sync.WaitGroup
}

// NewDispatcher returns a Dispatcher writing to w
func NewDispatcher(w Writer, options DispatcherOptions) *Dispatcher {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	return &Dispatcher{
		writer:  w,
		logger:  options.Logger,
		timeout: options.Timeout,
	}
}

// Request starts copying text to the clipboard and returns immediately.
// The returned channel receives the write's result exactly once, and may be ignored.
// Failures are also logged, they are never fatal.
func (d *Dispatcher) Request(text string) <-chan error {
	d.requested.Inc()
	result := make(chan error, 1)
	d.pending.Add(1)
	go func() {
		defer d.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		err := d.writer.WriteText(ctx, text)
		if err != nil {
			d.failed.Inc()
			d.logger.Warn("Failed copying to clipboard", zap.Int("length", len(text)), zap.Error(err))
		} else {
			d.logger.Debug("Copied to clipboard", zap.Int("length", len(text)))
		}
		result <- err
	}()
	return result
}

// Wait blocks until every requested write has finished
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Requested returns the number of copies requested so far
func (d *Dispatcher) Requested() int64 {
	return d.requested.Load()
}

// Failed returns the number of requested copies which failed so far
func (d *Dispatcher) Failed() int64 {
	return d.failed.Load()
}
