// Package logtest provides zap loggers for tests
package logtest

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// New returns a logger writing to t's log.
// Once t completes, the logger discards everything, so stray goroutines can't log to a finished test.
func New(t testing.TB) *zap.Logger {
	t.Helper()
	return zap.New(newCore(t))
}

// NewObserved returns a logger writing to t's log which also records entries at or above level for assertions
func NewObserved(t testing.TB, level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	observedCore, logs := observer.New(level)
	return zap.New(newCore(t, observedCore)), logs
}

// testLifetime tracks whether the test owning a logger has finished
type testLifetime struct {
	mu       sync.RWMutex
	finished bool
}

func (l *testLifetime) finish() {
	l.mu.Lock()
	l.finished = true
	l.mu.Unlock()
}

// testCore sends entries to t's log plus any extra cores, until the test finishes
type testCore struct {
	zapcore.Core
	lifetime *testLifetime
}

func newCore(t testing.TB, extra ...zapcore.Core) *testCore {
	cores := append([]zapcore.Core{zaptest.NewLogger(t).Core()}, extra...)
	lifetime := &testLifetime{}
	t.Cleanup(lifetime.finish)
	return &testCore{
		Core:     zapcore.NewTee(cores...),
		lifetime: lifetime,
	}
}

func (c *testCore) With(fields []zapcore.Field) zapcore.Core { //nolint:ireturn // Implements zapcore.Core
	return &testCore{
		Core:     c.Core.With(fields),
		lifetime: c.lifetime,
	}
}

func (c *testCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *testCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.lifetime.mu.RLock()
	defer c.lifetime.mu.RUnlock()
	if c.lifetime.finished {
		return nil
	}
	return c.Core.Write(entry, fields)
}
