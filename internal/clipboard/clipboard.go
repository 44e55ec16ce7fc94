// Package clipboard sends text to the host's clipboard.
//
// Writers are the adapters for each kind of clipboard. Dispatcher is the outbound port used by rangeset commands:
// copy requests are fire-and-forget, and failures are logged instead of returned.
package clipboard

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Writer places text on a clipboard
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc is a Writer and is interchangeable with the corresponding function type
type WriterFunc func(ctx context.Context, text string) error

// WriteText implements Writer
func (w WriterFunc) WriteText(ctx context.Context, text string) error {
	return w(ctx, text)
}

// Fallback is a Writer which tries each Writer in order until one succeeds
type Fallback []Writer

// WriteText implements Writer. If every Writer fails, returns all of their errors combined.
func (f Fallback) WriteText(ctx context.Context, text string) error {
	if len(f) == 0 {
		return errors.New("no clipboards configured")
	}
	var errs error
	for _, w := range f {
		err := w.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}
