package clipboard

import (
	"context"
	"io"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// OSC52 writes to the clipboard of the terminal connected to an output, using the OSC 52 escape sequence.
// Works over SSH and inside tmux, as long as the terminal supports it.
type OSC52 struct {
	out io.Writer
}

// NewOSC52 returns an OSC52 clipboard writing escape sequences to out, typically a TTY
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out}
}

// WriteText implements Writer
func (o *OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := &errWriter{Writer: o.out}
	termenv.NewOutput(w).Copy(text)
	return errors.Wrap(w.err, "osc52 clipboard")
}

// errWriter records the first write error, since termenv discards them
type errWriter struct {
	io.Writer
	err error
}

func (w *errWriter) Write(b []byte) (int, error) {
	n, err := w.Writer.Write(b)
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}
