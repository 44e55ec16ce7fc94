package clipboard

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
)

// System writes to the operating system's clipboard, e.g. with pbcopy, xclip, or wl-copy
type System struct{}

// WriteText implements Writer
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return errors.New("system clipboard: no clipboard utilities available")
	}
	return errors.Wrap(clipboard.WriteAll(text), "system clipboard")
}
