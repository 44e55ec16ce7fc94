// Command rangeset normalizes integer ranges into their minimal canonical form.
//
// Ranges like "1-3, 2-5, 9" are merged and sorted, then printed, copied to the clipboard,
// re-rendered as an input file changes, or edited live in an interactive terminal UI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/fatih/color"
	osfs "github.com/hack-pad/hackpadfs/os"
)

//nolint:gochecknoglobals // These globals are required to handle pre-existing globals in other libraries. Access to them is tightly controlled and minimized.
var (
	osExiter            = os.Exit
	osErr     io.Writer = os.Stderr
	colorOnce sync.Once
)

func setColorOnce(shouldColor bool) {
	colorOnce.Do(func() {
		color.NoColor = !shouldColor
	})
}

func main() {
	if os.Getenv("CI") == "true" {
		setColorOnce(true)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := run(ctx, os.Args, Deps{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: osErr,
		FS:     osfs.NewFS(),
	})
	if err != nil {
		fmt.Fprintln(osErr, color.RedString(err.Error()))
		cancel()
		osExiter(1)
		return
	}
}
