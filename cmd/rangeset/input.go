package main

import (
	"io"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"github.com/johnstarich/rangeset"
	"github.com/johnstarich/rangeset/internal/pipe"
	"github.com/johnstarich/rangeset/internal/session"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const stdinName = "-"

// inputText returns the raw ranges text for a command.
// Positional args take precedence, then the -file flag. With neither, reads stdin if 'readStdin' is set.
func (a *App) inputText(c *cli.Context, readStdin bool) (string, error) {
	if c.Args().Present() && c.Args().First() != stdinName {
		return strings.Join(c.Args().Slice(), ","), nil
	}
	file := c.String("file")
	switch {
	case file != "" && file != stdinName:
		return a.readFile(file)
	case file == stdinName || c.Args().First() == stdinName || readStdin:
		contents, err := io.ReadAll(a.deps.Stdin)
		return string(contents), errors.Wrap(err, "failed to read stdin")
	default:
		return "", nil
	}
}

func (a *App) readFile(osPath string) (string, error) {
	fsPath, err := a.fromOSPath(osPath)
	if err != nil {
		return "", err
	}
	return a.readFSFile(fsPath)
}

func (a *App) readFSFile(fsPath string) (string, error) {
	contents, err := hackpadfs.ReadFile(a.deps.FS, fsPath)
	return string(contents), errors.Wrapf(err, "failed to read %s", fsPath)
}

// loadSet reads a command's input and normalizes it
func (a *App) loadSet(c *cli.Context) (rangeset.RangeSet, error) {
	read := pipe.Stage[*cli.Context, string](func(c *cli.Context) (string, error) {
		return a.inputText(c, true)
	})
	return pipe.Then(read, session.Render).Do(c)
}
