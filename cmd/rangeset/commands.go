package main

import (
	"github.com/fatih/color"
	"github.com/johnstarich/rangeset/internal/clipboard"
	"github.com/johnstarich/rangeset/internal/pipe"
	"github.com/johnstarich/rangeset/internal/session"
	"github.com/johnstarich/rangeset/internal/tui"
	"github.com/johnstarich/rangeset/internal/watch"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	clipboardAuto   = "auto"
	clipboardSystem = "system"
	clipboardOSC52  = "osc52"
	clipboardFile   = "file"
)

func clipboardModes() []string {
	return []string{clipboardAuto, clipboardFile, clipboardOSC52, clipboardSystem}
}

func (a *App) normalize(c *cli.Context) error {
	printSet, err := lookupPrinter(c.String("format"))
	if err != nil {
		return err
	}
	set, err := a.loadSet(c)
	if err != nil {
		return err
	}
	a.logger.Debug("Normalized ranges", zap.Int("ranges", set.Len()))
	return printSet(a.deps.Stdout, set, c.Int("width"))
}

func (a *App) copy(c *cli.Context) error {
	writer, err := a.clipboardWriter(c)
	if err != nil {
		return err
	}
	text, err := a.inputText(c, true)
	if err != nil {
		return err
	}
	state := session.New(text)
	if state.Problem != nil {
		return state.Problem
	}
	request := state.Copy()

	dispatcher := clipboard.NewDispatcher(writer, clipboard.DispatcherOptions{Logger: a.logger})
	copyErr := <-dispatcher.Request(request.Text)
	dispatcher.Wait()
	if copyErr != nil {
		// a failed copy is not fatal, print the result so it can be copied by hand
		printf(a.deps.Stderr, "%s\n", color.YellowString("Failed to copy to clipboard: %v", copyErr))
		printf(a.deps.Stdout, "%s\n", request.Text)
		return nil
	}
	printf(a.deps.Stdout, "%s %q\n", color.GreenString("Copied"), request.Text)
	return nil
}

func (a *App) watch(c *cli.Context) error {
	file := c.String("file")
	if file == "" {
		return errors.New("-file is required to watch for changes")
	}
	printSet, err := lookupPrinter(c.String("format"))
	if err != nil {
		return err
	}
	fsPath, err := a.fromOSPath(file)
	if err != nil {
		return err
	}
	osPath, err := a.toOSPath(fsPath)
	if err != nil {
		return err
	}

	width := c.Int("width")
	var state session.State
	done, err := a.deps.WatchFile(c.Context, osPath, watch.Options{Logger: a.logger}, func() error {
		text, err := a.readFSFile(fsPath)
		if err != nil {
			return err
		}
		state = session.Update(state, text)
		if state.Stale() {
			printf(a.deps.Stderr, "%s\n", color.RedString("%v (showing last valid ranges)", state.Problem))
			return nil
		}
		return printSet(a.deps.Stdout, state.Result, width)
	})
	if err != nil {
		return err
	}
	<-done
	return nil
}

// rejectStdinInput fails if ranges would be read from stdin
func rejectStdinInput(c *cli.Context) error {
	return pipe.ErrIf(c.String("file") == stdinName || c.Args().First() == stdinName,
		errors.New("tui reads keys from stdin, ranges must come from args or a file"))
}

func (a *App) tui(c *cli.Context) error {
	if c.String("log-file") == "" {
		// the UI owns the terminal, so logs have nowhere to go
		a.logger = zap.NewNop()
	}
	writer, err := a.clipboardWriter(c)
	if err != nil {
		return err
	}
	readInput := pipe.Then(
		pipe.Check(rejectStdinInput),
		pipe.Stage[*cli.Context, string](func(c *cli.Context) (string, error) {
			return a.inputText(c, false)
		}),
	)
	text, err := readInput.Do(c)
	if err != nil {
		return err
	}

	dispatcher := clipboard.NewDispatcher(writer, clipboard.DispatcherOptions{Logger: a.logger})
	defer dispatcher.Wait()
	return a.deps.RunTUI(c.Context, tui.Config{
		Input:     text,
		Clipboard: dispatcher,
		Logger:    a.logger,
	}, a.deps.Stdin, a.deps.Stdout)
}

func (a *App) clipboardWriter(c *cli.Context) (clipboard.Writer, error) { //nolint:ireturn // Writer varies by flag
	if a.deps.Clipboard != nil {
		return a.deps.Clipboard, nil
	}
	switch mode := c.String("clipboard"); mode {
	case clipboardAuto:
		return clipboard.Fallback{
			clipboard.System{},
			clipboard.NewOSC52(a.deps.Stderr),
		}, nil
	case clipboardSystem:
		return clipboard.System{}, nil
	case clipboardOSC52:
		return clipboard.NewOSC52(a.deps.Stderr), nil
	case clipboardFile:
		osPath := c.String("clipboard-file")
		if osPath == "" {
			return nil, errors.New("-clipboard-file is required when -clipboard=file")
		}
		fsPath, err := a.fromOSPath(osPath)
		if err != nil {
			return nil, err
		}
		return clipboard.NewFile(a.deps.FS, fsPath), nil
	default:
		return nil, errors.Errorf("unknown clipboard %q", mode)
	}
}
