package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"github.com/johnstarich/rangeset/internal/clipboard"
	"github.com/johnstarich/rangeset/internal/logging"
	"github.com/johnstarich/rangeset/internal/tui"
	"github.com/johnstarich/rangeset/internal/watch"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const appName = "rangeset"

// Deps contains dependencies to inject into a rangeset run. Swapped out in tests.
type Deps struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	FS     hackpadfs.FS

	// Clipboard overrides the -clipboard flag's writer when set
	Clipboard clipboard.Writer
	// RunTUI starts the interactive UI. Defaults to tui.Run.
	RunTUI func(ctx context.Context, cfg tui.Config, in io.Reader, out io.Writer) error
	// WatchFile watches an input file for changes. Defaults to watch.File.
	WatchFile func(ctx context.Context, osPath string, options watch.Options, do func() error) (<-chan struct{}, error)
}

// App runs rangeset commands
type App struct {
	deps    Deps
	logger  *zap.Logger
	closers []io.Closer
}

func run(ctx context.Context, args []string, deps Deps) error {
	if deps.RunTUI == nil {
		deps.RunTUI = tui.Run
	}
	if deps.WatchFile == nil {
		deps.WatchFile = watch.File
	}
	app := &App{
		deps:   deps,
		logger: zap.NewNop(),
	}
	return app.Run(ctx, args)
}

// Run parses args and runs the matching command
func (a *App) Run(ctx context.Context, args []string) error {
	inputFlag := &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Read ranges from `PATH`. Use '-' for stdin.",
		EnvVars: []string{"RANGESET_FILE"},
	}
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Value:   string(formatText),
		Usage:   "Output format. One of: " + strings.Join(formatNames(), ", "),
		EnvVars: []string{"RANGESET_FORMAT"},
	}
	widthFlag := &cli.IntFlag{
		Name:    "width",
		Value:   defaultWidth,
		Usage:   "Total width of the grid format",
		EnvVars: []string{"COLUMNS"},
	}
	clipboardFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "clipboard",
			Value:   clipboardAuto,
			Usage:   "Clipboard to copy to. One of: " + strings.Join(clipboardModes(), ", "),
			EnvVars: []string{"RANGESET_CLIPBOARD"},
		},
		&cli.StringFlag{
			Name:    "clipboard-file",
			Usage:   "File `PATH` to write copies to, used with -clipboard=file",
			EnvVars: []string{"RANGESET_CLIPBOARD_FILE"},
		},
	}

	cliApp := &cli.App{
		Name:  appName,
		Usage: "Normalize integer ranges into their minimal canonical form",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   logging.DefaultLevel,
				Usage:   "Log level, e.g. debug, info, warn, error",
				EnvVars: []string{"RANGESET_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to `PATH` instead of stderr",
				EnvVars: []string{"RANGESET_LOG_FILE"},
			},
			&cli.BoolFlag{
				Name:    "color",
				Usage:   "Force colored output",
				EnvVars: []string{"RANGESET_COLOR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "normalize",
				Usage:     "Normalize ranges and print the result",
				ArgsUsage: "[ranges...]",
				Action:    a.normalize,
				Flags:     []cli.Flag{inputFlag, formatFlag, widthFlag},
			},
			{
				Name:      "copy",
				Usage:     "Normalize ranges and copy the result to the clipboard",
				ArgsUsage: "[ranges...]",
				Action:    a.copy,
				Flags:     append([]cli.Flag{inputFlag}, clipboardFlags...),
			},
			{
				Name:   "watch",
				Usage:  "Print normalized ranges every time the input file changes",
				Action: a.watch,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    inputFlag.Name,
						Aliases: inputFlag.Aliases,
						Usage:   "Watch ranges in `PATH`",
					},
					formatFlag,
					widthFlag,
				},
			},
			{
				Name:      "tui",
				Usage:     "Edit ranges interactively",
				ArgsUsage: "[ranges...]",
				Action:    a.tui,
				Flags:     append([]cli.Flag{inputFlag}, clipboardFlags...),
			},
		},
		Before:          a.before,
		After:           a.after,
		HideHelpCommand: true,
		Reader:          a.deps.Stdin,
		Writer:          a.deps.Stdout,
		ErrWriter:       a.deps.Stderr,
		ExitErrHandler:  func(*cli.Context, error) {},
	}
	return cliApp.RunContext(ctx, args)
}

func (a *App) before(c *cli.Context) error {
	if c.Bool("color") {
		setColorOnce(true)
	}
	logOutput := a.deps.Stderr
	if logFile := c.String("log-file"); logFile != "" {
		f, err := a.openAppend(logFile)
		if err != nil {
			return errors.Wrap(err, "failed to open log file")
		}
		a.closers = append(a.closers, f)
		logOutput = f
	}
	logger, err := logging.New(c.String("log-level"), logOutput)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *App) after(*cli.Context) error {
	_ = a.logger.Sync()
	var err error
	for _, closer := range a.closers {
		if closeErr := closer.Close(); err == nil {
			err = closeErr
		}
	}
	a.closers = nil
	return err
}

type osPathFS interface {
	hackpadfs.FS
	FromOSPath(path string) (string, error)
	ToOSPath(path string) (string, error)
}

// fromOSPath attempts to derive the FS path from an OS-like path
func (a *App) fromOSPath(p string) (string, error) {
	fs, ok := a.deps.FS.(osPathFS)
	if !ok {
		return p, nil
	}
	p, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return fs.FromOSPath(p)
}

// toOSPath attempts to derive an OS path from an FS path
func (a *App) toOSPath(p string) (string, error) {
	fs, ok := a.deps.FS.(osPathFS)
	if ok {
		return fs.ToOSPath(p)
	}
	return p, nil
}

// fileWriter adapts a writable hackpadfs.File into an io.WriteCloser
type fileWriter struct {
	hackpadfs.File
}

func (f fileWriter) Write(p []byte) (int, error) {
	return hackpadfs.WriteFile(f.File, p)
}

func (a *App) openAppend(osPath string) (io.WriteCloser, error) {
	p, err := a.fromOSPath(osPath)
	if err != nil {
		return nil, err
	}
	const appendFlags = hackpadfs.FlagWriteOnly | hackpadfs.FlagCreate | hackpadfs.FlagAppend
	f, err := hackpadfs.OpenFile(a.deps.FS, p, appendFlags, 0o600)
	if err != nil {
		return nil, err
	}
	return fileWriter{File: f}, nil
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
