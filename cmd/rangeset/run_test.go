package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/johnstarich/rangeset"
	"github.com/johnstarich/rangeset/internal/clipboard"
	"github.com/johnstarich/rangeset/internal/grid"
	"github.com/johnstarich/rangeset/internal/session"
	"github.com/johnstarich/rangeset/internal/tui"
	"github.com/johnstarich/rangeset/internal/watch"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRun struct {
	fs     hackpadfs.FS
	stdout bytes.Buffer
	stderr bytes.Buffer
	deps   Deps
}

func newTestRun(t *testing.T, stdin string, files map[string]string) *testRun {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	for name, contents := range files {
		writeFile(t, fs, name, contents)
	}
	r := &testRun{fs: fs}
	r.deps = Deps{
		Stdin:  strings.NewReader(stdin),
		Stdout: &r.stdout,
		Stderr: &r.stderr,
		FS:     fs,
		RunTUI: func(context.Context, tui.Config, io.Reader, io.Writer) error {
			return errors.New("unexpected tui run")
		},
		WatchFile: func(context.Context, string, watch.Options, func() error) (<-chan struct{}, error) {
			return nil, errors.New("unexpected watch")
		},
	}
	return r
}

func (r *testRun) Run(args ...string) error {
	return run(context.Background(), append([]string{appName}, args...), r.deps)
}

func writeFile(t *testing.T, fs hackpadfs.FS, name, contents string) {
	t.Helper()
	f, err := hackpadfs.Create(fs, name)
	require.NoError(t, err)
	_, err = hackpadfs.WriteFile(f, []byte(contents))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func renderGrid(t *testing.T, text string, width int) string {
	t.Helper()
	set, err := session.Render(text)
	require.NoError(t, err)
	return grid.Render(rangeset.Format(set), width)
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		description  string
		args         []string
		stdin        string
		files        map[string]string
		expectOut    string
		expectOutHas []string
		expectErr    string
	}{
		{
			description: "no command prints help",
			expectOutHas: []string{
				"normalize",
				"copy",
				"watch",
				"tui",
			},
		},
		{
			description: "args",
			args:        []string{"normalize", "1-3", "2-5", "9"},
			expectOut:   "1-5, 9\n",
		},
		{
			description: "args with commas",
			args:        []string{"normalize", "10..12, 1", "13"},
			expectOut:   "1, 10-13\n",
		},
		{
			description: "stdin",
			args:        []string{"normalize"},
			stdin:       "1..3\n4\n",
			expectOut:   "1-4\n",
		},
		{
			description: "stdin dash",
			args:        []string{"normalize", "-"},
			stdin:       "-5--3, -2",
			expectOut:   "-5--2\n",
		},
		{
			description: "empty stdin",
			args:        []string{"normalize"},
			expectOut:   "\n",
		},
		{
			description: "file",
			args:        []string{"normalize", "-file", "ranges.txt"},
			files:       map[string]string{"ranges.txt": "10-12, 1\n"},
			expectOut:   "1, 10-12\n",
		},
		{
			description: "missing file",
			args:        []string{"normalize", "-file", "missing.txt"},
			expectErr:   "failed to read missing.txt",
		},
		{
			description: "invalid range",
			args:        []string{"normalize", "5-1"},
			expectErr:   `invalid range "5-1" at token 1: start 5 is greater than end 1`,
		},
		{
			description: "malformed range",
			args:        []string{"normalize", "1", "abc"},
			expectErr:   `malformed range "abc" at token 2: expected "N", "N-M", or "N..M"`,
		},
		{
			description: "unknown format",
			args:        []string{"normalize", "-format", "xml", "1"},
			expectErr:   `unknown format "xml"`,
		},
		{
			description: "json",
			args:        []string{"normalize", "-format", "json", "1-3", "4", "7"},
			expectOut: `{
  "ranges": [
    {
      "start": 1,
      "end": 4,
      "extent": "4 values"
    },
    {
      "start": 7,
      "end": 7,
      "extent": "1 value"
    }
  ],
  "serialized": "1-4, 7"
}
`,
		},
		{
			description: "json empty",
			args:        []string{"normalize", "-format", "json"},
			expectOut: `{
  "ranges": [],
  "serialized": ""
}
`,
		},
		{
			description:  "table",
			args:         []string{"normalize", "-format", "table", "1-3", "2-5"},
			expectOutHas: []string{"START", "EXTENT", "END", "5 values"},
		},
		{
			description:  "markdown",
			args:         []string{"normalize", "-format", "markdown", "1-3", "2-5"},
			expectOutHas: []string{"| Start", "5 values"},
		},
		{
			description: "bad log level",
			args:        []string{"-log-level", "loud", "normalize", "1"},
			expectErr:   "invalid log level",
		},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			r := newTestRun(t, tc.stdin, tc.files)
			err := r.Run(tc.args...)
			if tc.expectErr != "" {
				assert.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			if tc.expectOutHas != nil {
				for _, s := range tc.expectOutHas {
					assert.Contains(t, r.stdout.String(), s)
				}
				return
			}
			assert.Equal(t, tc.expectOut, r.stdout.String())
		})
	}
}

func TestNormalizeGrid(t *testing.T) {
	t.Parallel()
	r := newTestRun(t, "", nil)
	err := r.Run("normalize", "-format", "grid", "-width", "18", "1-4, 9-10, 12")
	require.NoError(t, err)
	assert.Equal(t, renderGrid(t, "1-4, 9-10, 12", 18), r.stdout.String())
	assert.Equal(t, 3, strings.Count(r.stdout.String(), "\n"))
}

func TestCopy(t *testing.T) {
	t.Parallel()

	t.Run("file clipboard", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		err := r.Run("copy", "-clipboard", "file", "-clipboard-file", "copied.txt", "1-3", "2-5")
		require.NoError(t, err)
		assert.Contains(t, r.stdout.String(), "Copied")
		assert.Contains(t, r.stdout.String(), `"1-5"`)

		contents, err := hackpadfs.ReadFile(r.fs, "copied.txt")
		require.NoError(t, err)
		assert.Equal(t, "1-5", string(contents))
	})

	t.Run("copy from stdin", func(t *testing.T) {
		t.Parallel()
		var copied []string
		r := newTestRun(t, "4\n5..6", nil)
		r.deps.Clipboard = clipboard.WriterFunc(func(ctx context.Context, text string) error {
			copied = append(copied, text)
			return nil
		})
		require.NoError(t, r.Run("copy"))
		assert.Equal(t, []string{"4-6"}, copied)
	})

	t.Run("failed copy prints result", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		r.deps.Clipboard = clipboard.WriterFunc(func(context.Context, string) error {
			return errors.New("no display")
		})
		require.NoError(t, r.Run("copy", "1", "2"))
		assert.Equal(t, "1-2\n", r.stdout.String())
		assert.Contains(t, r.stderr.String(), "Failed to copy to clipboard: no display")
	})

	t.Run("invalid input is not copied", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		r.deps.Clipboard = clipboard.WriterFunc(func(context.Context, string) error {
			t.Error("should not copy")
			return nil
		})
		err := r.Run("copy", "3-2")
		assert.ErrorContains(t, err, `invalid range "3-2"`)
	})

	t.Run("file clipboard requires path", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		err := r.Run("copy", "-clipboard", "file", "1")
		assert.EqualError(t, err, "-clipboard-file is required when -clipboard=file")
	})

	t.Run("unknown clipboard", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		err := r.Run("copy", "-clipboard", "paper", "1")
		assert.EqualError(t, err, `unknown clipboard "paper"`)
	})
}

func TestTUI(t *testing.T) {
	t.Parallel()

	t.Run("starts with args", func(t *testing.T) {
		t.Parallel()
		var copied []string
		r := newTestRun(t, "", nil)
		r.deps.Clipboard = clipboard.WriterFunc(func(ctx context.Context, text string) error {
			copied = append(copied, text)
			return nil
		})
		var cfg tui.Config
		r.deps.RunTUI = func(ctx context.Context, c tui.Config, in io.Reader, out io.Writer) error {
			cfg = c
			return <-c.Clipboard.Request("1-2")
		}
		require.NoError(t, r.Run("tui", "1", "2"))
		assert.Equal(t, "1,2", cfg.Input)
		assert.NotNil(t, cfg.Logger)
		assert.Equal(t, []string{"1-2"}, copied)
	})

	t.Run("starts with file", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", map[string]string{"ranges.txt": "5-9"})
		r.deps.Clipboard = clipboard.Fallback{}
		var input string
		r.deps.RunTUI = func(ctx context.Context, c tui.Config, in io.Reader, out io.Writer) error {
			input = c.Input
			return nil
		}
		require.NoError(t, r.Run("tui", "-file", "ranges.txt"))
		assert.Equal(t, "5-9", input)
	})

	t.Run("stdin is reserved for keys", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "1-2", nil)
		err := r.Run("tui", "-file", "-")
		assert.ErrorContains(t, err, "tui reads keys from stdin")
	})

	t.Run("logs stay off the screen", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		r.deps.Clipboard = clipboard.WriterFunc(func(context.Context, string) error {
			return errors.New("no display")
		})
		r.deps.RunTUI = func(ctx context.Context, c tui.Config, in io.Reader, out io.Writer) error {
			assert.EqualError(t, <-c.Clipboard.Request("1"), "no display")
			return nil
		}
		require.NoError(t, r.Run("-log-level", "debug", "tui", "1"))
		assert.Empty(t, r.stderr.String())
	})

	t.Run("logs go to the log file", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", map[string]string{"tui.log": ""})
		r.deps.Clipboard = clipboard.WriterFunc(func(context.Context, string) error {
			return errors.New("no display")
		})
		r.deps.RunTUI = func(ctx context.Context, c tui.Config, in io.Reader, out io.Writer) error {
			assert.Error(t, <-c.Clipboard.Request("1"))
			return nil
		}
		require.NoError(t, r.Run("-log-file", "tui.log", "tui", "1"))
		assert.Empty(t, r.stderr.String())
		contents, err := hackpadfs.ReadFile(r.fs, "tui.log")
		require.NoError(t, err)
		assert.Contains(t, string(contents), "Failed copying to clipboard")
	})

	t.Run("run error", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		r.deps.Clipboard = clipboard.Fallback{}
		err := r.Run("tui")
		assert.EqualError(t, err, "unexpected tui run")
	})
}

func TestWatch(t *testing.T) {
	t.Parallel()

	t.Run("prints each valid change", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", map[string]string{"ranges.txt": "1-3, 4"})
		var watchedPath string
		r.deps.WatchFile = func(ctx context.Context, osPath string, options watch.Options, do func() error) (<-chan struct{}, error) {
			watchedPath = osPath
			assert.NotNil(t, options.Logger)
			assert.NoError(t, do())
			writeFile(t, r.fs, "ranges.txt", "2-")
			assert.NoError(t, do())
			writeFile(t, r.fs, "ranges.txt", "7\n8")
			assert.NoError(t, do())
			done := make(chan struct{})
			close(done)
			return done, nil
		}
		require.NoError(t, r.Run("watch", "-file", "ranges.txt"))
		assert.Equal(t, "ranges.txt", watchedPath)
		assert.Equal(t, "1-4\n7-8\n", r.stdout.String())
		assert.Contains(t, r.stderr.String(), `malformed range "2-" at token 1`)
		assert.Contains(t, r.stderr.String(), "(showing last valid ranges)")
	})

	t.Run("missing file is reported to the watcher", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		r.deps.WatchFile = func(ctx context.Context, osPath string, options watch.Options, do func() error) (<-chan struct{}, error) {
			assert.ErrorContains(t, do(), "failed to read missing.txt")
			done := make(chan struct{})
			close(done)
			return done, nil
		}
		require.NoError(t, r.Run("watch", "-file", "missing.txt"))
		assert.Empty(t, r.stdout.String())
	})

	t.Run("watch failure", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		err := r.Run("watch", "-file", "ranges.txt")
		assert.EqualError(t, err, "unexpected watch")
	})

	t.Run("file is required", func(t *testing.T) {
		t.Parallel()
		r := newTestRun(t, "", nil)
		err := r.Run("watch")
		assert.EqualError(t, err, "-file is required to watch for changes")
	})
}
