// Package tui is an interactive terminal UI for normalizing ranges.
//
// The input area is re-normalized on every edit and the canonical ranges are drawn as a start / extent / end grid.
// The copy key sends the serialized result to the clipboard.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/johnstarich/rangeset/internal/clipboard"
	"github.com/johnstarich/rangeset/internal/grid"
	"github.com/johnstarich/rangeset/internal/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultWidth = 80
	inputHeight  = 5
)

// Config contains options for a Model
type Config struct {
	// Input is the initial text in the input area
	Input string
	// Clipboard receives copy requests. Copying reports an error if nil.
	Clipboard *clipboard.Dispatcher
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// Model is a Bubble Tea model for an interactive range normalizing session
type Model struct {
	clipboard *clipboard.Dispatcher
	help      help.Model
	input     textarea.Model
	keys      keyMap
	logger    *zap.Logger
	state     session.State
	status    string
	styles    styles
	width     int
}

type copiedMsg struct {
	text string
	err  error
}

// New returns a Model with cfg.Input already normalized
func New(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	input := textarea.New()
	input.Placeholder = "Enter ranges, e.g. 1-3, 5..7, 9"
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.SetWidth(defaultWidth)
	input.SetValue(cfg.Input)
	input.Focus()

	return Model{
		clipboard: cfg.Clipboard,
		help:      help.New(),
		input:     input,
		keys:      defaultKeyMap(),
		logger:    cfg.Logger,
		state:     session.New(cfg.Input),
		styles:    defaultStyles(),
		width:     defaultWidth,
	}
}

// State returns the current session state
func (m Model) State() session.State {
	return m.state
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyCmd(m.state.Copy())
		}
	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Copied %q", msg.text)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.state.Input {
		m.state = session.Update(m.state, value)
		m.status = ""
		if m.state.Problem != nil {
			m.logger.Debug("Input has a problem", zap.Error(m.state.Problem))
		}
	}
	return m, cmd
}

// copyCmd returns a command requesting the clipboard copy. The request is made when the command runs, once per copy key press.
func (m Model) copyCmd(request session.Copy) tea.Cmd {
	dispatcher := m.clipboard
	return func() tea.Msg {
		if dispatcher == nil {
			return copiedMsg{text: request.Text, err: errors.New("no clipboard configured")}
		}
		return copiedMsg{text: request.Text, err: <-dispatcher.Request(request.Text)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Ranges"))
	sb.WriteRune('\n')
	sb.WriteString(m.input.View())
	sb.WriteRune('\n')
	if m.state.Stale() {
		sb.WriteString(m.styles.Problem.Render(m.state.Problem.Error() + " (showing last valid ranges)"))
	}
	sb.WriteString("\n\n")

	if len(m.state.Display.Rows) == 0 {
		sb.WriteString(m.styles.Empty.Render("No ranges"))
		sb.WriteRune('\n')
	}
	gap := strings.Repeat(" ", grid.Gap)
	extentWidth := 0
	for _, row := range m.state.Display.Rows {
		extentWidth = max(extentWidth, len(row.Extent))
	}
	for _, line := range grid.Layout(m.state.Display, m.width-extentWidth-grid.Gap) {
		sb.WriteString(m.styles.Label.Render(line.Start))
		sb.WriteString(gap)
		sb.WriteString(m.styles.Bar.Render(line.Bar))
		sb.WriteString(gap)
		sb.WriteString(m.styles.Label.Render(line.End))
		sb.WriteString(gap)
		sb.WriteString(m.styles.Extent.Render(line.Row.Extent))
		sb.WriteRune('\n')
	}

	sb.WriteRune('\n')
	sb.WriteString("Copy: ")
	sb.WriteString(m.styles.Payload.Render(m.state.Payload))
	sb.WriteRune('\n')
	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status))
	}
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Run starts an interactive session reading keys from in and drawing to out. Blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(New(cfg),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
