package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Bar     lipgloss.Style
	Extent  lipgloss.Style
	Problem lipgloss.Style
	Payload lipgloss.Style
	Status  lipgloss.Style
	Empty   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Label:   lipgloss.NewStyle().Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Extent:  lipgloss.NewStyle().Faint(true),
		Problem: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Payload: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Status:  lipgloss.NewStyle().Italic(true),
		Empty:   lipgloss.NewStyle().Faint(true),
	}
}
