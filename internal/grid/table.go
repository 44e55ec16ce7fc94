package grid

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/johnstarich/rangeset"
)

// Format represents a table's output format
type Format int

// Supported formats
const (
	FormatTerminal Format = iota
	FormatMarkdown
)

// Table renders model as a table with start, extent, and end columns
func Table(model rangeset.DisplayModel, format Format) string {
	tbl := table.NewWriter()
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft},
	})
	tbl.AppendHeader(table.Row{"Start", "Extent", "End"})
	for _, row := range model.Rows {
		tbl.AppendRow(table.Row{row.Start, row.Extent, row.End})
	}
	if format == FormatMarkdown {
		return tbl.RenderMarkdown()
	}
	tbl.SetStyle(table.StyleLight)
	return tbl.Render()
}
