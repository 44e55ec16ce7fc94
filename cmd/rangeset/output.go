package main

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/johnstarich/rangeset"
	"github.com/johnstarich/rangeset/internal/grid"
	"github.com/johnstarich/rangeset/internal/pipe"
	"github.com/pkg/errors"
)

const defaultWidth = 80

type outputFormat string

const (
	formatText     outputFormat = "text"
	formatGrid     outputFormat = "grid"
	formatTable    outputFormat = "table"
	formatMarkdown outputFormat = "markdown"
	formatJSON     outputFormat = "json"
)

type printer func(w io.Writer, set rangeset.RangeSet, width int) error

//nolint:gochecknoglobals // Read-only lookup table
var printers = map[outputFormat]printer{
	formatText: func(w io.Writer, set rangeset.RangeSet, _ int) error {
		_, err := io.WriteString(w, rangeset.Serialize(set)+"\n")
		return err
	},
	formatGrid: func(w io.Writer, set rangeset.RangeSet, width int) error {
		_, err := io.WriteString(w, grid.Render(rangeset.Format(set), width))
		return err
	},
	formatTable: func(w io.Writer, set rangeset.RangeSet, _ int) error {
		_, err := io.WriteString(w, grid.Table(rangeset.Format(set), grid.FormatTerminal)+"\n")
		return err
	},
	formatMarkdown: func(w io.Writer, set rangeset.RangeSet, _ int) error {
		_, err := io.WriteString(w, grid.Table(rangeset.Format(set), grid.FormatMarkdown)+"\n")
		return err
	},
	formatJSON: printJSON,
}

func formatNames() []string {
	names := make([]string, 0, len(printers))
	for name := range printers {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func lookupPrinter(name string) (printer, error) {
	p, ok := printers[outputFormat(name)]
	return p, pipe.ErrIf(!ok, errors.Errorf("unknown format %q", name))
}

type jsonRange struct {
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	Extent string `json:"extent"`
}

type jsonOutput struct {
	Ranges     []jsonRange `json:"ranges"`
	Serialized string      `json:"serialized"`
}

func printJSON(w io.Writer, set rangeset.RangeSet, _ int) error {
	model := rangeset.Format(set)
	out := jsonOutput{
		Ranges:     make([]jsonRange, 0, len(model.Rows)),
		Serialized: rangeset.Serialize(set),
	}
	for _, row := range model.Rows {
		out.Ranges = append(out.Ranges, jsonRange{
			Start:  row.Range.Start(),
			End:    row.Range.End(),
			Extent: row.Extent,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
