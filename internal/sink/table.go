// Package sink renders normalized results: tabular output to an interactive
// paged display, narrative output to deterministically named files.
package sink

import (
	"fmt"
	"io"
	"os"

	"formset/internal/report"
	"formset/internal/tabular"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

// tablePageSize is the page height of the interactive display.
const tablePageSize = 20

// TableOptions configure one table rendering.
type TableOptions struct {
	// Title is the report's declared heading, or "Report: {name}" by default.
	Title string
	// Caption describes the queried endpoint.
	Caption string
	// Interactive selects the paged boxed style. Detected from the output
	// when rendering to a terminal; forced off for piped output.
	Interactive bool
}

// DetectInteractive reports whether w is a terminal.
func DetectInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// DefaultTitle derives a table title for a report with no declared heading.
func DefaultTitle(reportName string) string {
	return fmt.Sprintf("Report: %s", reportName)
}

// RenderTable writes rows to w using the column layout. Columns with empty
// labels fall back to their keys. Zero rows render a single "no results"
// notice instead of an empty table.
func RenderTable(w io.Writer, rows []tabular.Row, columns []report.Column, opts TableOptions) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No results for %s\n", opts.Title)
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if opts.Title != "" {
		tw.SetTitle(opts.Title)
	}
	if opts.Caption != "" {
		tw.SetCaption(opts.Caption)
	}

	header := make(table.Row, len(columns))
	for i, col := range columns {
		label := col.Label
		if label == "" {
			label = col.Key
		}
		header[i] = label
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, len(columns))
		for i, col := range columns {
			cells[i] = cellValue(row, col)
		}
		tw.AppendRow(cells)
	}

	if opts.Interactive {
		tw.SetStyle(table.StyleRounded)
		tw.SetPageSize(tablePageSize)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Render()
}

// ColumnsFor chooses the column layout: the format's declared columns when
// present, otherwise columns gathered from the rows themselves.
func ColumnsFor(format *report.Format, rows []tabular.Row) []report.Column {
	if format != nil && len(format.Columns) > 0 {
		return format.Columns
	}
	keys := tabular.Columns(rows, tabular.DefaultColumnCap)
	columns := make([]report.Column, len(keys))
	for i, key := range keys {
		columns[i] = report.Column{Key: key}
	}
	return columns
}

// cellValue resolves one cell, honoring the column's extraction hint before
// its key.
func cellValue(row tabular.Row, col report.Column) string {
	if col.Hint != "" {
		if v, ok := row[col.Hint]; ok && v != "" {
			return v
		}
	}
	return row[col.Key]
}
