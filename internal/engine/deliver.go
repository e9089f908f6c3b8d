package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"formset/internal/normalize"
	"formset/internal/report"
	"formset/internal/sink"
	"formset/internal/tabular"
	"formset/pkg/logging"
)

// Deliver routes a run outcome to its sink: tabular kinds to the table
// display on w, narrative and HTML results to files, structured results as
// JSON on w. Returns the written file path when one was produced.
func (e *Engine) Deliver(w io.Writer, out *Outcome, files *sink.FileWriter) (string, error) {
	title := out.Spec.Heading
	if title == "" {
		title = sink.DefaultTitle(out.Spec.Name)
	}

	if out.Result.IsEmpty() {
		fmt.Fprintf(w, "No results for %s\n", title)
		return "", nil
	}

	switch out.Result.Type {
	case normalize.Structured:
		if out.Kind == report.KindTable || out.Kind == report.KindList {
			rows := tabular.Flatten(out.Result.Data)
			if len(rows) == 0 {
				fmt.Fprintf(w, "No results for %s\n", title)
				return "", nil
			}
			sink.RenderTable(w, rows, sink.ColumnsFor(out.Format, rows), sink.TableOptions{
				Title:       title,
				Caption:     fmt.Sprintf("queried %s (%s)", e.creds.Endpoint, e.creds.ViewServer),
				Interactive: sink.DetectInteractive(w),
			})
			return "", nil
		}
		encoded, err := json.MarshalIndent(out.Result.Data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding structured result: %w", err)
		}
		fmt.Fprintln(w, string(encoded))
		return "", nil

	case normalize.Text:
		path, err := files.Write(out.Spec.Name, out.Kind, out.Result.Content)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(w, "Wrote %s result to %s\n", out.Kind, path)
		return path, nil

	default:
		logging.Warn("engine", "Unclassified result shape for report %s (kind %s)", out.Spec.Name, out.Kind)
		fmt.Fprintf(w, "%v\n", out.Result.Raw)
		return "", nil
	}
}
