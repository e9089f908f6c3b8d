// Package normalize classifies raw remote-operation results into the tagged
// union every downstream consumer works from. No consumer inspects the
// remote operation's raw return shape directly.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"formset/internal/report"
)

// ResultType tags the variants of Result.
type ResultType int

const (
	// Empty is the recognized "no data" outcome. It is data, not an error.
	Empty ResultType = iota
	// Structured carries a machine-readable value passed through verbatim.
	Structured
	// Text carries a rendered document with a declared content type.
	Text
	// Unknown carries a raw value the (shape, kind) table has no row for.
	Unknown
)

func (t ResultType) String() string {
	switch t {
	case Empty:
		return "empty"
	case Structured:
		return "structured"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Content types for the Text variant.
const (
	MimeMarkdown = "text/markdown"
	MimeHTML     = "text/html"
)

// Result is the contract between the normalizer and every downstream
// consumer (CLI, table renderer, tool server).
type Result struct {
	Type ResultType
	// Data holds the structured payload (Structured only).
	Data interface{}
	// Mime and Content hold the rendered document (Text only).
	Mime    string
	Content string
	// Raw holds the unclassifiable value (Unknown only).
	Raw interface{}
}

// IsEmpty reports the recognized no-data outcome.
func (r Result) IsEmpty() bool {
	return r.Type == Empty
}

// Normalize maps (raw shape, requested kind) onto a Result:
//
//	absent or "no elements" sentinel, any kind  -> Empty
//	structured value, structured kind           -> Structured (verbatim)
//	structured value, narrative kind            -> Text markdown, fenced JSON
//	text, narrative kind                        -> Text markdown
//	text, HTML kind                             -> Text html
//	anything else                               -> Unknown
//
// The structured-into-narrative row fires only when the remote operation
// unexpectedly returned data instead of a rendered document; the fenced
// block keeps the document valid markdown.
func Normalize(raw interface{}, kind report.Kind, heading, description string) Result {
	if isAbsent(raw) {
		return Result{Type: Empty}
	}

	switch value := raw.(type) {
	case map[string]interface{}, []interface{}:
		if kind.IsStructured() {
			return Result{Type: Structured, Data: value}
		}
		if kind.IsNarrative() {
			return Result{
				Type:    Text,
				Mime:    MimeMarkdown,
				Content: preamble(heading, description) + fencedJSON(value),
			}
		}
	case string:
		if kind.IsNarrative() {
			return Result{
				Type:    Text,
				Mime:    MimeMarkdown,
				Content: preamble(heading, description) + value,
			}
		}
		if kind == report.KindHTML {
			return Result{Type: Text, Mime: MimeHTML, Content: value}
		}
	}
	return Result{Type: Unknown, Raw: raw}
}

// isAbsent recognizes the no-data shapes: nil, an empty collection, or the
// service's "no elements found" sentinel string.
func isAbsent(raw interface{}) bool {
	switch value := raw.(type) {
	case nil:
		return true
	case []interface{}:
		return len(value) == 0
	case map[string]interface{}:
		return len(value) == 0
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(value))
		return trimmed == "" || strings.HasPrefix(trimmed, "no elements found")
	}
	return false
}

// preamble builds the self-describing document header, included only when
// both heading and description are present.
func preamble(heading, description string) string {
	if heading == "" || description == "" {
		return ""
	}
	return fmt.Sprintf("# %s\n%s\n\n", heading, description)
}

// fencedJSON serializes a structured value into a fenced code block.
func fencedJSON(value interface{}) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		// Marshal of decoded JSON values cannot fail; guard anyway.
		data = []byte(fmt.Sprintf("%v", value))
	}
	return "```json\n" + string(data) + "\n```\n"
}
