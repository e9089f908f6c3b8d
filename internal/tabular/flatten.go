// Package tabular converts arbitrary nested structured values into flat rows
// and a bounded column set for table display.
package tabular

import (
	"fmt"
	"sort"
	"strings"
)

// Row is a flat name to stringified-value mapping for one table row.
type Row map[string]string

// DefaultColumnCap bounds the number of columns gathered across rows.
const DefaultColumnCap = 12

// summaryLimit caps master-detail summary strings. Longer summaries are cut
// to 117 characters plus "...".
const summaryLimit = 120

// envelopeKeys are the wrapper-object keys whose sequence payload is
// unwrapped one level before flattening.
var envelopeKeys = []string{"elements", "items", "results"}

// summaryKeys are tried in order when summarizing one element of a nested
// object sequence.
var summaryKeys = []string{"name", "displayName", "qualifiedName", "guid"}

// Flatten converts a structured value into a sequence of flat rows:
//
//   - nil yields no rows
//   - a sequence yields one row per element (mappings flattened with dotted
//     keys, anything else under the "value" column)
//   - a mapping holding a sequence under an envelope key is unwrapped one
//     level and the sequence flattened
//   - any other mapping yields a single flattened row
//   - a scalar yields one row under the "value" column
//
// Flatten is deterministic: nested maps are walked in sorted key order, so
// repeated calls on the same value produce identical rows.
func Flatten(value interface{}) []Row {
	switch v := value.(type) {
	case nil:
		return nil
	case []interface{}:
		rows := make([]Row, 0, len(v))
		for _, element := range v {
			if m, ok := element.(map[string]interface{}); ok {
				rows = append(rows, flattenOne(m))
			} else {
				rows = append(rows, Row{"value": stringify(element)})
			}
		}
		return rows
	case map[string]interface{}:
		for _, key := range envelopeKeys {
			if inner, present := v[key]; present {
				if seq, ok := inner.([]interface{}); ok {
					return Flatten(seq)
				}
				if inner == nil {
					return nil
				}
			}
		}
		return []Row{flattenOne(v)}
	default:
		return []Row{{"value": stringify(v)}}
	}
}

// Columns gathers the union of keys across all rows in first-seen order,
// de-duplicated and capped. Within one row keys contribute in sorted order.
// Scanning stops as soon as the cap is reached.
func Columns(rows []Row, cap int) []string {
	if cap <= 0 {
		cap = DefaultColumnCap
	}
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, key := range sortedKeys(row) {
			if seen[key] {
				continue
			}
			seen[key] = true
			columns = append(columns, key)
			if len(columns) >= cap {
				return columns
			}
		}
	}
	return columns
}

// flattenOne walks a mapping, joining nested map keys with "." and
// collapsing nested sequences into single display strings.
func flattenOne(m map[string]interface{}) Row {
	row := make(Row)
	flattenInto(row, "", m)
	return row
}

func flattenInto(row Row, prefix string, m map[string]interface{}) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch value := m[key].(type) {
		case map[string]interface{}:
			flattenInto(row, name, value)
		case []interface{}:
			row[name] = collapseSequence(value)
		case nil:
			row[name] = ""
		default:
			row[name] = stringify(value)
		}
	}
}

// collapseSequence renders a nested sequence as one cell value: empty
// sequences as "", object sequences as a master-detail summary, short scalar
// sequences joined, longer ones as a count.
func collapseSequence(seq []interface{}) string {
	if len(seq) == 0 {
		return ""
	}
	if _, ok := seq[0].(map[string]interface{}); ok {
		return summarize(seq)
	}
	if len(seq) <= 3 {
		parts := make([]string, len(seq))
		for i, element := range seq {
			parts[i] = stringify(element)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("<%d> items", len(seq))
}

// summarize collapses a sequence of objects into one human-readable string.
// Per element the first present of name, displayName, qualifiedName, guid
// wins, then the first string-typed value, then the element's string form.
func summarize(seq []interface{}) string {
	parts := make([]string, 0, len(seq))
	for _, element := range seq {
		m, ok := element.(map[string]interface{})
		if !ok {
			parts = append(parts, stringify(element))
			continue
		}
		parts = append(parts, summarizeElement(m))
	}
	joined := strings.Join(parts, ", ")
	// Truncation counts characters, not bytes, so a multibyte rune is never
	// split and the cell stays valid UTF-8.
	if runes := []rune(joined); len(runes) > summaryLimit {
		joined = string(runes[:summaryLimit-3]) + "..."
	}
	return joined
}

func summarizeElement(m map[string]interface{}) string {
	for _, key := range summaryKeys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	for _, key := range sortedMapKeys(m) {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return stringify(m)
}

func stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMapKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
