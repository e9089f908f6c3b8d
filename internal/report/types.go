package report

// Kind is an output representation tag. A report advertises the kinds it can
// produce through its formats; callers request one kind per execution.
type Kind string

const (
	// KindAny matches any format and is used for introspection only.
	KindAny Kind = "ANY"
	// KindAll marks a format that can serve every structured request.
	KindAll Kind = "ALL"
	// KindDict is the machine-readable structured-data kind.
	KindDict Kind = "DICT"
	// KindJSON is an alias kind for structured data delivered as JSON.
	KindJSON Kind = "JSON"
	// KindList is a compact listing, rendered from the structured format.
	KindList Kind = "LIST"
	// KindTable is an interactive tabular display, served by the structured format.
	KindTable Kind = "TABLE"
	// KindForm is a form-like layout, served by the structured format.
	KindForm Kind = "FORM"
	// KindReport is a narrative markdown document.
	KindReport Kind = "REPORT"
	// KindMermaid is a mermaid diagram document (markdown-family).
	KindMermaid Kind = "MERMAID"
	// KindHTML is a pre-rendered HTML document.
	KindHTML Kind = "HTML"
)

// Kinds lists every concrete kind a caller may request (KindAny excluded).
var Kinds = []Kind{KindAll, KindDict, KindJSON, KindList, KindTable, KindForm, KindReport, KindMermaid, KindHTML}

// ParseKind normalizes a user-supplied kind token. ok is false for tokens
// outside the enumerated set.
func ParseKind(token string) (Kind, bool) {
	k := Kind(token)
	if k == KindAny {
		return k, true
	}
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// IsStructured reports whether the kind carries machine-readable structured
// data rather than rendered text.
func (k Kind) IsStructured() bool {
	switch k {
	case KindDict, KindJSON, KindAll, KindList, KindTable, KindForm:
		return true
	}
	return false
}

// IsNarrative reports whether the kind is a markdown-family document.
func (k Kind) IsNarrative() bool {
	return k == KindReport || k == KindMermaid
}

// Canonical maps a requested kind onto the kind whose format serves it.
// Tabular and form-like requests are backed by the structured-data format;
// everything else matches its own kind.
func (k Kind) Canonical() Kind {
	switch k {
	case KindTable, KindForm, KindJSON:
		return KindDict
	}
	return k
}

// Column describes one column of a tabular or list rendering.
type Column struct {
	// Key is the flattened attribute name the value is taken from.
	Key string `json:"key"`
	// Label is the display header; Key is used when empty.
	Label string `json:"label,omitempty"`
	// Hint optionally names a nested path used to extract the value when the
	// raw attribute is not flat (e.g. "properties.displayName").
	Hint string `json:"hint,omitempty"`
}

// Action is the callable reference and parameter contract backing a Format.
type Action struct {
	// Function is a two-part "Capability.operation" reference.
	Function string `json:"function"`
	// RequiredParams are parameter names the caller must supply, in order.
	RequiredParams []string `json:"requiredParams,omitempty"`
	// OptionalParams are parameter names passed through when supplied.
	OptionalParams []string `json:"optionalParams,omitempty"`
	// SpecParams are fixed values injected regardless of caller input. A name
	// present here counts as satisfied even if it is also required.
	SpecParams map[string]interface{} `json:"specParams,omitempty"`
}

// Format is one output-kind-specific variant of a report.
type Format struct {
	// Types are the kind tags this format serves. Multiple tags may share one
	// format (a TABLE request and a DICT request are the same format).
	Types []Kind `json:"types"`
	// Columns define the tabular layout for structured kinds.
	Columns []Column `json:"columns,omitempty"`
	// Action is invoked to produce this format's data.
	Action Action `json:"action"`
}

// Supports reports whether the format advertises the given (already
// canonicalized) kind, either directly or via the ALL tag.
func (f *Format) Supports(kind Kind) bool {
	for _, t := range f.Types {
		if t == kind || t == KindAll {
			return true
		}
	}
	return false
}

// ReportSpec is a named, registered query definition against the remote
// metadata service. Specs are immutable after registry construction.
type ReportSpec struct {
	Name        string   `json:"name"`
	Family      string   `json:"family,omitempty"`
	Heading     string   `json:"heading,omitempty"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Formats     []Format `json:"formats"`
}

// Kinds returns the union of kind tags advertised across all formats,
// first-seen order preserved.
func (s *ReportSpec) Kinds() []Kind {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, f := range s.Formats {
		for _, t := range f.Types {
			if !seen[t] {
				seen[t] = true
				kinds = append(kinds, t)
			}
		}
	}
	return kinds
}

// BoundCall is the merged parameter mapping actually passed to a remote
// operation, always including the output_format and output_format_set
// control values.
type BoundCall map[string]interface{}

// Control keys injected into every BoundCall so the remote operation can
// self-describe its response shape.
const (
	ControlOutputFormat    = "output_format"
	ControlOutputFormatSet = "output_format_set"
)
