package report

import (
	"fmt"
	"strings"
)

// Registry is the in-memory mapping from report name (plus aliases) to
// ReportSpec. It is immutable after construction and therefore safe for
// unsynchronized concurrent reads.
type Registry struct {
	specs   []*ReportSpec
	byName  map[string]*ReportSpec
	byAlias map[string]*ReportSpec
}

// NewRegistry builds a registry from a declarative spec table. Names and
// aliases must be unique across the whole table; every spec needs at least
// one format with a function reference.
func NewRegistry(specs []ReportSpec) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]*ReportSpec, len(specs)),
		byAlias: make(map[string]*ReportSpec),
	}
	for i := range specs {
		spec := &specs[i]
		if spec.Name == "" {
			return nil, fmt.Errorf("report at index %d has no name", i)
		}
		if _, exists := r.byName[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate report name %q", spec.Name)
		}
		if len(spec.Formats) == 0 {
			return nil, fmt.Errorf("report %q declares no formats", spec.Name)
		}
		for fi, f := range spec.Formats {
			if len(f.Types) == 0 {
				return nil, fmt.Errorf("report %q format %d declares no kinds", spec.Name, fi)
			}
			if !strings.Contains(f.Action.Function, ".") {
				return nil, fmt.Errorf("report %q format %d: function %q is not of the form Capability.operation",
					spec.Name, fi, f.Action.Function)
			}
		}
		r.byName[spec.Name] = spec
		r.specs = append(r.specs, spec)
		for _, alias := range spec.Aliases {
			if other, exists := r.byAlias[alias]; exists {
				return nil, fmt.Errorf("alias %q of report %q already used by %q", alias, spec.Name, other.Name)
			}
			if other, exists := r.byName[alias]; exists {
				return nil, fmt.Errorf("alias %q of report %q collides with report %q", alias, spec.Name, other.Name)
			}
			r.byAlias[alias] = spec
		}
	}
	return r, nil
}

// Get looks a report up by exact name or alias membership.
func (r *Registry) Get(name string) (*ReportSpec, bool) {
	if spec, ok := r.byName[name]; ok {
		return spec, true
	}
	spec, ok := r.byAlias[name]
	return spec, ok
}

// ListFilter narrows List output. Zero value matches everything.
type ListFilter struct {
	// Family restricts to an exact family label (case-insensitive).
	Family string
	// Search is a case-insensitive substring matched against name,
	// description, and aliases.
	Search string
}

// List returns registered specs in declaration order, narrowed by the filter.
func (r *Registry) List(filter ListFilter) []*ReportSpec {
	var out []*ReportSpec
	for _, spec := range r.specs {
		if filter.Family != "" && !strings.EqualFold(spec.Family, filter.Family) {
			continue
		}
		if filter.Search != "" && !matchesSearch(spec, filter.Search) {
			continue
		}
		out = append(out, spec)
	}
	return out
}

// Names returns all primary report names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, spec := range r.specs {
		names[i] = spec.Name
	}
	return names
}

func matchesSearch(spec *ReportSpec, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(spec.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(spec.Description), needle) {
		return true
	}
	for _, alias := range spec.Aliases {
		if strings.Contains(strings.ToLower(alias), needle) {
			return true
		}
	}
	return false
}

// Resolution is the outcome of resolving a report name and kind. For
// KindAny requests Format is nil: the caller asked for metadata only.
type Resolution struct {
	Spec   *ReportSpec
	Format *Format
	// Kind is the canonicalized kind the format was matched on.
	Kind Kind
	// Requested is the kind as the caller asked for it.
	Requested Kind
}

// Resolve finds the format serving the requested kind for the named report.
// Tabular and form-like requests are canonicalized onto the structured-data
// format before matching. Failure modes: UnknownReportError when the name
// matches nothing, UnsupportedKindError (listing every advertised kind)
// when no format serves the kind.
func (r *Registry) Resolve(name string, kind Kind) (*Resolution, error) {
	spec, ok := r.Get(name)
	if !ok {
		return nil, &UnknownReportError{Name: name}
	}

	if kind == KindAny {
		return &Resolution{Spec: spec, Kind: KindAny, Requested: KindAny}, nil
	}

	canonical := kind.Canonical()
	for i := range spec.Formats {
		f := &spec.Formats[i]
		if f.Supports(canonical) {
			return &Resolution{Spec: spec, Format: f, Kind: canonical, Requested: kind}, nil
		}
	}
	return nil, &UnsupportedKindError{Name: spec.Name, Kind: kind, Available: spec.Kinds()}
}
