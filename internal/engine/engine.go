// Package engine wires the report pipeline together: resolve the report and
// format, bind parameters, dispatch the remote operation, and normalize the
// result. It is the execution surface both the CLI and the tool server call.
package engine

import (
	"context"
	"fmt"
	"time"

	"formset/internal/capability"
	"formset/internal/dispatch"
	"formset/internal/normalize"
	"formset/internal/report"
	"formset/pkg/logging"

	"github.com/briandowns/spinner"
)

// Request describes one report execution.
type Request struct {
	// Report is the report name or alias.
	Report string
	// Kind is the requested output kind.
	Kind report.Kind
	// Params is the caller's flat parameter mapping.
	Params map[string]interface{}
	// Policy selects missing-parameter handling.
	Policy report.BindPolicy
	// Prompter is consulted under the prompt policy.
	Prompter report.Prompter
}

// Outcome bundles the normalized result with the resolution it came from.
type Outcome struct {
	Spec   *report.ReportSpec
	Format *report.Format
	// Kind is the kind as requested (pre-canonicalization); it drives
	// rendering and file naming.
	Kind   report.Kind
	Result normalize.Result
}

// Engine executes reports against one configured remote endpoint. Engines
// are safe for concurrent use: the registry snapshot is immutable, the
// dispatcher is stateless, and every run owns its own capability instance.
type Engine struct {
	registry   *report.Registry
	dispatcher *dispatch.Dispatcher
	creds      capability.Credentials
}

// New creates an engine over an immutable registry snapshot.
func New(registry *report.Registry, dispatcher *dispatch.Dispatcher, creds capability.Credentials) *Engine {
	return &Engine{registry: registry, dispatcher: dispatcher, creds: creds}
}

// Credentials returns the endpoint identity this engine runs against.
func (e *Engine) Credentials() capability.Credentials {
	return e.creds
}

// Run executes one report end to end. Resolution and binding failures are
// raised before any remote call is attempted; dispatch failures surface
// after the guaranteed session release.
func (e *Engine) Run(ctx context.Context, req Request) (*Outcome, error) {
	if req.Kind == report.KindAny {
		return nil, fmt.Errorf("kind ANY is for introspection; request a concrete output kind")
	}

	res, err := e.registry.Resolve(req.Report, req.Kind)
	if err != nil {
		return nil, err
	}

	bound, err := report.Bind(res.Format.Action, report.BindRequest{
		Report:   res.Spec.Name,
		Kind:     req.Kind,
		Supplied: req.Params,
		Policy:   req.Policy,
		Prompter: req.Prompter,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := e.dispatcher.Dispatch(ctx, res.Format.Action, bound, e.creds)
	if err != nil {
		return nil, err
	}
	logging.Debug("engine", "Report %s (%s) dispatched in %s", res.Spec.Name, req.Kind, time.Since(start).Round(time.Millisecond))

	result := normalize.Normalize(raw, req.Kind, res.Spec.Heading, res.Spec.Description)
	return &Outcome{Spec: res.Spec, Format: res.Format, Kind: req.Kind, Result: result}, nil
}

// RunWithProgress wraps Run with a terminal spinner. Quiet mode skips the
// spinner entirely.
func (e *Engine) RunWithProgress(ctx context.Context, req Request, quiet bool) (*Outcome, error) {
	if quiet {
		return e.Run(ctx, req)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Running report %s...", req.Report)
	s.Start()
	defer s.Stop()

	return e.Run(ctx, req)
}

// Summary is one introspection entry.
type Summary struct {
	Name        string        `json:"name"`
	Family      string        `json:"family,omitempty"`
	Description string        `json:"description,omitempty"`
	Aliases     []string      `json:"aliases,omitempty"`
	Kinds       []report.Kind `json:"kinds"`
}

// List returns summaries of registered reports, narrowed by the filter.
func (e *Engine) List(filter report.ListFilter) []Summary {
	specs := e.registry.List(filter)
	summaries := make([]Summary, len(specs))
	for i, spec := range specs {
		summaries[i] = Summary{
			Name:        spec.Name,
			Family:      spec.Family,
			Description: spec.Description,
			Aliases:     spec.Aliases,
			Kinds:       spec.Kinds(),
		}
	}
	return summaries
}

// Describe returns the full spec metadata for one report (kind ANY lookup).
func (e *Engine) Describe(name string) (*report.ReportSpec, error) {
	res, err := e.registry.Resolve(name, report.KindAny)
	if err != nil {
		return nil, err
	}
	return res.Spec, nil
}
