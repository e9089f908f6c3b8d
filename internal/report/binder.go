package report

import (
	"fmt"

	"formset/pkg/logging"
)

// BindPolicy controls how the binder treats absent required parameters.
type BindPolicy int

const (
	// PolicyFail makes binding fail with MissingParametersError.
	PolicyFail BindPolicy = iota
	// PolicyPrompt asks a Prompter for each missing value, in declaration order.
	PolicyPrompt
)

// Prompter supplies values for missing required parameters. Ask blocks until
// the user answers; the whole call is suspended while it does.
type Prompter interface {
	Ask(reportName, paramName string) (string, error)
}

// BindRequest carries everything Bind needs besides the action itself.
type BindRequest struct {
	// Report is the originating report name, injected as output_format_set.
	Report string
	// Kind is the requested output kind, injected as output_format.
	Kind Kind
	// Supplied is the caller's parameter mapping. Nil-valued entries count
	// as absent.
	Supplied map[string]interface{}
	// Policy selects Fail or Prompt handling for missing required parameters.
	Policy BindPolicy
	// Prompter is consulted under PolicyPrompt; required in that mode.
	Prompter Prompter
}

// Bind computes the merged parameter mapping for an action. Missing required
// parameters are those neither supplied non-nil by the caller nor fixed in
// the action's spec params. The final mapping layers, later sources winning:
// filtered caller parameters, then spec params, then the two control values.
// Optional parameters not supplied are omitted entirely, never null-filled.
func Bind(action Action, req BindRequest) (BoundCall, error) {
	supplied := make(map[string]interface{}, len(req.Supplied))
	for k, v := range req.Supplied {
		if v != nil {
			supplied[k] = v
		}
	}

	var missing []string
	for _, name := range action.RequiredParams {
		if _, ok := supplied[name]; ok {
			continue
		}
		if _, fixed := action.SpecParams[name]; fixed {
			continue
		}
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		switch req.Policy {
		case PolicyPrompt:
			if req.Prompter == nil {
				return nil, fmt.Errorf("prompt policy requested for report %q but no prompter configured", req.Report)
			}
			for _, name := range missing {
				value, err := req.Prompter.Ask(req.Report, name)
				if err != nil {
					return nil, fmt.Errorf("prompting for parameter %q: %w", name, err)
				}
				supplied[name] = value
			}
		default:
			return nil, &MissingParametersError{Report: req.Report, Missing: missing}
		}
	}

	bound := make(BoundCall, len(supplied)+len(action.SpecParams)+2)
	for _, name := range action.RequiredParams {
		if v, ok := supplied[name]; ok {
			bound[name] = v
		}
	}
	for _, name := range action.OptionalParams {
		if v, ok := supplied[name]; ok {
			bound[name] = v
		}
	}
	for k, v := range action.SpecParams {
		bound[k] = v
	}
	bound[ControlOutputFormat] = string(req.Kind)
	bound[ControlOutputFormatSet] = req.Report

	logging.Debug("binder", "Bound %d parameters for report %s (kind %s)", len(bound), req.Report, req.Kind)
	return bound, nil
}
