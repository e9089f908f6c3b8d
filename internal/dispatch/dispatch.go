// Package dispatch resolves an action's "Capability.operation" reference to
// a concrete remote capability and drives the acquire/invoke/release cycle
// around the remote call.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"formset/internal/capability"
	"formset/internal/report"
	"formset/pkg/logging"

	"github.com/google/uuid"
)

// RemoteOperationError wraps a failure raised by the remote operation
// itself. It is propagated unchanged after session release; the engine never
// retries.
type RemoteOperationError struct {
	// Function is the two-part reference that was dispatched.
	Function string
	// Err is the underlying failure.
	Err error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("remote operation %s failed: %v", e.Function, e.Err)
}

func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}

// Dispatcher holds the static capability registry. The registry maps
// capability names to factory closures; it is fixed at construction and safe
// for concurrent use. Capability instances themselves are one-shot: a fresh
// instance per dispatch, never pooled, so no state leaks across calls.
type Dispatcher struct {
	factories map[string]capability.Factory
	fallback  capability.Factory
}

// New creates a dispatcher with the full built-in capability registry.
func New() *Dispatcher {
	return NewWithFactories(map[string]capability.Factory{
		"CollectionManager": capability.NewCollectionManager,
		"GlossaryManager":   capability.NewGlossaryManager,
		"ProductManager":    capability.NewProductManager,
		"GovernanceOfficer": capability.NewGovernanceOfficer,
		"SolutionArchitect": capability.NewSolutionArchitect,
	}, capability.NewGeneric)
}

// NewWithFactories creates a dispatcher over an explicit capability registry.
// The fallback serves capability names outside the registry.
func NewWithFactories(factories map[string]capability.Factory, fallback capability.Factory) *Dispatcher {
	return &Dispatcher{factories: factories, fallback: fallback}
}

// CapabilityNames returns the registered capability names, for diagnostics.
func (d *Dispatcher) CapabilityNames() []string {
	names := make([]string, 0, len(d.factories))
	for name := range d.factories {
		names = append(names, name)
	}
	return names
}

// Dispatch executes one remote operation. The session is acquired before the
// invocation and released on every exit path - success, business error, or
// unexpected failure. Release failures are logged and swallowed so they
// never mask the primary outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, action report.Action, bound report.BoundCall, creds capability.Credentials) (interface{}, error) {
	capName, opName, err := splitFunction(action.Function)
	if err != nil {
		return nil, err
	}

	dispatchID := uuid.New().String()

	factory, ok := d.factories[capName]
	if !ok {
		// Explicit, observable fallback: never substitute silently.
		logging.Warn("dispatch", "Unknown capability %q, falling back to generic capability (dispatch %s)", capName, dispatchID)
		factory = d.fallback
	}
	inst := factory(creds)

	logging.Debug("dispatch", "Dispatch %s: %s.%s via %s", dispatchID, capName, opName, inst.Name())

	if err := inst.AcquireSession(ctx); err != nil {
		return nil, fmt.Errorf("acquiring session for %s: %w", action.Function, err)
	}
	defer func() {
		// Best effort only. Use a background context: the call's context may
		// already be done and the token should still be invalidated.
		if err := inst.ReleaseSession(context.WithoutCancel(ctx)); err != nil {
			logging.Warn("dispatch", "Session release failed for dispatch %s: %v", dispatchID, err)
		}
	}()

	raw, err := inst.Invoke(ctx, opName, bound)
	if err != nil {
		var notFound *capability.OperationNotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, &RemoteOperationError{Function: action.Function, Err: err}
	}
	return raw, nil
}

// splitFunction parses a two-part "Capability.operation" reference.
func splitFunction(function string) (capName, opName string, err error) {
	capName, opName, ok := strings.Cut(function, ".")
	if !ok || capName == "" || opName == "" {
		return "", "", fmt.Errorf("invalid function reference %q: want Capability.operation", function)
	}
	return capName, opName, nil
}
