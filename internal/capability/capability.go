// Package capability implements the remote-data-fetching capabilities the
// dispatcher instantiates. Each capability is a one-shot client against the
// metadata service's view server: acquire a session token, invoke one named
// operation, release the session.
package capability

import (
	"context"
	"fmt"
)

// Credentials identify the remote metadata service and the caller. They are
// constructed once from process configuration and passed by value into every
// dispatch; nothing in this package reads the environment.
type Credentials struct {
	// Endpoint is the platform URL, e.g. https://localhost:9443.
	Endpoint string
	// ViewServer is the view server name requests are routed to.
	ViewServer string
	// User is the identity used to acquire the session token.
	User string
	// Secret is the user's secret.
	Secret string
}

// Capability is a remote-data-fetching object with named operations.
// Instances are single-use: one session, one invocation, then release.
type Capability interface {
	// Name is the capability's registered name.
	Name() string
	// AcquireSession obtains a bearer token for subsequent invocations.
	AcquireSession(ctx context.Context) error
	// Invoke calls the named operation with the bound parameter mapping and
	// returns the decoded response value.
	Invoke(ctx context.Context, operation string, params map[string]interface{}) (interface{}, error)
	// ReleaseSession invalidates the session token. Best effort: callers log
	// and ignore its failure so it never masks a primary error.
	ReleaseSession(ctx context.Context) error
}

// OperationNotFoundError indicates a capability has no such invokable
// operation.
type OperationNotFoundError struct {
	// Capability is the capability the lookup ran against.
	Capability string
	// Operation is the operation name that was requested.
	Operation string
}

func (e *OperationNotFoundError) Error() string {
	return fmt.Sprintf("capability %q has no operation %q", e.Capability, e.Operation)
}
