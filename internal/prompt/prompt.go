// Package prompt implements the parameter prompter used by the CLI's
// interactive binding mode. The service shape never prompts; its binder
// always runs under the fail policy.
package prompt

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// ReadlinePrompter asks for parameter values on the controlling terminal.
// Each Ask call blocks the whole report execution until answered.
type ReadlinePrompter struct{}

// New creates a terminal prompter.
func New() *ReadlinePrompter {
	return &ReadlinePrompter{}
}

// Ask requests a single value for a missing required parameter.
func (p *ReadlinePrompter) Ask(reportName, paramName string) (string, error) {
	rl, err := readline.New(fmt.Sprintf("%s · %s: ", reportName, paramName))
	if err != nil {
		return "", fmt.Errorf("failed to open terminal prompt: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", fmt.Errorf("prompt for %q interrupted", paramName)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
