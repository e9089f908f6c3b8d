package toolserver

import (
	"context"
	"encoding/json"
	"fmt"

	"formset/internal/engine"
	"formset/internal/normalize"
	"formset/internal/report"
	"formset/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolResult is the serialized normalized result returned to tool callers.
// The tagged union is preserved: callers switch on type, never on the remote
// operation's raw shape.
type toolResult struct {
	Report  string      `json:"report"`
	Kind    string      `json:"kind"`
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Mime    string      `json:"mime,omitempty"`
	Content string      `json:"content,omitempty"`
	Raw     interface{} `json:"raw,omitempty"`
}

func (s *Server) handleRunReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, _ := args["report"].(string)
	if name == "" {
		return mcp.NewToolResultError("report argument is required"), nil
	}

	kindToken, _ := args["kind"].(string)
	if kindToken == "" {
		kindToken = string(report.KindDict)
	}
	kind, ok := report.ParseKind(kindToken)
	if !ok || kind == report.KindAny {
		return mcp.NewToolResultError(fmt.Sprintf("invalid output kind %q", kindToken)), nil
	}

	var params map[string]interface{}
	if raw := args["params"]; raw != nil {
		params, ok = raw.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("params must be a JSON object"), nil
		}
	}

	// Offload the blocking execution to the worker pool. The prompt policy
	// is never used here: a tool host has no terminal to ask on.
	type runOutcome struct {
		out *engine.Outcome
		err error
	}
	ch := make(chan runOutcome, 1)
	scheduled := s.workers.TryGo(func() error {
		out, err := s.engine().Run(ctx, engine.Request{
			Report: name,
			Kind:   kind,
			Params: params,
			Policy: report.PolicyFail,
		})
		ch <- runOutcome{out: out, err: err}
		return nil
	})
	if !scheduled {
		return mcp.NewToolResultError("server is at capacity, retry later"), nil
	}

	select {
	case <-ctx.Done():
		// The abandoned execution finishes on its worker; its result is
		// discarded (no mid-dispatch cancellation point exists).
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			logging.Warn("toolserver", "run_report %s (%s) failed: %v", name, kind, r.err)
			return mcp.NewToolResultError(r.err.Error()), nil
		}
		return jsonResult(serializeOutcome(r.out))
	}
}

func (s *Server) handleListReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	family, _ := args["family"].(string)
	search, _ := args["search"].(string)

	summaries := s.engine().List(report.ListFilter{Family: family, Search: search})
	return jsonResult(summaries)
}

func (s *Server) handleDescribeReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := request.GetArguments()["report"].(string)
	if name == "" {
		return mcp.NewToolResultError("report argument is required"), nil
	}

	spec, err := s.engine().Describe(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(spec)
}

func serializeOutcome(out *engine.Outcome) toolResult {
	result := toolResult{
		Report: out.Spec.Name,
		Kind:   string(out.Kind),
		Type:   out.Result.Type.String(),
	}
	switch out.Result.Type {
	case normalize.Structured:
		result.Data = out.Result.Data
	case normalize.Text:
		result.Mime = out.Result.Mime
		result.Content = out.Result.Content
	case normalize.Unknown:
		result.Raw = out.Result.Raw
	}
	return result
}

func jsonResult(value interface{}) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
