// Package toolserver exposes the report engine as an MCP tool server. A
// long-lived host accepts concurrent named-report requests; every execution
// is offloaded to a bounded worker pool so the accept loop never blocks on a
// slow remote operation.
package toolserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"formset/internal/capability"
	"formset/internal/config"
	"formset/internal/dispatch"
	"formset/internal/engine"
	"formset/internal/report"
	"formset/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// Server hosts the run_report, list_reports and describe_report tools.
type Server struct {
	cfg     config.Server
	version string

	store      *report.Store
	dispatcher *dispatch.Dispatcher
	creds      capability.Credentials

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer

	// workers bounds the number of concurrent report executions.
	workers *errgroup.Group

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	started    bool
}

// NewServer creates an unstarted tool server.
func NewServer(cfg config.Server, creds capability.Credentials, store *report.Store, version string) *Server {
	workers := &errgroup.Group{}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	workers.SetLimit(maxWorkers)

	s := &Server{
		cfg:        cfg,
		version:    version,
		store:      store,
		dispatcher: dispatch.New(),
		creds:      creds,
		workers:    workers,
	}

	s.mcpServer = server.NewMCPServer(
		"formset",
		version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// registerTools declares the three tools of the execution and introspection
// surfaces.
func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_report",
		mcp.WithDescription("Execute a registered report against the metadata service and return the normalized result"),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report name or alias"),
		),
		mcp.WithString("kind",
			mcp.Description("Output kind: ALL, DICT, JSON, LIST, TABLE, FORM, REPORT, MERMAID or HTML (default: DICT)"),
		),
		mcp.WithObject("params",
			mcp.Description("Report parameters as a flat JSON object (e.g. {\"search_string\": \"*\"})"),
		),
	)
	s.mcpServer.AddTool(runTool, s.handleRunReport)

	listTool := mcp.NewTool("list_reports",
		mcp.WithDescription("List registered reports with their families, descriptions and supported output kinds"),
		mcp.WithString("family",
			mcp.Description("Restrict to one report family"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring matched against names, descriptions and aliases"),
		),
	)
	s.mcpServer.AddTool(listTool, s.handleListReports)

	describeTool := mcp.NewTool("describe_report",
		mcp.WithDescription("Describe one report: formats, output kinds and parameter contract"),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report name or alias"),
		),
	)
	s.mcpServer.AddTool(describeTool, s.handleDescribeReport)
}

// engine builds an engine over the current registry snapshot. A fresh
// snapshot per call means a definition reload never disturbs an in-flight
// execution.
func (s *Server) engine() *engine.Engine {
	return engine.New(s.store.Registry(), s.dispatcher, s.creds)
}

// Start runs the configured transport. Stdio blocks until the client closes
// the stream; streamable HTTP returns after the listener is up.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("tool server already started")
	}
	s.started = true
	ctx, s.cancelFunc = context.WithCancel(ctx)
	s.mu.Unlock()

	// Watch report definitions for live reload while serving.
	go func() {
		if err := s.store.Watch(ctx); err != nil && ctx.Err() == nil {
			logging.Error("toolserver", err, "Report definition watcher stopped")
		}
	}()

	switch s.cfg.Transport {
	case config.TransportStdio:
		logging.Info("toolserver", "Starting MCP tool server with stdio transport")
		return server.NewStdioServer(s.mcpServer).Listen(ctx, os.Stdin, os.Stdout)

	case config.TransportStreamableHTTP:
		fallthrough
	default:
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
		logging.Info("toolserver", "Starting MCP tool server with streamable-http transport on %s", addr)
		s.httpServer = server.NewStreamableHTTPServer(s.mcpServer)
		go func() {
			if err := s.httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("toolserver", err, "Streamable HTTP server error")
			}
		}()
		return nil
	}
}

// Stop shuts the transport down and waits for in-flight executions.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	return s.workers.Wait()
}
