package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formset/internal/config"
	"formset/internal/report"
	"formset/internal/toolserver"
	"formset/pkg/logging"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		conn       connectionFlags
		configPath string
		logLevel   string
		reportDir  string
		transport  string
		host       string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the long-lived report tool server",
		Long: `Run the report engine as a long-lived tool server. Clients invoke the
run_report, list_reports, and describe_report tools over the selected
transport.

Report definition files in the report directory are watched and reloaded
on change without a restart.`,
		Example: `  formset serve
  formset serve --transport stdio
  formset serve --port 9090 --report-dir ./reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, logLevel, &conn)
			if err != nil {
				return err
			}
			if reportDir != "" {
				cfg.Server.ReportDir = reportDir
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			store, err := report.NewStore(cfg.Server.ReportDir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := toolserver.NewServer(cfg.Server, credentials(cfg), store, GetVersion())
			if err := server.Start(ctx); err != nil {
				return err
			}

			// The stdio transport blocks inside Start until the client
			// closes the stream; streamable HTTP serves in the background.
			if cfg.Server.Transport != config.TransportStdio {
				<-ctx.Done()
				logging.Info("serve", "Shutdown signal received")
			}

			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Stop(stopCtx)
		},
	}

	conn.register(cmd)
	cmd.Flags().StringVar(&configPath, "config", "", "Directory containing config.yaml")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory of report definitions to serve and watch")
	cmd.Flags().StringVar(&transport, "transport", "", "Transport (streamable-http, stdio)")
	cmd.Flags().StringVar(&host, "host", "", "Listen host for the streamable-http transport")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port for the streamable-http transport")

	return cmd
}
