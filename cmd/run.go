package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"formset/internal/dispatch"
	"formset/internal/engine"
	"formset/internal/prompt"
	"formset/internal/report"
	"formset/internal/sink"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		conn        connectionFlags
		configPath  string
		logLevel    string
		reportDir   string
		kindToken   string
		paramPairs  []string
		paramsJSON  string
		interactive bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "run <report>",
		Short: "Execute a registered report",
		Long: `Execute a registered report against the configured catalog endpoint.

Tabular kinds render on the terminal, narrative kinds are written to the
output directory, and structured kinds print as JSON.

Parameters come from repeated --param key=value flags or a single --params
JSON object; --param values win on conflict.`,
		Example: `  formset run Glossary-Terms --param search_string=Sustainability
  formset run Digital-Products --kind REPORT --params '{"search_string": "*"}'
  formset run Collections --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, logLevel, &conn)
			if err != nil {
				return err
			}

			kind, ok := report.ParseKind(kindToken)
			if !ok {
				return fmt.Errorf("unknown output kind %q (valid kinds: %s)", kindToken, strings.Join(kindTokens(), ", "))
			}
			if kind == report.KindAny {
				return fmt.Errorf("kind ANY is for introspection; use 'formset describe' instead")
			}

			params, err := parseParams(paramsJSON, paramPairs)
			if err != nil {
				return err
			}

			registry, err := buildRegistry(cfg, reportDir)
			if err != nil {
				return err
			}

			req := engine.Request{
				Report: args[0],
				Kind:   kind,
				Params: params,
				Policy: report.PolicyFail,
			}
			if interactive {
				req.Policy = report.PolicyPrompt
				req.Prompter = prompt.New()
			}

			eng := engine.New(registry, dispatch.New(), credentials(cfg))

			// The spinner and the readline prompt both own the terminal,
			// so interactive runs skip the spinner.
			out, err := eng.RunWithProgress(cmd.Context(), req, quiet || interactive)
			if err != nil {
				var unknown *report.UnknownReportError
				var unsupported *report.UnsupportedKindError
				var missing *report.MissingParametersError
				switch {
				case errors.As(err, &unknown):
					fmt.Fprintln(cmd.ErrOrStderr(), "Run 'formset list' to see available reports.")
				case errors.As(err, &unsupported), errors.As(err, &missing):
					fmt.Fprintf(cmd.ErrOrStderr(), "Run 'formset describe %s' to see its formats and parameters.\n", args[0])
				}
				return err
			}

			files := sink.NewFileWriter(cfg.Output.Root, cfg.Output.Outbox)
			_, err = eng.Deliver(cmd.OutOrStdout(), out, files)
			return err
		},
	}

	conn.register(cmd)
	cmd.Flags().StringVar(&configPath, "config", "", "Directory containing config.yaml")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory of additional report definitions")
	cmd.Flags().StringVar(&kindToken, "kind", string(report.KindTable), "Output kind (TABLE, LIST, DICT, JSON, FORM, REPORT, MERMAID, HTML, ALL)")
	cmd.Flags().StringArrayVar(&paramPairs, "param", nil, "Report parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&paramsJSON, "params", "", "Report parameters as a JSON object")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for missing required parameters")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the progress spinner")

	return cmd
}

// parseParams merges the JSON blob with the key=value pairs. Pairs are
// applied last so they override the blob on conflict.
func parseParams(blob string, pairs []string) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	if blob != "" {
		if err := json.Unmarshal([]byte(blob), &params); err != nil {
			return nil, fmt.Errorf("invalid --params JSON: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func kindTokens() []string {
	tokens := make([]string, len(report.Kinds))
	for i, k := range report.Kinds {
		tokens[i] = string(k)
	}
	return tokens
}
