package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"formset/internal/dispatch"
	"formset/internal/engine"
	"formset/internal/report"
	"formset/internal/sink"
	"formset/internal/tabular"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newListCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		reportDir  string
		family     string
		search     string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered reports",
		Long: `List the registered reports and the output kinds each one supports.

The listing can be narrowed to a family or to reports whose name or
description matches a search string.`,
		Example: `  formset list
  formset list --family Glossary
  formset list --search product --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, logLevel, nil)
			if err != nil {
				return err
			}

			registry, err := buildRegistry(cfg, reportDir)
			if err != nil {
				return err
			}

			eng := engine.New(registry, dispatch.New(), credentials(cfg))
			summaries := eng.List(report.ListFilter{Family: family, Search: search})

			w := cmd.OutOrStdout()
			switch output {
			case "json":
				encoded, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(encoded))
			case "yaml":
				encoded, err := yaml.Marshal(summaries)
				if err != nil {
					return err
				}
				fmt.Fprint(w, string(encoded))
			case "table":
				if len(summaries) == 0 {
					fmt.Fprintln(w, "No reports registered")
					return nil
				}
				rows := make([]tabular.Row, len(summaries))
				for i, s := range summaries {
					rows[i] = tabular.Row{
						"name":        s.Name,
						"family":      s.Family,
						"kinds":       joinKinds(s.Kinds),
						"description": s.Description,
					}
				}
				columns := []report.Column{
					{Key: "name", Label: "Name"},
					{Key: "family", Label: "Family"},
					{Key: "kinds", Label: "Kinds"},
					{Key: "description", Label: "Description"},
				}
				sink.RenderTable(w, rows, columns, sink.TableOptions{
					Title:       "Registered reports",
					Interactive: sink.DetectInteractive(w),
				})
			default:
				return fmt.Errorf("unknown output format %q (valid: table, json, yaml)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Directory containing config.yaml")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory of additional report definitions")
	cmd.Flags().StringVar(&family, "family", "", "Only list reports in this family")
	cmd.Flags().StringVar(&search, "search", "", "Only list reports matching this string")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func joinKinds(kinds []report.Kind) string {
	tokens := make([]string, len(kinds))
	for i, k := range kinds {
		tokens[i] = string(k)
	}
	return strings.Join(tokens, ", ")
}
