package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"formset/internal/dispatch"
	"formset/internal/engine"
	"formset/internal/report"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newDescribeCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		reportDir  string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "describe <report>",
		Short: "Show the full definition of a report",
		Long: `Show the full definition of a registered report: its formats, the output
kinds each format serves, and the parameters its remote operation takes.

The report may be named by its primary name or any alias.`,
		Example: `  formset describe Glossary-Terms
  formset describe Terms --output yaml`,
		Args: cobra.ExactArgs(1),
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
			spec, err := eng.Describe(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case "json":
				encoded, err := json.MarshalIndent(spec, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(encoded))
			case "yaml":
				encoded, err := yaml.Marshal(spec)
				if err != nil {
					return err
				}
				fmt.Fprint(w, string(encoded))
			case "text":
				printSpec(w, spec)
			default:
				return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Directory containing config.yaml")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory of additional report definitions")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func printSpec(w io.Writer, spec *report.ReportSpec) {
	fmt.Fprintf(w, "Report: %s\n", spec.Name)
	if spec.Family != "" {
		fmt.Fprintf(w, "Family: %s\n", spec.Family)
	}
	if len(spec.Aliases) > 0 {
		fmt.Fprintf(w, "Aliases: %s\n", strings.Join(spec.Aliases, ", "))
	}
	if spec.Heading != "" {
		fmt.Fprintf(w, "Heading: %s\n", spec.Heading)
	}
	if spec.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", spec.Description)
	}
	fmt.Fprintf(w, "Kinds: %s\n", joinKinds(spec.Kinds()))

	for i, format := range spec.Formats {
		fmt.Fprintf(w, "\nFormat %d (%s)\n", i+1, joinKinds(format.Types))
		fmt.Fprintf(w, "  Operation: %s\n", format.Action.Function)
		if len(format.Action.RequiredParams) > 0 {
			fmt.Fprintf(w, "  Required parameters: %s\n", strings.Join(format.Action.RequiredParams, ", "))
		}
		if len(format.Action.OptionalParams) > 0 {
			fmt.Fprintf(w, "  Optional parameters: %s\n", strings.Join(format.Action.OptionalParams, ", "))
		}
		if len(format.Action.SpecParams) > 0 {
			fixed := make([]string, 0, len(format.Action.SpecParams))
			for key, value := range format.Action.SpecParams {
				fixed = append(fixed, fmt.Sprintf("%s=%v", key, value))
			}
			sort.Strings(fixed)
			fmt.Fprintf(w, "  Fixed parameters: %s\n", strings.Join(fixed, ", "))
		}
		if len(format.Columns) > 0 {
			labels := make([]string, len(format.Columns))
			for j, col := range format.Columns {
				labels[j] = col.Label
				if labels[j] == "" {
					labels[j] = col.Key
				}
			}
			fmt.Fprintf(w, "  Columns: %s\n", strings.Join(labels, ", "))
		}
	}
}
