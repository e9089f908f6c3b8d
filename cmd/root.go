package cmd

import (
	"errors"
	"os"

	"formset/internal/report"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. These follow common conventions so scripts
// can distinguish usage-class failures from execution failures.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, remote operation failed).
	ExitCodeError = 1
	// ExitCodeUsage indicates an unknown report or unsupported output kind.
	ExitCodeUsage = 2
	// ExitCodeMissingParams indicates required report parameters were absent.
	ExitCodeMissingParams = 3
)

// rootCmd represents the base command for the formset application.
var rootCmd = &cobra.Command{
	Use:   "formset",
	Short: "Run registered reports against a metadata catalog",
	Long: `formset executes named, registered reports ("format sets") against a
remote metadata catalog service and renders the result as structured data,
interactive tables, or narrative markdown/HTML documents.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "formset version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types onto semantic exit codes.
func getExitCode(err error) int {
	var unknownReport *report.UnknownReportError
	if errors.As(err, &unknownReport) {
		return ExitCodeUsage
	}

	var unsupportedKind *report.UnsupportedKindError
	if errors.As(err, &unsupportedKind) {
		return ExitCodeUsage
	}

	var missingParams *report.MissingParametersError
	if errors.As(err, &missingParams) {
		return ExitCodeMissingParams
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
