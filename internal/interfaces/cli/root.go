// Package cli implements the procurelens command-line interface. The CLI runs
// the analysis engine in-process, so a contract can be scored without any
// backing services; pointing it at an AI endpoint is optional.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type rootOptions struct {
	logLevel string
	output   string
}

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "procurelens",
		Short: "ProcureLens CLI - multi-lens contract risk analysis",
		Long: "ProcureLens analyzes procurement documents (statements of work, purchase\n" +
			"orders, agreements) through five independent risk lenses and aggregates\n" +
			"them into an overall risk assessment with prioritized recommendations.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.output, "output", "o", "summary", "output format (summary, json)")

	cmd.AddCommand(newAnalyzeCmd(opts))
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}

func newCLILogger(level string) (logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Level:       level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
}
