package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RafaelJohn9/rigorq"
)

var (
	timeout time.Duration
	quiet   bool
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rigorq [paths...]",
	Short: "rigorq - mechanical precision for Python quality gates",
	Long: `rigorq enforces all mechanically checkable PEP 8 and PEP 257 rules:
ruff covers the style surface, and a syntax-aware validator checks true
docstrings for line length, summary lines, and strict NumPy-style
parameter/return sections.

Exit codes:
  0 = All checks passed
  1 = Style violations found
  2 = Runtime errors (missing ruff, invalid paths, etc.)`,
	Version:          rigorq.Version,
	TraverseChildren: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// `rigorq path...` behaves like the check subcommand.
		checkCmd.Run(checkCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func initLogger() {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		logger = zap.NewNop()
	}
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress summaries and progress (CI/CD mode)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}
