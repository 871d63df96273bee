package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RafaelJohn9/rigorq"
	"github.com/RafaelJohn9/rigorq/formatter"
	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

var (
	checks        []string
	fix           bool
	lineLength    int
	maxDocLength  int
	noPeriod      bool
	skipPrivate   bool
	jsonOutput    bool
	outPath       string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Run the configured quality checks",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "error: Please provide file or directory paths")
			os.Exit(2)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cfg := rigorq.DefaultConfig()
		cfg.Checks = checks
		cfg.Fix = fix
		cfg.LineLength = lineLength
		cfg.MaxDocLength = maxDocLength
		cfg.RequirePeriod = !noPeriod
		cfg.SkipPrivate = skipPrivate
		cfg.Quiet = quiet

		exitCode := 0
		for _, target := range args {
			validateTarget(target)
			result, err := rigorq.Run(ctx, logger, target, cfg)
			if err != nil {
				logger.Error("failed to run checks", zap.String("target", target), zap.Error(err))
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(2)
			}
			report(result)
			if code := result.ExitCode(); code > exitCode {
				exitCode = code
			}
		}
		os.Exit(exitCode)
	},
}

func init() {
	checkCmd.Flags().StringSliceVar(&checks, "checks", []string{"ruff", "docstring"}, "Checks to run")
	checkCmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix violations where mechanically possible (via ruff)")
	checkCmd.Flags().IntVar(&lineLength, "line-length", 79, "Maximum code line length (ruff)")
	checkCmd.Flags().IntVar(&maxDocLength, "max-doc-length", 72, "Maximum docstring line length")
	checkCmd.Flags().BoolVar(&noPeriod, "no-require-period", false, "Do not require summaries to end with a period")
	checkCmd.Flags().BoolVar(&skipPrivate, "skip-private", false, "Skip underscore-prefixed items (not recommended)")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output violations in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

// validateTarget fails fast on paths the engine could never process.
func validateTarget(target string) {
	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: Path does not exist: %s\n", target)
		os.Exit(2)
	}
	if !info.IsDir() && filepath.Ext(target) != ".py" {
		fmt.Fprintf(os.Stderr, "error: Not a Python file: %s\n", target)
		os.Exit(2)
	}
}

func report(result *rigorq.Result) {
	if jsonOutput {
		reportJSON(result.Violations)
		return
	}

	fmt.Print(formatter.Format(result.Violations))
	fmt.Fprint(os.Stderr, formatter.FormatErrors(result.Errors))
	if !quiet {
		fmt.Fprint(os.Stderr, formatter.FormatSummary(result.Violations, len(result.Errors)))
	}
}

func reportJSON(violations []tt.Violation) {
	d, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		logger.Error("failed to marshal violations", zap.Error(err))
		os.Exit(2)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, d, 0o644); err != nil {
			logger.Error("failed to write output file", zap.String("path", outPath), zap.Error(err))
			os.Exit(2)
		}
		return
	}
	fmt.Println(string(d))
}
