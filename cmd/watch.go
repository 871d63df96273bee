package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RafaelJohn9/rigorq"
	"github.com/RafaelJohn9/rigorq/formatter"
	"github.com/RafaelJohn9/rigorq/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-run checks whenever a Python file changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "error: Please provide directory paths to watch")
			os.Exit(2)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := rigorq.DefaultConfig()
		cfg.Quiet = true

		engine, err := internal.NewEngine(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}

		watcher, err := internal.NewWatcher(engine, logger, func(result *rigorq.Result) {
			fmt.Print(formatter.Format(result.Violations))
			fmt.Fprint(os.Stderr, formatter.FormatErrors(result.Errors))
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}

		if err := watcher.Start(ctx, args); err != nil {
			logger.Error("failed to start watching", zap.Error(err))
			os.Exit(2)
		}
		defer watcher.Stop()

		fmt.Fprintln(os.Stderr, "watching for changes... (ctrl-c to stop)")
		<-ctx.Done()
	},
}
