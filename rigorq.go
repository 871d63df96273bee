// Package rigorq is a style and quality gate for Python source: it
// delegates mechanical PEP 8 rules to ruff and validates docstring
// content (line length, summary lines, NumPy-style parameter/return
// sections) with its own syntax-aware checks.
package rigorq

import (
	"context"

	"go.uber.org/zap"

	"github.com/RafaelJohn9/rigorq/internal"
	"github.com/RafaelJohn9/rigorq/internal/docstring"
	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

const Version = "0.4.1"

// Config re-exports the engine configuration.
type Config = internal.Config

// Result re-exports the aggregated run result.
type Result = internal.Result

// DefaultConfig returns the documented default stance: all checks on,
// every docstring validated.
func DefaultConfig() Config { return internal.DefaultConfig() }

// Run validates target with the configured checks.
func Run(ctx context.Context, logger *zap.Logger, target string, cfg Config) (*Result, error) {
	engine, err := internal.NewEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx, target), nil
}

// ValidateDocstrings runs only the docstring checks over a single
// file with the default validator set.
func ValidateDocstrings(path string) ([]tt.Violation, error) {
	return docstring.Validate(path, nil, false)
}
