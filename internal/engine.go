package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/RafaelJohn9/rigorq/internal/docstring"
	"github.com/RafaelJohn9/rigorq/internal/ruff"
	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

// Config carries the flag-driven settings for one validation run.
type Config struct {
	// Checks selects which checks run, in order. Empty selects all.
	Checks []string

	// Fix lets ruff rewrite auto-fixable style violations first.
	Fix bool

	// LineLength is the ruff limit for code lines.
	LineLength int

	// MaxDocLength is the docstring line limit.
	MaxDocLength int

	// RequirePeriod enforces summary period termination.
	RequirePeriod bool

	// SkipPrivate skips underscore-prefixed (non-dunder) items. All
	// items are validated by default.
	SkipPrivate bool

	// Quiet suppresses progress display.
	Quiet bool
}

// DefaultConfig returns the stance the tool documents: every check on,
// every docstring validated.
func DefaultConfig() Config {
	return Config{
		Checks:        []string{"ruff", "docstring"},
		LineLength:    ruff.DefaultLineLength,
		MaxDocLength:  docstring.DefaultMaxLength,
		RequirePeriod: true,
	}
}

// Check runs one kind of validation over a set of files, returning
// style violations and the runtime errors it absorbed along the way.
type Check interface {
	Name() string
	Run(ctx context.Context, files []string) ([]tt.Violation, []string)
}

type checkConstructor func(cfg Config, logger *zap.Logger) Check

var allCheckConstructors = map[string]checkConstructor{
	"ruff":      newRuffCheck,
	"docstring": newDocstringCheck,
}

// Result aggregates a run's findings. Violations are style findings;
// Errors are runtime failures (unreadable file, missing ruff binary)
// reported separately so the caller can tell the two apart.
type Result struct {
	Violations []tt.Violation
	Errors     []string
}

// ExitCode maps a result onto Unix conventions: 0 clean, 1 style
// violations, 2 runtime errors.
func (r *Result) ExitCode() int {
	switch {
	case len(r.Errors) > 0:
		return 2
	case len(r.Violations) > 0:
		return 1
	default:
		return 0
	}
}

// Engine sequences the configured checks over discovered files.
type Engine struct {
	cfg    Config
	checks []Check
	logger *zap.Logger
}

// NewEngine creates an engine honoring the configured check selection.
// Unknown check names are rejected rather than silently dropped.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	names := cfg.Checks
	if len(names) == 0 {
		names = DefaultConfig().Checks
	}

	engine := &Engine{cfg: cfg, logger: logger}
	for _, name := range names {
		constructor, ok := allCheckConstructors[name]
		if !ok {
			return nil, fmt.Errorf("unknown check: %q", name)
		}
		engine.checks = append(engine.checks, constructor(cfg, logger))
	}
	return engine, nil
}

// Run validates target (a file or directory) with every configured
// check and returns the aggregated result. Runtime failures never
// abort the run; they are collected into the result.
func (e *Engine) Run(ctx context.Context, target string) *Result {
	result := &Result{}

	files, err := FindPythonFiles(target)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(files) == 0 {
		e.logger.Info("no Python files found", zap.String("target", target))
		return result
	}
	e.logger.Debug("discovered files", zap.Int("count", len(files)))

	if e.cfg.Fix && e.hasCheck("ruff") {
		if _, err := ruff.Check(ctx, files, true, e.cfg.LineLength); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("auto-fix failed: %v", err))
		}
	}

	for _, check := range e.checks {
		violations, errs := check.Run(ctx, files)
		result.Violations = append(result.Violations, violations...)
		result.Errors = append(result.Errors, errs...)
	}

	return result
}

// RunFile validates a single file, used by watch mode.
func (e *Engine) RunFile(ctx context.Context, path string) *Result {
	result := &Result{}
	for _, check := range e.checks {
		violations, errs := check.Run(ctx, []string{path})
		result.Violations = append(result.Violations, violations...)
		result.Errors = append(result.Errors, errs...)
	}
	return result
}

func (e *Engine) hasCheck(name string) bool {
	for _, check := range e.checks {
		if check.Name() == name {
			return true
		}
	}
	return false
}

type ruffCheck struct {
	cfg Config
}

func newRuffCheck(cfg Config, _ *zap.Logger) Check {
	return &ruffCheck{cfg: cfg}
}

func (c *ruffCheck) Name() string { return "ruff" }

func (c *ruffCheck) Run(ctx context.Context, files []string) ([]tt.Violation, []string) {
	violations, err := ruff.Check(ctx, files, false, c.cfg.LineLength)
	if err != nil {
		return nil, []string{fmt.Sprintf("ruff check failed: %v", err)}
	}
	return violations, nil
}

type docstringCheck struct {
	cfg    Config
	logger *zap.Logger
}

func newDocstringCheck(cfg Config, logger *zap.Logger) Check {
	return &docstringCheck{cfg: cfg, logger: logger}
}

func (c *docstringCheck) Name() string { return "docstring" }

// Run validates files sequentially; each file is parsed once and
// processed to completion before the next.
func (c *docstringCheck) Run(ctx context.Context, files []string) ([]tt.Violation, []string) {
	validators := []docstring.Validator{
		docstring.NewMaxLineLength(c.cfg.MaxDocLength),
		docstring.NewSummary(c.cfg.RequirePeriod),
		docstring.NewSections(),
	}

	var bar *progressbar.ProgressBar
	if !c.cfg.Quiet && len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("docstrings"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var violations []tt.Violation
	var errs []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Sprintf("docstring validation interrupted: %v", err))
			break
		}
		found, err := docstring.Validate(file, validators, c.cfg.SkipPrivate)
		if err != nil {
			// Per-file failures are recorded and the run continues.
			errs = append(errs, fmt.Sprintf("docstring validation failed for %s: %v", file, err))
		} else {
			violations = append(violations, found...)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return violations, errs
}
