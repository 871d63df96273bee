// Package ruff shells out to the ruff linter for the mechanical PEP 8
// rules and maps its JSON diagnostics into violations.
package ruff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

const (
	versionTimeout = 5 * time.Second

	// DefaultLineLength is the PEP 8 limit for code lines; docstrings
	// are held to 72 separately via the D rules.
	DefaultLineLength = 79
)

// ErrNotFound is returned when the ruff binary is unavailable.
var ErrNotFound = errors.New("ruff not found or unresponsive; install with: pip install ruff")

// diagnostic mirrors one entry of `ruff check --output-format=json`.
type diagnostic struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
}

// Available verifies that ruff responds on this system.
func Available(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, "ruff", "--version").Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return nil
}

// Check runs ruff over files with the strict rule selection and
// returns its findings. With fix enabled ruff rewrites files in place
// and the returned violations are the ones it could not fix.
func Check(ctx context.Context, files []string, fix bool, lineLength int) ([]tt.Violation, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if lineLength <= 0 {
		lineLength = DefaultLineLength
	}

	if err := Available(ctx); err != nil {
		return nil, err
	}

	args := []string{"check"}
	if fix {
		args = append(args, "--fix")
	}
	// E/W pycodestyle core, D pydocstyle, N naming; D203/D212 conflict
	// with D211/D213 and are dropped for clean output.
	args = append(args,
		"--output-format=json",
		"--extend-select=E225,E226,E227,E228,N,D",
		"--ignore=D203,D212",
		"--line-length="+strconv.Itoa(lineLength),
		"--target-version=py38",
	)
	args = append(args, files...)

	cmd := exec.CommandContext(ctx, "ruff", args...)
	output, err := cmd.Output()
	if err != nil {
		// Exit code 1 means findings were reported; anything else is a
		// real failure.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
			return nil, fmt.Errorf("ruff execution failed: %w", err)
		}
	}

	return parseOutput(output)
}

func parseOutput(output []byte) ([]tt.Violation, error) {
	var diags []diagnostic
	if err := json.Unmarshal(output, &diags); err != nil {
		return nil, fmt.Errorf("parsing ruff output: %w", err)
	}

	var violations []tt.Violation
	for _, d := range diags {
		violations = append(violations, tt.Violation{
			Rule:     d.Code,
			Filename: d.Filename,
			Line:     d.Location.Row,
			Column:   d.Location.Column,
			Message:  d.Message,
			Tool:     tt.ToolRuff,
		})
	}
	return violations, nil
}
