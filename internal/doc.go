// Package internal provides the core engine of the rigorq quality
// checker.
//
// The engine coordinates a run: it discovers Python files under a
// target, optionally lets ruff auto-fix mechanical style issues, and
// then applies the configured checks in order, aggregating their
// findings into a single Result.
//
// Key components:
//
// Engine: sequences checks over discovered files. Checks are selected
// by name from a fixed registry; unknown names are rejected at
// construction time.
//
// Check: the contract every check implements. The ruff check shells
// out to the external linter; the docstring check parses each file and
// validates its docstrings in-process.
//
// Result: the aggregated violations and runtime errors of a run,
// mapped onto conventional exit codes (0 clean, 1 violations, 2
// runtime errors).
//
// Watcher: re-validates individual files as they change, for watch
// mode.
//
// This package is wired together by the public rigorq package and the
// command-line front end; it is not meant to be imported directly.
package internal
