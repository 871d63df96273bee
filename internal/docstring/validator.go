package docstring

import (
	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

// Validator is a single docstring rule. Implementations provide a
// stable code, a description, and one or both of the check methods;
// BaseValidator supplies no-op defaults so a rule only implements the
// capability it uses. Validators must be pure: they never mutate the
// Info they are given and never fail.
type Validator interface {
	// Code returns the violation code, e.g. "RQ200".
	Code() string

	// Description returns a human-readable description of the rule.
	Description() string

	// ValidateLine checks a single raw line of a docstring and returns
	// at most one violation.
	ValidateLine(lineNum int, rawLine string, info *Info, path string) *tt.Violation

	// ValidateDocstring checks the docstring as a whole.
	ValidateDocstring(info *Info, path string) []tt.Violation
}

// BaseValidator provides no-op defaults for both check methods.
type BaseValidator struct{}

func (BaseValidator) ValidateLine(int, string, *Info, string) *tt.Violation {
	return nil
}

func (BaseValidator) ValidateDocstring(*Info, string) []tt.Violation {
	return nil
}

// DefaultValidators returns the built-in rule set: maximum line
// length, first-line summary, and parameter/return sections.
func DefaultValidators() []Validator {
	return []Validator{
		NewMaxLineLength(DefaultMaxLength),
		NewSummary(true),
		NewSections(),
	}
}
