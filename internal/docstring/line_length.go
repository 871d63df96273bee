package docstring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

// DefaultMaxLength is the PEP 8 limit for docstrings and comments.
const DefaultMaxLength = 72

// MaxLineLength flags docstring lines longer than a configured
// maximum, measured on the raw line including indentation.
type MaxLineLength struct {
	BaseValidator
	Max int
}

// NewMaxLineLength returns the rule with the given limit; a
// non-positive limit selects DefaultMaxLength.
func NewMaxLineLength(maxLength int) *MaxLineLength {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &MaxLineLength{Max: maxLength}
}

func (r *MaxLineLength) Code() string { return "RQ200" }

func (r *MaxLineLength) Description() string {
	return fmt.Sprintf("Docstring line too long (max %d chars)", r.Max)
}

func (r *MaxLineLength) ValidateLine(lineNum int, rawLine string, _ *Info, path string) *tt.Violation {
	// Bare delimiter lines are exempt, including a closed empty body.
	switch strings.TrimSpace(rawLine) {
	case `"""`, "'''", `""""""`, "''''''":
		return nil
	}

	length := utf8.RuneCountInString(rawLine)
	if length <= r.Max {
		return nil
	}

	return &tt.Violation{
		Rule:     r.Code(),
		Filename: path,
		Line:     lineNum,
		Column:   0,
		Message:  fmt.Sprintf("%s (%d > %d)", r.Description(), length, r.Max),
		Tool:     tt.ToolRigorq,
	}
}
