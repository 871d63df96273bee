package types

// Tool tags identifying which check produced a violation.
const (
	ToolRigorq = "rigorq"
	ToolRuff   = "ruff"
)

// Violation represents a single style or quality finding in a Python
// source file. Lines are 1-based, columns 0-based, matching compiler
// diagnostic conventions. Custom docstring checks always report column 0.
type Violation struct {
	Rule     string `json:"rule"`
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Tool     string `json:"tool"`
}
