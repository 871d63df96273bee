package docstring

import (
	"strings"
	"unicode/utf8"

	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

// Summary enforces PEP 257 first-line summaries: the docstring must
// open with summary text, and the summary's last line must end with a
// period when the termination policy is enabled.
type Summary struct {
	BaseValidator
	RequirePeriod bool
}

func NewSummary(requirePeriod bool) *Summary {
	return &Summary{RequirePeriod: requirePeriod}
}

func (r *Summary) Code() string { return "RQ202" }

func (r *Summary) Description() string {
	return "Docstring must start with one-line summary"
}

func (r *Summary) ValidateDocstring(info *Info, path string) []tt.Violation {
	summary := collectSummary(info.RawLines)

	if len(summary) == 0 {
		return []tt.Violation{{
			Rule:     r.Code(),
			Filename: path,
			Line:     info.StartLine,
			Column:   0,
			Message:  "Docstring is empty or has no summary line",
			Tool:     tt.ToolRigorq,
		}}
	}

	last := strings.TrimRight(summary[len(summary)-1], " \t")
	if r.RequirePeriod && !strings.HasSuffix(last, ".") {
		return []tt.Violation{{
			Rule:     "RQ203",
			Filename: path,
			Line:     info.StartLine,
			Column:   0,
			Message:  "Last line of summary should end with a period",
			Tool:     tt.ToolRigorq,
		}}
	}

	return nil
}

// collectSummary gathers summary text top-down until the first blank
// line, handling the opening delimiter and the one-line
// `"""summary."""` form.
func collectSummary(rawLines []Line) []string {
	var summary []string

	for _, line := range rawLines {
		stripped := strings.TrimSpace(line.Text)
		if stripped == "" {
			break
		}

		if strings.HasPrefix(stripped, `"""`) || strings.HasPrefix(stripped, "'''") {
			closed := strings.HasSuffix(stripped, `"""`) || strings.HasSuffix(stripped, "'''")
			if closed && utf8.RuneCountInString(stripped) > 6 {
				if inner := strings.TrimSpace(stripped[3 : len(stripped)-3]); inner != "" {
					summary = append(summary, inner)
				}
				break
			}
			if after := strings.TrimSpace(stripped[3:]); after != "" {
				summary = append(summary, after)
			}
			continue
		}

		summary = append(summary, stripped)
	}

	return summary
}
