package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		rule    string
		message string
	}{
		{
			name: "one-line summary with period",
			source: `def f():
    """Do nothing."""
`,
		},
		{
			name: "one-line summary without period",
			source: `def f():
    """Do nothing"""
`,
			rule:    "RQ203",
			message: "Last line of summary should end with a period",
		},
		{
			name: "multi-line summary with period",
			source: `def f():
    """Compute a value
    across two lines.

    Details follow.
    """
`,
		},
		{
			name: "multi-line summary without period",
			source: `def f():
    """Compute a value
    across two lines

    Details follow.
    """
`,
			rule:    "RQ203",
			message: "Last line of summary should end with a period",
		},
		{
			name: "empty docstring",
			source: `def f():
    """
    """
`,
			rule:    "RQ202",
			message: "Docstring is empty or has no summary line",
		},
		{
			name: "blank first content line",
			source: `def f():
    """

    Late summary.
    """
`,
			rule:    "RQ202",
			message: "Docstring is empty or has no summary line",
		},
		{
			name: "summary on delimiter line continues below",
			source: `def f():
    """Opens here
    and ends with a period.
    """
`,
		},
		{
			name: "trailing whitespace after period",
			source: `def f():
    """Do nothing.   """
`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := parseInfo(t, tc.source)
			rule := NewSummary(true)

			vs := rule.ValidateDocstring(info, "test.py")
			if tc.rule == "" {
				assert.Empty(t, vs)
				return
			}
			require.Len(t, vs, 1)
			assert.Equal(t, tc.rule, vs[0].Rule)
			assert.Equal(t, tc.message, vs[0].Message)
			assert.Equal(t, info.StartLine, vs[0].Line)
		})
	}
}

func TestSummaryPeriodOptional(t *testing.T) {
	t.Parallel()

	source := `def f():
    """Do nothing"""
`
	info := parseInfo(t, source)

	assert.Empty(t, NewSummary(false).ValidateDocstring(info, "test.py"))
	assert.Len(t, NewSummary(true).ValidateDocstring(info, "test.py"), 1)
}
