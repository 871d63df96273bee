package ruff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

func TestParseOutput(t *testing.T) {
	t.Parallel()

	output := []byte(`[
		{
			"code": "E225",
			"message": "Missing whitespace around operator",
			"filename": "pkg/calc.py",
			"location": {"row": 12, "column": 9}
		},
		{
			"code": "D100",
			"message": "Missing docstring in public module",
			"filename": "pkg/calc.py",
			"location": {"row": 1, "column": 1}
		}
	]`)

	violations, err := parseOutput(output)
	require.NoError(t, err)
	require.Len(t, violations, 2)

	assert.Equal(t, tt.Violation{
		Rule:     "E225",
		Filename: "pkg/calc.py",
		Line:     12,
		Column:   9,
		Message:  "Missing whitespace around operator",
		Tool:     tt.ToolRuff,
	}, violations[0])
	assert.Equal(t, "D100", violations[1].Rule)
}

func TestParseOutputEmpty(t *testing.T) {
	t.Parallel()

	violations, err := parseOutput([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestParseOutputMalformed(t *testing.T) {
	t.Parallel()

	_, err := parseOutput([]byte(`ruff 0.4.4`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing ruff output")
}

func TestCheckNoFiles(t *testing.T) {
	t.Parallel()

	violations, err := Check(context.Background(), nil, false, 0)
	require.NoError(t, err)
	assert.Empty(t, violations)
}
