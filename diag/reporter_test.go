package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solparse/ast"
)

func TestReporterHasErrorsIgnoresWarnings(t *testing.T) {
	r := NewReporter("t.sol", "contract C {}\n")
	r.Warning(LicenseMissing, ast.Span{Start: 0, End: 1}, "missing license")
	assert.False(t, r.HasErrors())

	r.Error(PrimaryExpected, ast.Span{Start: 2, End: 3}, "expected primary expression")
	assert.True(t, r.HasErrors())
}

func TestReporterExcessiveErrorsThreshold(t *testing.T) {
	r := NewReporter("t.sol", "x")
	r.excessiveErrorThreshold = 2
	require.False(t, r.ExcessiveErrors())

	r.Error(IllegalToken, ast.Span{}, "one")
	require.False(t, r.ExcessiveErrors())

	r.Error(IllegalToken, ast.Span{}, "two")
	require.True(t, r.ExcessiveErrors())
}

func TestReporterRenderIncludesLocationAndMessage(t *testing.T) {
	source := "contract C {\n  uint x\n}\n"
	r := NewReporter("sample.sol", source)
	offset := strings.Index(source, "uint")
	r.Error(MappingKeyExpected, ast.Span{Start: offset, End: offset + 4}, "expected a mapping key type")

	out := r.Render()
	assert.Contains(t, out, "sample.sol:2:3")
	assert.Contains(t, out, "expected a mapping key type")
	assert.Contains(t, out, "1005")
}

func TestReporterDiagnosticsPreservesOrder(t *testing.T) {
	r := NewReporter("t.sol", "")
	r.Warning(LicenseMissing, ast.Span{}, "first")
	r.Error(PrimaryExpected, ast.Span{}, "second")
	r.Fatal(IllegalToken, ast.Span{}, "third")

	got := r.Diagnostics()
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
	assert.Equal(t, "third", got[2].Message)
	assert.Equal(t, Fatal, got[2].Severity)
}
