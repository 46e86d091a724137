package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solparse/ast"
	"solparse/diag"
)

func parseUnit(t *testing.T, source string) (*ast.Unit, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter("test.sol", source)
	p := New("test.sol", source, Config{ErrorRecovery: false, Reporter: reporter})
	unit, err := p.ParseUnit()
	require.NoError(t, err)
	return unit, reporter
}

func parseUnitRecover(t *testing.T, source string) (*ast.Unit, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter("test.sol", source)
	p := New("test.sol", source, Config{ErrorRecovery: true, Reporter: reporter})
	unit, err := p.ParseUnit()
	require.NoError(t, err)
	return unit, reporter
}

func TestEmptySourceProducesLicenseWarningOnly(t *testing.T) {
	unit, reporter := parseUnit(t, "")
	require.NotNil(t, unit)
	assert.Empty(t, unit.Nodes)
	diags := reporter.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.LicenseMissing, diags[0].ID)
	assert.Equal(t, diag.Warning, diags[0].Severity)
}

func TestS1PragmaAndEmptyContract(t *testing.T) {
	unit, _ := parseUnit(t, "pragma solidity ^0.8.0;\ncontract C {}\n")
	require.Len(t, unit.Nodes, 2)

	pragma, ok := unit.Nodes[0].(*ast.PragmaDirective)
	require.True(t, ok)
	assert.Equal(t, []string{"solidity", "^", "0.8.0"}, pragma.Literals)

	contract, ok := unit.Nodes[1].(*ast.ContractDefinition)
	require.True(t, ok)
	assert.Equal(t, "C", contract.Name)
	assert.Equal(t, ast.Contract, contract.Kind)
	assert.False(t, contract.Abstract)
	assert.Empty(t, contract.BaseList)
	assert.Empty(t, contract.Body)
}

func TestVersionMismatchIsFatalWithoutRecovery(t *testing.T) {
	unit, reporter := parseUnit(t, "pragma solidity ^0.1.0;\ncontract C {}\n")
	assert.Nil(t, unit)
	require.True(t, reporter.HasErrors())
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.ID == diag.VersionMismatch && d.Severity == diag.Fatal {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVersionMismatchIsNonFatalWithRecovery(t *testing.T) {
	unit, reporter := parseUnitRecover(t, "pragma solidity ^0.1.0;\ncontract C {}\n")
	require.NotNil(t, unit)
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.ID == diag.VersionMismatch {
			found = true
			assert.Equal(t, diag.Error, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestS2StateVariableAndFunction(t *testing.T) {
	unit, _ := parseUnit(t, "contract C { uint[] a; function f() public {} }")
	contract := unit.Nodes[0].(*ast.ContractDefinition)
	require.Len(t, contract.Body, 2)

	v, ok := contract.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name)
	arrType, ok := v.Type.(*ast.ArrayTypeName)
	require.True(t, ok)
	assert.Nil(t, arrType.Length)
	_, ok = arrType.ElementType.(*ast.ElementaryTypeName)
	assert.True(t, ok)
	assert.Equal(t, ast.DefaultVisibility, v.Visibility)

	fn, ok := contract.Body[1].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, ast.Public, fn.Visibility)
}

func TestS3LibraryFunctionWithReturn(t *testing.T) {
	src := "library L { function add(uint x, uint y) internal pure returns (uint) { return x + y; } }"
	unit, _ := parseUnit(t, src)
	contract := unit.Nodes[0].(*ast.ContractDefinition)
	assert.Equal(t, ast.Library, contract.Kind)

	fn := contract.Body[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "x", fn.Parameters[0].Name)
	assert.Equal(t, "y", fn.Parameters[1].Name)
	assert.Equal(t, ast.InternalVisibility, fn.Visibility)
	assert.Equal(t, ast.Pure, fn.Mutability)
	require.Len(t, fn.Returns, 1)
	require.Len(t, fn.Body.Statements, 1)
	_, ok := fn.Body.Statements[0].(*ast.Return)
	assert.True(t, ok)
}

func TestS4AmbiguityResolver(t *testing.T) {
	src := "contract C { function f() public { x.y.z[1][2] a; a = 3; } }"
	unit, _ := parseUnit(t, src)
	contract := unit.Nodes[0].(*ast.ContractDefinition)
	fn := contract.Body[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Statements, 2)

	declStmt, ok := fn.Body.Statements[0].(*ast.VariableDeclarationStatement)
	require.True(t, ok)
	require.Len(t, declStmt.Declarations, 1)
	decl := declStmt.Declarations[0]
	assert.Equal(t, "a", decl.Name)
	outer, ok := decl.Type.(*ast.ArrayTypeName)
	require.True(t, ok)
	inner, ok := outer.ElementType.(*ast.ArrayTypeName)
	require.True(t, ok)
	_, ok = inner.ElementType.(*ast.UserDefinedTypeName)
	assert.True(t, ok)

	exprStmt, ok := fn.Body.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	_, ok = exprStmt.Expression.(*ast.Assignment)
	assert.True(t, ok)
}

func TestS5TupleDeclarationWithHole(t *testing.T) {
	src := "contract C { function f() public { (uint x, , uint z) = g(); } }"
	unit, _ := parseUnit(t, src)
	contract := unit.Nodes[0].(*ast.ContractDefinition)
	fn := contract.Body[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Statements, 1)

	declStmt, ok := fn.Body.Statements[0].(*ast.VariableDeclarationStatement)
	require.True(t, ok)
	require.Len(t, declStmt.Declarations, 3)
	assert.Nil(t, declStmt.Declarations[1])
	assert.Equal(t, "x", declStmt.Declarations[0].Name)
	assert.Equal(t, "z", declStmt.Declarations[2].Name)
	require.NotNil(t, declStmt.Value)
	_, ok = declStmt.Value.(*ast.FunctionCall)
	assert.True(t, ok)
}

func TestS6LicenseAttached(t *testing.T) {
	src := "// SPDX-License-Identifier: MIT\npragma solidity >=0.7.0;\ncontract C {}\n"
	unit, reporter := parseUnit(t, src)
	assert.Equal(t, "MIT", unit.License)
	for _, d := range reporter.Diagnostics() {
		assert.NotEqual(t, diag.LicenseMissing, d.ID)
		assert.NotEqual(t, diag.LicenseMultiple, d.ID)
	}
}

func TestEnumWithZeroMembersStillBuildsNode(t *testing.T) {
	unit, reporter := parseUnit(t, "contract C { enum E {} }")
	require.NotNil(t, unit)
	contract := unit.Nodes[0].(*ast.ContractDefinition)
	enum, ok := contract.Body[0].(*ast.EnumDefinition)
	require.True(t, ok)
	assert.Empty(t, enum.Values)
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.ID == diag.EnumNoMembers {
			found = true
		}
	}
	assert.True(t, found)
}

func TestInlineArrayHoleIsError(t *testing.T) {
	src := "contract C { function f() public { uint[3] memory a = [1, , 2]; } }"
	unit, reporter := parseUnit(t, src)
	assert.NotNil(t, unit)
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.ID == diag.InlineArrayHole {
			found = true
			assert.Equal(t, diag.Error, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestTrailingCommaInParameterListIsFatal(t *testing.T) {
	unit, reporter := parseUnit(t, "contract C { function f(uint x,) public {} }")
	assert.Nil(t, unit)
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.ID == diag.TrailingCommaParam {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlaceholderOnlyLegalInsideModifier(t *testing.T) {
	unit, _ := parseUnit(t, "contract C { modifier m() { _; } }")
	contract := unit.Nodes[0].(*ast.ContractDefinition)
	mod := contract.Body[0].(*ast.ModifierDefinition)
	require.Len(t, mod.Body.Statements, 1)
	_, ok := mod.Body.Statements[0].(*ast.PlaceholderStatement)
	assert.True(t, ok)

	unit, _ = parseUnit(t, "contract C { function f() public { _; } }")
	fn := unit.Nodes[0].(*ast.ContractDefinition).Body[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Statements, 1)
	_, ok = fn.Body.Statements[0].(*ast.PlaceholderStatement)
	assert.False(t, ok)
}

func TestRecursionDepthReturnsToZero(t *testing.T) {
	reporter := diag.NewReporter("test.sol", "1")
	p := New("test.sol", "1", Config{Reporter: reporter})
	_, err := p.ParseExpression()
	require.NoError(t, err)
	assert.Equal(t, 0, p.depth)
}

func TestNodeIDsAreUnique(t *testing.T) {
	unit, _ := parseUnit(t, "contract C { uint a; uint b; function f() public { uint c; } }")
	seen := map[ast.NodeID]bool{}
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		id := n.NodeID()
		assert.False(t, seen[id], "duplicate node id %d", id)
		seen[id] = true
	}
	walk(unit)
	for _, n := range unit.Nodes {
		walk(n)
	}
}

func TestSpanWithinSourceBounds(t *testing.T) {
	src := "contract C { uint a; function f() public {} }"
	unit, _ := parseUnit(t, src)
	span := unit.NodeSpan()
	assert.GreaterOrEqual(t, span.Start, 0)
	assert.LessOrEqual(t, span.End, len(src))
	assert.LessOrEqual(t, span.Start, span.End)
}

func TestStandaloneExpression(t *testing.T) {
	reporter := diag.NewReporter("test.sol", "1 + 2 * 3")
	p := New("test.sol", "1 + 2 * 3", Config{Reporter: reporter})
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	bin, ok := expr.(*ast.BinaryOperation)
	require.True(t, ok)
	_, ok = bin.Right.(*ast.BinaryOperation)
	assert.True(t, ok)
}
