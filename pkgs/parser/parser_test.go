package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/diag"
	"github.com/nyxlang/nyxc/pkgs/entity"
	"github.com/nyxlang/nyxc/pkgs/lexer"
)

func parseSource(t *testing.T, src string) (*Context, bool) {
	t.Helper()
	lex := lexer.New([]byte(src))
	entities := entity.NewTable()
	errs := diag.NewCollector()
	ctx := NewContext(lex, entities, errs, lexer.InputFileID(1))
	ok := Parse(ctx)
	return ctx, ok
}

func TestParseVarDecl(t *testing.T) {
	ctx, ok := parseSource(t, "let x: i32 = 1;")
	require.True(t, ok)
	require.Len(t, ctx.Decls, 1)

	decl, isVar := ctx.Decls[0].(*ast.VarDecl)
	require.True(t, isVar)
	e := ctx.Entities.Find(decl.EntityID)
	assert.Equal(t, entity.Variable, e.Kind)
	assert.Equal(t, "x", e.Local)
}

func TestParseConstVarDeclIsStatic(t *testing.T) {
	ctx, ok := parseSource(t, "const PI: f64 = 3;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	e := ctx.Entities.Find(decl.EntityID)
	assert.Equal(t, entity.Static, e.Kind)
}

func TestParseProcDeclWithParamsAndReturn(t *testing.T) {
	ctx, ok := parseSource(t, "proc add(a: i32, b: i32) -> i32 { return a + b; }")
	require.True(t, ok)
	require.Len(t, ctx.Decls, 1)

	proc := ctx.Decls[0].(*ast.ProcDecl)
	e := ctx.Entities.Find(proc.EntityID)
	assert.Equal(t, entity.Procedure, e.Kind)
	assert.Equal(t, "add", e.Local)
	require.Len(t, proc.Params, 2)
	require.Len(t, proc.Body, 1)

	ret := proc.Body[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParseForwardDeclaredProcCompletedLater(t *testing.T) {
	ctx, ok := parseSource(t, "proc f(x: i32) -> i32;\nproc f(x: i32) -> i32 { return x; }")
	require.True(t, ok)
	require.Len(t, ctx.Decls, 2)

	first := ctx.Decls[0].(*ast.ProcDecl)
	second := ctx.Decls[1].(*ast.ProcDecl)
	assert.Equal(t, first.EntityID, second.EntityID)
	assert.Nil(t, first.Body)
	assert.NotNil(t, second.Body)
}

func TestParseNamespaceDottedPathAndReopen(t *testing.T) {
	ctx, ok := parseSource(t, "namespace A::B { let x: i32 = 1; }\nnamespace A::B { let y: i32 = 2; }")
	require.True(t, ok)
	require.Len(t, ctx.Decls, 2)

	ns1 := ctx.Decls[0].(*ast.Namespace)
	ns2 := ctx.Decls[1].(*ast.Namespace)
	assert.Equal(t, ns1.EntityID, ns2.EntityID)

	e := ctx.Entities.Find(ns1.EntityID)
	assert.Equal(t, entity.Static, e.Kind)
	assert.Equal(t, "::A::B", e.FQN)
}

func TestParseNamespaceSingleStatementForm(t *testing.T) {
	ctx, ok := parseSource(t, "namespace A let x: i32 = 1;")
	require.True(t, ok)
	ns := ctx.Decls[0].(*ast.Namespace)
	require.Len(t, ns.Decls, 1)
}

func TestParseStructDecl(t *testing.T) {
	ctx, ok := parseSource(t, "struct Point { x: i32; y: i32; }")
	require.True(t, ok)
	st := ctx.Decls[0].(*ast.StructDecl)
	e := ctx.Entities.Find(st.EntityID)
	assert.Equal(t, entity.StructEntity, e.Kind)
	require.Len(t, st.Fields, 2)
}

func TestParseIncludeDirectiveProducesNoASTNodeButRecordsPath(t *testing.T) {
	ctx, ok := parseSource(t, `@include "other.nx";`+"\nlet x: i32 = 1;")
	require.True(t, ok)
	assert.Equal(t, []string{"other.nx"}, ctx.Includes)
	require.Len(t, ctx.Decls, 1)
	_, isVar := ctx.Decls[0].(*ast.VarDecl)
	assert.True(t, isVar)
}

func TestParseTopLevelBadExprForPlainIf(t *testing.T) {
	ctx, ok := parseSource(t, "if (1) { let x: i32 = 1; }")
	assert.False(t, ok)
	require.Len(t, ctx.Decls, 1)
	assert.Equal(t, ast.KindBadExpr, ctx.Decls[0].Kind())
	assert.Equal(t, 1, ctx.Errors.ErrorCount())
}

func TestParseTopLevelBadExprForBareExpression(t *testing.T) {
	ctx, ok := parseSource(t, "1 + 2;")
	assert.False(t, ok)
	require.Len(t, ctx.Decls, 1)
	assert.Equal(t, ast.KindBadExpr, ctx.Decls[0].Kind())
}

func TestParseConstIfValidAtTopLevel(t *testing.T) {
	ctx, ok := parseSource(t, "if const (true) { let x: i32 = 1; } else { let y: i32 = 2; }")
	require.True(t, ok)
	require.Len(t, ctx.Decls, 1)
	branch := ctx.Decls[0].(*ast.Branch)
	assert.Equal(t, ast.KindConstIf, branch.Kind())
	assert.True(t, branch.HasElse)
}

func TestBinaryPrecedenceTreeShape(t *testing.T) {
	// "1 + 2 * 3" must parse with '*' binding tighter, so the tree's
	// root is '+' with a '*' subtree on the right.
	ctx, ok := parseSource(t, "let x = 1 + 2 * 3;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	root := decl.Init.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, root.Op)

	right := root.Right.(*ast.BinExpr)
	assert.Equal(t, ast.OpMul, right.Op)
}

func TestBinaryLeftAssociativity(t *testing.T) {
	// "1 - 2 - 3" must associate as (1 - 2) - 3.
	ctx, ok := parseSource(t, "let x = 1 - 2 - 3;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	root := decl.Init.(*ast.BinExpr)
	assert.Equal(t, ast.OpSub, root.Op)

	left := root.Left.(*ast.BinExpr)
	assert.Equal(t, ast.OpSub, left.Op)
	_, leftIsScalar := left.Left.(*ast.ScalarLit)
	assert.True(t, leftIsScalar)
}

func TestAssignmentParsesAsExpressionStatement(t *testing.T) {
	src := `proc f() {
		x = 5;
		x += 1;
	}`
	ctx, ok := parseSource(t, src)
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	require.Len(t, proc.Body, 2)

	simple := proc.Body[0].(*ast.BinExpr)
	assert.Equal(t, ast.OpAssign, simple.Op)

	compound := proc.Body[1].(*ast.BinExpr)
	assert.Equal(t, ast.OpAddAssign, compound.Op)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	// "x = y = 1" must associate as x = (y = 1).
	src := `proc f() {
		x = y = 1;
	}`
	ctx, ok := parseSource(t, src)
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	root := proc.Body[0].(*ast.BinExpr)
	assert.Equal(t, ast.OpAssign, root.Op)

	right := root.Right.(*ast.BinExpr)
	assert.Equal(t, ast.OpAssign, right.Op)
	_, rightIsScalar := right.Right.(*ast.ScalarLit)
	assert.True(t, rightIsScalar)
}

func TestAssignmentBindsLooserThanArithmetic(t *testing.T) {
	// "x = 1 + 2" must parse as x = (1 + 2), not (x = 1) + 2.
	src := `proc f() {
		x = 1 + 2;
	}`
	ctx, ok := parseSource(t, src)
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	root := proc.Body[0].(*ast.BinExpr)
	assert.Equal(t, ast.OpAssign, root.Op)
	rhs := root.Right.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, rhs.Op)
}

func TestParenthesizationEquivalence(t *testing.T) {
	// "(1 + 2) * 3" and the same shape built by explicit parens must
	// both produce a '*' root with a '+' subtree on the left.
	ctx, ok := parseSource(t, "let x = (1 + 2) * 3;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	root := decl.Init.(*ast.BinExpr)
	assert.Equal(t, ast.OpMul, root.Op)
	left := root.Left.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, left.Op)
}

func TestCastExpressionBindsTighterThanArithmetic(t *testing.T) {
	ctx, ok := parseSource(t, "let x = 1 + 2 as i64;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	bin := decl.Init.(*ast.BinExpr)
	assert.Equal(t, ast.OpAdd, bin.Op)
	cast := bin.Right.(*ast.CastExpr)
	_, isLit := cast.Operand.(*ast.ScalarLit)
	assert.True(t, isLit)
}

func TestMemberAccessIsBinaryOperator(t *testing.T) {
	ctx, ok := parseSource(t, "let x = a.b;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	bin := decl.Init.(*ast.BinExpr)
	assert.Equal(t, ast.OpMember, bin.Op)
}

func TestSubscriptIsPostfix(t *testing.T) {
	ctx, ok := parseSource(t, "let x = a[0];")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	sub := decl.Init.(*ast.Subscript)
	assert.NotNil(t, sub.Target)
	assert.NotNil(t, sub.Index)
}

func TestCallExpression(t *testing.T) {
	ctx, ok := parseSource(t, "let x = add(1, 2);")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	call := decl.Init.(*ast.Call)
	assert.Len(t, call.Args, 2)
}

func TestSizeofAndTypeofParse(t *testing.T) {
	ctx, ok := parseSource(t, "let x = sizeof(a);\nlet y = typeof(a);")
	require.True(t, ok)
	_, isSizeof := ctx.Decls[0].(*ast.VarDecl).Init.(*ast.SizeofExpr)
	assert.True(t, isSizeof)
	_, isTypeof := ctx.Decls[1].(*ast.VarDecl).Init.(*ast.TypeofExpr)
	assert.True(t, isTypeof)
}

func TestForWhileDoWhileStatements(t *testing.T) {
	src := `proc f() {
		for (let i = 0; i < 10; i++) { break; }
		while (true) { continue; }
		do { break; } while (true);
	}`
	ctx, ok := parseSource(t, src)
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	require.Len(t, proc.Body, 3)
	assert.Equal(t, ast.KindFor, proc.Body[0].Kind())
	assert.Equal(t, ast.KindWhile, proc.Body[1].Kind())
	assert.Equal(t, ast.KindDoWhile, proc.Body[2].Kind())
}

func TestSwitchWithFallthroughAndDefault(t *testing.T) {
	src := `proc f() {
		switch (x) {
		case 1:
			break;
		case 2:
			fallthrough;
		default:
			break;
		}
	}`
	ctx, ok := parseSource(t, src)
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	sw := proc.Body[0].(*ast.SwitchStmt)
	require.Len(t, sw.Cases, 2)
	assert.False(t, sw.Cases[0].Fallthrough)
	assert.True(t, sw.Cases[1].Fallthrough)
	assert.True(t, sw.HasDefault)
}

func TestDeferAndDeferIf(t *testing.T) {
	src := `proc f() {
		defer close(f);
		defer_if (ready) close(f);
	}`
	ctx, ok := parseSource(t, src)
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	require.Len(t, proc.Body, 2)
	assert.Equal(t, ast.KindDefer, proc.Body[0].Kind())
	assert.Equal(t, ast.KindDeferIf, proc.Body[1].Kind())
}

func TestScopeBlockStatement(t *testing.T) {
	ctx, ok := parseSource(t, "proc f() { scope { let x: i32 = 1; } }")
	require.True(t, ok)
	proc := ctx.Decls[0].(*ast.ProcDecl)
	assert.Equal(t, ast.KindScopeBlock, proc.Body[0].Kind())
}

func TestQualifiedTypeRefPointerDepthAndArrayLens(t *testing.T) {
	ctx, ok := parseSource(t, "let x: $$i32[4][8] = null;")
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	require.NotNil(t, decl.TypeRef)
	assert.Equal(t, uint32(2), decl.TypeRef.PointerDepth)
	assert.Equal(t, []int{4, 8}, decl.TypeRef.ArrayLens)
}

func TestUnclosedParenIsError(t *testing.T) {
	_, ok := parseSource(t, "let x = (1 + 2;")
	assert.False(t, ok)
}

func TestIllegalTokenRecordsErrorAndRecovers(t *testing.T) {
	ctx, ok := parseSource(t, "? let x: i32 = 1;")
	assert.False(t, ok)
	assert.Equal(t, 1, ctx.Errors.ErrorCount())
	// Recovery should still pick the declaration back up.
	found := false
	for _, d := range ctx.Decls {
		if vd, isVar := d.(*ast.VarDecl); isVar {
			found = true
			e := ctx.Entities.Find(vd.EntityID)
			assert.Equal(t, "x", e.Local)
		}
	}
	assert.True(t, found)
}

func TestIncompatibleRedeclarationIsError(t *testing.T) {
	_, ok := parseSource(t, "proc thing() {}\nstruct thing { x: i32; }")
	assert.False(t, ok)
}

func TestUnescapeQuotedControlEscapes(t *testing.T) {
	got, err := unescapeQuoted(`"\a\b\f\v\n\t\r"`, '"')
	require.NoError(t, err)
	assert.Equal(t, "\a\b\f\v\n\t\r", got)
}

func TestUnescapeQuotedOctalEscapes(t *testing.T) {
	got, err := unescapeQuoted(`"\101\0\12"`, '"')
	require.NoError(t, err)
	assert.Equal(t, "A\x00\n", got)
}

func TestUnescapeQuotedHexEscapeAcceptsOneOrTwoDigits(t *testing.T) {
	got, err := unescapeQuoted(`"\x9\x41"`, '"')
	require.NoError(t, err)
	assert.Equal(t, "\x09A", got)
}

func TestUnescapeQuotedUnknownEscapeIsError(t *testing.T) {
	_, err := unescapeQuoted(`"\q"`, '"')
	assert.Error(t, err)
}

func TestParseByteLiteralWithEscape(t *testing.T) {
	ctx, ok := parseSource(t, `let x = '\101';`)
	require.True(t, ok)
	decl := ctx.Decls[0].(*ast.VarDecl)
	lit := decl.Init.(*ast.ScalarLit)
	assert.Equal(t, ast.ScalarByte, lit.LitKind)
	assert.Equal(t, int64('A'), lit.Int)
}
