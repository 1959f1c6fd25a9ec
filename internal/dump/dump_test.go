package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/diag"
	"github.com/nyxlang/nyxc/pkgs/entity"
	"github.com/nyxlang/nyxc/pkgs/lexer"
	"github.com/nyxlang/nyxc/pkgs/parser"
)

func parseOne(t *testing.T, src string) (*parser.Context, *entity.Table) {
	t.Helper()
	lex := lexer.New([]byte(src))
	tbl := entity.NewTable()
	errs := diag.NewCollector()
	ctx := parser.NewContext(lex, tbl, errs, lexer.InputFileID(1))
	require.True(t, parser.Parse(ctx))
	return ctx, tbl
}

func TestASTDumpRendersKindAndPosition(t *testing.T) {
	ctx, _ := parseOne(t, "let x: i32 = 1 + 2;")
	var buf bytes.Buffer
	w := &Writer{W: &buf}
	w.AST(ctx.Decls[0])

	out := buf.String()
	assert.Contains(t, out, "VarDecl")
	assert.Contains(t, out, "FileID=1")
	assert.Contains(t, out, "BinExpr")
	assert.Contains(t, out, "op=+")
}

func TestASTDumpIndentsChildrenByDepth(t *testing.T) {
	ctx, _ := parseOne(t, "let x = 1 + 2;")
	var buf bytes.Buffer
	w := &Writer{W: &buf}
	w.AST(ctx.Decls[0])

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4) // VarDecl, BinExpr, and its two ScalarLit operands
	assert.False(t, strings.HasPrefix(lines[0], "|_"))
	assert.True(t, strings.HasPrefix(lines[1], "|_"))
	assert.True(t, strings.HasPrefix(lines[2], "|_|_"))
}

func TestASTDumpColourWrapsKindLabel(t *testing.T) {
	ctx, _ := parseOne(t, "let x = 1;")
	var buf bytes.Buffer
	w := &Writer{W: &buf, Colour: true}
	w.AST(ctx.Decls[0])
	assert.Contains(t, buf.String(), "\x1b[1m\x1b[35mVarDecl\x1b[0m")
}

func TestEntitiesDumpRendersFQNAndKind(t *testing.T) {
	_, tbl := parseOne(t, "proc add(a: i32) -> i32 { return a; }")
	var buf bytes.Buffer
	w := &Writer{W: &buf}
	w.Entities(tbl)

	out := buf.String()
	assert.Contains(t, out, "::add")
	assert.Contains(t, out, "Procedure")
	assert.Contains(t, out, "params=")
}

func TestStructuresDumpOnlyShowsUDTs(t *testing.T) {
	_, tbl := parseOne(t, "struct Point { x: i32; y: i32; }\nlet p: i32 = 1;")
	var buf bytes.Buffer
	w := &Writer{W: &buf}
	w.Structures(tbl)

	out := buf.String()
	assert.Contains(t, out, "Point")
	assert.NotContains(t, out, "::p ")
}

func TestTokensDumpLexesWithoutParsing(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{W: &buf}
	w.Tokens([]byte("let x = 1;"))

	out := buf.String()
	assert.Contains(t, out, `"let"`)
	assert.Contains(t, out, "line=1")
	assert.Contains(t, out, "EOF")
}

func TestContextDumpIncludesVersionAndConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Input = []string{"a.nx"}
	Context(&buf, cfg, "v0.1.0")

	out := buf.String()
	assert.Contains(t, out, "v0.1.0")
	assert.Contains(t, out, "a.nx")
}

func TestEncodeDecodeASTSnapshotRoundTrips(t *testing.T) {
	ctx, _ := parseOne(t, "let x: i32 = 1 + 2;")
	data, err := EncodeAST(ctx.Decls[0])
	require.NoError(t, err)

	snap, err := DecodeASTSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, ast.KindVarDecl.String(), snap.Kind)
	require.NotEmpty(t, snap.Children)
}

func TestASTSnapshotIsStableAcrossIdenticalParses(t *testing.T) {
	ctx1, _ := parseOne(t, "proc f(a: i32) -> i32 { return a + 1; }")
	ctx2, _ := parseOne(t, "proc f(a: i32) -> i32 { return a + 1; }")

	data1, err := EncodeAST(ctx1.Decls[0])
	require.NoError(t, err)
	snap1, err := DecodeASTSnapshot(data1)
	require.NoError(t, err)

	data2, err := EncodeAST(ctx2.Decls[0])
	require.NoError(t, err)
	snap2, err := DecodeASTSnapshot(data2)
	require.NoError(t, err)

	if diff := cmp.Diff(snap1, snap2); diff != "" {
		t.Errorf("snapshots of identical sources diverged (-first +second):\n%s", diff)
	}
}

func TestEncodeDecodeEntitySnapshotRoundTrips(t *testing.T) {
	_, tbl := parseOne(t, "let x: i32 = 1;")
	data, err := EncodeEntities(tbl)
	require.NoError(t, err)

	snaps, err := DecodeEntitySnapshot(data)
	require.NoError(t, err)

	found := false
	for _, s := range snaps {
		if s.Local == "x" {
			found = true
			assert.Equal(t, "Variable", s.Kind)
		}
	}
	assert.True(t, found)
}
