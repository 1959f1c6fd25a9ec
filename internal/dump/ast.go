// Package dump renders the frontend's three normative text dumps
// (AST, entity table, token stream — spec.md §6.2/§6.3), plus two
// tooling-only formats this repo adds on top: a CBOR binary snapshot
// for golden-file round-trip tests, and a pretty-printed runtime
// context dump for --dump-context. Only the first three follow the
// spec's fixed layout; the CBOR and pp-based dumps are never
// substituted for them.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/nyxlang/nyxc/pkgs/ast"
)

const (
	ansiBold    = "\x1b[1m"
	ansiMagenta = "\x1b[35m"
	ansiReset   = "\x1b[0m"
)

// Writer renders dumps to an underlying stream with an on/off color
// switch — cmd/nyxc sets Colour after probing the output with
// go-isatty, wrapping a go-colorable writer on Windows.
type Writer struct {
	W      io.Writer
	Colour bool
}

func (w *Writer) kindLabel(s string) string {
	if !w.Colour {
		return s
	}
	return ansiBold + ansiMagenta + s + ansiReset
}

func (w *Writer) indent(depth int) string {
	return strings.Repeat("|_", depth)
}

// AST renders root in spec.md §6.2's indented-tree format: each line
// is `|_`-scaled to depth, the node kind (bold/magenta), FileID,
// <line,offset>, then kind-specific fields; children recurse at
// depth+1.
func (w *Writer) AST(root ast.Node) {
	w.astNode(root, 0)
}

func (w *Writer) astNode(n ast.Node, depth int) {
	if n == nil {
		return
	}
	pos := n.Position()
	fmt.Fprintf(w.W, "%s%s FileID=%d <%d,%d>%s\n",
		w.indent(depth), w.kindLabel(n.Kind().String()), pos.File, pos.Line, pos.Offset,
		kindSpecificFields(n))

	for _, child := range n.Children() {
		w.astNode(child, depth+1)
	}
}

// kindSpecificFields formats the extra per-kind fields spec.md §6.2
// calls out: has_else, is_fallthrough, is_dowhile, the binary-op
// symbol, literal value/scalar-kind, entity id, formatted qualified
// reference.
func kindSpecificFields(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Branch:
		return fmt.Sprintf(" has_else=%t is_const=%t", v.HasElse, v.IsConst)
	case *ast.CaseClause:
		return fmt.Sprintf(" is_fallthrough=%t", v.Fallthrough)
	case *ast.DoWhileLoop:
		return " is_dowhile=true"
	case *ast.BinExpr:
		return fmt.Sprintf(" op=%s", binOpSymbol(v.Op))
	case *ast.UnaryExpr:
		return fmt.Sprintf(" op=%s", unaryOpSymbol(v.Op))
	case *ast.ScalarLit:
		return fmt.Sprintf(" kind=%s value=%q", scalarKindName(v.LitKind), v.Text)
	case *ast.EntityRef:
		return fmt.Sprintf(" EntityID=%d", v.EntityID)
	case *ast.QualifiedTypeRef:
		return fmt.Sprintf(" type=%s", formatQualifiedRef(v))
	case *ast.VarDecl:
		return fmt.Sprintf(" EntityID=%d", v.EntityID)
	case *ast.ProcDecl:
		return fmt.Sprintf(" EntityID=%d", v.EntityID)
	case *ast.Namespace:
		return fmt.Sprintf(" EntityID=%d", v.EntityID)
	case *ast.StructDecl:
		return fmt.Sprintf(" EntityID=%d", v.EntityID)
	case *ast.CastExpr:
		return fmt.Sprintf(" type=%s", formatQualifiedRef(v.Target))
	default:
		return ""
	}
}

func formatQualifiedRef(t *ast.QualifiedTypeRef) string {
	if t == nil {
		return "<nil>"
	}
	name := fmt.Sprintf("EntityID=%d", t.EntityID)
	if t.Thunk != nil {
		name = t.Thunk.Name
	}
	ptrs := strings.Repeat("$", int(t.PointerDepth))
	var arr strings.Builder
	for _, n := range t.ArrayLens {
		fmt.Fprintf(&arr, "[%d]", n)
	}
	return ptrs + name + arr.String()
}

func binOpSymbol(op ast.BinOp) string {
	symbols := map[ast.BinOp]string{
		ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%",
		ast.OpBitAnd: "&", ast.OpBitOr: "|", ast.OpBitXor: "^", ast.OpShl: "<<", ast.OpShr: ">>",
		ast.OpLogAnd: "&&", ast.OpLogOr: "||", ast.OpEq: "==", ast.OpNeq: "!=",
		ast.OpLt: "<", ast.OpGt: ">", ast.OpLe: "<=", ast.OpGe: ">=", ast.OpAssign: "=",
		ast.OpAddAssign: "+=", ast.OpSubAssign: "-=", ast.OpMulAssign: "*=", ast.OpDivAssign: "/=",
		ast.OpModAssign: "%=", ast.OpAndAssign: "&=", ast.OpOrAssign: "|=", ast.OpXorAssign: "^=",
		ast.OpShlAssign: "<<=", ast.OpShrAssign: ">>=", ast.OpMember: ".", ast.OpAs: "as", ast.OpScope: "::",
	}
	if s, ok := symbols[op]; ok {
		return s
	}
	return "?"
}

func unaryOpSymbol(op ast.UnaryOp) string {
	symbols := map[ast.UnaryOp]string{
		ast.UnaryNeg: "-", ast.UnaryNot: "!", ast.UnaryBitNot: "~", ast.UnaryAddr: "$",
		ast.UnaryDeref: "*", ast.UnaryPreIncr: "++", ast.UnaryPreDecr: "--",
		ast.UnaryPostIncr: "++", ast.UnaryPostDecr: "--",
	}
	if s, ok := symbols[op]; ok {
		return s
	}
	return "?"
}

func scalarKindName(k ast.ScalarKind) string {
	names := map[ast.ScalarKind]string{
		ast.ScalarInt: "int", ast.ScalarFloat: "float", ast.ScalarHex: "hex",
		ast.ScalarOctal: "octal", ast.ScalarByte: "byte", ast.ScalarString: "string",
		ast.ScalarBool: "bool", ast.ScalarNull: "null",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}
