package dump

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/entity"
)

// ASTSnapshot is a plain-data mirror of an ast.Node tree — the AST
// itself is an interface tree with unexported fields, so it can't be
// handed to cbor directly. This is only ever used by golden-file
// round-trip tests; it is not the normative dump (that's Writer.AST).
type ASTSnapshot struct {
	Kind     string
	File     uint32
	Line     uint32
	Offset   uint32
	Fields   string
	Children []ASTSnapshot
}

func snapshotNode(n ast.Node) ASTSnapshot {
	if n == nil {
		return ASTSnapshot{}
	}
	pos := n.Position()
	s := ASTSnapshot{
		Kind:   n.Kind().String(),
		File:   uint32(pos.File),
		Line:   pos.Line,
		Offset: pos.Offset,
		Fields: kindSpecificFields(n),
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, snapshotNode(c))
	}
	return s
}

// EncodeAST serializes root to a CBOR snapshot for a golden-file
// round-trip test.
func EncodeAST(root ast.Node) ([]byte, error) {
	return cbor.Marshal(snapshotNode(root))
}

// DecodeASTSnapshot reverses EncodeAST.
func DecodeASTSnapshot(data []byte) (ASTSnapshot, error) {
	var s ASTSnapshot
	err := cbor.Unmarshal(data, &s)
	return s, err
}

// EntitySnapshot mirrors entity.Table.All() for the same golden-file
// purpose — entity.Entity is already plain data, so this only exists
// to pin a stable wire format independent of field order.
type EntitySnapshot struct {
	ID     uint32
	Parent uint32
	Kind   string
	Local  string
	FQN    string
}

// EncodeEntities serializes every entity in t to CBOR.
func EncodeEntities(t *entity.Table) ([]byte, error) {
	var out []EntitySnapshot
	for _, e := range t.All() {
		out = append(out, EntitySnapshot{
			ID:     uint32(e.ID),
			Parent: uint32(e.Parent),
			Kind:   e.Kind.String(),
			Local:  e.Local,
			FQN:    e.FQN,
		})
	}
	return cbor.Marshal(out)
}

// DecodeEntitySnapshot reverses EncodeEntities.
func DecodeEntitySnapshot(data []byte) ([]EntitySnapshot, error) {
	var out []EntitySnapshot
	err := cbor.Unmarshal(data, &out)
	return out, err
}
