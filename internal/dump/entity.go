package dump

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/entity"
)

// Entities renders the entity table in spec.md §6.3's format: same
// indentation/coloring scheme as the AST dump, one line per entity in
// id order, printing FQN, <line,offset>, kind tag, EntityID, FileID,
// and kind-specific fields (SymLink target, Proc params/return,
// qualifier flags/pointer depth/array lengths).
func (w *Writer) Entities(t *entity.Table) {
	for _, e := range t.All() {
		fmt.Fprintf(w.W, "%s %s <%d,%d> EntityID=%d FileID=%d%s\n",
			w.kindLabel(e.FQN), e.Kind, e.Line, e.Pos, e.ID, e.File, entityKindFields(e))
	}
}

// Structures renders only the user-defined-type entities (Struct,
// Type, AliasType, BuiltinType) — a compact view alongside the full
// entity dump; no CLI flag selects it.
func (w *Writer) Structures(t *entity.Table) {
	for _, e := range t.All() {
		if !entity.IsUDT(e.Kind) {
			continue
		}
		fmt.Fprintf(w.W, "%s %s EntityID=%d\n", w.kindLabel(e.FQN), e.Kind, e.ID)
		for _, childID := range e.Children {
			child := t.Find(childID)
			fmt.Fprintf(w.W, "%s  %s%s\n", w.indent(1), child.Local, entityKindFields(child))
		}
	}
}

func entityKindFields(e *entity.Entity) string {
	switch e.Kind {
	case entity.SymLink:
		return fmt.Sprintf(" link=%d", e.Link)
	case entity.AliasType:
		return fmt.Sprintf(" aliasOf=%d", e.AliasOf)
	case entity.Procedure:
		s := fmt.Sprintf(" params=%v", e.Params)
		if e.Return != nil {
			s += qualifierFields(e.Return)
		} else if e.ReturnTh != nil {
			s += fmt.Sprintf(" returnThunk=%s", e.ReturnTh.Name)
		}
		return s
	case entity.Variable, entity.Static:
		if e.VarType != nil {
			return qualifierFields(e.VarType)
		}
		if e.VarTypeTh != nil {
			return fmt.Sprintf(" typeThunk=%s", e.VarTypeTh.Name)
		}
		return ""
	case entity.PlaceHolder:
		return fmt.Sprintf(" toBe=%s", e.ToBe)
	default:
		return ""
	}
}

func qualifierFields(q *entity.Qualifier) string {
	return fmt.Sprintf(" target=%d ptrDepth=%d arrayLens=%v flags=%d",
		q.Target, q.PointerDepth, q.ArrayLens, q.Flags)
}
