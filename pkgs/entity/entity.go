package entity

import "github.com/nyxlang/nyxc/pkgs/lexer"

// Entity is every named declaration the table tracks. It is stored as
// a single struct rather than a per-kind type hierarchy: the fields
// below that are irrelevant to a given Kind are simply left zero. This
// is what lets swap_placeholder replace an entity's kind "in place" —
// it is a field-level mutation of the same allocation, not a
// pointer swap, so every EntityID held by a caller keeps dereferencing
// to the same storage.
type Entity struct {
	ID       ID
	Parent   ID
	Pos      uint32
	Line     uint32
	File     lexer.InputFileID
	Kind     Kind
	Local    string
	FQN      string
	Children []ID

	// PlaceHolder only: the tentative kind the swap will upgrade to.
	// KindNone means not yet fixed.
	ToBe Kind

	// SymLink only: the entity this one indirects to.
	Link ID

	// Procedure only.
	Params   []ID
	Return   *Qualifier
	ReturnTh *QualifierThunk

	// Variable only.
	VarType   *Qualifier
	VarTypeTh *QualifierThunk

	// AliasType only (a SymLink specialization that names its target type).
	AliasOf ID
}

// childOf reports whether e's children list contains want.
func (e *Entity) childOf(want ID) bool {
	for _, c := range e.Children {
		if c == want {
			return true
		}
	}
	return false
}
