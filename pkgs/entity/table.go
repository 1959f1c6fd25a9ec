package entity

import (
	"fmt"

	"github.com/nyxlang/nyxc/internal/invariant"
	"github.com/nyxlang/nyxc/pkgs/lexer"
)

// maxSymlinkHops bounds SymLink chain collapsing; exceeding it is a
// programming error (a cycle), not a user-visible failure.
const maxSymlinkHops = 64

// Table owns every entity ever inserted. IDs are monotonic, so a dense
// slice indexed by id (index 0 unused) is the storage — the table is
// the sole authoritative owner; AST nodes only ever hold an ID.
type Table struct {
	entities []*Entity // entities[0] is a nil sentinel; real ids start at 1
}

// NewTable constructs a table pre-populated with the root entity and
// the fixed builtin-type entities, per spec.md §4.3.
func NewTable() *Table {
	t := &Table{entities: make([]*Entity, 1, 16)}

	root := &Entity{ID: RootID, Parent: InvalidID, Kind: RootEntity, Local: "", FQN: "::"}
	t.entities = append(t.entities, root)

	for _, name := range BuiltinNames {
		id := ID(len(t.entities))
		bt := &Entity{
			ID:     id,
			Parent: RootID,
			Kind:   BuiltinType,
			Local:  name,
			FQN:    "::" + name,
		}
		t.entities = append(t.entities, bt)
		root.Children = append(root.Children, id)
	}

	return t
}

// nextID returns the id that the next insertion will receive.
func (t *Table) nextID() ID { return ID(len(t.entities)) }

func (t *Table) raw(id ID) *Entity {
	invariant.Assert(id != InvalidID && int(id) < len(t.entities), "entity: invalid EntityID %d", id)
	e := t.entities[id]
	invariant.Assert(e != nil, "entity: invalid EntityID %d", id)
	return e
}

// Exists reports whether id names a live entity without panicking.
func (t *Table) Exists(id ID) bool {
	return id != InvalidID && int(id) < len(t.entities) && t.entities[id] != nil
}

// Find fetches the entity for id, collapsing a SymLink chain down to
// the first non-SymLink entity. An invalid id, or a chain exceeding
// maxSymlinkHops, is an invariant violation and panics.
func (t *Table) Find(id ID) *Entity {
	e := t.raw(id)
	hops := 0
	for e.Kind == SymLink {
		hops++
		invariant.Assert(hops <= maxSymlinkHops, "entity: SymLink cycle detected starting at id %d", id)
		e = t.raw(e.Link)
	}
	return e
}

// FindIf returns the first entity matching pred, scanning in id order.
func (t *Table) FindIf(pred func(*Entity) bool) (*Entity, bool) {
	for _, e := range t.entities {
		if e != nil && pred(e) {
			return e, true
		}
	}
	return nil, false
}

// All returns every live entity in ascending id order (index 0 and
// nil holes excluded). Used by dump.
func (t *Table) All() []*Entity {
	out := make([]*Entity, 0, len(t.entities)-1)
	for _, e := range t.entities {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func fqnOf(parent *Entity, local string) string {
	if parent.FQN == "::" {
		return "::" + local
	}
	return parent.FQN + "::" + local
}

// Insert creates a new entity of the given kind as a child of parent
// and assigns it the next monotonic id. The parent must already
// exist.
func (t *Table) Insert(parent ID, pos, line uint32, file lexer.InputFileID, local string, kind Kind) *Entity {
	parentEnt := t.raw(parent)
	id := t.nextID()
	e := &Entity{
		ID:     id,
		Parent: parent,
		Pos:    pos,
		Line:   line,
		File:   file,
		Kind:   kind,
		Local:  local,
		FQN:    fqnOf(parentEnt, local),
	}
	t.entities = append(t.entities, e)
	parentEnt.Children = append(parentEnt.Children, id)
	return e
}

// SwapEntity replaces id's kind-defining fields while preserving its
// children, FQN, and local name. Any reference already held to id
// remains valid and now observes the new kind.
func (t *Table) SwapEntity(id ID, kind Kind, pos, line uint32, file lexer.InputFileID) *Entity {
	e := t.raw(id)
	e.Kind = kind
	e.Pos = pos
	e.Line = line
	e.File = file
	// Kind-specific payload fields are the caller's responsibility to
	// populate after the swap (Link, Params, Return, VarType, …);
	// SwapEntity only performs the identity-preserving kind change.
	return e
}

// SwapPlaceholder upgrades id — which must currently be a PlaceHolder
// — to kind, per spec.md §4.3's algorithm. It fails if the
// placeholder's tentative ToBe kind is already fixed to something
// incompatible with kind.
func (t *Table) SwapPlaceholder(id ID, kind Kind, pos, line uint32, file lexer.InputFileID) (*Entity, error) {
	old := t.raw(id)
	if old.Kind != PlaceHolder {
		return nil, fmt.Errorf("entity: SwapPlaceholder on id %d which is not a PlaceHolder (kind=%s)", id, old.Kind)
	}

	switch {
	case old.ToBe == KindNone:
		old.ToBe = kind
	case IsUDT(old.ToBe) && IsUDT(kind):
		old.ToBe = kind
	case old.ToBe != kind:
		return nil, fmt.Errorf(
			"entity: cannot declare %q as %s because of a previous declaration as %s",
			old.FQN, kind, old.ToBe,
		)
	}

	return t.SwapEntity(id, kind, pos, line, file), nil
}

// ResolveChild looks up a direct child of parent by local name.
func (t *Table) ResolveChild(parent ID, local string) (ID, bool) {
	p := t.raw(parent)
	for _, cid := range p.Children {
		c := t.raw(cid)
		if c.Local == local {
			return cid, true
		}
	}
	return InvalidID, false
}

// InsertPlaceholder inserts a forward-reference placeholder as a child
// of parent, or returns an existing child of the same name unchanged
// (parse_deep_ident_ never inserts a duplicate for a name it has
// already created a placeholder or real entity for).
func (t *Table) InsertPlaceholder(parent ID, pos, line uint32, file lexer.InputFileID, local string) ID {
	if existing, ok := t.ResolveChild(parent, local); ok {
		return existing
	}
	e := t.Insert(parent, pos, line, file, local, PlaceHolder)
	e.ToBe = KindNone
	return e.ID
}
