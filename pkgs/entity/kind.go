// Package entity implements the entity table: the monotonically-ID'd
// tree of named declarations the parser populates as it walks source
// files, including the placeholder-upgrade mechanism that lets
// forward references resolve without invalidating ids clients already
// hold.
package entity

import "fmt"

// Kind tags what an Entity actually is.
type Kind int

const (
	KindNone Kind = iota // PlaceHolder.ToBe's "not yet fixed" value
	RootEntity
	BuiltinType
	Variable
	Procedure
	TypeEntity
	StructEntity
	AliasType
	Static
	SymLink
	PlaceHolder
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case RootEntity:
		return "RootEntity"
	case BuiltinType:
		return "BuiltinType"
	case Variable:
		return "Variable"
	case Procedure:
		return "Procedure"
	case TypeEntity:
		return "Type"
	case StructEntity:
		return "Struct"
	case AliasType:
		return "AliasType"
	case Static:
		return "Static"
	case SymLink:
		return "SymLink"
	case PlaceHolder:
		return "PlaceHolder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsUDT reports whether k is one of the user-defined-type kinds that
// are mutually compatible during placeholder upgrade.
func IsUDT(k Kind) bool {
	switch k {
	case StructEntity, TypeEntity, AliasType, BuiltinType:
		return true
	default:
		return false
	}
}

// ID is a monotonic entity identifier. Zero is invalid; 1 is always
// the root.
type ID uint32

// InvalidID is the reserved zero value.
const InvalidID ID = 0

// RootID is always the id of the single RootEntity.
const RootID ID = 1

// BuiltinNames lists the fixed builtin-type entities inserted at
// table construction, in the order their reserved ids are assigned.
var BuiltinNames = []string{
	"i8", "u8", "i16", "u16", "i32", "u32", "i64", "u64", "f32", "f64", "ptr", "bool",
}
