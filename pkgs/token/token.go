package token

// Token is a cheaply copyable value type: it never owns the text it
// covers. The textual value is reconstructed on demand by slicing the
// owning source buffer's bytes.
type Token struct {
	Offset   uint32 // byte offset into the source buffer
	Length   uint32 // byte length; 0 is legal only for EOF-like markers
	Line     uint32 // 1-based line number
	Category Category
	Kind     Kind
}

// Value reconstructs the token's text from the given source bytes.
func (t Token) Value(src []byte) string {
	if t.Length == 0 {
		return ""
	}
	end := int(t.Offset) + int(t.Length)
	if end > len(src) {
		end = len(src)
	}
	if int(t.Offset) > len(src) {
		return ""
	}
	return string(src[t.Offset:end])
}

// Is reports whether the token's kind is k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// In reports whether the token belongs to every category in cats.
func (t Token) In(cats Category) bool { return t.Category.Has(cats) }

// New builds a token at the given coordinates, deriving its category
// from its kind.
func New(kind Kind, offset, length, line uint32) Token {
	return Token{
		Offset:   offset,
		Length:   length,
		Line:     line,
		Category: CategoriesOf(kind),
		Kind:     kind,
	}
}
