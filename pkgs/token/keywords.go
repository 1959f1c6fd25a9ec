package token

import "github.com/twmb/murmur3"

// keywordSeed matches the normative seed used for keyword hashing.
const keywordSeed uint32 = 0xbeef

// maxKeywordLen bounds candidates worth hashing at all; nothing in the
// keyword set below is longer than this.
const maxKeywordLen = 15

type keywordEntry struct {
	text string
	kind Kind
}

var keywordText = map[Kind]string{
	Proc:        "proc",
	Let:         "let",
	Const:       "const",
	If:          "if",
	Else:        "else",
	While:       "while",
	For:         "for",
	Do:          "do",
	Return:      "return",
	Break:       "break",
	Continue:    "continue",
	Namespace:   "namespace",
	Struct:      "struct",
	Switch:      "switch",
	Case:        "case",
	Default:     "default",
	Fallthrough: "fallthrough",
	Defer:       "defer",
	DeferIf:     "defer_if",
	Sizeof:      "sizeof",
	Typeof:      "typeof",
	As:          "as",
	Scope:       "scope",
}

// keywordHashes is built once at init from keywordText. It plays the
// role the original source's compile-time switch-over-hash-literals
// plays: a candidate identifier hashes into (at most) one bucket, and
// the bucket's stored text is compared bytewise before the match is
// trusted, so an accidental hash collision can never misclassify an
// identifier as a keyword.
var keywordHashes = make(map[uint32]keywordEntry, len(keywordText))

func init() {
	for kind, text := range keywordText {
		h := hashKeyword(text)
		if existing, collide := keywordHashes[h]; collide {
			panic("token: murmur3 hash collision between keywords " + existing.text + " and " + text)
		}
		keywordHashes[h] = keywordEntry{text: text, kind: kind}
	}
}

func hashKeyword(s string) uint32 {
	return murmur3.SeedSum32(keywordSeed, []byte(s))
}

// LookupKeyword reports whether the identifier-shaped byte slice ident
// names a reserved keyword. The candidate is hashed with Murmur3 and
// the hash bucket's stored text is compared bytewise to ident before a
// match is accepted.
func LookupKeyword(ident []byte) (Kind, bool) {
	if len(ident) == 0 || len(ident) > maxKeywordLen {
		return None, false
	}
	h := murmur3.SeedSum32(keywordSeed, ident)
	entry, found := keywordHashes[h]
	if !found || entry.text != string(ident) {
		return None, false
	}
	return entry.kind, true
}
