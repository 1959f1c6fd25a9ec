package lexer

// reservedByte marks the punctuator/operator lead bytes plus
// whitespace controls. Built once; the lexer does not consult it —
// identifier scanning stops at the first byte outside identPart.
var reservedByte [256]bool

var identStart [256]bool
var identPart [256]bool
var digitByte [256]bool

func init() {
	for _, b := range []byte{
		' ', '\t', '\r', '\v', '\b', '\a', '\n', 0,
		';', '[', ']', '(', ')', '{', '}', ',', '@', '$', '~',
		'+', '-', '*', '/', '%', '=', '<', '>', '&', '|', '^', '!', ':', '.',
		'\'', '"', '`', '#', '\\', '?',
	} {
		reservedByte[b] = true
	}

	for c := byte('a'); c <= 'z'; c++ {
		identStart[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		identStart[c] = true
	}
	identStart['_'] = true

	for c := byte('0'); c <= '9'; c++ {
		digitByte[c] = true
	}

	copy(identPart[:], identStart[:])
	for c := byte('0'); c <= '9'; c++ {
		identPart[c] = true
	}
	for b := 128; b < 256; b++ {
		// UTF-8 continuation/lead bytes are never "reserved"; they are
		// consumed as part of identifiers/strings by explicit decoding.
		identPart[b] = true
		identStart[b] = true
	}
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\b' || b == '\a'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}
