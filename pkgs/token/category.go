package token

import "strings"

// Category is a bitset classifying a token for parser dispatch,
// independent of its specific Kind. A token may belong to several
// categories at once (e.g. Minus is both UnaryOp and BinaryOp).
type Category uint32

const (
	Punctuator Category = 1 << iota
	UnaryOp
	BinaryOp
	Literal
	Keyword
	IdentifierCat
	LogicalOp
	ArithmeticOp
	BitwiseOp
	ComparisonOp
	ArithAssignOp
	PointerArithOp
	ValidPostfix
	ValidPrefix
	BitwiseAssignOp
	Terminator
	ControlFlow
	NonCategorical
)

// Has reports whether c contains every flag in want.
func (c Category) Has(want Category) bool {
	return c&want == want
}

// Any reports whether c contains at least one flag in want.
func (c Category) Any(want Category) bool {
	return c&want != 0
}

// categoryTable maps every Kind to its fixed set of categories. Built
// once at init time and never mutated.
var categoryTable [int(Scope) + 1]Category

func set(k Kind, cats ...Category) {
	var c Category
	for _, x := range cats {
		c |= x
	}
	categoryTable[k] = c
}

func init() {
	set(EOF, NonCategorical)
	set(Illegal, NonCategorical)
	set(None, NonCategorical)

	set(Identifier, IdentifierCat, ValidPrefix)

	for _, k := range []Kind{IntLit, FloatLit, HexLit, OctalLit, ByteLit, StringLit, BoolLit, NullLit} {
		set(k, Literal, ValidPrefix)
	}

	set(Semicolon, Punctuator, Terminator)
	set(Comma, Punctuator, Terminator)
	set(LParen, Punctuator, ValidPostfix)
	set(RParen, Punctuator)
	set(LBracket, Punctuator, ValidPostfix)
	set(RBracket, Punctuator)
	set(LBrace, Punctuator)
	set(RBrace, Punctuator)
	set(At, Punctuator)
	set(Dollar, Punctuator)
	set(Tilde, Punctuator, UnaryOp, ValidPrefix)

	set(Plus, BinaryOp, UnaryOp, ArithmeticOp, PointerArithOp, ValidPrefix)
	set(Minus, BinaryOp, UnaryOp, ArithmeticOp, PointerArithOp, ValidPrefix)
	set(Star, BinaryOp, ArithmeticOp)
	set(Slash, BinaryOp, ArithmeticOp)
	set(Percent, BinaryOp, ArithmeticOp)

	set(PlusPlus, UnaryOp, ValidPrefix, ValidPostfix)
	set(MinusMinus, UnaryOp, ValidPrefix, ValidPostfix)

	set(PlusEq, BinaryOp, ArithAssignOp)
	set(MinusEq, BinaryOp, ArithAssignOp)
	set(StarEq, BinaryOp, ArithAssignOp)
	set(SlashEq, BinaryOp, ArithAssignOp)
	set(PercentEq, BinaryOp, ArithAssignOp)

	set(Arrow, Punctuator)

	set(Amp, BinaryOp, UnaryOp, BitwiseOp, PointerArithOp, ValidPrefix)
	set(Pipe, BinaryOp, BitwiseOp)
	set(Caret, BinaryOp, BitwiseOp)
	set(Shl, BinaryOp, BitwiseOp)
	set(Shr, BinaryOp, BitwiseOp)

	set(AmpEq, BinaryOp, BitwiseAssignOp)
	set(PipeEq, BinaryOp, BitwiseAssignOp)
	set(CaretEq, BinaryOp, BitwiseAssignOp)
	set(ShlEq, BinaryOp, BitwiseAssignOp)
	set(ShrEq, BinaryOp, BitwiseAssignOp)

	set(AmpAmp, BinaryOp, LogicalOp)
	set(PipePipe, BinaryOp, LogicalOp)
	set(Bang, UnaryOp, LogicalOp, ValidPrefix)

	set(EqEq, BinaryOp, ComparisonOp)
	set(BangEq, BinaryOp, ComparisonOp)
	set(Lt, BinaryOp, ComparisonOp)
	set(Gt, BinaryOp, ComparisonOp)
	set(LtEq, BinaryOp, ComparisonOp)
	set(GtEq, BinaryOp, ComparisonOp)

	set(Eq, BinaryOp, Punctuator)
	set(FatArrow, Punctuator)

	set(Colon, Punctuator)
	set(ColonColon, BinaryOp, Punctuator)

	set(Dot, BinaryOp, Punctuator)
	set(DotDot, Punctuator)
	set(DotDotDot, Punctuator)

	for _, k := range []Kind{Proc, Let, Const, Namespace, Struct, Sizeof, Typeof, Scope} {
		set(k, Keyword)
	}
	for _, k := range []Kind{If, Else, While, For, Do, Return, Break, Continue,
		Switch, Case, Default, Fallthrough, Defer, DeferIf} {
		set(k, Keyword, ControlFlow)
	}
	set(As, Keyword, BinaryOp)
}

var categoryNames = []struct {
	flag Category
	name string
}{
	{Punctuator, "Punctuator"}, {UnaryOp, "UnaryOp"}, {BinaryOp, "BinaryOp"},
	{Literal, "Literal"}, {Keyword, "Keyword"}, {IdentifierCat, "Identifier"},
	{LogicalOp, "LogicalOp"}, {ArithmeticOp, "ArithmeticOp"}, {BitwiseOp, "BitwiseOp"},
	{ComparisonOp, "ComparisonOp"}, {ArithAssignOp, "ArithAssignOp"},
	{PointerArithOp, "PointerArithOp"}, {ValidPostfix, "ValidPostfix"},
	{ValidPrefix, "ValidPrefix"}, {BitwiseAssignOp, "BitwiseAssignOp"},
	{Terminator, "Terminator"}, {ControlFlow, "ControlFlow"}, {NonCategorical, "NonCategorical"},
}

// String lists every flag set in c, joined with '|', for diagnostics
// and the --dump-tokens output.
func (c Category) String() string {
	var names []string
	for _, e := range categoryNames {
		if c.Has(e.flag) {
			names = append(names, e.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// CategoriesOf returns the fixed category set for k.
func CategoriesOf(k Kind) Category {
	if int(k) < 0 || int(k) >= len(categoryTable) {
		return NonCategorical
	}
	return categoryTable[k]
}
