package dump

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/lexer"
	"github.com/nyxlang/nyxc/pkgs/token"
)

// Tokens re-lexes src and prints each token's {kind, text, line,
// offset, categories} per spec.md §6's --dump-tokens contract — this
// dump lexes only; it never touches the parser or entity table.
func (w *Writer) Tokens(src []byte) {
	lex := lexer.New(src)
	for {
		tok := lex.Current()
		fmt.Fprintf(w.W, "%s %q line=%d offset=%d categories=%s\n",
			w.kindLabel(tok.Kind.String()), tok.Value(src), tok.Line, tok.Offset, tok.Category)
		if tok.Is(token.EOF) {
			return
		}
		lex.Consume(1)
	}
}
