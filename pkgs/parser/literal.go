package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/token"
)

// parseLiteral consumes the current scalar-literal token and builds
// the corresponding ast.ScalarLit, decoding escapes for byte/string
// literals here — the lexer only ever validates that an escape is
// well-formed, it never resolves one to a value.
func (p *parser) parseLiteral() (ast.Node, error) {
	tok := p.cur()
	pos := p.pos()
	text := tok.Value(p.ctx.Lexer.GetBytes())

	switch tok.Kind {
	case token.IntLit:
		p.advance()
		n := &ast.ScalarLit{LitKind: ast.ScalarInt, Text: text}
		n.SetPos(pos)
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			n.Int = v
		}
		return n, nil

	case token.FloatLit:
		p.advance()
		n := &ast.ScalarLit{LitKind: ast.ScalarFloat, Text: text}
		n.SetPos(pos)
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			n.Float = v
		}
		return n, nil

	case token.HexLit:
		p.advance()
		n := &ast.ScalarLit{LitKind: ast.ScalarHex, Text: text}
		n.SetPos(pos)
		if v, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X"), 16, 64); err == nil {
			n.Int = v
		}
		return n, nil

	case token.OctalLit:
		p.advance()
		n := &ast.ScalarLit{LitKind: ast.ScalarOctal, Text: text}
		n.SetPos(pos)
		if v, err := strconv.ParseInt(text, 8, 64); err == nil {
			n.Int = v
		}
		return n, nil

	case token.BoolLit:
		p.advance()
		n := &ast.ScalarLit{LitKind: ast.ScalarBool, Text: text, Bool: text == "true"}
		n.SetPos(pos)
		return n, nil

	case token.NullLit:
		p.advance()
		n := &ast.ScalarLit{LitKind: ast.ScalarNull, Text: text}
		n.SetPos(pos)
		return n, nil

	case token.ByteLit:
		p.advance()
		unescaped, err := unescapeQuoted(text, '\'')
		if err != nil {
			return nil, err
		}
		n := &ast.ScalarLit{LitKind: ast.ScalarByte, Text: unescaped}
		n.SetPos(pos)
		if len(unescaped) > 0 {
			n.Int = int64(unescaped[0])
		}
		return n, nil

	case token.StringLit:
		p.advance()
		quote := byte('"')
		if strings.HasPrefix(text, "`") {
			quote = '`'
		}
		unescaped, err := unescapeQuoted(text, quote)
		if err != nil {
			return nil, err
		}
		n := &ast.ScalarLit{LitKind: ast.ScalarString, Text: unescaped}
		n.SetPos(pos)
		return n, nil
	}

	return nil, fmt.Errorf("expected literal, found %s", tok.Kind)
}

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// unescapeQuoted strips the surrounding quote byte and resolves
// backslash escapes (\n \t \r \a \b \f \v \\ \' \" \nnn \xH[H]). A
// backtick-quoted string is raw and returned with only its quotes
// stripped.
func unescapeQuoted(text string, quote byte) (string, error) {
	if len(text) < 2 || text[0] != quote || text[len(text)-1] != quote {
		return "", fmt.Errorf("malformed literal %q", text)
	}
	body := text[1 : len(text)-1]
	if quote == '`' {
		return body, nil
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("malformed escape in literal %q", text)
		}
		switch {
		case body[i] == 'n':
			sb.WriteByte('\n')
		case body[i] == 't':
			sb.WriteByte('\t')
		case body[i] == 'r':
			sb.WriteByte('\r')
		case body[i] == 'a':
			sb.WriteByte('\a')
		case body[i] == 'b':
			sb.WriteByte('\b')
		case body[i] == 'f':
			sb.WriteByte('\f')
		case body[i] == 'v':
			sb.WriteByte('\v')
		case body[i] == '\\':
			sb.WriteByte('\\')
		case body[i] == '\'':
			sb.WriteByte('\'')
		case body[i] == '"':
			sb.WriteByte('"')
		case body[i] == 'x':
			j := i + 1
			end := j
			for end < len(body) && end < j+2 && isHexDigit(body[end]) {
				end++
			}
			if end == j {
				return "", fmt.Errorf("truncated \\x escape in literal %q", text)
			}
			v, err := strconv.ParseUint(body[j:end], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape in literal %q: %w", text, err)
			}
			sb.WriteByte(byte(v))
			i = end - 1
		case isOctalDigit(body[i]):
			j := i
			end := j
			for end < len(body) && end < j+3 && isOctalDigit(body[end]) {
				end++
			}
			v, err := strconv.ParseUint(body[j:end], 8, 8)
			if err != nil {
				return "", fmt.Errorf("bad octal escape in literal %q: %w", text, err)
			}
			sb.WriteByte(byte(v))
			i = end - 1
		default:
			return "", fmt.Errorf("unknown escape \\%c in literal %q", body[i], text)
		}
	}
	return sb.String(), nil
}
