package parser

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/entity"
	"github.com/nyxlang/nyxc/pkgs/token"
)

// parseQualifiedTypeRef parses a '::'-scoped type name. Pointer depth
// is written as leading '$' markers, one per level (`$$i32`). Array
// lengths follow as any number of bracketed integer literals:
// `i32[4][8]`.
func (p *parser) parseQualifiedTypeRef() (*ast.QualifiedTypeRef, error) {
	pos := p.pos()

	var ptrDepth uint32
	for p.at(token.Dollar) {
		p.advance()
		ptrDepth++
	}

	if !p.atCategory(token.IdentifierCat) {
		return nil, fmt.Errorf("expected type name, found %s", p.cur().Kind)
	}

	name, id, err := p.parseScopedName()
	if err != nil {
		return nil, err
	}

	var arrayLens []int
	for p.at(token.LBracket) {
		p.advance()
		lenTok, err := p.expect(token.IntLit)
		if err != nil {
			return nil, err
		}
		n := parseIntText(lenTok.Value(p.ctx.Lexer.GetBytes()))
		arrayLens = append(arrayLens, n)
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
	}

	thunk := &entity.QualifierThunk{Name: name, PointerDepth: ptrDepth, ArrayLens: arrayLens}
	return ast.NewQualifiedTypeRef(pos, id, thunk, ptrDepth, arrayLens), nil
}

func parseIntText(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// parseScopedName parses an Identifier('::'Identifier)* chain,
// resolving (or placeholder-inserting) each segment against the
// previous segment's entity — the same walk parse_deep_ident_ performs
// for expression-position references, shared here for type names.
func (p *parser) parseScopedName() (string, entity.ID, error) {
	parent := p.ctx.NamespaceID
	if p.at(token.ColonColon) {
		p.advance()
		parent = entity.RootID
	}

	tok, err := p.expect(token.Identifier)
	if err != nil {
		return "", entity.InvalidID, err
	}
	name := tok.Value(p.ctx.Lexer.GetBytes())
	id := p.resolveOrPlaceholder(parent, tok, name)

	for p.at(token.ColonColon) {
		p.advance()
		segTok, err := p.expect(token.Identifier)
		if err != nil {
			return "", entity.InvalidID, err
		}
		seg := segTok.Value(p.ctx.Lexer.GetBytes())
		name += "::" + seg
		id = p.resolveOrPlaceholder(id, segTok, seg)
	}

	return name, id, nil
}

func (p *parser) resolveOrPlaceholder(parent entity.ID, tok token.Token, name string) entity.ID {
	if id, ok := p.ctx.Entities.ResolveChild(parent, name); ok {
		return id
	}
	return p.ctx.Entities.InsertPlaceholder(parent, tok.Offset, tok.Line, p.ctx.FileID, name)
}
