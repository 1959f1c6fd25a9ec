package parser

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/entity"
	"github.com/nyxlang/nyxc/pkgs/token"
)

// parseTopLevel dispatches on the current token's category/kind to one
// of the handful of constructs valid at file scope: an @include
// directive, a namespace, a struct, a procedure, a let/const
// variable, or a const-if. Anything else is top-level-invalid and yields a BadExpr
// rather than aborting the file, per spec.md's top-level filter.
func (p *parser) parseTopLevel() (ast.Node, error) {
	switch p.cur().Kind {
	case token.At:
		return p.parseInclude()
	case token.Namespace:
		return p.parseNamespace()
	case token.Struct:
		return p.parseStructDecl()
	case token.Proc:
		return p.parseProcDecl()
	case token.Let, token.Const:
		return p.parseVarDecl(true)
	case token.If:
		branch, err := p.parseBranch()
		if err != nil {
			return nil, err
		}
		if !branch.IsConst {
			pos := branch.Position()
			p.ctx.Errors.AddError(p.ctx.FileID, pos.Offset, pos.Line,
				"a plain if/else is not valid at top level, only const-if is")
			bad := ast.NewBadExpr(pos)
			return bad, nil
		}
		return branch, nil
	default:
		return p.parseTopLevelBadExpr()
	}
}

// parseTopLevelBadExpr handles any token that cannot start one of the
// productions parseTopLevel dispatches on. Rather than abandoning the
// file, it parses the offending construct as an ordinary statement so
// the tokens are consumed coherently, records a diagnostic, and yields
// a BadExpr node in its place.
func (p *parser) parseTopLevelBadExpr() (ast.Node, error) {
	pos := p.pos()
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	p.ctx.Errors.AddError(p.ctx.FileID, pos.Offset, pos.Line,
		fmt.Sprintf("%s is not valid at top level", describeNode(stmt)))
	return ast.NewBadExpr(pos), nil
}

func describeNode(n ast.Node) string {
	if n == nil {
		return "statement"
	}
	return n.Kind().String()
}

// declareKind upgrades id — a PlaceHolder inserted by an earlier
// forward reference — to kind, or, if it is already declared,
// confirms the redeclaration is compatible (re-opening the same
// namespace, or a second procedure signature sharing a forward
// declaration). Anything else is the spec's "previous declaration"
// error.
func (p *parser) declareKind(id entity.ID, kind entity.Kind, tok token.Token) (*entity.Entity, error) {
	e := p.ctx.Entities.Find(id)
	if e.Kind == entity.PlaceHolder {
		return p.ctx.Entities.SwapPlaceholder(id, kind, tok.Offset, tok.Line, p.ctx.FileID)
	}
	if e.Kind == kind || (entity.IsUDT(e.Kind) && entity.IsUDT(kind)) {
		return e, nil
	}
	return nil, fmt.Errorf(
		"entity: cannot declare %q as %s because of a previous declaration as %s",
		e.FQN, kind, e.Kind,
	)
}

// parseInclude parses `@include "path/to/file.nx"`. The driver, not
// the parser, resolves and queues the named file — here it is only
// recorded as a no-AST directive consumed from the token stream, per
// this repo's decision that @include participates in the worklist
// rather than the tree (see DESIGN.md's Open Questions).
func (p *parser) parseInclude() (ast.Node, error) {
	p.advance() // '@'
	kw, err := p.expect(token.Identifier)
	if err != nil {
		return nil, fmt.Errorf("expected 'include' after '@', found %s", p.cur().Kind)
	}
	if kw.Value(p.ctx.Lexer.GetBytes()) != "include" {
		return nil, fmt.Errorf("unknown directive @%s", kw.Value(p.ctx.Lexer.GetBytes()))
	}
	pathTok, err := p.expect(token.StringLit)
	if err != nil {
		return nil, err
	}
	path, err := unescapeQuoted(pathTok.Value(p.ctx.Lexer.GetBytes()), '"')
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	p.ctx.Includes = append(p.ctx.Includes, path)
	return nil, nil
}

// parseNamespace parses `namespace A::B::C { body }` or the
// single-statement form `namespace A::B::C <stmt>`. It walks/creates
// the entity chain via the same deep-ident algorithm as type and
// expression references, upgrades the final segment to Static, then
// parses the body with current_namespace temporarily set to it.
func (p *parser) parseNamespace() (*ast.Namespace, error) {
	pos := p.pos()
	p.advance() // 'namespace'

	lastTok := p.cur()
	_, id, err := p.parseScopedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.declareKind(id, entity.Static, lastTok); err != nil {
		return nil, err
	}

	node := ast.NewNamespace(pos, id)

	savedNS := p.ctx.NamespaceID
	p.ctx.NamespaceID = id
	defer func() { p.ctx.NamespaceID = savedNS }()

	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			before := p.cur()
			decl, err := p.parseTopLevel()
			if err != nil {
				p.recordError(before, err)
				p.recoverToTopLevel()
				continue
			}
			if decl != nil {
				node.Append(decl)
			}
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
		return node, nil
	}

	decl, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	if decl != nil {
		node.Append(decl)
	}
	return node, nil
}

func (p *parser) parseStructDecl() (*ast.StructDecl, error) {
	pos := p.pos()
	p.advance() // 'struct'
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	name := nameTok.Value(p.ctx.Lexer.GetBytes())

	id := p.ctx.Entities.InsertPlaceholder(p.ctx.NamespaceID, nameTok.Offset, nameTok.Line, p.ctx.FileID, name)
	if _, err := p.declareKind(id, entity.StructEntity, nameTok); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var fields []*ast.VarDecl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, err := p.parseVarDecl(false)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return ast.NewStructDecl(pos, id, fields), nil
}

// parseVarDecl parses `(let|const) name[: Type] [= expr]`. withSemicolon
// controls whether the trailing ';' is consumed here (top-level and
// statement-position declarations own their own ';'; a struct field
// declaration's caller consumes it instead, since struct fields share
// the same shape without the keyword).
func (p *parser) parseVarDecl(withSemicolon bool) (*ast.VarDecl, error) {
	pos := p.pos()
	isConst := false
	if p.at(token.Let) || p.at(token.Const) {
		isConst = p.at(token.Const)
		p.advance()
	}

	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	name := nameTok.Value(p.ctx.Lexer.GetBytes())

	var typeRef *ast.QualifiedTypeRef
	if p.at(token.Colon) {
		p.advance()
		typeRef, err = p.parseQualifiedTypeRef()
		if err != nil {
			return nil, err
		}
	}

	var init ast.Node
	if p.at(token.Eq) {
		p.advance()
		init, err = p.parseExpr(1)
		if err != nil {
			return nil, err
		}
	}

	kind := entity.Variable
	if isConst {
		kind = entity.Static
	}
	id := p.ctx.Entities.InsertPlaceholder(p.ctx.NamespaceID, nameTok.Offset, nameTok.Line, p.ctx.FileID, name)
	e, err := p.declareKind(id, kind, nameTok)
	if err != nil {
		return nil, err
	}
	if typeRef != nil {
		e.VarTypeTh = typeRef.Thunk
	}

	node := ast.NewVarDecl(pos, id, typeRef, init)

	if withSemicolon {
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *parser) parseProcDecl() (*ast.ProcDecl, error) {
	pos := p.pos()
	p.advance() // 'proc'

	lastTok := p.cur()
	_, id, err := p.parseScopedName()
	if err != nil {
		return nil, err
	}
	e, err := p.declareKind(id, entity.Procedure, lastTok)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []*ast.VarDecl
	for !p.at(token.RParen) {
		pNameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		pName := pNameTok.Value(p.ctx.Lexer.GetBytes())
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		pType, err := p.parseQualifiedTypeRef()
		if err != nil {
			return nil, err
		}
		pid := p.ctx.Entities.Insert(id, pNameTok.Offset, pNameTok.Line, p.ctx.FileID, pName, entity.Variable)
		pid.VarTypeTh = pType.Thunk
		params = append(params, ast.NewVarDecl(p.posOf(pNameTok), pid.ID, pType, nil))
		e.Params = append(e.Params, pid.ID)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	var ret *ast.QualifiedTypeRef
	if p.at(token.Arrow) {
		p.advance()
		ret, err = p.parseQualifiedTypeRef()
		if err != nil {
			return nil, err
		}
		e.ReturnTh = ret.Thunk
	}

	var body []ast.Node
	if p.at(token.Semicolon) {
		p.advance() // forward declaration / extern proc
	} else {
		savedNS := p.ctx.NamespaceID
		p.ctx.NamespaceID = id
		body, err = p.parseBlockBody()
		p.ctx.NamespaceID = savedNS
		if err != nil {
			return nil, err
		}
	}

	return ast.NewProcDecl(pos, id, params, ret, body), nil
}

// parseBlockBody parses a brace-delimited statement list.
func (p *parser) parseBlockBody() ([]ast.Node, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}
