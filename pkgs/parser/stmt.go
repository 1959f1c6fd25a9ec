package parser

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/token"
)

// endsWithoutTerminator reports the node kinds that never take a
// trailing ';' — they end
// with their own closing brace or are otherwise self-delimiting.
func endsWithoutTerminator(k ast.NodeKind) bool {
	switch k {
	case ast.KindProcDecl, ast.KindNamespace, ast.KindScopeBlock, ast.KindFor,
		ast.KindWhile, ast.KindIf, ast.KindConstIf, ast.KindSwitch:
		return true
	default:
		return false
	}
}

// parseStmt parses one statement-position construct, consuming its
// trailing ';' here when the construct requires one (spec.md §5.2's
// "if the produced node is one that never takes a terminator, return
// immediately; otherwise require and consume ';'").
func (p *parser) parseStmt() (ast.Node, error) {
	var node ast.Node
	var err error

	switch p.cur().Kind {
	case token.Let, token.Const:
		node, err = p.parseVarDecl(false)
	case token.If:
		node, err = p.parseBranch()
	case token.For:
		node, err = p.parseFor()
	case token.While:
		node, err = p.parseWhile()
	case token.Do:
		node, err = p.parseDoWhile()
	case token.Switch:
		node, err = p.parseSwitch()
	case token.Return:
		node, err = p.parseReturn()
	case token.Break:
		pos := p.pos()
		p.advance()
		node = ast.NewBreakStmt(pos)
	case token.Continue:
		pos := p.pos()
		p.advance()
		node = ast.NewContinueStmt(pos)
	case token.Defer:
		node, err = p.parseDefer()
	case token.DeferIf:
		node, err = p.parseDeferIf()
	case token.Scope:
		node, err = p.parseScopeBlock()
	default:
		node, err = p.parseExpr(1)
	}
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}
	if endsWithoutTerminator(node.Kind()) {
		return node, nil
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return node, nil
}

// parseBranch parses `if`/`if const` ... `else` ...; Then/Else are
// brace-delimited statement lists.
func (p *parser) parseBranch() (*ast.Branch, error) {
	pos := p.pos()
	p.advance() // 'if'

	isConst := false
	// `if const (cond)` spells the compile-time branch — 'const' right
	// after 'if', ahead of the condition.
	if p.at(token.Const) {
		isConst = true
		p.advance()
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	then, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}

	hasElse := false
	var els []ast.Node
	if p.at(token.Else) {
		hasElse = true
		p.advance()
		if p.at(token.If) {
			elseBranch, err := p.parseBranch()
			if err != nil {
				return nil, err
			}
			els = []ast.Node{elseBranch}
		} else {
			els, err = p.parseBlockBody()
			if err != nil {
				return nil, err
			}
		}
	}

	return ast.NewBranch(pos, isConst, cond, then, hasElse, els), nil
}

func (p *parser) parseFor() (*ast.ForLoop, error) {
	pos := p.pos()
	p.advance() // 'for'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var init ast.Node
	var err error
	if !p.at(token.Semicolon) {
		if p.at(token.Let) || p.at(token.Const) {
			init, err = p.parseVarDecl(false)
		} else {
			init, err = p.parseExpr(1)
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	var cond ast.Node
	if !p.at(token.Semicolon) {
		cond, err = p.parseExpr(1)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	var update ast.Node
	if !p.at(token.RParen) {
		update, err = p.parseExpr(1)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(pos, init, cond, update, body), nil
}

func (p *parser) parseWhile() (*ast.WhileLoop, error) {
	pos := p.pos()
	p.advance() // 'while'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(pos, cond, body), nil
}

func (p *parser) parseDoWhile() (*ast.DoWhileLoop, error) {
	pos := p.pos()
	p.advance() // 'do'
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.While); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	// the trailing ';' is consumed by parseStmt, like every other
	// terminator-requiring construct.
	return ast.NewDoWhileLoop(pos, body, cond), nil
}

func (p *parser) parseSwitch() (*ast.SwitchStmt, error) {
	pos := p.pos()
	p.advance() // 'switch'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	target, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var cases []*ast.CaseClause
	hasDefault := false
	var def []ast.Node

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Case:
			casePos := p.pos()
			p.advance()
			value, err := p.parseExpr(1)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Colon); err != nil {
				return nil, err
			}
			var body []ast.Node
			fellThrough := false
			for !p.atCaseBoundary() {
				if p.at(token.Fallthrough) {
					p.advance()
					if _, err := p.expect(token.Semicolon); err != nil {
						return nil, err
					}
					fellThrough = true
					break
				}
				stmt, err := p.parseStmt()
				if err != nil {
					return nil, err
				}
				if stmt != nil {
					body = append(body, stmt)
				}
			}
			cases = append(cases, ast.NewCaseClause(casePos, value, body, fellThrough))

		case token.Default:
			p.advance()
			if _, err := p.expect(token.Colon); err != nil {
				return nil, err
			}
			hasDefault = true
			for !p.atCaseBoundary() {
				stmt, err := p.parseStmt()
				if err != nil {
					return nil, err
				}
				if stmt != nil {
					def = append(def, stmt)
				}
			}

		default:
			return nil, fmt.Errorf("expected 'case' or 'default' in switch body, found %s", p.cur().Kind)
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return ast.NewSwitchStmt(pos, target, cases, hasDefault, def), nil
}

func (p *parser) atCaseBoundary() bool {
	return p.at(token.Case) || p.at(token.Default) || p.at(token.RBrace) || p.at(token.EOF)
}

func (p *parser) parseReturn() (*ast.ReturnStmt, error) {
	pos := p.pos()
	p.advance() // 'return'
	var value ast.Node
	if !p.at(token.Semicolon) {
		var err error
		value, err = p.parseExpr(1)
		if err != nil {
			return nil, err
		}
	}
	return ast.NewReturnStmt(pos, value), nil
}

func (p *parser) parseDefer() (*ast.DeferStmt, error) {
	pos := p.pos()
	p.advance() // 'defer'
	call, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	return ast.NewDeferStmt(pos, call), nil
}

func (p *parser) parseDeferIf() (*ast.DeferIfStmt, error) {
	pos := p.pos()
	p.advance() // 'defer_if'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	call, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	return ast.NewDeferIfStmt(pos, cond, call), nil
}

func (p *parser) parseScopeBlock() (*ast.ScopeBlock, error) {
	pos := p.pos()
	p.advance() // 'scope'
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return ast.NewScopeBlock(pos, body), nil
}
