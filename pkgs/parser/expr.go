package parser

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/token"
)

var binOpByKind = map[token.Kind]ast.BinOp{
	token.Plus:        ast.OpAdd,
	token.Minus:       ast.OpSub,
	token.Star:        ast.OpMul,
	token.Slash:       ast.OpDiv,
	token.Percent:     ast.OpMod,
	token.Amp:         ast.OpBitAnd,
	token.Pipe:        ast.OpBitOr,
	token.Caret:       ast.OpBitXor,
	token.Shl:         ast.OpShl,
	token.Shr:         ast.OpShr,
	token.AmpAmp:      ast.OpLogAnd,
	token.PipePipe:    ast.OpLogOr,
	token.EqEq:        ast.OpEq,
	token.BangEq:      ast.OpNeq,
	token.Lt:          ast.OpLt,
	token.Gt:          ast.OpGt,
	token.LtEq:        ast.OpLe,
	token.GtEq:        ast.OpGe,
	token.Eq:          ast.OpAssign,
	token.PlusEq:      ast.OpAddAssign,
	token.MinusEq:     ast.OpSubAssign,
	token.StarEq:      ast.OpMulAssign,
	token.SlashEq:     ast.OpDivAssign,
	token.PercentEq:   ast.OpModAssign,
	token.AmpEq:       ast.OpAndAssign,
	token.PipeEq:      ast.OpOrAssign,
	token.CaretEq:     ast.OpXorAssign,
	token.ShlEq:       ast.OpShlAssign,
	token.ShrEq:       ast.OpShrAssign,
	token.Dot:         ast.OpMember,
	token.ColonColon:  ast.OpScope,
}

// isAssignOp reports whether op is one of the assignment forms, which
// associate right (`a = b = c` is `a = (b = c)`) rather than left like
// every other binary operator.
func isAssignOp(op ast.BinOp) bool {
	switch op {
	case ast.OpAssign, ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign, ast.OpDivAssign,
		ast.OpModAssign, ast.OpAndAssign, ast.OpOrAssign, ast.OpXorAssign, ast.OpShlAssign, ast.OpShrAssign:
		return true
	default:
		return false
	}
}

// parseExpr is the Pratt / precedence-climbing loop: it parses one
// unary operand, then repeatedly folds in a following binary operator
// whose precedence is at least minPrec, recursing with that operator's
// precedence plus one for the right-hand side so that equal-precedence
// operators associate left — except assignment, the lowest level, which
// recurses at its own precedence so it associates right. 'as' is handled specially since
// its right-hand side is a type, not an expression.
func (p *parser) parseExpr(minPrec int) (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.cur()
		prec := token.Precedence(tok.Kind)
		if prec == 0 || prec < minPrec {
			return left, nil
		}

		if tok.Kind == token.As {
			pos := p.pos()
			p.advance()
			target, err := p.parseQualifiedTypeRef()
			if err != nil {
				return nil, err
			}
			left = ast.NewCastExpr(pos, left, target)
			continue
		}

		op, ok := binOpByKind[tok.Kind]
		if !ok {
			return nil, fmt.Errorf("%s is not a binary operator", tok.Kind)
		}
		pos := p.pos()
		p.advance()

		nextMinPrec := prec + 1
		if isAssignOp(op) {
			nextMinPrec = prec
		}
		right, err := p.parseExpr(nextMinPrec)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinExpr(pos, op, left, right)
	}
}

func (p *parser) parseUnary() (ast.Node, error) {
	tok := p.cur()
	pos := p.pos()

	switch tok.Kind {
	case token.Bang:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryNot, operand), nil
	case token.Minus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryNeg, operand), nil
	case token.Tilde:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryBitNot, operand), nil
	case token.Dollar:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryAddr, operand), nil
	case token.PlusPlus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryPreIncr, operand), nil
	case token.MinusMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, ast.UnaryPreDecr, operand), nil
	case token.Sizeof:
		p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return ast.NewSizeofExpr(pos, operand), nil
	case token.Typeof:
		p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return ast.NewTypeofExpr(pos, operand), nil
	}

	return p.parsePostfix()
}

// parsePostfix parses a primary expression, then any trailing call,
// subscript, or post-increment/decrement operators. Member access
// ('.') is deliberately NOT handled here — it parses as a BinaryOp in
// parseExpr, per spec.md §9's resolution of '.' vs. postfix.
func (p *parser) parsePostfix() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		pos := p.pos()
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Node
			for !p.at(token.RParen) {
				arg, err := p.parseExpr(1)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			expr = ast.NewCall(pos, expr, args)

		case token.LBracket:
			p.ctx.ParenLevel++
			p.advance()
			idx, err := p.parseExpr(1)
			if err != nil {
				p.ctx.ParenLevel--
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				p.ctx.ParenLevel--
				return nil, err
			}
			p.ctx.ParenLevel--
			expr = ast.NewSubscript(pos, expr, idx)

		case token.PlusPlus:
			p.advance()
			expr = ast.NewUnaryExpr(pos, ast.UnaryPostIncr, expr)

		case token.MinusMinus:
			p.advance()
			expr = ast.NewUnaryExpr(pos, ast.UnaryPostDecr, expr)

		default:
			return expr, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()
	pos := p.pos()

	if tok.In(token.Literal) {
		return p.parseLiteral()
	}

	switch tok.Kind {
	case token.LParen:
		p.ctx.ParenLevel++
		p.advance()
		inner, err := p.parseExpr(1)
		if err != nil {
			p.ctx.ParenLevel--
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			p.ctx.ParenLevel--
			return nil, err
		}
		p.ctx.ParenLevel--
		return inner, nil

	case token.LBrace:
		p.advance()
		var elems []ast.Node
		for !p.at(token.RBrace) {
			elem, err := p.parseExpr(1)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
		return ast.NewAggregateLit(pos, elems), nil

	case token.Identifier, token.ColonColon:
		_, id, err := p.parseScopedName()
		if err != nil {
			return nil, err
		}
		return ast.NewEntityRef(pos, id), nil
	}

	return nil, fmt.Errorf("unexpected token %s in expression", tok.Kind)
}
