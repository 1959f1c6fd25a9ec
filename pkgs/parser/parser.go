// Package parser implements the Pratt-style recursive-descent parser:
// it drains a lexer's token stream into entity-table insertions and an
// AST, one top-level declaration at a time, recovering to the next
// top-level boundary on a syntax error rather than aborting the file.
package parser

import (
	"fmt"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/diag"
	"github.com/nyxlang/nyxc/pkgs/entity"
	"github.com/nyxlang/nyxc/pkgs/lexer"
	"github.com/nyxlang/nyxc/pkgs/token"
)

// Context bundles everything a single file's parse needs to share with
// its caller — this is the ParseContext of the spec, made concrete:
// the lexer being drained, the entity table being populated, the
// diagnostic sink, the file currently being parsed, the namespace a
// bare declaration nests under, the open-paren/bracket depth of the
// expression being parsed (counted, but not read by recovery), and
// the accumulated top-level declarations.
type Context struct {
	Lexer       *lexer.Lexer
	Entities    *entity.Table
	Errors      *diag.Collector
	FileID      lexer.InputFileID
	NamespaceID entity.ID
	ParenLevel  int
	Decls       []ast.Node
	// Includes collects every @include path seen in this file, in
	// source order, for the driver to resolve and enqueue.
	Includes []string
}

// NewContext returns a context ready to parse fileID's tokens out of
// lex, rooted at the global namespace.
func NewContext(lex *lexer.Lexer, entities *entity.Table, errs *diag.Collector, fileID lexer.InputFileID) *Context {
	return &Context{
		Lexer:       lex,
		Entities:    entities,
		Errors:      errs,
		FileID:      fileID,
		NamespaceID: entity.RootID,
	}
}

// parser wraps a Context with the recursive-descent machinery. It is
// unexported: callers drive a file through Parse, which returns
// whether the file parsed clean.
type parser struct {
	ctx *Context
}

// Parse drains every top-level construct in ctx.Lexer into
// ctx.Decls and ctx.Entities, recording a diagnostic and recovering to
// the next top-level boundary on each syntax error. It returns false
// if any error was recorded for this file.
func Parse(ctx *Context) bool {
	p := &parser{ctx: ctx}
	ok := true
	startErrs := ctx.Errors.ErrorCount()
	for !p.at(token.EOF) {
		before := p.cur()
		decl, err := p.parseTopLevel()
		if err != nil {
			ok = false
			p.recordError(before, err)
			p.recoverToTopLevel()
			continue
		}
		if decl != nil {
			ctx.Decls = append(ctx.Decls, decl)
		}
	}
	return ok && ctx.Errors.ErrorCount() == startErrs
}

func (p *parser) cur() token.Token { return p.ctx.Lexer.Current() }

func (p *parser) at(k token.Kind) bool { return p.cur().Is(k) }

func (p *parser) atCategory(cats token.Category) bool { return p.cur().In(cats) }

// advance returns the current token and consumes it.
func (p *parser) advance() token.Token {
	t := p.cur()
	p.ctx.Lexer.Consume(1)
	return t
}

func (p *parser) pos() ast.Position {
	t := p.cur()
	return ast.NewPosition(t.Offset, t.Line, p.ctx.FileID)
}

func (p *parser) posOf(t token.Token) ast.Position {
	return ast.NewPosition(t.Offset, t.Line, p.ctx.FileID)
}

// expect consumes the current token if it has kind k, else returns an
// error without advancing.
func (p *parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, fmt.Errorf("expected %s, found %s", k, p.cur().Kind)
	}
	return p.advance(), nil
}

func (p *parser) recordError(at token.Token, err error) {
	p.ctx.Errors.AddError(p.ctx.FileID, at.Offset, at.Line, err.Error())
}

// recoverToTopLevel advances past tokens until the lexer sits at EOF
// or a token that can plausibly start a new top-level declaration —
// this is the parser's only recovery strategy, matching spec.md's
// "revert to a stable token boundary, typically the start of the
// failed construct" for the top-level loop.
func (p *parser) recoverToTopLevel() {
	for {
		if p.at(token.EOF) {
			return
		}
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		switch p.cur().Kind {
		case token.Namespace, token.Struct, token.Proc, token.Let, token.Const, token.At:
			return
		}
		p.advance()
	}
}

func binOpName(k token.Kind) string { return k.String() }
