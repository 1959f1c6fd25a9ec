package ast

import "github.com/nyxlang/nyxc/pkgs/entity"

// The New* helpers stamp position metadata and, where a child is
// supplied up front, wire its parent back-edge — so parser code does
// not need to call Attach by hand for nodes built in one shot.
//
// attachRef guards against the typed-nil trap: a nil *QualifiedTypeRef
// passed straight into Attach(Node) would box as a non-nil interface
// and panic inside setParent.
func attachRef(parent Node, tr *QualifiedTypeRef) {
	if tr != nil {
		Attach(parent, tr)
	}
}

func NewProgram(pos Position) *Program {
	return &Program{base: base{pos: pos}}
}

func NewVarDecl(pos Position, id entity.ID, typeRef *QualifiedTypeRef, init Node) *VarDecl {
	n := &VarDecl{base: base{pos: pos}, EntityID: id, TypeRef: typeRef, Init: init}
	attachRef(n, typeRef)
	Attach(n, init)
	return n
}

func NewProcDecl(pos Position, id entity.ID, params []*VarDecl, ret *QualifiedTypeRef, body []Node) *ProcDecl {
	n := &ProcDecl{base: base{pos: pos}, EntityID: id, Params: params, Return: ret, Body: body}
	for _, p := range params {
		Attach(n, p)
	}
	attachRef(n, ret)
	for _, s := range body {
		Attach(n, s)
	}
	return n
}

func NewNamespace(pos Position, id entity.ID) *Namespace {
	return &Namespace{base: base{pos: pos}, EntityID: id}
}

func NewStructDecl(pos Position, id entity.ID, fields []*VarDecl) *StructDecl {
	n := &StructDecl{base: base{pos: pos}, EntityID: id, Fields: fields}
	for _, f := range fields {
		Attach(n, f)
	}
	return n
}

func NewBinExpr(pos Position, op BinOp, left, right Node) *BinExpr {
	n := &BinExpr{base: base{pos: pos}, Op: op, Left: left, Right: right}
	Attach(n, left)
	Attach(n, right)
	return n
}

func NewUnaryExpr(pos Position, op UnaryOp, operand Node) *UnaryExpr {
	n := &UnaryExpr{base: base{pos: pos}, Op: op, Operand: operand}
	Attach(n, operand)
	return n
}

func NewCall(pos Position, callee Node, args []Node) *Call {
	n := &Call{base: base{pos: pos}, Callee: callee, Args: args}
	Attach(n, callee)
	for _, a := range args {
		Attach(n, a)
	}
	return n
}

func NewSubscript(pos Position, target, index Node) *Subscript {
	n := &Subscript{base: base{pos: pos}, Target: target, Index: index}
	Attach(n, target)
	Attach(n, index)
	return n
}

func NewScalarLit(pos Position, kind ScalarKind, text string) *ScalarLit {
	return &ScalarLit{base: base{pos: pos}, LitKind: kind, Text: text}
}

func NewAggregateLit(pos Position, elems []Node) *AggregateLit {
	n := &AggregateLit{base: base{pos: pos}, Elems: elems}
	for _, e := range elems {
		Attach(n, e)
	}
	return n
}

func NewQualifiedTypeRef(pos Position, id entity.ID, thunk *entity.QualifierThunk, ptrDepth uint32, arrayLens []int) *QualifiedTypeRef {
	return &QualifiedTypeRef{base: base{pos: pos}, EntityID: id, Thunk: thunk, PointerDepth: ptrDepth, ArrayLens: arrayLens}
}

func NewEntityRef(pos Position, id entity.ID) *EntityRef {
	return &EntityRef{base: base{pos: pos}, EntityID: id}
}

func NewEntityRefThunk(pos Position, name string) *EntityRefThunk {
	return &EntityRefThunk{base: base{pos: pos}, Name: name}
}

func NewBranch(pos Position, isConst bool, cond Node, then []Node, hasElse bool, els []Node) *Branch {
	n := &Branch{base: base{pos: pos}, IsConst: isConst, Cond: cond, Then: then, HasElse: hasElse, Else: els}
	Attach(n, cond)
	for _, s := range then {
		Attach(n, s)
	}
	for _, s := range els {
		Attach(n, s)
	}
	return n
}

func NewForLoop(pos Position, init, cond, update Node, body []Node) *ForLoop {
	n := &ForLoop{base: base{pos: pos}, Init: init, Cond: cond, Update: update, Body: body}
	Attach(n, init)
	Attach(n, cond)
	Attach(n, update)
	for _, s := range body {
		Attach(n, s)
	}
	return n
}

func NewWhileLoop(pos Position, cond Node, body []Node) *WhileLoop {
	n := &WhileLoop{base: base{pos: pos}, Cond: cond, Body: body}
	Attach(n, cond)
	for _, s := range body {
		Attach(n, s)
	}
	return n
}

func NewDoWhileLoop(pos Position, body []Node, cond Node) *DoWhileLoop {
	n := &DoWhileLoop{base: base{pos: pos}, Body: body, Cond: cond}
	for _, s := range body {
		Attach(n, s)
	}
	Attach(n, cond)
	return n
}

func NewSwitchStmt(pos Position, target Node, cases []*CaseClause, hasDefault bool, def []Node) *SwitchStmt {
	n := &SwitchStmt{base: base{pos: pos}, Target: target, Cases: cases, HasDefault: hasDefault, Default: def}
	Attach(n, target)
	for _, c := range cases {
		Attach(n, c)
	}
	for _, s := range def {
		Attach(n, s)
	}
	return n
}

func NewCaseClause(pos Position, value Node, body []Node, fallthroughFlag bool) *CaseClause {
	n := &CaseClause{base: base{pos: pos}, Value: value, Body: body, Fallthrough: fallthroughFlag}
	Attach(n, value)
	for _, s := range body {
		Attach(n, s)
	}
	return n
}

func NewReturnStmt(pos Position, value Node) *ReturnStmt {
	n := &ReturnStmt{base: base{pos: pos}, Value: value}
	Attach(n, value)
	return n
}

func NewBreakStmt(pos Position) *BreakStmt       { return &BreakStmt{base: base{pos: pos}} }
func NewContinueStmt(pos Position) *ContinueStmt { return &ContinueStmt{base: base{pos: pos}} }

func NewDeferStmt(pos Position, call Node) *DeferStmt {
	n := &DeferStmt{base: base{pos: pos}, Call: call}
	Attach(n, call)
	return n
}

func NewDeferIfStmt(pos Position, cond, call Node) *DeferIfStmt {
	n := &DeferIfStmt{base: base{pos: pos}, Cond: cond, Call: call}
	Attach(n, cond)
	Attach(n, call)
	return n
}

func NewScopeBlock(pos Position, body []Node) *ScopeBlock {
	n := &ScopeBlock{base: base{pos: pos}, Body: body}
	for _, s := range body {
		Attach(n, s)
	}
	return n
}

func NewSizeofExpr(pos Position, operand Node) *SizeofExpr {
	n := &SizeofExpr{base: base{pos: pos}, Operand: operand}
	Attach(n, operand)
	return n
}

func NewTypeofExpr(pos Position, operand Node) *TypeofExpr {
	n := &TypeofExpr{base: base{pos: pos}, Operand: operand}
	Attach(n, operand)
	return n
}

func NewCastExpr(pos Position, operand Node, target *QualifiedTypeRef) *CastExpr {
	n := &CastExpr{base: base{pos: pos}, Operand: operand, Target: target}
	Attach(n, operand)
	attachRef(n, target)
	return n
}

func NewBadExpr(pos Position) *BadExpr { return &BadExpr{base: base{pos: pos}} }
