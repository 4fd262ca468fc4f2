package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
)

// AST builders shared across the analyzer tests. Spans stay zero; the
// analyzer never dereferences them.

func identExpr(name string) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprIdent, Ident: &ast.IdentExpr{Name: name}}
}

func intLit(v int64) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{Kind: ast.LitInt, Int: v}}
}

func floatLit(v float64) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{Kind: ast.LitFloat, Float: v}}
}

func boolLit(v bool) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{Kind: ast.LitBool, Bool: v}}
}

func strLit(v string) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{Kind: ast.LitString, Str: v}}
}

func charLit(v uint32) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{Kind: ast.LitChar, Char: v}}
}

func binExpr(op ast.BinOp, left, right *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprBinary, Binary: &ast.BinaryExpr{Op: op, Left: left, Right: right}}
}

func unExpr(op ast.UnOp, operand *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprUnary, Unary: &ast.UnaryExpr{Op: op, Operand: operand}}
}

func callExpr(name string, args ...*ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprCall, Call: &ast.CallExpr{Callee: identExpr(name), Args: args}}
}

func fieldExpr(object *ast.Expr, name string) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprFieldAccess, Field: &ast.FieldExpr{Object: object, Name: name}}
}

func repeatedExpr(value, count *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprRepeatedArray, Repeated: &ast.RepeatedExpr{Value: value, Count: count}}
}

func namedType(name string, args ...*ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.TypeNamed, Name: name, TypeArgs: args}
}

func sliceType(elem *ast.TypeNode) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.TypeSlice, Elem: elem}
}

func arrayType(elem *ast.TypeNode, size *ast.Expr) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.TypeArray, Elem: elem, Size: size}
}

func letStmt(name string, typ *ast.TypeNode, value *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtLet, Let: &ast.LetStmt{Name: name, Type: typ, Value: value}}
}

func letMutStmt(name string, typ *ast.TypeNode, value *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtLet, Let: &ast.LetStmt{Name: name, Mutable: true, Type: typ, Value: value}}
}

func assignStmt(target, value *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtAssign, Assign: &ast.AssignStmt{Target: target, Value: value}}
}

func exprStmt(e *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtExpr, Expr: e}
}

func returnStmt(value *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtReturn, Return: &ast.ReturnStmt{Value: value}}
}

func block(stmts ...*ast.Stmt) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtBlock, Block: &ast.BlockStmt{Stmts: stmts}}
}

func fnDecl(name string, params []*ast.Param, ret *ast.TypeNode, body *ast.Stmt) *ast.Decl {
	return &ast.Decl{
		Kind: ast.DeclFunction,
		Function: &ast.FunctionDecl{
			Name: name, Params: params, Return: ret, Body: body,
		},
	}
}

func param(name string, typ *ast.TypeNode) *ast.Param {
	return &ast.Param{Name: name, Type: typ}
}

func structDecl(name string, fields ...*ast.StructField) *ast.Decl {
	return &ast.Decl{Kind: ast.DeclStruct, Struct: &ast.StructDecl{Name: name, Fields: fields}}
}

func structField(name string, typ *ast.TypeNode) *ast.StructField {
	return &ast.StructField{Name: name, Type: typ, Visibility: ast.Public}
}

func constDecl(name string, typ *ast.TypeNode, value *ast.Expr) *ast.Decl {
	return &ast.Decl{Kind: ast.DeclConst, Const: &ast.ConstDecl{Name: name, Type: typ, Value: value}}
}

func program(decls ...*ast.Decl) *ast.Program {
	return &ast.Program{Package: "main", Decls: decls}
}

func mainFn(stmts ...*ast.Stmt) *ast.Decl {
	return fnDecl("main", nil, nil, block(stmts...))
}

func testAnalyzer() *Analyzer {
	cfg := DefaultConfig()
	cfg.TestMode = true
	cfg.AllowUnsafe = true
	return New(cfg)
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}
