package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/convcc/lcc/internal/ast"
)

// printProgram renders the AST as an indented tree, one construct per
// line. This is a debugging aid for the CLI only; nothing in
// internal/ depends on it.
func printProgram(w io.Writer, prog *ast.Program) {
	fmt.Fprintln(w, "ProgramNode")
	for _, item := range prog.Items {
		printStmt(w, item, 1)
	}
}

func indent(w io.Writer, level int) {
	fmt.Fprint(w, strings.Repeat("  ", level))
}

func printStmt(w io.Writer, s ast.Stmt, level int) {
	switch n := s.(type) {

	case *ast.VarDecl:
		indent(w, level)
		fmt.Fprintf(w, "VarDecl: %s %s\n", n.TypeName, n.Name)
		if n.Init != nil {
			printExpr(w, n.Init, level+1)
		}

	case *ast.Assign:
		indent(w, level)
		fmt.Fprintf(w, "Assign: %s\n", n.Name)
		printExpr(w, n.Value, level+1)

	case *ast.ArrayAssign:
		indent(w, level)
		fmt.Fprintf(w, "ArrayAssign: %s\n", n.Name)
		indent(w, level+1)
		fmt.Fprintln(w, "Index:")
		printExpr(w, n.Index, level+2)
		indent(w, level+1)
		fmt.Fprintln(w, "Value:")
		printExpr(w, n.Value, level+2)

	case *ast.ExprStmt:
		indent(w, level)
		fmt.Fprintln(w, "ExprStmt:")
		printExpr(w, n.X, level+1)

	case *ast.If:
		indent(w, level)
		fmt.Fprintln(w, "IfStmt")
		indent(w, level+1)
		fmt.Fprintln(w, "Condition:")
		printExpr(w, n.Cond, level+2)
		indent(w, level+1)
		fmt.Fprintln(w, "Then:")
		printStmt(w, n.Then, level+2)
		if n.Else != nil {
			indent(w, level+1)
			fmt.Fprintln(w, "Else:")
			printStmt(w, n.Else, level+2)
		}

	case *ast.For:
		indent(w, level)
		fmt.Fprintln(w, "ForStmt")
		indent(w, level+1)
		fmt.Fprintln(w, "Init:")
		if n.Init != nil {
			printStmt(w, n.Init, level+2)
		}
		indent(w, level+1)
		fmt.Fprintln(w, "Condition:")
		if n.Cond != nil {
			printExpr(w, n.Cond, level+2)
		}
		indent(w, level+1)
		fmt.Fprintln(w, "Update:")
		if n.Update != nil {
			printStmt(w, n.Update, level+2)
		}
		indent(w, level+1)
		fmt.Fprintln(w, "Body:")
		printStmt(w, n.Body, level+2)

	case *ast.While:
		indent(w, level)
		fmt.Fprintln(w, "WhileStmt")
		indent(w, level+1)
		fmt.Fprintln(w, "Condition:")
		printExpr(w, n.Cond, level+2)
		indent(w, level+1)
		fmt.Fprintln(w, "Body:")
		printStmt(w, n.Body, level+2)

	case *ast.Return:
		indent(w, level)
		fmt.Fprintln(w, "Return")
		if n.Expr != nil {
			printExpr(w, n.Expr, level+1)
		}

	case *ast.Print:
		indent(w, level)
		fmt.Fprintln(w, "PrintStmt")
		printExpr(w, n.Expr, level+1)

	case *ast.Read:
		indent(w, level)
		fmt.Fprintf(w, "ReadStmt: %s\n", n.Name)

	case *ast.Break:
		indent(w, level)
		fmt.Fprintln(w, "BreakStmt")

	case *ast.Block:
		indent(w, level)
		fmt.Fprintln(w, "{")
		for _, stmt := range n.Stmts {
			printStmt(w, stmt, level+1)
		}
		indent(w, level)
		fmt.Fprintln(w, "}")

	case *ast.FuncDef:
		indent(w, level)
		fmt.Fprintf(w, "FuncDef: %s\n", n.Name)
		indent(w, level+1)
		fmt.Fprintln(w, "Params:")
		for _, param := range n.Params {
			printStmt(w, param, level+2)
		}
		printStmt(w, n.Body, level+1)

	default:
		indent(w, level)
		fmt.Fprintf(w, "<unknown statement %T>\n", s)
	}
}

func printExpr(w io.Writer, e ast.Expr, level int) {
	switch n := e.(type) {

	case *ast.IntLiteral:
		indent(w, level)
		fmt.Fprintf(w, "IntLiteral: %d\n", n.Value)

	case *ast.FloatLiteral:
		indent(w, level)
		fmt.Fprintf(w, "FloatLiteral: %g\n", n.Value)

	case *ast.StringLiteral:
		indent(w, level)
		fmt.Fprintf(w, "StringLiteral: %s\n", n.Value)

	case *ast.NullLiteral:
		indent(w, level)
		fmt.Fprintln(w, "NullLiteral")

	case *ast.VarAccess:
		indent(w, level)
		fmt.Fprintf(w, "VarAccess: %s\n", n.Name)

	case *ast.ArrayAccess:
		indent(w, level)
		fmt.Fprintf(w, "ArrayAccess: %s\n", n.Name)
		printExpr(w, n.Index, level+1)

	case *ast.FuncCall:
		indent(w, level)
		fmt.Fprintf(w, "FuncCall: %s\n", n.Name)
		for _, arg := range n.Args {
			printExpr(w, arg, level+1)
		}

	case *ast.NewArray:
		indent(w, level)
		fmt.Fprintf(w, "NewArray: %s\n", n.ElemType)
		printExpr(w, n.Size, level+1)

	case *ast.BinaryExpr:
		indent(w, level)
		fmt.Fprintf(w, "BinaryExpr: %s\n", n.Op)
		printExpr(w, n.Left, level+1)
		printExpr(w, n.Right, level+1)

	default:
		indent(w, level)
		fmt.Fprintf(w, "<unknown expression %T>\n", e)
	}
}
