// Package semantic implements the name-resolution, type-checking, and
// context-validation walk over the AST. It never aborts: validation
// errors accumulate on the Checker, and so does an unhandled node kind,
// which is recorded as an "internal" diagnostic.
package semantic

import (
	"fmt"
	"io"

	"github.com/convcc/lcc/internal/ast"
	"github.com/convcc/lcc/internal/symboltable"
)

// errorType marks an expression whose type could not be determined; it
// propagates upward so one root cause does not cascade into repeated
// diagnostics for its consumers.
const errorType = "ERROR"

// Checker walks an AST against a symbol table, resolving names,
// checking types, and validating loop-only context for break. It has no
// package-level mutable state; every compilation gets its own Checker.
type Checker struct {
	Diagnostics []string
	HasError    bool

	symtab *symboltable.Table
	out    io.Writer
}

// New returns a checker that resolves against symtab, reporting each
// diagnostic (as it is found) to out as well as recording it.
func New(symtab *symboltable.Table, out io.Writer) *Checker {
	return &Checker{symtab: symtab, out: out}
}

func (c *Checker) errorf(line int, format string, args ...any) {
	msg := fmt.Sprintf("semantic error: "+format+" (line %d)", append(args, line)...)
	c.HasError = true
	c.Diagnostics = append(c.Diagnostics, msg)
	if c.out != nil {
		fmt.Fprintln(c.out, msg)
	}
}

// Check walks prog. Globals live directly in frame 0; Program itself
// introduces no new scope.
func (c *Checker) Check(prog *ast.Program) {
	for _, item := range prog.Items {
		c.checkStmt(item, false)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt, insideLoop bool) {
	switch n := stmt.(type) {

	case *ast.Block:
		c.symtab.EnterScope()
		for _, s := range n.Stmts {
			c.checkStmt(s, insideLoop)
		}
		c.symtab.ExitScope()

	case *ast.VarDecl:
		entry := c.symtab.Lookup(n.Name)
		if entry == nil {
			entry = c.symtab.AddOccurrence(n.Name, n.Line, 0)
		} else if entry.Type != "" {
			c.errorf(n.Line, "variable '%s' already declared", n.Name)
			if n.Init != nil {
				c.checkExpr(n.Init)
			}
			return
		}
		entry.Type = n.TypeName
		if n.Init != nil {
			initType := c.checkExpr(n.Init)
			if entry.Type != initType && initType != errorType {
				c.errorf(n.Line, "incompatible initializer: '%s' is %s but received %s", n.Name, entry.Type, initType)
			}
		}

	case *ast.Assign:
		valType := c.checkExpr(n.Value)
		entry := c.symtab.Lookup(n.Name)
		if entry == nil {
			c.errorf(n.Line, "variable '%s' not declared", n.Name)
			return
		}
		if entry.Type != valType && valType != errorType {
			c.errorf(n.Line, "invalid assignment: '%s' is %s but received %s", n.Name, entry.Type, valType)
		}

	case *ast.ArrayAssign:
		indexType := c.checkExpr(n.Index)
		if indexType != "int" {
			c.errorf(n.Line, "array index must be int")
		}
		entry := c.symtab.Lookup(n.Name)
		if entry == nil {
			c.errorf(n.Line, "array '%s' not declared", n.Name)
			c.checkExpr(n.Value)
			return
		}
		valType := c.checkExpr(n.Value)
		if entry.Type != valType && valType != errorType {
			c.errorf(n.Line, "invalid array assignment to '%s'", n.Name)
		}

	case *ast.ExprStmt:
		c.checkExpr(n.X)

	case *ast.If:
		c.checkExpr(n.Cond)
		c.checkStmt(n.Then, insideLoop)
		if n.Else != nil {
			c.checkStmt(n.Else, insideLoop)
		}

	case *ast.For:
		c.symtab.EnterScope()
		if n.Init != nil {
			c.checkStmt(n.Init, false)
		}
		if n.Cond != nil {
			c.checkExpr(n.Cond)
		}
		if n.Update != nil {
			c.checkStmt(n.Update, true)
		}
		c.checkStmt(n.Body, true)
		c.symtab.ExitScope()

	case *ast.While:
		c.checkExpr(n.Cond)
		c.checkStmt(n.Body, true)

	case *ast.Return:
		if n.Expr != nil {
			n.InferredType = c.checkExpr(n.Expr)
		} else {
			n.InferredType = "void"
		}

	case *ast.Print:
		c.checkExpr(n.Expr)

	case *ast.Read:
		if c.symtab.Lookup(n.Name) == nil {
			c.errorf(n.Line, "variable '%s' not declared", n.Name)
		}

	case *ast.Break:
		if !insideLoop {
			c.errorf(n.Line, "'break' outside of loop")
		}

	case *ast.FuncDef:
		c.checkFuncDef(n)

	default:
		c.errorf(stmt.SourceLine(), "internal: unhandled statement kind %T", stmt)
	}
}

func (c *Checker) checkFuncDef(fn *ast.FuncDef) {
	returnType := "int" // provisional, per §4.5; overwritten below if a return is found.
	entry := c.symtab.AddOccurrence(fn.Name, fn.Line, 0)
	entry.Type = returnType

	c.symtab.EnterScope()
	for _, param := range fn.Params {
		c.checkStmt(param, false)
	}
	for _, s := range fn.Body.Stmts {
		c.checkStmt(s, false)
	}
	for _, s := range fn.Body.Stmts {
		if ret, ok := s.(*ast.Return); ok {
			if ret.InferredType != errorType && ret.InferredType != "void" {
				returnType = ret.InferredType
			}
		}
	}
	c.symtab.ExitScope()

	entry.Type = returnType
	fn.ReturnType = returnType
}

func (c *Checker) checkExpr(expr ast.Expr) string {
	var t string
	switch n := expr.(type) {

	case *ast.IntLiteral:
		t = "int"

	case *ast.FloatLiteral:
		t = "float"

	case *ast.StringLiteral:
		t = "string"

	case *ast.NullLiteral:
		t = "null"

	case *ast.VarAccess:
		entry := c.symtab.Lookup(n.Name)
		if entry == nil {
			c.errorf(n.Line, "variable '%s' not declared", n.Name)
			t = errorType
			break
		}
		if entry.Type == "" {
			t = errorType
			break
		}
		t = entry.Type

	case *ast.ArrayAccess:
		indexType := c.checkExpr(n.Index)
		if indexType != "int" {
			c.errorf(n.Line, "array index must be int")
		}
		entry := c.symtab.Lookup(n.Name)
		if entry == nil {
			c.errorf(n.Line, "array '%s' not declared", n.Name)
			t = errorType
			break
		}
		t = entry.Type

	case *ast.FuncCall:
		entry := c.symtab.Lookup(n.Name)
		if entry == nil {
			c.errorf(n.Line, "function '%s' not declared", n.Name)
			t = errorType
			break
		}
		for _, arg := range n.Args {
			c.checkExpr(arg)
		}
		t = entry.Type

	case *ast.NewArray:
		sizeType := c.checkExpr(n.Size)
		if sizeType != "int" {
			c.errorf(n.Line, "array size must be int")
		}
		t = n.ElemType

	case *ast.BinaryExpr:
		leftType := c.checkExpr(n.Left)
		rightType := c.checkExpr(n.Right)
		if leftType == errorType || rightType == errorType {
			t = errorType
			break
		}
		if leftType == "null" || rightType == "null" {
			// null compares against any type without triggering a
			// mismatch; it carries no operations of its own.
			if leftType == "null" && rightType == "null" {
				t = "null"
			} else if leftType == "null" {
				t = rightType
			} else {
				t = leftType
			}
			break
		}
		if leftType == rightType {
			t = leftType
			break
		}
		c.errorf(n.Line, "incompatible types (%s %s %s)", leftType, n.Op, rightType)
		t = errorType

	default:
		c.errorf(expr.SourceLine(), "internal: unhandled expression kind %T", expr)
		t = errorType
	}
	expr.SetExprType(t)
	return t
}
