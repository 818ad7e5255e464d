// Package tac linearises a checked AST into three-address code: a flat,
// ordered instruction list over fresh temporaries and labels. It performs
// no optimisation and tracks no live ranges; it is a pure emission pass.
package tac

import (
	"fmt"
	"io"
	"strconv"

	"github.com/convcc/lcc/internal/ast"
)

// banner precedes the instruction listing when Emitter.Print is used.
const banner = "=== Código Intermediário (TAC) ==="

// Emitter holds the growing instruction list and the monotonically
// increasing temporary/label counters.
type Emitter struct {
	tempCount  int
	labelCount int
	code       []string
}

// New returns an emitter with empty state.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) newTemp() string {
	t := "t" + strconv.Itoa(e.tempCount)
	e.tempCount++
	return t
}

func (e *Emitter) newLabel() string {
	l := "L" + strconv.Itoa(e.labelCount)
	e.labelCount++
	return l
}

func (e *Emitter) emit(instr string) {
	e.code = append(e.code, instr)
}

func (e *Emitter) emitAssign(dest, src string) {
	e.emit(dest + " = " + src)
}

func (e *Emitter) emitBinary(dest, a, op, b string) {
	e.emit(dest + " = " + a + " " + op + " " + b)
}

func (e *Emitter) emitLabel(label string) {
	e.emit(label + ":")
}

// Code returns the full instruction list, one entry per line, in
// emission order.
func (e *Emitter) Code() []string {
	return e.code
}

// Print writes the banner followed by the instruction list to w.
func (e *Emitter) Print(w io.Writer) {
	fmt.Fprintln(w, banner)
	for _, line := range e.code {
		fmt.Fprintln(w, line)
	}
}

// Generate emits TAC for prog and returns the populated emitter. The
// caller is expected to have already run the program through
// internal/semantic and confirmed no diagnostics were raised: Generate
// performs no validation of its own.
func Generate(prog *ast.Program) *Emitter {
	e := New()
	for _, item := range prog.Items {
		e.genStmt(item, "")
	}
	return e
}

// genStmt emits stmt's instructions. loopExit names the label to jump to
// on a Break; it is empty outside any loop.
func (e *Emitter) genStmt(stmt ast.Stmt, loopExit string) {
	switch n := stmt.(type) {

	case *ast.Block:
		for _, s := range n.Stmts {
			e.genStmt(s, loopExit)
		}

	case *ast.VarDecl:
		if n.Init != nil {
			addr := e.genExpr(n.Init)
			e.emitAssign(n.Name, addr)
		}

	case *ast.Assign:
		addr := e.genExpr(n.Value)
		e.emitAssign(n.Name, addr)

	case *ast.ArrayAssign:
		index := e.genExpr(n.Index)
		value := e.genExpr(n.Value)
		e.emit(n.Name + "[" + index + "] = " + value)

	case *ast.ExprStmt:
		e.genExpr(n.X)

	case *ast.If:
		cond := e.genExpr(n.Cond)
		lElse := e.newLabel()
		lEnd := e.newLabel()
		e.emit("ifFalse " + cond + " goto " + lElse)
		e.genStmt(n.Then, loopExit)
		e.emit("goto " + lEnd)
		e.emitLabel(lElse)
		if n.Else != nil {
			e.genStmt(n.Else, loopExit)
		}
		e.emitLabel(lEnd)

	case *ast.For:
		if n.Init != nil {
			e.genStmt(n.Init, loopExit)
		}
		lStart := e.newLabel()
		lEnd := e.newLabel()
		e.emitLabel(lStart)
		if n.Cond != nil {
			cond := e.genExpr(n.Cond)
			e.emit("ifFalse " + cond + " goto " + lEnd)
		}
		e.genStmt(n.Body, lEnd)
		if n.Update != nil {
			e.genStmt(n.Update, loopExit)
		}
		e.emit("goto " + lStart)
		e.emitLabel(lEnd)

	case *ast.While:
		lStart := e.newLabel()
		lEnd := e.newLabel()
		e.emitLabel(lStart)
		cond := e.genExpr(n.Cond)
		e.emit("ifFalse " + cond + " goto " + lEnd)
		e.genStmt(n.Body, lEnd)
		e.emit("goto " + lStart)
		e.emitLabel(lEnd)

	case *ast.Return:
		if n.Expr != nil {
			addr := e.genExpr(n.Expr)
			e.emit("return " + addr)
		} else {
			e.emit("return")
		}

	case *ast.Print:
		addr := e.genExpr(n.Expr)
		e.emit("print " + addr)

	case *ast.Read:
		e.emit("read " + n.Name)

	case *ast.Break:
		if loopExit == "" {
			e.emit("// warning: break outside loop, no exit label available")
			return
		}
		e.emit("goto " + loopExit)

	case *ast.FuncDef:
		e.emitLabel(n.Name)
		e.genStmt(n.Body, "")

	default:
		e.emit(fmt.Sprintf("// internal: unhandled statement kind %T", stmt))
	}
}

// genExpr emits expr's instructions and returns the address (a literal,
// a variable name, or a freshly allocated temporary) holding its value.
func (e *Emitter) genExpr(expr ast.Expr) string {
	switch n := expr.(type) {

	case *ast.IntLiteral:
		return strconv.FormatInt(n.Value, 10)

	case *ast.FloatLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)

	case *ast.StringLiteral:
		return strconv.Quote(n.Value)

	case *ast.NullLiteral:
		return "null"

	case *ast.VarAccess:
		return n.Name

	case *ast.ArrayAccess:
		index := e.genExpr(n.Index)
		dest := e.newTemp()
		e.emitAssign(dest, n.Name+"["+index+"]")
		return dest

	case *ast.FuncCall:
		addrs := make([]string, len(n.Args))
		for i, arg := range n.Args {
			addrs[i] = e.genExpr(arg)
		}
		for _, addr := range addrs {
			e.emit("param " + addr)
		}
		dest := e.newTemp()
		e.emitAssign(dest, fmt.Sprintf("call %s, %d", n.Name, len(n.Args)))
		return dest

	case *ast.NewArray:
		size := e.genExpr(n.Size)
		dest := e.newTemp()
		e.emitAssign(dest, fmt.Sprintf("new %s[%s]", n.ElemType, size))
		return dest

	case *ast.BinaryExpr:
		a := e.genExpr(n.Left)
		b := e.genExpr(n.Right)
		dest := e.newTemp()
		e.emitBinary(dest, a, n.Op, b)
		return dest

	default:
		e.emit(fmt.Sprintf("// internal: unhandled expression kind %T", expr))
		return "ERROR"
	}
}
