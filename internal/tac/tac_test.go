package tac

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/convcc/lcc/internal/ast"
)

func varAccess(name string) *ast.VarAccess {
	va := &ast.VarAccess{Name: name}
	return va
}

func TestTempsAndLabelsAreMonotonic(t *testing.T) {
	e := New()
	be.Equal(t, e.newTemp(), "t0")
	be.Equal(t, e.newTemp(), "t1")
	be.Equal(t, e.newLabel(), "L0")
	be.Equal(t, e.newLabel(), "L1")
	be.Equal(t, e.newTemp(), "t2")
}

func TestBinaryExprEmitsOperandsThenItself(t *testing.T) {
	e := New()
	bin := &ast.BinaryExpr{Left: &ast.IntLiteral{Value: 2}, Op: "+", Right: &ast.IntLiteral{Value: 3}}
	addr := e.genExpr(bin)
	be.Equal(t, addr, "t0")
	be.Equal(t, strings.Join(e.Code(), "\n"), "t0 = 2 + 3")
}

func TestVarDeclWithoutInitEmitsNothing(t *testing.T) {
	e := New()
	e.genStmt(&ast.VarDecl{TypeName: "int", Name: "x"}, "")
	be.Equal(t, len(e.Code()), 0)
}

func TestIfWithoutElse(t *testing.T) {
	e := New()
	stmt := &ast.If{
		Cond: varAccess("c"),
		Then: &ast.Print{Expr: varAccess("c")},
	}
	e.genStmt(stmt, "")
	want := []string{
		"ifFalse c goto L0",
		"print c",
		"goto L1",
		"L0:",
		"L1:",
	}
	be.Equal(t, e.Code(), want)
}

func TestForLoopMatchesCountedLoopScenario(t *testing.T) {
	e := New()
	forStmt := &ast.For{
		Init: &ast.Assign{Name: "i", Value: &ast.IntLiteral{Value: 0}},
		Cond: &ast.BinaryExpr{Left: varAccess("i"), Op: "<", Right: &ast.IntLiteral{Value: 3}},
		Update: &ast.Assign{Name: "i", Value: &ast.BinaryExpr{
			Left: varAccess("i"), Op: "+", Right: &ast.IntLiteral{Value: 1},
		}},
		Body: &ast.Block{Stmts: []ast.Stmt{&ast.Print{Expr: varAccess("i")}}},
	}
	e.genStmt(forStmt, "")

	want := []string{
		"i = 0",
		"L0:",
		"t0 = i < 3",
		"ifFalse t0 goto L1",
		"print i",
		"t1 = i + 1",
		"i = t1",
		"goto L0",
		"L1:",
	}
	be.Equal(t, e.Code(), want)
}

func TestBreakInsideLoopGotosExitLabel(t *testing.T) {
	e := New()
	e.genStmt(&ast.Break{}, "L7")
	be.Equal(t, e.Code(), []string{"goto L7"})
}

func TestBreakOutsideLoopEmitsWarningNotGoto(t *testing.T) {
	e := New()
	e.genStmt(&ast.Break{}, "")
	be.Equal(t, len(e.Code()), 1)
	be.True(t, strings.Contains(e.Code()[0], "warning"))
}

func TestFuncCallEmitsParamsInSourceOrderThenCall(t *testing.T) {
	e := New()
	call := &ast.FuncCall{Name: "f", Args: []ast.Expr{&ast.IntLiteral{Value: 1}, &ast.IntLiteral{Value: 2}}}
	addr := e.genExpr(call)
	be.Equal(t, addr, "t0")
	want := []string{"param 1", "param 2", "t0 = call f, 2"}
	be.Equal(t, e.Code(), want)
}

func TestFuncDefEmitsNameLabelThenBody(t *testing.T) {
	e := New()
	fn := &ast.FuncDef{
		Name: "f",
		Body: &ast.Block{Stmts: []ast.Stmt{&ast.Return{Expr: &ast.IntLiteral{Value: 7}}}},
	}
	e.genStmt(fn, "")
	be.Equal(t, e.Code(), []string{"f:", "return 7"})
}

func TestStringLiteralIsQuotedInEmission(t *testing.T) {
	e := New()
	addr := e.genExpr(&ast.StringLiteral{Value: "hi"})
	be.Equal(t, addr, `"hi"`)
}

func TestPrintBanner(t *testing.T) {
	e := New()
	e.emit("x = 1")
	var buf strings.Builder
	e.Print(&buf)
	be.Equal(t, buf.String(), banner+"\nx = 1\n")
}
