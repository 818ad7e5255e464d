package ast

import (
	"testing"

	"github.com/nalgeon/be"
)

// TestUnexportedEmbedFieldPromotion exercises the trick the parser relies
// on: Line is promoted from the unexported base/exprBase/stmtBase types,
// so it can be set from another package via selector syntax even though
// those embedded types cannot be named outside this package.
func TestUnexportedEmbedFieldPromotion(t *testing.T) {
	va := &VarAccess{Name: "x"}
	va.Line = 5
	be.Equal(t, va.SourceLine(), 5)

	decl := &VarDecl{Name: "y"}
	decl.Line = 7
	be.Equal(t, decl.SourceLine(), 7)
}

func TestExprTypeRoundTrip(t *testing.T) {
	lit := &IntLiteral{Value: 1}
	lit.SetExprType("int")
	be.Equal(t, lit.ExprType(), "int")
}

func TestEveryStatementKindImplementsStmt(t *testing.T) {
	var stmts = []Stmt{
		&VarDecl{}, &Assign{}, &ArrayAssign{}, &ExprStmt{}, &If{}, &For{},
		&While{}, &Return{}, &Print{}, &Read{}, &Break{}, &Block{}, &FuncDef{}, &Program{},
	}
	be.Equal(t, len(stmts), 14)
}
