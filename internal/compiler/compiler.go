// Package compiler wires the pipeline stages together: lex, parse with
// syntax-directed translation, semantic analysis, and TAC emission. It
// is the only package that sequences the other internal packages; each
// stage consumes the immutable output of the one before it, except the
// shared symbol table, which the lexer seeds and the semantic analyser
// completes.
package compiler

import (
	"io"

	"github.com/convcc/lcc/internal/ast"
	"github.com/convcc/lcc/internal/lexer"
	"github.com/convcc/lcc/internal/parser"
	"github.com/convcc/lcc/internal/semantic"
	"github.com/convcc/lcc/internal/symboltable"
	"github.com/convcc/lcc/internal/tac"
)

// Result is the outcome of a successful parse: the AST, the completed
// symbol table, any accumulated semantic diagnostics, and (only when no
// diagnostics were raised) the emitted TAC.
type Result struct {
	Program     *ast.Program
	SymbolTable *symboltable.Table
	Diagnostics []string
	HasError    bool
	TAC         *tac.Emitter
}

// Compile runs source through the full pipeline. A non-nil error means a
// fatal failure (lexical or syntactic) that aborted before an AST could
// be completed; accumulated semantic errors are reported via Result
// instead and do not produce a Go error.
func Compile(source []byte, diag io.Writer) (*Result, error) {
	symtab := symboltable.New()
	lex := lexer.New(source, symtab)

	p, err := parser.New(lex)
	if err != nil {
		return nil, err
	}
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}

	checker := semantic.New(symtab, diag)
	checker.Check(prog)

	res := &Result{
		Program:     prog,
		SymbolTable: symtab,
		Diagnostics: checker.Diagnostics,
		HasError:    checker.HasError,
	}
	if checker.HasError {
		return res, nil
	}

	res.TAC = tac.Generate(prog)
	return res, nil
}
