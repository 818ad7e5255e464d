// Package parser implements the predictive LL(1) parser for L. It drives
// a parse stack against the fixed grammar table (internal/grammar),
// consuming tokens from the lexer, and builds the AST on an auxiliary
// semantic stack as syntax-directed translation actions fire.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/convcc/lcc/internal/ast"
	"github.com/convcc/lcc/internal/grammar"
	"github.com/convcc/lcc/internal/lexer"
	"github.com/convcc/lcc/internal/token"
)

// Error is a fatal parse-time failure: a syntactic mismatch, or a
// semantic-stack inconsistency in an action marker (which indicates a
// grammar/marker bug rather than a malformed program). Lexical errors are
// passed through unchanged as *lexer.Error.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Line == 0 && e.Column == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// terminals maps grammar terminal symbols onto the token kind they match.
var terminals = map[grammar.Symbol]token.Kind{
	"IDENT":        token.IDENT,
	"INT_CONST":    token.INT,
	"FLOAT_CONST":  token.FLOAT,
	"STRING_CONST": token.STRING,
	"END_OF_FILE":  token.EOF,
	"KW_INT":       token.KW_INT,
	"KW_FLOAT":     token.KW_FLOAT,
	"KW_STRING":    token.KW_STRING,
	"KW_DEF":       token.KW_DEF,
	"KW_FOR":       token.KW_FOR,
	"KW_IF":        token.KW_IF,
	"KW_ELSE":      token.KW_ELSE,
	"KW_PRINT":     token.KW_PRINT,
	"KW_READ":      token.KW_READ,
	"KW_RETURN":    token.KW_RETURN,
	"KW_BREAK":     token.KW_BREAK,
	"KW_NEW":       token.KW_NEW,
	"KW_NULL":      token.KW_NULL,
	"PLUS":         token.PLUS,
	"MINUS":        token.MINUS,
	"STAR":         token.STAR,
	"SLASH":        token.SLASH,
	"MOD":          token.MOD,
	"LT":           token.LT,
	"GT":           token.GT,
	"LE":           token.LE,
	"GE":           token.GE,
	"EQ":           token.EQ,
	"NEQ":          token.NEQ,
	"ASSIGN":       token.ASSIGN,
	"COMMA":        token.COMMA,
	"SEMICOLON":    token.SEMICOLON,
	"LPAREN":       token.LPAREN,
	"RPAREN":       token.RPAREN,
	"LBRACE":       token.LBRACE,
	"RBRACE":       token.RBRACE,
	"LBRACKET":     token.LBRACKET,
	"RBRACKET":     token.RBRACKET,
}

// isTerminal reports whether sym names a grammar terminal (as opposed to
// a non-terminal or an action marker).
func isTerminal(sym grammar.Symbol) bool {
	_, ok := terminals[sym]
	return ok
}

// Parser holds the parse stack, the semantic stack, and the inherited
// attributes (lastType, tempParams) threaded through syntax-directed
// translation.
type Parser struct {
	lex   *lexer.Lexer
	table *grammar.Table

	current  token.Token
	previous token.Token

	parseStack []grammar.Symbol
	semStack   []ast.Node // nil entries are sentinels delimiting a collection

	lastType   string
	tempParams []*ast.VarDecl
}

// New returns a parser reading tokens from lex.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex, table: grammar.New()}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.previous = p.current
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// Parse runs the predictive parse to completion and returns the
// constructed Program root.
func (p *Parser) Parse() (*ast.Program, error) {
	p.parseStack = []grammar.Symbol{"PROGRAM"}

	for len(p.parseStack) > 0 {
		top := p.parseStack[len(p.parseStack)-1]
		p.parseStack = p.parseStack[:len(p.parseStack)-1]

		if top == "" {
			continue
		}

		if top.IsAction() {
			if err := p.performAction(top); err != nil {
				return nil, err
			}
			continue
		}

		if isTerminal(top) {
			want := terminals[top]
			if p.current.Kind != want {
				return nil, &Error{
					Line: p.current.Line, Column: p.current.Column,
					Message: fmt.Sprintf("expected '%s' but found '%s'", top, p.current.Lexeme),
				}
			}
			if p.current.Kind == token.IDENT {
				va := &ast.VarAccess{Name: p.current.Lexeme}
				va.Line = p.current.Line
				p.pushSem(va)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		lookKind := p.current.Kind
		rhs, ok := p.table.Lookup(top, lookKind)
		if !ok {
			return nil, &Error{
				Line: p.current.Line, Column: p.current.Column,
				Message: fmt.Sprintf("no production for (%s, %s); unexpected '%s'", top, lookKind, p.current.Lexeme),
			}
		}
		for i := len(rhs) - 1; i >= 0; i-- {
			p.parseStack = append(p.parseStack, rhs[i])
		}
	}

	if len(p.semStack) == 0 {
		return nil, &Error{Message: "parser produced no AST root"}
	}
	root, ok := p.popSem().(*ast.Program)
	if !ok {
		return nil, &Error{Message: "parser root is not a Program node"}
	}
	// Residue on the semantic stack is a non-fatal warning (§4.4); the
	// caller may inspect it via Parser.Residue if it cares.
	return root, nil
}

// Residue reports how many extra nodes were left on the semantic stack
// after a successful parse (should be zero for a well-formed grammar).
func (p *Parser) Residue() int { return len(p.semStack) }

func (p *Parser) pushSem(n ast.Node) { p.semStack = append(p.semStack, n) }

func (p *Parser) popSem() ast.Node {
	if len(p.semStack) == 0 {
		return nil
	}
	n := p.semStack[len(p.semStack)-1]
	p.semStack = p.semStack[:len(p.semStack)-1]
	return n
}

func (p *Parser) peekSem() ast.Node {
	if len(p.semStack) == 0 {
		return nil
	}
	return p.semStack[len(p.semStack)-1]
}

func fatal(line int, format string, args ...any) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// popExpr pops the top of the semantic stack and requires it to be an
// expression.
func (p *Parser) popExpr(action string) (ast.Expr, error) {
	n := p.popSem()
	expr, ok := n.(ast.Expr)
	if !ok {
		return nil, fatal(p.previous.Line, "%s: expected an expression on the semantic stack", action)
	}
	return expr, nil
}

func (p *Parser) popVarAccess(action string) (*ast.VarAccess, error) {
	n := p.popSem()
	va, ok := n.(*ast.VarAccess)
	if !ok {
		return nil, fatal(p.previous.Line, "%s: expected an identifier on the semantic stack", action)
	}
	return va, nil
}

// performAction executes one semantic action marker, per §4.4. Markers
// never consume input; they only move nodes between the semantic stack
// and the inherited-attribute fields (lastType, tempParams).
func (p *Parser) performAction(action grammar.Symbol) error {
	switch action {

	case "#BUILD_INT":
		val, err := strconv.ParseInt(p.previous.Lexeme, 10, 64)
		if err != nil {
			return fatal(p.previous.Line, "malformed integer literal %q", p.previous.Lexeme)
		}
		n := &ast.IntLiteral{Value: val}
		n.Line = p.previous.Line
		n.Type = "int"
		p.pushSem(n)

	case "#BUILD_FLOAT":
		val, err := strconv.ParseFloat(p.previous.Lexeme, 64)
		if err != nil {
			return fatal(p.previous.Line, "malformed float literal %q", p.previous.Lexeme)
		}
		n := &ast.FloatLiteral{Value: val}
		n.Line = p.previous.Line
		n.Type = "float"
		p.pushSem(n)

	case "#BUILD_STRING":
		s := strings.TrimPrefix(strings.TrimSuffix(p.previous.Lexeme, `"`), `"`)
		n := &ast.StringLiteral{Value: s}
		n.Line = p.previous.Line
		n.Type = "string"
		p.pushSem(n)

	case "#BUILD_NULL":
		n := &ast.NullLiteral{}
		n.Line = p.previous.Line
		p.pushSem(n)

	case "#BUILD_VAR", "#BUILD_FUNC_ID":
		// The terminal handler already pushed the VarAccess transient
		// when it matched IDENT; nothing to do here.

	case "#BUILD_ADD", "#BUILD_SUB", "#BUILD_MUL", "#BUILD_DIV", "#BUILD_MOD",
		"#BUILD_LT", "#BUILD_GT", "#BUILD_LE", "#BUILD_GE", "#BUILD_EQ", "#BUILD_NEQ":
		if len(p.semStack) < 2 {
			return fatal(p.previous.Line, "%s: not enough operands", action)
		}
		right, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		left, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		op := map[grammar.Symbol]string{
			"#BUILD_ADD": "+", "#BUILD_SUB": "-", "#BUILD_MUL": "*",
			"#BUILD_DIV": "/", "#BUILD_MOD": "%", "#BUILD_LT": "<",
			"#BUILD_GT": ">", "#BUILD_LE": "<=", "#BUILD_GE": ">=",
			"#BUILD_EQ": "==", "#BUILD_NEQ": "!=",
		}[action]
		n := &ast.BinaryExpr{Left: left, Op: op, Right: right}
		n.Line = left.SourceLine()
		p.pushSem(n)

	case "#BUILD_NEG":
		expr, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		zero := &ast.IntLiteral{Value: 0}
		zero.Line = expr.SourceLine()
		zero.Type = "int"
		n := &ast.BinaryExpr{Left: zero, Op: "-", Right: expr}
		n.Line = expr.SourceLine()
		p.pushSem(n)

	case "#MARK_BLOCK", "#MARK_PROG", "#MARK_DECL", "#MARK_FOR_INIT", "#MARK_FOR_UPDATE", "#MARK_ARGS", "#MARK_PARAMS":
		if action == "#MARK_PARAMS" {
			p.tempParams = nil
		}
		p.pushSem(nil)

	case "#BUILD_BLOCK":
		stmts, err := p.collectStmtsUntilSentinel()
		if err != nil {
			return err
		}
		block := &ast.Block{Stmts: stmts}
		if len(stmts) > 0 {
			block.Line = stmts[0].SourceLine()
		} else {
			block.Line = p.previous.Line
		}
		p.pushSem(block)

	case "#BUILD_PROG":
		stmts, err := p.collectStmtsUntilSentinel()
		if err != nil {
			return err
		}
		prog := &ast.Program{Items: stmts}
		if len(stmts) > 0 {
			prog.Line = stmts[0].SourceLine()
		}
		p.pushSem(prog)

	case "#BUILD_RETURN":
		var expr ast.Expr
		if top := p.peekSem(); top != nil {
			if e, ok := top.(ast.Expr); ok {
				expr = e
				p.popSem()
			}
		}
		n := &ast.Return{Expr: expr}
		n.Line = p.previous.Line
		p.pushSem(n)

	case "#BUILD_PRINT":
		expr, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		n := &ast.Print{Expr: expr}
		n.Line = p.previous.Line
		p.pushSem(n)

	case "#BUILD_READ":
		va, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		n := &ast.Read{Name: va.Name}
		n.Line = va.Line
		p.pushSem(n)

	case "#BUILD_NO_ELSE":
		p.pushSem(nil)

	case "#BUILD_IF":
		elseNode := p.popSem()
		thenNode := p.popSem()
		condNode := p.popSem()

		thenStmt, ok := thenNode.(ast.Stmt)
		if !ok {
			return fatal(p.previous.Line, "%s: malformed then-branch", action)
		}
		cond, ok := condNode.(ast.Expr)
		if !ok {
			return fatal(p.previous.Line, "%s: malformed condition", action)
		}
		var elseStmt ast.Stmt
		if elseNode != nil {
			elseStmt, ok = elseNode.(ast.Stmt)
			if !ok {
				return fatal(p.previous.Line, "%s: malformed else-branch", action)
			}
		}

		n := &ast.If{Cond: cond, Then: thenStmt, Else: elseStmt}
		n.Line = cond.SourceLine()
		p.pushSem(n)

	case "#BUILD_BREAK":
		n := &ast.Break{}
		n.Line = p.previous.Line
		p.pushSem(n)

	case "#BUILD_FOR_INIT", "#BUILD_FOR_UPDATE":
		var stmt ast.Stmt
		if top := p.peekSem(); top != nil {
			if s, ok := top.(ast.Stmt); ok {
				stmt = s
				p.popSem()
			}
		}
		p.popSem() // remove the #MARK_FOR_INIT/UPDATE sentinel
		if stmt != nil {
			p.pushSem(stmt)
		} else {
			p.pushSem(nil)
		}

	case "#BUILD_FOR":
		if len(p.semStack) < 4 {
			return fatal(p.previous.Line, "%s: not enough nodes on the semantic stack", action)
		}
		bodyNode := p.popSem()
		updateNode := p.popSem()
		condNode := p.popSem()
		initNode := p.popSem()

		block, ok := bodyNode.(*ast.Block)
		if !ok {
			return fatal(p.previous.Line, "%s: malformed loop body", action)
		}
		var update, init ast.Stmt
		if updateNode != nil {
			update, ok = updateNode.(ast.Stmt)
			if !ok {
				return fatal(p.previous.Line, "%s: malformed update clause", action)
			}
		}
		var cond ast.Expr
		if condNode != nil {
			cond, ok = condNode.(ast.Expr)
			if !ok {
				return fatal(p.previous.Line, "%s: malformed condition", action)
			}
		}
		if initNode != nil {
			init, ok = initNode.(ast.Stmt)
			if !ok {
				return fatal(p.previous.Line, "%s: malformed init clause", action)
			}
		}

		n := &ast.For{Init: init, Cond: cond, Update: update, Body: block}
		if init != nil {
			n.Line = init.SourceLine()
		} else {
			n.Line = block.SourceLine()
		}
		p.pushSem(n)

	case "#BUILD_CALL":
		args, err := p.collectExprsUntilSentinel()
		if err != nil {
			return err
		}
		callee, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		n := &ast.FuncCall{Name: callee.Name, Args: args}
		n.Line = callee.Line
		p.pushSem(n)

	case "#BUILD_CALL_STMT":
		n := p.popSem()
		call, ok := n.(*ast.FuncCall)
		if !ok {
			return fatal(p.previous.Line, "%s: expected a function call", action)
		}
		stmt := &ast.ExprStmt{X: call}
		stmt.Line = call.SourceLine()
		p.pushSem(stmt)

	case "#BUILD_PARAM":
		va, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		param := &ast.VarDecl{TypeName: p.lastType, Name: va.Name}
		param.Line = va.Line
		p.tempParams = append(p.tempParams, param)

	case "#BUILD_FUNC":
		bodyNode := p.popSem()
		block, ok := bodyNode.(*ast.Block)
		if !ok {
			return fatal(p.previous.Line, "%s: malformed function body", action)
		}
		if p.peekSem() == nil {
			p.popSem() // #MARK_PARAMS sentinel
		}
		callee, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		n := &ast.FuncDef{Name: callee.Name, Params: p.tempParams, Body: block}
		n.Line = callee.Line
		p.tempParams = nil
		p.pushSem(n)

	case "#BUILD_TYPE":
		p.lastType = p.previous.Lexeme

	case "#BUILD_VARDECL":
		nodes, err := p.collectUntilSentinel()
		if err != nil {
			return err
		}
		switch len(nodes) {
		case 2:
			nameNode, ok := nodes[0].(*ast.VarAccess)
			initExpr, ok2 := nodes[1].(ast.Expr)
			if !ok || !ok2 {
				return fatal(p.previous.Line, "%s: malformed declaration with initializer", action)
			}
			decl := &ast.VarDecl{TypeName: p.lastType, Name: nameNode.Name, Init: initExpr}
			decl.Line = nameNode.Line
			p.pushSem(decl)
		case 1:
			nameNode, ok := nodes[0].(*ast.VarAccess)
			if !ok {
				return fatal(p.previous.Line, "%s: malformed declaration", action)
			}
			decl := &ast.VarDecl{TypeName: p.lastType, Name: nameNode.Name}
			decl.Line = nameNode.Line
			p.pushSem(decl)
		default:
			return fatal(p.previous.Line, "%s: expected 1 or 2 nodes, got %d", action, len(nodes))
		}

	case "#BUILD_ARRAY_DECL_TAIL":
		sizeExpr, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		alloc := &ast.NewArray{ElemType: p.lastType, Size: sizeExpr}
		alloc.Line = sizeExpr.SourceLine()
		p.pushSem(alloc)

	case "#BUILD_NEW_ARRAY":
		sizeExpr, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		n := &ast.NewArray{ElemType: p.lastType, Size: sizeExpr}
		n.Line = p.previous.Line
		p.pushSem(n)

	case "#BUILD_ASSIGN":
		value, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		target, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		n := &ast.Assign{Name: target.Name, Value: value}
		n.Line = target.Line
		p.pushSem(n)

	case "#BUILD_ARRAY_ACCESS":
		index, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		target, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		n := &ast.ArrayAccess{Name: target.Name, Index: index}
		n.Line = target.Line
		p.pushSem(n)

	case "#BUILD_ARRAY_ASSIGN":
		value, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		index, err := p.popExpr(string(action))
		if err != nil {
			return err
		}
		target, err := p.popVarAccess(string(action))
		if err != nil {
			return err
		}
		n := &ast.ArrayAssign{Name: target.Name, Index: index, Value: value}
		n.Line = target.Line
		p.pushSem(n)

	default:
		return fatal(p.previous.Line, "unknown semantic action marker %q", action)
	}
	return nil
}

// collectUntilSentinel pops nodes until the nil sentinel (exclusive),
// then returns them in source order.
func (p *Parser) collectUntilSentinel() ([]ast.Node, error) {
	var nodes []ast.Node
	for len(p.semStack) > 0 && p.peekSem() != nil {
		nodes = append(nodes, p.popSem())
	}
	if len(p.semStack) == 0 {
		return nil, fatal(p.previous.Line, "missing sentinel on semantic stack")
	}
	p.popSem() // remove sentinel
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes, nil
}

func (p *Parser) collectStmtsUntilSentinel() ([]ast.Stmt, error) {
	nodes, err := p.collectUntilSentinel()
	if err != nil {
		return nil, err
	}
	stmts := make([]ast.Stmt, 0, len(nodes))
	for _, n := range nodes {
		s, ok := n.(ast.Stmt)
		if !ok {
			return nil, fatal(p.previous.Line, "expected a statement on the semantic stack")
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) collectExprsUntilSentinel() ([]ast.Expr, error) {
	nodes, err := p.collectUntilSentinel()
	if err != nil {
		return nil, err
	}
	exprs := make([]ast.Expr, 0, len(nodes))
	for _, n := range nodes {
		e, ok := n.(ast.Expr)
		if !ok {
			return nil, fatal(p.previous.Line, "expected an expression on the semantic stack")
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}
