// Package grammar holds the fixed LL(1) parsing table for L: for every
// (non-terminal, lookahead terminal) pair, the right-hand side the parser
// must push. Right-hand sides mix terminals, non-terminals, and semantic
// action markers (a leading '#'). A key present with an empty slice is an
// ε-production; a missing key means "no production" and is a syntax
// error.
package grammar

import "github.com/convcc/lcc/internal/token"

// Symbol is one element of a production's right-hand side.
type Symbol string

// IsAction reports whether sym is a semantic action marker.
func (sym Symbol) IsAction() bool {
	return len(sym) > 0 && sym[0] == '#'
}

// key identifies one cell of the LL(1) table.
type key struct {
	nonTerminal Symbol
	lookahead   token.Kind
}

// Table is the immutable LL(1) parsing table.
type Table struct {
	rules map[key][]Symbol
}

// Lookup returns the production for (nonTerminal, lookahead) and whether
// one exists.
func (t *Table) Lookup(nonTerminal Symbol, lookahead token.Kind) ([]Symbol, bool) {
	rhs, ok := t.rules[key{nonTerminal, lookahead}]
	return rhs, ok
}

func rule(nt Symbol, look token.Kind, rhs ...Symbol) struct {
	k key
	v []Symbol
} {
	return struct {
		k key
		v []Symbol
	}{key{nt, look}, rhs}
}

// New builds the LL(1) table for L's grammar:
//
//	PROGRAM     -> DECL_LIST
//	DECL_LIST   -> DECL DECL_LIST | ε
//	DECL        -> TYPE_SPEC IDENT DECL_TAIL
//	            |  KW_DEF IDENT LPAREN PARAM_LIST RPAREN BLOCK
//	            |  STMT
//	DECL_TAIL   -> SEMICOLON
//	            |  ASSIGN EXPR SEMICOLON
//	            |  LBRACKET EXPR RBRACKET SEMICOLON
//	TYPE_SPEC   -> KW_INT | KW_FLOAT | KW_STRING
//	STMT        -> KW_IF LPAREN EXPR RPAREN BLOCK ELSE_PART #BUILD_IF
//	            |  KW_FOR LPAREN FOR_INIT SEMICOLON EXPR SEMICOLON FOR_UPDATE RPAREN BLOCK
//	            |  KW_RETURN RETURN_EXPR SEMICOLON
//	            |  KW_BREAK SEMICOLON
//	            |  KW_PRINT LPAREN EXPR RPAREN SEMICOLON
//	            |  KW_READ LPAREN IDENT RPAREN SEMICOLON
//	            |  IDENT ASSIGN_OR_CALL
//	            |  BLOCK
//	ASSIGN_OR_CALL -> LBRACKET EXPR RBRACKET ASSIGN EXPR SEMICOLON
//	               |  ASSIGN EXPR SEMICOLON
//	               |  LPAREN ARG_LIST RPAREN SEMICOLON
//	ELSE_PART   -> KW_ELSE BLOCK | ε
//	FOR_INIT    -> TYPE_SPEC IDENT ASSIGN EXPR | IDENT ASSIGN EXPR | ε
//	FOR_UPDATE  -> IDENT ASSIGN EXPR | ε
//	RETURN_EXPR -> EXPR | ε
//	BLOCK       -> LBRACE STMT_LIST RBRACE
//	STMT_LIST   -> DECL STMT_LIST | ε
//	EXPR -> REL_EXPR
//	REL_EXPR -> ADD_EXPR REL_EXPR'
//	REL_EXPR' -> REL_OP ADD_EXPR REL_EXPR' | ε
//	ADD_EXPR -> MULT_EXPR ADD_EXPR'
//	ADD_EXPR' -> ADD_OP MULT_EXPR ADD_EXPR' | ε
//	MULT_EXPR -> UNARY_EXPR MULT_EXPR'
//	MULT_EXPR' -> MULT_OP UNARY_EXPR MULT_EXPR' | ε
//	UNARY_EXPR -> MINUS UNARY_EXPR | PRIMARY
//	PRIMARY -> INT_CONST | FLOAT_CONST | STRING_CONST | KW_NULL
//	        |  IDENT PRIMARY_TAIL
//	        |  KW_NEW TYPE_SPEC LBRACKET EXPR RBRACKET
//	        |  LPAREN EXPR RPAREN
//	PRIMARY_TAIL -> LBRACKET EXPR RBRACKET | LPAREN ARG_LIST RPAREN | ε
//	PARAM_LIST -> TYPE_SPEC IDENT PARAM_LIST' | ε
//	PARAM_LIST' -> COMMA TYPE_SPEC IDENT PARAM_LIST' | ε
//	ARG_LIST -> EXPR ARG_LIST' | ε
//	ARG_LIST' -> COMMA EXPR ARG_LIST' | ε
func New() *Table {
	t := &Table{rules: make(map[key][]Symbol)}
	add := func(nt Symbol, look token.Kind, rhs ...Symbol) {
		t.rules[key{nt, look}] = rhs
	}

	declStarters := []token.Kind{
		token.KW_INT, token.KW_FLOAT, token.KW_STRING, token.KW_DEF,
		token.KW_IF, token.KW_FOR, token.KW_RETURN, token.KW_BREAK,
		token.KW_PRINT, token.KW_READ, token.IDENT, token.LBRACE,
	}
	stmtStarters := []token.Kind{
		token.KW_IF, token.KW_FOR, token.KW_RETURN, token.KW_BREAK,
		token.KW_PRINT, token.KW_READ, token.IDENT, token.LBRACE,
	}
	exprStarters := []token.Kind{
		token.INT, token.FLOAT, token.STRING, token.KW_NULL,
		token.IDENT, token.KW_NEW, token.LPAREN, token.MINUS,
	}

	// PROGRAM -> #MARK_PROG DECL_LIST #BUILD_PROG
	for _, look := range append(append([]token.Kind{}, declStarters...), token.EOF) {
		add("PROGRAM", look, "#MARK_PROG", "DECL_LIST", "#BUILD_PROG")
	}

	// DECL_LIST -> DECL DECL_LIST | ε
	for _, look := range declStarters {
		add("DECL_LIST", look, "DECL", "DECL_LIST")
	}
	add("DECL_LIST", token.EOF)
	add("DECL_LIST", token.RBRACE)

	// DECL -> TYPE_SPEC IDENT DECL_TAIL
	for _, look := range []token.Kind{token.KW_INT, token.KW_FLOAT, token.KW_STRING} {
		add("DECL", look, "#MARK_DECL", "TYPE_SPEC", "#BUILD_TYPE", "IDENT", "#BUILD_VAR", "DECL_TAIL", "#BUILD_VARDECL")
	}
	// DECL -> KW_DEF IDENT LPAREN PARAM_LIST RPAREN BLOCK
	add("DECL", token.KW_DEF, "KW_DEF", "IDENT", "#BUILD_FUNC_ID", "LPAREN", "#MARK_PARAMS", "PARAM_LIST", "RPAREN", "BLOCK", "#BUILD_FUNC")
	// DECL -> STMT
	for _, look := range stmtStarters {
		add("DECL", look, "STMT")
	}

	// DECL_TAIL
	add("DECL_TAIL", token.SEMICOLON, "SEMICOLON")
	add("DECL_TAIL", token.ASSIGN, "ASSIGN", "EXPR", "SEMICOLON")
	add("DECL_TAIL", token.LBRACKET, "LBRACKET", "EXPR", "#BUILD_ARRAY_DECL_TAIL", "RBRACKET", "SEMICOLON")

	// TYPE_SPEC
	add("TYPE_SPEC", token.KW_INT, "KW_INT")
	add("TYPE_SPEC", token.KW_FLOAT, "KW_FLOAT")
	add("TYPE_SPEC", token.KW_STRING, "KW_STRING")

	// STMT
	add("STMT", token.KW_IF, "KW_IF", "LPAREN", "EXPR", "RPAREN", "BLOCK", "ELSE_PART", "#BUILD_IF")
	add("STMT", token.KW_FOR, "KW_FOR", "LPAREN", "#MARK_FOR_INIT", "FOR_INIT", "#BUILD_FOR_INIT", "SEMICOLON",
		"EXPR", "SEMICOLON", "#MARK_FOR_UPDATE", "FOR_UPDATE", "#BUILD_FOR_UPDATE", "RPAREN", "BLOCK", "#BUILD_FOR")
	add("STMT", token.KW_RETURN, "KW_RETURN", "RETURN_EXPR", "#BUILD_RETURN", "SEMICOLON")
	add("STMT", token.KW_BREAK, "KW_BREAK", "#BUILD_BREAK", "SEMICOLON")
	add("STMT", token.KW_PRINT, "KW_PRINT", "LPAREN", "EXPR", "RPAREN", "#BUILD_PRINT", "SEMICOLON")
	add("STMT", token.KW_READ, "KW_READ", "LPAREN", "IDENT", "#BUILD_READ", "RPAREN", "SEMICOLON")
	add("STMT", token.IDENT, "IDENT", "#BUILD_VAR", "ASSIGN_OR_CALL")
	add("STMT", token.LBRACE, "BLOCK")

	// ASSIGN_OR_CALL
	add("ASSIGN_OR_CALL", token.LBRACKET, "LBRACKET", "EXPR", "RBRACKET", "ASSIGN", "EXPR", "SEMICOLON", "#BUILD_ARRAY_ASSIGN")
	add("ASSIGN_OR_CALL", token.ASSIGN, "ASSIGN", "EXPR", "#BUILD_ASSIGN", "SEMICOLON")
	add("ASSIGN_OR_CALL", token.LPAREN, "LPAREN", "#MARK_ARGS", "ARG_LIST", "RPAREN", "#BUILD_CALL", "#BUILD_CALL_STMT", "SEMICOLON")

	// ELSE_PART -> KW_ELSE BLOCK | ε
	add("ELSE_PART", token.KW_ELSE, "KW_ELSE", "BLOCK")
	for _, look := range append(append([]token.Kind{}, declStarters...), token.RBRACE, token.EOF) {
		if look == token.KW_ELSE {
			continue
		}
		add("ELSE_PART", look, "#BUILD_NO_ELSE")
	}

	// FOR_INIT
	for _, look := range []token.Kind{token.KW_INT, token.KW_FLOAT, token.KW_STRING} {
		add("FOR_INIT", look, "#MARK_DECL", "TYPE_SPEC", "#BUILD_TYPE", "IDENT", "#BUILD_VAR", "ASSIGN", "EXPR", "#BUILD_VARDECL")
	}
	add("FOR_INIT", token.IDENT, "IDENT", "#BUILD_VAR", "ASSIGN", "EXPR", "#BUILD_ASSIGN")
	add("FOR_INIT", token.SEMICOLON)

	// FOR_UPDATE
	add("FOR_UPDATE", token.IDENT, "IDENT", "#BUILD_VAR", "ASSIGN", "EXPR", "#BUILD_ASSIGN")
	add("FOR_UPDATE", token.RPAREN)

	// RETURN_EXPR
	for _, look := range exprStarters {
		add("RETURN_EXPR", look, "EXPR")
	}
	add("RETURN_EXPR", token.SEMICOLON)

	// BLOCK
	add("BLOCK", token.LBRACE, "LBRACE", "#MARK_BLOCK", "STMT_LIST", "RBRACE", "#BUILD_BLOCK")

	// STMT_LIST -> DECL STMT_LIST | ε   (blocks may hold decls and stmts)
	for _, look := range declStarters {
		add("STMT_LIST", look, "DECL", "STMT_LIST")
	}
	add("STMT_LIST", token.RBRACE)

	// EXPR -> REL_EXPR
	for _, look := range exprStarters {
		add("EXPR", look, "REL_EXPR")
	}

	// REL_EXPR -> ADD_EXPR REL_EXPR'
	for _, look := range exprStarters {
		add("REL_EXPR", look, "ADD_EXPR", "REL_EXPR'")
	}

	// REL_EXPR'
	add("REL_EXPR'", token.LT, "REL_OP", "ADD_EXPR", "#BUILD_LT", "REL_EXPR'")
	add("REL_EXPR'", token.GT, "REL_OP", "ADD_EXPR", "#BUILD_GT", "REL_EXPR'")
	add("REL_EXPR'", token.LE, "REL_OP", "ADD_EXPR", "#BUILD_LE", "REL_EXPR'")
	add("REL_EXPR'", token.GE, "REL_OP", "ADD_EXPR", "#BUILD_GE", "REL_EXPR'")
	add("REL_EXPR'", token.EQ, "REL_OP", "ADD_EXPR", "#BUILD_EQ", "REL_EXPR'")
	add("REL_EXPR'", token.NEQ, "REL_OP", "ADD_EXPR", "#BUILD_NEQ", "REL_EXPR'")
	for _, look := range []token.Kind{token.SEMICOLON, token.RPAREN, token.RBRACKET, token.COMMA} {
		add("REL_EXPR'", look)
	}

	// REL_OP
	add("REL_OP", token.LT, "LT")
	add("REL_OP", token.GT, "GT")
	add("REL_OP", token.LE, "LE")
	add("REL_OP", token.GE, "GE")
	add("REL_OP", token.EQ, "EQ")
	add("REL_OP", token.NEQ, "NEQ")

	// ADD_EXPR -> MULT_EXPR ADD_EXPR'
	for _, look := range exprStarters {
		add("ADD_EXPR", look, "MULT_EXPR", "ADD_EXPR'")
	}

	// ADD_EXPR'
	add("ADD_EXPR'", token.PLUS, "ADD_OP", "MULT_EXPR", "#BUILD_ADD", "ADD_EXPR'")
	add("ADD_EXPR'", token.MINUS, "ADD_OP", "MULT_EXPR", "#BUILD_SUB", "ADD_EXPR'")
	for _, look := range []token.Kind{token.LT, token.GT, token.LE, token.GE, token.EQ, token.NEQ,
		token.SEMICOLON, token.RPAREN, token.RBRACKET, token.COMMA} {
		add("ADD_EXPR'", look)
	}

	// ADD_OP
	add("ADD_OP", token.PLUS, "PLUS")
	add("ADD_OP", token.MINUS, "MINUS")

	// MULT_EXPR -> UNARY_EXPR MULT_EXPR'
	for _, look := range exprStarters {
		add("MULT_EXPR", look, "UNARY_EXPR", "MULT_EXPR'")
	}

	// MULT_EXPR'
	add("MULT_EXPR'", token.STAR, "MULT_OP", "UNARY_EXPR", "#BUILD_MUL", "MULT_EXPR'")
	add("MULT_EXPR'", token.SLASH, "MULT_OP", "UNARY_EXPR", "#BUILD_DIV", "MULT_EXPR'")
	add("MULT_EXPR'", token.MOD, "MULT_OP", "UNARY_EXPR", "#BUILD_MOD", "MULT_EXPR'")
	for _, look := range []token.Kind{token.PLUS, token.MINUS, token.LT, token.GT, token.LE, token.GE,
		token.EQ, token.NEQ, token.SEMICOLON, token.RPAREN, token.RBRACKET, token.COMMA} {
		add("MULT_EXPR'", look)
	}

	// MULT_OP
	add("MULT_OP", token.STAR, "STAR")
	add("MULT_OP", token.SLASH, "SLASH")
	add("MULT_OP", token.MOD, "MOD")

	// UNARY_EXPR -> MINUS UNARY_EXPR | PRIMARY
	add("UNARY_EXPR", token.MINUS, "MINUS", "UNARY_EXPR", "#BUILD_NEG")
	for _, look := range []token.Kind{token.INT, token.FLOAT, token.STRING, token.KW_NULL, token.IDENT, token.KW_NEW, token.LPAREN} {
		add("UNARY_EXPR", look, "PRIMARY")
	}

	// PRIMARY
	add("PRIMARY", token.INT, "INT_CONST", "#BUILD_INT")
	add("PRIMARY", token.FLOAT, "FLOAT_CONST", "#BUILD_FLOAT")
	add("PRIMARY", token.STRING, "STRING_CONST", "#BUILD_STRING")
	add("PRIMARY", token.KW_NULL, "KW_NULL", "#BUILD_NULL")
	add("PRIMARY", token.IDENT, "IDENT", "#BUILD_VAR", "PRIMARY_TAIL")
	add("PRIMARY", token.KW_NEW, "KW_NEW", "TYPE_SPEC", "#BUILD_TYPE", "LBRACKET", "EXPR", "RBRACKET", "#BUILD_NEW_ARRAY")
	add("PRIMARY", token.LPAREN, "LPAREN", "EXPR", "RPAREN")

	// PRIMARY_TAIL
	add("PRIMARY_TAIL", token.LBRACKET, "LBRACKET", "EXPR", "RBRACKET", "#BUILD_ARRAY_ACCESS")
	add("PRIMARY_TAIL", token.LPAREN, "LPAREN", "#MARK_ARGS", "ARG_LIST", "RPAREN", "#BUILD_CALL")
	for _, look := range []token.Kind{token.STAR, token.SLASH, token.MOD, token.PLUS, token.MINUS,
		token.LT, token.GT, token.LE, token.GE, token.EQ, token.NEQ,
		token.SEMICOLON, token.RPAREN, token.RBRACKET, token.COMMA} {
		add("PRIMARY_TAIL", look)
	}

	// PARAM_LIST
	for _, look := range []token.Kind{token.KW_INT, token.KW_FLOAT, token.KW_STRING} {
		add("PARAM_LIST", look, "TYPE_SPEC", "#BUILD_TYPE", "IDENT", "#BUILD_PARAM", "PARAM_LIST'")
	}
	add("PARAM_LIST", token.RPAREN)

	// PARAM_LIST'
	add("PARAM_LIST'", token.COMMA, "COMMA", "TYPE_SPEC", "#BUILD_TYPE", "IDENT", "#BUILD_PARAM", "PARAM_LIST'")
	add("PARAM_LIST'", token.RPAREN)

	// ARG_LIST
	for _, look := range exprStarters {
		add("ARG_LIST", look, "EXPR", "ARG_LIST'")
	}
	add("ARG_LIST", token.RPAREN)

	// ARG_LIST'
	add("ARG_LIST'", token.COMMA, "COMMA", "EXPR", "ARG_LIST'")
	add("ARG_LIST'", token.RPAREN)

	return t
}
