package grammar

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/convcc/lcc/internal/token"
)

func TestIsAction(t *testing.T) {
	be.True(t, Symbol("#BUILD_ADD").IsAction())
	be.True(t, !Symbol("IDENT").IsAction())
	be.True(t, !Symbol("").IsAction())
}

func TestProgramAcceptsEveryDeclStarterAndEOF(t *testing.T) {
	tab := New()
	starters := []token.Kind{
		token.KW_INT, token.KW_FLOAT, token.KW_STRING, token.KW_DEF,
		token.KW_IF, token.KW_FOR, token.KW_RETURN, token.KW_BREAK,
		token.KW_PRINT, token.KW_READ, token.IDENT, token.LBRACE, token.EOF,
	}
	for _, look := range starters {
		_, ok := tab.Lookup("PROGRAM", look)
		be.True(t, ok)
	}
}

func TestEmptyProgramIsAnEpsilonDeclList(t *testing.T) {
	tab := New()
	rhs, ok := tab.Lookup("DECL_LIST", token.EOF)
	be.True(t, ok)
	be.Equal(t, len(rhs), 0)
}

func TestIfProductionBuildsIfAfterElsePart(t *testing.T) {
	tab := New()
	rhs, ok := tab.Lookup("STMT", token.KW_IF)
	be.True(t, ok)
	be.Equal(t, rhs[len(rhs)-1], Symbol("#BUILD_IF"))
}

func TestElsePartHasNoElseMarkerOnEveryNonElseLookahead(t *testing.T) {
	tab := New()
	nonElse := []token.Kind{
		token.KW_INT, token.KW_FLOAT, token.KW_STRING, token.KW_DEF,
		token.KW_IF, token.KW_FOR, token.KW_RETURN, token.KW_BREAK,
		token.KW_PRINT, token.KW_READ, token.IDENT, token.LBRACE,
		token.RBRACE, token.EOF,
	}
	for _, look := range nonElse {
		rhs, ok := tab.Lookup("ELSE_PART", look)
		be.True(t, ok)
		be.Equal(t, rhs, []Symbol{"#BUILD_NO_ELSE"})
	}

	rhs, ok := tab.Lookup("ELSE_PART", token.KW_ELSE)
	be.True(t, ok)
	be.Equal(t, rhs[0], Symbol("KW_ELSE"))
}

func TestForInitEpsilonOnSemicolon(t *testing.T) {
	tab := New()
	rhs, ok := tab.Lookup("FOR_INIT", token.SEMICOLON)
	be.True(t, ok)
	be.Equal(t, len(rhs), 0)
}

func TestParamListEpsilonOnRParen(t *testing.T) {
	tab := New()
	rhs, ok := tab.Lookup("PARAM_LIST", token.RPAREN)
	be.True(t, ok)
	be.Equal(t, len(rhs), 0)
}

func TestMissingEntryIsReportedAsNotOk(t *testing.T) {
	tab := New()
	_, ok := tab.Lookup("PARAM_LIST", token.SEMICOLON)
	be.True(t, !ok)
}
