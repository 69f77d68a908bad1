package turtle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	lex := NewLexer(input)
	var tokens []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerTokenKinds(t *testing.T) {
	tokens := lexAll(t, `@prefix ex: <http://example.org/> .
ex:s a ex:C ; ex:p "x"@en-US, 'y'^^ex:dt , [] , [ ex:q 1 ] , ( 2.5 -3e10 true ) .
_:b1 ex:p """long "quoted" text""" .`)

	assert.Equal(t, []TokenKind{
		TokenLangTag, TokenPNameNS, TokenIRIRef, TokenDot,
		TokenPNameLN, TokenKeyword, TokenPNameLN, TokenSemicolon, TokenPNameLN,
		TokenString, TokenLangTag, TokenComma, TokenString, TokenDatatypeMark, TokenPNameLN, TokenComma,
		TokenAnon, TokenComma, TokenLBracket, TokenPNameLN, TokenInteger, TokenRBracket, TokenComma,
		TokenLParen, TokenDecimal, TokenDouble, TokenKeyword, TokenRParen, TokenDot,
		TokenBlankNodeLabel, TokenPNameLN, TokenString, TokenDot,
	}, kinds(tokens))

	assert.Equal(t, "prefix", tokens[0].Text)
	assert.Equal(t, "http://example.org/", tokens[2].Text)
	assert.Equal(t, "en-US", tokens[10].Text)
	assert.Equal(t, "b1", tokens[29].Text)
	assert.Equal(t, `long "quoted" text`, tokens[31].Text)
	assert.True(t, tokens[31].Long)
}

func TestLexerPositions(t *testing.T) {
	tokens := lexAll(t, "# comment\n  ex:s\n\tex:é \"v\" .")
	require.Len(t, tokens, 4)
	assert.Equal(t, rdf.Position{Line: 2, Column: 3, Offset: 12}, tokens[0].Pos)
	assert.Equal(t, rdf.Position{Line: 3, Column: 2, Offset: 18}, tokens[1].Pos)
	assert.Equal(t, 3, tokens[2].Pos.Line)
	assert.Equal(t, 7, tokens[2].Pos.Column)
}

func TestLexerPrefixedNames(t *testing.T) {
	tokens := lexAll(t, `: :a ex:b.c ex:d. ex:a\,b ex:%20x ex:1st`)
	require.Len(t, tokens, 8)

	assert.Equal(t, TokenPNameNS, tokens[0].Kind)
	assert.Equal(t, "", tokens[0].Text)
	assert.Equal(t, "a", tokens[1].Local)
	assert.Equal(t, "b.c", tokens[2].Local)
	assert.Equal(t, "d", tokens[3].Local)
	assert.Equal(t, TokenDot, tokens[4].Kind)
	assert.Equal(t, `a\,b`, tokens[5].Local)
	assert.Equal(t, "%20x", tokens[6].Local)
	assert.Equal(t, "1st", tokens[7].Local)
}

func TestLexerNumbers(t *testing.T) {
	tokens := lexAll(t, `1 +2 -3.5 .5 4.e2 1E-3 7.`)
	expected := []struct {
		kind TokenKind
		text string
	}{
		{TokenInteger, "1"},
		{TokenInteger, "+2"},
		{TokenDecimal, "-3.5"},
		{TokenDecimal, ".5"},
		{TokenDouble, "4.e2"},
		{TokenDouble, "1E-3"},
		{TokenInteger, "7"},
		{TokenDot, ""},
	}
	require.Len(t, tokens, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.kind, tokens[i].Kind, e.text)
		assert.Equal(t, e.text, tokens[i].Text)
	}
}

func TestLexerAnonWithWhitespace(t *testing.T) {
	tokens := lexAll(t, "[ \n ] [ex:p")
	assert.Equal(t, []TokenKind{TokenAnon, TokenLBracket, TokenPNameLN}, kinds(tokens))
	assert.Equal(t, 2, tokens[1].Pos.Line)
}

func TestLexerErrors(t *testing.T) {
	tests := map[string]rdf.Position{
		`<http://example.org/`: {Line: 1, Column: 1, Offset: 0},
		"\"line\nbreak\"":      {Line: 1, Column: 1, Offset: 0},
		`"""never closed`:      {Line: 1, Column: 1, Offset: 0},
		`ex:s ^ ex:o`:          {Line: 1, Column: 6, Offset: 5},
		`@ x`:                  {Line: 1, Column: 1, Offset: 0},
		`ex:bad%2`:             {Line: 1, Column: 1, Offset: 0},
		`ex:bad\q`:             {Line: 1, Column: 1, Offset: 0},
		`_:`:                   {Line: 1, Column: 1, Offset: 0},
		"ex:s\n  {":            {Line: 2, Column: 3, Offset: 7},
		"ex:s \xff":            {Line: 1, Column: 6, Offset: 5},
		`"""too many""""""`:    {Line: 1, Column: 15, Offset: 14},
		`"""abc"""" .`:         {Line: 1, Column: 10, Offset: 9},
	}
	for input, pos := range tests {
		lex := NewLexer(input)
		var err error
		for err == nil {
			var tok Token
			tok, err = lex.Next()
			if err == nil && tok.Kind == TokenEOF {
				break
			}
		}
		require.Error(t, err, input)
		var perr *rdf.ParseError
		require.ErrorAs(t, err, &perr, input)
		assert.Equal(t, rdf.KindSyntax, perr.Kind(), input)
		assert.Equal(t, pos, perr.Position, input)
	}
}
