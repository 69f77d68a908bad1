package turtle

import (
	"fmt"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// TokenKind identifies a Turtle terminal.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIRIRef
	TokenPNameNS
	TokenPNameLN
	TokenBlankNodeLabel
	TokenLangTag
	TokenInteger
	TokenDecimal
	TokenDouble
	TokenString
	TokenKeyword // bare word: a, true, false, PREFIX, BASE
	TokenAnon
	TokenDot
	TokenSemicolon
	TokenComma
	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
	TokenDatatypeMark
)

var tokenNames = map[TokenKind]string{
	TokenEOF:            "end of input",
	TokenIRIRef:         "IRI reference",
	TokenPNameNS:        "prefix name",
	TokenPNameLN:        "prefixed name",
	TokenBlankNodeLabel: "blank node label",
	TokenLangTag:        "language tag",
	TokenInteger:        "integer",
	TokenDecimal:        "decimal",
	TokenDouble:         "double",
	TokenString:         "string",
	TokenKeyword:        "keyword",
	TokenAnon:           "'[]'",
	TokenDot:            "'.'",
	TokenSemicolon:      "';'",
	TokenComma:          "','",
	TokenLBracket:       "'['",
	TokenRBracket:       "']'",
	TokenLParen:         "'('",
	TokenRParen:         "')'",
	TokenDatatypeMark:   "'^^'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme. Text holds the undecoded payload: the IRI between the
// angle brackets, the string between its quotes, the prefix of a prefixed
// name, the label after "_:", the tag after '@', the numeric lexeme or the
// keyword spelling. Local holds the raw local part of a prefixed name.
type Token struct {
	Kind  TokenKind
	Text  string
	Local string
	Long  bool // triple-quoted string
	Pos   rdf.Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF, TokenAnon, TokenDot, TokenSemicolon, TokenComma,
		TokenLBracket, TokenRBracket, TokenLParen, TokenRParen, TokenDatatypeMark:
		return t.Kind.String()
	case TokenPNameLN:
		return fmt.Sprintf("%s %q", t.Kind, t.Text+":"+t.Local)
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
}
