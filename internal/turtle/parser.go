// Package turtle implements the Turtle grammar: a lexer, a recursive-descent
// parser building a closed parse tree, and a transformer that turns the tree
// into triples.
package turtle

import (
	"fmt"
	"strings"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

const formatName = "turtle"

// DefaultMaxDepth bounds the nesting of property lists and collections.
const DefaultMaxDepth = 512

// Parser is a recursive-descent parser with one token of lookahead.
type Parser struct {
	lex      *Lexer
	tok      Token
	depth    int
	maxDepth int
}

// NewParser creates a parser over input. maxDepth <= 0 selects
// DefaultMaxDepth.
func NewParser(input string, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{lex: NewLexer(input), maxDepth: maxDepth}
}

// Parse parses a complete document.
func Parse(input string) (*Document, error) {
	return NewParser(input, 0).Parse()
}

// Parse parses the whole input into a Document.
func (p *Parser) Parse() (*Document, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	doc := &Document{}
	for p.tok.Kind != TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		doc.Statements = append(doc.Statements, stmt)
	}
	return doc, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errorf(pos rdf.Position, format string, args ...any) error {
	return rdf.NewParseError(formatName, pos, fmt.Errorf("%w: "+format, append([]any{rdf.ErrSyntax}, args...)...))
}

func (p *Parser) unexpected(want string) error {
	return p.errorf(p.tok.Pos, "expected %s, found %s", want, p.tok)
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.unexpected(kind.String())
	}
	return tok, p.advance()
}

func (p *Parser) enter(pos rdf.Position) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorf(pos, "nesting deeper than %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// isKeyword matches a bare word exactly.
func (p *Parser) isKeyword(word string) bool {
	return p.tok.Kind == TokenKeyword && p.tok.Text == word
}

// isSPARQLKeyword matches PREFIX or BASE in any case. It is only consulted at
// statement start.
func (p *Parser) isSPARQLKeyword(word string) bool {
	return p.tok.Kind == TokenKeyword && strings.EqualFold(p.tok.Text, word)
}

func (p *Parser) parseStatement() (Statement, error) {
	start := p.tok
	switch {
	case start.Kind == TokenLangTag && start.Text == "prefix":
		return p.parsePrefix(false)
	case start.Kind == TokenLangTag && start.Text == "base":
		return p.parseBase(false)
	case p.isSPARQLKeyword("PREFIX"):
		return p.parsePrefix(true)
	case p.isSPARQLKeyword("BASE"):
		return p.parseBase(true)
	}
	return p.parseTriples()
}

func (p *Parser) parsePrefix(sparql bool) (Statement, error) {
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenPNameNS)
	if err != nil {
		return nil, err
	}
	iri, err := p.expect(TokenIRIRef)
	if err != nil {
		return nil, err
	}
	if !sparql {
		if _, err := p.expect(TokenDot); err != nil {
			return nil, err
		}
	}
	return &PrefixDirective{
		At:     at,
		Prefix: name.Text,
		IRI:    &IRIRef{At: iri.Pos, Raw: iri.Text},
		SPARQL: sparql,
	}, nil
}

func (p *Parser) parseBase(sparql bool) (Statement, error) {
	at := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	iri, err := p.expect(TokenIRIRef)
	if err != nil {
		return nil, err
	}
	if !sparql {
		if _, err := p.expect(TokenDot); err != nil {
			return nil, err
		}
	}
	return &BaseDirective{At: at, IRI: &IRIRef{At: iri.Pos, Raw: iri.Text}, SPARQL: sparql}, nil
}

func (p *Parser) parseTriples() (Statement, error) {
	stmt := &Triples{At: p.tok.Pos}
	var err error

	if p.tok.Kind == TokenLBracket {
		if stmt.Subject, err = p.parsePropertyList(); err != nil {
			return nil, err
		}
		if p.tok.Kind != TokenDot {
			if stmt.Predicates, err = p.parsePredicateObjectList(); err != nil {
				return nil, err
			}
		}
	} else {
		if stmt.Subject, err = p.parseSubject(); err != nil {
			return nil, err
		}
		if stmt.Predicates, err = p.parsePredicateObjectList(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenDot); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSubject() (Node, error) {
	tok := p.tok
	switch tok.Kind {
	case TokenIRIRef, TokenPNameNS, TokenPNameLN:
		return p.parseIRI()
	case TokenBlankNodeLabel:
		return &BlankNodeLabel{At: tok.Pos, Label: tok.Text}, p.advance()
	case TokenAnon:
		return &Anon{At: tok.Pos}, p.advance()
	case TokenLParen:
		return p.parseCollection()
	}
	return nil, p.unexpected("subject")
}

func (p *Parser) parseIRI() (Node, error) {
	tok := p.tok
	switch tok.Kind {
	case TokenIRIRef:
		return &IRIRef{At: tok.Pos, Raw: tok.Text}, p.advance()
	case TokenPNameNS, TokenPNameLN:
		return &PrefixedName{At: tok.Pos, Prefix: tok.Text, Local: tok.Local}, p.advance()
	}
	return nil, p.unexpected("IRI")
}

func (p *Parser) isVerbStart() bool {
	switch p.tok.Kind {
	case TokenIRIRef, TokenPNameNS, TokenPNameLN:
		return true
	}
	return p.isKeyword("a")
}

func (p *Parser) parseVerb() (Node, error) {
	if p.isKeyword("a") {
		tok := p.tok
		return &TypeKeyword{At: tok.Pos}, p.advance()
	}
	if !p.isVerbStart() {
		return nil, p.unexpected("predicate")
	}
	return p.parseIRI()
}

// parsePredicateObjectList parses verb objectList (';' (verb objectList)?)*.
func (p *Parser) parsePredicateObjectList() ([]*PredicateObjects, error) {
	var list []*PredicateObjects
	for {
		verb, err := p.parseVerb()
		if err != nil {
			return nil, err
		}
		objects, err := p.parseObjectList()
		if err != nil {
			return nil, err
		}
		list = append(list, &PredicateObjects{Verb: verb, Objects: objects})

		if p.tok.Kind != TokenSemicolon {
			return list, nil
		}
		for p.tok.Kind == TokenSemicolon {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if !p.isVerbStart() {
			return list, nil
		}
	}
}

func (p *Parser) parseObjectList() ([]Node, error) {
	var objects []Node
	for {
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
		if p.tok.Kind != TokenComma {
			return objects, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseObject() (Node, error) {
	tok := p.tok
	switch tok.Kind {
	case TokenIRIRef, TokenPNameNS, TokenPNameLN:
		return p.parseIRI()
	case TokenBlankNodeLabel:
		return &BlankNodeLabel{At: tok.Pos, Label: tok.Text}, p.advance()
	case TokenAnon:
		return &Anon{At: tok.Pos}, p.advance()
	case TokenLBracket:
		return p.parsePropertyList()
	case TokenLParen:
		return p.parseCollection()
	case TokenString:
		return p.parseStringLiteral()
	case TokenInteger:
		return &NumericLiteral{At: tok.Pos, Lexical: tok.Text, Kind: Integer}, p.advance()
	case TokenDecimal:
		return &NumericLiteral{At: tok.Pos, Lexical: tok.Text, Kind: Decimal}, p.advance()
	case TokenDouble:
		return &NumericLiteral{At: tok.Pos, Lexical: tok.Text, Kind: Double}, p.advance()
	case TokenKeyword:
		if tok.Text == "true" || tok.Text == "false" {
			return &BooleanLiteral{At: tok.Pos, Lexical: tok.Text}, p.advance()
		}
	}
	return nil, p.unexpected("object")
}

func (p *Parser) parseStringLiteral() (Node, error) {
	tok := p.tok
	lit := &StringLiteral{At: tok.Pos, Raw: tok.Text, Long: tok.Long}
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch p.tok.Kind {
	case TokenLangTag:
		lit.Language = p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == TokenDatatypeMark {
			return nil, rdf.NewParseError(formatName, p.tok.Pos,
				fmt.Errorf("%w: literal has both a language tag and a datatype", rdf.ErrInvalidLiteral))
		}
		return lit, nil
	case TokenDatatypeMark:
		if err := p.advance(); err != nil {
			return nil, err
		}
		dt, err := p.parseIRI()
		if err != nil {
			return nil, err
		}
		lit.Datatype = dt
	}
	return lit, nil
}

func (p *Parser) parsePropertyList() (Node, error) {
	open, err := p.expect(TokenLBracket)
	if err != nil {
		return nil, err
	}
	if err := p.enter(open.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	preds, err := p.parsePredicateObjectList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return &BlankNodePropertyList{At: open.Pos, Predicates: preds}, nil
}

func (p *Parser) parseCollection() (Node, error) {
	open, err := p.expect(TokenLParen)
	if err != nil {
		return nil, err
	}
	if err := p.enter(open.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	coll := &Collection{At: open.Pos}
	for p.tok.Kind != TokenRParen {
		item, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		coll.Items = append(coll.Items, item)
	}
	return coll, p.advance()
}
