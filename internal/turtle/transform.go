package turtle

import (
	"errors"
	"fmt"

	"github.com/aleksaelezovic/rdfparse/internal/syntax"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// State is the transformer's position in the statement cycle.
type State int

const (
	AwaitStatement State = iota
	InDirective
	InTriples
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitStatement:
		return "AwaitStatement"
	case InDirective:
		return "InDirective"
	case InTriples:
		return "InTriples"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transformer walks a Document and emits triples, applying directives to its
// Environment in document order. A Transformer is used for one document.
type Transformer struct {
	env     *rdf.Environment
	state   State
	scopes  []rdf.Term
	triples []*rdf.Triple
}

// NewTransformer returns a transformer resolving terms through env.
func NewTransformer(env *rdf.Environment) *Transformer {
	return &Transformer{env: env}
}

// State returns the current state.
func (t *Transformer) State() State {
	return t.state
}

// Depth returns how many subjects are open: the statement subject plus one
// per enclosing property list or collection node.
func (t *Transformer) Depth() int {
	return len(t.scopes)
}

// Transform emits the document's triples in order. Triples defining a
// nested blank node or list node precede the triple that references it.
func (t *Transformer) Transform(doc *Document) ([]*rdf.Triple, error) {
	if t.state != AwaitStatement {
		return nil, fmt.Errorf("transformer is in state %s", t.state)
	}
	for _, stmt := range doc.Statements {
		if err := t.statement(stmt); err != nil {
			return nil, err
		}
	}
	t.state = Done
	return t.triples, nil
}

// fail moves to Failed and attaches pos to err unless it already has one.
func (t *Transformer) fail(pos rdf.Position, err error) error {
	t.state = Failed
	var perr *rdf.ParseError
	if !errors.As(err, &perr) {
		err = rdf.NewParseError(formatName, pos, err)
	}
	return err
}

func (t *Transformer) statement(stmt Statement) error {
	switch s := stmt.(type) {
	case *PrefixDirective:
		t.state = InDirective
		iri, err := decodeIRI(s.IRI.Raw)
		if err != nil {
			return t.fail(s.IRI.At, err)
		}
		if err := t.env.BindPrefix(s.Prefix, iri); err != nil {
			return t.fail(s.IRI.At, err)
		}
	case *BaseDirective:
		t.state = InDirective
		iri, err := decodeIRI(s.IRI.Raw)
		if err != nil {
			return t.fail(s.IRI.At, err)
		}
		if err := t.env.SetBase(iri); err != nil {
			return t.fail(s.IRI.At, err)
		}
	case *Triples:
		t.state = InTriples
		subject, err := t.term(s.Subject)
		if err != nil {
			return err
		}
		t.push(subject)
		if err := t.predicateObjects(subject, s.Predicates); err != nil {
			return err
		}
		t.pop()
	default:
		return t.fail(stmt.Pos(), fmt.Errorf("%w: unknown statement %T", rdf.ErrSyntax, stmt))
	}
	t.state = AwaitStatement
	return nil
}

func (t *Transformer) push(subject rdf.Term) {
	t.scopes = append(t.scopes, subject)
}

func (t *Transformer) pop() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

func (t *Transformer) emit(pos rdf.Position, s, p, o rdf.Term) error {
	triple, err := t.env.CreateTriple(s, p, o)
	if err != nil {
		return t.fail(pos, err)
	}
	t.triples = append(t.triples, triple)
	return nil
}

// predicateObjects fans out one triple per (verb, object) pair in source
// order.
func (t *Transformer) predicateObjects(subject rdf.Term, list []*PredicateObjects) error {
	for _, po := range list {
		verb, err := t.term(po.Verb)
		if err != nil {
			return err
		}
		for _, obj := range po.Objects {
			object, err := t.term(obj)
			if err != nil {
				return err
			}
			if err := t.emit(obj.Pos(), subject, verb, object); err != nil {
				return err
			}
		}
	}
	return nil
}

// term resolves a node to an RDF term, emitting the triples of any nested
// structure first.
func (t *Transformer) term(n Node) (rdf.Term, error) {
	switch n := n.(type) {
	case *IRIRef:
		iri, err := decodeIRI(n.Raw)
		if err != nil {
			return nil, t.fail(n.At, err)
		}
		node, err := t.env.ResolveIRI(iri)
		if err != nil {
			return nil, t.fail(n.At, err)
		}
		return node, nil

	case *PrefixedName:
		node, err := t.env.ResolvePrefixedName(n.Prefix, syntax.UnescapeLocal(n.Local))
		if err != nil {
			return nil, t.fail(n.At, err)
		}
		return node, nil

	case *TypeKeyword:
		return rdf.RDFType, nil

	case *BlankNodeLabel:
		return t.env.CreateBlankNode(n.Label), nil

	case *Anon:
		return t.env.CreateBlankNode(""), nil

	case *BlankNodePropertyList:
		subject := t.env.CreateBlankNode("")
		t.push(subject)
		if err := t.predicateObjects(subject, n.Predicates); err != nil {
			return nil, err
		}
		t.pop()
		return subject, nil

	case *Collection:
		return t.collection(n)

	case *StringLiteral:
		return t.stringLiteral(n)

	case *NumericLiteral:
		switch n.Kind {
		case Integer:
			return rdf.NewTypedLiteral(n.Lexical, rdf.XSDInteger), nil
		case Decimal:
			return rdf.NewTypedLiteral(n.Lexical, rdf.XSDDecimal), nil
		default:
			return rdf.NewTypedLiteral(n.Lexical, rdf.XSDDouble), nil
		}

	case *BooleanLiteral:
		return rdf.NewTypedLiteral(n.Lexical, rdf.XSDBoolean), nil
	}
	return nil, t.fail(n.Pos(), fmt.Errorf("%w: unknown node %T", rdf.ErrSyntax, n))
}

// collection links the items right to left with rdf:first/rdf:rest and
// returns the head node, or rdf:nil for "()".
func (t *Transformer) collection(c *Collection) (rdf.Term, error) {
	if len(c.Items) == 0 {
		return rdf.RDFNil, nil
	}
	var next rdf.Term = rdf.RDFNil
	for i := len(c.Items) - 1; i >= 0; i-- {
		node := t.env.CreateBlankNode("")
		t.push(node)
		value, err := t.term(c.Items[i])
		if err != nil {
			return nil, err
		}
		if err := t.emit(c.Items[i].Pos(), node, rdf.RDFFirst, value); err != nil {
			return nil, err
		}
		if err := t.emit(c.At, node, rdf.RDFRest, next); err != nil {
			return nil, err
		}
		t.pop()
		next = node
	}
	return next, nil
}

func (t *Transformer) stringLiteral(n *StringLiteral) (rdf.Term, error) {
	value, err := syntax.Unescape(n.Raw)
	if err != nil {
		return nil, t.fail(n.At, fmt.Errorf("%w: %v", rdf.ErrInvalidLiteral, err))
	}
	var datatype *rdf.NamedNode
	if n.Datatype != nil {
		dt, err := t.term(n.Datatype)
		if err != nil {
			return nil, err
		}
		named, ok := dt.(*rdf.NamedNode)
		if !ok {
			return nil, t.fail(n.Datatype.Pos(), fmt.Errorf("%w: datatype must be an IRI", rdf.ErrInvalidLiteral))
		}
		datatype = named
	}
	lit, err := t.env.CreateLiteral(value, n.Language, datatype)
	if err != nil {
		return nil, t.fail(n.At, err)
	}
	return lit, nil
}

// decodeIRI decodes escapes inside an IRI reference. A malformed escape makes
// the IRI illegal.
func decodeIRI(raw string) (string, error) {
	iri, err := syntax.UnescapeIRI(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", rdf.ErrIllegalIRI, err)
	}
	return iri, nil
}

// ParseTriples parses input and transforms it with env in one call.
func ParseTriples(input string, env *rdf.Environment, maxDepth int) ([]*rdf.Triple, error) {
	doc, err := NewParser(input, maxDepth).Parse()
	if err != nil {
		return nil, err
	}
	return NewTransformer(env).Transform(doc)
}
