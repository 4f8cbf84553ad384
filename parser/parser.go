// Copyright © 2018 The ELPS authors

// Package parser provides a lisp parser producing syntax trees.
//
//	program := <expr>* $
//	expr    := <comment> | <atom> | <sexpr> | <qexpr>
//	sexpr   := '(' <expr>* ')'
//	qexpr   := '{' <expr>* '}'
//	atom    := /[a-zA-Z0-9_+\-*\/\\=<>!&]+/
//	comment := /;[^\r\n]*/
//
// An atom matching /-?[0-9]+/ is a number, any other atom is a symbol.
package parser

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/syntax"
	parsec "github.com/prataprc/goparsec"
)

// Error is a syntax error.  Line and Col are 1-based.
type Error struct {
	Name string
	Line int
	Col  int
	Msg  string
	// Incomplete is true when the text ends inside an open expression, so
	// more input could complete it.
	Incomplete bool
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Col, e.Msg)
}

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]lisp.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	root, err := Parse(name, b)
	if err != nil {
		return nil, err
	}
	return lisp.ConvertProgram(root), nil
}

var numberRegexp = regexp.MustCompile(`^-?[0-9]+$`)

const (
	termOpenP   = "OPENP"
	termCloseP  = "CLOSEP"
	termOpenB   = "OPENB"
	termCloseB  = "CLOSEB"
	termAtom    = "ATOM"
	termComment = "COMMENT"
)

// Parse parses text and returns a program node containing every top-level
// expression and comment.  Any text which cannot be parsed results in an
// *Error.
func Parse(name string, text []byte) (*syntax.Node, error) {
	lines := newLineIndex(text)
	s := parsec.NewScanner(text)
	parser := newParsecParser(lines)
	program := syntax.Branch(syntax.KindProgram)
	program.Pos = lines.pos(0)
	root, s := parser(s)
	for root != nil {
		program.Children = append(program.Children, lines.node(root))
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, syntaxError(name, text, lines, s)
	}
	return program, nil
}

func syntaxError(name string, text []byte, lines *lineIndex, s parsec.Scanner) *Error {
	cur := s.GetCursor()
	pos := lines.pos(cur)
	lerr := &Error{Name: name, Line: pos.Line, Col: pos.Col}
	b, _ := s.Match(`^.{1,16}`)
	if len(b) > 15 {
		b = append(b[:15:15], []byte("...")...)
	}
	switch {
	case len(b) > 0 && (b[0] == '(' || b[0] == '{'):
		lerr.Msg = fmt.Sprintf("unmatched %q starting: %s", b[0], b)
		lerr.Incomplete = unclosed(text[cur:])
	case len(b) > 0 && (b[0] == ')' || b[0] == '}'):
		lerr.Msg = fmt.Sprintf("unexpected %q", b[0])
	default:
		lerr.Msg = fmt.Sprintf("unexpected source text possibly starting: %s", b)
	}
	return lerr
}

// unclosed reports whether text opens more expressions than it closes.
// Comments are ignored.
func unclosed(text []byte) bool {
	depth := 0
	comment := false
	for _, c := range text {
		switch {
		case comment:
			comment = c != '\n'
		case c == ';':
			comment = true
		case c == '(' || c == '{':
			depth++
		case c == ')' || c == '}':
			depth--
		}
	}
	return depth > 0
}

// IsIncomplete reports whether err is an *Error for text that ends inside an
// open expression.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}

func newParsecParser(lines *lineIndex) parsec.Parser {
	openP := parsec.Atom("(", termOpenP)
	closeP := parsec.Atom(")", termCloseP)
	openB := parsec.Atom("{", termOpenB)
	closeB := parsec.Atom("}", termCloseB)
	comment := parsec.Token(`;[^\r\n]*`, termComment)
	atom := parsec.Token(`[a-zA-Z0-9_+\-*/\\=<>!&]+`, termAtom)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(lines.nodify(syntax.KindSExpr), openP, exprList, closeP)
	qexpr := parsec.And(lines.nodify(syntax.KindQExpr), openB, exprList, closeB)
	expr = parsec.OrdChoice(choiceNode,
		comment,
		atom,
		sexpr,
		qexpr,
	)
	return expr
}

// choiceNode unwraps the single alternative matched by an OrdChoice.
func choiceNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return nodes[0]
}

// lineIndex maps byte offsets in the source to line and column numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(text []byte) *lineIndex {
	starts := []int{0}
	for i, c := range text {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (idx *lineIndex) pos(offset int) syntax.Pos {
	i := sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return syntax.Pos{
		Offset: offset,
		Line:   i + 1,
		Col:    offset - idx.starts[i] + 1,
	}
}

func (idx *lineIndex) nodify(kind syntax.Kind) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		n := syntax.Branch(kind)
		for _, c := range flatten(nodes) {
			n.Children = append(n.Children, idx.node(c))
		}
		if len(n.Children) > 0 {
			n.Pos = n.Children[0].Pos
		}
		return n
	}
}

// node converts a parsec node into a syntax node.  Composite nodes were
// converted by nodify callbacks, leaving only terminals.
func (idx *lineIndex) node(pn parsec.ParsecNode) *syntax.Node {
	switch pn := pn.(type) {
	case *syntax.Node:
		return pn
	case *parsec.Terminal:
		var n *syntax.Node
		switch pn.Name {
		case termComment:
			n = syntax.Leaf(syntax.KindComment, pn.Value)
		case termAtom:
			if numberRegexp.MatchString(pn.Value) {
				n = syntax.Leaf(syntax.KindNumber, pn.Value)
			} else {
				n = syntax.Leaf(syntax.KindSymbol, pn.Value)
			}
		default:
			n = syntax.Leaf(syntax.KindChar, pn.Value)
		}
		n.Pos = idx.pos(pn.Position)
		return n
	}
	panic(fmt.Sprintf("unexpected parse node: %T", pn))
}

func flatten(nodes []parsec.ParsecNode) []parsec.ParsecNode {
	var flat []parsec.ParsecNode
	for _, n := range nodes {
		switch n := n.(type) {
		case []parsec.ParsecNode:
			flat = append(flat, flatten(n)...)
		default:
			flat = append(flat, n)
		}
	}
	return flat
}
