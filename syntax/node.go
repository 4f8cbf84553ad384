// Copyright © 2024 The ELPS authors

// Package syntax defines the syntax tree consumed by the lisp package.  A
// tree is produced by a parser (see package parser) and has no knowledge of
// runtime values.
package syntax

import (
	"bytes"
	"fmt"
)

// Kind classifies a Node.
type Kind string

// Node kinds.  KindChar and KindComment nodes are structural and carry no
// value; they are skipped during conversion.
const (
	KindProgram Kind = "program"
	KindNumber  Kind = "number"
	KindSymbol  Kind = "symbol"
	KindSExpr   Kind = "sexpr"
	KindQExpr   Kind = "qexpr"
	KindChar    Kind = "char"
	KindComment Kind = "comment"
)

// Pos is a location in source text.  Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	if p.Line <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is a syntax tree node.  Number and symbol nodes carry their literal
// source text in Text.  Delimiter nodes (KindChar) carry the delimiter.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
	Pos      Pos
}

// Leaf returns a childless node.
func Leaf(kind Kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// Branch returns a node with the given children.
func Branch(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsStructural reports whether n exists only to delimit other nodes.
func (n *Node) IsStructural() bool {
	return n.Kind == KindChar || n.Kind == KindComment
}

// String renders the tree for debugging, one node per line.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.dump(&buf, "")
	return buf.String()
}

func (n *Node) dump(buf *bytes.Buffer, indent string) {
	buf.WriteString(indent)
	buf.WriteString(string(n.Kind))
	if n.Text != "" {
		fmt.Fprintf(buf, " %q", n.Text)
	}
	buf.WriteString("\n")
	for _, c := range n.Children {
		c.dump(buf, indent+"  ")
	}
}
