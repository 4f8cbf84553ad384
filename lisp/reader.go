// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/luthersystems/lispy/syntax"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of Values that it
	// contains.  The returned Values are evaluated in order.
	Read(name string, r io.Reader) ([]Value, error)
}

// Convert converts a syntax tree into a Value.  A program node converts to
// its single expression; a program containing no expressions converts to ().
// Use ConvertProgram to obtain every expression of a program.
func Convert(node *syntax.Node) Value {
	switch node.Kind {
	case syntax.KindProgram:
		exprs := ConvertProgram(node)
		if len(exprs) == 0 {
			return Nil()
		}
		return exprs[0]
	case syntax.KindNumber:
		x, err := strconv.Atoi(node.Text)
		if err != nil {
			return Errorf(InvalidNumber, "invalid number")
		}
		return Int(x)
	case syntax.KindSymbol:
		return Sym(node.Text)
	case syntax.KindSExpr:
		s := Nil()
		convertChildren(&s.List, node)
		return s
	case syntax.KindQExpr:
		q := QExprOf()
		convertChildren(&q.List, node)
		return q
	}
	return Errorf(WrongType, "cannot convert syntax node: %s", node.Kind)
}

// ConvertProgram converts each non-structural child of a program node.  Any
// other node is converted as a program containing only itself.
func ConvertProgram(node *syntax.Node) []Value {
	if node.Kind != syntax.KindProgram {
		return []Value{Convert(node)}
	}
	var exprs []Value
	for _, c := range node.Children {
		if c.IsStructural() {
			continue
		}
		exprs = append(exprs, Convert(c))
	}
	return exprs
}

func convertChildren(l *List, node *syntax.Node) {
	for _, c := range node.Children {
		if c.IsStructural() {
			continue
		}
		l.Add(Convert(c))
	}
}

// LoadString parses exprs and evaluates the contained expressions.  The value
// of the last expression is returned.  See Load.
func (env *Env) LoadString(name, exprs string) Value {
	return env.Load(name, strings.NewReader(exprs))
}

// LoadFile reads the lisp source file at path and evaluates the expressions
// it contains.  See Load.
func (env *Env) LoadFile(path string) Value {
	f, err := os.Open(path)
	if err != nil {
		return env.Errorf(IOError, "%v", err)
	}
	defer f.Close()
	return env.Load(path, f)
}

// Load reads Values from r and evaluates them in order, stopping at the
// first error.  The value returned by the last evaluated expression is
// returned.  If env.Runtime.Reader has not been set then an error will be
// returned by Load.
func (env *Env) Load(name string, r io.Reader) Value {
	if env.Runtime.Reader == nil {
		return env.Errorf(IOError, "no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return env.Errorf(IOError, "%v", err)
	}
	return env.load(exprs)
}

func (env *Env) load(exprs []Value) Value {
	var ret Value = Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type() == LError {
			return ret
		}
	}
	return ret
}
