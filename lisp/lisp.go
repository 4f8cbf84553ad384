// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"strconv"
)

// LType is the type of a Value.
type LType uint

// Possible LType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LNumber values are *Number.
	LNumber
	// LError values are *Error.
	LError
	// LSymbol values are *Symbol.
	LSymbol
	// LSExpr values are *SExpr, expressions pending evaluation.
	LSExpr
	// LQExpr values are *QExpr, quoted lists which are never evaluated
	// implicitly.
	LQExpr
	// LBuiltin values are *Builtin, functions implemented in Go.
	LBuiltin
	// LFun values are *Closure, functions defined in lisp.
	LFun
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNumber:  "Number",
	LError:   "Error",
	LSymbol:  "Symbol",
	LSExpr:   "S-expression",
	LQExpr:   "Q-expression",
	LBuiltin: "Builtin function",
	LFun:     "Function",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// Value is a lisp value.  The set of implementations is closed; each LType
// has exactly one concrete type.
//
// Composite values (SExpr, QExpr, Closure) exclusively own their children.
// Code that needs to store a value reachable from another owner must Copy it
// first.
type Value interface {
	// Type returns the variant of the value.
	Type() LType
	// Copy returns a deep copy which shares no mutable state with the
	// receiver.
	Copy() Value
	// String renders the value in source form.
	String() string

	value()
}

// Number is an integer.
type Number struct {
	Int int
}

// Symbol is an identifier that is resolved through an Env during evaluation.
type Symbol struct {
	Name string
}

// SExpr is an expression.  Evaluating an SExpr applies its first element to
// the rest.
type SExpr struct {
	List
}

// QExpr is a quoted list.  Evaluation stops at a QExpr.
type QExpr struct {
	List
}

// BuiltinFunc implements a builtin function.  The function owns args and
// may consume it.
type BuiltinFunc func(env *Env, args *QExpr) Value

// Builtin is a function implemented in Go.  Formals documents the expected
// arguments; it is not used to check calls.
type Builtin struct {
	Name    string
	Formals *QExpr
	Doc     string
	Fn      BuiltinFunc
}

// Closure is a function defined in lisp.  Env is the closure's private frame
// whose parent is the scope the closure was defined in.  Applying a closure
// never modifies Env; each call binds its arguments in a child of Env.
type Closure struct {
	// Name is the symbol the closure was last referenced through, if any.
	// It does not affect evaluation.
	Name    string
	Formals *QExpr
	Body    *QExpr
	Env     *Env
}

func (*Number) value()  {}
func (*Error) value()   {}
func (*Symbol) value()  {}
func (*SExpr) value()   {}
func (*QExpr) value()   {}
func (*Builtin) value() {}
func (*Closure) value() {}

func (*Number) Type() LType  { return LNumber }
func (*Error) Type() LType   { return LError }
func (*Symbol) Type() LType  { return LSymbol }
func (*SExpr) Type() LType   { return LSExpr }
func (*QExpr) Type() LType   { return LQExpr }
func (*Builtin) Type() LType { return LBuiltin }
func (*Closure) Type() LType { return LFun }

// Int returns a Value representing the number x.
func Int(x int) *Number {
	return &Number{Int: x}
}

// Sym returns a Value representing the symbol s.
func Sym(s string) *Symbol {
	return &Symbol{Name: s}
}

// SExprOf returns an S-expression.  Provided cells are used as backing
// storage for the returned expression and are not copied.
func SExprOf(cells ...Value) *SExpr {
	return &SExpr{List{Cells: cells}}
}

// QExprOf returns a Q-expression.  Provided cells are used as backing storage
// for the returned list and are not copied.
func QExprOf(cells ...Value) *QExpr {
	return &QExpr{List{Cells: cells}}
}

// Nil returns an empty S-expression, the value returned by functions that
// have nothing to return.
func Nil() *SExpr {
	return &SExpr{}
}

// Formals returns a Q-expression of symbols suitable as the formal argument
// list of a Closure.
func Formals(argSymbols ...string) *QExpr {
	q := &QExpr{List{Cells: make([]Value, len(argSymbols))}}
	for i, name := range argSymbols {
		q.Cells[i] = Sym(name)
	}
	return q
}

// Lambda returns a closure defined in env.  The closure's private frame is a
// child of env so the closure resolves free symbols through env's chain.
func Lambda(env *Env, formals, body *QExpr) *Closure {
	return &Closure{
		Formals: formals,
		Body:    body,
		Env:     NewEnv(env),
	}
}

// SExpr converts q into an S-expression, moving its cells.  The receiver is
// left empty.
func (q *QExpr) SExpr() *SExpr {
	s := &SExpr{List{Cells: q.Cells}}
	q.Cells = nil
	return s
}

// QExpr converts s into a Q-expression, moving its cells.  The receiver is
// left empty.
func (s *SExpr) QExpr() *QExpr {
	q := &QExpr{List{Cells: s.Cells}}
	s.Cells = nil
	return q
}

func (v *Number) Copy() Value {
	return &Number{Int: v.Int}
}

func (v *Symbol) Copy() Value {
	return &Symbol{Name: v.Name}
}

func (v *SExpr) Copy() Value {
	return &SExpr{v.List.copy()}
}

func (v *QExpr) Copy() Value {
	return &QExpr{v.List.copy()}
}

// Copy returns a new reference to the same Go function.  Builtins hold no
// lisp state so nothing needs to be duplicated.
func (v *Builtin) Copy() Value {
	cp := *v
	return &cp
}

// Copy duplicates the closure's formals, body and private frame.  The frame's
// parent is shared.
func (v *Closure) Copy() Value {
	return &Closure{
		Name:    v.Name,
		Formals: v.Formals.Copy().(*QExpr),
		Body:    v.Body.Copy().(*QExpr),
		Env:     v.Env.Copy(),
	}
}

func (v *Number) String() string {
	return strconv.Itoa(v.Int)
}

func (v *Symbol) String() string {
	return v.Name
}

func (v *SExpr) String() string {
	return exprString(v.Cells, "(", ")")
}

func (v *QExpr) String() string {
	return exprString(v.Cells, "{", "}")
}

func (v *Builtin) String() string {
	return "<builtin function>"
}

func (v *Closure) String() string {
	var buf bytes.Buffer
	buf.WriteString(`(\ `)
	buf.WriteString(v.Formals.String())
	buf.WriteString(" ")
	buf.WriteString(v.Body.String())
	buf.WriteString(")")
	return buf.String()
}

func exprString(cells []Value, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}

// Equal returns true if a and b are structurally equal.  Functions are equal
// when they have the same builtin name, or the same formals and body.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Number:
		return a.Int == b.(*Number).Int
	case *Symbol:
		return a.Name == b.(*Symbol).Name
	case *Error:
		return a.Message == b.(*Error).Message
	case *SExpr:
		return equalCells(a.Cells, b.(*SExpr).Cells)
	case *QExpr:
		return equalCells(a.Cells, b.(*QExpr).Cells)
	case *Builtin:
		return a.Name == b.(*Builtin).Name
	case *Closure:
		other := b.(*Closure)
		return Equal(a.Formals, other.Formals) && Equal(a.Body, other.Body)
	}
	return false
}

func equalCells(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsNil returns true if v is an empty S-expression.
func IsNil(v Value) bool {
	s, ok := v.(*SExpr)
	return ok && s.Len() == 0
}
