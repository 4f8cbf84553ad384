// Copyright © 2024 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "Number", LNumber.String())
	assert.Equal(t, "Error", LError.String())
	assert.Equal(t, "Symbol", LSymbol.String())
	assert.Equal(t, "S-expression", LSExpr.String())
	assert.Equal(t, "Q-expression", LQExpr.String())
	assert.Equal(t, "Builtin function", LBuiltin.String())
	assert.Equal(t, "Function", LFun.String())
	assert.Equal(t, "INVALID", LTypeMax.String())
}

func TestRender(t *testing.T) {
	env := NewEnv(nil)
	tests := []struct {
		v    Value
		want string
	}{
		{Int(-3), "-3"},
		{Sym("head"), "head"},
		{Errorf(DivisionByZero, "Division by zero"), "Error: Division by zero"},
		{SExprOf(Sym("+"), Int(1), Int(2)), "(+ 1 2)"},
		{Nil(), "()"},
		{QExprOf(Int(1), QExprOf(), SExprOf(Sym("x"))), "{1 {} (x)}"},
		{&Builtin{Name: "head"}, "<builtin function>"},
		{Lambda(env, Formals("x", "y"), QExprOf(Sym("+"), Sym("x"), Sym("y"))), `(\ {x y} {+ x y})`},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.v.String())
	}
}

func TestListPop(t *testing.T) {
	q := QExprOf(Int(1), Int(2), Int(3))
	v := q.Pop(1)
	assert.Equal(t, "2", v.String())
	assert.Equal(t, "{1 3}", q.String())

	v = q.Pop(2)
	require.Equal(t, LError, v.Type())
	assert.Equal(t, IndexOutOfRange, v.(*Error).Condition)
	assert.Equal(t, "{1 3}", q.String())

	v = q.Pop(-1)
	assert.Equal(t, LError, v.Type())
	assert.Equal(t, 2, q.Len())
}

func TestListTake(t *testing.T) {
	s := SExprOf(Int(1), Errorf(WrongType, "boom"), Int(3))
	v := s.Take(1)
	require.Equal(t, LError, v.Type())
	assert.Equal(t, "boom", v.(*Error).Message)
	assert.Equal(t, 0, s.Len())

	v = Take(QExprOf(Int(7)), 0)
	assert.Equal(t, "7", v.String())
	v = Take(Int(7), 0)
	assert.Equal(t, LError, v.Type())
}

func TestListPrependJoin(t *testing.T) {
	q := QExprOf(Int(2))
	q.Prepend(Int(1))
	q.Add(Int(3))
	assert.Equal(t, "{1 2 3}", q.String())

	other := QExprOf(Int(4), Int(5))
	Join(q, other, QExprOf())
	assert.Equal(t, "{1 2 3 4 5}", q.String())
	assert.Equal(t, 0, other.Len())
}

func TestRetag(t *testing.T) {
	q := QExprOf(Sym("+"), Int(1))
	s := q.SExpr()
	assert.Equal(t, "(+ 1)", s.String())
	assert.Equal(t, 0, q.Len())
	q = s.QExpr()
	assert.Equal(t, "{+ 1}", q.String())
	assert.True(t, IsNil(s))
}

func TestCopy(t *testing.T) {
	inner := QExprOf(Int(1))
	q := QExprOf(inner, Sym("x"))
	cp := q.Copy().(*QExpr)
	assert.True(t, Equal(q, cp))
	cp.Cells[0].(*QExpr).Add(Int(2))
	assert.Equal(t, "{{1} x}", q.String())
	assert.Equal(t, "{{1 2} x}", cp.String())

	n := Int(1)
	ncp := n.Copy().(*Number)
	ncp.Int = 2
	assert.Equal(t, 1, n.Int)
}

func TestCopyClosure(t *testing.T) {
	global := NewEnv(nil)
	fun := Lambda(global, Formals("y"), QExprOf(Sym("y")))
	fun.Env.Define("x", Int(1))
	cp := fun.Copy().(*Closure)
	assert.True(t, Equal(fun, cp))
	assert.Same(t, global, cp.Env.Parent)
	cp.Env.Define("x", Int(2))
	assert.Equal(t, "1", fun.Env.Lookup("x").String())
	assert.Equal(t, "2", cp.Env.Lookup("x").String())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Int(1), Int(1)))
	assert.False(t, Equal(Int(1), Int(2)))
	assert.False(t, Equal(Int(1), Sym("1")))
	assert.False(t, Equal(QExprOf(Int(1)), SExprOf(Int(1))))
	assert.True(t, Equal(QExprOf(Int(1), Sym("a")), QExprOf(Int(1), Sym("a"))))
	assert.False(t, Equal(QExprOf(Int(1)), QExprOf(Int(1), Int(2))))
	assert.True(t, Equal(&Builtin{Name: "+"}, &Builtin{Name: "+"}))
	assert.False(t, Equal(&Builtin{Name: "+"}, &Builtin{Name: "-"}))
}
