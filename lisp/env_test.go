// Copyright © 2024 The ELPS authors

package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefineLookup(t *testing.T) {
	env := NewEnv(nil)
	v := Int(1)
	env.Define("x", v)
	v.Int = 100
	assert.Equal(t, "1", env.Lookup("x").String())

	got := env.Lookup("x").(*Number)
	got.Int = 5
	assert.Equal(t, "1", env.Lookup("x").String())

	env.Define("y", Int(2))
	env.Define("x", Int(3))
	assert.Equal(t, "3", env.Lookup("x").String())
	assert.Equal(t, []string{"x", "y"}, env.Names())
	assert.Equal(t, 2, env.Len())

	lerr := env.Lookup("z")
	require.Equal(t, LError, lerr.Type())
	assert.Equal(t, UnboundSymbol, lerr.(*Error).Condition)
	assert.Equal(t, "Error: Unbound symbol 'z'", lerr.String())
}

func TestEnvParentChain(t *testing.T) {
	global := NewEnv(nil)
	global.Define("x", Int(1))
	child := global.Child()
	grandchild := child.Child()
	assert.Same(t, global.Runtime, grandchild.Runtime)
	assert.Same(t, global, grandchild.Global())
	assert.True(t, global.IsRoot())
	assert.False(t, child.IsRoot())

	assert.Equal(t, "1", grandchild.Lookup("x").String())
	child.Define("x", Int(2))
	assert.Equal(t, "2", grandchild.Lookup("x").String())
	assert.Equal(t, "1", global.Lookup("x").String())

	grandchild.Define("y", Int(3))
	assert.Equal(t, LError, child.Lookup("y").Type())
}

func TestEnvCopy(t *testing.T) {
	global := NewEnv(nil)
	frame := global.Child()
	frame.Define("x", QExprOf(Int(1)))
	cp := frame.Copy()
	assert.Same(t, global, cp.Parent)
	cp.Define("x", Int(2))
	cp.Define("y", Int(3))
	assert.Equal(t, "{1}", frame.Lookup("x").String())
	assert.Equal(t, []string{"x"}, frame.Names())
	assert.Equal(t, []string{"x", "y"}, cp.Names())
}

func TestEnvTeardown(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Int(1))
	env.Teardown()
	assert.Equal(t, 0, env.Len())
	assert.Equal(t, LError, env.Lookup("x").Type())
}

func TestEnvWriteBindings(t *testing.T) {
	env := NewEnv(nil)
	env.Define("b", Int(1))
	env.Define("a", QExprOf(Sym("x")))
	var buf bytes.Buffer
	require.NoError(t, env.WriteBindings(&buf))
	assert.Equal(t, "b: 1\na: {x}\n", buf.String())
}

func TestNewGlobalEnv(t *testing.T) {
	var exited []int
	env, err := NewGlobalEnv(WithExit(func(code int) { exited = append(exited, code) }))
	require.NoError(t, err)
	for _, fn := range langBuiltins {
		v := env.Lookup(fn.name)
		assert.Equal(t, LBuiltin, v.Type(), fn.name)
	}
	// no reader was configured so the prelude cannot be loaded
	assert.Equal(t, LError, env.Lookup("fun").Type())

	r := env.Eval(SExprOf(Sym("exit")))
	assert.True(t, IsNil(r))
	assert.Equal(t, []int{0}, exited)
}

func TestNewGlobalEnvConfigError(t *testing.T) {
	_, err := NewGlobalEnv(func(env *Env) Value {
		return Errorf(WrongType, "bad config")
	})
	assert.EqualError(t, err, "bad config")
}
