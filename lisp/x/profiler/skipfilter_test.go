package profiler

import (
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/stretchr/testify/assert"
)

func TestSkipFilters(t *testing.T) {
	traced := &lisp.Builtin{Name: "traced", Doc: "Does a thing. @trace"}
	plain := &lisp.Builtin{Name: "plain", Doc: "Does a thing."}
	closure := lisp.Lambda(nil, lisp.Formals(), lisp.QExprOf(lisp.Int(1)))

	tests := []struct {
		name   string
		filter SkipFilter
		fun    lisp.Value
		skip   bool
	}{
		{"default builtin", defaultSkipFilter, plain, false},
		{"default closure", defaultSkipFilter, closure, false},
		{"default number", defaultSkipFilter, lisp.Int(3), true},
		{"default qexpr", defaultSkipFilter, lisp.QExprOf(), true},
		{"builtin filter builtin", BuiltinSkipFilter, plain, true},
		{"builtin filter closure", BuiltinSkipFilter, closure, false},
		{"doc filter traced", docSkipFilter, traced, false},
		{"doc filter plain", docSkipFilter, plain, true},
		{"doc filter closure", docSkipFilter, closure, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.skip, tc.filter(tc.fun))
		})
	}
}

func TestSkipTrace(t *testing.T) {
	plain := &lisp.Builtin{Name: "plain"}
	p := &profiler{}
	assert.True(t, p.skipTrace(plain), "disabled profiler")
	assert.NoError(t, p.Enable())
	assert.False(t, p.skipTrace(plain))
	assert.True(t, p.skipTrace(lisp.Int(1)))
	p.applyConfigs(WithDocFilter())
	assert.True(t, p.skipTrace(plain))
}
