// Copyright © 2018 The ELPS authors

package repl

import (
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolCompleter(t *testing.T) {
	env, err := lisp.NewGlobalEnv(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	env.LoadString("test", "(def {double} (\\ {x} {* 2 x}))")

	c := &symbolCompleter{env: env}

	// "he" matches only head.
	candidates, offset := c.Do([]rune("(he"), 3)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune("ad")}, candidates)

	// prelude and user definitions are offered along with builtins.
	candidates, offset = c.Do([]rune("(list (d"), 8)
	assert.Equal(t, 1, offset)
	assert.Equal(t, [][]rune{[]rune("ef"), []rune("ouble")}, candidates)

	// completion inside a q-expression
	candidates, _ = c.Do([]rune("{un"), 3)
	assert.Equal(t, [][]rune{[]rune("curry"), []rune("pack")}, candidates)

	// completions come from the global frame of a nested env
	c = &symbolCompleter{env: env.Child()}
	candidates, _ = c.Do([]rune("(he"), 3)
	assert.Len(t, candidates, 1)

	// "zzz-nonexistent" should have no completions.
	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	assert.Len(t, candidates, 0)

	// nothing typed
	candidates, offset = c.Do([]rune("(head "), 6)
	assert.Nil(t, candidates)
	assert.Equal(t, 0, offset)
}
