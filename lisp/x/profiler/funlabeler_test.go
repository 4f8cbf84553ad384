package profiler

import (
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/stretchr/testify/assert"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "empty",
			label:    "",
			expected: "",
		},
		{
			name:     "normal",
			label:    "@trace{ Add-It }",
			expected: "Add-It",
		},
		{
			name:     "operator",
			label:    "@trace{ + }",
			expected: "+",
		},
		{
			name:     "space before brace",
			label:    "@trace { print-env! }",
			expected: "print-env!",
		},
		{
			name:     "spaces",
			label:    "@trace{Add  It}",
			expected: "Add_It",
		},
		{
			name:     "embedded",
			label:    "Adds numbers.  @trace{ Add It } More text.",
			expected: "Add_It",
		},
		{
			name:     "no label",
			label:    "@trace",
			expected: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := cleanLabel(tc.label)
			assert.Equal(t, tc.expected, actual, "cleanLabel(%s)", tc.label)
		})
	}
}

func TestPrettyFunName(t *testing.T) {
	b := &lisp.Builtin{Name: "add", Doc: "@trace{ Add It }"}
	anon := lisp.Lambda(nil, lisp.Formals("x"), lisp.QExprOf(lisp.Sym("x")))

	p := &profiler{}
	pretty, orig := p.prettyFunName(b)
	assert.Equal(t, "add", pretty)
	assert.Equal(t, "add", orig)
	pretty, orig = p.prettyFunName(anon)
	assert.Equal(t, "lambda", pretty)
	assert.Equal(t, "lambda", orig)
	pretty, orig = p.prettyFunName(lisp.Int(1))
	assert.Equal(t, "", pretty)
	assert.Equal(t, "", orig)

	p.applyConfigs(WithDocLabeler())
	pretty, orig = p.prettyFunName(b)
	assert.Equal(t, "Add_It", pretty)
	assert.Equal(t, "add", orig)
	pretty, _ = p.prettyFunName(anon)
	assert.Equal(t, "lambda", pretty)
}
