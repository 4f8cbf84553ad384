// Copyright © 2024 The ELPS authors

package docs_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/luthersystems/lispy/docs"
	"github.com/luthersystems/lispy/lispytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleRegexp = regexp.MustCompile(`^    (\S.*?)(?:\s+; (.*))?$`)

// TestLangGuideExamples evaluates the indented examples of the guide in
// order and checks each result given in a trailing comment.
func TestLangGuideExamples(t *testing.T) {
	env, err := lispytest.NewEnv(t, &bytes.Buffer{})
	require.NoError(t, err)
	var n int
	for _, line := range strings.Split(docs.LangGuide, "\n") {
		m := exampleRegexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n++
		v := env.LoadString("guide", m[1])
		if m[2] == "" || strings.HasPrefix(m[2], "defines") {
			assert.NotEqual(t, "Error", strings.SplitN(v.String(), ":", 2)[0], m[1])
			continue
		}
		assert.Equal(t, m[2], v.String(), m[1])
	}
	assert.Greater(t, n, 10)
}
