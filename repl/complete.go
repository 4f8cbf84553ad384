// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"

	"github.com/luthersystems/lispy/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the names
// bound in the global frame of env.
type symbolCompleter struct {
	env *lisp.Env
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a delimiter).
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n({", line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	var result []string
	for _, name := range c.env.Global().Names() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}
