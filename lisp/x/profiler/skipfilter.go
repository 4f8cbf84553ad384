package profiler

import (
	"regexp"

	"github.com/luthersystems/lispy/lisp"
)

type SkipFilter func(fun lisp.Value) bool

func defaultSkipFilter(fun lisp.Value) bool {
	switch fun.Type() {
	case lisp.LFun, lisp.LBuiltin:
		return false
	default:
		return true
	}
}

// BuiltinSkipFilter skips builtin functions so that only closures are
// traced.
func BuiltinSkipFilter(fun lisp.Value) bool {
	return fun.Type() == lisp.LBuiltin
}

// WithDocFilter filters to only include spans for builtins with docs that
// denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter. All builtins with a docstring that contains this string
// will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(fun lisp.Value) bool {
	docStr := funDoc(fun)
	if docStr == "" {
		return true
	}
	// do not skip docs that include trace constant
	return !docTraceRegExp.MatchString(docStr)
}

func funDoc(fun lisp.Value) string {
	if b, ok := fun.(*lisp.Builtin); ok {
		return b.Doc
	}
	return ""
}
