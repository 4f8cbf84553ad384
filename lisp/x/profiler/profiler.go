// Package profiler provides lisp.Profiler implementations which record
// function applications as trace spans or profile labels.
package profiler

import (
	"fmt"

	"github.com/luthersystems/lispy/lisp"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(fun lisp.Value) func() {
	return func() {}
}

// defaultFunName returns the name a function was called through.
// Anonymous closures are named "lambda".
func defaultFunName(fun lisp.Value) string {
	switch fun := fun.(type) {
	case *lisp.Builtin:
		return fun.Name
	case *lisp.Closure:
		if fun.Name == "" {
			return "lambda"
		}
		return fun.Name
	}
	return ""
}

// prettyFunName returns a pretty name and original name for a fun. If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fun lisp.Value) (string, string) {
	origLabel := defaultFunName(fun)
	if origLabel == "" {
		return "", ""
	}
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(p.runtime, fun)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v lisp.Value) bool {
	return !p.enabled || defaultSkipFilter(v) || p.skipFilter != nil && p.skipFilter(v)
}

// funNamespace returns the namespace reported for fun in trace attributes.
func funNamespace(fun lisp.Value) string {
	if fun.Type() == lisp.LBuiltin {
		return "builtin"
	}
	return "user"
}
