package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/lispy/lisp"
)

// This profiler type appends tags to pprof output if pprof is enabled.  It
// does not start pprof itself.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lisp.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler which labels the current goroutine
// with the name of the function being applied.
func NewPprofAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	if err := p.profiler.Enable(); err != nil {
		return err
	}
	p.runtime.Profiler = p
	return nil
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(fun lisp.Value) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	// The label context is kept on the call stack of Start rather than
	// using pprof.Do so that lisp.Env.Apply needs no profiler specific code
	// path.
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyFunName(fun)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", prettyLabel))
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}

// Labels returns the pprof labels currently applied by the annotator.
func (p *pprofAnnotator) Labels() map[string]string {
	labels := make(map[string]string)
	if p.currentContext == nil {
		return labels
	}
	pprof.ForLabels(p.currentContext, func(key, value string) bool {
		labels[key] = value
		return true
	})
	return labels
}
