package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/lispy/lisp"
	"go.opencensus.io/trace"
)

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

var _ lisp.Profiler = &ocAnnotator{}

// NewOpenCensusAnnotator returns a profiler which starts an OpenCensus span,
// as a child of parentContext, for each function application.
func NewOpenCensusAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// EnableWithContext enables the profiler, parenting new spans under ctx.
func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("Set a context to use this function")
	}
	p.currentContext = ctx
	return p.Enable()
}

func (p *ocAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	if err := p.profiler.Enable(); err != nil {
		return err
	}
	p.runtime.Profiler = p
	return nil
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(fun lisp.Value) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	prettyLabel, funName := p.prettyFunName(fun)
	p.contexts = append(p.contexts, p.currentContext)
	ctx, span := trace.StartSpan(p.currentContext, prettyLabel)
	p.currentContext, p.currentSpan = ctx, span
	span.AddAttributes(
		trace.StringAttribute("code.namespace", funNamespace(fun)),
		trace.StringAttribute("code.function", funName),
	)
	return func() {
		span.End()
		// And pop the current context back
		n := len(p.contexts) - 1
		p.currentContext = p.contexts[n]
		p.contexts = p.contexts[:n]
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
