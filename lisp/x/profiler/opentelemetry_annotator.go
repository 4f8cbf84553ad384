package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/lispy/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// contextKey is the type of context keys read by this package.
type contextKey string

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"
)

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns a profiler which starts a span, as a
// child of parentContext, for each function application.  Spans are created
// with the global tracer provider.
func NewOpenTelemetryAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	if err := p.profiler.Enable(); err != nil {
		return err
	}
	p.runtime.Profiler = p
	return nil
}

func (p *otelAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "lispy"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(fun lisp.Value) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext, oldSpan := p.currentContext, p.currentSpan
	prettyLabel, funName := p.prettyFunName(fun)
	ctx, span := contextTracer(p.currentContext).Start(p.currentContext, prettyLabel)
	p.currentContext, p.currentSpan = ctx, span
	p.addCodeAttributes(fun, funName)
	return func() {
		span.End()
		// And pop the current context back
		p.currentContext, p.currentSpan = oldContext, oldSpan
	}
}

func (p *otelAnnotator) addCodeAttributes(fun lisp.Value, funName string) {
	attrs := []attribute.KeyValue{
		semconv.CodeNamespace(funNamespace(fun)),
		semconv.CodeFunction(funName),
	}
	p.currentSpan.SetAttributes(attrs...)
}
