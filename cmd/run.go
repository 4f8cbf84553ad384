// Copyright © 2018 The ELPS authors

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/x/profiler"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type runOptions struct {
	expression bool
	print      bool
	trace      bool
}

func newRunCommand(cfg *cmdConfig) *cobra.Command {
	var opts runOptions
	runCmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or files.

Each argument is a source file, or a lisp expression when -e is given.  A
file argument ending in "/..." runs every .lisp file beneath the directory.
Evaluation stops at the first error, which is reported with its call stack.

Examples:
  lispy run main.lisp
  lispy run -p -e '(+ 1 2)' '(head {4 5 6})'
  lispy run --trace -e '(fun {sq x} {* x x}) (sq 3)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLisp(cmd.Context(), cfg, opts, args)
		},
	}
	runCmd.Flags().BoolVarP(&opts.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&opts.print, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().BoolVar(&opts.trace, "trace", false,
		"Record a trace span for each function application and log a summary")
	return runCmd
}

// source is lisp source text with the name used in diagnostics.
type source struct {
	name string
	text []byte
}

func runReadSources(opts runOptions, args []string) ([]source, error) {
	if opts.expression {
		srcs := make([]source, len(args))
		for i := range args {
			srcs[i] = source{name: fmt.Sprintf("<expression %d>", i+1), text: []byte(args[i])}
		}
		return srcs, nil
	}
	paths, err := expandArgs(args)
	if err != nil {
		return nil, err
	}
	srcs := make([]source, len(paths))
	for i, path := range paths {
		b, err := os.ReadFile(path) //nolint:gosec // runs user-specified source files
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: path, text: b}
	}
	return srcs, nil
}

func runLisp(ctx context.Context, cfg *cmdConfig, opts runOptions, args []string) error {
	srcs, err := runReadSources(opts, args)
	if err != nil {
		return err
	}
	sources := make(map[string]string, len(srcs))
	for _, src := range srcs {
		sources[src.name] = string(src.text)
	}

	env, err := lisp.NewGlobalEnv(append(cfg.envConfig(), lisp.WithStdout(cfg.stdout))...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	if opts.trace {
		if ctx == nil {
			ctx = context.Background()
		}
		stop, err := startTrace(ctx, cfg.logger, env)
		if err != nil {
			return err
		}
		defer stop()
	}

	for _, src := range srcs {
		exprs, err := env.Runtime.Reader.Read(src.name, bytes.NewReader(src.text))
		if err != nil {
			cfg.renderError(cfg.stderr, sources, err)
			return errReported
		}
		for _, expr := range exprs {
			v := env.Eval(expr)
			if lerr := lisp.GoError(v); lerr != nil {
				cfg.renderError(cfg.stderr, sources, lerr)
				return errReported
			}
			if opts.print {
				fmt.Fprintln(cfg.stdout, v.String()) //nolint:errcheck // best-effort output
			}
		}
	}
	return nil
}

// startTrace enables an OpenTelemetry profiler on env which records spans in
// memory.  The returned function completes the trace and logs a summary of
// the recorded spans.
func startTrace(ctx context.Context, logger log.FieldLogger, env *lisp.Env) (func(), error) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, ctx)
	if err := ppa.Enable(); err != nil {
		otel.SetTracerProvider(prev)
		return nil, err
	}
	return func() {
		if err := ppa.Complete(); err != nil {
			logger.WithError(err).Warn("unable to complete trace")
		}
		// spans must be collected before shutdown resets the exporter
		spans := exporter.GetSpans()
		if err := tp.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("unable to shut down tracer provider")
		}
		otel.SetTracerProvider(prev)
		counts := make(map[string]int)
		for _, span := range spans {
			counts[span.Name]++
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			logger.WithFields(log.Fields{
				"function": name,
				"calls":    counts[name],
			}).Debug("trace function summary")
		}
		logger.WithFields(log.Fields{
			"spans":     len(spans),
			"functions": len(names),
		}).Info("trace complete")
	}, nil
}
