// Copyright © 2018 The ELPS authors

// Package lispytest runs table driven tests of lisp expressions.
package lispytest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
	log "github.com/sirupsen/logrus"
)

// BenchmarkParse returns a benchmark which parses the lisp source file at
// path using readers returned by r.
func BenchmarkParse(path string, r func() lisp.Reader) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read("test", bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Env.
type TestSequence []struct {
	Expr   string
	Result string
	Output string
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns a global environment suitable for tests.  Program output
// is written to stdout and log messages are forwarded to t.
func NewEnv(t testing.TB, stdout *bytes.Buffer, config ...lisp.Config) (*lisp.Env, error) {
	logger := log.New()
	logger.SetOutput(NewLogger(t))
	logger.SetLevel(log.DebugLevel)
	config = append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(NewLogger(t)),
		lisp.WithLogger(logger),
		lisp.WithExit(func(code int) {
			t.Logf("exit called with code %d", code)
		}),
	}, config...)
	env, err := lisp.NewGlobalEnv(config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %v", err)
	}
	return env, nil
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.Envs.
func RunTestSuite(t *testing.T, tests TestSuite, config ...lisp.Config) {
	for i, test := range tests {
		t.Logf("test %d -- %s", i, test.Name)
		var exprBuf bytes.Buffer
		env, err := NewEnv(t, &exprBuf, config...)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			exprBuf.Reset()
			v, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if exprBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, exprBuf.String())
			}
		}
		env.Teardown()
	}
}

// RunBenchmark runs a standard benchmark that executes expressions parsed from
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		var out bytes.Buffer
		env, err := NewEnv(b, &out)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for _, expr := range exprs {
			v := env.Eval(expr.Copy())
			if err := lisp.GoError(v); err != nil {
				b.Fatal(err)
			}
		}
		b.StopTimer()
	}
}
