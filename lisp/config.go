// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *Env) Value

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  When n is
// zero or negative the stack is unbounded.
func WithMaximumStackHeight(n int) Config {
	return func(env *Env) Value {
		env.Runtime.Stack.MaxHeight = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *Env) Value {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes environments write program output
// (e.g. print-env) to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *Env) Value {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *Env) Value {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// WithExit returns a Config that replaces the function called by the exit
// builtin.
func WithExit(fn func(code int)) Config {
	return func(env *Env) Value {
		env.Runtime.Exit = fn
		return Nil()
	}
}

// WithLogger returns a Config that makes environments log through l.
func WithLogger(l log.FieldLogger) Config {
	return func(env *Env) Value {
		env.Runtime.Logger = l
		return Nil()
	}
}

// WithProfiler returns a Config that wraps every function application with
// p.  The profiler must be enabled separately.
func WithProfiler(p Profiler) Config {
	return func(env *Env) Value {
		env.Runtime.Profiler = p
		return Nil()
	}
}

// WithoutPrelude returns a Config that stops NewGlobalEnv from loading the
// prelude.
func WithoutPrelude() Config {
	return func(env *Env) Value {
		env.noPrelude = true
		return Nil()
	}
}
