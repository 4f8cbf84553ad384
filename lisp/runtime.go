// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Runtime is an object underlying a tree of Env values.  It holds the state
// shared by every frame: output streams, the call stack and optional
// collaborators such as a Reader, a Profiler and a Logger.
type Runtime struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Stack    *CallStack
	Reader   Reader
	Profiler Profiler
	Logger   log.FieldLogger
	// Exit is called by the exit builtin.
	Exit func(code int)
}

// StandardRuntime returns a new Runtime writing to os.Stdout and os.Stderr,
// logging to the logrus standard logger, and exiting the process on exit.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stack:  &CallStack{},
		Logger: log.StandardLogger(),
		Exit:   os.Exit,
	}
}

func (r *Runtime) logger() log.FieldLogger {
	if r.Logger == nil {
		return log.StandardLogger()
	}
	return r.Logger
}

func (r *Runtime) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}
