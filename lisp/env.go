// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"fmt"
	"io"
)

// Env is a lisp environment.  An Env holds the bindings of a single frame
// and a link to its parent frame; symbol resolution walks the parent chain
// toward the root (global) frame.
type Env struct {
	Parent  *Env
	Runtime *Runtime

	scope map[string]Value
	// names records the definition order of the keys in scope.
	names     []string
	noPrelude bool
}

// NewEnvRuntime initializes a new root Env which uses rt.  When rt is nil
// StandardRuntime() is called to create a new Runtime for the returned Env.
func NewEnvRuntime(rt *Runtime) *Env {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &Env{
		Runtime: rt,
		scope:   make(map[string]Value),
	}
}

// NewEnv returns a new Env whose parent is parent.  A nil parent creates a
// root Env with a standard runtime.
func NewEnv(parent *Env) *Env {
	if parent == nil {
		return NewEnvRuntime(nil)
	}
	return &Env{
		Parent:  parent,
		Runtime: parent.Runtime,
		scope:   make(map[string]Value),
	}
}

// NewGlobalEnv returns a root Env containing the builtin library.  Configs
// are applied before the prelude is loaded, so the prelude is only loaded
// when a Reader has been configured.  The first error returned by a config
// or by the prelude is returned along with the environment.
func NewGlobalEnv(config ...Config) (*Env, error) {
	env := NewEnvRuntime(nil)
	env.AddBuiltins()
	for _, fn := range config {
		lerr := fn(env)
		if err := GoError(lerr); err != nil {
			return env, err
		}
	}
	if env.noPrelude {
		return env, nil
	}
	if env.Runtime.Reader == nil {
		env.Runtime.logger().Debug("no reader configured; prelude not loaded")
		return env, nil
	}
	lerr := env.LoadString("prelude", Prelude)
	return env, GoError(lerr)
}

// Child returns a new frame whose parent is env.
func (env *Env) Child() *Env {
	return NewEnv(env)
}

// Global returns the root frame of env's parent chain.
func (env *Env) Global() *Env {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// IsRoot returns true if env has no parent.
func (env *Env) IsRoot() bool {
	return env.Parent == nil
}

// Copy returns a frame containing a deep copy of env's bindings with the
// same parent and runtime.
func (env *Env) Copy() *Env {
	if env == nil {
		return nil
	}
	cp := &Env{
		Parent:    env.Parent,
		Runtime:   env.Runtime,
		scope:     make(map[string]Value, len(env.scope)),
		names:     make([]string, len(env.names)),
		noPrelude: env.noPrelude,
	}
	copy(cp.names, env.names)
	for k, v := range env.scope {
		cp.scope[k] = v.Copy()
	}
	return cp
}

// Define binds name to a copy of v in env's own frame, replacing an existing
// binding of name in the frame.  Ancestor frames are never modified.
func (env *Env) Define(name string, v Value) {
	if _, ok := env.scope[name]; !ok {
		env.names = append(env.names, name)
	}
	env.scope[name] = v.Copy()
}

// Lookup returns a copy of the value bound to name in the nearest frame
// defining it.  If no frame defines name an UnboundSymbol error is returned.
func (env *Env) Lookup(name string) Value {
	for e := env; e != nil; e = e.Parent {
		if v, ok := e.scope[name]; ok {
			return v.Copy()
		}
	}
	return Errorf(UnboundSymbol, "Unbound symbol '%s'", name)
}

// Names returns the names bound in env's own frame in definition order.
func (env *Env) Names() []string {
	names := make([]string, len(env.names))
	copy(names, env.names)
	return names
}

// Len returns the number of bindings in env's own frame.
func (env *Env) Len() int {
	return len(env.names)
}

// Teardown releases every binding in env's own frame.
func (env *Env) Teardown() {
	for k := range env.scope {
		delete(env.scope, k)
	}
	env.names = nil
}

// WriteBindings writes one "name: value" line for each binding in env's own
// frame.
func (env *Env) WriteBindings(w io.Writer) error {
	var buf bytes.Buffer
	for _, name := range env.names {
		fmt.Fprintf(&buf, "%s: %s\n", name, env.scope[name].String())
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Errorf returns an error value with the given condition.  When called
// during a function application the error captures a copy of the call
// stack.
func (env *Env) Errorf(c Condition, format string, v ...interface{}) *Error {
	lerr := Errorf(c, format, v...)
	env.attachStack(lerr)
	return lerr
}

func (env *Env) attachStack(lerr *Error) {
	if lerr.Stack != nil || env.Runtime == nil || env.Runtime.Stack.Height() == 0 {
		return
	}
	lerr.Stack = env.Runtime.Stack.Copy()
}
