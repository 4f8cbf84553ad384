// Copyright © 2018 The ELPS authors

package lisp

// VarArgSymbol is the formal argument marker which binds the remaining
// arguments of a call as a single Q-expression.
const VarArgSymbol = "&"

// Eval evaluates v in env.  Symbols are resolved through env, S-expressions
// are applied, and every other value is returned unchanged.  Eval consumes v.
func (env *Env) Eval(v Value) Value {
	switch v := v.(type) {
	case *Symbol:
		r := env.Lookup(v.Name)
		if fun, ok := r.(*Closure); ok {
			fun.Name = v.Name
		}
		return r
	case *SExpr:
		return env.EvalSExpr(v)
	default:
		return v
	}
}

// EvalSExpr evaluates each cell of s in order and applies the first cell to
// the rest.  Evaluation stops at the first cell to evaluate to an error,
// which is returned; cells after it are never evaluated.  An empty
// expression evaluates to itself and an expression holding a single
// non-function value evaluates to that value.
func (env *Env) EvalSExpr(s *SExpr) Value {
	for i, c := range s.Cells {
		s.Cells[i] = env.Eval(c)
		if s.Cells[i].Type() == LError {
			return s.Take(i)
		}
	}
	if s.Len() == 0 {
		return s
	}
	if s.Len() == 1 && !isFunction(s.Cells[0]) {
		return s.Take(0)
	}
	f := s.Pop(0)
	if !isFunction(f) {
		return env.Errorf(NotApplicable, "expression does not start with a function")
	}
	return env.Apply(f, s.QExpr())
}

func isFunction(v Value) bool {
	switch v.Type() {
	case LBuiltin, LFun:
		return true
	}
	return false
}

// Apply calls fn with args.  Apply pushes a frame onto the runtime call
// stack for the duration of the call and returns a StackOverflow error
// without calling fn when the stack is full.
func (env *Env) Apply(fn Value, args *QExpr) Value {
	if !isFunction(fn) {
		return env.Errorf(NotApplicable, "value is not a function: %s", fn.Type())
	}
	rt := env.Runtime
	if err := rt.Stack.Push(fn); err != nil {
		rt.logger().WithField("height", rt.Stack.Height()).Warn("call stack limit reached")
		lerr := Errorf(StackOverflow, "%v", err)
		lerr.Stack = rt.Stack.Copy()
		return lerr
	}
	defer rt.Stack.Pop()
	if rt.Profiler != nil && rt.Profiler.IsEnabled() {
		defer rt.Profiler.Start(fn)()
	}
	var r Value
	switch fn := fn.(type) {
	case *Builtin:
		r = fn.Fn(env, args)
	case *Closure:
		r = env.call(fn, args)
	}
	if lerr, ok := r.(*Error); ok {
		env.attachStack(lerr)
	}
	return r
}

// call binds args to the formals of fun in a new frame whose parent is the
// closure's private frame.  When fewer arguments than formals are given the
// result is a closure over the remaining formals with the bound frame as its
// private frame.
func (env *Env) call(fun *Closure, args *QExpr) Value {
	given := args.Len()
	total := fun.Formals.Len()
	frame := fun.Env.Child()
	formals := fun.Formals.Copy().(*QExpr)
	for args.Len() > 0 {
		if formals.Len() == 0 {
			return env.Errorf(WrongArity, "function passed too many arguments; got %d, expected %d", given, total)
		}
		sym, ok := formals.Pop(0).(*Symbol)
		if !ok {
			return env.Errorf(WrongType, "function formal is not a symbol")
		}
		if sym.Name == VarArgSymbol {
			rest, lerr := restSymbol(env, formals)
			if lerr != nil {
				return lerr
			}
			frame.Define(rest.Name, QExprOf(args.Cells...))
			args.Cells = nil
			break
		}
		frame.Define(sym.Name, args.Pop(0))
	}
	if formals.Len() > 0 {
		if sym, ok := formals.Cells[0].(*Symbol); ok && sym.Name == VarArgSymbol {
			formals.Pop(0)
			rest, lerr := restSymbol(env, formals)
			if lerr != nil {
				return lerr
			}
			frame.Define(rest.Name, QExprOf())
		}
	}
	if formals.Len() > 0 {
		return &Closure{
			Name:    fun.Name,
			Formals: formals,
			Body:    fun.Body.Copy().(*QExpr),
			Env:     frame,
		}
	}
	body := fun.Body.Copy().(*QExpr)
	return frame.EvalSExpr(body.SExpr())
}

// restSymbol pops the symbol following VarArgSymbol from formals, which must
// contain exactly that symbol.
func restSymbol(env *Env, formals *QExpr) (*Symbol, *Error) {
	if formals.Len() != 1 {
		return nil, env.Errorf(WrongArity, "function format invalid; symbol '%s' not followed by single symbol", VarArgSymbol)
	}
	sym, ok := formals.Pop(0).(*Symbol)
	if !ok {
		return nil, env.Errorf(WrongType, "function format invalid; symbol '%s' not followed by single symbol", VarArgSymbol)
	}
	return sym, nil
}
