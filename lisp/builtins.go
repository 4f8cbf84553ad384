// Copyright © 2018 The ELPS authors

package lisp

import (
	"os"
	"sort"
)

type langBuiltin struct {
	name    string
	formals *QExpr
	fun     BuiltinFunc
	docs    string
}

func (fun *langBuiltin) builtin() *Builtin {
	return &Builtin{
		Name:    fun.name,
		Formals: fun.formals,
		Doc:     fun.docs,
		Fn:      fun.fun,
	}
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"list", Formals(VarArgSymbol, "args"), builtinList, `
		Returns a Q-expression containing args in the order given.`},
	{"head", Formals("lis"), builtinHead, `
		Returns the first element of the non-empty Q-expression lis.`},
	{"tail", Formals("lis"), builtinTail, `
		Returns a Q-expression containing every element of the non-empty
		Q-expression lis except the first.`},
	{"init", Formals("lis"), builtinInit, `
		Returns a Q-expression containing every element of the non-empty
		Q-expression lis except the last.`},
	{"len", Formals("lis"), builtinLen, `
		Returns the number of elements in the Q-expression lis.`},
	{"join", Formals("lis", VarArgSymbol, "more"), builtinJoin, `
		Returns a Q-expression containing the elements of every argument in
		order.  All arguments must be Q-expressions.`},
	{"cons", Formals("value", "lis"), builtinCons, `
		Returns the Q-expression lis with value inserted before its first
		element.`},
	{"eval", Formals("expr"), builtinEval, `
		Evaluates the Q-expression expr as an S-expression in the calling
		environment and returns the result.`},
	{"def", Formals("symbols", VarArgSymbol, "values"), builtinDef, `
		Binds each symbol in the Q-expression symbols to the corresponding
		value in the global environment.  The number of symbols must match
		the number of values and at least one value is required.  Returns ().`},
	{"=", Formals("symbols", VarArgSymbol, "values"), builtinPut, `
		Like def but binds each symbol in the calling environment, shadowing
		any binding of the same symbol in enclosing environments.  Returns ().`},
	{`\`, Formals("formals", "body"), builtinLambda, `
		Returns a function which binds the Q-expression of symbols formals
		and evaluates body in the resulting environment.  The formal symbol &
		binds the remaining arguments of a call as a Q-expression.  Calling
		the function with fewer arguments than formals returns a function
		expecting the remaining arguments.`},
	{"print-env", Formals(), builtinPrintEnv, `
		Writes the bindings of the calling environment to the standard output
		of the runtime.  Returns ().`},
	{"exit", Formals(), builtinExit, `
		Terminates the interpreter.`},
	{"+", Formals("x", VarArgSymbol, "more"), builtinAdd, `
		Returns the sum of the given numbers.`},
	{"-", Formals("x", VarArgSymbol, "more"), builtinSub, `
		Subtracts every number after the first from the first.  With a single
		argument returns the negation of x.`},
	{"*", Formals("x", VarArgSymbol, "more"), builtinMul, `
		Returns the product of the given numbers.`},
	{"/", Formals("x", VarArgSymbol, "more"), builtinDiv, `
		Divides the first number by every number after it, truncating toward
		zero.  Dividing by zero is an error.`},
}

// RegisterDefaultBuiltin adds the given function to the list of builtins
// added to every environment created by NewGlobalEnv.
func RegisterDefaultBuiltin(name string, formals *QExpr, fn BuiltinFunc, docs string) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn, docs})
}

// AddBuiltins binds the language builtins and any registered default
// builtins in env.
func (env *Env) AddBuiltins() {
	for _, fn := range langBuiltins {
		env.Define(fn.name, fn.builtin())
	}
	for _, fn := range userBuiltins {
		env.Define(fn.name, fn.builtin())
	}
}

// AddBuiltin binds a builtin function with the given name in env.
func (env *Env) AddBuiltin(name string, formals *QExpr, fn BuiltinFunc, docs string) {
	b := &langBuiltin{name, formals, fn, docs}
	env.Define(name, b.builtin())
}

// Builtins returns the language builtins sorted by name.
func Builtins() []*Builtin {
	fns := make([]*Builtin, 0, len(langBuiltins)+len(userBuiltins))
	for _, fn := range langBuiltins {
		fns = append(fns, fn.builtin())
	}
	for _, fn := range userBuiltins {
		fns = append(fns, fn.builtin())
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Name < fns[j].Name })
	return fns
}

func checkCount(env *Env, name string, args *QExpr, n int) *Error {
	if args.Len() != n {
		return env.Errorf(WrongArity, "%s: passed incorrect number of arguments; got %d, expected %d", name, args.Len(), n)
	}
	return nil
}

func checkMinCount(env *Env, name string, args *QExpr, n int) *Error {
	if args.Len() < n {
		return env.Errorf(WrongArity, "%s: passed too few arguments; got %d, expected at least %d", name, args.Len(), n)
	}
	return nil
}

func checkType(env *Env, name string, args *QExpr, i int, t LType) *Error {
	if got := args.Cells[i].Type(); got != t {
		return env.Errorf(WrongType, "%s: argument %d has wrong type; expected %s, got %s", name, i, t, got)
	}
	return nil
}

func checkNonEmpty(env *Env, name string, q *QExpr) *Error {
	if q.Len() == 0 {
		return env.Errorf(EmptyListAccess, "%s: empty Q-expression", name)
	}
	return nil
}

// qexprArg checks that args holds a single non-empty Q-expression and
// returns it.
func qexprArg(env *Env, name string, args *QExpr, nonEmpty bool) (*QExpr, *Error) {
	if lerr := checkCount(env, name, args, 1); lerr != nil {
		return nil, lerr
	}
	if lerr := checkType(env, name, args, 0, LQExpr); lerr != nil {
		return nil, lerr
	}
	q := args.Take(0).(*QExpr)
	if nonEmpty {
		if lerr := checkNonEmpty(env, name, q); lerr != nil {
			return nil, lerr
		}
	}
	return q, nil
}

func builtinList(env *Env, args *QExpr) Value {
	return args
}

func builtinHead(env *Env, args *QExpr) Value {
	q, lerr := qexprArg(env, "head", args, true)
	if lerr != nil {
		return lerr
	}
	return q.Take(0)
}

func builtinTail(env *Env, args *QExpr) Value {
	q, lerr := qexprArg(env, "tail", args, true)
	if lerr != nil {
		return lerr
	}
	q.Pop(0)
	return q
}

func builtinInit(env *Env, args *QExpr) Value {
	q, lerr := qexprArg(env, "init", args, true)
	if lerr != nil {
		return lerr
	}
	q.Pop(q.Len() - 1)
	return q
}

func builtinLen(env *Env, args *QExpr) Value {
	q, lerr := qexprArg(env, "len", args, false)
	if lerr != nil {
		return lerr
	}
	return Int(q.Len())
}

func builtinJoin(env *Env, args *QExpr) Value {
	if lerr := checkMinCount(env, "join", args, 1); lerr != nil {
		return lerr
	}
	for i := range args.Cells {
		if lerr := checkType(env, "join", args, i, LQExpr); lerr != nil {
			return lerr
		}
	}
	acc := args.Pop(0).(*QExpr)
	for args.Len() > 0 {
		Join(acc, args.Pop(0).(*QExpr))
	}
	return acc
}

func builtinCons(env *Env, args *QExpr) Value {
	if lerr := checkCount(env, "cons", args, 2); lerr != nil {
		return lerr
	}
	if lerr := checkType(env, "cons", args, 1, LQExpr); lerr != nil {
		return lerr
	}
	v := args.Pop(0)
	q := args.Take(0).(*QExpr)
	q.Prepend(v)
	return q
}

func builtinEval(env *Env, args *QExpr) Value {
	q, lerr := qexprArg(env, "eval", args, false)
	if lerr != nil {
		return lerr
	}
	return env.Eval(q.SExpr())
}

func builtinDef(env *Env, args *QExpr) Value {
	return builtinVar(env, "def", args)
}

func builtinPut(env *Env, args *QExpr) Value {
	return builtinVar(env, "=", args)
}

// builtinVar implements def and =, which differ only in the frame receiving
// the bindings.
func builtinVar(env *Env, name string, args *QExpr) Value {
	if lerr := checkMinCount(env, name, args, 2); lerr != nil {
		return lerr
	}
	if lerr := checkType(env, name, args, 0, LQExpr); lerr != nil {
		return lerr
	}
	syms := args.Pop(0).(*QExpr)
	for _, c := range syms.Cells {
		if c.Type() != LSymbol {
			return env.Errorf(WrongType, "%s: cannot define non-symbol; got %s", name, c.Type())
		}
	}
	if syms.Len() != args.Len() {
		return env.Errorf(WrongArity, "%s: passed %d symbols for %d values", name, syms.Len(), args.Len())
	}
	target := env
	if name == "def" {
		target = env.Global()
	}
	for i, c := range syms.Cells {
		sym := c.(*Symbol)
		if target.IsRoot() {
			env.Runtime.logger().WithField("symbol", sym.Name).Debug("global definition")
		}
		target.Define(sym.Name, args.Cells[i])
	}
	return Nil()
}

func builtinLambda(env *Env, args *QExpr) Value {
	if lerr := checkCount(env, `\`, args, 2); lerr != nil {
		return lerr
	}
	for i := range args.Cells {
		if lerr := checkType(env, `\`, args, i, LQExpr); lerr != nil {
			return lerr
		}
	}
	formals := args.Pop(0).(*QExpr)
	body := args.Take(0).(*QExpr)
	for _, c := range formals.Cells {
		if c.Type() != LSymbol {
			return env.Errorf(WrongType, `\: cannot define non-symbol; got %s`, c.Type())
		}
	}
	return Lambda(env, formals, body)
}

func builtinPrintEnv(env *Env, args *QExpr) Value {
	if lerr := checkCount(env, "print-env", args, 0); lerr != nil {
		return lerr
	}
	err := env.WriteBindings(env.Runtime.stdout())
	if err != nil {
		return env.Errorf(IOError, "print-env: %v", err)
	}
	return Nil()
}

func builtinExit(env *Env, args *QExpr) Value {
	if lerr := checkCount(env, "exit", args, 0); lerr != nil {
		return lerr
	}
	exit := env.Runtime.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(0)
	return Nil()
}

type arithmeticOp func(env *Env, x, y int) (int, *Error)

func builtinAdd(env *Env, args *QExpr) Value {
	return builtinArithmetic(env, "+", args, func(env *Env, x, y int) (int, *Error) {
		return x + y, nil
	})
}

func builtinSub(env *Env, args *QExpr) Value {
	return builtinArithmetic(env, "-", args, func(env *Env, x, y int) (int, *Error) {
		return x - y, nil
	})
}

func builtinMul(env *Env, args *QExpr) Value {
	return builtinArithmetic(env, "*", args, func(env *Env, x, y int) (int, *Error) {
		return x * y, nil
	})
}

func builtinDiv(env *Env, args *QExpr) Value {
	return builtinArithmetic(env, "/", args, func(env *Env, x, y int) (int, *Error) {
		if y == 0 {
			return 0, env.Errorf(DivisionByZero, "Division by zero")
		}
		return x / y, nil
	})
}

// builtinArithmetic folds op over args from the left.  A single argument to
// - is negated.
func builtinArithmetic(env *Env, name string, args *QExpr, op arithmeticOp) Value {
	if lerr := checkMinCount(env, name, args, 1); lerr != nil {
		return lerr
	}
	for i := range args.Cells {
		if lerr := checkType(env, name, args, i, LNumber); lerr != nil {
			return lerr
		}
	}
	acc := args.Pop(0).(*Number)
	if name == "-" && args.Len() == 0 {
		acc.Int = -acc.Int
		return acc
	}
	for args.Len() > 0 {
		y := args.Pop(0).(*Number)
		z, lerr := op(env, acc.Int, y.Int)
		if lerr != nil {
			return lerr
		}
		acc.Int = z
	}
	return acc
}
