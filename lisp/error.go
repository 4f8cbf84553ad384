// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"fmt"
	"io"
)

// Condition classifies an Error.
type Condition string

// Error conditions produced by the interpreter.
const (
	InvalidNumber   Condition = "invalid-number"
	UnboundSymbol   Condition = "unbound-symbol"
	WrongType       Condition = "wrong-type"
	WrongArity      Condition = "wrong-arity"
	NotApplicable   Condition = "not-applicable"
	EmptyListAccess Condition = "empty-list"
	DivisionByZero  Condition = "division-by-zero"
	IndexOutOfRange Condition = "index-out-of-range"
	StackOverflow   Condition = "stack-overflow"
	IOError         Condition = "io-error"
)

// Error is a lisp error value.  Errors are ordinary values which abort the
// evaluation of any expression that contains them.  Error implements Go's
// error interface so that it can be returned from host functions unchanged.
type Error struct {
	Condition Condition
	Message   string
	// Stack is a snapshot of the call stack when the error was created.  It
	// is nil for errors created outside of a function application.
	Stack *CallStack
}

// Errorf returns an Error with a formatted message.
func Errorf(c Condition, format string, v ...interface{}) *Error {
	return &Error{Condition: c, Message: fmt.Sprintf(format, v...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) String() string {
	return "Error: " + e.Message
}

// Copy returns a copy of e.  The stack snapshot is immutable and is shared.
func (e *Error) Copy() Value {
	cp := *e
	return &cp
}

// FunName returns the name of the function on the top of the error's call
// stack, if known.
func (e *Error) FunName() string {
	top := e.Stack.Top()
	if top == nil {
		return ""
	}
	return top.Name
}

// WriteTrace writes the error and a stack trace to w
func (e *Error) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.String())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	if e.Stack != nil {
		if !wrote(e.Stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// GoError returns an error that represents v.  If v is not an Error then nil
// is returned.
func GoError(v Value) error {
	if e, ok := v.(*Error); ok {
		return e
	}
	return nil
}

// IsError returns true if v is an Error.
func IsError(v Value) bool {
	return v != nil && v.Type() == LError
}
