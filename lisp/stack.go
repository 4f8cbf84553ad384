// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"
)

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight limits the number of frames on the stack.  A value less than
	// or equal to zero leaves the stack unbounded.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	// Name is the symbol the function was called through.  Anonymous
	// functions have an empty Name.
	Name    string
	Builtin bool
}

func (f *CallFrame) String() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	if f.Builtin {
		return name + " [builtin]"
	}
	return name
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{
		MaxHeight: s.MaxHeight,
		Frames:    frames,
	}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Push pushes a new stack frame for the function fn onto s.  Push performs an
// inclusive check against s.MaxHeight because it is called before the new
// frame exists.
func (s *CallStack) Push(fn Value) error {
	if s.MaxHeight > 0 && s.MaxHeight <= len(s.Frames) {
		return &StackOverflowError{Height: len(s.Frames) + 1}
	}
	s.Frames = append(s.Frames, frameFor(fn))
	return nil
}

func frameFor(fn Value) CallFrame {
	switch fn := fn.(type) {
	case *Builtin:
		return CallFrame{Name: fn.Name, Builtin: true}
	case *Closure:
		return CallFrame{Name: fn.Name}
	}
	return CallFrame{}
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics
// if the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		fstr := s.Frames[i].String()
		_n, err := fmt.Fprintf(w, "%sheight %d: %s\n", indent, i, fstr)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// StackOverflowError is returned by CallStack.Push when the stack is full.
type StackOverflowError struct {
	Height int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack height exceeded maximum: %v", e.Height)
}
