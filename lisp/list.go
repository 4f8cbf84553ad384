// Copyright © 2018 The ELPS authors

package lisp

// List is the ordered storage shared by SExpr and QExpr.
type List struct {
	Cells []Value
}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	return len(l.Cells)
}

// Pop removes the element at index i and returns it, closing the gap.  If i
// is out of range an IndexOutOfRange error is returned and the list is left
// unchanged.
func (l *List) Pop(i int) Value {
	if i < 0 || i >= len(l.Cells) {
		return Errorf(IndexOutOfRange, "index %d out of range for list of length %d", i, len(l.Cells))
	}
	v := l.Cells[i]
	copy(l.Cells[i:], l.Cells[i+1:])
	l.Cells[len(l.Cells)-1] = nil
	l.Cells = l.Cells[:len(l.Cells)-1]
	return v
}

// Take pops the element at index i and discards the rest of the list.
func (l *List) Take(i int) Value {
	if i < 0 || i >= len(l.Cells) {
		return l.Pop(i)
	}
	v := l.Cells[i]
	l.Cells = nil
	return v
}

// Prepend inserts v at index 0.
func (l *List) Prepend(v Value) {
	l.Cells = append(l.Cells, nil)
	copy(l.Cells[1:], l.Cells)
	l.Cells[0] = v
}

// Add appends v to the end of the list.
func (l *List) Add(v Value) {
	l.Cells = append(l.Cells, v)
}

// Join moves every element of other onto the end of l, preserving order.
// The other list is left empty.
func (l *List) Join(other *List) {
	l.Cells = append(l.Cells, other.Cells...)
	other.Cells = nil
}

func (l *List) copy() List {
	if l.Cells == nil {
		return List{}
	}
	cells := make([]Value, len(l.Cells))
	for i, c := range l.Cells {
		cells[i] = c.Copy()
	}
	return List{Cells: cells}
}

// Join concatenates qexprs into the first one and returns it.  Every later
// argument is consumed.
func Join(a *QExpr, rest ...*QExpr) *QExpr {
	for _, q := range rest {
		a.List.Join(&q.List)
	}
	return a
}

// Take is a convenience for l.Take(i) on either list variant.
func Take(v Value, i int) Value {
	l, ok := listOf(v)
	if !ok {
		return Errorf(WrongType, "cannot take from %s", v.Type())
	}
	return l.Take(i)
}

func listOf(v Value) (*List, bool) {
	switch v := v.(type) {
	case *SExpr:
		return &v.List, true
	case *QExpr:
		return &v.List, true
	}
	return nil, false
}
