package lisp

import (
	"iter"
	"strings"
)

// List is an immutable singly linked list. Cons shares the tail, so building
// a new list on top of an existing one never copies or mutates it.
type List struct {
	car   Value
	cdr   *List
	count int
}

// empty is the only zero-length list; every list ends in it.
var empty = &List{}

func EmptyList() *List { return empty }

// NewList builds a list holding vals in order.
func NewList(vals ...Value) *List {
	return list2cons(vals...)
}

func list2cons(list ...Value) *List {
	cons := empty
	for i := len(list) - 1; i >= 0; i-- {
		cons = cons.Cons(list[i])
	}
	return cons
}

func cons2list(l *List) []Value {
	list := make([]Value, 0, l.count)
	for ; l.count > 0; l = l.cdr {
		list = append(list, l.car)
	}
	return list
}

// Cons returns a new list with v in front of l.
func (l *List) Cons(v Value) *List {
	return &List{car: v, cdr: l, count: l.count + 1}
}

func (l *List) Len() int      { return l.count }
func (l *List) IsEmpty() bool { return l.count == 0 }

// First returns the head of the list, or Nil for the empty list.
func (l *List) First() Value {
	if l.count == 0 {
		return Nil{}
	}
	return l.car
}

// Rest returns everything after the head; the rest of an empty list is empty.
func (l *List) Rest() *List {
	if l.count == 0 {
		return empty
	}
	return l.cdr
}

// Nth returns the i-th element and whether it exists.
func (l *List) Nth(i int) (Value, bool) {
	if i < 0 || i >= l.count {
		return nil, false
	}
	for ; i > 0; i-- {
		l = l.cdr
	}
	return l.car, true
}

// All iterates the elements front to back without materializing them.
func (l *List) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for p := l; p.count > 0; p = p.cdr {
			if !yield(p.car) {
				return
			}
		}
	}
}

func (l *List) Slice() []Value { return cons2list(l) }

func (l *List) equal(o *List) bool {
	if l.count != o.count {
		return false
	}
	for a, b := l, o; a.count > 0; a, b = a.cdr, b.cdr {
		if !Equal(a.car, b.car) {
			return false
		}
	}
	return true
}

func (l *List) Kind() Kind { return KindList }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	writeSeq(&b, l.All())
	b.WriteByte(')')
	return b.String()
}

func writeSeq(b *strings.Builder, seq iter.Seq[Value]) {
	first := true
	for v := range seq {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(Print(v))
	}
}
