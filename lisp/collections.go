package lisp

import (
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
)

// Vector is an immutable indexed sequence. Append returns a new vector that
// shares structure with the old one.
type Vector struct {
	vals *immutable.List[Value]
}

func NewVector(vals ...Value) Vector {
	return Vector{vals: immutable.NewList(vals...)}
}

func (v Vector) list() *immutable.List[Value] {
	if v.vals == nil {
		return immutable.NewList[Value]()
	}
	return v.vals
}

func (v Vector) Len() int {
	if v.vals == nil {
		return 0
	}
	return v.vals.Len()
}

func (v Vector) Append(x Value) Vector {
	return Vector{vals: v.list().Append(x)}
}

func (v Vector) Nth(i int) (Value, bool) {
	if i < 0 || i >= v.Len() {
		return nil, false
	}
	return v.vals.Get(i), true
}

func (v Vector) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if v.vals == nil {
			return
		}
		itr := v.vals.Iterator()
		for !itr.Done() {
			_, x := itr.Next()
			if !yield(x) {
				return
			}
		}
	}
}

func (v Vector) Slice() []Value {
	out := make([]Value, 0, v.Len())
	for x := range v.All() {
		out = append(out, x)
	}
	return out
}

func (v Vector) equal(o Vector) bool {
	if v.Len() != o.Len() {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !Equal(v.vals.Get(i), o.vals.Get(i)) {
			return false
		}
	}
	return true
}

func (v Vector) Kind() Kind { return KindVector }

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	writeSeq(&b, v.All())
	b.WriteByte(']')
	return b.String()
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key, Val Value
}

// Map is an immutable mapping with unique keys that iterates in insertion
// order. Entries live in a persistent list; a persistent hash index maps each
// key to its position so lookups do not scan.
type Map struct {
	entries *immutable.List[MapEntry]
	index   *immutable.Map[Value, int]
}

type valueHasher struct{}

func (valueHasher) Hash(v Value) uint32   { return Hash(v) }
func (valueHasher) Equal(a, b Value) bool { return Equal(a, b) }

func NewMap(entries ...MapEntry) Map {
	m := Map{
		entries: immutable.NewList[MapEntry](),
		index:   immutable.NewMap[Value, int](valueHasher{}),
	}
	for _, e := range entries {
		m = m.Assoc(e.Key, e.Val)
	}
	return m
}

func (m Map) init() Map {
	if m.entries == nil {
		return NewMap()
	}
	return m
}

func (m Map) Len() int {
	if m.entries == nil {
		return 0
	}
	return m.entries.Len()
}

// Assoc returns a map with key bound to val. Rebinding an existing key keeps
// its original position.
func (m Map) Assoc(key, val Value) Map {
	m = m.init()
	if i, ok := m.index.Get(key); ok {
		return Map{entries: m.entries.Set(i, MapEntry{Key: key, Val: val}), index: m.index}
	}
	return Map{
		entries: m.entries.Append(MapEntry{Key: key, Val: val}),
		index:   m.index.Set(key, m.entries.Len()),
	}
}

func (m Map) Get(key Value) (Value, bool) {
	if m.index == nil {
		return nil, false
	}
	i, ok := m.index.Get(key)
	if !ok {
		return nil, false
	}
	return m.entries.Get(i).Val, true
}

// All iterates the entries in insertion order.
func (m Map) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		if m.entries == nil {
			return
		}
		itr := m.entries.Iterator()
		for !itr.Done() {
			_, e := itr.Next()
			if !yield(e.Key, e.Val) {
				return
			}
		}
	}
}

func (m Map) equal(o Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	for k, v := range m.All() {
		ov, ok := o.Get(k)
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

func (m Map) Kind() Kind { return KindMap }

func (m Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(Print(k))
		b.WriteByte(' ')
		b.WriteString(Print(v))
	}
	b.WriteByte('}')
	return b.String()
}
