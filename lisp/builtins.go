package lisp

import (
	"io"
	"strings"
	"unicode/utf8"
)

// builtins are the native callables bound in every global environment. The
// printing functions write to the process's stdout, so the table is built
// per process.
func (p *process) builtins() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		"+":         arith("+", 0, func(a, b Int) (Int, bool) { return a + b, true }),
		"*":         arith("*", 1, func(a, b Int) (Int, bool) { return a * b, true }),
		"-":         arith("-", 0, func(a, b Int) (Int, bool) { return a - b, true }),
		"quot":      arith("quot", 1, func(a, b Int) (Int, bool) { return divide(a, b) }),
		"str":       str,
		"print":     p.print(false),
		"println":   p.print(true),
		"list":      func(args []Value) Value { return NewList(args...) },
		"vector":    func(args []Value) Value { return NewVector(args...) },
		"hash-map":  hashMap,
		"count":     count,
		"first":     first,
		"rest":      rest,
		"nth":       nth,
		"cons":      cons,
		"conj":      conj,
		"concat":    concat,
		"get":       get,
		"assoc":     assoc,
		"type":      typeOf,
		"condition": condition,
	}
}

// doBuiltin is the head fn uses to sequence a multi-form body. Arguments are
// evaluated left to right before the call, so returning the last one is
// enough.
var doBuiltin = NewBuiltin("do", func(args []Value) Value {
	if len(args) == 0 {
		return Nil{}
	}
	return args[len(args)-1]
})

// firstCondition returns the first Condition among args, if any. Builtins
// that need typed arguments pass an incoming Condition through unchanged.
func firstCondition(args []Value) (Value, bool) {
	for _, a := range args {
		if c, ok := a.(Condition); ok {
			return c, true
		}
	}
	return nil, false
}

func typeCondition(fn string, want string, got Value) Condition {
	return NewCondition("%s expects %s, got %s %s", fn, want, got.Kind(), Print(got))
}

// arith folds args with op. With no args it returns identity; with one,
// '-' negates and quot takes the reciprocal, as (op identity x).
func arith(name string, identity Int, op func(a, b Int) (Int, bool)) BuiltinFunc {
	return func(args []Value) Value {
		if c, ok := firstCondition(args); ok {
			return c
		}
		nums := make([]Int, len(args))
		for i, a := range args {
			n, ok := a.(Int)
			if !ok {
				return typeCondition(name, "integer", a)
			}
			nums[i] = n
		}
		if len(nums) == 0 {
			if name == "-" || name == "quot" {
				return arityCondition(0, ">=1")
			}
			return identity
		}
		acc := nums[0]
		nums = nums[1:]
		if len(nums) == 0 && (name == "-" || name == "quot") {
			acc, nums = identity, []Int{acc}
		}
		for _, n := range nums {
			var ok bool
			if acc, ok = op(acc, n); !ok {
				return NewCondition("Divide by zero")
			}
		}
		return acc
	}
}

func divide(a, b Int) (Int, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

// str concatenates display forms; nil contributes nothing.
func str(args []Value) Value {
	var b strings.Builder
	for _, a := range args {
		if _, ok := a.(Nil); ok {
			continue
		}
		b.WriteString(a.String())
	}
	return String(b.String())
}

func (p *process) print(newline bool) BuiltinFunc {
	return func(args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		s := strings.Join(parts, " ")
		if newline {
			s += "\n"
		}
		if _, err := io.WriteString(p.stdout, s); err != nil {
			return NewCondition("print: %v", err)
		}
		return Nil{}
	}
}

func hashMap(args []Value) Value {
	if len(args)%2 != 0 {
		return NewCondition("hash-map expects an even number of arguments, got %d", len(args))
	}
	m := NewMap()
	for i := 0; i < len(args); i += 2 {
		m = m.Assoc(args[i], args[i+1])
	}
	return m
}

// seqValues returns the elements of anything sequential. Maps yield their
// entries as [k v] vectors and nil is the empty sequence.
func seqValues(v Value) ([]Value, bool) {
	switch x := v.(type) {
	case *List:
		return x.Slice(), true
	case Vector:
		return x.Slice(), true
	case Map:
		vals := make([]Value, 0, x.Len())
		for k, val := range x.All() {
			vals = append(vals, NewVector(k, val))
		}
		return vals, true
	case Nil:
		return nil, true
	}
	return nil, false
}

func count(args []Value) Value {
	if len(args) != 1 {
		return arityCondition(len(args), "1")
	}
	switch x := args[0].(type) {
	case *List:
		return Int(x.Len())
	case Vector:
		return Int(x.Len())
	case Map:
		return Int(x.Len())
	case String:
		return Int(utf8.RuneCountInString(string(x)))
	case Nil:
		return Int(0)
	case Condition:
		return x
	}
	return typeCondition("count", "a collection", args[0])
}

func first(args []Value) Value {
	if len(args) != 1 {
		return arityCondition(len(args), "1")
	}
	if c, ok := args[0].(Condition); ok {
		return c
	}
	vals, ok := seqValues(args[0])
	if !ok {
		return typeCondition("first", "a sequence", args[0])
	}
	if len(vals) == 0 {
		return Nil{}
	}
	return vals[0]
}

func rest(args []Value) Value {
	if len(args) != 1 {
		return arityCondition(len(args), "1")
	}
	switch x := args[0].(type) {
	case *List:
		return x.Rest()
	case Condition:
		return x
	}
	vals, ok := seqValues(args[0])
	if !ok {
		return typeCondition("rest", "a sequence", args[0])
	}
	if len(vals) == 0 {
		return EmptyList()
	}
	return NewList(vals[1:]...)
}

func nth(args []Value) Value {
	if len(args) != 2 {
		return arityCondition(len(args), "2")
	}
	if c, ok := firstCondition(args); ok {
		return c
	}
	i, ok := args[1].(Int)
	if !ok {
		return typeCondition("nth", "an integer index", args[1])
	}
	var v Value
	switch x := args[0].(type) {
	case *List:
		v, ok = x.Nth(int(i))
	case Vector:
		v, ok = x.Nth(int(i))
	default:
		return typeCondition("nth", "a list or vector", args[0])
	}
	if !ok {
		return NewCondition("Index out of bounds: %d", i)
	}
	return v
}

func cons(args []Value) Value {
	if len(args) != 2 {
		return arityCondition(len(args), "2")
	}
	if l, ok := args[1].(*List); ok {
		return l.Cons(args[0])
	}
	vals, ok := seqValues(args[1])
	if !ok {
		return typeCondition("cons", "a sequence", args[1])
	}
	return NewList(vals...).Cons(args[0])
}

// conj adds to the natural end: the front of a list, the back of a vector.
// Maps take [k v] vectors.
func conj(args []Value) Value {
	if len(args) < 1 {
		return arityCondition(len(args), ">=1")
	}
	switch coll := args[0].(type) {
	case *List:
		for _, a := range args[1:] {
			coll = coll.Cons(a)
		}
		return coll
	case Vector:
		for _, a := range args[1:] {
			coll = coll.Append(a)
		}
		return coll
	case Map:
		for _, a := range args[1:] {
			pair, ok := a.(Vector)
			if !ok || pair.Len() != 2 {
				return typeCondition("conj", "a [key value] vector", a)
			}
			k, _ := pair.Nth(0)
			v, _ := pair.Nth(1)
			coll = coll.Assoc(k, v)
		}
		return coll
	case Nil:
		l := EmptyList()
		for _, a := range args[1:] {
			l = l.Cons(a)
		}
		return l
	case Condition:
		return coll
	}
	return typeCondition("conj", "a collection", args[0])
}

func concat(args []Value) Value {
	var out []Value
	for _, a := range args {
		if c, ok := a.(Condition); ok {
			return c
		}
		vals, ok := seqValues(a)
		if !ok {
			return typeCondition("concat", "a sequence", a)
		}
		out = append(out, vals...)
	}
	return NewList(out...)
}

// (get coll key) or (get coll key not-found). Vectors are indexed by
// integer keys; anything else without the key yields not-found.
func get(args []Value) Value {
	if len(args) < 2 || len(args) > 3 {
		return arityCondition(len(args), "2-3")
	}
	var notFound Value = Nil{}
	if len(args) == 3 {
		notFound = args[2]
	}
	switch coll := args[0].(type) {
	case Map:
		if v, ok := coll.Get(args[1]); ok {
			return v
		}
	case Vector:
		if i, ok := args[1].(Int); ok {
			if v, ok := coll.Nth(int(i)); ok {
				return v
			}
		}
	case Condition:
		return coll
	}
	return notFound
}

func assoc(args []Value) Value {
	if len(args) < 3 || len(args)%2 != 1 {
		return NewCondition("assoc expects a map followed by key/value pairs, got %d arguments", len(args))
	}
	var m Map
	switch coll := args[0].(type) {
	case Map:
		m = coll
	case Nil:
		m = NewMap()
	case Condition:
		return coll
	default:
		return typeCondition("assoc", "a map", args[0])
	}
	for i := 1; i < len(args); i += 2 {
		m = m.Assoc(args[i], args[i+1])
	}
	return m
}

func typeOf(args []Value) Value {
	if len(args) != 1 {
		return arityCondition(len(args), "1")
	}
	return String(args[0].Kind().String())
}

// (condition "msg" ...) builds a Condition from the display forms of its
// arguments.
func condition(args []Value) Value {
	if len(args) == 0 {
		return arityCondition(0, ">=1")
	}
	s, _ := str(args).(String)
	return Condition{Message: string(s)}
}
