package lisp

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Value is any runtime datum; forms produced by the reader are Values too.
// The set of implementations is closed: Int, Symbol, *Callable, LexicalEval,
// *List, Vector, Map, Condition, Macro, SpecialForm, String and Nil.
type Value interface {
	Kind() Kind
	// String renders the display form. Strings render without quotes.
	String() string
}

type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindSymbol
	KindString
	KindList
	KindVector
	KindMap
	KindCallable
	KindLexicalEval
	KindMacro
	KindSpecialForm
	KindCondition
)

var kindNames = [...]string{
	KindNil:         "nil",
	KindInt:         "integer",
	KindSymbol:      "symbol",
	KindString:      "string",
	KindList:        "list",
	KindVector:      "vector",
	KindMap:         "map",
	KindCallable:    "function",
	KindLexicalEval: "function",
	KindMacro:       "macro",
	KindSpecialForm: "macro",
	KindCondition:   "condition",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

type Int int32

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

type String string

func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

type Nil struct{}

func (Nil) Kind() Kind     { return KindNil }
func (Nil) String() string { return "nil" }

// Condition is an error carried as a value. It never unwinds evaluation.
type Condition struct {
	Message string
}

func NewCondition(format string, args ...any) Condition {
	return Condition{Message: fmt.Sprintf(format, args...)}
}

func (c Condition) Kind() Kind     { return KindCondition }
func (c Condition) String() string { return "#Condition[\"" + c.Message + "\"]" }

// Invoker is implemented by anything a Callable can run. Arguments arrive
// already evaluated; failures must be reported as Conditions.
type Invoker interface {
	Invoke(args []Value) Value
}

// BuiltinFunc adapts a plain Go function to Invoker.
type BuiltinFunc func(args []Value) Value

func (f BuiltinFunc) Invoke(args []Value) Value { return f(args) }

var callableIDs atomic.Uint64

// Callable is an opaque invokable value. Callables carry a unique id used
// for hashing; they never compare equal, not even to themselves.
type Callable struct {
	id      uint64
	name    string
	invoker Invoker
}

func NewCallable(name string, inv Invoker) *Callable {
	return &Callable{id: callableIDs.Add(1), name: name, invoker: inv}
}

func NewBuiltin(name string, f BuiltinFunc) *Callable {
	return NewCallable(name, f)
}

func (c *Callable) ID() uint64                { return c.id }
func (c *Callable) Name() string              { return c.name }
func (c *Callable) Invoke(args []Value) Value { return c.invoker.Invoke(args) }
func (c *Callable) Kind() Kind                { return KindCallable }
func (c *Callable) String() string            { return "#function[" + c.name + "]" }

// LexicalEval evaluates its single argument, then evaluates the result
// again in the caller's environment.
type LexicalEval struct{}

func (LexicalEval) Kind() Kind     { return KindLexicalEval }
func (LexicalEval) String() string { return "#function[lexical-eval*]" }

// Macro wraps a Callable that receives unevaluated argument forms and
// returns the form to evaluate in their place.
type Macro struct {
	fn *Callable
}

func NewMacro(fn *Callable) Macro { return Macro{fn: fn} }

func (m Macro) Callable() *Callable { return m.fn }
func (m Macro) Kind() Kind          { return KindMacro }
func (m Macro) String() string      { return "#macro[" + m.fn.name + "]" }

// SpecialForm is one of the hard-coded forms the evaluator handles itself.
type SpecialForm uint8

const (
	FormQuote SpecialForm = iota
	FormDef
	FormDefmacro
	FormFn
	FormLet
)

var formNames = [...]string{
	FormQuote:    "quote",
	FormDef:      "def",
	FormDefmacro: "defmacro",
	FormFn:       "fn",
	FormLet:      "let",
}

func (f SpecialForm) Name() string {
	if int(f) < len(formNames) {
		return formNames[f]
	}
	return "special-form(" + strconv.Itoa(int(f)) + ")"
}

func (f SpecialForm) Kind() Kind     { return KindSpecialForm }
func (f SpecialForm) String() string { return "#macro[" + f.Name() + "*]" }

// Print renders v in its printed (readable) form: strings are quoted, every
// other value renders as its display form.
func Print(v Value) string {
	if s, ok := v.(String); ok {
		return `"` + string(s) + `"`
	}
	return v.String()
}

// Equal reports whether a and b are the same value. Values of different
// kinds are never equal, and callables and macros have no equality.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Symbol:
		y, ok := b.(Symbol)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Condition:
		y, ok := b.(Condition)
		return ok && x.Message == y.Message
	case LexicalEval:
		_, ok := b.(LexicalEval)
		return ok
	case SpecialForm:
		y, ok := b.(SpecialForm)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		return ok && x.equal(y)
	case Vector:
		y, ok := b.(Vector)
		return ok && x.equal(y)
	case Map:
		y, ok := b.(Map)
		return ok && x.equal(y)
	}
	// *Callable, Macro
	return false
}
