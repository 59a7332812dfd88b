package lisp

import "fmt"

// Env is one lexical frame. Frames only point at their parent, so any number
// of children may share one parent and no cycles form.
type Env struct {
	dict  map[Symbol]Value
	outer *Env
}

// NewRootEnv returns an empty frame with no parent.
func NewRootEnv() *Env {
	return &Env{dict: map[Symbol]Value{}}
}

// NewEnv returns an empty frame whose parent is outer.
func NewEnv(outer *Env) *Env {
	return &Env{dict: map[Symbol]Value{}, outer: outer}
}

func (e *Env) Child() *Env { return NewEnv(e) }

func (e *Env) Parent() *Env { return e.outer }

// UnresolvedSymbolError is returned by Lookup when no frame binds a symbol.
type UnresolvedSymbolError struct {
	Symbol Symbol
}

func (err *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("Unable to resolve symbol: %s in this context", err.Symbol.Name())
}

func (e *Env) find(s Symbol) (*Env, bool) {
	for ; e != nil; e = e.outer {
		if _, ok := e.dict[s]; ok {
			return e, true
		}
	}
	return nil, false
}

// Lookup searches this frame and then each ancestor in order.
func (e *Env) Lookup(s Symbol) (Value, error) {
	found, ok := e.find(s)
	if !ok {
		return nil, &UnresolvedSymbolError{Symbol: s}
	}
	return found.dict[s], nil
}

// Bind inserts or overwrites s in this frame only; ancestors are untouched.
func (e *Env) Bind(s Symbol, v Value) {
	e.dict[s] = v
}

// AddBuiltin binds a native function under name.
func (e *Env) AddBuiltin(name string, f BuiltinFunc) {
	e.Bind(Intern(name), NewBuiltin(name, f))
}

// bindParams binds params positionally in a fresh child of outer. A param
// list of the form [a b & more] collects the remaining args into a list.
func bindParams(outer *Env, params []Symbol, args []Value) (*Env, Value) {
	env := NewEnv(outer)
	fixed, rest := params, Symbol{}
	for i, p := range params {
		if p == symAmp {
			fixed = params[:i]
			if i+1 < len(params) {
				rest = params[i+1]
			}
			break
		}
	}
	if rest.name == nil && len(args) != len(fixed) {
		return nil, arityCondition(len(args), fmt.Sprint(len(fixed)))
	}
	if rest.name != nil && len(args) < len(fixed) {
		return nil, arityCondition(len(args), fmt.Sprintf(">=%d", len(fixed)))
	}
	for i, p := range fixed {
		env.Bind(p, args[i])
	}
	if rest.name != nil {
		env.Bind(rest, NewList(args[len(fixed):]...))
	}
	return env, nil
}
