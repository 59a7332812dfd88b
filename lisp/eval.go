package lisp

import "fmt"

// Eval evaluates form in env with default options. Language errors come
// back as Condition values; Eval itself never fails.
func Eval(form Value, env *Env) Value {
	return newProcess(Options{}).eval(env, form)
}

func (p *process) eval(env *Env, e Value) Value {
	switch form := e.(type) {
	case Symbol:
		v, err := env.Lookup(form)
		if err != nil {
			return Condition{Message: err.Error()}
		}
		return v
	case Vector:
		vals := make([]Value, 0, form.Len())
		for v := range form.All() {
			vals = append(vals, p.eval(env, v))
		}
		return NewVector(vals...)
	case Map:
		m := NewMap()
		for k, v := range form.All() {
			m = m.Assoc(p.eval(env, k), p.eval(env, v))
		}
		return m
	case *List:
		if form.IsEmpty() {
			return form
		}
		if p.depth >= p.maxDepth {
			return NewCondition("Stack overflow: evaluation depth exceeded %d", p.maxDepth)
		}
		p.depth++
		defer func() { p.depth-- }()
		p.tracef("eval[%d]: %s", p.depth, form)
		head := p.eval(env, form.First())
		return p.apply(env, head, form.Rest())
	default:
		// integers, strings, nil, callables, macros and conditions
		return e
	}
}

// apply dispatches on the evaluated head of a list form. args are the
// unevaluated tail forms.
func (p *process) apply(env *Env, head Value, args *List) Value {
	switch h := head.(type) {
	case *Callable:
		return h.Invoke(p.evalArgs(env, args))
	case LexicalEval:
		if args.Len() != 1 {
			return arityCondition(args.Len(), "1")
		}
		return p.eval(env, p.eval(env, args.First()))
	case Macro:
		return p.expand(env, h, args)
	case SpecialForm:
		return p.special(env, h, args.Slice())
	case Condition:
		return h
	default:
		return NewCondition("Execution Error: %s cannot be applied as a function", head.Kind())
	}
}

func (p *process) evalArgs(env *Env, args *List) []Value {
	vals := make([]Value, 0, args.Len())
	for a := range args.All() {
		vals = append(vals, p.eval(env, a))
	}
	return vals
}

func arityCondition(given int, expected string) Condition {
	return NewCondition("Wrong number of arguments (Given: %d, Expected: %s)", given, expected)
}

// DefinedProc is the closure built by fn: the frame it was defined in, its
// parameter names and a single body form.
type DefinedProc struct {
	p      *process
	env    *Env
	params []Symbol
	body   Value
}

// Invoke evaluates the body in a new frame per call, under the captured one.
func (d *DefinedProc) Invoke(args []Value) Value {
	env, cond := bindParams(d.env, d.params, args)
	if cond != nil {
		return cond
	}
	return d.p.eval(env, d.body)
}

func (d *DefinedProc) Params() []Symbol { return d.params }
func (d *DefinedProc) Body() Value      { return d.body }

func (d *DefinedProc) String() string {
	return fmt.Sprintf("(fn %s %s)", NewVector(symbolValues(d.params)...), Print(d.body))
}

func symbolValues(syms []Symbol) []Value {
	vals := make([]Value, len(syms))
	for i, s := range syms {
		vals[i] = s
	}
	return vals
}
