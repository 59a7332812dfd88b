package lisp

// expand hands the raw argument forms to the macro's callable and evaluates
// whatever form it returns in env. Expansion and evaluation happen in one
// step; there is no separate macroexpand.
func (p *process) expand(env *Env, m Macro, args *List) Value {
	expansion := m.fn.Invoke(args.Slice())
	if c, ok := expansion.(Condition); ok {
		return c
	}
	p.tracef("expand %s: %s", m.fn.name, Print(expansion))
	return p.eval(env, expansion)
}

// (defmacro name [params...] body...) is (def name (fn [params...] body...))
// with the closure wrapped as a Macro.
func (p *process) defmacro(env *Env, args []Value) Value {
	if len(args) < 2 {
		return arityCondition(len(args), ">=2")
	}
	name, ok := args[0].(Symbol)
	if !ok {
		return NewCondition("First argument to defmacro must be a symbol, got %s", args[0].Kind())
	}
	fnForm := list2cons(append([]Value{FormFn}, args[1:]...)...)
	var fn *Callable
	switch v := p.eval(env, fnForm).(type) {
	case *Callable:
		fn = v
	case Condition:
		return v
	default:
		return NewCondition("defmacro: fn form for %s produced %s, not a function", name.Name(), v.Kind())
	}
	fn.name = name.Name()
	defForm := NewList(FormDef, name, NewMacro(fn))
	return p.eval(env, defForm)
}
