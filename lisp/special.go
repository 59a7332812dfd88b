package lisp

// special runs one of the hard-coded forms on its unevaluated arguments.
func (p *process) special(env *Env, form SpecialForm, args []Value) Value {
	switch form {
	case FormQuote:
		return p.quote(args)
	case FormDef:
		return p.def(env, args)
	case FormDefmacro:
		return p.defmacro(env, args)
	case FormFn:
		return p.fn(env, args)
	case FormLet:
		return p.let(env, args)
	}
	return NewCondition("Execution Error: unknown special form %d", int(form))
}

// (quote x) => x
func (p *process) quote(args []Value) Value {
	if len(args) != 1 {
		return arityCondition(len(args), "1")
	}
	return args[0]
}

// (def name) or (def name expr). The binding goes into env itself, which
// is the innermost frame when def runs inside fn or let.
func (p *process) def(env *Env, args []Value) Value {
	if len(args) < 1 || len(args) > 2 {
		return arityCondition(len(args), "1-2")
	}
	sym, ok := args[0].(Symbol)
	if !ok {
		return NewCondition("First argument to def must be a symbol, got %s", args[0].Kind())
	}
	var val Value = Nil{}
	if len(args) == 2 {
		val = p.eval(env, args[1])
	}
	env.Bind(sym, val)
	return sym
}

// (fn [params...] body...)
func (p *process) fn(env *Env, args []Value) Value {
	if len(args) < 1 {
		return arityCondition(len(args), ">=1")
	}
	vec, ok := args[0].(Vector)
	if !ok {
		return NewCondition("First argument to fn must be a vector of symbols, got %s", args[0].Kind())
	}
	params, cond := paramList(vec)
	if cond != nil {
		return cond
	}
	var body Value
	switch len(args) {
	case 1:
		body = Nil{}
	case 2:
		body = args[1]
	default:
		body = list2cons(append([]Value{doBuiltin}, args[1:]...)...)
	}
	return NewCallable("fn", &DefinedProc{
		p:      p,
		env:    NewEnv(env),
		params: params,
		body:   body,
	})
}

// paramList checks a parameter vector: symbols only, with at most one '&'
// that must be followed by exactly one symbol.
func paramList(vec Vector) ([]Symbol, Value) {
	params := make([]Symbol, 0, vec.Len())
	for v := range vec.All() {
		sym, ok := v.(Symbol)
		if !ok {
			return nil, NewCondition("fn parameter must be a symbol, got %s %s", v.Kind(), Print(v))
		}
		params = append(params, sym)
	}
	for i, s := range params {
		if s == symAmp && i != len(params)-2 {
			return nil, NewCondition("& must be followed by exactly one parameter in %s", vec)
		}
	}
	return params, nil
}

// (let [sym expr ...] body?) evaluates each expr in one new frame, so later
// bindings see earlier ones.
func (p *process) let(env *Env, args []Value) Value {
	if len(args) < 1 || len(args) > 2 {
		return NewCondition("Wrong number of arguments given to let (Given: %d, Expected: 1-2)", len(args))
	}
	bindings, ok := args[0].(Vector)
	if !ok {
		return NewCondition("Bindings to let should be a vector, got %s", args[0].Kind())
	}
	if bindings.Len()%2 != 0 {
		return NewCondition("let requires an even number of forms in binding vector, got %d", bindings.Len())
	}
	local := NewEnv(env)
	for i := 0; i < bindings.Len(); i += 2 {
		name, _ := bindings.Nth(i)
		sym, ok := name.(Symbol)
		if !ok {
			return NewCondition("let binding name must be a symbol, got %s %s", name.Kind(), Print(name))
		}
		expr, _ := bindings.Nth(i + 1)
		local.Bind(sym, p.eval(local, expr))
	}
	if len(args) == 2 {
		return p.eval(local, args[1])
	}
	return Nil{}
}
