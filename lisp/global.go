package lisp

// GlobalEnv returns a root frame holding nil, the special forms, eval and
// the core library. Printing builtins write to os.Stdout.
func GlobalEnv() *Env {
	return globalEnv(newProcess(Options{}))
}

func globalEnv(p *process) *Env {
	env := NewRootEnv()
	env.Bind(symQuote, FormQuote)
	env.Bind(symDef, FormDef)
	env.Bind(symDefmacro, FormDefmacro)
	env.Bind(symFn, FormFn)
	env.Bind(symLet, FormLet)
	env.Bind(symNil, Nil{})
	env.Bind(symEval, LexicalEval{})
	env.Bind(symDo, doBuiltin)
	for name, f := range p.builtins() {
		env.AddBuiltin(name, f)
	}
	return env
}
