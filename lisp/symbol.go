package lisp

import "sync"

// Symbol is an interned name. Two symbols are equal iff they were interned
// from the same string, so Symbol is usable as a map key.
type Symbol struct {
	name *string
}

type symbolTable struct {
	sync.Mutex
	names map[string]*string
}

var symbols = &symbolTable{names: map[string]*string{}}

// Intern returns the unique Symbol for name.
func Intern(name string) Symbol {
	symbols.Lock()
	defer symbols.Unlock()
	if p, ok := symbols.names[name]; ok {
		return Symbol{p}
	}
	p := &name
	symbols.names[name] = p
	return Symbol{p}
}

func (s Symbol) Name() string {
	if s.name == nil {
		return ""
	}
	return *s.name
}

func (s Symbol) Kind() Kind     { return KindSymbol }
func (s Symbol) String() string { return s.Name() }

// well known symbols
var (
	symQuote    = Intern("quote")
	symDef      = Intern("def")
	symDefmacro = Intern("defmacro")
	symFn       = Intern("fn")
	symLet      = Intern("let")
	symEval     = Intern("eval")
	symDo       = Intern("do")
	symAmp      = Intern("&")
	symNil      = Intern("nil")
)
