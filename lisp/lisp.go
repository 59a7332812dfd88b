package lisp

import (
	"errors"
	"io"
)

// Options configure a Lisp. The zero value is usable.
type Options struct {
	// MaxDepth bounds nested evaluation; 0 means DefaultMaxDepth.
	MaxDepth int
	// Stdout receives output from print and println; nil means os.Stdout.
	Stdout io.Writer
	// Trace, if set, receives a line per evaluated list form.
	Trace io.Writer
}

// Lisp is an interpreter: one evaluator process and its global environment.
// It is not safe for concurrent use.
type Lisp struct {
	process *process
	env     *Env
}

func New(opts Options) *Lisp {
	p := newProcess(opts)
	return &Lisp{process: p, env: globalEnv(p)}
}

// Env returns the global environment.
func (l *Lisp) Env() *Env { return l.env }

// SetTrace starts (or, with nil, stops) evaluation tracing to w.
func (l *Lisp) SetTrace(w io.Writer) { l.process.setTrace(w) }

// EvalExpr evaluates an already read form in the global environment.
func (l *Lisp) EvalExpr(e Value) Value {
	return l.process.eval(l.env, e)
}

// Eval reads and evaluates every form in text and returns the last value,
// or Nil if text holds no forms. Reading stops at the first parse error;
// forms before it have already been evaluated.
func (l *Lisp) Eval(text string) (Value, error) {
	var last Value = Nil{}
	for {
		form, rest, err := Read(text)
		if errors.Is(err, ErrNoForm) {
			return last, nil
		}
		if err != nil {
			return last, err
		}
		last = l.EvalExpr(form)
		text = rest
	}
}

// Load evaluates every form in data for its side effects. Conditions
// returned by top level forms are collected; a parse error stops the load
// before anything is evaluated.
func (l *Lisp) Load(data string) ([]Condition, error) {
	exprs, err := Multiparse(data)
	if err != nil {
		return nil, err
	}
	return l.evalAll(exprs), nil
}

// LoadFile is Load on the contents of a file.
func (l *Lisp) LoadFile(filename string) ([]Condition, error) {
	exprs, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}
	return l.evalAll(exprs), nil
}

func (l *Lisp) evalAll(exprs []Value) []Condition {
	var conds []Condition
	for _, e := range exprs {
		if c, ok := l.EvalExpr(e).(Condition); ok {
			conds = append(conds, c)
		}
	}
	return conds
}
