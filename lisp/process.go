package lisp

import (
	"io"
	"log"
	"os"
)

// DefaultMaxDepth bounds nested list evaluation when Options.MaxDepth is 0.
const DefaultMaxDepth = 10000

// process is the state threaded through one evaluator: the recursion guard,
// the optional trace log and where printing builtins write. Closures keep a
// pointer to the process that created them.
type process struct {
	depth    int
	maxDepth int
	trace    *log.Logger
	stdout   io.Writer
}

func newProcess(opts Options) *process {
	p := &process{
		maxDepth: opts.MaxDepth,
		stdout:   opts.Stdout,
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	if opts.Trace != nil {
		p.setTrace(opts.Trace)
	}
	return p
}

func (p *process) setTrace(w io.Writer) {
	if w == nil {
		p.trace = nil
		return
	}
	p.trace = log.New(w, "clove: ", 0)
}

func (p *process) tracef(format string, args ...any) {
	if p.trace != nil {
		p.trace.Printf(format, args...)
	}
}
