// Command clove runs programs written in a small Clojure-flavoured Lisp.
//
//	clove -e '(+ 1 2)'     evaluate expressions and print the last value
//	clove -f prog.clj      load a file
//	clove                  start a REPL
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/awmorgan/clove/lisp"
	"github.com/peterh/liner"
)

const (
	appName     = "clove"
	historyFile = ".clove_history"
	promptMain  = "clove=> "
	promptCont  = "   ..> "
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	expr     string
	file     string
	maxDepth int
	trace    bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := &config{}
	fs.StringVar(&cfg.expr, "e", "", "evaluate `expr` and print the last value")
	fs.StringVar(&cfg.file, "f", "", "load and evaluate `file`")
	fs.IntVar(&cfg.maxDepth, "max-depth", lisp.DefaultMaxDepth, "maximum evaluation depth")
	fs.BoolVar(&cfg.trace, "trace", os.Getenv("CLOVE_DEBUG") != "", "log each evaluated form to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.expr != "" && cfg.file != "" {
		return nil, errors.New("-e and -f are mutually exclusive")
	}
	return cfg, nil
}

// run is main without the process exit, returning the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 2
	}
	opts := lisp.Options{MaxDepth: cfg.maxDepth, Stdout: stdout}
	if cfg.trace {
		opts.Trace = stderr
	}
	l := lisp.New(opts)

	switch {
	case cfg.expr != "":
		return runExpr(l, cfg.expr, stdout, stderr)
	case cfg.file != "":
		return runFile(l, cfg.file, stderr)
	default:
		return repl(l, stdout, stderr)
	}
}

func runExpr(l *lisp.Lisp, expr string, stdout, stderr io.Writer) int {
	v, err := l.Eval(expr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	fmt.Fprintln(stdout, v)
	if _, ok := v.(lisp.Condition); ok {
		return 1
	}
	return 0
}

func runFile(l *lisp.Lisp, file string, stderr io.Writer) int {
	conds, err := l.LoadFile(file)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	for _, c := range conds {
		fmt.Fprintf(stderr, "%s: %s\n", file, c)
	}
	if len(conds) > 0 {
		return 1
	}
	return 0
}

func historyPath() string {
	if p := os.Getenv("CLOVE_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func repl(l *lisp.Lisp, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Printf("writing history: %v", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit":
				return 0
			default:
				fmt.Fprintln(stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}
		v, err := l.Eval(code)
		if err != nil {
			fmt.Fprintln(stderr, red(err.Error()))
			continue
		}
		if _, ok := v.(lisp.Condition); ok {
			fmt.Fprintln(stdout, red(v.String()))
			continue
		}
		fmt.Fprintln(stdout, lisp.Print(v))
	}
}

// readByParseProbe keeps prompting until the accumulated lines read as
// complete forms (or fail for a reason other than running out of input).
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !needsMore(src) {
			return src, true
		}
	}
}

// needsMore reports whether src ends inside an unterminated form.
func needsMore(src string) bool {
	_, err := lisp.Multiparse(src)
	return lisp.IsIncomplete(err)
}
