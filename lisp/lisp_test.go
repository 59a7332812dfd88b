package lisp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Lisp_Eval_returns_last(t *testing.T) {
	l, _ := newTestLisp(t)
	v, err := l.Eval("(def a 1) (def b 2) (+ a b)")
	if err != nil || !Equal(v, Int(3)) {
		t.Fatalf("Eval = %v, %v", v, err)
	}
	v, err = l.Eval("  ; nothing here\n")
	if err != nil || !Equal(v, Nil{}) {
		t.Fatalf("Eval of no forms = %v, %v", v, err)
	}
}

func Test_Lisp_Eval_parse_error_after_forms(t *testing.T) {
	l, _ := newTestLisp(t)
	v, err := l.Eval("(def a 5) a (oops")
	if !IsIncomplete(err) {
		t.Fatalf("err = %v, want incomplete", err)
	}
	if !Equal(v, Int(5)) {
		t.Fatalf("last value before the error = %s", Print(v))
	}
	if got, _ := l.Env().Lookup(Intern("a")); !Equal(got, Int(5)) {
		t.Fatal("forms before the error were not evaluated")
	}
}

func Test_Lisp_Load(t *testing.T) {
	l, out := newTestLisp(t)
	conds, err := l.Load(`
		(def greet (fn [who] (str "hello " who)))
		(println (greet "world"))
		(undefined)
		(1 2)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "hello world\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if len(conds) != 2 {
		t.Fatalf("conditions = %v", conds)
	}
	if !strings.Contains(conds[0].Message, "undefined") || !strings.Contains(conds[1].Message, "cannot be applied") {
		t.Fatalf("conditions = %v", conds)
	}

	// nothing is evaluated when the text does not parse
	conds, err = l.Load(`(println "never") (`)
	if !IsIncomplete(err) || conds != nil || strings.Contains(out.String(), "never") {
		t.Fatalf("Load of bad text = %v, %v, stdout %q", conds, err, out.String())
	}
}

func Test_Lisp_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.clj")
	src := "(defmacro unless-nil [x body] (list (quote get) {nil nil} x body))\n(def r (unless-nil 1 42))\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	l, _ := newTestLisp(t)
	conds, err := l.LoadFile(path)
	if err != nil || len(conds) != 0 {
		t.Fatalf("LoadFile = %v, %v", conds, err)
	}
	if v, _ := l.Env().Lookup(Intern("r")); !Equal(v, Int(42)) {
		t.Fatalf("r = %v", v)
	}
	if _, err := l.LoadFile(filepath.Join(t.TempDir(), "missing.clj")); err == nil {
		t.Fatal("LoadFile of a missing file succeeded")
	}
}

func Test_Lisp_separate_interpreters(t *testing.T) {
	a, _ := newTestLisp(t)
	b, _ := newTestLisp(t)
	evalWith(t, a, "(def only-a 1)")
	wantCondition(t, b, "only-a", "Unable to resolve symbol")
	evalWith(t, b, "(def + 7)")
	wantValue(t, a, "(+ 1 1)", Int(2))
}
