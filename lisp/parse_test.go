package lisp

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustRead(t *testing.T, src string) Value {
	t.Helper()
	v, _, err := Read(src)
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	return v
}

func Test_Read_atoms(t *testing.T) {
	cases := []struct {
		src  string
		want Value
	}{
		{"42", Int(42)},
		{"  7  ", Int(7)},
		{"2147483647", Int(2147483647)},
		{"foo", Intern("foo")},
		{"+", Intern("+")},
		{"a-b?", Intern("a-b?")},
		{"x1", Intern("x1")},
		{`"hi there"`, String("hi there")},
		{`""`, String("")},
		{"; comment\n5", Int(5)},
	}
	for _, c := range cases {
		got := mustRead(t, c.src)
		if !Equal(got, c.want) {
			t.Fatalf("Read(%q) = %s (%s), want %s", c.src, Print(got), got.Kind(), Print(c.want))
		}
	}
}

func Test_Read_collections(t *testing.T) {
	a, b := Intern("a"), Intern("b")
	cases := []struct {
		src  string
		want Value
	}{
		{"()", EmptyList()},
		{"(1 2 3)", NewList(Int(1), Int(2), Int(3))},
		{"(a (b) [])", NewList(a, NewList(b), NewVector())},
		{"[1 \"x\" a]", NewVector(Int(1), String("x"), a)},
		{"{a 1 b [2]}", NewMap(MapEntry{a, Int(1)}, MapEntry{b, NewVector(Int(2))})},
		{"{}", NewMap()},
		{"(\n  1 ; one\n  2)", NewList(Int(1), Int(2))},
	}
	for _, c := range cases {
		got := mustRead(t, c.src)
		if !Equal(got, c.want) {
			t.Fatalf("Read(%q) = %s, want %s", c.src, got, c.want)
		}
	}
}

func Test_Read_remainder(t *testing.T) {
	text := "(def x 1) x  (+ x 2)"
	var forms []string
	for {
		v, rest, err := Read(text)
		if errors.Is(err, ErrNoForm) {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		forms = append(forms, v.String())
		text = rest
	}
	want := []string{"(def x 1)", "x", "(+ x 2)"}
	if strings.Join(forms, "|") != strings.Join(want, "|") {
		t.Fatalf("forms = %q, want %q", forms, want)
	}
}

func Test_Read_remainder_is_suffix(t *testing.T) {
	_, rest, err := Read("[1 2] tail")
	if err != nil {
		t.Fatal(err)
	}
	if rest != " tail" {
		t.Fatalf("rest = %q", rest)
	}
}

func Test_Read_token_boundaries(t *testing.T) {
	cases := []struct {
		src  string
		want Value
		rest string
	}{
		{"12cat", Int(12), "cat"},
		{"(12cat)", NewList(Int(12), Intern("cat")), ""},
		{"[1a 2]", NewVector(Int(1), Intern("a"), Int(2)), ""},
		{"héllo", Intern("h"), "éllo"},
		{"x٣", Intern("x"), "٣"},
	}
	for _, c := range cases {
		got, rest, err := Read(c.src)
		if err != nil {
			t.Fatalf("Read(%q): %v", c.src, err)
		}
		if !Equal(got, c.want) || rest != c.rest {
			t.Fatalf("Read(%q) = %s, rest %q, want %s, rest %q", c.src, Print(got), rest, Print(c.want), c.rest)
		}
	}
}

func Test_Read_nesting_limit(t *testing.T) {
	for _, open := range []string{"(", "[", "{"} {
		src := strings.Repeat(open, maxNesting+1)
		_, rest, err := Read(src)
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Incomplete {
			t.Fatalf("Read(%s x %d) err = %v, want a complete-input *ParseError", open, maxNesting+1, err)
		}
		if !strings.Contains(pe.Msg, "nested more than") || pe.Offset != maxNesting+1 {
			t.Fatalf("Read(%s x %d) = %+v", open, maxNesting+1, pe)
		}
		if rest != src {
			t.Fatal("input consumed on error")
		}
	}
	deep := strings.Repeat("[", maxNesting) + strings.Repeat("]", maxNesting)
	if _, _, err := Read(deep); err != nil {
		t.Fatalf("Read of %d nested vectors: %v", maxNesting, err)
	}
}

func Test_Read_errors(t *testing.T) {
	cases := []struct {
		src        string
		incomplete bool
		msg        string
	}{
		{"(1 2", true, "unterminated"},
		{"[1 (2)", true, "unterminated"},
		{`"abc`, true, "unterminated string"},
		{"{a 1", true, "unterminated"},
		{"{a}", false, "unexpected character"},
		{")", false, "unexpected character"},
		{"é", false, "unexpected character"},
		{"99999999999", false, "out of range"},
		{"(1 ]", false, "unexpected character"},
	}
	for _, c := range cases {
		_, rest, err := Read(c.src)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Read(%q) err = %v, want *ParseError", c.src, err)
		}
		if pe.Incomplete != c.incomplete || IsIncomplete(err) != c.incomplete {
			t.Fatalf("Read(%q) incomplete = %v, want %v", c.src, pe.Incomplete, c.incomplete)
		}
		if !strings.Contains(pe.Msg, c.msg) {
			t.Fatalf("Read(%q) msg = %q, want it to contain %q", c.src, pe.Msg, c.msg)
		}
		if rest != c.src {
			t.Fatalf("Read(%q) consumed input on error, rest = %q", c.src, rest)
		}
	}
}

func Test_Read_error_position(t *testing.T) {
	_, _, err := Read("(a\n  b\n  ])")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
	if pe.Line != 3 || pe.Col != 3 {
		t.Fatalf("position = %d:%d, want 3:3", pe.Line, pe.Col)
	}
	if !strings.HasPrefix(pe.Error(), "read error at 3:3") {
		t.Fatalf("Error() = %q", pe.Error())
	}
}

func Test_Read_empty(t *testing.T) {
	for _, src := range []string{"", "   ", "; only a comment\n"} {
		if _, _, err := Read(src); !errors.Is(err, ErrNoForm) {
			t.Fatalf("Read(%q) err = %v, want ErrNoForm", src, err)
		}
	}
}

func Test_Read_round_trip(t *testing.T) {
	srcs := []string{
		"(1 2 foo \"bar\" [a b {k \"v\"}] ())",
		"{x [1 2] y (z)}",
		"[[[]]]",
	}
	for _, src := range srcs {
		first := mustRead(t, src)
		second := mustRead(t, Print(first))
		if !Equal(first, second) {
			t.Fatalf("round trip of %q: %s != %s", src, Print(first), Print(second))
		}
	}
}

func Test_Multiparse(t *testing.T) {
	exprs, err := Multiparse("1 (a) [b] ; trailing\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(exprs) != 3 {
		t.Fatalf("got %d forms, want 3", len(exprs))
	}
	if _, err := Multiparse("1 (a"); !IsIncomplete(err) {
		t.Fatalf("err = %v, want incomplete", err)
	}
}

func Test_ParseFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.clj")
	if err := os.WriteFile(good, []byte("(def x 1)\nx\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	exprs, err := ParseFile(good)
	if err != nil || len(exprs) != 2 {
		t.Fatalf("ParseFile = %v, %v", exprs, err)
	}

	bad := filepath.Join(dir, "bad.clj")
	if err := os.WriteFile(bad, []byte("(def x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ParseFile(bad)
	if !IsIncomplete(err) || !strings.Contains(err.Error(), "bad.clj") {
		t.Fatalf("err = %v", err)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.clj")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func Test_Read_unmatched_delimiter(t *testing.T) {
	if _, _, err := Read("(1 2 3"); err == nil {
		t.Fatal("unterminated list read without error")
	}
	v, rest, err := Read("(1 2 3)")
	if err != nil || rest != "" {
		t.Fatalf("Read = %v, %q, %v", v, rest, err)
	}
	if l, ok := v.(*List); !ok || l.Len() != 3 {
		t.Fatalf("got %s", Print(v))
	}
}
