package lisp

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseError reports why a form could not be read. Offset is a byte offset
// into the text handed to Read; Line and Col are 1-based.
type ParseError struct {
	Offset, Line, Col int
	Msg               string
	// Incomplete is set when the input ended inside a form.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("read error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a ParseError caused by running out of
// input before a form was closed.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Incomplete
}

// ErrNoForm is returned by Read when only whitespace and comments remain.
var ErrNoForm = errors.New("no form to read")

const identPunct = "|?<>+-_=^%&$*!"

// maxNesting bounds how deeply collections may nest in one form.
const maxNesting = 10000

type reader struct {
	src   string
	pos   int
	depth int
}

// Read parses one form from the front of text. It returns the form and the
// unconsumed remainder, so a stream of forms is read by calling Read again
// on the remainder.
func Read(text string) (Value, string, error) {
	r := &reader{src: text}
	r.skipSpace()
	if r.eof() {
		return nil, text, ErrNoForm
	}
	v, err := r.read()
	if err != nil {
		return nil, text, err
	}
	return v, text[r.pos:], nil
}

// Multiparse reads every form in text.
func Multiparse(text string) ([]Value, error) {
	r := &reader{src: text}
	exprs := []Value{}
	for {
		r.skipSpace()
		if r.eof() {
			return exprs, nil
		}
		e, err := r.read()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
}

// ParseFile reads every form in the named file.
func ParseFile(filename string) ([]Value, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	exprs, err := Multiparse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return exprs, nil
}

// mustParse is for forms built into the interpreter.
func mustParse(program string) Value {
	v, _, err := Read(program)
	if err != nil {
		panic(err)
	}
	return v
}

func (r *reader) read() (Value, error) {
	r.skipSpace()
	if r.eof() {
		return nil, r.errorf(true, "unexpected end of input")
	}
	// Alternatives are tried in order; the first one whose leading
	// character matches owns the rest of the form.
	alternatives := [...]func() (Value, bool, error){
		r.readMap,
		r.readString,
		r.readSymbol,
		r.readInteger,
		r.readList,
		r.readVector,
	}
	for _, alt := range alternatives {
		v, ok, err := alt()
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
	}
	c, _ := r.peek()
	return nil, r.errorf(false, "unexpected character %q", c)
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() (rune, int) {
	if r.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(r.src[r.pos:])
}

func (r *reader) skipSpace() {
	for !r.eof() {
		switch c := r.src[r.pos]; c {
		case ' ', '\t', '\r', '\n':
			r.pos++
		case ';':
			for !r.eof() && r.src[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) errorf(incomplete bool, format string, args ...any) *ParseError {
	line, col := 1, 1
	for _, c := range r.src[:min(r.pos, len(r.src))] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{
		Offset:     r.pos,
		Line:       line,
		Col:        col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}

func isLetter(c rune) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c rune) bool  { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return isLetter(c) || strings.ContainsRune(identPunct, c)
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func (r *reader) readSymbol() (Value, bool, error) {
	c, n := r.peek()
	if !isIdentStart(c) {
		return nil, false, nil
	}
	start := r.pos
	r.pos += n
	for !r.eof() {
		c, n := r.peek()
		if !isIdentChar(c) {
			break
		}
		r.pos += n
	}
	return Intern(r.src[start:r.pos]), true, nil
}

func (r *reader) readInteger() (Value, bool, error) {
	c, _ := r.peek()
	if !isDigit(c) {
		return nil, false, nil
	}
	start := r.pos
	for !r.eof() && isDigit(rune(r.src[r.pos])) {
		r.pos++
	}
	digits := r.src[start:r.pos]
	n, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		r.pos = start
		return nil, false, r.errorf(false, "integer out of range: %s", digits)
	}
	return Int(n), true, nil
}

// readString reads up to the next double quote. There are no escapes.
func (r *reader) readString() (Value, bool, error) {
	if r.src[r.pos] != '"' {
		return nil, false, nil
	}
	start := r.pos
	end := strings.IndexByte(r.src[start+1:], '"')
	if end < 0 {
		r.pos = len(r.src)
		return nil, false, r.errorf(true, "unterminated string starting at offset %d", start)
	}
	r.pos = start + 1 + end + 1
	return String(r.src[start+1 : start+1+end]), true, nil
}

func (r *reader) enter() error {
	if r.depth >= maxNesting {
		return r.errorf(false, "forms nested more than %d deep", maxNesting)
	}
	r.depth++
	return nil
}

func (r *reader) leave() { r.depth-- }

// readSeq reads forms until close. The opening delimiter has been consumed.
func (r *reader) readSeq(open, close byte) ([]Value, error) {
	start := r.pos - 1
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()
	vals := []Value{}
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf(true, "unterminated %q starting at offset %d, expected %q", open, start, close)
		}
		if r.src[r.pos] == close {
			r.pos++
			return vals, nil
		}
		v, err := r.read()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
}

func (r *reader) readList() (Value, bool, error) {
	if r.src[r.pos] != '(' {
		return nil, false, nil
	}
	r.pos++
	vals, err := r.readSeq('(', ')')
	if err != nil {
		return nil, false, err
	}
	return list2cons(vals...), true, nil
}

func (r *reader) readVector() (Value, bool, error) {
	if r.src[r.pos] != '[' {
		return nil, false, nil
	}
	r.pos++
	vals, err := r.readSeq('[', ']')
	if err != nil {
		return nil, false, err
	}
	return NewVector(vals...), true, nil
}

// readMap reads key/value pairs; a key without a value fails on the closing
// brace since '}' starts no form.
func (r *reader) readMap() (Value, bool, error) {
	if r.src[r.pos] != '{' {
		return nil, false, nil
	}
	start := r.pos
	r.pos++
	if err := r.enter(); err != nil {
		return nil, false, err
	}
	defer r.leave()
	m := NewMap()
	for {
		r.skipSpace()
		if r.eof() {
			return nil, false, r.errorf(true, "unterminated '{' starting at offset %d, expected '}'", start)
		}
		if r.src[r.pos] == '}' {
			r.pos++
			return m, true, nil
		}
		k, err := r.read()
		if err != nil {
			return nil, false, err
		}
		v, err := r.read()
		if err != nil {
			return nil, false, err
		}
		m = m.Assoc(k, v)
	}
}
