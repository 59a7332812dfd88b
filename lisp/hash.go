package lisp

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a hash of v that agrees with Equal. Callables and macros hash
// by their identity so the result is stable across runs.
func Hash(v Value) uint32 {
	h := hash64(v)
	return uint32(h) ^ uint32(h>>32)
}

func hash64(v Value) uint64 {
	d := xxhash.New()
	var buf [9]byte
	buf[0] = byte(v.Kind())
	switch x := v.(type) {
	case Int:
		binary.LittleEndian.PutUint64(buf[1:], uint64(int64(x)))
		d.Write(buf[:])
	case Symbol:
		d.Write(buf[:1])
		d.WriteString(x.Name())
	case String:
		d.Write(buf[:1])
		d.WriteString(string(x))
	case Condition:
		d.Write(buf[:1])
		d.WriteString(x.Message)
	case SpecialForm:
		buf[1] = byte(x)
		d.Write(buf[:2])
	case *Callable:
		binary.LittleEndian.PutUint64(buf[1:], x.id)
		d.Write(buf[:])
	case Macro:
		binary.LittleEndian.PutUint64(buf[1:], x.fn.id)
		d.Write(buf[:])
	case *List:
		d.Write(buf[:1])
		for e := range x.All() {
			writeHash(d, hash64(e))
		}
	case Vector:
		d.Write(buf[:1])
		for e := range x.All() {
			writeHash(d, hash64(e))
		}
	case Map:
		// entry order must not matter
		var sum uint64
		for k, val := range x.All() {
			sum += hash64(k)*31 + hash64(val)
		}
		binary.LittleEndian.PutUint64(buf[1:], sum)
		d.Write(buf[:])
	default:
		d.Write(buf[:1])
	}
	return d.Sum64()
}

func writeHash(d *xxhash.Digest, h uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], h)
	d.Write(b[:])
}
