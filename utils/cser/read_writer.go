/*
Package cser is the field layer of the item format: named reads and writes over a bit stream.

Every field of an item record is read or written through Reader and Writer, which
panic with a *Failure naming the field when the stream cannot serve it (truncation,
a value too wide for its field, an invalid tag). The adapters and Catch turn that
panic back into an ordinary error, so a whole record can be coded as straight-line
field-by-field code while the public entry points still return errors.
*/
package cser

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/rony4d/d2items/utils/bits"
)

var (
	ErrValueOverflow = errors.New("value does not fit its field width")
	ErrMalformed     = errors.New("malformed record")
)

// Failure is raised by Fail and recovered by Catch.
type Failure struct {
	Field string
	Err   error
}

func (f *Failure) Error() string {
	if f.Field == "" {
		return f.Err.Error()
	}
	return fmt.Sprintf("%s: %v", f.Field, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fail aborts the record being coded.
func Fail(field string, err error) {
	panic(&Failure{Field: field, Err: err})
}

// Catch recovers a Failure into *errp. It must be deferred.
// Other error panics are reported as an unnamed Failure. Runtime errors and
// non-error values are re-raised.
func Catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *Failure:
		*errp = e
	case runtime.Error:
		panic(r)
	case error:
		*errp = &Failure{Err: fmt.Errorf("%w: %v", ErrMalformed, e)}
	default:
		panic(r)
	}
}

type Writer struct {
	BitsW *bits.Writer
}

type Reader struct {
	BitsR *bits.Reader
}

func NewWriter() *Writer {
	return &Writer{BitsW: bits.Empty()}
}

func NewReader(bb []byte) *Reader {
	return &Reader{BitsR: bits.FromBytes(bb)}
}

// WrapReader continues reading r at its current position.
func WrapReader(r *bits.Reader) *Reader {
	return &Reader{BitsR: r}
}

// Uint writes the low n bits of v. A value wider than n bits fails the field.
func (w *Writer) Uint(field string, n int, v uint64) {
	if n > bits.MaxBits {
		Fail(field, bits.ErrBitCountTooBig)
	}
	if v>>uint(n) != 0 {
		Fail(field, fmt.Errorf("%w: %d in %d bits", ErrValueOverflow, v, n))
	}
	w.BitsW.Write(n, uint32(v))
}

// Int writes a signed value stored with a bias: v+bias must fit n unsigned bits.
func (w *Writer) Int(field string, n int, v int64, bias int64) {
	stored := v + bias
	if stored < 0 {
		Fail(field, fmt.Errorf("%w: %d with bias %d", ErrValueOverflow, v, bias))
	}
	w.Uint(field, n, uint64(stored))
}

func (w *Writer) Bool(v bool) {
	w.BitsW.WriteBit(v)
}

// Zero writes n reserved zero bits.
func (w *Writer) Zero(n int) {
	for ; n > bits.MaxBits; n -= bits.MaxBits {
		w.BitsW.Write(bits.MaxBits, 0)
	}
	w.BitsW.Write(n, 0)
}

func (w *Writer) FixedBytes(v []byte) {
	w.BitsW.WriteBytes(v)
}

func (r *Reader) Uint(field string, n int) uint32 {
	v, err := r.BitsR.Read(n)
	if err != nil {
		Fail(field, err)
	}
	return v
}

func (r *Reader) Bool(field string) bool {
	return r.Uint(field, 1) != 0
}

// Skip consumes n bits without looking at them.
func (r *Reader) Skip(field string, n int) {
	for ; n > bits.MaxBits; n -= bits.MaxBits {
		r.Uint(field, bits.MaxBits)
	}
	r.Uint(field, n)
}

func (r *Reader) FixedBytes(field string, n int) []byte {
	v, err := r.BitsR.ReadBytes(n)
	if err != nil {
		Fail(field, err)
	}
	return v
}

// Align moves to the next byte boundary.
func (r *Reader) Align() {
	r.BitsR.Align()
}
