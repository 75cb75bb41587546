package fast

import (
	"errors"
	"fmt"
)

// buffer.go provides a lightweight, non-thread-safe wrapper around byte slices
// for the byte-aligned parts of the save format (section magics, counters).
//
// The Writer simply appends to a slice; the Reader increments an index and
// refuses to read past the end instead of panicking.

// ErrShortBuffer is the kind of every read past the end of a Reader.
var ErrShortBuffer = errors.New("short buffer")

type Reader struct {
	// buf is the underlying data source.
	buf []byte
	// offset tracks the current reading position (cursor).
	offset int
}

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewReader creates a Reader to consume the provided byte slice.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter creates a Writer that appends to the provided initial slice.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends a slice of bytes (bulk write) to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// WriteUint16 appends v in little-endian order.
func (b *Writer) WriteUint16(v uint16) {
	b.buf = append(b.buf, byte(v), byte(v>>8))
}

// Read consumes and returns the next 'n' bytes from the buffer.
// The returned slice shares memory with the original buffer.
func (b *Reader) Read(n int) ([]byte, error) {
	if n < 0 || b.offset+n > len(b.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, b.offset, len(b.buf)-b.offset)
	}
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res, nil
}

// ReadByte consumes and returns a single byte.
func (b *Reader) ReadByte() (byte, error) {
	res, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return res[0], nil
}

// ReadUint16 consumes a little-endian uint16.
func (b *Reader) ReadUint16() (uint16, error) {
	res, err := b.Read(2)
	if err != nil {
		return 0, err
	}
	return uint16(res[0]) | uint16(res[1])<<8, nil
}

// Skip advances the cursor by n bytes.
func (b *Reader) Skip(n int) error {
	_, err := b.Read(n)
	return err
}

// Position returns the current cursor index of the Reader.
func (b *Reader) Position() int {
	return b.offset
}

// Rest returns the unread tail of the buffer without consuming it.
func (b *Reader) Rest() []byte {
	return b.buf[b.offset:]
}

// Bytes returns the entire underlying buffer of the Reader.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty checks if the Reader has reached the end of the buffer.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
