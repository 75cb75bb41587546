package bits

// This package implements a low-level "Bit Stream" Reader and Writer.
// It allows you to write data that is not aligned to standard 8-bit byte boundaries.
//
// Bit order is LSB first: the first bit written into a byte is its bit 0, and a
// multi-bit value is laid down starting from its least significant bit. Every item
// field of the save format (9-bit stat keys, 7-bit levels, 32-bit ids) goes through here.

// MaxBits is the widest value a single Read or Write call can carry.
const MaxBits = 32

type (
	// Array is a container for the underlying byte slice that holds the bitstream.
	Array struct {
		Bytes []byte
	}

	// Writer allows writing variable numbers of bits into an Array.
	// The cursor always points at the next free bit; the last byte of Bytes is
	// the partially filled one whenever the cursor is not aligned.
	Writer struct {
		*Array
		pos Cursor
	}

	// Reader allows reading variable numbers of bits from an Array.
	Reader struct {
		*Array
		pos Cursor
	}
)

// NewWriter creates a new bitstream writer appending to the given array.
// Existing bytes are treated as fully written, so the cursor starts at their end.
func NewWriter(arr *Array) *Writer {
	return &Writer{
		Array: arr,
		pos:   Cursor{Byte: len(arr.Bytes)},
	}
}

// NewReader creates a new bitstream reader positioned at the first bit of the array.
func NewReader(arr *Array) *Reader {
	return &Reader{
		Array: arr,
	}
}

// FromBytes is a shortcut for NewReader(&Array{Bytes: b}).
func FromBytes(b []byte) *Reader {
	return NewReader(&Array{Bytes: b})
}

// Empty returns a writer over a fresh buffer.
func Empty() *Writer {
	return NewWriter(&Array{Bytes: make([]byte, 0, 32)})
}

func mask(bits int) uint64 {
	return uint64(1)<<uint(bits) - 1
}

// Position returns the writer cursor.
func (a *Writer) Position() Cursor {
	return a.pos
}

// BitLen returns the number of bits written so far.
func (a *Writer) BitLen() int {
	return a.pos.TotalBits()
}

// byteBitsFree calculates how many bits are left in the current byte (8 - offset).
func (a *Writer) byteBitsFree() int {
	return 8 - a.pos.Bit
}

// writeIntoLastByte merges the bits of 'v' into the current active byte using OR logic.
func (a *Writer) writeIntoLastByte(v uint64) {
	a.Bytes[len(a.Bytes)-1] |= byte(v << uint(a.pos.Bit))
}

// Write appends the lowest 'bits' count of integer 'v' into the bitstream.
// Example: Write(3, 5) -> writes binary '101' (3 bits).
func (a *Writer) Write(bits int, v uint32) {
	if bits > MaxBits {
		panic(ErrBitCountTooBig)
	}
	if bits <= 0 {
		return
	}
	a.write(bits, uint64(v)&mask(bits))
}

func (a *Writer) write(bits int, v uint64) {
	// At the start of a new byte, allocate a fresh zero byte.
	if a.pos.Bit == 0 {
		a.Bytes = append(a.Bytes, 0)
	}

	free := a.byteBitsFree()
	if bits <= free {
		a.writeIntoLastByte(v)
		a.pos.Advance(bits)
		return
	}

	// The value spills over: fill what is left of this byte, then write the rest.
	a.writeIntoLastByte(v & mask(free))
	a.pos.Advance(free)
	a.write(bits-free, v>>uint(free))
}

// WriteBit is shorthand for Write(1, 0|1).
func (a *Writer) WriteBit(flag bool) {
	if flag {
		a.Write(1, 1)
	} else {
		a.Write(1, 0)
	}
}

// WriteBytes writes every byte of b as an 8-bit value at the current (possibly unaligned) position.
func (a *Writer) WriteBytes(b []byte) {
	for _, v := range b {
		a.Write(8, uint32(v))
	}
}

// Align pads the current byte with zero bits so that the next write starts a new byte.
func (a *Writer) Align() {
	a.pos.Align()
}

// Concat byte-aligns the writer and appends the whole buffer of other,
// advancing the cursor by other's cursor position.
func (a *Writer) Concat(other *Writer) {
	a.Align()
	a.Bytes = append(a.Bytes, other.Bytes...)
	a.pos.Advance(other.pos.TotalBits())
}

// ConcatUnaligned appends exactly the bits written into other, without introducing padding.
// Full bytes are replayed 8 bits at a time, followed by the partial tail byte.
func (a *Writer) ConcatUnaligned(other *Writer) {
	full := other.pos.Byte
	for i := 0; i < full; i++ {
		a.Write(8, uint32(other.Bytes[i]))
	}
	if other.pos.Bit > 0 {
		a.Write(other.pos.Bit, uint32(other.Bytes[full]))
	}
}

// Position returns the reader cursor.
func (a *Reader) Position() Cursor {
	return a.pos
}

// byteBitsFree returns how many unread bits remain in the current byte being read.
func (a *Reader) byteBitsFree() int {
	return 8 - a.pos.Bit
}

// Read extracts 'bits' count from the stream and returns them as an integer.
// It advances the cursor. Reading past the end of the buffer returns a
// *TruncatedInputError and leaves the cursor untouched.
func (a *Reader) Read(bits int) (uint32, error) {
	if bits <= 0 {
		return 0, nil
	}
	if bits > MaxBits {
		return 0, ErrBitCountTooBig
	}
	if left := a.NonReadBits(); bits > left {
		return 0, &TruncatedInputError{Pos: a.pos, Requested: bits, Remaining: left}
	}
	return uint32(a.read(bits)), nil
}

func (a *Reader) read(bits int) (v uint64) {
	free := a.byteBitsFree()

	// Case 1: All requested bits are inside the current byte.
	if bits <= free {
		cur := uint64(a.Bytes[a.pos.Byte])
		v = (cur >> uint(a.pos.Bit)) & mask(bits)
		a.pos.Advance(bits)
		return v
	}

	// Case 2: The requested bits span across bytes.
	// Read what's left in the current byte, then the rest from the next byte(s).
	v = uint64(a.Bytes[a.pos.Byte]) >> uint(a.pos.Bit)
	a.pos.Advance(free)
	rest := a.read(bits - free)
	return v | rest<<uint(free)
}

// ReadBit reads a single bit as a flag.
func (a *Reader) ReadBit() (bool, error) {
	v, err := a.Read(1)
	return v != 0, err
}

// ReadBytes reads n consecutive 8-bit values starting at the current (possibly unaligned) position.
func (a *Reader) ReadBytes(n int) ([]byte, error) {
	if left := a.NonReadBits(); n*8 > left {
		return nil, &TruncatedInputError{Pos: a.pos, Requested: n * 8, Remaining: left}
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(a.read(8))
	}
	return out, nil
}

// View allows "peeking" at the next 'bits' without advancing the cursor state.
func (a *Reader) View(bits int) (uint32, error) {
	cp := *a
	return cp.Read(bits)
}

// Align skips the rest of the current byte when the cursor sits mid-byte.
func (a *Reader) Align() {
	a.pos.Align()
}

// NonReadBytes returns the number of bytes the cursor has not fully passed yet.
func (a *Reader) NonReadBytes() int {
	if n := len(a.Bytes) - a.pos.Byte; n > 0 {
		return n
	}
	return 0
}

// NonReadBits calculates the total number of individual unread bits remaining.
func (a *Reader) NonReadBits() int {
	if n := len(a.Bytes)*8 - a.pos.TotalBits(); n > 0 {
		return n
	}
	return 0
}
