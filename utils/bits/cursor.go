package bits

import "fmt"

// Cursor is a position inside a bitstream: a byte index plus the index of the
// next bit inside that byte. Bit is always kept in [0, 8).
type Cursor struct {
	Byte int
	Bit  int
}

// CursorAt returns the cursor pointing at the given absolute bit offset.
func CursorAt(totalBits int) Cursor {
	return Cursor{Byte: totalBits / 8, Bit: totalBits % 8}
}

// TotalBits returns the absolute bit offset of the cursor.
func (c Cursor) TotalBits() int {
	return c.Byte*8 + c.Bit
}

// Aligned reports whether the cursor sits on a byte boundary.
func (c Cursor) Aligned() bool {
	return c.Bit == 0
}

// Advance moves the cursor forward by n bits, rolling overflow into Byte.
func (c *Cursor) Advance(n int) {
	c.Bit += n
	c.Byte += c.Bit / 8
	c.Bit %= 8
}

// Align rounds the cursor up to the next whole byte. An aligned cursor is left as is.
func (c *Cursor) Align() {
	if c.Bit != 0 {
		c.Byte++
		c.Bit = 0
	}
}

func (c Cursor) String() string {
	return fmt.Sprintf("byte %d bit %d", c.Byte, c.Bit)
}
