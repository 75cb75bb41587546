package bits

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is the kind of every out-of-data condition met by a Reader.
	ErrTruncatedInput = errors.New("truncated input: read past the end of the buffer")
	// ErrBitCountTooBig is returned (or panicked with, on the write side) for widths above MaxBits.
	ErrBitCountTooBig = errors.New("bit count too big")
)

// TruncatedInputError carries the full cursor state of a failed read.
type TruncatedInputError struct {
	Pos       Cursor
	Requested int
	Remaining int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input at %s: requested %d bits, %d remaining", e.Pos, e.Requested, e.Remaining)
}

func (e *TruncatedInputError) Unwrap() error {
	return ErrTruncatedInput
}
