package stats

import (
	"errors"
	"fmt"

	"github.com/rony4d/d2items/utils/bits"
)

var (
	ErrUnknownModifierKey = errors.New("unknown modifier key")
	ErrValueOutOfRange    = errors.New("modifier value does not fit its stat width")
	ErrReservedKey        = errors.New("modifier uses the list sentinel as key")
)

// UnknownKeyError is returned for a stat key with no itemstatcost row.
type UnknownKeyError struct {
	Key uint16
	Pos bits.Cursor
	Err error
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%v: %d at %s: %v", ErrUnknownModifierKey, e.Key, e.Pos, e.Err)
}

func (e *UnknownKeyError) Unwrap() error {
	return ErrUnknownModifierKey
}
