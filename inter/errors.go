package inter

import (
	"errors"
	"fmt"

	"github.com/rony4d/d2items/utils/cser"
)

// Errors of the item record codec.
var (
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrModGroupCount    = errors.New("modifier group count does not match item_lists")
	ErrBadItemListMagic = errors.New("item list does not start with JM")
	ErrTooManyItems     = errors.New("too many items for one list")
	ErrMissingField     = errors.New("required field is missing")
	ErrCompactBody      = errors.New("compact item carries a body or sockets")
	ErrSocketCount      = errors.New("socketed item count does not match the header")
	ErrBaseCodeLength   = errors.New("base code must be 4 characters")
	ErrRealmDataSize    = errors.New("realm data must be 16 bytes")
	ErrPersonalizedName = errors.New("personalized name contains a zero byte")
	ErrUnexpectedField  = errors.New("field is set but has no place in this item")
)

// InvalidEnumError is a tag outside the known values of an enumeration.
type InvalidEnumError struct {
	Enum  string
	Value uint32
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("%v: %s=%d", ErrInvalidEnumValue, e.Enum, e.Value)
}

func (e *InvalidEnumError) Unwrap() error {
	return ErrInvalidEnumValue
}

// FieldError names the item and field an item parse or write failed at.
// Socket failures nest: the parent's error wraps the child's.
type FieldError struct {
	Item  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	item := e.Item
	if item == "" {
		item = "?"
	}
	return fmt.Sprintf("item %q: %s: %v", item, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// fieldError converts a recovered field failure into a *FieldError of item base.
func fieldError(base string, err error) error {
	if err == nil {
		return nil
	}
	var f *cser.Failure
	if errors.As(err, &f) {
		return &FieldError{Item: base, Field: f.Field, Err: f.Err}
	}
	return &FieldError{Item: base, Field: "item", Err: err}
}
