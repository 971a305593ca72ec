package symbols

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation reports that the table cannot obtain storage or ids.
	ErrAllocation = errors.New("symbol table allocation failed")
	// ErrNameTooLong reports an identifier longer than Limits.MaxName.
	ErrNameTooLong = errors.New("name too long")
	// ErrTypeTooLong reports a type tag longer than Limits.MaxType.
	ErrTypeTooLong = errors.New("type too long")
	// ErrValueTooLong reports a canonical value longer than Limits.MaxValue.
	ErrValueTooLong = errors.New("value too long")
	// ErrInvalidName reports an empty identifier.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidScope reports a negative scope level.
	ErrInvalidScope = errors.New("invalid scope level")
)

func tooLong(sentinel error, what string, n, limit int) error {
	return fmt.Errorf("%w: %q has %d characters (max %d)", sentinel, what, n, limit)
}
