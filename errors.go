package roaring

import (
	"errors"
	"fmt"
)

// Sentinel errors for this package's error taxonomy. Callers compare
// against these with errors.Is; public functions wrap them with context
// via fmt.Errorf("...: %w", ...).
var (
	// ErrOutOfRange is returned by NewRange when a bound lies outside
	// [0, 2^32]. Add/Discard/Contains take a uint32 and never return it.
	ErrOutOfRange = errors.New("roaring: value out of range")

	// ErrTypeMismatch completes the error taxonomy; no function in this
	// package returns it, since comparisons and set operators accept only
	// bitmap operands by type.
	ErrTypeMismatch = errors.New("roaring: type mismatch")

	// ErrValueInvalid covers a non-positive slice or range stride, an
	// out-of-range select/At/slot index, a null multi-bitmap slot passed
	// to At, or Pop on an empty bitmap.
	ErrValueInvalid = errors.New("roaring: invalid value")

	// ErrCorruptFormat is returned when a serialized buffer fails its
	// structural checks on load.
	ErrCorruptFormat = errors.New("roaring: corrupt format")

	// ErrResourceExhausted is returned when reading a bitmap file fails.
	ErrResourceExhausted = errors.New("roaring: resource exhausted")
)

func outOfRangeErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrOutOfRange)...)
}

func valueInvalidErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValueInvalid)...)
}

func corruptFormatErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrCorruptFormat)...)
}

func resourceExhaustedErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrResourceExhausted)...)
}
