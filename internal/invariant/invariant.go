// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package invariant turns broken structural invariants inside deep or
// recursive algorithms into errors at the public API boundary.
//
// Threading errors through every flip, clip and walk would bury the
// algorithms, so they panic with Fatalf and the exported entry points recover
// with Recover.
package invariant

import "github.com/pkg/errors"

// Error is the panic payload raised by Fatalf.
type Error struct {
	err error
}

func (e Error) Error() string {
	return e.err.Error()
}

func (e Error) Unwrap() error {
	return e.err
}

// Fatalf panics with an Error carrying the formatted message and a stack.
func Fatalf(format string, args ...any) {
	panic(Error{err: errors.Errorf(format, args...)})
}

// Wrap panics with an Error wrapping err.
func Wrap(err error, format string, args ...any) {
	panic(Error{err: errors.Wrapf(err, format, args...)})
}

// Recover converts a recovered Error back into an error. Any other panic
// value is re-raised.
func Recover(r any) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(Error); ok {
		return err
	}
	panic(r)
}
