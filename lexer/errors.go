// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
)

// Error describes a lexing failure at some Span of the source.
//
// Err is one of the package's sentinel errors, allowing errors.Is checks.
type Error struct {
	Err  error
	Span Span
	Msg  string
}

// Lexing errors.
var (
	ErrLex                 = errors.New("unrecognized input")
	ErrUnterminatedLiteral = errors.New("unterminated literal")
)

// Error is the error interface implementation for Error.
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at %s", e.Err, e.Span)
	}

	return fmt.Sprintf("%v at %s: %s", e.Err, e.Span, e.Msg)
}

// Unwrap obtains the sentinel error.
func (e *Error) Unwrap() error { return e.Err }

func lexError(span Span, format string, args ...any) *Error {
	return &Error{Err: ErrLex, Span: span, Msg: fmt.Sprintf(format, args...)}
}

func unterminatedError(span Span, format string, args ...any) *Error {
	return &Error{Err: ErrUnterminatedLiteral, Span: span, Msg: fmt.Sprintf(format, args...)}
}
