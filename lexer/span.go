// SPDX-License-Identifier: MIT
package lexer

import "fmt"

// Span is a half-open interval of byte offsets, [Start, End), into the lexed source.
type Span struct {
	Start int
	End   int
}

// Len is the number of bytes covered by the Span.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether the Span covers no bytes.
func (s Span) IsEmpty() bool { return s.End <= s.Start }

// String is the fmt.Stringer implementation for Span.
func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }
