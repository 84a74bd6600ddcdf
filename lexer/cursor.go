// SPDX-License-Identifier: MIT
package lexer

import "unicode/utf8"

// Cursor is a scanning window, [start, end), over an immutable source.
//
// The window moves one rune at a time so it never splits a multi-byte character. All
// operations are total: out of range requests yield an empty result or no-op.
type Cursor struct {
	source string
	start  int
	end    int
}

// NewCursor creates a Cursor bracketing the first rune of the source.
func NewCursor(source string) *Cursor {
	c := &Cursor{source: source}
	c.Grow()

	return c
}

// Slice obtains the text bracketed by the Cursor.
//
// ok is false for an empty or out of range window.
func (c *Cursor) Slice() (text string, ok bool) {
	if c.start >= c.end || c.start < 0 || c.end > len(c.source) {
		return
	}

	return c.source[c.start:c.end], true
}

// Span obtains the Cursor's current window.
func (c *Cursor) Span() Span { return Span{Start: c.start, End: c.end} }

// Grow extends the window by one rune, reporting false at the end of the source.
func (c *Cursor) Grow() bool {
	if c.end >= len(c.source) {
		return false
	}

	_, size := utf8.DecodeRuneInString(c.source[c.end:])
	c.end += size

	return true
}

// Advance starts a new window immediately after the current one.
func (c *Cursor) Advance() {
	c.start = c.end
	c.Grow()
}

// Backup shrinks the window's end to a boundary previously reached by Grow.
//
// Requests outside [start, end] are ignored.
func (c *Cursor) Backup(end int) {
	if end < c.start || end > c.end {
		return
	}
	c.end = end
}

// Exhausted reports whether the window starts at or past the end of the source.
func (c *Cursor) Exhausted() bool { return c.start >= len(c.source) }
