// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"strings"
)

type (
	// Token is a classified run of the source text.
	//
	// Content is always source[Span.Start:Span.End].
	Token struct {
		Span    Span
		Content string
		Kind    Kind
	}

	// TokenStream holds the Tokens of a single source, in source order.
	TokenStream []Token
)

// String is the fmt.Stringer implementation for Token.
func (t Token) String() string { return fmt.Sprintf("%s@%s%q", t.Kind, t.Span, t.Content) }

// String reassembles the source from the contents of the TokenStream.
func (ts TokenStream) String() string {
	var buffer strings.Builder
	for index := range ts {
		buffer.WriteString(ts[index].Content)
	}

	return buffer.String()
}

// Kinds lists the Kind of every Token in the TokenStream.
func (ts TokenStream) Kinds() (kinds []Kind) {
	kinds = make([]Kind, len(ts))
	for index := range ts {
		kinds[index] = ts[index].Kind
	}

	return
}

// WithoutWhitespace obtains a copy of the TokenStream lacking KindWhitespace Tokens.
//
// The Lexer always emits whitespace; consumers that do not care for it filter it here.
func (ts TokenStream) WithoutWhitespace() TokenStream {
	filtered := make(TokenStream, 0, len(ts))
	for index := range ts {
		if ts[index].Kind != KindWhitespace {
			filtered = append(filtered, ts[index])
		}
	}

	return filtered
}
