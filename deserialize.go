// SPDX-License-Identifier: MIT
package dbusconsole

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/dbusconsole/lexer"
)

// Deserialization errors.
//
// These are carried by a *lexer.Error holding the offending Span.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEnd   = errors.New("unexpected end of arguments")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidDictKey  = errors.New("invalid dict key")
)

// decoder walks a whitespace-free TokenStream.
type decoder struct {
	tokens lexer.TokenStream
	pos    int

	// srcLen locates errors at the end of the input.
	srcLen int
}

// Deserialize transforms argument text into Args.
//
// Lexing errors are returned as is; grammar errors are *lexer.Error values wrapping one
// of the package's sentinel errors. Empty input yields empty Args.
func Deserialize(ctx context.Context, input string, opts ...lexer.Option) (args Args, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	l := lexer.New(opts...)
	stream, err := l.Tokenize(input)
	if err != nil {
		return
	}

	d := &decoder{tokens: stream.WithoutWhitespace(), srcLen: len(input)}
	values, err := d.list(0)
	if err != nil {
		if l.Debug() {
			l.Logger().Debugf("deserialize error: %v\ntokens: %s", err, spew.Sdump(d.tokens[d.pos:]))
		}

		return nil, err
	}

	if l.Debug() {
		l.Logger().Debugf("deserialized: %+v", values)
	}

	return Args(values), nil
}

// list reads comma separated values up to, excluding, the closer Kind.
//
// The zero Kind denotes the end of the tokens.
func (d *decoder) list(closer lexer.Kind) (values []any, err error) {
	values = []any{}
	if d.peek() == closer {
		return
	}

	for {
		var value any
		if value, err = d.value(); err != nil {
			return
		}
		values = append(values, value)

		switch d.peek() {
		case lexer.KindSeparator:
			d.pos++
		case closer:
			return
		default:
			err = d.unexpected("expected `,`")
			return
		}
	}
}

func (d *decoder) value() (value any, err error) {
	if d.pos >= len(d.tokens) {
		err = d.unexpected("expected a value")
		return
	}

	token := d.tokens[d.pos]
	switch token.Kind {
	case lexer.KindNumber:
		d.pos++
		return parseNumber(token)
	case lexer.KindString:
		d.pos++
		return unquote(token), nil
	case lexer.KindStructStart:
		d.pos++
		var members []any
		if members, err = d.group(lexer.KindStructEnd); err != nil {
			return
		}
		return Struct(members), nil
	case lexer.KindArrayStart:
		d.pos++
		var elements []any
		if elements, err = d.group(lexer.KindArrayEnd); err != nil {
			return
		}
		return Array(elements), nil
	case lexer.KindDictStart:
		d.pos++
		return d.dict()
	}

	err = d.unexpected("expected a value")

	return
}

// group reads a list & consumes its closer.
func (d *decoder) group(closer lexer.Kind) (values []any, err error) {
	if values, err = d.list(closer); err != nil {
		return
	}

	if err = d.expect(closer); err != nil {
		values = nil
	}

	return
}

func (d *decoder) dict() (dict Dict, err error) {
	dict = Dict{}
	if d.peek() == lexer.KindDictEnd {
		d.pos++
		return
	}

	for {
		if d.pos >= len(d.tokens) {
			return nil, d.unexpected("expected a dict key")
		}

		var key any
		switch token := d.tokens[d.pos]; token.Kind {
		case lexer.KindDictEnd:
			// Trailing separator.
			return nil, d.unexpected("expected a dict key")
		case lexer.KindNumber:
			if key, err = parseNumber(token); err != nil {
				return nil, err
			}
		case lexer.KindString:
			key = unquote(token)
		default:
			return nil, &lexer.Error{Err: ErrInvalidDictKey, Span: token.Span, Msg: fmt.Sprintf("%s %q", token.Kind, token.Content)}
		}
		d.pos++

		if err = d.expect(lexer.KindDictAssignment); err != nil {
			return nil, err
		}

		var value any
		if value, err = d.value(); err != nil {
			return nil, err
		}
		dict = append(dict, DictEntry{Key: key, Value: value})

		switch d.peek() {
		case lexer.KindSeparator:
			d.pos++
		case lexer.KindDictEnd:
			d.pos++
			return
		default:
			return nil, d.unexpected("expected `,` or `}`")
		}
	}
}

// peek obtains the Kind of the next token, the zero Kind at the end.
func (d *decoder) peek() lexer.Kind {
	if d.pos >= len(d.tokens) {
		return 0
	}

	return d.tokens[d.pos].Kind
}

func (d *decoder) expect(kind lexer.Kind) error {
	if d.peek() != kind {
		return d.unexpected(fmt.Sprintf("expected %s", kind))
	}
	d.pos++

	return nil
}

func (d *decoder) unexpected(msg string) *lexer.Error {
	if d.pos >= len(d.tokens) {
		return &lexer.Error{Err: ErrUnexpectedEnd, Span: lexer.Span{Start: d.srcLen, End: d.srcLen}, Msg: msg}
	}

	token := d.tokens[d.pos]

	return &lexer.Error{Err: ErrUnexpectedToken, Span: token.Span, Msg: fmt.Sprintf("%s: got %q", msg, token.Content)}
}

func parseNumber(token lexer.Token) (value any, err error) {
	if strings.IndexByte(token.Content, '.') < 0 {
		value, err = strconv.ParseInt(token.Content, 10, 64)
	} else {
		value, err = strconv.ParseFloat(token.Content, 64)
	}

	if err != nil {
		return nil, &lexer.Error{Err: ErrInvalidNumber, Span: token.Span, Msg: err.Error()}
	}

	return
}

// unquote strips the enclosing quotes of a KindString Token.
func unquote(token lexer.Token) string { return token.Content[1 : len(token.Content)-1] }
