// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

// Lexer splits argument text into a TokenStream by maximal munch over a RuleSet.
//
// A Lexer is not modified by Tokenize & may be shared between goroutines.
type Lexer struct {
	rules  *RuleSet
	logger logrus.FieldLogger

	debug      bool
	groupCheck bool
	poolSize   int
}

var defLexer = New()

// New creates a Lexer using DefaultRules with group checking enabled.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		rules:      defRules,
		logger:     logrus.New(),
		groupCheck: true,
		poolSize:   defPoolSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.rules == nil {
		l.rules = defRules
	}
	if l.logger == nil {
		l.logger = logrus.New()
	}

	return l
}

// Tokenize lexes the source using the default Lexer.
func Tokenize(source string) (TokenStream, error) { return defLexer.Tokenize(source) }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Debug obtains the debug option.
func (l *Lexer) Debug() bool { return l.debug }

// Tokenize lexes the whole source.
//
// Lexing stops at the first failure, returning an *Error & no Tokens. Whitespace Tokens
// are part of the output.
func (l *Lexer) Tokenize(source string) (stream TokenStream, err error) {
	c := NewCursor(source)
	s := l.rules.newScan()
	stream = make(TokenStream, 0, len(source)/2+1)

	// Open groups, innermost last.
	var groups []Token

	for !c.Exhausted() {
		var token Token
		if token, err = l.munch(c, s); err != nil {
			l.fail(err, c, stream)
			return nil, err
		}

		if l.groupCheck {
			if groups, err = checkGroup(groups, token); err != nil {
				l.fail(err, c, stream)
				return nil, err
			}
		}

		if l.debug {
			l.logger.Debugf("lexer emit: %s", token)
		}

		stream = append(stream, token)
		c.Advance()
	}

	if len(groups) > 0 {
		open := groups[len(groups)-1]
		err = unterminatedError(open.Span, "%q is never closed", open.Content)
		l.fail(err, c, stream)

		return nil, err
	}

	return
}

// munch grows the Cursor's window for as long as some Rule may match, then backs up to
// the longest window that fully matched.
//
// The scan only sees the rune added by each growth step.
func (l *Lexer) munch(c *Cursor, s *scan) (token Token, err error) {
	first := c.Span()
	window, _ := c.Slice()

	s.reset()
	kind, m := s.feed(window)
	if m == NoMatch {
		err = lexError(first, "no rule matches %q", window)
		return
	}

	var (
		best    Kind
		bestEnd int
		partial Kind
	)
	for m != NoMatch {
		if m == Full {
			best, bestEnd = kind, c.end
		} else {
			partial = kind
		}

		grown := c.end
		if !c.Grow() {
			break
		}
		kind, m = s.feed(c.source[grown:c.end])
	}

	if best == 0 {
		opening := c.source[first.Start:first.End]
		if partial == KindString {
			err = unterminatedError(first, "missing closing %s", opening)
			return
		}

		err = lexError(first, "incomplete %s starting with %q", partial, opening)
		return
	}

	c.Backup(bestEnd)
	span := c.Span()
	token = Token{Span: span, Content: c.source[span.Start:span.End], Kind: best}

	return
}

// checkGroup tracks `(`, `[` & `{` pairing.
func checkGroup(groups []Token, token Token) ([]Token, error) {
	switch {
	case token.Kind.Opens():
		return append(groups, token), nil
	case token.Kind.Closes():
		if len(groups) < 1 {
			return groups, lexError(token.Span, "%q closes no group", token.Content)
		}

		open := groups[len(groups)-1]
		if open.Kind.Closer() != token.Kind {
			return groups, lexError(token.Span, "%q does not close %q at %s", token.Content, open.Content, open.Span)
		}

		return groups[:len(groups)-1], nil
	}

	return groups, nil
}

func (l *Lexer) fail(err error, c *Cursor, stream TokenStream) {
	if !l.debug {
		// Skip the expensive dump.
		return
	}

	l.logger.Debugf("lexer error: %v\ncursor: %s\nlexed: %s", err, spew.Sdump(c), spew.Sdump(stream))
}
