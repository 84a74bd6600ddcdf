// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

// Option defines the Lexer functional option type.
type Option func(*Lexer)

const (
	// defPoolSize bounds the goroutines used by TokenizeAll.
	defPoolSize = 8
)

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithRules configures the RuleSet used for classification.
func WithRules(rules *RuleSet) Option { return func(l *Lexer) { l.rules = rules } }

// WithGroupCheck configures the validation of `()`, `[]` & `{}` pairing.
func WithGroupCheck(check bool) Option { return func(l *Lexer) { l.groupCheck = check } }

// WithPoolSize configures the worker count for TokenizeAll.
//
// Values below 1 are ignored.
func WithPoolSize(size int) Option {
	return func(l *Lexer) {
		if size > 0 {
			l.poolSize = size
		}
	}
}
