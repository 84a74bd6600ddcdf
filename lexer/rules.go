// SPDX-License-Identifier: MIT
package lexer

type (
	// Match is the outcome of testing a window against a Rule.
	Match int

	// State is a Matcher's progress through a window; the zero State precedes the first
	// byte.
	State int

	// Matcher advances a Rule's classification by one byte of the window.
	//
	// The Match returned for the window's last byte classifies the window. A NoMatch is
	// final: the Matcher is not fed again until the next window.
	Matcher func(state State, b byte) (next State, m Match)

	// Rule pairs a Matcher with the Kind it recognises.
	Rule struct {
		Kind  Kind
		Match Matcher
	}

	// RuleSet is an ordered collection of Rules; earlier Rules win ties.
	//
	// A RuleSet is immutable once built & safe for concurrent use.
	RuleSet struct {
		rules []Rule
	}

	// scan classifies a growing window against every Rule of a RuleSet, holding each
	// Rule's State between growth steps.
	scan struct {
		rules  []Rule
		states []State
		dead   []bool
	}
)

const (
	// NoMatch indicates the window can never match, however it grows.
	NoMatch Match = iota
	// Prefix indicates the window may match once it grows.
	Prefix
	// Full indicates the window matches.
	Full
)

// MatchNumber states.
const (
	numStart State = iota
	numSign
	numInt
	numDot
	numFrac
)

// MatchString states.
const (
	strStart State = iota
	strDouble
	strSingle
	strClosed
)

var digits = [256]bool{
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
}

var defRules = NewRuleSet(
	Rule{KindStructStart, Literal('(')},
	Rule{KindStructEnd, Literal(')')},
	Rule{KindArrayStart, Literal('[')},
	Rule{KindArrayEnd, Literal(']')},
	Rule{KindDictStart, Literal('{')},
	Rule{KindDictEnd, Literal('}')},
	Rule{KindDictAssignment, Literal(':')},
	Rule{KindSeparator, Literal(',')},
	Rule{KindString, MatchString},
	Rule{KindNumber, MatchNumber},
	Rule{KindWhitespace, MatchWhitespace},
)

// DefaultRules obtains the argument micro-language's RuleSet.
//
// Delimiters are tried before strings, strings before numbers & numbers before
// whitespace.
func DefaultRules() *RuleSet { return defRules }

// NewRuleSet creates a RuleSet evaluated in the order given.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{rules: make([]Rule, len(rules))}
	copy(rs.rules, rules)

	return rs
}

// Len is the number of Rules in the RuleSet.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Match classifies a window.
//
// The Kind of the first Rule to fully match is returned with Full; otherwise the Kind of
// the first Rule that may still match the grown window is returned with Prefix.
func (rs *RuleSet) Match(window string) (kind Kind, m Match) {
	if len(window) < 1 {
		return
	}

	return rs.newScan().feed(window)
}

func (rs *RuleSet) newScan() *scan {
	return &scan{
		rules:  rs.rules,
		states: make([]State, len(rs.rules)),
		dead:   make([]bool, len(rs.rules)),
	}
}

// reset prepares the scan for a new window.
func (s *scan) reset() {
	for index := range s.rules {
		s.states[index], s.dead[index] = 0, false
	}
}

// feed extends the window by text & classifies the grown window.
//
// Each Rule only sees the bytes added since the previous feed.
func (s *scan) feed(text string) (kind Kind, m Match) {
	for index := range s.rules {
		if s.dead[index] {
			continue
		}

		got := NoMatch
		for pos := 0; pos < len(text); pos++ {
			s.states[index], got = s.rules[index].Match(s.states[index], text[pos])
			if got == NoMatch {
				break
			}
		}

		switch got {
		case NoMatch:
			s.dead[index] = true
		case Full:
			if m != Full {
				kind, m = s.rules[index].Kind, Full
			}
		case Prefix:
			if m == NoMatch {
				kind, m = s.rules[index].Kind, Prefix
			}
		}
	}

	return
}

// Classify runs a Matcher over a whole window.
func Classify(matcher Matcher, window string) (m Match) {
	var state State
	for pos := 0; pos < len(window); pos++ {
		if state, m = matcher(state, window[pos]); m == NoMatch {
			return
		}
	}

	return
}

// Literal creates a Matcher for a single byte.
func Literal(want byte) Matcher {
	return func(state State, b byte) (State, Match) {
		if state == 0 && b == want {
			return 1, Full
		}

		return state, NoMatch
	}
}

// MatchNumber matches an optional `-`, digits & an optional `.` followed by digits.
func MatchNumber(state State, b byte) (State, Match) {
	switch {
	case digits[b]:
		switch state {
		case numStart, numSign, numInt:
			return numInt, Full
		case numDot, numFrac:
			return numFrac, Full
		}
	case b == '-' && state == numStart:
		return numSign, Prefix
	case b == '.' && state == numInt:
		return numDot, Prefix
	}

	return state, NoMatch
}

// MatchString matches a run enclosed by a pair of `"` or `'`.
//
// Escape sequences are unsupported; the body may contain the other quote character.
func MatchString(state State, b byte) (State, Match) {
	switch state {
	case strStart:
		switch b {
		case '"':
			return strDouble, Prefix
		case '\'':
			return strSingle, Prefix
		}
	case strDouble:
		if b == '"' {
			return strClosed, Full
		}
		return state, Prefix
	case strSingle:
		if b == '\'' {
			return strClosed, Full
		}
		return state, Prefix
	}

	// No opening quote, or content trails the closing quote.
	return state, NoMatch
}

// MatchWhitespace matches one or more spaces.
func MatchWhitespace(state State, b byte) (State, Match) {
	if b == ' ' {
		return 1, Full
	}

	return state, NoMatch
}
