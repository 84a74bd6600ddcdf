// SPDX-License-Identifier: MIT
package lexer

// Kind identifies the class of a lexed Token.
type Kind int

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_                  Kind = iota // Consume 0 to start actual numbering at 1.
	KindNumber                     // -3.1
	KindString                     // "text" or 'text'.
	KindStructStart                // '('.
	KindStructEnd                  // ')'.
	KindArrayStart                 // '['.
	KindArrayEnd                   // ']'.
	KindDictStart                  // '{'.
	KindDictEnd                    // '}'.
	KindDictAssignment             // ':'.
	KindSeparator                  // ','.
	KindWhitespace                 // One or more spaces.
)

var kindNames = [...]string{
	KindNumber:         "Number",
	KindString:         "String",
	KindStructStart:    "StructStart",
	KindStructEnd:      "StructEnd",
	KindArrayStart:     "ArrayStart",
	KindArrayEnd:       "ArrayEnd",
	KindDictStart:      "DictStart",
	KindDictEnd:        "DictEnd",
	KindDictAssignment: "DictAssignmentOperator",
	KindSeparator:      "Separator",
	KindWhitespace:     "Whitespace",
}

// String is the fmt.Stringer implementation for Kind.
func (k Kind) String() string {
	if k < KindNumber || k > KindWhitespace {
		return "Invalid"
	}

	return kindNames[k]
}

// Opens reports whether the Kind starts a group.
func (k Kind) Opens() bool {
	return k == KindStructStart || k == KindArrayStart || k == KindDictStart
}

// Closes reports whether the Kind ends a group.
func (k Kind) Closes() bool { return k == KindStructEnd || k == KindArrayEnd || k == KindDictEnd }

// Closer obtains the Kind ending a group started by k.
//
// The zero Kind is returned for a Kind that does not start a group.
func (k Kind) Closer() Kind {
	switch k {
	case KindStructStart:
		return KindStructEnd
	case KindArrayStart:
		return KindArrayEnd
	case KindDictStart:
		return KindDictEnd
	}

	return 0
}
