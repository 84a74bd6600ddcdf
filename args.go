// SPDX-License-Identifier: MIT

// Package dbusconsole decodes & encodes the literal argument lists typed for D-Bus method
// calls.
//
// Numbers decode to int64 (no fraction) or float64, strings to string (quotes removed),
// `(...)` to Struct, `[...]` to Array & `{k: v}` to Dict.
package dbusconsole

type (
	// Args is the top-level, comma separated argument list.
	Args []any

	// Struct holds the members of a `(...)` group.
	Struct []any

	// Array holds the elements of a `[...]` group.
	Array []any

	// Dict holds the entries of a `{...}` group in source order.
	Dict []DictEntry

	// DictEntry is a single `key: value` pair.
	//
	// Keys are int64, float64 or string.
	DictEntry struct {
		Key   any
		Value any
	}
)

// Get obtains the value stored under key, comparing keys with ==.
func (d Dict) Get(key any) (value any, ok bool) {
	for index := range d {
		if d[index].Key == key {
			return d[index].Value, true
		}
	}

	return
}
