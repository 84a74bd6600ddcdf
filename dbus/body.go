// SPDX-License-Identifier: MIT
package dbus

import (
	"errors"
	"fmt"

	godbus "github.com/godbus/dbus/v5"

	"gitlab.com/fisherprime/dbusconsole"
)

// Body errors.
var (
	ErrMixedDictKeys = errors.New("dict keys must share a type")
)

// Body converts decoded arguments into a method call body.
//
// Arrays become []Variant, dicts become maps of Variants keyed by their (shared) key
// type. Without a target signature a Struct cannot be typed, so it is sent as an array of
// variants (`av`). Scalars are passed unchanged.
func Body(args dbusconsole.Args) (body []any, err error) {
	body = make([]any, len(args))
	for index := range args {
		if body[index], err = convert(args[index]); err != nil {
			return nil, fmt.Errorf("argument %d: %w", index, err)
		}
	}

	return
}

func convert(value any) (any, error) {
	switch v := value.(type) {
	case dbusconsole.Array:
		return variants(v)
	case []any:
		return variants(v)
	case dbusconsole.Struct:
		return variants(v)
	case dbusconsole.Dict:
		return convertDict(v)
	}

	return value, nil
}

func variants(values []any) (list []godbus.Variant, err error) {
	list = make([]godbus.Variant, len(values))
	for index := range values {
		var value any
		if value, err = convert(values[index]); err != nil {
			return nil, err
		}
		list[index] = godbus.MakeVariant(value)
	}

	return
}

func convertDict(dict dbusconsole.Dict) (any, error) {
	if len(dict) < 1 {
		return map[string]godbus.Variant{}, nil
	}

	switch dict[0].Key.(type) {
	case string:
		return typedDict[string](dict)
	case int64:
		return typedDict[int64](dict)
	case float64:
		return typedDict[float64](dict)
	}

	return nil, fmt.Errorf("%w: %T", dbusconsole.ErrInvalidDictKey, dict[0].Key)
}

func typedDict[K string | int64 | float64](dict dbusconsole.Dict) (m map[K]godbus.Variant, err error) {
	m = make(map[K]godbus.Variant, len(dict))
	for index := range dict {
		key, ok := dict[index].Key.(K)
		if !ok {
			return nil, fmt.Errorf("%w: %T & %T", ErrMixedDictKeys, dict[0].Key, dict[index].Key)
		}

		var value any
		if value, err = convert(dict[index].Value); err != nil {
			return nil, err
		}
		m[key] = godbus.MakeVariant(value)
	}

	return
}
