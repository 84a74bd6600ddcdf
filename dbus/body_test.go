// SPDX-License-Identifier: MIT
package dbus

import (
	"errors"
	"testing"

	godbus "github.com/godbus/dbus/v5"
	"github.com/google/go-cmp/cmp"

	"gitlab.com/fisherprime/dbusconsole"
)

func TestBody(t *testing.T) {
	args := dbusconsole.Args{
		"name",
		int64(4),
		1.5,
		dbusconsole.Array{int64(1), int64(2)},
		dbusconsole.Struct{"a", int64(1)},
		dbusconsole.Dict{{Key: "k", Value: dbusconsole.Array{"v"}}},
		dbusconsole.Dict{{Key: int64(1), Value: "one"}},
		dbusconsole.Dict{},
	}

	got, err := Body(args)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}

	want := []any{
		"name",
		int64(4),
		1.5,
		[]godbus.Variant{godbus.MakeVariant(int64(1)), godbus.MakeVariant(int64(2))},
		[]godbus.Variant{godbus.MakeVariant("a"), godbus.MakeVariant(int64(1))},
		map[string]godbus.Variant{"k": godbus.MakeVariant([]godbus.Variant{godbus.MakeVariant("v")})},
		map[int64]godbus.Variant{1: godbus.MakeVariant("one")},
		map[string]godbus.Variant{},
	}

	// Variants are compared through their String form.
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b godbus.Variant) bool { return a.String() == b.String() })); diff != "" {
		t.Errorf("Body() mismatch (-want +got):\n%s", diff)
	}
}

func TestBody_mixedDictKeys(t *testing.T) {
	args := dbusconsole.Args{dbusconsole.Dict{{Key: "a", Value: int64(1)}, {Key: int64(2), Value: int64(2)}}}

	if _, err := Body(args); !errors.Is(err, ErrMixedDictKeys) {
		t.Errorf("Body() error = %v, want %v", err, ErrMixedDictKeys)
	}
}

func TestBody_unsupportedDictKey(t *testing.T) {
	args := dbusconsole.Args{dbusconsole.Array{dbusconsole.Dict{{Key: true, Value: int64(1)}}}}

	_, err := Body(args)
	if !errors.Is(err, dbusconsole.ErrInvalidDictKey) {
		t.Errorf("Body() error = %v, want %v", err, dbusconsole.ErrInvalidDictKey)
	}
	if errors.Is(err, ErrMixedDictKeys) {
		t.Errorf("Body() error = %v, want no %v", err, ErrMixedDictKeys)
	}
}
