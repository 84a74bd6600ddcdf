// SPDX-License-Identifier: MIT
package dbus

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const introspectionXML = `<!DOCTYPE node PUBLIC "-//freedesktop//DTD D-BUS Object Introspection 1.0//EN"
 "http://www.freedesktop.org/standards/dbus/1.0/introspect.dtd">
<node>
  <interface name="org.freedesktop.DBus">
    <method name="Hello">
      <arg direction="out" type="s"/>
    </method>
    <method name="RequestName">
      <arg direction="in" type="s"/>
      <arg direction="in" type="u"/>
      <arg direction="out" type="u"/>
    </method>
    <signal name="NameLost">
      <arg type="s"/>
    </signal>
  </interface>
  <interface name="org.freedesktop.DBus.Introspectable">
    <method name="Introspect">
      <arg name="data" direction="out" type="s"/>
    </method>
  </interface>
  <node name="org"/>
  <node name="test"/>
</node>`

func TestParseIntrospection(t *testing.T) {
	got, err := ParseIntrospection(introspectionXML)
	if err != nil {
		t.Fatalf("ParseIntrospection() error = %v", err)
	}

	want := &Node{
		Children: []string{"org", "test"},
		Interfaces: []Interface{
			{
				Name: "org.freedesktop.DBus",
				Methods: []Method{
					{Interface: "org.freedesktop.DBus", Name: "Hello", Out: []Arg{{Type: "s"}}},
					{
						Interface: "org.freedesktop.DBus",
						Name:      "RequestName",
						In:        []Arg{{Type: "s"}, {Type: "u"}},
						Out:       []Arg{{Type: "u"}},
					},
				},
			},
			{
				Name: "org.freedesktop.DBus.Introspectable",
				Methods: []Method{
					{Interface: "org.freedesktop.DBus.Introspectable", Name: "Introspect", Out: []Arg{{Name: "data", Type: "s"}}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseIntrospection() mismatch (-want +got):\n%s", diff)
	}

	methods := got.Methods()
	if len(methods) != 3 {
		t.Fatalf("Node.Methods() = %d methods, want 3", len(methods))
	}
	if s := methods[1].String(); s != "org.freedesktop.DBus.RequestName(su) -> (u)" {
		t.Errorf("Method.String() = %q", s)
	}
	if s := methods[1].Signature(); s != "su" {
		t.Errorf("Method.Signature() = %q, want su", s)
	}
}

func TestParseIntrospection_errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "<node><interface></node>"},
		{"missing root node", `<interface name="a"/>`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseIntrospection(tt.data); !errors.Is(err, ErrInvalidIntrospection) {
				t.Errorf("ParseIntrospection() error = %v, want %v", err, ErrInvalidIntrospection)
			}
		})
	}
}
