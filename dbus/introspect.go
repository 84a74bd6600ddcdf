// SPDX-License-Identifier: MIT
package dbus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

type (
	// Node is the parsed introspection data of a single object path.
	Node struct {
		// Children holds the relative names of child nodes.
		Children   []string
		Interfaces []Interface
	}

	// Interface is an introspected D-Bus interface.
	Interface struct {
		Name    string
		Methods []Method
	}

	// Method is an introspected D-Bus method.
	Method struct {
		Interface string
		Name      string
		In        []Arg
		Out       []Arg
	}

	// Arg is a named, typed method argument.
	Arg struct {
		Name string
		Type string
	}
)

// Introspection errors.
var (
	ErrInvalidIntrospection = errors.New("invalid introspection data")
)

// ParseIntrospection reads the XML returned by org.freedesktop.DBus.Introspectable.
func ParseIntrospection(data string) (node *Node, err error) {
	doc := etree.NewDocument()
	if err = doc.ReadFromString(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntrospection, err)
	}

	root := doc.SelectElement("node")
	if root == nil {
		return nil, fmt.Errorf("%w: missing root node", ErrInvalidIntrospection)
	}

	node = &Node{}
	for _, child := range root.SelectElements("node") {
		if name := child.SelectAttrValue("name", ""); name != "" {
			node.Children = append(node.Children, name)
		}
	}

	for _, ifaceElem := range root.SelectElements("interface") {
		iface := Interface{Name: ifaceElem.SelectAttrValue("name", "")}

		for _, methodElem := range ifaceElem.SelectElements("method") {
			method := Method{Interface: iface.Name, Name: methodElem.SelectAttrValue("name", "")}

			for _, argElem := range methodElem.SelectElements("arg") {
				arg := Arg{
					Name: argElem.SelectAttrValue("name", ""),
					Type: argElem.SelectAttrValue("type", ""),
				}

				// Method arguments default to "in".
				if argElem.SelectAttrValue("direction", "in") == "out" {
					method.Out = append(method.Out, arg)
					continue
				}
				method.In = append(method.In, arg)
			}

			iface.Methods = append(iface.Methods, method)
		}

		node.Interfaces = append(node.Interfaces, iface)
	}

	return
}

// Methods lists the methods of every interface of the Node.
func (n *Node) Methods() (methods []Method) {
	for index := range n.Interfaces {
		methods = append(methods, n.Interfaces[index].Methods...)
	}

	return
}

// Signature obtains the D-Bus signature of the Method's input.
func (m Method) Signature() string { return signature(m.In) }

// String is the fmt.Stringer implementation for Method.
func (m Method) String() string {
	var buffer strings.Builder
	fmt.Fprintf(&buffer, "%s.%s(%s)", m.Interface, m.Name, signature(m.In))
	if len(m.Out) > 0 {
		fmt.Fprintf(&buffer, " -> (%s)", signature(m.Out))
	}

	return buffer.String()
}

func signature(args []Arg) string {
	var buffer strings.Builder
	for index := range args {
		buffer.WriteString(args[index].Type)
	}

	return buffer.String()
}
