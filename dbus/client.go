// SPDX-License-Identifier: MIT

// Package dbus lists, introspects & calls D-Bus services.
package dbus

import (
	"context"
	"errors"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/dbusconsole"
)

type (
	// Client defines the D-Bus operations used by the console.
	Client interface {
		ListNames(ctx context.Context) ([]string, error)
		Paths(ctx context.Context, service string) ([]string, error)
		Methods(ctx context.Context, service, path string) ([]Method, error)
		Call(ctx context.Context, service, path, iface, method string, args dbusconsole.Args) ([]any, error)
	}

	// Conn is a Client over a godbus connection.
	Conn struct {
		conn   *godbus.Conn
		logger logrus.FieldLogger
		debug  bool

		maxPaths int
	}

	// Option defines the Conn functional option type.
	Option func(*Conn)
)

// Buses accepted by Dial.
const (
	SessionBus = "session"
	SystemBus  = "system"
)

const (
	busInterface        = "org.freedesktop.DBus"
	introspectMethod    = "org.freedesktop.DBus.Introspectable.Introspect"
	listNamesMethod     = busInterface + ".ListNames"
	defMaxPaths         = 4096
	introspectErrFormat = "introspect %s %s: %w"
)

// Client errors.
var (
	ErrUnknownBus   = errors.New("unknown bus")
	ErrCall         = errors.New("method call failed")
	ErrTooManyPaths = errors.New("object path limit reached")
)

var _ Client = (*Conn)(nil)

// Dial connects to the session or system bus.
func Dial(bus string, opts ...Option) (c *Conn, err error) {
	var conn *godbus.Conn

	switch bus {
	case SessionBus:
		conn, err = godbus.ConnectSessionBus()
	case SystemBus:
		conn, err = godbus.ConnectSystemBus()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBus, bus)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s bus: %w", bus, err)
	}

	return New(conn, opts...), nil
}

// New wraps an established connection.
func New(conn *godbus.Conn, opts ...Option) *Conn {
	c := &Conn{conn: conn, logger: logrus.New(), maxPaths: defMaxPaths}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Conn) { c.logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Conn) { c.debug = debug } }

// WithMaxPaths bounds the object paths visited by Paths.
func WithMaxPaths(limit int) Option {
	return func(c *Conn) {
		if limit > 0 {
			c.maxPaths = limit
		}
	}
}

// Close the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// ListNames lists the names registered on the bus, sorted.
func (c *Conn) ListNames(ctx context.Context) (names []string, err error) {
	if err = c.conn.BusObject().CallWithContext(ctx, listNamesMethod, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	slices.Sort(names)

	if c.debug {
		c.logger.Debugf("bus names: %v", names)
	}

	return
}

// Introspect obtains the parsed introspection data of an object.
func (c *Conn) Introspect(ctx context.Context, service, path string) (node *Node, err error) {
	if !godbus.ObjectPath(path).IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	var data string
	obj := c.conn.Object(service, godbus.ObjectPath(path))
	if err = obj.CallWithContext(ctx, introspectMethod, 0).Store(&data); err != nil {
		return nil, fmt.Errorf(introspectErrFormat, service, path, err)
	}

	if node, err = ParseIntrospection(data); err != nil {
		return nil, fmt.Errorf(introspectErrFormat, service, path, err)
	}

	return
}

// Paths lists the object paths of a service by recursive introspection.
func (c *Conn) Paths(ctx context.Context, service string) (paths []string, err error) {
	tree, err := c.objectTree(ctx, service)
	if err != nil {
		return
	}

	return tree.Paths(ctx)
}

func (c *Conn) objectTree(ctx context.Context, service string) (tree *ObjectTree, err error) {
	tree = NewObjectTree()
	queue := []*ObjectTree{tree}

	var front *ObjectTree
	for visited := 0; len(queue) > 0; visited++ {
		if visited >= c.maxPaths {
			return nil, fmt.Errorf("%w: %d", ErrTooManyPaths, c.maxPaths)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		front, queue = queue[0], queue[1:]

		var node *Node
		if node, err = c.Introspect(ctx, service, front.Path()); err != nil {
			return nil, err
		}

		for _, name := range node.Children {
			var child *ObjectTree
			if child, err = front.AddChild(name); err != nil {
				if errors.Is(err, ErrAlreadyChild) {
					continue
				}

				return nil, err
			}
			queue = append(queue, child)
		}
	}

	return
}

// Methods lists the methods exposed by an object.
func (c *Conn) Methods(ctx context.Context, service, path string) (methods []Method, err error) {
	node, err := c.Introspect(ctx, service, path)
	if err != nil {
		return
	}

	return node.Methods(), nil
}

// Call invokes a method, returning the reply body.
func (c *Conn) Call(ctx context.Context, service, path, iface, method string, args dbusconsole.Args) (reply []any, err error) {
	if !godbus.ObjectPath(path).IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	body, err := Body(args)
	if err != nil {
		return
	}

	if c.debug {
		c.logger.Debugf("call %s %s %s.%s %v", service, path, iface, method, body)
	}

	call := c.conn.Object(service, godbus.ObjectPath(path)).CallWithContext(ctx, iface+"."+method, 0, body...)
	if call.Err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", ErrCall, iface, method, call.Err)
	}

	return call.Body, nil
}
