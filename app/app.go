// SPDX-License-Identifier: MIT

// Package app holds the console's state & the reducer driving it.
//
// An Action is turned into an Event, performing any D-Bus I/O, and the Event is applied
// to the State. Applying an Event may yield a follow-up Action.
package app

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/dbusconsole"
	"gitlab.com/fisherprime/dbusconsole/dbus"
	"gitlab.com/fisherprime/dbusconsole/lexer"
)

type (
	// Focus identifies the frame receiving input.
	Focus int

	// State is the console's data.
	State struct {
		BusNames []string
		Paths    []string
		// PathTree holds Paths by segment.
		PathTree     *dbus.ObjectTree
		Methods      []dbus.Method
		SelectedBus  string
		SelectedPath string

		// FilterAliases hides unique connection names (":1.42").
		FilterAliases bool
		Focus         Focus

		// Reply holds the last method call's reply.
		Reply []any
		// Err holds the last failure; a *lexer.Error carries the argument span to
		// highlight.
		Err  error
		Done bool
	}

	// App drives a State through Actions.
	App struct {
		State

		client    dbus.Client
		logger    logrus.FieldLogger
		lexerOpts []lexer.Option
	}

	// Option defines the App functional option type.
	Option func(*App)
)

// Focusable frames.
const (
	FocusBusFrame Focus = iota
	FocusPathFrame
	FocusMethodFrame
)

// maxChain bounds the follow-up Actions of a single Dispatch.
const maxChain = 16

// uniqueName matches unique connection names, e.g. ":1.42".
var uniqueName = regexp.MustCompile(`^:\d+\.\d+$`)

// New instantiates an App over a dbus.Client.
func New(client dbus.Client, opts ...Option) *App {
	a := &App{
		State:  State{FilterAliases: true, Focus: FocusBusFrame},
		client: client,
		logger: logrus.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(a *App) { a.logger = logger } }

// WithFilterAliases configures the hiding of unique connection names.
func WithFilterAliases(filter bool) Option {
	return func(a *App) { a.FilterAliases = filter }
}

// WithLexerOptions configures the lexing of method arguments.
func WithLexerOptions(opts ...lexer.Option) Option {
	return func(a *App) { a.lexerOpts = append(a.lexerOpts, opts...) }
}

// Dispatch applies an Action & the follow-up Actions it causes.
func (a *App) Dispatch(ctx context.Context, action Action) {
	for chain := 0; action != nil; chain++ {
		if chain >= maxChain {
			a.logger.Warnf("app: dropping follow-up action %T", action)
			return
		}

		a.logger.Debugf("app: action %T %+v", action, action)
		action = a.reduce(a.perform(ctx, action))
	}
}

// VisibleBusNames lists the bus names, without unique connection names when filtering.
func (a *App) VisibleBusNames() []string {
	if !a.FilterAliases {
		return a.BusNames
	}

	visible := make([]string, 0, len(a.BusNames))
	for _, name := range a.BusNames {
		if !uniqueName.MatchString(name) {
			visible = append(visible, name)
		}
	}

	return visible
}

// perform turns an Action into an Event.
func (a *App) perform(ctx context.Context, action Action) Event {
	switch act := action.(type) {
	case Initialize:
		event := a.perform(ctx, LoadBusNames{})
		if loaded, ok := event.(BusNamesLoaded); ok {
			loaded.Select = true
			return loaded
		}
		return event
	case Quit:
		return Quitted{}
	case LoadBusNames:
		names, err := a.client.ListNames(ctx)
		if err != nil {
			return Failed{Err: err}
		}
		return BusNamesLoaded{Names: names}
	case LoadPaths:
		paths, err := a.client.Paths(ctx, act.Service)
		if err != nil {
			return Failed{Err: err}
		}

		tree := dbus.NewObjectTree()
		for _, path := range paths {
			if _, err = tree.Insert(path); err != nil {
				return Failed{Err: err}
			}
		}
		return PathsLoaded{Paths: paths, Tree: tree}
	case LoadMethods:
		methods, err := a.client.Methods(ctx, act.Service, act.Path)
		if err != nil {
			return Failed{Err: err}
		}
		return MethodsLoaded{Methods: methods}
	case SelectNextBusName:
		return a.step(1)
	case SelectLastBusName:
		return a.step(-1)
	case SelectPath:
		if a.PathTree == nil {
			return Failed{Err: fmt.Errorf("(%s) %w", act.Path, dbus.ErrNotFound)}
		}
		if _, err := a.PathTree.Locate(act.Path); err != nil {
			return Failed{Err: err}
		}
		return SelectedPath{Path: act.Path}
	case CallMethod:
		return a.call(ctx, act)
	}

	return nil
}

// step moves the bus selection by delta over the visible names.
//
// With no selection the first name is selected; moving past either end is a no-op.
func (a *App) step(delta int) Event {
	visible := a.VisibleBusNames()
	if len(visible) < 1 {
		return nil
	}

	index := slices.Index(visible, a.SelectedBus)
	if index < 0 {
		return SelectedBusName{Name: visible[0]}
	}

	next := index + delta
	if next < 0 || next >= len(visible) {
		return nil
	}

	return SelectedBusName{Name: visible[next]}
}

func (a *App) call(ctx context.Context, act CallMethod) Event {
	opts := append([]lexer.Option{lexer.WithLogger(a.logger)}, a.lexerOpts...)

	args, err := dbusconsole.Deserialize(ctx, act.Args, opts...)
	if err != nil {
		return Failed{Err: err}
	}

	reply, err := a.client.Call(ctx, act.Service, act.Path, act.Interface, act.Method, args)
	if err != nil {
		return Failed{Err: err}
	}

	return MethodCalled{Reply: reply}
}

// reduce applies an Event to the State, returning any follow-up Action.
func (a *App) reduce(event Event) Action {
	switch ev := event.(type) {
	case BusNamesLoaded:
		a.BusNames, a.Err = ev.Names, nil
		if ev.Select && a.SelectedBus == "" {
			return SelectNextBusName{}
		}
	case PathsLoaded:
		a.Paths, a.PathTree, a.Err = ev.Paths, ev.Tree, nil
	case MethodsLoaded:
		a.Methods, a.Err = ev.Methods, nil
	case SelectedBusName:
		a.SelectedBus, a.SelectedPath = ev.Name, ""
		a.Paths, a.PathTree, a.Methods = nil, nil, nil

		return LoadPaths{Service: ev.Name}
	case SelectedPath:
		a.SelectedPath, a.Methods = ev.Path, nil

		return LoadMethods{Service: a.SelectedBus, Path: ev.Path}
	case MethodCalled:
		a.Reply, a.Err = ev.Reply, nil
	case Failed:
		a.logger.Warnf("app: %v", ev.Err)
		a.Err = ev.Err
	case Quitted:
		a.Done = true
	}

	return nil
}
