// SPDX-License-Identifier: MIT
package app

import "gitlab.com/fisherprime/dbusconsole/dbus"

type (
	// Action is a request made of the App, usually by the user.
	Action interface{ isAction() }

	// Initialize loads the bus names.
	Initialize struct{}

	// Quit marks the App as done.
	Quit struct{}

	// LoadBusNames refreshes the bus names.
	LoadBusNames struct{}

	// LoadPaths loads the object paths of a service.
	LoadPaths struct{ Service string }

	// LoadMethods loads the methods of an object.
	LoadMethods struct{ Service, Path string }

	// SelectNextBusName moves the selection down the visible bus names.
	SelectNextBusName struct{}

	// SelectLastBusName moves the selection up the visible bus names.
	SelectLastBusName struct{}

	// SelectPath selects an object path of the selected bus.
	SelectPath struct{ Path string }

	// CallMethod invokes a method with arguments typed in the argument micro-language.
	CallMethod struct {
		Service   string
		Path      string
		Interface string
		Method    string
		Args      string
	}
)

type (
	// Event is the outcome of an Action, applied to the State by reduce.
	Event interface{ isEvent() }

	// BusNamesLoaded carries the names registered on the bus.
	//
	// Select asks for the first visible name to be selected when none is.
	BusNamesLoaded struct {
		Names  []string
		Select bool
	}

	// PathsLoaded carries the object paths of a service & the tree they form.
	PathsLoaded struct {
		Paths []string
		Tree  *dbus.ObjectTree
	}

	// MethodsLoaded carries the methods of an object.
	MethodsLoaded struct{ Methods []dbus.Method }

	// SelectedBusName carries a newly selected bus name.
	SelectedBusName struct{ Name string }

	// SelectedPath carries a newly selected object path.
	SelectedPath struct{ Path string }

	// MethodCalled carries a method's reply.
	MethodCalled struct{ Reply []any }

	// Failed carries the error of an Action.
	Failed struct{ Err error }

	// Quitted marks the end of the App.
	Quitted struct{}
)

func (Initialize) isAction()        {}
func (Quit) isAction()              {}
func (LoadBusNames) isAction()      {}
func (LoadPaths) isAction()         {}
func (LoadMethods) isAction()       {}
func (SelectNextBusName) isAction() {}
func (SelectLastBusName) isAction() {}
func (SelectPath) isAction()        {}
func (CallMethod) isAction()        {}

func (BusNamesLoaded) isEvent()  {}
func (PathsLoaded) isEvent()     {}
func (MethodsLoaded) isEvent()   {}
func (SelectedBusName) isEvent() {}
func (SelectedPath) isEvent()    {}
func (MethodCalled) isEvent()    {}
func (Failed) isEvent()          {}
func (Quitted) isEvent()         {}
