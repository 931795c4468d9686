// Package session implements the console session registry for the Map
// Console Container.
//
// The manager tracks attached browser consoles and the active selection
// that dispatcher-driven updates target. The first console to attach
// becomes active; removing the active console promotes the oldest
// remaining one.
package session
