// Package console implements the intent dispatcher for the Map Console
// Container.
//
// The dispatcher validates northbound API intents, resolves the active
// browser console, and forwards rendering updates to its views. View
// invocations run on their own goroutines: the HTTP handler never blocks on
// the component retry loop. Every intent is audited with its outcome.
package console
