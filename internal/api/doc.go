// Package api implements the northbound HTTP surface of the Map Console
// Container.
//
// Routes are served under /api/v1 with a unified JSON envelope. The bridge
// endpoint upgrades to a websocket and hands the connection to the
// dispatcher; every other route is a plain request/response intent.
package api
