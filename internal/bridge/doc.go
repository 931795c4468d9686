// Package bridge implements the WebSocket bridge between the Map Console
// Container and browser consoles.
//
// Each attached browser tab is a Session. The server drives the tab by
// sending invoke frames naming a registered script function; the tab
// answers with result frames matched by correlation ID. The tab announces
// its callable functions with register frames as its script bundles load,
// which is why an invoke can race registration shortly after page load.
//
// Bridge Protocol References:
//   - Bridge Protocol §2: Frame types and correlation
//   - Bridge Protocol §3: Function registration
//   - Bridge Protocol §5: Heartbeat
package bridge
