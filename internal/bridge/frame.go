package bridge

// Frame types carried on the console bridge.
const (
	FrameReady      = "ready"
	FrameInvoke     = "invoke"
	FrameResult     = "result"
	FrameRegister   = "register"
	FrameUnregister = "unregister"
)

// Frame is the wire unit of the console bridge protocol.
type Frame struct {
	Type string `json:"type"`

	// Correlation ID pairing an invoke with its result.
	ID string `json:"id,omitempty"`

	// Invoke payload.
	Fn   string `json:"fn,omitempty"`
	Args []any  `json:"args,omitempty"`

	// Result payload. Error carries either a structured code or the raw
	// script-layer message.
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`

	// Register/unregister payload.
	Fns []string `json:"fns,omitempty"`
}
