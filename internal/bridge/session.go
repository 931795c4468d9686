package bridge

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/map-console/mcc/internal/jsruntime"
)

const (
	// Time allowed to write a frame or ping to the peer.
	writeWait = 10 * time.Second

	// Maximum inbound frame size. Result frames are small; register frames
	// list at most a few hundred names.
	maxFrameSize = 64 * 1024
)

// Session is one attached browser tab. It implements jsruntime.Runtime:
// server-side components invoke script functions through it.
type Session struct {
	id          string
	hub         *Hub
	conn        *websocket.Conn
	send        chan Frame
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	connectedAt time.Time
	remoteAddr  string

	mu      sync.Mutex
	pending map[string]chan Frame
	fns     map[string]struct{}
}

// Compile-time assertion that Session implements the runtime contract.
var _ jsruntime.Runtime = (*Session)(nil)

func newSession(hub *Hub, conn *websocket.Conn, remoteAddr string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:          uuid.NewString(),
		hub:         hub,
		conn:        conn,
		send:        make(chan Frame, hub.timing.SessionSendBuffer),
		ctx:         ctx,
		cancel:      cancel,
		connectedAt: time.Now(),
		remoteAddr:  remoteAddr,
		pending:     make(map[string]chan Frame),
		fns:         make(map[string]struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// ConnectedAt returns when the session attached.
func (s *Session) ConnectedAt() time.Time {
	return s.connectedAt
}

// RemoteAddr returns the peer address.
func (s *Session) RemoteAddr() string {
	return s.remoteAddr
}

// Context returns the session lifetime context. Views bound to this session
// derive their cancellation from it.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Done is closed when the session is torn down.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Registered reports whether the tab has announced the named function.
func (s *Session) Registered(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.fns[name]
	return ok
}

// Functions returns the currently registered function names.
func (s *Session) Functions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.fns))
	for name := range s.fns {
		names = append(names, name)
	}
	return names
}

// InvokeVoid implements jsruntime.Runtime. It sends an invoke frame and
// waits for the matching result, the caller's context, session teardown, or
// the call timeout. The returned error is always classified.
func (s *Session) InvokeVoid(ctx context.Context, name string, args ...any) (err error) {
	defer func() {
		s.hub.recordInvocation(name, err)
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return jsruntime.Classify(name, ctxErr)
	}
	select {
	case <-s.ctx.Done():
		return disconnected(name)
	default:
	}

	// Fail fast while the script bundle is still registering; callers
	// retry this class after a delay.
	if !s.Registered(name) {
		return jsruntime.NotFound(name)
	}

	id := uuid.NewString()
	reply := make(chan Frame, 1)
	s.mu.Lock()
	s.pending[id] = reply
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	timer := time.NewTimer(s.hub.timing.InvokeCallTimeout)
	defer timer.Stop()

	select {
	case s.send <- Frame{Type: FrameInvoke, ID: id, Fn: name, Args: args}:
	case <-ctx.Done():
		return jsruntime.Classify(name, ctx.Err())
	case <-s.ctx.Done():
		return disconnected(name)
	case <-timer.C:
		return timedOut(name)
	}

	select {
	case res := <-reply:
		if res.OK {
			return nil
		}
		msg := res.Error
		if msg == "" {
			msg = "unspecified script error"
		}
		return jsruntime.Classify(name, errors.New(msg))
	case <-ctx.Done():
		return jsruntime.Classify(name, ctx.Err())
	case <-s.ctx.Done():
		return disconnected(name)
	case <-timer.C:
		return timedOut(name)
	}
}

func disconnected(name string) error {
	return &jsruntime.FuncError{
		Code:     jsruntime.ErrDisconnected,
		Name:     name,
		Original: errors.New("bridge session closed"),
	}
}

func timedOut(name string) error {
	return &jsruntime.FuncError{
		Code:     jsruntime.ErrTimeout,
		Name:     name,
		Original: errors.New("no answer from browser within call timeout"),
	}
}

// readPump pumps frames from the websocket connection. At most one reader
// per connection runs, in this goroutine.
func (s *Session) readPump() {
	defer s.close()

	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.hub.timing.HeartbeatTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.hub.timing.HeartbeatTimeout))
	})

	for {
		var frame Frame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("bridge: session %s read error: %v", s.id, err)
			}
			return
		}

		switch frame.Type {
		case FrameRegister:
			s.addFunctions(frame.Fns)
		case FrameUnregister:
			s.removeFunctions(frame.Fns)
		case FrameResult:
			s.resolve(frame)
		default:
			// Unknown frame types are ignored for forward compatibility.
		}
	}
}

// writePump pumps frames to the websocket connection and keeps the
// heartbeat. At most one writer per connection runs, in this goroutine.
func (s *Session) writePump() {
	ticker := time.NewTicker(s.hub.timing.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.ctx.Done():
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (s *Session) addFunctions(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		if name != "" {
			s.fns[name] = struct{}{}
		}
	}
}

func (s *Session) removeFunctions(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		delete(s.fns, name)
	}
}

// resolve routes a result frame to its waiting invocation, if any.
func (s *Session) resolve(frame Frame) {
	s.mu.Lock()
	reply, ok := s.pending[frame.ID]
	if ok {
		delete(s.pending, frame.ID)
	}
	s.mu.Unlock()
	if ok {
		reply <- frame
	}
}

// close tears the session down exactly once.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.conn.Close()
		s.hub.remove(s.id)
	})
}
