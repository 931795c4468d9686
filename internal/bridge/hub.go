package bridge

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/map-console/mcc/internal/config"
	"github.com/map-console/mcc/internal/jsruntime"
	"github.com/map-console/mcc/internal/metrics"
)

// ErrFull indicates the session limit is reached.
var ErrFull = errors.New("BRIDGE_FULL")

// ErrNotFound indicates no session with the requested ID exists.
var ErrNotFound = errors.New("SESSION_NOT_FOUND")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The bridge endpoint sits behind the auth middleware; origin policy
	// is enforced there together with the bearer token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns the attached browser sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	reserved int
	timing   *config.TimingConfig
	metrics  *metrics.Metrics
}

// NewHub creates a bridge hub. m may be nil when metrics are not wired, as
// in tests.
func NewHub(timing *config.TimingConfig, m *metrics.Metrics) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		timing:   timing,
		metrics:  m,
	}
}

// Attach upgrades the request to a websocket session and starts its pumps.
// The new session is announced to the tab with a ready frame carrying its
// ID.
func (h *Hub) Attach(w http.ResponseWriter, r *http.Request) (*Session, error) {
	// Reserve the slot before the upgrade so concurrent attaches cannot
	// overshoot MaxSessions while a handshake is in flight.
	h.mu.Lock()
	if len(h.sessions)+h.reserved >= h.timing.MaxSessions {
		h.mu.Unlock()
		return nil, ErrFull
	}
	h.reserved++
	h.mu.Unlock()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.mu.Lock()
		h.reserved--
		h.mu.Unlock()
		return nil, fmt.Errorf("failed to upgrade bridge connection: %w", err)
	}

	sess := newSession(h, conn, r.RemoteAddr)

	h.mu.Lock()
	h.reserved--
	h.sessions[sess.id] = sess
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.SessionAttached()
	}

	go sess.writePump()
	go sess.readPump()

	sess.send <- Frame{Type: FrameReady, ID: sess.id}

	return sess, nil
}

// Get returns the session with the given ID.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sess, ok := h.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Len returns the number of attached sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Stop tears down all sessions.
func (h *Hub) Stop() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, sess := range h.sessions {
		sessions = append(sessions, sess)
	}
	h.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// remove drops a closed session from the registry.
func (h *Hub) remove(id string) {
	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if ok && h.metrics != nil {
		h.metrics.SessionDetached()
	}
}

// recordInvocation maps an invocation outcome onto the metrics labels.
func (h *Hub) recordInvocation(name string, err error) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordInvocation(name, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, jsruntime.ErrFuncNotFound):
		return "not_ready"
	case errors.Is(err, jsruntime.ErrCancelled):
		return "cancelled"
	case errors.Is(err, jsruntime.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}
