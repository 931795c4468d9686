package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/map-console/mcc/internal/view"
)

// ErrNotFound indicates a requested console session was not found.
var ErrNotFound = errors.New("NOT_FOUND")

// ErrNoActive indicates no console is attached.
var ErrNoActive = errors.New("NO_ACTIVE_SESSION")

// Console is one attached browser console with its server-side views.
type Console struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remoteAddr"`
	ConnectedAt time.Time `json:"connectedAt"`

	Views *view.Set `json:"-"`
}

// ConsoleList is the response format for GET /sessions.
type ConsoleList struct {
	ActiveSessionID string    `json:"activeSessionId"`
	Items           []Console `json:"items"`
}

// Manager manages console inventory and active selection.
type Manager struct {
	mu       sync.RWMutex
	consoles map[string]*Console
	activeID string
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		consoles: make(map[string]*Console),
	}
}

// Register adds a console. The first console becomes active.
func (m *Manager) Register(c *Console) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consoles[c.ID] = c
	if m.activeID == "" {
		m.activeID = c.ID
	}
}

// SetActive sets the active console with existence check.
func (m *Manager) SetActive(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.consoles[id]; !ok {
		return ErrNotFound
	}
	m.activeID = id
	return nil
}

// Active returns the currently active console.
func (m *Manager) Active() (*Console, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.activeID == "" {
		return nil, ErrNoActive
	}
	c, ok := m.consoles[m.activeID]
	if !ok {
		return nil, ErrNoActive
	}
	return c, nil
}

// Get returns the console with the given ID.
func (m *Manager) Get(id string) (*Console, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.consoles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Remove drops a console. If it was active, the oldest remaining console
// is promoted.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.consoles[id]; !ok {
		return
	}
	delete(m.consoles, id)

	if m.activeID != id {
		return
	}
	m.activeID = ""
	var oldest *Console
	for _, c := range m.consoles {
		if oldest == nil || c.ConnectedAt.Before(oldest.ConnectedAt) {
			oldest = c
		}
	}
	if oldest != nil {
		m.activeID = oldest.ID
	}
}

// List returns all consoles ordered by attach time.
func (m *Manager) List() *ConsoleList {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]Console, 0, len(m.consoles))
	for _, c := range m.consoles {
		items = append(items, *c)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ConnectedAt.Before(items[j].ConnectedAt)
	})

	return &ConsoleList{
		ActiveSessionID: m.activeID,
		Items:           items,
	}
}

// Len returns the number of registered consoles.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.consoles)
}
