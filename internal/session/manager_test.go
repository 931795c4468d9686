package session

import (
	"errors"
	"testing"
	"time"
)

func console(id string, at time.Time) *Console {
	return &Console{ID: id, RemoteAddr: "127.0.0.1:1234", ConnectedAt: at}
}

func TestFirstConsoleBecomesActive(t *testing.T) {
	m := NewManager()
	now := time.Now()

	m.Register(console("s1", now))
	m.Register(console("s2", now.Add(time.Second)))

	active, err := m.Active()
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if active.ID != "s1" {
		t.Errorf("active = %q, want first registered", active.ID)
	}
}

func TestSetActive(t *testing.T) {
	m := NewManager()
	m.Register(console("s1", time.Now()))
	m.Register(console("s2", time.Now()))

	if err := m.SetActive("s2"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	active, _ := m.Active()
	if active.ID != "s2" {
		t.Errorf("active = %q, want s2", active.ID)
	}

	if err := m.SetActive("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetActive(unknown) = %v, want NOT_FOUND", err)
	}
}

func TestRemovePromotesOldest(t *testing.T) {
	m := NewManager()
	now := time.Now()
	m.Register(console("s1", now))
	m.Register(console("s2", now.Add(time.Second)))
	m.Register(console("s3", now.Add(2*time.Second)))

	m.Remove("s1")

	active, err := m.Active()
	if err != nil {
		t.Fatalf("Active failed after removal: %v", err)
	}
	if active.ID != "s2" {
		t.Errorf("active = %q, want oldest remaining s2", active.ID)
	}
}

func TestRemoveLastConsole(t *testing.T) {
	m := NewManager()
	m.Register(console("s1", time.Now()))
	m.Remove("s1")

	if _, err := m.Active(); !errors.Is(err, ErrNoActive) {
		t.Errorf("Active = %v, want NO_ACTIVE_SESSION", err)
	}
	// Removing an unknown ID is a no-op.
	m.Remove("s1")
}

func TestListOrdering(t *testing.T) {
	m := NewManager()
	now := time.Now()
	m.Register(console("newer", now.Add(time.Second)))
	m.Register(console("older", now))

	list := m.List()
	if list.ActiveSessionID != "newer" {
		t.Errorf("active = %q, want first registered", list.ActiveSessionID)
	}
	if len(list.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(list.Items))
	}
	if list.Items[0].ID != "older" || list.Items[1].ID != "newer" {
		t.Errorf("list not ordered by attach time: %q, %q", list.Items[0].ID, list.Items[1].ID)
	}
}

func TestGet(t *testing.T) {
	m := NewManager()
	m.Register(console("s1", time.Now()))

	if _, err := m.Get("s1"); err != nil {
		t.Errorf("Get(s1) failed: %v", err)
	}
	if _, err := m.Get("s2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) = %v, want NOT_FOUND", err)
	}
}
