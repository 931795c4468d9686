package console

// Ports (interfaces) for dispatcher operations.

import (
	"context"
	"errors"
	"net/http"

	"github.com/map-console/mcc/internal/session"
	"github.com/map-console/mcc/internal/view"
)

// DispatcherPort defines the minimal interface the API needs from the
// dispatcher.
type DispatcherPort interface {
	AttachBrowser(w http.ResponseWriter, r *http.Request) error
	UpdateMarkers(ctx context.Context, markers []view.Marker) error
	PanTo(ctx context.Context, lat, lon float64, zoom int) error
	SetTileLayer(ctx context.Context, name string) error
	SetHealth(ctx context.Context, radioID, state string) error
	SelectSession(ctx context.Context, id string) error
	Sessions(ctx context.Context) *session.ConsoleList
}

// ErrInvalidParameter indicates a required parameter is missing or outside
// its allowed range.
var ErrInvalidParameter = errors.New("BAD_REQUEST")

// ErrNotFound indicates a requested session was not found.
var ErrNotFound = errors.New("NOT_FOUND")

// ErrNoSession indicates no browser console is attached.
var ErrNoSession = errors.New("NO_ACTIVE_SESSION")
