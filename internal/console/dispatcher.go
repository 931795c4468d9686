package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/map-console/mcc/internal/bridge"
	"github.com/map-console/mcc/internal/config"
	"github.com/map-console/mcc/internal/diag"
	"github.com/map-console/mcc/internal/metrics"
	"github.com/map-console/mcc/internal/session"
	"github.com/map-console/mcc/internal/view"
)

// Dispatcher routes validated API intents to the active console's views.
type Dispatcher struct {
	hub      *bridge.Hub
	sessions *session.Manager
	sinks    *diag.Factory
	audit    *diag.Logger
	timing   *config.TimingConfig
	metrics  *metrics.Metrics
}

// Compile-time assertion that Dispatcher implements DispatcherPort.
var _ DispatcherPort = (*Dispatcher)(nil)

// NewDispatcher creates a new intent dispatcher. hub may be nil when the
// bridge endpoint is not served, as in tests that register consoles
// directly.
func NewDispatcher(hub *bridge.Hub, sessions *session.Manager, sinks *diag.Factory, timing *config.TimingConfig, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		hub:      hub,
		sessions: sessions,
		sinks:    sinks,
		audit:    sinks.For("dispatcher"),
		timing:   timing,
		metrics:  m,
	}
}

// AttachBrowser upgrades the request to a bridge session, builds its views,
// and registers the console. The console is removed when the session ends.
func (d *Dispatcher) AttachBrowser(w http.ResponseWriter, r *http.Request) error {
	sess, err := d.hub.Attach(w, r)
	if err != nil {
		return err
	}

	views := view.NewSet(sess.Context(), sess, d.sinks, d.timing)
	console := &session.Console{
		ID:          sess.ID(),
		RemoteAddr:  sess.RemoteAddr(),
		ConnectedAt: sess.ConnectedAt(),
		Views:       views,
	}
	d.sessions.Register(console)

	go func() {
		<-sess.Done()
		d.sessions.Remove(sess.ID())
	}()

	return nil
}

// UpdateMarkers redraws radio markers on the active console's map.
func (d *Dispatcher) UpdateMarkers(ctx context.Context, markers []view.Marker) error {
	start := time.Now()

	if err := validateMarkers(markers); err != nil {
		d.logIntent("updateMarkers", "INVALID_PARAMETER", start)
		return err
	}

	console, err := d.sessions.Active()
	if err != nil {
		d.logIntent("updateMarkers", "NO_SESSION", start)
		return ErrNoSession
	}

	go console.Views.Map.UpdateMarkers(markers)
	d.logIntent("updateMarkers", "ACCEPTED", start)
	return nil
}

// PanTo recenters the active console's map.
func (d *Dispatcher) PanTo(ctx context.Context, lat, lon float64, zoom int) error {
	start := time.Now()

	if err := validatePosition(lat, lon); err != nil {
		d.logIntent("panTo", "INVALID_PARAMETER", start)
		return err
	}
	if zoom < 0 || zoom > 22 {
		d.logIntent("panTo", "INVALID_PARAMETER", start)
		return fmt.Errorf("%w: zoom %d outside [0, 22]", ErrInvalidParameter, zoom)
	}

	console, err := d.sessions.Active()
	if err != nil {
		d.logIntent("panTo", "NO_SESSION", start)
		return ErrNoSession
	}

	go console.Views.Map.PanTo(lat, lon, zoom)
	d.logIntent("panTo", "ACCEPTED", start)
	return nil
}

// SetTileLayer switches the active console's base tile layer.
func (d *Dispatcher) SetTileLayer(ctx context.Context, name string) error {
	start := time.Now()

	if name == "" {
		d.logIntent("setTileLayer", "INVALID_PARAMETER", start)
		return fmt.Errorf("%w: tile layer name required", ErrInvalidParameter)
	}

	console, err := d.sessions.Active()
	if err != nil {
		d.logIntent("setTileLayer", "NO_SESSION", start)
		return ErrNoSession
	}

	go console.Views.Map.SetTileLayer(name)
	d.logIntent("setTileLayer", "ACCEPTED", start)
	return nil
}

// SetHealth updates one radio's health badge on the active console.
func (d *Dispatcher) SetHealth(ctx context.Context, radioID, state string) error {
	start := time.Now()

	if radioID == "" {
		d.logIntent("setHealth", "INVALID_PARAMETER", start)
		return fmt.Errorf("%w: radio ID required", ErrInvalidParameter)
	}
	if !view.ValidHealth(state) {
		d.logIntent("setHealth", "INVALID_PARAMETER", start)
		return fmt.Errorf("%w: unknown health state %q", ErrInvalidParameter, state)
	}

	console, err := d.sessions.Active()
	if err != nil {
		d.logIntent("setHealth", "NO_SESSION", start)
		return ErrNoSession
	}

	go console.Views.Status.SetHealth(radioID, state)
	d.logIntent("setHealth", "ACCEPTED", start)
	return nil
}

// SelectSession changes which console receives dispatcher-driven updates.
func (d *Dispatcher) SelectSession(ctx context.Context, id string) error {
	start := time.Now()

	if err := d.sessions.SetActive(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			d.logIntent("selectSession", "NOT_FOUND", start)
			return ErrNotFound
		}
		d.logIntent("selectSession", "ERROR", start)
		return err
	}

	d.logIntent("selectSession", "SUCCESS", start)
	return nil
}

// Sessions lists the attached consoles.
func (d *Dispatcher) Sessions(ctx context.Context) *session.ConsoleList {
	return d.sessions.List()
}

func (d *Dispatcher) logIntent(action, outcome string, start time.Time) {
	d.audit.Action(action, outcome, time.Since(start))
	if d.metrics != nil {
		d.metrics.RecordIntent(action, outcome)
	}
}

func validateMarkers(markers []view.Marker) error {
	if len(markers) == 0 {
		return fmt.Errorf("%w: marker list must not be empty", ErrInvalidParameter)
	}
	for i, m := range markers {
		if m.RadioID == "" {
			return fmt.Errorf("%w: marker %d missing radio ID", ErrInvalidParameter, i)
		}
		if err := validatePosition(m.Lat, m.Lon); err != nil {
			return fmt.Errorf("%w (marker %d)", err, i)
		}
		if m.Status != "" && !view.ValidHealth(m.Status) {
			return fmt.Errorf("%w: marker %d has unknown status %q", ErrInvalidParameter, i, m.Status)
		}
	}
	return nil
}

func validatePosition(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %.4f outside [-90, 90]", ErrInvalidParameter, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %.4f outside [-180, 180]", ErrInvalidParameter, lon)
	}
	return nil
}
