package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/map-console/mcc/internal/auth"
	"github.com/map-console/mcc/internal/bridge"
	"github.com/map-console/mcc/internal/console"
	"github.com/map-console/mcc/internal/view"
)

// RegisterRoutes registers all v1 endpoints.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	apiV1 := "/api/v1"

	// Health endpoint (no auth required)
	mux.HandleFunc(apiV1+"/health", s.handleHealth)

	if s.metricsHandler != nil {
		mux.Handle("/metrics", s.metricsHandler)
	}

	// If no auth middleware, register routes without protection.
	if s.authMiddleware == nil {
		mux.HandleFunc(apiV1+"/sessions", s.handleSessions)
		mux.HandleFunc(apiV1+"/sessions/select", s.handleSelectSession)
		mux.HandleFunc(apiV1+"/map/markers", s.handleMarkers)
		mux.HandleFunc(apiV1+"/map/pan", s.handlePan)
		mux.HandleFunc(apiV1+"/map/layer", s.handleLayer)
		mux.HandleFunc(apiV1+"/radios/", s.handleRadioEndpoints)
		mux.HandleFunc(apiV1+"/bridge", s.handleBridge)
		return
	}

	mw := s.authMiddleware

	// Read surface (view scope)
	mux.HandleFunc(apiV1+"/sessions", mw.RequireAuth(mw.RequireScope(auth.ScopeView)(s.handleSessions)))

	// Control surface (control scope)
	mux.HandleFunc(apiV1+"/sessions/select", mw.RequireAuth(mw.RequireScope(auth.ScopeControl)(s.handleSelectSession)))
	mux.HandleFunc(apiV1+"/map/markers", mw.RequireAuth(mw.RequireScope(auth.ScopeControl)(s.handleMarkers)))
	mux.HandleFunc(apiV1+"/map/pan", mw.RequireAuth(mw.RequireScope(auth.ScopeControl)(s.handlePan)))
	mux.HandleFunc(apiV1+"/map/layer", mw.RequireAuth(mw.RequireScope(auth.ScopeControl)(s.handleLayer)))
	mux.HandleFunc(apiV1+"/radios/", mw.RequireAuth(mw.RequireScope(auth.ScopeControl)(s.handleRadioEndpoints)))

	// Bridge attach (view scope; the token may arrive as a query
	// parameter since browsers cannot set websocket headers)
	mux.HandleFunc(apiV1+"/bridge", mw.RequireAuth(mw.RequireScope(auth.ScopeView)(s.handleBridge)))
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(s.startTime).Seconds()),
		"time":          time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSessions handles GET /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	WriteSuccess(w, s.dispatcher.Sessions(r.Context()))
}

// handleSelectSession handles POST /sessions/select
func (s *Server) handleSelectSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "sessionId is required")
		return
	}

	if err := s.dispatcher.SelectSession(r.Context(), req.SessionID); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"activeSessionId": req.SessionID})
}

// handleMarkers handles POST /map/markers
func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req struct {
		Markers []view.Marker `json:"markers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Malformed JSON body")
		return
	}

	if err := s.dispatcher.UpdateMarkers(r.Context(), req.Markers); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	WriteSuccess(w, map[string]int{"accepted": len(req.Markers)})
}

// handlePan handles POST /map/pan
func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req struct {
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
		Zoom int     `json:"zoom"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Malformed JSON body")
		return
	}

	if err := s.dispatcher.PanTo(r.Context(), req.Lat, req.Lon, req.Zoom); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	WriteSuccess(w, nil)
}

// handleLayer handles POST /map/layer
func (s *Server) handleLayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Malformed JSON body")
		return
	}

	if err := s.dispatcher.SetTileLayer(r.Context(), req.Name); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	WriteSuccess(w, nil)
}

// handleRadioEndpoints routes /radios/{id}/health
func (s *Server) handleRadioEndpoints(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/radios/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "health" {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	radioID := parts[0]

	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Malformed JSON body")
		return
	}

	if err := s.dispatcher.SetHealth(r.Context(), radioID, req.State); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	WriteSuccess(w, nil)
}

// handleBridge handles GET /bridge (websocket upgrade)
func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	if err := s.dispatcher.AttachBrowser(w, r); err != nil {
		if errors.Is(err, bridge.ErrFull) {
			WriteError(w, http.StatusServiceUnavailable, "BUSY", "Session limit reached")
			return
		}
		// The upgrader has already written its own failure response for
		// handshake errors; nothing more to send here.
	}
}

// writeDispatchError maps dispatcher errors onto the envelope.
func (s *Server) writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, console.ErrInvalidParameter):
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.Is(err, console.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "Session not found")
	case errors.Is(err, console.ErrNoSession):
		WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "No browser console attached")
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
