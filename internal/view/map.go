package view

import (
	"context"

	"github.com/map-console/mcc/internal/component"
	"github.com/map-console/mcc/internal/config"
	"github.com/map-console/mcc/internal/diag"
	"github.com/map-console/mcc/internal/jsruntime"
)

// Script functions bound by the map view. The browser bundle registers them
// once the map widget has initialized.
const (
	fnUpdateMarkers = "mapView.updateMarkers"
	fnPanTo         = "mapView.panTo"
	fnSetTileLayer  = "mapView.setTileLayer"
)

// Marker is one radio position rendered on the map.
type Marker struct {
	RadioID string  `json:"radioId"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Status  string  `json:"status"`
}

// Map drives the browser map widget.
type Map struct {
	updateMarkers *component.Base
	panTo         *component.Base
	setTileLayer  *component.Base
}

// NewMap creates the map view for one session.
func NewMap(ctx context.Context, runtime jsruntime.Runtime, sinks *diag.Factory, timing *config.TimingConfig) *Map {
	return &Map{
		updateMarkers: component.NewBase(ctx, runtime, sinks, fnUpdateMarkers, timing),
		panTo:         component.NewBase(ctx, runtime, sinks, fnPanTo, timing),
		setTileLayer:  component.NewBase(ctx, runtime, sinks, fnSetTileLayer, timing),
	}
}

// UpdateMarkers redraws the radio markers. Blocks through the retry loop;
// callers spawn it when they must not wait.
func (m *Map) UpdateMarkers(markers []Marker) {
	m.updateMarkers.Invoke(markers)
}

// PanTo recenters the map.
func (m *Map) PanTo(lat, lon float64, zoom int) {
	m.panTo.Invoke(lat, lon, zoom)
}

// SetTileLayer switches the base tile layer.
func (m *Map) SetTileLayer(name string) {
	m.setTileLayer.Invoke(name)
}
