package view

import (
	"context"

	"github.com/map-console/mcc/internal/component"
	"github.com/map-console/mcc/internal/config"
	"github.com/map-console/mcc/internal/diag"
	"github.com/map-console/mcc/internal/jsruntime"
)

const fnSetHealth = "statusPanel.setHealth"

// Radio health states shown on the status panel.
const (
	HealthOnline   = "online"
	HealthDegraded = "degraded"
	HealthOffline  = "offline"
)

// StatusPanel drives the per-radio health badges.
type StatusPanel struct {
	setHealth *component.Base
}

// NewStatusPanel creates the status panel view for one session.
func NewStatusPanel(ctx context.Context, runtime jsruntime.Runtime, sinks *diag.Factory, timing *config.TimingConfig) *StatusPanel {
	return &StatusPanel{
		setHealth: component.NewBase(ctx, runtime, sinks, fnSetHealth, timing),
	}
}

// SetHealth updates one radio's health badge.
func (p *StatusPanel) SetHealth(radioID, state string) {
	p.setHealth.Invoke(radioID, state)
}

// ValidHealth reports whether state is a known health state.
func ValidHealth(state string) bool {
	switch state {
	case HealthOnline, HealthDegraded, HealthOffline:
		return true
	}
	return false
}

// Set bundles the views built for one session.
type Set struct {
	Map    *Map
	Status *StatusPanel
}

// NewSet builds all views for a session runtime.
func NewSet(ctx context.Context, runtime jsruntime.Runtime, sinks *diag.Factory, timing *config.TimingConfig) *Set {
	return &Set{
		Map:    NewMap(ctx, runtime, sinks, timing),
		Status: NewStatusPanel(ctx, runtime, sinks, timing),
	}
}
