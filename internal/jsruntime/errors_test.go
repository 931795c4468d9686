package jsruntime

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyNilError(t *testing.T) {
	if err := Classify("mapView.panTo", nil); err != nil {
		t.Errorf("Classify(nil) = %v, want nil", err)
	}
}

func TestClassifyLegacyNotFoundMessages(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		msg  string
	}{
		{"global scope wording", "mapView.updateMarkers", "could not find 'mapView.updateMarkers' in the global scope"},
		{"window wording", "update", "Could not find 'update' in 'window'."},
		{"undefined wording", "statusPanel.setHealth", "'statusPanel.setHealth' was undefined"},
		{"undefined mixed case", "update", "'UPDATE' was undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.fn, errors.New(tt.msg))
			if !errors.Is(err, ErrFuncNotFound) {
				t.Errorf("Classify(%q) = %v, want FUNC_NOT_FOUND", tt.msg, err)
			}
		})
	}
}

func TestClassifyDoesNotMatchOtherNames(t *testing.T) {
	// A not-found report for a different function is not transient for this
	// call.
	err := Classify("mapView.panTo", errors.New("could not find 'mapView.updateMarkers' in the global scope"))
	if !errors.Is(err, ErrInternal) {
		t.Errorf("Classify for foreign name = %v, want INTERNAL", err)
	}
}

func TestClassifyRequiresFullNotFoundShape(t *testing.T) {
	// Only the exact legacy wordings are transient; a look-alike prefix with
	// a different suffix is a real failure.
	tests := []string{
		"could not find 'mapView.panTo'",
		"could not find 'mapView.panTo' in module scope",
		"could not find 'mapView.panTo' anywhere",
	}
	for _, msg := range tests {
		if err := Classify("mapView.panTo", errors.New(msg)); !errors.Is(err, ErrInternal) {
			t.Errorf("Classify(%q) = %v, want INTERNAL", msg, err)
		}
	}
}

func TestClassifyStructuredCodes(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"FUNC_NOT_FOUND", ErrFuncNotFound},
		{"CANCELLED", ErrCancelled},
		{"DISCONNECTED", ErrDisconnected},
		{"TIMEOUT", ErrTimeout},
		{"result code: timeout waiting for answer", ErrTimeout},
	}

	for _, tt := range tests {
		err := Classify("mapView.panTo", errors.New(tt.msg))
		if !errors.Is(err, tt.want) {
			t.Errorf("Classify(%q) = %v, want %v", tt.msg, err, tt.want)
		}
	}
}

func TestClassifyContextErrors(t *testing.T) {
	if err := Classify("mapView.panTo", context.Canceled); !errors.Is(err, ErrCancelled) {
		t.Errorf("Classify(context.Canceled) = %v, want CANCELLED", err)
	}
	if err := Classify("mapView.panTo", context.DeadlineExceeded); !errors.Is(err, ErrCancelled) {
		t.Errorf("Classify(context.DeadlineExceeded) = %v, want CANCELLED", err)
	}
}

func TestClassifyUnknownShape(t *testing.T) {
	err := Classify("mapView.panTo", errors.New("TypeError: undefined is not a function"))
	if !errors.Is(err, ErrInternal) {
		t.Errorf("Classify(unknown) = %v, want INTERNAL", err)
	}
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	original := NotFound("mapView.panTo")
	if got := Classify("mapView.panTo", original); got != original {
		t.Errorf("Classify(classified) = %v, want pass-through", got)
	}
	wrapped := fmt.Errorf("queueing: %w", original)
	if got := Classify("mapView.panTo", wrapped); got != wrapped {
		t.Errorf("Classify(wrapped classified) = %v, want pass-through", got)
	}
}

func TestNotFoundShape(t *testing.T) {
	err := NotFound("mapView.updateMarkers")
	if !errors.Is(err, ErrFuncNotFound) {
		t.Fatalf("NotFound = %v, want FUNC_NOT_FOUND", err)
	}

	var fe *FuncError
	if !errors.As(err, &fe) {
		t.Fatal("NotFound did not produce a *FuncError")
	}
	if fe.Name != "mapView.updateMarkers" {
		t.Errorf("Name = %q, want target function name", fe.Name)
	}
	// The synthesized message must match the legacy shape so that a client
	// echoing it back classifies identically.
	if !errors.Is(Classify("mapView.updateMarkers", errors.New(fe.Original.Error())), ErrFuncNotFound) {
		t.Errorf("synthesized message %q does not round-trip", fe.Original.Error())
	}
}
