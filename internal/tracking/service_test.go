package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/Helmera83/gig-calc/internal/db"
	"github.com/Helmera83/gig-calc/internal/ledger"
	"github.com/Helmera83/gig-calc/internal/prefs"
	"github.com/Helmera83/gig-calc/internal/stream"
	"github.com/Helmera83/gig-calc/internal/trip"
)

func newTestService(t *testing.T, enabled bool) (*Service, *trip.Service) {
	t.Helper()
	ctx := context.Background()
	store := db.NewMemStore()
	draft := trip.NewService(ctx, ledger.NewService(ctx, store), prefs.NewService(store))
	return NewService(draft, stream.NewHub(nil), enabled), draft
}

func TestStartUnsupported(t *testing.T) {
	svc, _ := newTestService(t, false)
	if _, err := svc.Start(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestSampleRequiresTracking(t *testing.T) {
	svc, _ := newTestService(t, true)
	if _, err := svc.Sample(Position{Lat: 40, Lon: -75}); !errors.Is(err, ErrNotTracking) {
		t.Fatalf("expected not-tracking error, got %v", err)
	}
}

func TestFirstSampleOnlyAnchors(t *testing.T) {
	svc, draft := newTestService(t, true)
	if _, err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	result, err := svc.Sample(Position{Lat: 40.0, Lon: -75.0})
	if err != nil || result.Accepted {
		t.Fatalf("first sample should anchor only: %+v %v", result, err)
	}
	if !svc.Status().Anchored {
		t.Fatalf("expected anchored status")
	}
	if draft.Snapshot().Inputs.Distance != "" {
		t.Fatalf("distance should be untouched")
	}
}

func TestJitterBelowThresholdKeepsAnchor(t *testing.T) {
	svc, draft := newTestService(t, true)
	_, _ = svc.Start()

	_, _ = svc.Sample(Position{Lat: 40.0, Lon: -75.0})

	// ~0.0007 miles north: jitter, discarded, anchor unchanged
	result, _ := svc.Sample(Position{Lat: 40.00001, Lon: -75.0})
	if result.Accepted {
		t.Fatalf("jitter should be discarded")
	}
	// another jitter-sized hop, still measured against the original anchor
	result, _ = svc.Sample(Position{Lat: 40.00002, Lon: -75.0})
	if result.Accepted {
		t.Fatalf("cumulative displacement still below threshold")
	}
	if draft.Snapshot().Inputs.Distance != "" {
		t.Fatalf("distance should be unchanged")
	}

	// ~0.0069 miles from the anchor: real movement, accumulated in full
	result, _ = svc.Sample(Position{Lat: 40.0001, Lon: -75.0})
	if !result.Accepted {
		t.Fatalf("expected movement beyond threshold to be accepted")
	}
	if result.Increment <= minIncrementMiles {
		t.Fatalf("unexpected increment %v", result.Increment)
	}
	if got := draft.Snapshot().Inputs.Distance; got != "0.01" {
		t.Fatalf("unexpected distance %q", got)
	}
}

func TestAcceptedSampleAdvancesAnchor(t *testing.T) {
	svc, draft := newTestService(t, true)
	_, _ = svc.Start()

	_, _ = svc.Sample(Position{Lat: 40.0, Lon: -75.0})
	_, _ = svc.Sample(Position{Lat: 40.001, Lon: -75.0})

	// same displacement again from the new anchor must also be accepted
	result, _ := svc.Sample(Position{Lat: 40.002, Lon: -75.0})
	if !result.Accepted {
		t.Fatalf("expected sample against advanced anchor to be accepted")
	}
	if got := draft.Snapshot().Inputs.Distance; got != "0.14" {
		t.Fatalf("unexpected accumulated distance %q", got)
	}
}

func TestFailStopsSession(t *testing.T) {
	svc, _ := newTestService(t, true)
	_, _ = svc.Start()
	_, _ = svc.Sample(Position{Lat: 40.0, Lon: -75.0})

	status := svc.Fail("position unavailable")
	if status.Tracking || status.Anchored {
		t.Fatalf("expected session stopped: %+v", status)
	}
	if status.LastError != "GPS Error: position unavailable" {
		t.Fatalf("unexpected error message %q", status.LastError)
	}
	if _, err := svc.Sample(Position{Lat: 40.0, Lon: -75.0}); !errors.Is(err, ErrNotTracking) {
		t.Fatalf("expected terminal session")
	}
}

func TestStopIdempotent(t *testing.T) {
	svc, _ := newTestService(t, true)
	_, _ = svc.Start()

	first := svc.Stop()
	second := svc.Stop()
	if first.Tracking || second.Tracking {
		t.Fatalf("expected stopped status")
	}
}

func TestStartClearsPreviousError(t *testing.T) {
	svc, _ := newTestService(t, true)
	_, _ = svc.Start()
	svc.Fail("timeout")

	status, err := svc.Start()
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if status.LastError != "" || !status.Tracking {
		t.Fatalf("expected clean restart: %+v", status)
	}
}
