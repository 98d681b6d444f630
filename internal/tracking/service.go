package tracking

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/Helmera83/gig-calc/internal/shared/geo"
	"github.com/Helmera83/gig-calc/internal/stream"
	"github.com/Helmera83/gig-calc/internal/trip"
)

// minIncrementMiles debounces GPS jitter: movement below this never leaves
// the anchor, so a stationary device cannot creep the distance upward.
const minIncrementMiles = 0.005

const streamTopic = "tracking"

var (
	ErrUnsupported = errors.New("location tracking is not available")
	ErrNotTracking = errors.New("tracking is not active")
)

func defaultOptions() Options {
	return Options{HighAccuracy: true, TimeoutMs: 20000, MaxSampleAgeMs: 1000}
}

// Service accumulates live GPS samples into the draft trip distance.
// Session state is transient: nothing here survives a restart, and samples
// are processed one at a time under the lock.
type Service struct {
	draft   *trip.Service
	hub     *stream.Hub
	enabled bool

	mu        sync.Mutex
	active    bool
	last      *Position
	lastError string
}

func NewService(draft *trip.Service, hub *stream.Hub, enabled bool) *Service {
	return &Service{draft: draft, hub: hub, enabled: enabled}
}

func (s *Service) Start() (Status, error) {
	if !s.enabled {
		return Status{}, ErrUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.last = nil
	s.lastError = ""
	return s.statusLocked(), nil
}

// Stop ends the session and clears the anchor. Safe to call repeatedly.
func (s *Service) Stop() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.last = nil
	return s.statusLocked()
}

// Fail records a terminal stream error and force-stops the session. The
// user has to restart tracking themselves; there is no retry.
func (s *Service) Fail(reason string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = "GPS Error: " + reason
	s.active = false
	s.last = nil
	return s.statusLocked()
}

// Sample feeds one position fix in. The first fix only anchors. Later fixes
// add their haversine distance to the draft when they exceed the jitter
// threshold; otherwise they are discarded and the anchor stays put so small
// movements can still accumulate against it.
func (s *Service) Sample(pos Position) (SampleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return SampleResult{}, ErrNotTracking
	}

	if s.last == nil {
		s.last = &pos
		return SampleResult{}, nil
	}

	increment := geo.HaversineMiles(s.last.Lat, s.last.Lon, pos.Lat, pos.Lon)
	if increment <= minIncrementMiles {
		return SampleResult{}, nil
	}

	state := s.draft.AddDistance(increment)
	s.last = &pos

	result := SampleResult{
		Accepted:  true,
		Increment: increment,
		Distance:  state.Inputs.Distance,
	}
	if s.hub != nil {
		payload, _ := json.Marshal(result)
		s.hub.Broadcast(streamTopic, payload)
	}
	return result, nil
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Service) statusLocked() Status {
	return Status{
		Tracking:  s.active,
		Anchored:  s.last != nil,
		LastError: s.lastError,
		Options:   defaultOptions(),
	}
}
