package trip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Helmera83/gig-calc/internal/calc"
	"github.com/Helmera83/gig-calc/internal/ledger"
	"github.com/Helmera83/gig-calc/internal/prefs"

	"github.com/google/uuid"
)

var (
	ErrNothingToSave = errors.New("nothing to save: enter a payment and distance first")
	ErrUnknownField  = errors.New("unknown input field")
	// ErrStale marks a result that raced with a newer input change.
	ErrStale = errors.New("state changed since the request started")
)

// Service holds the single draft trip the user is working on. All updates
// funnel through it so results, analysis invalidation and the generation
// counter stay consistent.
type Service struct {
	ledger *ledger.Service
	prefs  *prefs.Service

	mu       sync.Mutex
	inputs   calc.Inputs
	analysis *Analysis
	gen      uint64

	now   func() time.Time
	newID func() string
}

func NewService(ctx context.Context, ledgerSvc *ledger.Service, prefsSvc *prefs.Service) *Service {
	s := &Service{
		ledger: ledgerSvc,
		prefs:  prefsSvc,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	if prefsSvc != nil {
		saved := prefsSvc.Get(ctx)
		s.inputs.GasPrice = saved.GasPrice
		s.inputs.MPG = saved.Mpg
	}
	return s
}

func (s *Service) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Service) snapshotLocked() State {
	return State{
		Inputs:     s.inputs,
		Results:    calc.Compute(s.inputs),
		Analysis:   s.analysis,
		Generation: s.gen,
	}
}

func (s *Service) Snapshot() State {
	defer s.lock()()
	return s.snapshotLocked()
}

// SetInputs applies a partial field update, recomputes results and drops any
// pending analysis. Gas price and mpg flow through to preferences so the
// next session starts with them.
func (s *Service) SetInputs(ctx context.Context, fields map[string]string) (State, error) {
	defer s.lock()()

	// Reject the whole update before touching state: a partial apply would
	// leave inputs changed with the analysis still attached and the
	// generation counter stale.
	for field := range fields {
		switch field {
		case "payment", "distance", "gasPrice", "mpg":
		default:
			return State{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	for field, value := range fields {
		switch field {
		case "payment":
			s.inputs.Payment = value
		case "distance":
			s.inputs.Distance = value
		case "gasPrice":
			s.inputs.GasPrice = value
			s.mirrorPref(ctx, s.prefs.SetGasPrice, value)
		case "mpg":
			s.inputs.MPG = value
			s.mirrorPref(ctx, s.prefs.SetMpg, value)
		}
	}
	if len(fields) > 0 {
		s.bumpLocked()
	}
	return s.snapshotLocked(), nil
}

func (s *Service) mirrorPref(ctx context.Context, set func(context.Context, string) error, value string) {
	if s.prefs == nil {
		return
	}
	if err := set(ctx, value); err != nil {
		log.Printf("trip: preference write failed: %v", err)
	}
}

func (s *Service) bumpLocked() {
	s.gen++
	s.analysis = nil
}

// AddDistance folds a tracked increment into the distance field, keeping the
// two-decimal display format.
func (s *Service) AddDistance(increment float64) State {
	defer s.lock()()

	total := calc.Amount(s.inputs.Distance) + increment
	s.inputs.Distance = fmt.Sprintf("%.2f", total)
	s.bumpLocked()
	return s.snapshotLocked()
}

// ApplyDistanceEstimate writes an AI distance estimate, unless the state has
// moved on since the estimate was requested.
func (s *Service) ApplyDistanceEstimate(gen uint64, miles float64) (State, error) {
	defer s.lock()()

	if gen != s.gen {
		return State{}, ErrStale
	}
	s.inputs.Distance = fmt.Sprintf("%.2f", miles)
	s.bumpLocked()
	return s.snapshotLocked(), nil
}

// ApplyAnalysis attaches a verdict produced against the given generation.
func (s *Service) ApplyAnalysis(gen uint64, analysis Analysis) (State, error) {
	defer s.lock()()

	if gen != s.gen {
		return State{}, ErrStale
	}
	s.analysis = &analysis
	return s.snapshotLocked(), nil
}

// Save commits the draft to the ledger, then clears payment and distance for
// the next offer. Gas price and mpg stay put.
func (s *Service) Save(ctx context.Context) (ledger.TripRecord, error) {
	defer s.lock()()

	if s.inputs.Payment == "" || s.inputs.Distance == "" {
		return ledger.TripRecord{}, ErrNothingToSave
	}

	record := ledger.TripRecord{
		ID:        s.newID(),
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Inputs:    s.inputs,
		Results:   calc.Compute(s.inputs),
	}
	if err := s.ledger.Save(ctx, record); err != nil {
		return ledger.TripRecord{}, err
	}

	s.inputs.Payment = ""
	s.inputs.Distance = ""
	s.bumpLocked()
	return record, nil
}
