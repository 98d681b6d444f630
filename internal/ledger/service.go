package ledger

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Helmera83/gig-calc/internal/calc"
	"github.com/Helmera83/gig-calc/internal/db"
)

const historyKey = "gigCalcHistory"

type SortField string

type SortOrder string

const (
	SortByDate     SortField = "date"
	SortByEarnings SortField = "earnings"
	SortByDistance SortField = "distance"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Service owns the in-memory trip list and mirrors every mutation to the
// store as one whole-value write.
type Service struct {
	store db.Store

	mu      sync.RWMutex
	records []TripRecord
}

func NewService(ctx context.Context, store db.Store) *Service {
	s := &Service{store: store}
	s.load(ctx)
	return s
}

// load reads the persisted ledger once at startup. A corrupt value is
// logged and dropped; the ledger starts empty rather than failing.
func (s *Service) load(ctx context.Context) {
	raw, ok, err := s.store.Get(ctx, historyKey)
	if err != nil {
		log.Printf("ledger: load failed: %v", err)
		return
	}
	if !ok {
		return
	}

	var records []TripRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("ledger: discarding corrupt history: %v", err)
		return
	}
	s.records = records
}

func (s *Service) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.records)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, historyKey, string(payload))
}

// Save prepends the record and writes the full list back. On a store
// failure the prepend is rolled back so memory and storage stay in sync.
func (s *Service) Save(ctx context.Context, record TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]TripRecord{record}, s.records...)
	if err := s.persistLocked(ctx); err != nil {
		s.records = s.records[1:]
		return err
	}
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return s.persistLocked(ctx)
}

func (s *Service) Records() []TripRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TripRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Service) Aggregate() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for _, record := range s.records {
		sum.TotalNet += record.Results.NetEarnings
		sum.TotalMiles += calc.Amount(record.Inputs.Distance)
	}
	sum.TripCount = len(s.records)
	return sum
}

// SortedView returns a sorted copy; the underlying list is never reordered.
// Equal keys keep their insertion order.
func (s *Service) SortedView(field SortField, order SortOrder) []TripRecord {
	view := s.Records()

	less := func(a, b TripRecord) bool { return a.Timestamp < b.Timestamp }
	switch field {
	case SortByEarnings:
		less = func(a, b TripRecord) bool { return a.Results.NetEarnings < b.Results.NetEarnings }
	case SortByDistance:
		less = func(a, b TripRecord) bool {
			return calc.Amount(a.Inputs.Distance) < calc.Amount(b.Inputs.Distance)
		}
	}

	sort.SliceStable(view, func(i, j int) bool {
		if order == OrderAsc {
			return less(view[i], view[j])
		}
		return less(view[j], view[i])
	})
	return view
}

// ExportFilename builds the download name for a CSV export taken now.
func ExportFilename(now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05Z")
	clean := make([]rune, 0, len(stamp))
	for _, r := range stamp {
		if r == ':' || r == 'T' {
			continue
		}
		clean = append(clean, r)
	}
	return "gigcalc_history_" + string(clean) + ".csv"
}
