package prefs

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Helmera83/gig-calc/internal/db"
)

const (
	keyGasPrice        = "gigCalcGasPrice"
	keyMpg             = "gigCalcMpg"
	keyTheme           = "gigCalcTheme"
	keyPrimaryColor    = "gigCalcPrimaryColor"
	keyRecentLocations = "gigCalcRecentLocations"

	maxRecentLocations = 10

	defaultTheme        = "dark"
	defaultPrimaryColor = "emerald"
)

type Service struct {
	store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) Preferences {
	p := Preferences{Theme: defaultTheme, PrimaryColor: defaultPrimaryColor}
	if val, ok, err := s.store.Get(ctx, keyGasPrice); err == nil && ok {
		p.GasPrice = val
	}
	if val, ok, err := s.store.Get(ctx, keyMpg); err == nil && ok {
		p.Mpg = val
	}
	if val, ok, err := s.store.Get(ctx, keyTheme); err == nil && ok && val != "" {
		p.Theme = val
	}
	if val, ok, err := s.store.Get(ctx, keyPrimaryColor); err == nil && ok && val != "" {
		p.PrimaryColor = val
	}
	return p
}

func (s *Service) SetGasPrice(ctx context.Context, value string) error {
	return s.store.Set(ctx, keyGasPrice, value)
}

func (s *Service) SetMpg(ctx context.Context, value string) error {
	return s.store.Set(ctx, keyMpg, value)
}

func (s *Service) SetTheme(ctx context.Context, value string) error {
	return s.store.Set(ctx, keyTheme, value)
}

func (s *Service) SetPrimaryColor(ctx context.Context, value string) error {
	return s.store.Set(ctx, keyPrimaryColor, value)
}

// RecentLocations returns the saved place names, newest first. A corrupt
// stored value is discarded and treated as empty.
func (s *Service) RecentLocations(ctx context.Context) []string {
	raw, ok, err := s.store.Get(ctx, keyRecentLocations)
	if err != nil || !ok {
		return nil
	}
	var locations []string
	if err := json.Unmarshal([]byte(raw), &locations); err != nil {
		log.Printf("prefs: discarding corrupt recent locations: %v", err)
		return nil
	}
	return locations
}

// AddRecentLocation prepends a place name, deduplicating case-insensitively
// and keeping at most ten entries.
func (s *Service) AddRecentLocation(ctx context.Context, loc string) error {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil
	}

	existing := s.RecentLocations(ctx)
	updated := []string{loc}
	for _, item := range existing {
		if strings.EqualFold(item, loc) {
			continue
		}
		updated = append(updated, item)
	}
	if len(updated) > maxRecentLocations {
		updated = updated[:maxRecentLocations]
	}

	payload, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyRecentLocations, string(payload))
}
