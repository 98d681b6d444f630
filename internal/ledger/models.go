package ledger

import "github.com/Helmera83/gig-calc/internal/calc"

// TripRecord is immutable once written. Records are only ever prepended and
// only removed by clearing the whole ledger.
type TripRecord struct {
	ID        string       `json:"id"`
	Timestamp string       `json:"timestamp"`
	Inputs    calc.Inputs  `json:"inputs"`
	Results   calc.Results `json:"results"`
}

type Summary struct {
	TotalNet   float64 `json:"totalNet"`
	TotalMiles float64 `json:"totalMiles"`
	TripCount  int     `json:"tripCount"`
}
