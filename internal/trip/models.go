package trip

import "github.com/Helmera83/gig-calc/internal/calc"

// Analysis is the most recent AI profitability read. It is transient and
// dropped whenever any input changes.
type Analysis struct {
	Verdict   string `json:"verdict"`
	Reasoning string `json:"reasoning"`
}

// State is a snapshot of the current draft trip. Results are always derived
// from Inputs at snapshot time; there is no hidden state behind them.
type State struct {
	Inputs     calc.Inputs  `json:"inputs"`
	Results    calc.Results `json:"results"`
	Analysis   *Analysis    `json:"analysis,omitempty"`
	Generation uint64       `json:"generation"`
}
