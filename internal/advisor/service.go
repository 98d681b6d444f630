package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/Helmera83/gig-calc/internal/prefs"
	"github.com/Helmera83/gig-calc/internal/trip"
)

var (
	ErrMissingLocations = errors.New("missing locations")
	ErrNoEstimate       = errors.New("couldn't calculate distance precisely")
)

const (
	fallbackVerdict   = "Analysis Unavailable"
	fallbackReasoning = "The assistant could not analyze this trip right now. Try again in a moment."
	unclearReasoning  = "The assistant reply could not be fully interpreted."
)

// The reply grammar is undocumented upstream; both patterns are deliberately
// loose so a drifting response format degrades to a fallback instead of an
// error.
var (
	numberPattern  = regexp.MustCompile(`\d+(\.\d+)?`)
	verdictPattern = regexp.MustCompile(`(?is)verdict:\s*(.+?)\s*reasoning:\s*(.+)`)
)

type Service struct {
	client *Client
	draft  *trip.Service
	prefs  *prefs.Service
}

func NewService(client *Client, draft *trip.Service, prefsSvc *prefs.Service) *Service {
	return &Service{client: client, draft: draft, prefs: prefsSvc}
}

type DistanceRequest struct {
	Store   string  `json:"store"`
	Dropoff string  `json:"dropoff"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// EstimateDistance asks the model for the pickup-then-dropoff distance from
// the rider's position and writes the extracted number into the draft. The
// write is generation-guarded so an estimate that raced with newer input is
// dropped instead of clobbering it.
func (s *Service) EstimateDistance(ctx context.Context, req DistanceRequest) (trip.State, []GroundingLink, error) {
	if req.Store == "" || req.Dropoff == "" {
		return trip.State{}, nil, ErrMissingLocations
	}

	s.rememberLocation(ctx, req.Store)
	s.rememberLocation(ctx, req.Dropoff)

	gen := s.draft.Snapshot().Generation
	prompt := fmt.Sprintf(
		`Distance in miles from my location (%v, %v) to %q then to %q. Just the number.`,
		req.Lat, req.Lon, req.Store, req.Dropoff,
	)

	reply, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("advisor: distance call failed: %v", err)
		return trip.State{}, nil, ErrNoEstimate
	}

	match := numberPattern.FindString(reply.Text)
	if match == "" {
		return trip.State{}, nil, ErrNoEstimate
	}
	miles, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return trip.State{}, nil, ErrNoEstimate
	}

	state, err := s.draft.ApplyDistanceEstimate(gen, miles)
	if err != nil {
		return trip.State{}, nil, err
	}
	return state, reply.Links, nil
}

// Verdict asks the model whether the current draft is worth taking. The
// caller always gets a displayable analysis: transport failures and
// unparseable replies both degrade to fallback text.
func (s *Service) Verdict(ctx context.Context) (trip.State, error) {
	snapshot := s.draft.Snapshot()
	in, res := snapshot.Inputs, snapshot.Results

	prompt := fmt.Sprintf(
		"A delivery driver is offered $%s for a %s mile trip. Estimated fuel cost is $%.2f, "+
			"net earnings $%.2f, earnings per mile $%.2f, with gas at $%s per gallon and a vehicle "+
			"doing %s mpg. Is this trip worth taking? Reply exactly as: "+
			"Verdict: <short judgement> Reasoning: <one or two sentences>",
		in.Payment, in.Distance, res.TotalGasCost, res.NetEarnings, res.EarningsPerMile,
		in.GasPrice, in.MPG,
	)

	analysis := trip.Analysis{Verdict: fallbackVerdict, Reasoning: fallbackReasoning}
	reply, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("advisor: verdict call failed: %v", err)
	} else {
		analysis = parseAnalysis(reply.Text)
	}

	return s.draft.ApplyAnalysis(snapshot.Generation, analysis)
}

func parseAnalysis(text string) trip.Analysis {
	m := verdictPattern.FindStringSubmatch(text)
	if m == nil {
		return trip.Analysis{Verdict: fallbackVerdict, Reasoning: unclearReasoning}
	}
	analysis := trip.Analysis{Verdict: m[1], Reasoning: m[2]}
	if analysis.Verdict == "" {
		analysis.Verdict = fallbackVerdict
	}
	if analysis.Reasoning == "" {
		analysis.Reasoning = unclearReasoning
	}
	return analysis
}

func (s *Service) rememberLocation(ctx context.Context, loc string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.AddRecentLocation(ctx, loc); err != nil {
		log.Printf("advisor: recent location write failed: %v", err)
	}
}
