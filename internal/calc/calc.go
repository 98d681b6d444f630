package calc

import (
	"strconv"
	"strings"
)

// Inputs holds the four trip fields exactly as the user typed them.
// Values are kept verbatim; parsing happens only at computation time.
type Inputs struct {
	Payment  string `json:"payment"`
	Distance string `json:"distance"`
	GasPrice string `json:"gasPrice"`
	MPG      string `json:"mpg"`
}

type Results struct {
	TotalGasCost    float64 `json:"totalGasCost"`
	NetEarnings     float64 `json:"netEarnings"`
	EarningsPerMile float64 `json:"earningsPerMile"`
}

// Amount parses a user-typed decimal. Malformed or empty text is zero,
// never an error.
func Amount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Compute derives the trip economics from the current inputs. Divisions are
// guarded so a zero distance or mpg never produces NaN or Inf.
func Compute(in Inputs) Results {
	pay := Amount(in.Payment)
	dist := Amount(in.Distance)
	price := Amount(in.GasPrice)
	mpg := Amount(in.MPG)

	var totalGasCost float64
	if dist > 0 && mpg > 0 {
		totalGasCost = (dist / mpg) * price
	}
	netEarnings := pay - totalGasCost

	var earningsPerMile float64
	if dist > 0 {
		earningsPerMile = netEarnings / dist
	}

	return Results{
		TotalGasCost:    totalGasCost,
		NetEarnings:     netEarnings,
		EarningsPerMile: earningsPerMile,
	}
}
