package ledger

import (
	"fmt"
	"strings"
)

var csvHeader = []string{
	"id", "timestamp", "payment", "distance", "gasPrice", "mpg",
	"totalGasCost", "netEarnings", "earningsPerMile",
}

// ToCSV serializes the ledger. Every field is double-quoted with embedded
// quotes doubled; money columns get 2 decimals, earnings-per-mile 4.
// An empty ledger serializes to an empty string: nothing to export.
func (s *Service) ToCSV() string {
	records := s.Records()
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	writeRow(&b, csvHeader)
	for _, r := range records {
		writeRow(&b, []string{
			r.ID,
			r.Timestamp,
			r.Inputs.Payment,
			r.Inputs.Distance,
			r.Inputs.GasPrice,
			r.Inputs.MPG,
			fmt.Sprintf("%.2f", r.Results.TotalGasCost),
			fmt.Sprintf("%.2f", r.Results.NetEarnings),
			fmt.Sprintf("%.4f", r.Results.EarningsPerMile),
		})
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
