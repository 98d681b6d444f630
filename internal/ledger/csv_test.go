package ledger

import (
	"strings"
	"testing"

	"github.com/Helmera83/gig-calc/internal/calc"
)

func TestToCSVEmptyLedgerIsNoop(t *testing.T) {
	svc, _, _ := newStoreBacked(t)
	if csv := svc.ToCSV(); csv != "" {
		t.Fatalf("expected empty export, got %q", csv)
	}
}

func TestToCSVContent(t *testing.T) {
	svc, _, ctx := newStoreBacked(t)

	rec := TripRecord{
		ID:        "trip-1",
		Timestamp: "2026-01-05T09:30:00Z",
		Inputs:    calc.Inputs{Payment: "25.00", Distance: "5.2", GasPrice: "3.50", MPG: "25"},
	}
	rec.Results = calc.Compute(rec.Inputs)
	if err := svc.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	csv := svc.ToCSV()
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "payment") || !strings.Contains(lines[0], "distance") {
		t.Fatalf("header missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "25.00") || !strings.Contains(lines[1], "5.2") {
		t.Fatalf("row missing input values: %q", lines[1])
	}
	// every field double-quoted
	for _, field := range strings.Split(lines[1], ",") {
		if !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
			t.Fatalf("field not quoted: %q", field)
		}
	}
}

func TestToCSVEscapesQuotesAndFixesDecimals(t *testing.T) {
	svc, _, ctx := newStoreBacked(t)

	rec := TripRecord{
		ID:        `quote"id`,
		Timestamp: "2026-01-05T09:30:00Z",
		Inputs:    calc.Inputs{Payment: "30.00", Distance: "10", GasPrice: "4.00", MPG: "25"},
	}
	rec.Results = calc.Compute(rec.Inputs)
	_ = svc.Save(ctx, rec)

	csv := svc.ToCSV()
	if !strings.Contains(csv, `"quote""id"`) {
		t.Fatalf("expected doubled quotes in %q", csv)
	}
	if !strings.Contains(csv, `"1.60"`) || !strings.Contains(csv, `"28.40"`) {
		t.Fatalf("expected 2-decimal money columns in %q", csv)
	}
	if !strings.Contains(csv, `"2.8400"`) {
		t.Fatalf("expected 4-decimal per-mile column in %q", csv)
	}
}
