package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc, _, _ := newStoreBacked(t)
	app := fiber.New()
	RegisterRoutes(app.Group("/ledger"), svc)
	return app, svc
}

func TestLedgerHandlers(t *testing.T) {
	app, svc := newTestApp(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_ = svc.Save(ctx, record("a", "2026-01-01T10:00:00Z", "20", "5", 18))
	_ = svc.Save(ctx, record("b", "2026-01-02T10:00:00Z", "30", "10", 28))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ledger/?sort=earnings&order=asc", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
	var listed []TripRecord
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != "a" {
		t.Fatalf("unexpected sorted list: %+v", listed)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/ledger/summary", nil))
	var sum Summary
	_ = json.NewDecoder(resp.Body).Decode(&sum)
	if sum.TripCount != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/ledger/export", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "gigcalc_history_") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/ledger/", nil))
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status: %d", resp.StatusCode)
	}
	if svc.Len() != 0 {
		t.Fatalf("expected cleared ledger")
	}
}

func TestLedgerExportEmptyIsNoContent(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ledger/export", nil))
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for empty export, got %v %d", err, resp.StatusCode)
	}
}

func TestLedgerBadSortParams(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ledger/?sort=bogus", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for sort field")
	}
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/ledger/?order=sideways", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for sort order")
	}
}
