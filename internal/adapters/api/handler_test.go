package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleetcore/internal/service"
	"fleetcore/internal/storage"
	"fleetcore/internal/store"
	"fleetcore/pkg/domain"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	st, err := store.Open(context.Background(), storage.NewMemoryMedium())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := service.NewWithClock(st, func() domain.Date { return domain.MustDate("2024-02-10") })
	return NewHandler(svc)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestListResourcesCarriesDerivedStatus(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/api/v1/resources", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Resources []domain.ResourceView `json:"resources"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Resources) != 5 {
		t.Fatalf("expected 5 resources, got %d", len(resp.Resources))
	}
	byID := map[string]domain.ResourceStatus{}
	for _, v := range resp.Resources {
		byID[v.ID] = v.Status
	}
	if byID["2"] != domain.StatusReserved || byID["1"] != domain.StatusAvailable {
		t.Fatalf("unexpected derived statuses: %+v", byID)
	}
}

func TestResourceFilterQuery(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/api/v1/resources?status=Reserved&category=Heavy+Equipment", "")
	var resp struct {
		Resources []domain.ResourceView `json:"resources"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Resources) != 1 || resp.Resources[0].ID != "2" {
		t.Fatalf("filter result: %+v", resp.Resources)
	}
}

func TestCreateReservationHappyPath(t *testing.T) {
	h := newHandler(t)
	body := `{"resource_id":"1","customer_name":"Acme Corp","start_date":"2024-03-01","end_date":"2024-03-05","fee":400}`
	rec := doRequest(t, h, http.MethodPost, "/api/v1/reservations", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Reservation domain.Reservation `json:"reservation"`
	}
	decodeBody(t, rec, &resp)
	if resp.Reservation.ID == "" || resp.Reservation.Status != domain.ReservationActive {
		t.Fatalf("unexpected created record: %+v", resp.Reservation)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	h := newHandler(t)
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"validation", http.MethodPost, "/api/v1/reservations",
			`{"resource_id":"1","customer_name":"","start_date":"2024-03-01","end_date":"2024-03-05","fee":400}`,
			http.StatusBadRequest},
		{"malformed date", http.MethodPost, "/api/v1/reservations",
			`{"resource_id":"1","customer_name":"Acme","start_date":"03/01/2024","end_date":"2024-03-05","fee":400}`,
			http.StatusBadRequest},
		{"reference", http.MethodPost, "/api/v1/reservations",
			`{"resource_id":"ghost","customer_name":"Acme","start_date":"2024-03-01","end_date":"2024-03-05","fee":400}`,
			http.StatusUnprocessableEntity},
		{"conflict", http.MethodPost, "/api/v1/reservations",
			`{"resource_id":"2","customer_name":"Acme","start_date":"2024-02-10","end_date":"2024-02-20","fee":400}`,
			http.StatusConflict},
		{"not found update", http.MethodPut, "/api/v1/service-tasks/ghost",
			`{"resource_id":"1","type":"Repair","scheduled_date":"2024-03-01","status":"Scheduled","assigned_to":"Crew","cost":100}`,
			http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/v1/nonsense", "", http.StatusNotFound},
		{"bad method", http.MethodDelete, "/api/v1/kpis", "", http.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		rec := doRequest(t, h, c.method, c.path, c.body)
		if rec.Code != c.want {
			t.Errorf("%s: status %d, expected %d (body %s)", c.name, rec.Code, c.want, rec.Body.String())
		}
	}
}

func TestConflictResponseNamesBlockingReservation(t *testing.T) {
	h := newHandler(t)
	body := `{"resource_id":"2","customer_name":"Acme","start_date":"2024-02-10","end_date":"2024-02-20","fee":400}`
	rec := doRequest(t, h, http.MethodPost, "/api/v1/reservations", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Conflicting string `json:"conflicting_reservation"`
	}
	decodeBody(t, rec, &resp)
	if resp.Conflicting != "1" {
		t.Fatalf("expected conflicting reservation 1, got %q", resp.Conflicting)
	}
}

func TestDeleteResourceAndDanglingHistory(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, http.MethodDelete, "/api/v1/resources/2", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rec.Code)
	}
	// Reservations referencing the deleted resource survive, rendered with
	// the placeholder name.
	rec = doRequest(t, h, http.MethodGet, "/api/v1/reservations", "")
	var resp struct {
		Reservations []struct {
			ResourceID   string `json:"resource_id"`
			ResourceName string `json:"resource_name"`
		} `json:"reservations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Reservations) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(resp.Reservations))
	}
	for _, row := range resp.Reservations {
		if row.ResourceID == "2" && row.ResourceName != domain.UnknownResourceName {
			t.Fatalf("dangling reference renders %q", row.ResourceName)
		}
		if row.ResourceID == "4" && row.ResourceName != "Concrete Mixer" {
			t.Fatalf("live reference renders %q", row.ResourceName)
		}
	}
	// Deleting again is a NotFound.
	rec = doRequest(t, h, http.MethodDelete, "/api/v1/resources/2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d", rec.Code)
	}
}

func TestKPIsEndpoint(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/api/v1/kpis", "")
	var resp struct {
		KPIs domain.KPISnapshot `json:"kpis"`
	}
	decodeBody(t, rec, &resp)
	if resp.KPIs.TotalResources != 5 {
		t.Fatalf("total = %d", resp.KPIs.TotalResources)
	}
	if resp.KPIs.ByStatus[domain.StatusReserved] != 2 {
		t.Fatalf("distribution: %+v", resp.KPIs.ByStatus)
	}
}

func TestCalendarEndpoints(t *testing.T) {
	h := newHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/calendar", "")
	var current struct {
		Today string               `json:"today"`
		Month int                  `json:"month"`
		Days  []domain.CalendarDay `json:"days"`
	}
	decodeBody(t, rec, &current)
	if current.Today != "2024-02-10" || current.Month != 2 || len(current.Days) != 29 {
		t.Fatalf("jump-to-today grid: %+v", current)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/calendar?year=2024&month=1", "")
	var prev struct {
		Days []domain.CalendarDay `json:"days"`
	}
	decodeBody(t, rec, &prev)
	if len(prev.Days) != 31 {
		t.Fatalf("January grid has %d days", len(prev.Days))
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/calendar?date=2024-02-10", "")
	var day struct {
		Reservations []domain.Reservation `json:"reservations"`
	}
	decodeBody(t, rec, &day)
	if len(day.Reservations) != 2 {
		t.Fatalf("expected 2 reservations on 2024-02-10, got %d", len(day.Reservations))
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/calendar?year=2024&month=13", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid month status %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
