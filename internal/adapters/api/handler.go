// Package api exposes the fleet service over HTTP. The adapter is a thin
// translation layer: it decodes payloads, dispatches to the service, and maps
// the typed domain errors onto status codes. All rendering stays client-side.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetcore/internal/service"
	"fleetcore/pkg/domain"
)

// Handler provides HTTP access to the fleet commands and queries.
type Handler struct {
	Service *service.Service
}

// NewHandler constructs the fleet HTTP handler.
func NewHandler(s *service.Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusInternalServerError, "fleet service not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/healthz":
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	case path == "/api/v1/resources" || strings.HasPrefix(path, "/api/v1/resources/"):
		h.handleResources(w, r, strings.TrimPrefix(path, "/api/v1/resources"))
	case path == "/api/v1/reservations" || strings.HasPrefix(path, "/api/v1/reservations/"):
		h.handleReservations(w, r, strings.TrimPrefix(path, "/api/v1/reservations"))
	case path == "/api/v1/service-tasks" || strings.HasPrefix(path, "/api/v1/service-tasks/"):
		h.handleServiceTasks(w, r, strings.TrimPrefix(path, "/api/v1/service-tasks"))
	case path == "/api/v1/kpis":
		h.handleKPIs(w, r)
	case path == "/api/v1/trends":
		h.handleTrends(w, r)
	case path == "/api/v1/calendar":
		h.handleCalendar(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleResources(w http.ResponseWriter, r *http.Request, remainder string) {
	id := strings.TrimPrefix(remainder, "/")
	if id == "" {
		switch r.Method {
		case http.MethodGet:
			filter := service.ResourceFilter{
				Status:   domain.ResourceStatus(r.URL.Query().Get("status")),
				Category: domain.ResourceCategory(r.URL.Query().Get("category")),
			}
			writeJSON(w, http.StatusOK, map[string]any{"resources": h.Service.Resources(filter)})
		case http.MethodPost:
			var in domain.Resource
			if !decode(w, r, &in) {
				return
			}
			created, err := h.Service.AddResource(r.Context(), in)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"resource": created})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := h.Service.Resource(id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"resource": detail})
	case http.MethodPut:
		var in domain.Resource
		if !decode(w, r, &in) {
			return
		}
		updated, err := h.Service.UpdateResource(r.Context(), id, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"resource": updated})
	case http.MethodDelete:
		if err := h.Service.DeleteResource(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleReservations(w http.ResponseWriter, r *http.Request, remainder string) {
	id := strings.TrimPrefix(remainder, "/")
	if id == "" {
		switch r.Method {
		case http.MethodGet:
			status := domain.ReservationStatus(r.URL.Query().Get("status"))
			writeJSON(w, http.StatusOK, map[string]any{"reservations": h.withReservationNames(h.Service.Reservations(status))})
		case http.MethodPost:
			var in domain.Reservation
			if !decode(w, r, &in) {
				return
			}
			created, err := h.Service.AddReservation(r.Context(), in)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"reservation": created})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		var in domain.Reservation
		if !decode(w, r, &in) {
			return
		}
		updated, err := h.Service.UpdateReservation(r.Context(), id, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reservation": updated})
	case http.MethodDelete:
		if err := h.Service.DeleteReservation(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleServiceTasks(w http.ResponseWriter, r *http.Request, remainder string) {
	id := strings.TrimPrefix(remainder, "/")
	if id == "" {
		switch r.Method {
		case http.MethodGet:
			status := domain.ServiceTaskStatus(r.URL.Query().Get("status"))
			writeJSON(w, http.StatusOK, map[string]any{"service_tasks": h.withTaskNames(h.Service.ServiceTasks(status))})
		case http.MethodPost:
			var in domain.ServiceTask
			if !decode(w, r, &in) {
				return
			}
			created, err := h.Service.AddServiceTask(r.Context(), in)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"service_task": created})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		var in domain.ServiceTask
		if !decode(w, r, &in) {
			return
		}
		updated, err := h.Service.UpdateServiceTask(r.Context(), id, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"service_task": updated})
	case http.MethodDelete:
		if err := h.Service.DeleteServiceTask(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"kpis": h.Service.KPIs()})
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trends": h.Service.Trends()})
}

// handleCalendar serves the month grid. Without parameters it jumps to
// today's month; ?year=&month= selects any other month, and ?date= narrows
// to the reservations covering a single day.
func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	if raw := q.Get("date"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"date":         date,
			"reservations": h.Service.ReservationsOn(date),
		})
		return
	}
	if q.Get("year") != "" || q.Get("month") != "" {
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		monthNum, err := strconv.Atoi(q.Get("month"))
		if err != nil || monthNum < 1 || monthNum > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month := time.Month(monthNum)
		writeJSON(w, http.StatusOK, map[string]any{
			"year":  year,
			"month": monthNum,
			"days":  h.Service.Calendar(year, month),
		})
		return
	}
	today, days := h.Service.CalendarToday()
	writeJSON(w, http.StatusOK, map[string]any{
		"today": today,
		"year":  today.Year,
		"month": int(today.Month),
		"days":  days,
	})
}

// List rows carry the resolved resource name so clients need no join;
// dangling references render the placeholder instead of failing.

type reservationRow struct {
	domain.Reservation
	ResourceName string `json:"resource_name"`
}

type serviceTaskRow struct {
	domain.ServiceTask
	ResourceName string `json:"resource_name"`
}

func (h *Handler) withReservationNames(reservations []domain.Reservation) []reservationRow {
	rows := make([]reservationRow, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, reservationRow{Reservation: r, ResourceName: h.Service.ResourceName(r.ResourceID)})
	}
	return rows
}

func (h *Handler) withTaskNames(tasks []domain.ServiceTask) []serviceTaskRow {
	rows := make([]serviceTaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, serviceTaskRow{ServiceTask: t, ResourceName: h.Service.ResourceName(t.ResourceID)})
	}
	return rows
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Conflicts
// carry the blocking reservation's id so the client can surface it.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		validation domain.ValidationError
		reference  domain.ReferenceError
		conflict   domain.ConflictError
		notFound   *domain.NotFoundError
		persist    *domain.PersistenceError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &reference):
		writeError(w, http.StatusUnprocessableEntity, reference.Error())
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":                   conflict.Error(),
			"conflicting_reservation": conflict.ReservationID,
		})
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &persist):
		writeError(w, http.StatusInternalServerError, "persistence failure")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
