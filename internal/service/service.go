// Package service implements the command and query surface over the fleet
// store: validation, reference integrity, reservation conflict rejection, and
// the derived read models every view depends on.
package service

import (
	"context"
	"sync"
	"time"

	"fleetcore/internal/store"
	"fleetcore/pkg/domain"
)

// Service wraps the store with the domain rules. Commands validate before
// any write and serialize through a mutex so a conflict check and the write
// it guards cannot interleave.
type Service struct {
	store *store.Store

	mu    sync.Mutex
	nowFn func() domain.Date
}

// New returns a service over the given store, using the wall clock for
// "today".
func New(st *store.Store) *Service {
	return NewWithClock(st, func() domain.Date { return domain.DateOf(time.Now()) })
}

// NewWithClock pins the "today" source, for tests and replay tooling.
func NewWithClock(st *store.Store, today func() domain.Date) *Service {
	return &Service{store: st, nowFn: today}
}

// Today reports the date every derived read uses.
func (s *Service) Today() domain.Date { return s.nowFn() }

func validateResource(r domain.Resource) error {
	if r.Name == "" {
		return domain.ValidationError{Field: "name", Reason: "required"}
	}
	if !r.Category.Valid() {
		return domain.ValidationError{Field: "category", Reason: "unknown category"}
	}
	if !r.Condition.Valid() {
		return domain.ValidationError{Field: "condition", Reason: "unknown condition"}
	}
	if r.Location == "" {
		return domain.ValidationError{Field: "location", Reason: "required"}
	}
	return nil
}

func validateReservation(r domain.Reservation) error {
	if r.ResourceID == "" {
		return domain.ValidationError{Field: "resource_id", Reason: "required"}
	}
	if r.CustomerName == "" {
		return domain.ValidationError{Field: "customer_name", Reason: "required"}
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return domain.ValidationError{Field: "start_date", Reason: "start and end dates required"}
	}
	if r.StartDate.After(r.EndDate) {
		return domain.ValidationError{Field: "end_date", Reason: "end date precedes start date"}
	}
	if r.Fee <= 0 {
		return domain.ValidationError{Field: "fee", Reason: "must be positive"}
	}
	if !r.Status.Valid() {
		return domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return nil
}

func validateServiceTask(t domain.ServiceTask) error {
	if t.ResourceID == "" {
		return domain.ValidationError{Field: "resource_id", Reason: "required"}
	}
	if t.Type == "" {
		return domain.ValidationError{Field: "type", Reason: "required"}
	}
	if t.ScheduledDate.IsZero() {
		return domain.ValidationError{Field: "scheduled_date", Reason: "required"}
	}
	if t.AssignedTo == "" {
		return domain.ValidationError{Field: "assigned_to", Reason: "required"}
	}
	if t.Cost <= 0 {
		return domain.ValidationError{Field: "cost", Reason: "must be positive"}
	}
	if !t.Status.Valid() {
		return domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return nil
}

// requireResource enforces reference integrity at creation and edit time.
func (s *Service) requireResource(entity domain.EntityType, id string) error {
	if _, ok := s.store.GetResource(id); !ok {
		return domain.ReferenceError{Entity: entity, ID: id}
	}
	return nil
}

// checkConflict rejects an Active reservation overlapping another Active one
// on the same resource. excludeID skips the reservation being edited.
func (s *Service) checkConflict(candidate domain.Reservation) error {
	if candidate.Status != domain.ReservationActive {
		return nil
	}
	if hit, ok := domain.FindConflict(candidate.ResourceID, candidate, s.store.Reservations()); ok {
		return domain.ConflictError{
			ResourceID:    candidate.ResourceID,
			ReservationID: hit.ID,
			StartDate:     hit.StartDate,
			EndDate:       hit.EndDate,
		}
	}
	return nil
}

// AddResource validates and stores a new resource. The input's Base is
// ignored; identity comes from the store.
func (s *Service) AddResource(ctx context.Context, r domain.Resource) (domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateResource(r); err != nil {
		return domain.Resource{}, err
	}
	return s.store.CreateResource(ctx, r)
}

// UpdateResource replaces the mutable fields of an existing resource.
func (s *Service) UpdateResource(ctx context.Context, id string, r domain.Resource) (domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateResource(r); err != nil {
		return domain.Resource{}, err
	}
	return s.store.UpdateResource(ctx, id, func(cur *domain.Resource) {
		cur.Name = r.Name
		cur.Category = r.Category
		cur.Condition = r.Condition
		cur.Location = r.Location
		cur.LastServiceDate = r.LastServiceDate
	})
}

// DeleteResource removes a resource. Reservations and service tasks that
// still reference it are deliberately left behind.
func (s *Service) DeleteResource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteResource(ctx, id)
}

// AddReservation validates, checks reference integrity and overlap, and
// stores a new reservation.
func (s *Service) AddReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Status == "" {
		r.Status = domain.ReservationActive
	}
	if err := validateReservation(r); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.requireResource(domain.EntityReservation, r.ResourceID); err != nil {
		return domain.Reservation{}, err
	}
	r.ID = ""
	if err := s.checkConflict(r); err != nil {
		return domain.Reservation{}, err
	}
	return s.store.CreateReservation(ctx, r)
}

// UpdateReservation replaces the mutable fields of an existing reservation,
// re-running the reference and overlap checks against the new values.
func (s *Service) UpdateReservation(ctx context.Context, id string, r domain.Reservation) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateReservation(r); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.requireResource(domain.EntityReservation, r.ResourceID); err != nil {
		return domain.Reservation{}, err
	}
	r.ID = id
	if err := s.checkConflict(r); err != nil {
		return domain.Reservation{}, err
	}
	return s.store.UpdateReservation(ctx, id, func(cur *domain.Reservation) {
		cur.ResourceID = r.ResourceID
		cur.CustomerName = r.CustomerName
		cur.StartDate = r.StartDate
		cur.EndDate = r.EndDate
		cur.Fee = r.Fee
		cur.Status = r.Status
		cur.Notes = r.Notes
	})
}

// DeleteReservation removes a reservation.
func (s *Service) DeleteReservation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteReservation(ctx, id)
}

// AddServiceTask validates, checks reference integrity, and stores a new
// service task.
func (s *Service) AddServiceTask(ctx context.Context, t domain.ServiceTask) (domain.ServiceTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Status == "" {
		t.Status = domain.ServiceScheduled
	}
	if err := validateServiceTask(t); err != nil {
		return domain.ServiceTask{}, err
	}
	if err := s.requireResource(domain.EntityServiceTask, t.ResourceID); err != nil {
		return domain.ServiceTask{}, err
	}
	return s.store.CreateServiceTask(ctx, t)
}

// UpdateServiceTask replaces the mutable fields of an existing service task.
func (s *Service) UpdateServiceTask(ctx context.Context, id string, t domain.ServiceTask) (domain.ServiceTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateServiceTask(t); err != nil {
		return domain.ServiceTask{}, err
	}
	if err := s.requireResource(domain.EntityServiceTask, t.ResourceID); err != nil {
		return domain.ServiceTask{}, err
	}
	return s.store.UpdateServiceTask(ctx, id, func(cur *domain.ServiceTask) {
		cur.ResourceID = t.ResourceID
		cur.Type = t.Type
		cur.Description = t.Description
		cur.ScheduledDate = t.ScheduledDate
		cur.Status = t.Status
		cur.AssignedTo = t.AssignedTo
		cur.Cost = t.Cost
		cur.Notes = t.Notes
	})
}

// DeleteServiceTask removes a service task.
func (s *Service) DeleteServiceTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteServiceTask(ctx, id)
}
