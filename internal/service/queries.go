package service

import (
	"time"

	"fleetcore/pkg/domain"
)

// ResourceFilter narrows the resource list. Zero values match everything.
type ResourceFilter struct {
	Status   domain.ResourceStatus
	Category domain.ResourceCategory
}

// ResourceDetail is the read model behind a single resource page: the
// derived view plus its full reservation and service history.
type ResourceDetail struct {
	domain.ResourceView
	Reservations []domain.Reservation `json:"reservations"`
	ServiceTasks []domain.ServiceTask `json:"service_tasks"`
}

// Resources lists every resource with its status derived against today,
// optionally filtered. Status is recomputed on every call, never cached.
func (s *Service) Resources(filter ResourceFilter) []domain.ResourceView {
	today := s.nowFn()
	reservations := s.store.Reservations()
	tasks := s.store.ServiceTasks()

	var views []domain.ResourceView
	for _, r := range s.store.Resources() {
		status := domain.DeriveStatus(r, reservations, tasks, today)
		if filter.Status != "" && status != filter.Status {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		views = append(views, domain.ResourceView{Resource: r, Status: status})
	}
	return views
}

// Resource returns the detail read model for one resource.
func (s *Service) Resource(id string) (ResourceDetail, error) {
	r, ok := s.store.GetResource(id)
	if !ok {
		return ResourceDetail{}, &domain.NotFoundError{Entity: domain.EntityResource, ID: id}
	}
	reservations := s.store.Reservations()
	tasks := s.store.ServiceTasks()
	detail := ResourceDetail{
		ResourceView: domain.ResourceView{
			Resource: r,
			Status:   domain.DeriveStatus(r, reservations, tasks, s.nowFn()),
		},
	}
	for _, res := range reservations {
		if res.ResourceID == id {
			detail.Reservations = append(detail.Reservations, res)
		}
	}
	for _, t := range tasks {
		if t.ResourceID == id {
			detail.ServiceTasks = append(detail.ServiceTasks, t)
		}
	}
	return detail, nil
}

// Reservations lists reservations, optionally filtered by status.
func (s *Service) Reservations(status domain.ReservationStatus) []domain.Reservation {
	all := s.store.Reservations()
	if status == "" {
		return all
	}
	var out []domain.Reservation
	for _, r := range all {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// ServiceTasks lists service tasks, optionally filtered by status.
func (s *Service) ServiceTasks(status domain.ServiceTaskStatus) []domain.ServiceTask {
	all := s.store.ServiceTasks()
	if status == "" {
		return all
	}
	var out []domain.ServiceTask
	for _, t := range all {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// ResourceName resolves a resource id to its display name, falling back to
// the dangling-reference placeholder.
func (s *Service) ResourceName(id string) string {
	return domain.ResolveResourceName(s.store.Resources(), id)
}

// KPIs computes the dashboard snapshot from live collections.
func (s *Service) KPIs() domain.KPISnapshot {
	return domain.ComputeKPIs(s.store.Resources(), s.store.Reservations(), s.store.ServiceTasks(), s.nowFn())
}

// Trends computes the six-month reservation trend ending this month.
func (s *Service) Trends() []domain.TrendBucket {
	return domain.ReservationTrends(s.store.Reservations(), s.nowFn())
}

// Calendar enumerates the month grid with the reservations covering each day.
func (s *Service) Calendar(year int, month time.Month) []domain.CalendarDay {
	return domain.MonthGrid(s.store.Reservations(), year, month)
}

// CalendarToday is the jump-to-today reset: the current month's grid plus
// today's date for highlighting.
func (s *Service) CalendarToday() (domain.Date, []domain.CalendarDay) {
	today := s.nowFn()
	return today, domain.MonthGrid(s.store.Reservations(), today.Year, today.Month)
}

// ReservationsOn lists every reservation whose range contains the date.
func (s *Service) ReservationsOn(date domain.Date) []domain.Reservation {
	return domain.ReservationsOnDate(s.store.Reservations(), date)
}
