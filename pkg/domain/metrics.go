package domain

import "time"

// upcomingServiceWindowDays is the inclusive look-ahead for the upcoming
// service KPI.
const upcomingServiceWindowDays = 7

// KPISnapshot holds the dashboard counters. All values are pure functions of
// the three collections and today; nothing here is persisted.
type KPISnapshot struct {
	TotalResources      int                    `json:"total_resources"`
	ByStatus            map[ResourceStatus]int `json:"by_status"`
	OverdueReservations int                    `json:"overdue_reservations"`
	UpcomingService     int                    `json:"upcoming_service"`
	ReservationFees     float64                `json:"reservation_fees"`
	ServiceCosts        float64                `json:"service_costs"`
}

// IsOverdue reports whether a reservation is active and past its end date.
// A reservation ending today is not yet overdue; one that completed or was
// cancelled never is.
func IsOverdue(r Reservation, today Date) bool {
	return r.Status == ReservationActive && r.EndDate.Before(today)
}

// IsUpcomingService reports whether a task is still open and scheduled within
// the next week, today inclusive at both ends.
func IsUpcomingService(t ServiceTask, today Date) bool {
	if t.Status == ServiceCompleted {
		return false
	}
	horizon := today.AddDays(upcomingServiceWindowDays)
	return !t.ScheduledDate.Before(today) && !t.ScheduledDate.After(horizon)
}

// ComputeKPIs derives the dashboard counters from the current collections.
// Status counts use DeriveStatus, so every status in the snapshot reflects
// today rather than any stored flag.
func ComputeKPIs(resources []Resource, reservations []Reservation, tasks []ServiceTask, today Date) KPISnapshot {
	snap := KPISnapshot{
		TotalResources: len(resources),
		ByStatus:       make(map[ResourceStatus]int, len(ResourceStatuses)),
	}
	for _, status := range ResourceStatuses {
		snap.ByStatus[status] = 0
	}
	for _, res := range resources {
		snap.ByStatus[DeriveStatus(res, reservations, tasks, today)]++
	}
	for _, r := range reservations {
		if IsOverdue(r, today) {
			snap.OverdueReservations++
		}
		if r.Status != ReservationCancelled {
			snap.ReservationFees += r.Fee
		}
	}
	for _, t := range tasks {
		if IsUpcomingService(t, today) {
			snap.UpcomingService++
		}
		snap.ServiceCosts += t.Cost
	}
	return snap
}

// TrendBucket counts reservations starting within one calendar month.
type TrendBucket struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Count int    `json:"count"`
}

// trendWindowMonths is the number of months in the dashboard trend chart.
const trendWindowMonths = 6

// ReservationTrends buckets reservations by start month over the six calendar
// months ending with today's month, oldest first. Buckets are computed
// independently on every call; no rolling state is carried between calls.
func ReservationTrends(reservations []Reservation, today Date) []TrendBucket {
	buckets := make([]TrendBucket, 0, trendWindowMonths)
	for i := trendWindowMonths - 1; i >= 0; i-- {
		// time.Date normalizes out-of-range months, so January minus two
		// yields November of the prior year.
		monthStart := time.Date(today.Year, today.Month-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		bucket := TrendBucket{
			Label: monthStart.Format("Jan"),
			Year:  monthStart.Year(),
			Month: int(monthStart.Month()),
		}
		for _, r := range reservations {
			if r.StartDate.Year == bucket.Year && int(r.StartDate.Month) == bucket.Month {
				bucket.Count++
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}
