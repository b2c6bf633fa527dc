package domain

// DeriveStatus computes a resource's availability from the current
// reservation and service task collections and the given day. Precedence is
// fixed: an active reservation covering today always wins over a pending
// service task for the same resource.
//
// Status is never cached or stored. Callers recompute on every read, so the
// value stays live as today advances past a reservation's end date without
// any explicit write.
func DeriveStatus(resource Resource, reservations []Reservation, tasks []ServiceTask, today Date) ResourceStatus {
	for _, r := range reservations {
		if r.ResourceID != resource.ID || r.Status != ReservationActive {
			continue
		}
		if !today.Before(r.StartDate) && !today.After(r.EndDate) {
			return StatusReserved
		}
	}
	for _, t := range tasks {
		if t.ResourceID != resource.ID {
			continue
		}
		if t.Status != ServiceScheduled && t.Status != ServiceInProgress {
			continue
		}
		if !t.ScheduledDate.After(today) {
			return StatusInService
		}
	}
	return StatusAvailable
}
