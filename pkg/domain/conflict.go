package domain

// Overlaps reports whether two inclusive date ranges share at least one
// calendar day: a.start <= b.end && b.start <= a.end.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// FindConflict scans existing reservations for an active booking of the same
// resource whose range overlaps the candidate's. The reservation being edited
// is excluded by id. Returns the first conflicting reservation in collection
// order, or false when the candidate range is free.
//
// Only Active reservations block: Completed and Cancelled bookings never
// prevent a new one.
func FindConflict(resourceID string, candidate Reservation, existing []Reservation) (Reservation, bool) {
	for _, r := range existing {
		if r.ID == candidate.ID {
			continue
		}
		if r.ResourceID != resourceID || r.Status != ReservationActive {
			continue
		}
		if Overlaps(candidate.StartDate, candidate.EndDate, r.StartDate, r.EndDate) {
			return r, true
		}
	}
	return Reservation{}, false
}
