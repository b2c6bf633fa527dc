package domain

import "time"

// ReservationsOnDate returns every reservation, regardless of status, whose
// inclusive [start, end] range contains the given day. Collection order is
// preserved. Lookups never mutate state.
func ReservationsOnDate(reservations []Reservation, day Date) []Reservation {
	var out []Reservation
	for _, r := range reservations {
		if !day.Before(r.StartDate) && !day.After(r.EndDate) {
			out = append(out, r)
		}
	}
	return out
}

// CalendarDay is one cell of a month grid: a date and the reservations
// overlapping it.
type CalendarDay struct {
	Date         Date          `json:"date"`
	Reservations []Reservation `json:"reservations"`
}

// MonthGrid enumerates every day of the given month, 1..DaysInMonth, with the
// reservations overlapping each day. Callers navigate by supplying adjacent
// year/month pairs; "jump to today" is the grid for today's year and month.
func MonthGrid(reservations []Reservation, year int, month time.Month) []CalendarDay {
	total := DaysInMonth(year, month)
	grid := make([]CalendarDay, 0, total)
	for day := 1; day <= total; day++ {
		date := Date{Year: year, Month: month, Day: day}
		grid = append(grid, CalendarDay{
			Date:         date,
			Reservations: ReservationsOnDate(reservations, date),
		})
	}
	return grid
}
