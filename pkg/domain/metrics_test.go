package domain

import "testing"

func TestIsOverdueBoundary(t *testing.T) {
	today := MustDate("2024-02-10")
	r := Reservation{Base: Base{ID: "r1"}, Status: ReservationActive}

	r.EndDate = today
	if IsOverdue(r, today) {
		t.Fatal("ending today is not overdue")
	}
	r.EndDate = today.AddDays(-1)
	if !IsOverdue(r, today) {
		t.Fatal("ended yesterday is overdue")
	}
	r.Status = ReservationCompleted
	if IsOverdue(r, today) {
		t.Fatal("completed reservations are never overdue")
	}
}

func TestIsUpcomingServiceWindow(t *testing.T) {
	today := MustDate("2024-02-10")
	task := ServiceTask{Status: ServiceScheduled}

	cases := []struct {
		scheduled string
		want      bool
	}{
		{"2024-02-09", false}, // already due, not upcoming
		{"2024-02-10", true},  // today inclusive
		{"2024-02-17", true},  // today+7 inclusive
		{"2024-02-18", false},
	}
	for _, c := range cases {
		task.ScheduledDate = MustDate(c.scheduled)
		if got := IsUpcomingService(task, today); got != c.want {
			t.Errorf("scheduled %s: got %v, expected %v", c.scheduled, got, c.want)
		}
	}

	task.ScheduledDate = MustDate("2024-02-12")
	task.Status = ServiceCompleted
	if IsUpcomingService(task, today) {
		t.Fatal("completed tasks are never upcoming")
	}
}

func TestComputeKPIs(t *testing.T) {
	today := MustDate("2024-02-10")
	resources := []Resource{
		{Base: Base{ID: "1"}},
		{Base: Base{ID: "2"}},
		{Base: Base{ID: "3"}},
	}
	reservations := []Reservation{
		// Covers today: resource 1 is Reserved.
		{Base: Base{ID: "r1"}, ResourceID: "1", Status: ReservationActive, Fee: 1500,
			StartDate: MustDate("2024-02-01"), EndDate: MustDate("2024-02-15")},
		// Active and past its end date: overdue.
		{Base: Base{ID: "r2"}, ResourceID: "2", Status: ReservationActive, Fee: 800,
			StartDate: MustDate("2024-01-01"), EndDate: MustDate("2024-01-31")},
		// Cancelled: excluded from fees, never overdue.
		{Base: Base{ID: "r3"}, ResourceID: "3", Status: ReservationCancelled, Fee: 999,
			StartDate: MustDate("2024-01-01"), EndDate: MustDate("2024-01-31")},
	}
	tasks := []ServiceTask{
		// Resource 2's reservation ended in January, so this due task puts it
		// InService. Past-due means it is not "upcoming".
		{Base: Base{ID: "t1"}, ResourceID: "2", Status: ServiceScheduled, Cost: 500,
			ScheduledDate: MustDate("2024-02-05")},
		{Base: Base{ID: "t2"}, ResourceID: "3", Status: ServiceScheduled, Cost: 300,
			ScheduledDate: MustDate("2024-02-12")},
	}

	snap := ComputeKPIs(resources, reservations, tasks, today)
	if snap.TotalResources != 3 {
		t.Fatalf("total = %d", snap.TotalResources)
	}
	if snap.ByStatus[StatusReserved] != 1 || snap.ByStatus[StatusInService] != 1 || snap.ByStatus[StatusAvailable] != 1 {
		t.Fatalf("unexpected distribution: %+v", snap.ByStatus)
	}
	if snap.OverdueReservations != 1 {
		t.Fatalf("overdue = %d, expected 1", snap.OverdueReservations)
	}
	if snap.UpcomingService != 1 {
		t.Fatalf("upcoming = %d, expected 1", snap.UpcomingService)
	}
	if snap.ReservationFees != 2300 {
		t.Fatalf("fees = %v, expected 2300", snap.ReservationFees)
	}
	if snap.ServiceCosts != 800 {
		t.Fatalf("costs = %v, expected 800", snap.ServiceCosts)
	}
}

func TestComputeKPIsEmptyCollections(t *testing.T) {
	snap := ComputeKPIs(nil, nil, nil, MustDate("2024-02-10"))
	if snap.TotalResources != 0 || snap.OverdueReservations != 0 || snap.UpcomingService != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	for _, status := range ResourceStatuses {
		if _, ok := snap.ByStatus[status]; !ok {
			t.Fatalf("distribution missing %s bucket", status)
		}
	}
}

func TestReservationTrendsSingleReservation(t *testing.T) {
	today := MustDate("2024-03-15")
	reservations := []Reservation{{
		Base: Base{ID: "r1"}, Status: ReservationActive,
		StartDate: MustDate("2024-02-05"), EndDate: MustDate("2024-02-20"),
	}}

	buckets := ReservationTrends(reservations, today)
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(buckets))
	}
	wantLabels := []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}
	for i, b := range buckets {
		if b.Label != wantLabels[i] {
			t.Fatalf("bucket %d label = %s, expected %s", i, b.Label, wantLabels[i])
		}
		wantCount := 0
		if b.Label == "Feb" {
			wantCount = 1
		}
		if b.Count != wantCount {
			t.Fatalf("bucket %s count = %d, expected %d", b.Label, b.Count, wantCount)
		}
	}
	if buckets[0].Year != 2023 || buckets[5].Year != 2024 {
		t.Fatalf("year boundary wrong: first %d last %d", buckets[0].Year, buckets[5].Year)
	}
}

func TestReservationTrendsBucketsByStartMonthOnly(t *testing.T) {
	// A reservation spanning February..April counts once, in February.
	today := MustDate("2024-04-10")
	reservations := []Reservation{{
		Base: Base{ID: "r1"}, Status: ReservationActive,
		StartDate: MustDate("2024-02-25"), EndDate: MustDate("2024-04-05"),
	}}
	total := 0
	for _, b := range ReservationTrends(reservations, today) {
		total += b.Count
		if b.Count > 0 && b.Label != "Feb" {
			t.Fatalf("counted in %s, expected Feb only", b.Label)
		}
	}
	if total != 1 {
		t.Fatalf("total = %d, expected 1", total)
	}
}
