package domain

import "testing"

func TestOverlapsInclusiveBounds(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2024-02-01", "2024-02-05", "2024-02-06", "2024-02-10", false},
		{"touching endpoints", "2024-02-01", "2024-02-05", "2024-02-05", "2024-02-10", true},
		{"contained", "2024-02-01", "2024-02-28", "2024-02-10", "2024-02-12", true},
		{"partial", "2024-02-01", "2024-02-15", "2024-02-10", "2024-02-20", true},
		{"single day both", "2024-02-10", "2024-02-10", "2024-02-10", "2024-02-10", true},
		{"disjoint after", "2024-02-16", "2024-02-20", "2024-02-01", "2024-02-15", false},
	}
	for _, c := range cases {
		got := Overlaps(MustDate(c.aStart), MustDate(c.aEnd), MustDate(c.bStart), MustDate(c.bEnd))
		if got != c.want {
			t.Errorf("%s: Overlaps = %v, expected %v", c.name, got, c.want)
		}
		// Overlap is symmetric.
		if rev := Overlaps(MustDate(c.bStart), MustDate(c.bEnd), MustDate(c.aStart), MustDate(c.aEnd)); rev != got {
			t.Errorf("%s: asymmetric overlap result", c.name)
		}
	}
}

func TestFindConflictMatchesActiveSameResource(t *testing.T) {
	existing := []Reservation{
		{Base: Base{ID: "r1"}, ResourceID: "x", Status: ReservationActive,
			StartDate: MustDate("2024-02-01"), EndDate: MustDate("2024-02-15")},
		{Base: Base{ID: "r2"}, ResourceID: "y", Status: ReservationActive,
			StartDate: MustDate("2024-02-01"), EndDate: MustDate("2024-02-28")},
		{Base: Base{ID: "r3"}, ResourceID: "x", Status: ReservationCompleted,
			StartDate: MustDate("2024-02-16"), EndDate: MustDate("2024-02-28")},
	}

	candidate := Reservation{
		Base: Base{ID: "new"}, ResourceID: "x", Status: ReservationActive,
		StartDate: MustDate("2024-02-10"), EndDate: MustDate("2024-02-20"),
	}
	hit, ok := FindConflict("x", candidate, existing)
	if !ok || hit.ID != "r1" {
		t.Fatalf("expected conflict with r1, got ok=%v id=%q", ok, hit.ID)
	}

	// Adjacent-but-disjoint range is free even though a completed booking
	// covers it.
	candidate.StartDate = MustDate("2024-02-16")
	candidate.EndDate = MustDate("2024-02-20")
	if _, ok := FindConflict("x", candidate, existing); ok {
		t.Fatal("expected no conflict for disjoint range")
	}

	// A different resource never conflicts.
	candidate.StartDate = MustDate("2024-02-10")
	candidate.EndDate = MustDate("2024-02-20")
	if _, ok := FindConflict("z", candidate, existing); ok {
		t.Fatal("expected no conflict for unrelated resource")
	}
}

func TestFindConflictExcludesReservationBeingEdited(t *testing.T) {
	existing := []Reservation{
		{Base: Base{ID: "r1"}, ResourceID: "x", Status: ReservationActive,
			StartDate: MustDate("2024-02-01"), EndDate: MustDate("2024-02-15")},
	}
	// Editing r1 itself: its own stored range must not count as a conflict.
	edited := Reservation{
		Base: Base{ID: "r1"}, ResourceID: "x", Status: ReservationActive,
		StartDate: MustDate("2024-02-05"), EndDate: MustDate("2024-02-18"),
	}
	if _, ok := FindConflict("x", edited, existing); ok {
		t.Fatal("reservation must not conflict with itself during edit")
	}
}
