package store

import (
	"time"

	"fleetcore/pkg/domain"
)

// Sample fleet written on first run. The fixed small ids keep the seed
// records' cross-references stable; records created at runtime get UUIDs.

func seedResources(now time.Time) []domain.Resource {
	base := func(id string) domain.Base {
		return domain.Base{ID: id, CreatedAt: now, UpdatedAt: now}
	}
	return []domain.Resource{
		{
			Base:            base("1"),
			Name:            "Excavator CAT 320",
			Category:        domain.CategoryHeavyEquipment,
			Condition:       domain.ConditionGood,
			Location:        "Main Yard",
			LastServiceDate: domain.MustDate("2024-02-15"),
		},
		{
			Base:            base("2"),
			Name:            "Bulldozer Komatsu D65",
			Category:        domain.CategoryHeavyEquipment,
			Condition:       domain.ConditionGood,
			Location:        "Site A",
			LastServiceDate: domain.MustDate("2024-02-10"),
		},
		{
			Base:            base("3"),
			Name:            "Crane Liebherr LTM 1100",
			Category:        domain.CategoryHeavyEquipment,
			Condition:       domain.ConditionExcellent,
			Location:        "Main Yard",
			LastServiceDate: domain.MustDate("2024-02-20"),
		},
		{
			Base:            base("4"),
			Name:            "Concrete Mixer",
			Category:        domain.CategoryConstructionEquipment,
			Condition:       domain.ConditionGood,
			Location:        "Site B",
			LastServiceDate: domain.MustDate("2024-02-05"),
		},
		{
			Base:            base("5"),
			Name:            "Scaffolding Set",
			Category:        domain.CategorySafetyEquipment,
			Condition:       domain.ConditionGood,
			Location:        "Warehouse",
			LastServiceDate: domain.MustDate("2024-02-18"),
		},
	}
}

func seedReservations(now time.Time) []domain.Reservation {
	base := func(id string) domain.Base {
		return domain.Base{ID: id, CreatedAt: now, UpdatedAt: now}
	}
	return []domain.Reservation{
		{
			Base:         base("1"),
			ResourceID:   "2",
			CustomerName: "John Smith",
			StartDate:    domain.MustDate("2024-02-01"),
			EndDate:      domain.MustDate("2024-02-15"),
			Status:       domain.ReservationActive,
			Fee:          1500,
			Notes:        "Site A construction project",
		},
		{
			Base:         base("2"),
			ResourceID:   "4",
			CustomerName: "Sarah Johnson",
			StartDate:    domain.MustDate("2024-02-05"),
			EndDate:      domain.MustDate("2024-02-20"),
			Status:       domain.ReservationActive,
			Fee:          800,
			Notes:        "Site B renovation",
		},
		{
			Base:         base("3"),
			ResourceID:   "2",
			CustomerName: "Mike Brown",
			StartDate:    domain.MustDate("2024-01-15"),
			EndDate:      domain.MustDate("2024-01-30"),
			Status:       domain.ReservationCompleted,
			Fee:          1500,
			Notes:        "Completed successfully",
		},
	}
}

func seedServiceTasks(now time.Time) []domain.ServiceTask {
	base := func(id string) domain.Base {
		return domain.Base{ID: id, CreatedAt: now, UpdatedAt: now}
	}
	return []domain.ServiceTask{
		{
			Base:          base("1"),
			ResourceID:    "1",
			Type:          "Routine",
			Description:   "Regular service and inspection",
			ScheduledDate: domain.MustDate("2024-03-01"),
			Status:        domain.ServiceScheduled,
			AssignedTo:    "John Smith",
			Cost:          500,
		},
		{
			Base:          base("2"),
			ResourceID:    "2",
			Type:          "Repair",
			Description:   "Hydraulic system maintenance",
			ScheduledDate: domain.MustDate("2024-02-25"),
			Status:        domain.ServiceInProgress,
			AssignedTo:    "Mike Johnson",
			Cost:          1200,
		},
		{
			Base:          base("3"),
			ResourceID:    "3",
			Type:          "Inspection",
			Description:   "Annual safety inspection",
			ScheduledDate: domain.MustDate("2024-03-15"),
			Status:        domain.ServiceScheduled,
			AssignedTo:    "Sarah Brown",
			Cost:          300,
		},
	}
}
