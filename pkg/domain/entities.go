// Package domain defines the core persistent entities, derived-state rules,
// and read-side aggregations used by fleetcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in errors and persistence buckets.
const (
	// EntityResource identifies a piece of trackable equipment.
	EntityResource EntityType = "resource"
	// EntityReservation identifies a customer booking record.
	EntityReservation EntityType = "reservation"
	// EntityServiceTask identifies a scheduled maintenance record.
	EntityServiceTask EntityType = "service_task"
)

// Collection names understood by the storage medium.
const (
	CollectionResources    = "resources"
	CollectionReservations = "reservations"
	CollectionServiceTasks = "serviceTasks"
)

// ResourceCategory enumerates the fixed equipment categories.
type ResourceCategory string

// Equipment categories carried over from the rental catalog.
const (
	CategoryHeavyEquipment        ResourceCategory = "Heavy Equipment"
	CategoryConstructionEquipment ResourceCategory = "Construction Equipment"
	CategorySafetyEquipment       ResourceCategory = "Safety Equipment"
	CategoryTools                 ResourceCategory = "Tools"
)

// Valid reports whether the category is one of the known values.
func (c ResourceCategory) Valid() bool {
	switch c {
	case CategoryHeavyEquipment, CategoryConstructionEquipment, CategorySafetyEquipment, CategoryTools:
		return true
	}
	return false
}

// ResourceCondition grades the physical state of a resource.
type ResourceCondition string

// Condition grades from best to worst.
const (
	ConditionExcellent ResourceCondition = "Excellent"
	ConditionGood      ResourceCondition = "Good"
	ConditionFair      ResourceCondition = "Fair"
	ConditionPoor      ResourceCondition = "Poor"
)

// Valid reports whether the condition is one of the known grades.
func (c ResourceCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// ResourceStatus is the derived availability of a resource. It is never
// stored; DeriveStatus recomputes it from the reservation and service task
// collections on every read.
type ResourceStatus string

// Derived statuses, in precedence order.
const (
	StatusReserved  ResourceStatus = "Reserved"
	StatusInService ResourceStatus = "InService"
	StatusAvailable ResourceStatus = "Available"
)

// ResourceStatuses lists every derived status in a stable display order.
var ResourceStatuses = []ResourceStatus{StatusAvailable, StatusReserved, StatusInService}

// ReservationStatus enumerates booking lifecycle states.
type ReservationStatus string

// Booking lifecycle states.
const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCompleted ReservationStatus = "Completed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// Valid reports whether the status is one of the known states.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationActive, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// ServiceTaskStatus enumerates maintenance workflow states.
type ServiceTaskStatus string

// Maintenance workflow states.
const (
	ServiceScheduled  ServiceTaskStatus = "Scheduled"
	ServiceInProgress ServiceTaskStatus = "In Progress"
	ServiceCompleted  ServiceTaskStatus = "Completed"
)

// Valid reports whether the status is one of the known states.
func (s ServiceTaskStatus) Valid() bool {
	switch s {
	case ServiceScheduled, ServiceInProgress, ServiceCompleted:
		return true
	}
	return false
}

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resource represents a piece of equipment available for reservation or
// service. Its availability status is not a field here: it is derived from
// the reservation and service task collections (see DeriveStatus).
type Resource struct {
	Base
	Name            string            `json:"name"`
	Category        ResourceCategory  `json:"category"`
	Condition       ResourceCondition `json:"condition"`
	Location        string            `json:"location"`
	LastServiceDate Date              `json:"last_service_date"`
}

// ResourceView pairs a stored resource with its derived status for read-side
// consumers. Views are computed per read and never persisted.
type ResourceView struct {
	Resource
	Status ResourceStatus `json:"status"`
}

// Reservation is a customer's booking of a resource over an inclusive date
// range. The relationship to Resource is by id lookup only; deleting a
// resource does not cascade here.
type Reservation struct {
	Base
	ResourceID   string            `json:"resource_id"`
	CustomerName string            `json:"customer_name"`
	StartDate    Date              `json:"start_date"`
	EndDate      Date              `json:"end_date"`
	Fee          float64           `json:"fee"`
	Status       ReservationStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
}

// ServiceTask is a scheduled maintenance or repair activity against a
// resource.
type ServiceTask struct {
	Base
	ResourceID    string            `json:"resource_id"`
	Type          string            `json:"type"`
	Description   string            `json:"description,omitempty"`
	ScheduledDate Date              `json:"scheduled_date"`
	Status        ServiceTaskStatus `json:"status"`
	AssignedTo    string            `json:"assigned_to"`
	Cost          float64           `json:"cost"`
	Notes         string            `json:"notes,omitempty"`
}

// UnknownResourceName is the placeholder shown for records whose resource id
// no longer resolves. Dangling references are permitted: deleting a resource
// leaves its reservations and service tasks in place.
const UnknownResourceName = "Unknown Equipment"

// ResolveResourceName returns the referenced resource's name, or the
// UnknownResourceName placeholder when the id does not resolve.
func ResolveResourceName(resources []Resource, id string) string {
	for _, r := range resources {
		if r.ID == id {
			return r.Name
		}
	}
	return UnknownResourceName
}
