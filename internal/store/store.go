// Package store keeps the fleet collections in memory and snapshots every
// mutation to a persistence medium. Writes follow save-then-swap: the new
// collection is persisted first and memory is only advanced on success, so a
// failed save leaves the in-memory state untouched.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleetcore/internal/storage"
	"fleetcore/pkg/domain"
)

// Store owns the three fleet collections. Insertion order is preserved; reads
// return copies so callers can never mutate shared state.
type Store struct {
	medium storage.Medium

	mu           sync.RWMutex
	resources    []domain.Resource
	reservations []domain.Reservation
	tasks        []domain.ServiceTask

	nowFn func() time.Time
	newID func() string
}

// Open hydrates a store from the medium. Collections the medium has never
// seen are seeded with the sample fleet and written back immediately, so a
// first run starts with data and a wiped collection stays empty.
func Open(ctx context.Context, medium storage.Medium) (*Store, error) {
	s := &Store{
		medium: medium,
		nowFn:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	if err := loadOrSeed(ctx, medium, domain.CollectionResources, &s.resources, seedResources(s.nowFn())); err != nil {
		return nil, err
	}
	if err := loadOrSeed(ctx, medium, domain.CollectionReservations, &s.reservations, seedReservations(s.nowFn())); err != nil {
		return nil, err
	}
	if err := loadOrSeed(ctx, medium, domain.CollectionServiceTasks, &s.tasks, seedServiceTasks(s.nowFn())); err != nil {
		return nil, err
	}
	return s, nil
}

func loadOrSeed[T any](ctx context.Context, medium storage.Medium, name string, dst *[]T, seed []T) error {
	payload, ok, err := medium.LoadCollection(ctx, name)
	if err != nil {
		return &domain.PersistenceError{Op: "load", Collection: name, Err: err}
	}
	if !ok {
		data, err := json.Marshal(seed)
		if err != nil {
			return &domain.PersistenceError{Op: "encode", Collection: name, Err: err}
		}
		if err := medium.SaveCollection(ctx, name, data); err != nil {
			return &domain.PersistenceError{Op: "save", Collection: name, Err: err}
		}
		*dst = seed
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return &domain.PersistenceError{Op: "decode", Collection: name, Err: err}
	}
	return nil
}

func (s *Store) save(ctx context.Context, name string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Collection: name, Err: err}
	}
	if err := s.medium.SaveCollection(ctx, name, data); err != nil {
		return &domain.PersistenceError{Op: "save", Collection: name, Err: err}
	}
	return nil
}

// Medium reports the backing medium, mostly for startup logging.
func (s *Store) Medium() storage.Medium { return s.medium }

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Resources returns a copy of the resource collection in insertion order.
func (s *Store) Resources() []domain.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.resources)
}

// Reservations returns a copy of the reservation collection in insertion order.
func (s *Store) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.reservations)
}

// ServiceTasks returns a copy of the service task collection in insertion order.
func (s *Store) ServiceTasks() []domain.ServiceTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.tasks)
}

// GetResource looks a resource up by id.
func (s *Store) GetResource(id string) (domain.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.resources {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Resource{}, false
}

// GetReservation looks a reservation up by id.
func (s *Store) GetReservation(id string) (domain.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Reservation{}, false
}

// GetServiceTask looks a service task up by id.
func (s *Store) GetServiceTask(id string) (domain.ServiceTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.ServiceTask{}, false
}

// CreateResource assigns identity and timestamps, persists the grown
// collection, and returns the stored record.
func (s *Store) CreateResource(ctx context.Context, r domain.Resource) (domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	r.ID = s.newID()
	r.CreatedAt, r.UpdatedAt = now, now
	next := append(cloneSlice(s.resources), r)
	if err := s.save(ctx, domain.CollectionResources, next); err != nil {
		return domain.Resource{}, err
	}
	s.resources = next
	return r, nil
}

// UpdateResource applies mutate to a copy of the record, bumps UpdatedAt,
// and persists. Identity and CreatedAt cannot be changed by the mutator.
func (s *Store) UpdateResource(ctx context.Context, id string, mutate func(*domain.Resource)) (domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, r := range s.resources {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Resource{}, &domain.NotFoundError{Entity: domain.EntityResource, ID: id}
	}
	next := cloneSlice(s.resources)
	updated := next[idx]
	mutate(&updated)
	updated.Base = next[idx].Base
	updated.UpdatedAt = s.nowFn()
	next[idx] = updated
	if err := s.save(ctx, domain.CollectionResources, next); err != nil {
		return domain.Resource{}, err
	}
	s.resources = next
	return updated, nil
}

// DeleteResource removes the record. Reservations and service tasks that
// reference it are left in place; readers render them with a placeholder name.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Resource, 0, len(s.resources))
	found := false
	for _, r := range s.resources {
		if r.ID == id {
			found = true
			continue
		}
		next = append(next, r)
	}
	if !found {
		return &domain.NotFoundError{Entity: domain.EntityResource, ID: id}
	}
	if err := s.save(ctx, domain.CollectionResources, next); err != nil {
		return err
	}
	s.resources = next
	return nil
}

// CreateReservation assigns identity and timestamps, persists, and returns
// the stored record.
func (s *Store) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	r.ID = s.newID()
	r.CreatedAt, r.UpdatedAt = now, now
	next := append(cloneSlice(s.reservations), r)
	if err := s.save(ctx, domain.CollectionReservations, next); err != nil {
		return domain.Reservation{}, err
	}
	s.reservations = next
	return r, nil
}

// UpdateReservation applies mutate to a copy of the record, bumps UpdatedAt,
// and persists.
func (s *Store) UpdateReservation(ctx context.Context, id string, mutate func(*domain.Reservation)) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, r := range s.reservations {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Reservation{}, &domain.NotFoundError{Entity: domain.EntityReservation, ID: id}
	}
	next := cloneSlice(s.reservations)
	updated := next[idx]
	mutate(&updated)
	updated.Base = next[idx].Base
	updated.UpdatedAt = s.nowFn()
	next[idx] = updated
	if err := s.save(ctx, domain.CollectionReservations, next); err != nil {
		return domain.Reservation{}, err
	}
	s.reservations = next
	return updated, nil
}

// DeleteReservation removes the record.
func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Reservation, 0, len(s.reservations))
	found := false
	for _, r := range s.reservations {
		if r.ID == id {
			found = true
			continue
		}
		next = append(next, r)
	}
	if !found {
		return &domain.NotFoundError{Entity: domain.EntityReservation, ID: id}
	}
	if err := s.save(ctx, domain.CollectionReservations, next); err != nil {
		return err
	}
	s.reservations = next
	return nil
}

// CreateServiceTask assigns identity and timestamps, persists, and returns
// the stored record.
func (s *Store) CreateServiceTask(ctx context.Context, t domain.ServiceTask) (domain.ServiceTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	t.ID = s.newID()
	t.CreatedAt, t.UpdatedAt = now, now
	next := append(cloneSlice(s.tasks), t)
	if err := s.save(ctx, domain.CollectionServiceTasks, next); err != nil {
		return domain.ServiceTask{}, err
	}
	s.tasks = next
	return t, nil
}

// UpdateServiceTask applies mutate to a copy of the record, bumps UpdatedAt,
// and persists.
func (s *Store) UpdateServiceTask(ctx context.Context, id string, mutate func(*domain.ServiceTask)) (domain.ServiceTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ServiceTask{}, &domain.NotFoundError{Entity: domain.EntityServiceTask, ID: id}
	}
	next := cloneSlice(s.tasks)
	updated := next[idx]
	mutate(&updated)
	updated.Base = next[idx].Base
	updated.UpdatedAt = s.nowFn()
	next[idx] = updated
	if err := s.save(ctx, domain.CollectionServiceTasks, next); err != nil {
		return domain.ServiceTask{}, err
	}
	s.tasks = next
	return updated, nil
}

// DeleteServiceTask removes the record.
func (s *Store) DeleteServiceTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.ServiceTask, 0, len(s.tasks))
	found := false
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return &domain.NotFoundError{Entity: domain.EntityServiceTask, ID: id}
	}
	if err := s.save(ctx, domain.CollectionServiceTasks, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}
