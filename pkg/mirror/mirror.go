// Package mirror holds the client-side copy of server data shared across UI
// regions. One namespace per entity; each namespace carries the current list
// page, the open detail record and the server-side total count. Every write
// replaces the whole field, which is the entire concurrency story: there is
// no partial mutation to guard.
package mirror

import "sync"

type Namespace string

const (
	Hotels      Namespace = "hotels"
	FoodOptions Namespace = "foodoptions"
	Locations   Namespace = "locations"
	Bookings    Namespace = "bookings"
	Packages    Namespace = "packages"
	Reviews     Namespace = "reviews"
	Dashboard   Namespace = "dashboard"
)

type entry struct {
	items  any // []T for the namespace's record type
	single any // T or nil when no detail view is open
	total  int
}

// Store is created once at startup and lives for the process. It is never
// persisted or rehydrated.
type Store struct {
	mu      sync.RWMutex
	entries map[Namespace]*entry
}

func New() *Store {
	return &Store{entries: make(map[Namespace]*entry)}
}

func (s *Store) get(ns Namespace) *entry {
	e, ok := s.entries[ns]
	if !ok {
		e = &entry{}
		s.entries[ns] = e
	}
	return e
}

// SetAll replaces the namespace's list wholesale. No merging.
func (s *Store) SetAll(ns Namespace, items any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(ns).items = items
}

// SetSingle replaces the namespace's detail slot. Passing nil is the explicit
// "no detail loaded" state.
func (s *Store) SetSingle(ns Namespace, item any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(ns).single = item
}

// ClearSingle must be called whenever a detail view closes, so the next
// detail view never renders the previous record.
func (s *Store) ClearSingle(ns Namespace) {
	s.SetSingle(ns, nil)
}

// SetTotal replaces the server-side count used for pagination math.
func (s *Store) SetTotal(ns Namespace, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(ns).total = n
}

func (s *Store) All(ns Namespace) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[ns]; ok {
		return e.items
	}
	return nil
}

func (s *Store) Single(ns Namespace) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[ns]; ok {
		return e.single
	}
	return nil
}

func (s *Store) Total(ns Namespace) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[ns]; ok {
		return e.total
	}
	return 0
}

// AllOf reads the namespace's list as []T. Returns nil when the slot is
// empty or holds a different type.
func AllOf[T any](s *Store, ns Namespace) []T {
	items, _ := s.All(ns).([]T)
	return items
}

// SingleOf reads the namespace's detail slot as T.
func SingleOf[T any](s *Store, ns Namespace) (T, bool) {
	v, ok := s.Single(ns).(T)
	return v, ok
}
