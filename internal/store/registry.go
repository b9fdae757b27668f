package store

import (
	"sync"

	"github.com/makskhv21/bot-weather/internal/domain"
)

// Entry is a single (user, city, time) notification registration.
type Entry struct {
	UserID int64
	City   string
	Time   string // "HH:mm"
}

// Registry defines the per-user state operations the router and scheduler
// need. The only implementation is in-memory; all state is lost on restart.
type Registry interface {
	AddCity(userID int64, city string)
	RemoveCity(userID int64, city string)
	Cities(userID int64) []string
	SetNotification(userID int64, city, timeOfDay string)
	RemoveNotification(userID int64, city string) bool
	Notifications(userID int64) map[string]string
	DueEntries(now string) []Entry
}

// MemoryRegistry is a mutex-guarded in-memory Registry. User entries are
// created lazily on first write and never deleted.
type MemoryRegistry struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{users: make(map[int64]*domain.User)}
}

// ensureUser returns the record for userID, creating it if absent.
// Callers must hold the write lock.
func (r *MemoryRegistry) ensureUser(userID int64) *domain.User {
	u, ok := r.users[userID]
	if !ok {
		u = &domain.User{ID: userID, Notifications: make(map[string]string)}
		r.users[userID] = u
	}
	return u
}

// AddCity appends a city to the user's list. The same city may be added
// more than once; duplicates are kept.
func (r *MemoryRegistry) AddCity(userID int64, city string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.ensureUser(userID)
	u.Cities = append(u.Cities, city)
}

// RemoveCity removes every occurrence of city from the user's list.
// Absent user or city is a silent no-op.
func (r *MemoryRegistry) RemoveCity(userID int64, city string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return
	}
	kept := u.Cities[:0]
	for _, c := range u.Cities {
		if c != city {
			kept = append(kept, c)
		}
	}
	u.Cities = kept
}

// Cities returns a copy of the user's city list in insertion order.
func (r *MemoryRegistry) Cities(userID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	out := make([]string, len(u.Cities))
	copy(out, u.Cities)
	return out
}

// SetNotification sets the daily notification time for a city,
// overwriting any previous time.
func (r *MemoryRegistry) SetNotification(userID int64, city, timeOfDay string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.ensureUser(userID)
	u.Notifications[city] = timeOfDay
}

// RemoveNotification deletes the notification entry for a city and
// reports whether one existed. Absent entries are a silent no-op.
func (r *MemoryRegistry) RemoveNotification(userID int64, city string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false
	}
	if _, ok := u.Notifications[city]; !ok {
		return false
	}
	delete(u.Notifications, city)
	return true
}

// Notifications returns a copy of the user's city→time mapping.
func (r *MemoryRegistry) Notifications(userID int64) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(u.Notifications))
	for city, t := range u.Notifications {
		out[city] = t
	}
	return out
}

// DueEntries returns every notification entry whose time equals now
// ("HH:mm"). The snapshot is taken under the read lock so callers never
// iterate live maps.
func (r *MemoryRegistry) DueEntries(now string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []Entry
	for id, u := range r.users {
		for city, t := range u.Notifications {
			if t == now {
				due = append(due, Entry{UserID: id, City: city, Time: t})
			}
		}
	}
	return due
}
