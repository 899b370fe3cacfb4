// Package session holds the process-wide cache of the current authenticated
// user. Every part of the client that needs to know "who is logged in"
// reads it from here, either directly or through a subscription; the cache
// is the only writer of the shared value.
package session

import (
	"sync"

	"github.com/parley-chat/parley/internal/client/models"
)

// Listener receives the cache value on subscription and after every
// mutation. A nil user means nobody is logged in. The pointed-to value is
// the listener's own copy and may be retained freely.
type Listener func(u *models.User)

// Cache is the single source of truth for the current user.
//
// Delivery contract:
//   - Subscribe replays the current value to the new listener immediately
//     and synchronously, so there is no window between subscription and the
//     first observation of state.
//   - Set and Clear notify every registered listener synchronously, in
//     registration order, and run the fan-out to completion before a second
//     mutation's fan-out may begin.
//   - A mutation issued from inside a listener callback is queued and
//     dispatched after the current fan-out finishes, never nested.
type Cache struct {
	mu        sync.Mutex
	user      *models.User
	listeners []*subscriber
	notifying bool
	pending   []*models.User
}

type subscriber struct {
	fn     Listener
	active bool // guarded by Cache.mu
}

// New creates an empty cache (no user logged in).
func New() *Cache {
	return &Cache{}
}

// Current returns a copy of the cached user, or nil when absent.
func (c *Cache) Current() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyUser(c.user)
}

// Set replaces the cached user and notifies all listeners with the new value.
func (c *Cache) Set(u models.User) {
	c.publish(&u)
}

// Clear replaces the cached user with absent and notifies all listeners
// with nil. Used on session invalidation.
func (c *Cache) Clear() {
	c.publish(nil)
}

// Subscribe registers fn, synchronously invokes it once with the current
// value, and returns a deregistration closure. The closure is idempotent
// and safe to call from within fn itself; after it runs, fn receives no
// further notifications.
func (c *Cache) Subscribe(fn Listener) (unsubscribe func()) {
	s := &subscriber{fn: fn, active: true}

	c.mu.Lock()
	c.listeners = append(c.listeners, s)
	cur := copyUser(c.user)
	c.mu.Unlock()

	fn(cur)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !s.active {
			return
		}
		s.active = false
		for i, l := range c.listeners {
			if l == s {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				break
			}
		}
	}
}

// publish applies the new value and fans it out. If a fan-out is already in
// progress (a listener reacted by mutating the cache), the value is queued
// and dispatched by the in-progress call once the current round completes,
// preserving per-mutation ordering and bounding stack depth.
func (c *Cache) publish(u *models.User) {
	c.mu.Lock()
	if c.notifying {
		c.pending = append(c.pending, u)
		c.mu.Unlock()
		return
	}
	c.notifying = true

	for {
		c.user = u
		subs := make([]*subscriber, len(c.listeners))
		copy(subs, c.listeners)
		c.mu.Unlock()

		for _, s := range subs {
			c.mu.Lock()
			active := s.active
			c.mu.Unlock()
			if !active {
				continue
			}
			s.fn(copyUser(u))
		}

		c.mu.Lock()
		if len(c.pending) == 0 {
			break
		}
		u = c.pending[0]
		c.pending = c.pending[1:]
	}

	c.notifying = false
	c.mu.Unlock()
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}
