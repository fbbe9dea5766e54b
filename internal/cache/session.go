// Package cache provides the per-user session cache swept on a fixed TTL.
// It is owned by the service layer; the financial engine never touches it.
package cache

import (
	"sync"
	"time"
)

// Session holds per-user request context cached between calls, such as the
// last analysis served to the chat surface.
type Session struct {
	UserID       int64
	LastAnalysis any
	LastSeen     time.Time
}

// SessionCache is a mutex-guarded map keyed by user id. Entries older than
// the TTL are removed by Sweep, which the scheduler runs hourly. The clock
// is injectable for tests.
type SessionCache struct {
	mu      sync.Mutex
	entries map[int64]*Session
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionCache creates a cache with the given TTL. A nil clock defaults
// to time.Now.
func NewSessionCache(ttl time.Duration, now func() time.Time) *SessionCache {
	if now == nil {
		now = time.Now
	}
	return &SessionCache{
		entries: make(map[int64]*Session),
		ttl:     ttl,
		now:     now,
	}
}

// Touch records activity for a user, creating the session if needed.
func (c *SessionCache) Touch(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[userID]
	if !ok {
		s = &Session{UserID: userID}
		c.entries[userID] = s
	}
	s.LastSeen = c.now()
}

// SetAnalysis stores the most recent analysis for a user.
func (c *SessionCache) SetAnalysis(userID int64, analysis any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[userID]
	if !ok {
		s = &Session{UserID: userID}
		c.entries[userID] = s
	}
	s.LastAnalysis = analysis
	s.LastSeen = c.now()
}

// Get returns the session for a user if present and not expired.
func (c *SessionCache) Get(userID int64) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(s.LastSeen) > c.ttl {
		delete(c.entries, userID)
		return nil, false
	}
	return s, true
}

// Sweep removes every entry older than the TTL and reports how many were
// evicted.
func (c *SessionCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	evicted := 0
	for id, s := range c.entries {
		if s.LastSeen.Before(cutoff) {
			delete(c.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of cached sessions, expired or not.
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
