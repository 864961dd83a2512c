package clock

import (
	"sync"
	"time"
)

// Clock stamps createdAt/updatedAt so tests can pin time.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// Timestamp is c.Now() in UTC, cut to the microsecond precision Postgres
// TIMESTAMPTZ keeps, so a stored record reads back equal to what was written.
func Timestamp(c Clock) time.Time {
	return c.Now().UTC().Truncate(time.Microsecond)
}

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// MockClock only moves when told to. It is safe for use by concurrent
// handlers in end-to-end tests.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *MockClock) SetTime(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
