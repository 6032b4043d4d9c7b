package contact

import (
	"sync"
	"time"
)

// DefaultMaxForms bounds the number of tracked form instances.
const DefaultMaxForms = 10000

// Registry tracks one Controller per form instance id so that the one-in-flight rule
// holds across separate requests from the same form.
type Registry struct {
	mu       sync.Mutex
	forms    map[string]*Controller
	factory  func() *Controller
	ttl      time.Duration
	maxForms int
}

// NewRegistry creates a registry. Controllers idle for longer than ttl are dropped by Sweep.
func NewRegistry(factory func() *Controller, ttl time.Duration, maxForms int) *Registry {
	if maxForms <= 0 {
		maxForms = DefaultMaxForms
	}
	return &Registry{
		forms:    make(map[string]*Controller),
		factory:  factory,
		ttl:      ttl,
		maxForms: maxForms,
	}
}

// Get returns the controller for id, creating it on first use.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if c, ok := r.forms[id]; ok {
		// A form handed to a caller is active, so a sweep before its Submit keeps it.
		c.touch(now)
		return c, nil
	}
	if len(r.forms) >= r.maxForms {
		r.sweepLocked(now)
		if len(r.forms) >= r.maxForms {
			return nil, ErrRegistryFull
		}
	}

	c := r.factory()
	c.touch(now)
	r.forms[id] = c
	return c, nil
}

// Lookup returns the controller for id without creating one.
func (r *Registry) Lookup(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.forms[id]
	return c, ok
}

// Len returns the number of tracked forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep drops idle controllers and returns how many were removed. A sending form is never dropped.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(now)
}

func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for id, c := range r.forms {
		if c.Sending() {
			continue
		}
		if now.Sub(c.LastActive()) > r.ttl {
			delete(r.forms, id)
			removed++
		}
	}
	return removed
}
