package service

import (
	"context"
	"log"
	"sync"
	"time"

	"littlestars/internal/games"
	"littlestars/internal/models"
	"littlestars/internal/notify"
	"littlestars/internal/presentation"
	"littlestars/internal/story"
)

// Visitor is the application state of one browser. Handlers hold its lock
// for the whole request, so operations on a visitor never interleave.
type Visitor struct {
	ID       string
	User     *models.User
	Reader   story.Reader
	Game     *games.Session
	Notifier *notify.Notifier
	Konami   presentation.KonamiDetector

	restored bool
	lastSeen time.Time
	mu       sync.Mutex
}

// NewVisitor creates an empty visitor
func NewVisitor(id string, now func() time.Time) *Visitor {
	return &Visitor{
		ID:       id,
		Notifier: notify.New(now),
		lastSeen: now(),
	}
}

func (v *Visitor) Lock()   { v.mu.Lock() }
func (v *Visitor) Unlock() { v.mu.Unlock() }

// SignedIn reports whether any user, guest included, is active
func (v *Visitor) SignedIn() bool {
	return v.User != nil
}

// VisitorRegistry keeps visitors in memory and drops the idle ones.
// Only per-tab state is lost on eviction; stored keys survive.
type VisitorRegistry struct {
	mu          sync.Mutex
	visitors    map[string]*Visitor
	idleTimeout time.Duration
	now         func() time.Time
}

// NewVisitorRegistry creates a registry
func NewVisitorRegistry(idleTimeout time.Duration, now func() time.Time) *VisitorRegistry {
	if now == nil {
		now = time.Now
	}
	return &VisitorRegistry{
		visitors:    make(map[string]*Visitor),
		idleTimeout: idleTimeout,
		now:         now,
	}
}

// Get returns the visitor with the given id, creating it on first use
func (r *VisitorRegistry) Get(id string) *Visitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[id]
	if !ok {
		v = NewVisitor(id, r.now)
		r.visitors[id] = v
	}
	v.lastSeen = r.now()
	return v
}

// Len returns the number of live visitors
func (r *VisitorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep evicts visitors idle for longer than the timeout. Visitors that are
// serving a request are skipped.
func (r *VisitorRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for id, v := range r.visitors {
		if now.Sub(v.lastSeen) <= r.idleTimeout {
			continue
		}
		if !v.mu.TryLock() {
			continue
		}
		delete(r.visitors, id)
		v.mu.Unlock()
		evicted++
	}
	return evicted
}

// Run sweeps periodically until ctx is cancelled
func (r *VisitorRegistry) Run(ctx context.Context) {
	interval := r.idleTimeout / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("Evicted %d idle visitors", n)
			}
		}
	}
}
