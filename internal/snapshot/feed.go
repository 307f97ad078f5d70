// Package snapshot keeps an in-memory copy of all bookings for the analytics
// endpoints and refreshes it when bookings change.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// Loader reads every booking, newest first.
type Loader interface {
	ListAll(ctx context.Context) ([]model.Booking, error)
}

// Snapshot is an immutable view of the store.  Bookings must not be modified.
type Snapshot struct {
	Bookings []model.Booking
	TakenAt  time.Time
}

// Feed publishes the latest Snapshot.  Writers call Notify after a change and
// Run reloads in the background.
type Feed struct {
	loader   Loader
	interval time.Duration
	log      *log.Logger

	mu      sync.RWMutex
	current *Snapshot
	notify  chan struct{}
}

func NewFeed(loader Loader, interval time.Duration, logger *log.Logger) *Feed {
	return &Feed{
		loader:   loader,
		interval: interval,
		log:      logger,
		notify:   make(chan struct{}, 1),
	}
}

// Notify requests a refresh.  It never blocks; signals that arrive while one
// is pending are merged.
func (f *Feed) Notify() {
	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Refresh loads a new snapshot.  On error the previous snapshot stays.
func (f *Feed) Refresh(ctx context.Context) (Snapshot, error) {
	bookings, err := f.loader.ListAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s := &Snapshot{Bookings: bookings, TakenAt: time.Now().UTC()}
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
	return *s, nil
}

// Current returns the latest snapshot, loading one synchronously if Run has
// not produced one yet.
func (f *Feed) Current(ctx context.Context) (Snapshot, error) {
	f.mu.RLock()
	s := f.current
	f.mu.RUnlock()
	if s != nil {
		return *s, nil
	}
	return f.Refresh(ctx)
}

// Run refreshes at start, on every tick and on every Notify until ctx is
// done.
func (f *Feed) Run(ctx context.Context) {
	interval := f.interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	f.reload(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.reload(ctx)
		case <-f.notify:
			f.reload(ctx)
		}
	}
}

func (f *Feed) reload(ctx context.Context) {
	s, err := f.Refresh(ctx)
	if err != nil {
		if ctx.Err() == nil {
			f.log.Warnf("snapshot: refresh failed: %v", err)
		}
		return
	}
	f.log.Debugf("snapshot: %d bookings at %s", len(s.Bookings), s.TakenAt.Format(time.RFC3339))
}
