package gateway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tamkeenai/careerd/internal/metrics"
	"github.com/tamkeenai/careerd/internal/session"
)

// DefaultCooldown is how long the backend stays marked unavailable after a
// qualifying failure.
const DefaultCooldown = 30 * time.Second

// Breaker is the TTL circuit flag guarding the live backend. There is no
// half-open state: once the cooldown elapses the next call goes straight to
// the backend again.
type Breaker struct {
	mu        sync.Mutex
	cooldown  time.Duration
	store     session.Store
	now       func() time.Time
	openUntil time.Time
	timer     *time.Timer
	log       *slog.Logger
}

// NewBreaker creates a breaker persisting its marker in store.
func NewBreaker(store session.Store, cooldown time.Duration) *Breaker {
	return NewBreakerWithClock(store, cooldown, time.Now)
}

// NewBreakerWithClock creates a breaker with an injected clock so tests can
// drive the cooldown deterministically.
func NewBreakerWithClock(store session.Store, cooldown time.Duration, now func() time.Time) *Breaker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Breaker{
		cooldown: cooldown,
		store:    store,
		now:      now,
		log:      slog.Default(),
	}
}

// Open marks the backend unavailable for the cooldown window and schedules a
// single clearing timer. Opening while already open is a no-op; the running
// timer is kept, never stacked.
func (b *Breaker) Open(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Before(b.openUntil) {
		return
	}
	b.openUntil = now.Add(b.cooldown)

	if err := b.store.Set(ctx, session.CircuitKey, "true", b.cooldown); err != nil {
		b.log.Warn("Failed to persist circuit marker", "error", err)
	}

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.cooldown, b.clear)

	metrics.CircuitOpens.Inc()
	metrics.CircuitOpen.Set(1)
	b.log.Warn("Backend marked unavailable", "cooldown", b.cooldown)
}

// IsOpen reports whether the unavailable marker is still in force. The local
// deadline is checked first; the store is consulted so a marker set by
// another replica is honored too.
func (b *Breaker) IsOpen(ctx context.Context) bool {
	b.mu.Lock()
	open := b.now().Before(b.openUntil)
	b.mu.Unlock()
	if open {
		return true
	}

	val, err := b.store.Get(ctx, session.CircuitKey)
	if err != nil {
		b.log.Warn("Failed to read circuit marker", "error", err)
		return false
	}
	return val == "true"
}

// Deadline returns when the current open window ends (zero when closed).
func (b *Breaker) Deadline() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openUntil
}

// Reset force-closes the circuit, cancelling any pending timer.
func (b *Breaker) Reset(ctx context.Context) {
	b.mu.Lock()
	b.openUntil = time.Time{}
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	if err := b.store.Delete(ctx, session.CircuitKey); err != nil {
		b.log.Warn("Failed to clear circuit marker", "error", err)
	}
	metrics.CircuitOpen.Set(0)
}

func (b *Breaker) clear() {
	b.mu.Lock()
	b.openUntil = time.Time{}
	b.timer = nil
	b.mu.Unlock()

	if err := b.store.Delete(context.Background(), session.CircuitKey); err != nil {
		b.log.Warn("Failed to clear circuit marker", "error", err)
	}
	metrics.CircuitOpen.Set(0)
	b.log.Info("Backend cooldown elapsed, resuming live calls")
}
