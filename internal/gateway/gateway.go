// Package gateway implements the degraded-mode request gateway: it wraps
// calls to the career backend and substitutes fixture data when the backend
// is unreachable or returns nothing.
//
// This package contains:
//   - Gateway: the Call entry point producing the uniform envelope
//   - Breaker: TTL circuit flag with a single clearing timer
//   - IsBackendDown: transport-failure classification
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tamkeenai/careerd/internal/audit"
	"github.com/tamkeenai/careerd/internal/core/domain"
	"github.com/tamkeenai/careerd/internal/fixtures"
	"github.com/tamkeenai/careerd/internal/metrics"
	"github.com/tamkeenai/careerd/internal/notify"
	"github.com/tamkeenai/careerd/internal/session"
)

// Remote is the narrow surface the gateway needs from a backend call: one
// fetch returning the decoded payload or an error.
type Remote interface {
	Fetch(ctx context.Context, q domain.Query) (any, error)
}

// RemoteFunc adapts a plain function to Remote.
type RemoteFunc func(ctx context.Context, q domain.Query) (any, error)

// Fetch calls f.
func (f RemoteFunc) Fetch(ctx context.Context, q domain.Query) (any, error) {
	return f(ctx, q)
}

// Resource names the fixture slice backing a call. Key is always set; it is
// the dot path into the catalog and the identity used for warning flags,
// metrics, and audit. When Resolve is set it takes precedence over the
// catalog lookup.
type Resource struct {
	Key     string
	Resolve func(q domain.Query) any
}

// Options tune a single gateway call.
type Options struct {
	// WarnOnFallback emits the one-time user notification when fixture
	// data is substituted.
	WarnOnFallback bool
}

// Config holds the gateway dependencies. Catalog and Store are required;
// the rest default to no-ops.
type Config struct {
	Catalog  *fixtures.Catalog
	Store    session.Store
	Notifier notify.Notifier
	Recorder audit.Recorder
	Cooldown time.Duration
	Logger   *slog.Logger
	Clock    func() time.Time
}

// Gateway wraps remote calls with the degraded-mode fallback.
type Gateway struct {
	catalog  *fixtures.Catalog
	store    session.Store
	breaker  *Breaker
	notifier notify.Notifier
	recorder audit.Recorder
	log      *slog.Logger
	now      func() time.Time

	// Guards the read-check-set on warning flags so concurrent fallbacks
	// for the same resource cannot notify twice.
	warnMu sync.Mutex
}

var errCircuitOpen = errors.New("backend marked unavailable")

// New creates a gateway.
func New(cfg Config) *Gateway {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Noop{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = audit.Noop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Gateway{
		catalog:  cfg.Catalog,
		store:    cfg.Store,
		breaker:  NewBreakerWithClock(cfg.Store, cfg.Cooldown, cfg.Clock),
		notifier: cfg.Notifier,
		recorder: cfg.Recorder,
		log:      cfg.Logger,
		now:      cfg.Clock,
	}
}

// Call runs remote and falls back to fixture data when the backend is
// unavailable or returns nothing. Every path terminates in an envelope; no
// path produces an error.
//
// When the circuit is already open the remote is not invoked at all, so a
// known-down backend never costs a network timeout per request.
func (g *Gateway) Call(ctx context.Context, remote Remote, res Resource, q domain.Query, opts Options) *domain.Envelope {
	q = q.Normalized()

	if g.breaker.IsOpen(ctx) {
		return g.fallback(ctx, res, q, opts, errCircuitOpen)
	}

	data, err := remote.Fetch(ctx, q)
	if err == nil && !isEmpty(data) {
		return &domain.Envelope{
			Success: true,
			Data:    data,
			Meta: domain.Meta{
				IsMockData: false,
				Timestamp:  g.timestamp(),
			},
		}
	}

	// An empty payload falls through to fixtures but is no evidence the
	// backend is down, so only classified transport failures open the
	// circuit.
	if err != nil && IsBackendDown(err) {
		g.breaker.Open(ctx)
	}

	return g.fallback(ctx, res, q, opts, err)
}

// Degraded reports whether the gateway is currently serving fixture data for
// every call (circuit open).
func (g *Gateway) Degraded(ctx context.Context) bool {
	return g.breaker.IsOpen(ctx)
}

// Breaker exposes the circuit for the admin/status surface.
func (g *Gateway) Breaker() *Breaker {
	return g.breaker
}

func (g *Gateway) fallback(ctx context.Context, res Resource, q domain.Query, opts Options, cause error) *domain.Envelope {
	env := &domain.Envelope{
		Success: true,
		Meta: domain.Meta{
			IsMockData: true,
			Timestamp:  g.timestamp(),
		},
	}
	if cause != nil {
		env.Meta.Error = cause.Error()
	}

	payload := g.resolve(res, q)
	if items, ok := payload.([]any); ok {
		page := fixtures.Paginate(fixtures.Filter(items, q), q)
		env.Data = page.Items
		env.Pagination = &domain.Pagination{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		}
	} else {
		if payload == nil {
			payload = map[string]any{}
		}
		env.Data = payload
	}

	metrics.FallbacksServed.WithLabelValues(res.Key).Inc()

	if opts.WarnOnFallback {
		g.warnOnce(ctx, res.Key)
	}
	g.record(ctx, res.Key, cause)

	return env
}

func (g *Gateway) resolve(res Resource, q domain.Query) any {
	if res.Resolve != nil {
		return res.Resolve(q)
	}
	return g.catalog.Resolve(res.Key)
}

func (g *Gateway) warnOnce(ctx context.Context, resource string) {
	g.warnMu.Lock()
	defer g.warnMu.Unlock()

	key := session.WarningKey(resource)
	if val, err := g.store.Get(ctx, key); err == nil && val == "true" {
		return
	}
	if err := g.store.Set(ctx, key, "true", 0); err != nil {
		g.log.Warn("Failed to persist warning flag", "resource", resource, "error", err)
	}

	g.notifier.Warn(resource, "Showing sample data while the backend is unreachable")
}

func (g *Gateway) record(ctx context.Context, resource string, cause error) {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	event := audit.NewEvent(resource, msg, g.now().UTC())
	if err := g.recorder.Record(ctx, event); err != nil {
		g.log.Warn("Failed to record fallback event", "resource", resource, "error", err)
	}
}

func (g *Gateway) timestamp() string {
	return g.now().UTC().Format(time.RFC3339)
}

// isEmpty mirrors what the caller would treat as no payload at all: absent
// or blank. Empty collections still count as real data.
func isEmpty(data any) bool {
	switch v := data.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
