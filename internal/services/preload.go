package services

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dpup/prefab/errors"
	"github.com/dpup/prefab/logging"

	"github.com/dpup/postmile/server/internal/dataset"
	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// PreloadService keeps configured route datasets warm in the store's cache
// so the first extraction for a busy route does not pay for parsing
type PreloadService struct {
	store    *dataset.Store
	keys     []postmile.RouteKey
	interval time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
	running  bool
}

// NewPreloadService creates a new preload service
func NewPreloadService(store *dataset.Store, keys []postmile.RouteKey, interval time.Duration) *PreloadService {
	return &PreloadService{
		store:    store,
		keys:     keys,
		interval: interval,
	}
}

// Start loads every configured route immediately and then again each
// interval until ctx is done or Stop is called
func (p *PreloadService) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running || len(p.keys) == 0 || p.interval <= 0 {
		return
	}

	ctx = logging.EnsureLogger(ctx)

	p.running = true
	p.stopChan = make(chan struct{})

	logging.Infow(ctx, "Starting route preload", "routes", len(p.keys), "interval", p.interval)

	go p.preloadLoop(ctx, p.stopChan)
}

// Stop halts the preload loop
func (p *PreloadService) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.running = false
	close(p.stopChan)
}

// IsRunning returns whether the preload loop is active
func (p *PreloadService) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *PreloadService) preloadLoop(ctx context.Context, stop <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			err, _ := errors.ParseStack(debug.Stack())
			skipFrames := 3
			numFrames := 5
			logging.Errorw(ctx, "Route preload: recovered from panic",
				"error", r, "error.stack_trace", err.MinimalStack(skipFrames, numFrames))
		}
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Preload(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Infow(ctx, "Route preload stopping due to context cancellation")
			return
		case <-stop:
			logging.Infow(ctx, "Route preload stopping due to stop signal")
			return
		case <-ticker.C:
			p.Preload(ctx)
		}
	}
}

// Preload loads every configured route and returns how many succeeded.
// Failures are logged and do not stop the remaining routes.
func (p *PreloadService) Preload(ctx context.Context) int {
	ctx = logging.EnsureLogger(ctx)
	loaded := 0
	for _, key := range p.keys {
		if ctx.Err() != nil {
			break
		}
		if _, err := p.store.Dataset(ctx, key); err != nil {
			logging.Warnw(ctx, "Failed to preload route", "route", key.String(), "error", err)
			continue
		}
		loaded++
	}
	return loaded
}
