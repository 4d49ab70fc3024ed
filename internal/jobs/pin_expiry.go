package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PinClearer unsets expired pins in the store
type PinClearer interface {
	ClearExpiredPins(ctx context.Context, now time.Time) (int, error)
}

// PinExpirySweeper periodically clears the pinned flag on listings whose
// pinned_until has passed. Display order never waits for the sweep: the
// ranker evaluates pins against the request clock, so this job is store
// hygiene, not correctness.
type PinExpirySweeper struct {
	listings PinClearer
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewPinExpirySweeper creates a new pin expiry sweeper job
func NewPinExpirySweeper(listings PinClearer, interval time.Duration) *PinExpirySweeper {
	if interval == 0 {
		interval = 10 * time.Minute
	}
	return &PinExpirySweeper{
		listings: listings,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweeper job
func (p *PinExpirySweeper) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	slog.Info("pin expiry sweeper started", slog.Duration("interval", p.interval))
}

// Stop gracefully stops the sweeper job
func (p *PinExpirySweeper) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	slog.Info("pin expiry sweeper stopped")
}

// run is the main loop
func (p *PinExpirySweeper) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sweep()
		case <-p.stopCh:
			return
		}
	}
}

func (p *PinExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cleared, err := p.listings.ClearExpiredPins(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("pin expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	if cleared > 0 {
		slog.Info("cleared expired pins", slog.Int("count", cleared))
	}
}

// RunOnce runs the sweep once (for testing or manual trigger)
func (p *PinExpirySweeper) RunOnce(ctx context.Context) (int, error) {
	return p.listings.ClearExpiredPins(ctx, time.Now().UTC())
}

// IsRunning returns whether the sweeper is running
func (p *PinExpirySweeper) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
