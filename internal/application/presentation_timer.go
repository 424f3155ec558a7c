package application

import (
	"sync"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/jonboulle/clockwork"
)

const DefaultMinimumDisplay = 5000 * time.Millisecond

// PresentationTimer keeps the skeleton placeholder visible for a minimum
// window after each Arm, independent of how fast the request returns. Only
// the latest arming has a live timer.
type PresentationTimer struct {
	clock   clockwork.Clock
	minimum time.Duration
	store   *Store

	mu         sync.Mutex
	generation uint64
	armedAt    time.Time
	visible    bool
	timer      clockwork.Timer
	done       chan struct{}
	stopped    bool
}

func NewPresentationTimer(clock clockwork.Clock, minimum time.Duration, store *Store) *PresentationTimer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if minimum <= 0 {
		minimum = DefaultMinimumDisplay
	}

	done := make(chan struct{})
	close(done)

	return &PresentationTimer{
		clock:   clock,
		minimum: minimum,
		store:   store,
		done:    done,
	}
}

// Arm opens the gate and restarts the minimum window.
func (p *PresentationTimer) Arm() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return time.Time{}
	}

	p.stopTimerLocked()
	if p.visible {
		close(p.done)
	}

	p.generation++
	p.armedAt = p.clock.Now()
	p.visible = true
	p.done = make(chan struct{})
	p.store.Dispatch(domain.GateArmed{At: p.armedAt})

	return p.armedAt
}

// LoadingDone makes the gate eligible to close once the minimum window has
// elapsed since the last Arm.
func (p *PresentationTimer) LoadingDone() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || !p.visible {
		return
	}

	p.stopTimerLocked()

	remaining := p.minimum - p.clock.Since(p.armedAt)
	if remaining <= 0 {
		p.closeLocked()
		return
	}

	generation := p.generation
	p.timer = p.clock.AfterFunc(remaining, func() {
		p.expire(generation)
	})
}

func (p *PresentationTimer) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.visible
}

func (p *PresentationTimer) ArmedAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.armedAt
}

// Done is closed when the current arming closes or the timer is stopped.
func (p *PresentationTimer) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.done
}

// Stop cancels any pending close. Nothing is dispatched after Stop returns.
func (p *PresentationTimer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	p.stopped = true
	p.stopTimerLocked()
	if p.visible {
		p.visible = false
		close(p.done)
	}
}

func (p *PresentationTimer) expire(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || !p.visible || generation != p.generation {
		return
	}

	p.timer = nil
	p.closeLocked()
}

func (p *PresentationTimer) closeLocked() {
	p.visible = false
	close(p.done)
	p.store.Dispatch(domain.GateClosed{})
}

func (p *PresentationTimer) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
