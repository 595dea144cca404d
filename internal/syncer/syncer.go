package syncer

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fjod/go_pos/internal/checkout"
	"github.com/fjod/go_pos/internal/domain"
)

// ErrBackendUnavailable signals that the backend cannot be reached right
// now; the current drain cycle stops without charging attempts.
var ErrBackendUnavailable = errors.New("backend unavailable")

// Submitter delivers one captured order to the backend.
type Submitter interface {
	Submit(ctx context.Context, order *domain.PendingOrder) error
}

// Poller drains the pending-order queue through a Submitter whenever the
// backend is reachable. A successful submit completes the order; a rejected
// submit counts an attempt until the order is marked failed.
type Poller struct {
	tick        time.Duration
	maxAttempts int
	queue       *checkout.Queue
	submitter   Submitter
}

func NewPoller(queue *checkout.Queue, submitter Submitter, tick time.Duration, maxAttempts int) *Poller {
	return &Poller{
		tick:        tick,
		maxAttempts: maxAttempts,
		queue:       queue,
		submitter:   submitter,
	}
}

// Run drains the queue on every tick until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.DrainOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// DrainOnce pushes every currently pending order once. It returns the
// number of orders successfully submitted.
func (p *Poller) DrainOnce(ctx context.Context) int {
	submitted := 0
	for _, order := range p.queue.Pending() {
		err := p.submitter.Submit(ctx, &order)
		if errors.Is(err, ErrBackendUnavailable) {
			log.Printf("backend unavailable, stopping sync cycle: %v", err)
			return submitted
		}
		if err != nil {
			log.Printf("failed to submit order id = %v with error %v", order.ID, err)
			p.queue.RecordFailure(ctx, order.ID, p.maxAttempts)
			continue
		}

		p.queue.Complete(ctx, order.ID)
		submitted++
	}
	return submitted
}
