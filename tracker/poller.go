package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"go.uber.org/zap"
)

const DefaultInterval = 15 * time.Second

// Source is the subset of Client the poller needs.
type Source interface {
	Queue(ctx context.Context) ([]models.QueueEntry, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// Poller refreshes a State on a fixed interval.
type Poller struct {
	source   Source
	state    *State
	interval time.Duration
	log      *zap.Logger

	mu  sync.Mutex
	ids []string
}

func NewPoller(source Source, state *State, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{source: source, state: state, interval: interval, log: log}
}

// Track adds order ids whose details are fetched on every refresh.
func (p *Poller) Track(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, ids...)
}

func (p *Poller) tracked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.ids...)
}

// Refresh polls once. The state is left untouched when any request fails.
func (p *Poller) Refresh(ctx context.Context) error {
	queue, err := p.source.Queue(ctx)
	if err != nil {
		return err
	}

	ids := p.tracked()
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		order, err := p.source.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		orders = append(orders, *order)
	}

	if queue == nil {
		queue = []models.QueueEntry{}
	}
	p.state.Replace(orders, queue)
	return nil
}

// Run refreshes immediately and then on every tick until ctx is done. Failed
// refreshes are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context, onUpdate func(*State)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.log.Warn("Order refresh failed", zap.Error(err))
		} else if onUpdate != nil {
			onUpdate(p.state)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
