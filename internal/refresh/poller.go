// Package refresh drives periodic re-aggregation. A single poller re-reads
// every collection on a fixed interval, republishes the snapshot to
// subscribers and runs the inventory prediction and low-stock sweeps.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restopos-backend/internal/analytics"
	"restopos-backend/internal/domain"
	"restopos-backend/internal/metrics"
	"restopos-backend/internal/store"
)

// Snapshot is one immutable view of the store, published per tick.
type Snapshot struct {
	Orders    []domain.Order
	Inventory []domain.InventoryItem
	Menu      []domain.MenuItem
	Staff     []domain.StaffMember
	TakenAt   time.Time
}

type Poller struct {
	store    *store.Store
	engine   *analytics.Engine
	notifier store.Notifier
	log      *slog.Logger
	metrics  *metrics.Registry
	interval time.Duration

	mu          sync.Mutex
	subscribers []chan Snapshot
	wasLow      map[int64]bool
}

func NewPoller(st *store.Store, eng *analytics.Engine, notifier store.Notifier, log *slog.Logger, reg *metrics.Registry, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if notifier == nil {
		notifier = store.NopNotifier{}
	}
	return &Poller{
		store:    st,
		engine:   eng,
		notifier: notifier,
		log:      log,
		metrics:  reg,
		interval: interval,
		wasLow:   make(map[int64]bool),
	}
}

// Subscribe registers a snapshot consumer. Slow consumers miss ticks rather
// than stalling the loop. The returned func unsubscribes.
func (p *Poller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	p.mu.Lock()
	p.subscribers = append(p.subscribers, ch)
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, sub := range p.subscribers {
			if sub == ch {
				p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// Run blocks until ctx is cancelled, ticking at the configured interval.
// One refresh runs immediately on start.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.log.Info("refresh loop stopped")
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh performs one full re-read/republish cycle.
func (p *Poller) Refresh(ctx context.Context) {
	started := time.Now()

	if err := p.engine.RecomputeInventoryPredictions(ctx); err != nil {
		p.log.Error("inventory prediction pass failed", "err", err)
	}

	snap := Snapshot{
		Orders:    p.store.Orders(ctx),
		Inventory: p.store.Inventory(ctx),
		Menu:      p.store.Menu(ctx),
		Staff:     p.store.Staff(ctx),
		TakenAt:   started,
	}
	p.publish(snap)
	p.sweepLowStock(snap.Inventory)

	if p.metrics != nil {
		p.metrics.RefreshTicks.Inc()
		p.metrics.RefreshLatency.Observe(time.Since(started).Seconds())
		active := 0
		for _, o := range snap.Orders {
			if o.Status == domain.OrderNew || o.Status == domain.OrderPreparing {
				active++
			}
		}
		p.metrics.ActiveOrders.Set(float64(active))
	}
}

func (p *Poller) publish(snap Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so the consumer gets the next one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// sweepLowStock fires LowStockDetected only for items newly below their
// minimum level, so a persistently low item does not renotify every tick.
func (p *Poller) sweepLowStock(inventory []domain.InventoryItem) {
	var newlyLow []domain.InventoryItem
	lowCount := 0
	seen := make(map[int64]bool, len(inventory))
	for _, it := range inventory {
		seen[it.ID] = true
		if it.LowStock() {
			lowCount++
			if !p.wasLow[it.ID] {
				newlyLow = append(newlyLow, it)
			}
			p.wasLow[it.ID] = true
		} else {
			delete(p.wasLow, it.ID)
		}
	}
	for id := range p.wasLow {
		if !seen[id] {
			delete(p.wasLow, id)
		}
	}

	if p.metrics != nil {
		p.metrics.LowStockItems.Set(float64(lowCount))
	}
	if len(newlyLow) > 0 {
		p.notifier.LowStockDetected(newlyLow)
	}
}
