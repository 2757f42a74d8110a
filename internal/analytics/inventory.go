package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"restopos-backend/internal/domain"
)

type RunOutItem struct {
	Name     string  `json:"name"`
	DaysLeft int     `json:"daysLeft"`
	Quantity float64 `json:"quantity"`
}

// LowStockItems returns inventory below its configured minimum level.
func (e *Engine) LowStockItems(ctx context.Context) []domain.InventoryItem {
	var out []domain.InventoryItem
	for _, it := range e.store.Inventory(ctx) {
		if it.LowStock() {
			out = append(out, it)
		}
	}
	return out
}

// RecomputeInventoryPredictions derives a per-day usage rate for every
// inventory item from the menu items referencing it by ingredient name and
// stamps the predicted depletion date back into the store.
//
// The rate is (sum of ingredient-qty x soldToday across the menu) / 7.
// Downstream consumers expect this exact figure, so the seven-day divisor
// stays even though soldToday is a one-day counter.
func (e *Engine) RecomputeInventoryPredictions(ctx context.Context) error {
	inventory := e.store.Inventory(ctx)
	menu := e.store.Menu(ctx)
	now := e.Clock()
	sentinel := float64(e.cfg.DepletionSentinelDays)

	for _, item := range inventory {
		var totalUsage float64
		for _, m := range menu {
			for _, ing := range m.Ingredients {
				if ing.Name == item.Name {
					totalUsage += ing.Quantity * float64(m.SoldToday)
				}
			}
		}

		usagePerDay := totalUsage / 7
		daysLeft := sentinel
		if usagePerDay > 0 {
			daysLeft = item.Quantity / usagePerDay
		}

		var runOut *time.Time
		if daysLeft < sentinel {
			t := now.Add(time.Duration(daysLeft * 24 * float64(time.Hour)))
			runOut = &t
		}
		if err := e.store.SetInventoryPrediction(ctx, item.ID, usagePerDay, runOut); err != nil {
			return err
		}
	}
	return nil
}

// ItemsRunningOutSoon filters to items predicted to deplete within the given
// number of days, soonest first. Items without a prediction, or already at
// or past depletion, are excluded.
func (e *Engine) ItemsRunningOutSoon(ctx context.Context, days int) []RunOutItem {
	now := e.Clock()
	var out []RunOutItem
	for _, it := range e.store.Inventory(ctx) {
		if it.PredictedRunOut == nil {
			continue
		}
		daysLeft := int(math.Ceil(it.PredictedRunOut.Sub(now).Hours() / 24))
		if daysLeft <= 0 || daysLeft > days {
			continue
		}
		out = append(out, RunOutItem{Name: it.Name, DaysLeft: daysLeft, Quantity: it.Quantity})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out
}
