package store

import (
	"context"
	"fmt"
	"time"

	"restopos-backend/internal/domain"
)

// sameDay reports whether two instants fall on the same local calendar day.
// Day boundaries are midnight-to-midnight in local time, not a rolling 24h
// window.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// SameDay is the exported form used by the analytics engine.
func SameDay(a, b time.Time) bool { return sameDay(a, b) }

// SetInventoryPrediction stamps the derived usage rate and depletion date
// onto an inventory item. A nil runOut clears the prediction.
func (s *Store) SetInventoryPrediction(ctx context.Context, id int64, usagePerDay float64, runOut *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := loadList[domain.InventoryItem](ctx, s, KeyInventory)
	for i := range items {
		if items[i].ID == id {
			items[i].UsagePerDay = usagePerDay
			items[i].PredictedRunOut = runOut
			return saveList(ctx, s, KeyInventory, items)
		}
	}
	return fmt.Errorf("set prediction for inventory item %d: %w", id, ErrNotFound)
}
