package analytics

import (
	"context"
	"testing"
	"time"

	"restopos-backend/internal/domain"
)

func TestRecomputeInventoryPredictions_DerivesUsageFromMenu(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	inventory := []domain.InventoryItem{
		{ID: 1, Name: "Rice", Quantity: 10, Unit: "kg", MinLevel: 2},
		{ID: 2, Name: "Saffron", Quantity: 5, Unit: "g", MinLevel: 1},
	}
	menu := []domain.MenuItem{
		{ID: 1, Name: "Fried Rice", SoldToday: 14, Ingredients: []domain.Ingredient{
			{Name: "Rice", Quantity: 0.5},
		}},
		{ID: 2, Name: "Biryani", SoldToday: 7, Ingredients: []domain.Ingredient{
			{Name: "Rice", Quantity: 1},
		}},
	}
	if err := st.SaveInventory(ctx, inventory); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	if err := st.SaveMenu(ctx, menu); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}

	if err := eng.RecomputeInventoryPredictions(ctx); err != nil {
		t.Fatalf("RecomputeInventoryPredictions: %v", err)
	}

	items := st.Inventory(ctx)
	var rice, saffron domain.InventoryItem
	for _, it := range items {
		switch it.Name {
		case "Rice":
			rice = it
		case "Saffron":
			saffron = it
		}
	}

	// (0.5*14 + 1*7) / 7 = 2 kg per day, 10 kg on hand -> 5 days.
	if rice.UsagePerDay != 2 {
		t.Fatalf("rice UsagePerDay = %v, want 2", rice.UsagePerDay)
	}
	if rice.PredictedRunOut == nil {
		t.Fatal("rice PredictedRunOut not set")
	}
	want := testNow.Add(5 * 24 * time.Hour)
	if !rice.PredictedRunOut.Equal(want) {
		t.Fatalf("rice PredictedRunOut = %v, want %v", rice.PredictedRunOut, want)
	}

	// Saffron appears in no menu item: sentinel case, no predicted date.
	if saffron.UsagePerDay != 0 {
		t.Fatalf("saffron UsagePerDay = %v, want 0", saffron.UsagePerDay)
	}
	if saffron.PredictedRunOut != nil {
		t.Fatalf("saffron PredictedRunOut = %v, want nil", saffron.PredictedRunOut)
	}
}

func TestItemsRunningOutSoon_FiltersAndSortsAscending(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	in2 := testNow.Add(2 * 24 * time.Hour)
	in6 := testNow.Add(6 * 24 * time.Hour)
	in30 := testNow.Add(30 * 24 * time.Hour)
	past := testNow.Add(-24 * time.Hour)
	inventory := []domain.InventoryItem{
		{ID: 1, Name: "Slow", Quantity: 40, PredictedRunOut: &in30},
		{ID: 2, Name: "Soon", Quantity: 3, PredictedRunOut: &in2},
		{ID: 3, Name: "Later", Quantity: 8, PredictedRunOut: &in6},
		{ID: 4, Name: "Gone", Quantity: 0, PredictedRunOut: &past},
		{ID: 5, Name: "Untracked", Quantity: 100},
	}
	if err := st.SaveInventory(ctx, inventory); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}

	out := eng.ItemsRunningOutSoon(ctx, 7)
	if len(out) != 2 {
		t.Fatalf("expected 2 items within 7 days, got %d: %+v", len(out), out)
	}
	if out[0].Name != "Soon" || out[0].DaysLeft != 2 {
		t.Fatalf("unexpected first item: %+v", out[0])
	}
	if out[1].Name != "Later" || out[1].DaysLeft != 6 {
		t.Fatalf("unexpected second item: %+v", out[1])
	}
}

func TestLowStockItems(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	inventory := []domain.InventoryItem{
		{ID: 1, Name: "Oil", Quantity: 1, MinLevel: 5},
		{ID: 2, Name: "Salt", Quantity: 10, MinLevel: 2},
	}
	if err := st.SaveInventory(ctx, inventory); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}

	low := eng.LowStockItems(ctx)
	if len(low) != 1 || low[0].Name != "Oil" {
		t.Fatalf("unexpected low-stock result: %+v", low)
	}
}

func TestBestProfitItems_TopFiveByMargin(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	menu := []domain.MenuItem{
		{ID: 1, Name: "A", Price: 100, Cost: 90},
		{ID: 2, Name: "B", Price: 100, Cost: 20},
		{ID: 3, Name: "C", Price: 100, Cost: 50},
		{ID: 4, Name: "D", Price: 100, Cost: 70},
		{ID: 5, Name: "E", Price: 100, Cost: 10},
		{ID: 6, Name: "F", Price: 100, Cost: 60},
	}
	if err := st.SaveMenu(ctx, menu); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}

	best := eng.BestProfitItems(ctx)
	if len(best) != 5 {
		t.Fatalf("expected 5 items, got %d", len(best))
	}
	if best[0].Name != "E" || best[0].Margin != 90 {
		t.Fatalf("unexpected best item: %+v", best[0])
	}
	for i := 1; i < len(best); i++ {
		if best[i].Margin > best[i-1].Margin {
			t.Fatal("not sorted descending by margin")
		}
	}
}
