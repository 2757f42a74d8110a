package export

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/storage"
	"restopos-backend/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.New(storage.NewMemory(), logger, nil, nil)
}

func TestBackupRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []domain.Order{{
		ID:          1,
		OrderNumber: "#001",
		Status:      domain.OrderCompleted,
		Timestamp:   ts,
		Total:       450,
		Items:       []domain.OrderItem{{Name: "Fried Rice", Quantity: 3, Price: 150}},
	}}
	inventory := []domain.InventoryItem{{ID: 1, Name: "Rice", Quantity: 10, Unit: "kg", MinLevel: 2}}
	menu := []domain.MenuItem{{ID: 1, Name: "Fried Rice", Price: 150, Available: true}}
	if err := src.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}
	if err := src.SaveInventory(ctx, inventory); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	if err := src.SaveMenu(ctx, menu); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}

	blob, err := BackupJSON(ctx, src, ts)
	if err != nil {
		t.Fatalf("BackupJSON: %v", err)
	}
	if !strings.Contains(string(blob), `"exportDate"`) {
		t.Fatal("backup missing exportDate field")
	}

	dst := newTestStore(t)
	if err := RestoreJSON(ctx, dst, blob); err != nil {
		t.Fatalf("RestoreJSON: %v", err)
	}

	got := dst.Orders(ctx)
	if len(got) != 1 || got[0].OrderNumber != "#001" || got[0].Total != 450 {
		t.Fatalf("restored orders mismatch: %+v", got)
	}
	if !got[0].Timestamp.Equal(ts) {
		t.Fatalf("restored timestamp %v, want %v", got[0].Timestamp, ts)
	}
	if inv := dst.Inventory(ctx); len(inv) != 1 || inv[0].Name != "Rice" {
		t.Fatalf("restored inventory mismatch: %+v", inv)
	}
	if m := dst.Menu(ctx); len(m) != 1 || !m[0].Available {
		t.Fatalf("restored menu mismatch: %+v", m)
	}
}

func TestRestoreJSON_RejectsMalformedDocument(t *testing.T) {
	dst := newTestStore(t)
	if err := RestoreJSON(context.Background(), dst, []byte(`{not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCSV_QuotesCommaValues(t *testing.T) {
	out := CSV(
		[]string{"name", "qty", "revenue"},
		[][]any{
			{"Fried Rice", 5, 750.0},
			{"Rice, Basmati", 2, 300.0},
		},
	)
	lines := strings.Split(string(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "name,qty,revenue" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Fried Rice,5,750" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[2] != `"Rice, Basmati",2,300` {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestCSV_EmptyInput(t *testing.T) {
	if out := CSV(nil, nil); out != nil {
		t.Fatalf("expected nil for empty input, got %q", out)
	}
}
