package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/metrics"
	"restopos-backend/internal/storage"
)

// Collection keys. One serialized blob per collection.
const (
	KeyOrders    = "resto_orders"
	KeyInventory = "resto_inventory"
	KeyMenu      = "resto_menu"
	KeyStaff     = "resto_staff"
	KeyExpenses  = "resto_expenses"
	KeyLogs      = "resto_logs"
	KeySales     = "resto_sales"
	KeySettings  = "resto_settings"
)

// The activity log is capped to bound storage growth; oldest entries are
// evicted first.
const maxActivityLogEntries = 1000

// ErrNotFound is returned by update operations for an unknown entity id.
var ErrNotFound = errors.New("store: entity not found")

// Notifier receives business-event callbacks fired synchronously after the
// corresponding mutation commits. Implementations must not block.
type Notifier interface {
	OrderCreated(order domain.Order)
	OrderCompleted(order domain.Order)
	LowStockDetected(items []domain.InventoryItem)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) OrderCreated(domain.Order)               {}
func (NopNotifier) OrderCompleted(domain.Order)             {}
func (NopNotifier) LowStockDetected([]domain.InventoryItem) {}

// Store owns the entity collections. Every mutation is a read-modify-write
// of one whole collection, serialized by a single store-wide mutex so there
// is exactly one writer at a time regardless of how many HTTP requests or
// poller ticks are in flight.
type Store struct {
	mu       sync.Mutex
	backend  storage.Backend
	log      *slog.Logger
	notifier Notifier
	metrics  *metrics.Registry

	// Clock is overridable in tests.
	Clock func() time.Time

	lastID int64
}

func New(backend storage.Backend, log *slog.Logger, notifier Notifier, reg *metrics.Registry) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Store{
		backend:  backend,
		log:      log,
		notifier: notifier,
		metrics:  reg,
		Clock:    time.Now,
	}
}

// loadList deserializes one collection. Read failures fail soft: the error
// is logged and an empty collection is returned, favoring availability over
// integrity.
func loadList[T any](ctx context.Context, s *Store, key string) []T {
	blob, err := s.backend.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		s.log.Error("failed to read collection", "key", key, "err", err)
		if s.metrics != nil {
			s.metrics.ReadFailures.Inc()
		}
		return nil
	}
	var list []T
	if err := json.Unmarshal(blob, &list); err != nil {
		s.log.Error("failed to decode collection, falling back to empty", "key", key, "err", err)
		if s.metrics != nil {
			s.metrics.ReadFailures.Inc()
		}
		return nil
	}
	return list
}

func saveList[T any](ctx context.Context, s *Store, key string, list []T) error {
	blob, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	if s.metrics != nil {
		s.metrics.Writes.Inc()
	}
	return nil
}

// Getters. Collections come back in insertion order.

func (s *Store) Orders(ctx context.Context) []domain.Order {
	return loadList[domain.Order](ctx, s, KeyOrders)
}

func (s *Store) Inventory(ctx context.Context) []domain.InventoryItem {
	return loadList[domain.InventoryItem](ctx, s, KeyInventory)
}

func (s *Store) Menu(ctx context.Context) []domain.MenuItem {
	return loadList[domain.MenuItem](ctx, s, KeyMenu)
}

func (s *Store) Staff(ctx context.Context) []domain.StaffMember {
	return loadList[domain.StaffMember](ctx, s, KeyStaff)
}

func (s *Store) Expenses(ctx context.Context) []domain.Expense {
	return loadList[domain.Expense](ctx, s, KeyExpenses)
}

func (s *Store) Logs(ctx context.Context) []domain.ActivityLog {
	return loadList[domain.ActivityLog](ctx, s, KeyLogs)
}

func (s *Store) SalesData(ctx context.Context) []domain.SalesData {
	return loadList[domain.SalesData](ctx, s, KeySales)
}

func (s *Store) Settings(ctx context.Context) domain.Settings {
	blob, err := s.backend.Get(ctx, KeySettings)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Error("failed to read settings", "err", err)
		}
		return domain.Settings{}
	}
	var cfg domain.Settings
	if err := json.Unmarshal(blob, &cfg); err != nil {
		s.log.Error("failed to decode settings, falling back to defaults", "err", err)
		return domain.Settings{}
	}
	return cfg
}

// Whole-collection savers, used by bulk edits and restore.

func (s *Store) SaveOrders(ctx context.Context, orders []domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeyOrders, orders)
}

func (s *Store) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeyInventory, items)
}

func (s *Store) SaveMenu(ctx context.Context, menu []domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeyMenu, menu)
}

func (s *Store) SaveStaff(ctx context.Context, staff []domain.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeyStaff, staff)
}

func (s *Store) SaveExpenses(ctx context.Context, expenses []domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeyExpenses, expenses)
}

func (s *Store) SaveLogs(ctx context.Context, logs []domain.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeyLogs, logs)
}

func (s *Store) SaveSalesData(ctx context.Context, sales []domain.SalesData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveList(ctx, s, KeySales, sales)
}

func (s *Store) SaveSettings(ctx context.Context, cfg domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.UpdatedAt = s.Clock()
	blob, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.backend.Set(ctx, KeySettings, blob); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// nextID derives a creation-timestamp id, bumping on collision so two
// entities created within the same millisecond stay distinct.
func (s *Store) nextID() int64 {
	id := s.Clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ClearAll wipes every collection. Used by tests and the admin reset.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := []string{KeyOrders, KeyInventory, KeyMenu, KeyStaff, KeyExpenses, KeyLogs, KeySales, KeySettings}
	for _, key := range keys {
		if err := s.backend.Remove(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}
