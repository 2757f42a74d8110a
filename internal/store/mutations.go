package store

import (
	"context"
	"fmt"

	"restopos-backend/internal/domain"
)

// OrderUpdate is a partial order update. Nil fields are left unchanged.
type OrderUpdate struct {
	Status        *domain.OrderStatus
	Table         *string
	Cashier       *string
	CustomerName  *string
	PaymentMethod *domain.PaymentMethod
	Total         *float64
	Discount      *float64
}

// InventoryUpdate is a partial inventory update. Nil fields are left
// unchanged.
type InventoryUpdate struct {
	Name            *string
	Category        *string
	Quantity        *float64
	Unit            *string
	MinLevel        *float64
	Supplier        *string
	SupplierContact *string
	Cost            *float64
}

// AddOrder appends the order, assigning id and order number when unset, and
// records an activity log entry. The OrderCreated notification fires after
// the write commits.
func (s *Store) AddOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	orders := loadList[domain.Order](ctx, s, KeyOrders)
	if order.ID == 0 {
		order.ID = s.nextID()
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = s.Clock()
	}
	if order.Status == "" {
		order.Status = domain.OrderNew
	}
	if order.OrderNumber == "" {
		order.OrderNumber = s.orderNumberLocked(orders)
	}
	orders = append(orders, order)
	if err := saveList(ctx, s, KeyOrders, orders); err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	s.logActivityLocked(ctx, "System", "Order Created",
		fmt.Sprintf("Order %s - Rs %.2f", order.OrderNumber, order.Total))
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	s.notifier.OrderCreated(order)
	return order, nil
}

// UpdateOrder merges the partial update into the order with the given id.
// Status transitions stamp prep timestamps: preparing sets PrepStartTime,
// completed sets PrepEndTime. Returns ErrNotFound for an unknown id.
func (s *Store) UpdateOrder(ctx context.Context, id int64, up OrderUpdate) (domain.Order, error) {
	s.mu.Lock()
	orders := loadList[domain.Order](ctx, s, KeyOrders)
	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("update order %d: %w", id, ErrNotFound)
	}

	o := &orders[idx]
	completedNow := false
	if up.Status != nil && *up.Status != o.Status {
		now := s.Clock()
		switch *up.Status {
		case domain.OrderPreparing:
			if o.PrepStartTime == nil {
				o.PrepStartTime = &now
			}
		case domain.OrderCompleted:
			if o.PrepStartTime == nil {
				o.PrepStartTime = &now
			}
			if o.PrepEndTime == nil {
				o.PrepEndTime = &now
			}
			completedNow = true
		}
		o.Status = *up.Status
	}
	if up.Table != nil {
		o.Table = *up.Table
	}
	if up.Cashier != nil {
		o.Cashier = *up.Cashier
	}
	if up.CustomerName != nil {
		o.CustomerName = *up.CustomerName
	}
	if up.PaymentMethod != nil {
		o.PaymentMethod = *up.PaymentMethod
	}
	if up.Total != nil {
		o.Total = *up.Total
	}
	if up.Discount != nil {
		o.Discount = *up.Discount
	}

	updated := *o
	if err := saveList(ctx, s, KeyOrders, orders); err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	s.mu.Unlock()

	if completedNow {
		if s.metrics != nil {
			s.metrics.OrdersCompleted.Inc()
		}
		s.notifier.OrderCompleted(updated)
	}
	return updated, nil
}

// UpdateInventoryItem merges the partial update into the item with the
// given id. Returns ErrNotFound for an unknown id.
func (s *Store) UpdateInventoryItem(ctx context.Context, id int64, up InventoryUpdate) (domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := loadList[domain.InventoryItem](ctx, s, KeyInventory)
	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.InventoryItem{}, fmt.Errorf("update inventory item %d: %w", id, ErrNotFound)
	}

	it := &items[idx]
	if up.Name != nil {
		it.Name = *up.Name
	}
	if up.Category != nil {
		it.Category = *up.Category
	}
	if up.Quantity != nil {
		it.Quantity = *up.Quantity
		now := s.Clock()
		it.LastRestocked = &now
	}
	if up.Unit != nil {
		it.Unit = *up.Unit
	}
	if up.MinLevel != nil {
		it.MinLevel = *up.MinLevel
	}
	if up.Supplier != nil {
		it.Supplier = *up.Supplier
	}
	if up.SupplierContact != nil {
		it.SupplierContact = *up.SupplierContact
	}
	if up.Cost != nil {
		it.Cost = *up.Cost
	}

	updated := *it
	if err := saveList(ctx, s, KeyInventory, items); err != nil {
		return domain.InventoryItem{}, err
	}
	return updated, nil
}

// AddInventoryItem appends a new stock item, assigning an id when unset.
func (s *Store) AddInventoryItem(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := loadList[domain.InventoryItem](ctx, s, KeyInventory)
	if item.ID == 0 {
		item.ID = s.nextID()
	}
	items = append(items, item)
	if err := saveList(ctx, s, KeyInventory, items); err != nil {
		return domain.InventoryItem{}, err
	}
	return item, nil
}

// AddExpense appends the expense and records an activity log entry.
func (s *Store) AddExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses := loadList[domain.Expense](ctx, s, KeyExpenses)
	if expense.ID == 0 {
		expense.ID = s.nextID()
	}
	if expense.Date.IsZero() {
		expense.Date = s.Clock()
	}
	expenses = append(expenses, expense)
	if err := saveList(ctx, s, KeyExpenses, expenses); err != nil {
		return domain.Expense{}, err
	}
	s.logActivityLocked(ctx, "System", "Expense Added",
		fmt.Sprintf("%s - Rs %.2f", expense.Category, expense.Amount))
	return expense, nil
}

// LogActivity appends one activity log entry, evicting the oldest entries
// beyond the cap.
func (s *Store) LogActivity(ctx context.Context, user, action, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logActivityLocked(ctx, user, action, details)
}

func (s *Store) logActivityLocked(ctx context.Context, user, action, details string) {
	logs := loadList[domain.ActivityLog](ctx, s, KeyLogs)
	logs = append(logs, domain.ActivityLog{
		ID:        s.nextID(),
		Timestamp: s.Clock(),
		User:      user,
		Action:    action,
		Details:   details,
	})
	if len(logs) > maxActivityLogEntries {
		logs = logs[len(logs)-maxActivityLogEntries:]
	}
	if err := saveList(ctx, s, KeyLogs, logs); err != nil {
		s.log.Error("failed to persist activity log", "err", err)
	}
}

// NextOrderNumber formats the next human-facing order number: today's order
// count plus one, zero-padded to three digits. The daily counter resets
// implicitly when the calendar day changes.
func (s *Store) NextOrderNumber(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderNumberLocked(loadList[domain.Order](ctx, s, KeyOrders))
}

func (s *Store) orderNumberLocked(orders []domain.Order) string {
	today := s.Clock()
	count := 0
	for _, o := range orders {
		if sameDay(o.Timestamp, today) {
			count++
		}
	}
	return fmt.Sprintf("#%03d", count+1)
}
