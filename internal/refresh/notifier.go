package refresh

import (
	"log/slog"

	"restopos-backend/internal/domain"
)

// LogNotifier renders business-event notifications as structured log lines.
// Front ends that want toasts or audio cues hook in at the same boundary.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) OrderCreated(order domain.Order) {
	n.Log.Info("order created", "orderNumber", order.OrderNumber, "total", order.Total, "items", len(order.Items))
}

func (n LogNotifier) OrderCompleted(order domain.Order) {
	n.Log.Info("order ready", "orderNumber", order.OrderNumber)
}

func (n LogNotifier) LowStockDetected(items []domain.InventoryItem) {
	for _, it := range items {
		n.Log.Warn("low stock", "item", it.Name, "quantity", it.Quantity, "minLevel", it.MinLevel)
	}
}
