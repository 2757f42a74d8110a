package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersCreated   prometheus.Counter
	OrdersCompleted prometheus.Counter
	Writes          prometheus.Counter
	ReadFailures    prometheus.Counter
	RefreshTicks    prometheus.Counter
	LowStockItems   prometheus.Gauge
	ActiveOrders    prometheus.Gauge
	RefreshLatency  prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "resto_orders_created_total"})
	ordersCompleted := prometheus.NewCounter(prometheus.CounterOpts{Name: "resto_orders_completed_total"})
	writes := prometheus.NewCounter(prometheus.CounterOpts{Name: "resto_collection_writes_total"})
	readFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "resto_collection_read_failures_total"})
	refreshTicks := prometheus.NewCounter(prometheus.CounterOpts{Name: "resto_refresh_ticks_total"})
	lowStock := prometheus.NewGauge(prometheus.GaugeOpts{Name: "resto_low_stock_items"})
	activeOrders := prometheus.NewGauge(prometheus.GaugeOpts{Name: "resto_active_orders"})
	refreshLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resto_refresh_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(ordersCreated, ordersCompleted, writes, readFailures, refreshTicks, lowStock, activeOrders, refreshLatency)
	return &Registry{
		reg:             r,
		OrdersCreated:   ordersCreated,
		OrdersCompleted: ordersCompleted,
		Writes:          writes,
		ReadFailures:    readFailures,
		RefreshTicks:    refreshTicks,
		LowStockItems:   lowStock,
		ActiveOrders:    activeOrders,
		RefreshLatency:  refreshLatency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
