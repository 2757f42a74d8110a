package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

// Config carries the policy constants of the engine. These are tuning
// knobs, not measured capacities.
type Config struct {
	// VATRate is the inclusive tax rate percentage applied by CalculateVAT
	// when the caller passes no rate.
	VATRate float64
	// ParallelPrep is how many orders the kitchen works on concurrently.
	ParallelPrep int
	// DefaultPrepMinutes is assumed when no completed order history exists.
	DefaultPrepMinutes float64
	// DepletionSentinelDays stands in for "never runs out" when an item has
	// no recorded usage.
	DepletionSentinelDays int
}

func DefaultConfig() Config {
	return Config{
		VATRate:               15,
		ParallelPrep:          2,
		DefaultPrepMinutes:    10,
		DepletionSentinelDays: 999,
	}
}

// Engine computes derived metrics from the current store snapshot. Every
// method recomputes from scratch; nothing is cached, so two consecutive
// calls with no intervening mutation return identical results.
type Engine struct {
	store *store.Store
	cfg   Config

	// Clock is overridable in tests.
	Clock func() time.Time
}

func New(st *store.Store, cfg Config) *Engine {
	if cfg.ParallelPrep <= 0 {
		cfg.ParallelPrep = 2
	}
	if cfg.DefaultPrepMinutes <= 0 {
		cfg.DefaultPrepMinutes = 10
	}
	if cfg.DepletionSentinelDays <= 0 {
		cfg.DepletionSentinelDays = 999
	}
	if cfg.VATRate <= 0 {
		cfg.VATRate = 15
	}
	return &Engine{store: st, cfg: cfg, Clock: time.Now}
}

type PeakHour struct {
	Hour    string  `json:"hour"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type Comparison struct {
	Today         float64 `json:"today"`
	Yesterday     float64 `json:"yesterday"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

type CashierPerformance struct {
	Cashier       string  `json:"cashier"`
	TotalOrders   int     `json:"totalOrders"`
	TotalSales    float64 `json:"totalSales"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

type ChefPerformance struct {
	AvgPrepTime     float64 `json:"avgPrepTime"`
	OrdersCompleted int     `json:"ordersCompleted"`
}

type DaySales struct {
	Day    string  `json:"day"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type ProfitItem struct {
	Name   string  `json:"name"`
	Margin float64 `json:"margin"`
	Price  float64 `json:"price"`
}

type Reconciliation struct {
	ExpectedCash   float64 `json:"expectedCash"`
	ExpectedCard   float64 `json:"expectedCard"`
	ExpectedMobile float64 `json:"expectedMobile"`
	TotalExpected  float64 `json:"totalExpected"`
}

type VATBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}

// todaysOrders returns all of today's orders regardless of status.
func (e *Engine) todaysOrders(ctx context.Context) []domain.Order {
	var out []domain.Order
	today := e.Clock()
	for _, o := range e.store.Orders(ctx) {
		if store.SameDay(o.Timestamp, today) {
			out = append(out, o)
		}
	}
	return out
}

// completedSalesOn sums completed-order revenue for one calendar day.
func (e *Engine) completedSalesOn(ctx context.Context, day time.Time) float64 {
	var sum float64
	for _, o := range e.store.Orders(ctx) {
		if o.Status == domain.OrderCompleted && store.SameDay(o.Timestamp, day) {
			sum += o.Total
		}
	}
	return sum
}

// TodaysSales is completed-order revenue for the current calendar day.
func (e *Engine) TodaysSales(ctx context.Context) float64 {
	return e.completedSalesOn(ctx, e.Clock())
}

func (e *Engine) YesterdaysSales(ctx context.Context) float64 {
	return e.completedSalesOn(ctx, e.Clock().AddDate(0, 0, -1))
}

// Last7DaysSales returns one bucket per calendar day, oldest first, labelled
// with the three-letter day of week.
func (e *Engine) Last7DaysSales(ctx context.Context) []DaySales {
	orders := e.store.Orders(ctx)
	now := e.Clock()
	out := make([]DaySales, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		var sales float64
		count := 0
		for _, o := range orders {
			if o.Status == domain.OrderCompleted && store.SameDay(o.Timestamp, day) {
				sales += o.Total
				count++
			}
		}
		out = append(out, DaySales{
			Day:    day.Weekday().String()[:3],
			Sales:  sales,
			Orders: count,
		})
	}
	return out
}

// PeakHours buckets today's orders by hour of day, drops empty hours and
// sorts descending by order count. Ties keep hour order (stable sort).
func (e *Engine) PeakHours(ctx context.Context) []PeakHour {
	var hours [24]struct {
		orders  int
		revenue float64
	}
	for _, o := range e.todaysOrders(ctx) {
		h := o.Timestamp.Local().Hour()
		hours[h].orders++
		hours[h].revenue += o.Total
	}

	out := make([]PeakHour, 0, 24)
	for h := 0; h < 24; h++ {
		if hours[h].orders == 0 {
			continue
		}
		out = append(out, PeakHour{
			Hour:    formatHour(h),
			Orders:  hours[h].orders,
			Revenue: hours[h].revenue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orders > out[j].Orders })
	return out
}

func formatHour(h int) string {
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}

// TopSellingItems aggregates today's line items by item name, summing sold
// quantity and recorded revenue, descending by quantity, truncated to limit.
// Name is the grouping key: two menu items sharing a name merge.
func (e *Engine) TopSellingItems(ctx context.Context, limit int) []domain.ItemSales {
	type stat struct {
		qty     int
		revenue float64
	}
	stats := make(map[string]*stat)
	var names []string
	for _, o := range e.todaysOrders(ctx) {
		for _, it := range o.Items {
			st, ok := stats[it.Name]
			if !ok {
				st = &stat{}
				stats[it.Name] = st
				names = append(names, it.Name)
			}
			st.qty += it.Quantity
			st.revenue += it.Price * float64(it.Quantity)
		}
	}

	out := make([]domain.ItemSales, 0, len(names))
	for _, name := range names {
		out = append(out, domain.ItemSales{Name: name, Quantity: stats[name].qty, Revenue: stats[name].revenue})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TodayVsYesterday compares completed-order revenue across the two calendar
// days. Percent change is 0 when yesterday had no sales.
func (e *Engine) TodayVsYesterday(ctx context.Context) Comparison {
	return compare(e.TodaysSales(ctx), e.YesterdaysSales(ctx))
}

// WeekComparison compares the trailing 7x24h window against the 7x24h
// window before it, completed orders only.
func (e *Engine) WeekComparison(ctx context.Context) Comparison {
	now := e.Clock()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var thisWeek, lastWeek float64
	for _, o := range e.store.Orders(ctx) {
		if o.Status != domain.OrderCompleted {
			continue
		}
		switch {
		case !o.Timestamp.Before(weekAgo):
			thisWeek += o.Total
		case !o.Timestamp.Before(twoWeeksAgo):
			lastWeek += o.Total
		}
	}
	return compare(thisWeek, lastWeek)
}

func compare(current, prior float64) Comparison {
	change := current - prior
	var pct float64
	if prior > 0 {
		pct = change / prior * 100
	}
	return Comparison{Today: current, Yesterday: prior, Change: change, ChangePercent: pct}
}

// CashierPerformance groups today's orders by cashier, defaulting to
// "Unknown" when the field is absent. Sorted descending by total sales for
// a deterministic result.
func (e *Engine) CashierPerformance(ctx context.Context) []CashierPerformance {
	type stat struct {
		orders int
		sales  float64
	}
	stats := make(map[string]*stat)
	var cashiers []string
	for _, o := range e.todaysOrders(ctx) {
		name := o.Cashier
		if name == "" {
			name = "Unknown"
		}
		st, ok := stats[name]
		if !ok {
			st = &stat{}
			stats[name] = st
			cashiers = append(cashiers, name)
		}
		st.orders++
		st.sales += o.Total
	}

	out := make([]CashierPerformance, 0, len(cashiers))
	for _, name := range cashiers {
		st := stats[name]
		avg := 0.0
		if st.orders > 0 {
			avg = st.sales / float64(st.orders)
		}
		out = append(out, CashierPerformance{
			Cashier:       name,
			TotalOrders:   st.orders,
			TotalSales:    st.sales,
			AvgOrderValue: avg,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSales > out[j].TotalSales })
	return out
}

// ChefPerformance averages prep duration in minutes over all completed
// orders carrying both prep timestamps, rounded to one decimal. Orders
// missing either timestamp are excluded, not counted as zero.
func (e *Engine) ChefPerformance(ctx context.Context) ChefPerformance {
	var total time.Duration
	count := 0
	for _, o := range e.store.Orders(ctx) {
		if o.Status != domain.OrderCompleted || o.PrepStartTime == nil || o.PrepEndTime == nil {
			continue
		}
		total += o.PrepEndTime.Sub(*o.PrepStartTime)
		count++
	}
	if count == 0 {
		return ChefPerformance{}
	}
	avg := total.Minutes() / float64(count)
	return ChefPerformance{
		AvgPrepTime:     math.Round(avg*10) / 10,
		OrdersCompleted: count,
	}
}

// EstimatedWaitTime is a queueing heuristic: active orders divided by the
// parallel prep capacity, times the historical average prep time.
func (e *Engine) EstimatedWaitTime(ctx context.Context) float64 {
	active := 0
	for _, o := range e.store.Orders(ctx) {
		if o.Status == domain.OrderNew || o.Status == domain.OrderPreparing {
			active++
		}
	}
	avgPrep := e.ChefPerformance(ctx).AvgPrepTime
	if avgPrep == 0 {
		avgPrep = e.cfg.DefaultPrepMinutes
	}
	queue := math.Ceil(float64(active) / float64(e.cfg.ParallelPrep))
	return queue * avgPrep
}

// ProfitMargin is (price-cost)/price as a percentage, 0 for a free item.
func ProfitMargin(price, cost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - cost) / price * 100
}

// BestProfitItems returns the five menu items with the highest margin.
func (e *Engine) BestProfitItems(ctx context.Context) []ProfitItem {
	menu := e.store.Menu(ctx)
	out := make([]ProfitItem, 0, len(menu))
	for _, m := range menu {
		out = append(out, ProfitItem{Name: m.Name, Margin: ProfitMargin(m.Price, m.Cost), Price: m.Price})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Margin > out[j].Margin })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// DailyCashReconciliation splits today's completed-order revenue by payment
// method for end-of-day accounting.
func (e *Engine) DailyCashReconciliation(ctx context.Context) Reconciliation {
	var rec Reconciliation
	for _, o := range e.todaysOrders(ctx) {
		if o.Status != domain.OrderCompleted {
			continue
		}
		switch o.PaymentMethod {
		case domain.PaymentCash:
			rec.ExpectedCash += o.Total
		case domain.PaymentCard:
			rec.ExpectedCard += o.Total
		case domain.PaymentMobile:
			rec.ExpectedMobile += o.Total
		}
	}
	rec.TotalExpected = rec.ExpectedCash + rec.ExpectedCard + rec.ExpectedMobile
	return rec
}

// CalculateVAT back-calculates the net subtotal and tax amount from a
// tax-inclusive total. Rate is a percentage; rate <= 0 uses the configured
// default. Subtotal and VAT are rounded to two decimals.
func (e *Engine) CalculateVAT(amount, rate float64) VATBreakdown {
	if rate <= 0 {
		rate = e.cfg.VATRate
	}
	subtotal := amount / (1 + rate/100)
	vat := amount - subtotal
	return VATBreakdown{
		Subtotal: round2(subtotal),
		VAT:      round2(vat),
		Total:    amount,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
