package analytics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/storage"
	"restopos-backend/internal/store"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local) // a Monday

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(storage.NewMemory(), logger, nil, nil)
	st.Clock = func() time.Time { return testNow }
	eng := New(st, DefaultConfig())
	eng.Clock = func() time.Time { return testNow }
	return eng, st
}

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.Local)
}

func completedOrder(id int64, ts time.Time, total float64) domain.Order {
	return domain.Order{
		ID:        id,
		Status:    domain.OrderCompleted,
		Timestamp: ts,
		Total:     total,
	}
}

func TestTodaysSales_CountsOnlyTodaysCompletedOrders(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	yesterday := testNow.AddDate(0, 0, -1)
	orders := []domain.Order{
		completedOrder(1, at(12, 0), 450),
		completedOrder(2, at(13, 0), 100),
		{ID: 3, Status: domain.OrderPreparing, Timestamp: at(13, 30), Total: 999},
		completedOrder(4, yesterday, 300),
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	if got := eng.TodaysSales(ctx); got != 550 {
		t.Fatalf("TodaysSales = %v, want 550", got)
	}
	if got := eng.YesterdaysSales(ctx); got != 300 {
		t.Fatalf("YesterdaysSales = %v, want 300", got)
	}
}

func TestTodaysSales_NoOrdersIsZero(t *testing.T) {
	eng, _ := newTestEngine(t)
	if got := eng.TodaysSales(context.Background()); got != 0 {
		t.Fatalf("TodaysSales with no data = %v, want 0", got)
	}
}

func TestPeakHours_SortedByOrderCountWithRevenue(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	orders := []domain.Order{
		completedOrder(1, at(12, 5), 150),
		completedOrder(2, at(12, 20), 200),
		completedOrder(3, at(12, 45), 100),
		completedOrder(4, at(18, 10), 100),
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	peaks := eng.PeakHours(ctx)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 nonzero hours, got %d: %+v", len(peaks), peaks)
	}
	if peaks[0].Hour != "12:00" || peaks[0].Orders != 3 || peaks[0].Revenue != 450 {
		t.Fatalf("unexpected first peak: %+v", peaks[0])
	}
	if peaks[1].Hour != "18:00" || peaks[1].Orders != 1 || peaks[1].Revenue != 100 {
		t.Fatalf("unexpected second peak: %+v", peaks[1])
	}
}

func TestTopSellingItems_GroupsByNameAndTruncates(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	orders := []domain.Order{
		{ID: 1, Status: domain.OrderCompleted, Timestamp: at(12, 0), Items: []domain.OrderItem{
			{Name: "Fried Rice", Quantity: 2, Price: 150},
			{Name: "Iced Tea", Quantity: 1, Price: 60},
		}},
		{ID: 2, Status: domain.OrderNew, Timestamp: at(13, 0), Items: []domain.OrderItem{
			{Name: "Fried Rice", Quantity: 3, Price: 150},
			{Name: "Spring Rolls", Quantity: 2, Price: 100},
		}},
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	top := eng.TopSellingItems(ctx, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Name != "Fried Rice" || top[0].Quantity != 5 || top[0].Revenue != 750 {
		t.Fatalf("unexpected top item: %+v", top[0])
	}
	if top[1].Quantity > top[0].Quantity {
		t.Fatal("not sorted descending by quantity")
	}
}

func TestTodayVsYesterday_ZeroPriorYieldsZeroPercent(t *testing.T) {
	eng, _ := newTestEngine(t)
	cmp := eng.TodayVsYesterday(context.Background())
	if cmp.Today != 0 || cmp.Yesterday != 0 || cmp.Change != 0 || cmp.ChangePercent != 0 {
		t.Fatalf("expected all-zero comparison, got %+v", cmp)
	}
}

func TestTodayVsYesterday_PercentChange(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		completedOrder(1, at(12, 0), 300),
		completedOrder(2, testNow.AddDate(0, 0, -1), 200),
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}
	cmp := eng.TodayVsYesterday(ctx)
	if cmp.Change != 100 || cmp.ChangePercent != 50 {
		t.Fatalf("expected +100 / +50%%, got %+v", cmp)
	}
}

func TestWeekComparison_SplitsRollingWindows(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		completedOrder(1, testNow.AddDate(0, 0, -2), 500),  // this week
		completedOrder(2, testNow.AddDate(0, 0, -10), 250), // last week
		completedOrder(3, testNow.AddDate(0, 0, -20), 999), // older, ignored
		{ID: 4, Status: domain.OrderNew, Timestamp: testNow.AddDate(0, 0, -1), Total: 777},
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}
	cmp := eng.WeekComparison(ctx)
	if cmp.Today != 500 || cmp.Yesterday != 250 {
		t.Fatalf("unexpected week comparison: %+v", cmp)
	}
	if cmp.ChangePercent != 100 {
		t.Fatalf("expected +100%%, got %v", cmp.ChangePercent)
	}
}

func TestLast7DaysSales_SevenBucketsOldestFirst(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		completedOrder(1, at(12, 0), 100),
		completedOrder(2, testNow.AddDate(0, 0, -6), 50),
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}
	series := eng.Last7DaysSales(ctx)
	if len(series) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(series))
	}
	if series[0].Day != "Tue" || series[0].Sales != 50 {
		t.Fatalf("unexpected oldest bucket: %+v", series[0])
	}
	if series[6].Day != "Mon" || series[6].Sales != 100 || series[6].Orders != 1 {
		t.Fatalf("unexpected today bucket: %+v", series[6])
	}
}

func TestCashierPerformance_GroupsAndDefaultsUnknown(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		{ID: 1, Status: domain.OrderCompleted, Timestamp: at(12, 0), Cashier: "Priya", Total: 200},
		{ID: 2, Status: domain.OrderPreparing, Timestamp: at(12, 30), Cashier: "Priya", Total: 100},
		{ID: 3, Status: domain.OrderCompleted, Timestamp: at(13, 0), Total: 50},
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	perf := eng.CashierPerformance(ctx)
	if len(perf) != 2 {
		t.Fatalf("expected 2 cashiers, got %d", len(perf))
	}
	if perf[0].Cashier != "Priya" || perf[0].TotalOrders != 2 || perf[0].TotalSales != 300 || perf[0].AvgOrderValue != 150 {
		t.Fatalf("unexpected cashier stats: %+v", perf[0])
	}
	if perf[1].Cashier != "Unknown" {
		t.Fatalf("expected Unknown fallback, got %+v", perf[1])
	}
}

func TestChefPerformance_AveragesOnlyFullyStampedOrders(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	start1 := at(12, 0)
	end1 := at(12, 10)
	start2 := at(13, 0)
	end2 := at(13, 15)
	orders := []domain.Order{
		{ID: 1, Status: domain.OrderCompleted, Timestamp: start1, PrepStartTime: &start1, PrepEndTime: &end1},
		{ID: 2, Status: domain.OrderCompleted, Timestamp: start2, PrepStartTime: &start2, PrepEndTime: &end2},
		{ID: 3, Status: domain.OrderCompleted, Timestamp: at(14, 0)},                         // missing stamps
		{ID: 4, Status: domain.OrderPreparing, Timestamp: at(14, 5), PrepStartTime: &start1}, // not completed
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	perf := eng.ChefPerformance(ctx)
	if perf.OrdersCompleted != 2 {
		t.Fatalf("expected 2 counted orders, got %d", perf.OrdersCompleted)
	}
	if perf.AvgPrepTime != 12.5 {
		t.Fatalf("expected 12.5 minutes, got %v", perf.AvgPrepTime)
	}
}

func TestChefPerformance_NoDataIsZero(t *testing.T) {
	eng, _ := newTestEngine(t)
	perf := eng.ChefPerformance(context.Background())
	if perf.AvgPrepTime != 0 || perf.OrdersCompleted != 0 {
		t.Fatalf("expected zero metrics, got %+v", perf)
	}
}

func TestEstimatedWaitTime_UsesDefaultWithoutHistory(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		{ID: 1, Status: domain.OrderNew, Timestamp: at(12, 0)},
		{ID: 2, Status: domain.OrderPreparing, Timestamp: at(12, 5)},
		{ID: 3, Status: domain.OrderNew, Timestamp: at(12, 10)},
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}
	// ceil(3/2) * 10 default minutes
	if got := eng.EstimatedWaitTime(ctx); got != 20 {
		t.Fatalf("EstimatedWaitTime = %v, want 20", got)
	}
}

func TestProfitMargin(t *testing.T) {
	cases := []struct {
		price, cost, want float64
	}{
		{200, 80, 60},
		{100, 100, 0},
		{0, 50, 0},
	}
	for _, c := range cases {
		if got := ProfitMargin(c.price, c.cost); got != c.want {
			t.Fatalf("ProfitMargin(%v,%v) = %v, want %v", c.price, c.cost, got, c.want)
		}
	}
}

func TestDailyCashReconciliation_SplitsByPaymentMethod(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		{ID: 1, Status: domain.OrderCompleted, Timestamp: at(12, 0), PaymentMethod: domain.PaymentCash, Total: 300},
		{ID: 2, Status: domain.OrderCompleted, Timestamp: at(12, 30), PaymentMethod: domain.PaymentCard, Total: 200},
		{ID: 3, Status: domain.OrderCompleted, Timestamp: at(13, 0), PaymentMethod: domain.PaymentMobile, Total: 100},
		{ID: 4, Status: domain.OrderPreparing, Timestamp: at(13, 10), PaymentMethod: domain.PaymentCash, Total: 999},
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}
	rec := eng.DailyCashReconciliation(ctx)
	if rec.ExpectedCash != 300 || rec.ExpectedCard != 200 || rec.ExpectedMobile != 100 {
		t.Fatalf("unexpected split: %+v", rec)
	}
	if rec.TotalExpected != 600 {
		t.Fatalf("TotalExpected = %v, want 600", rec.TotalExpected)
	}
}

func TestCalculateVAT_InclusiveBackCalculation(t *testing.T) {
	eng, _ := newTestEngine(t)
	got := eng.CalculateVAT(115, 15)
	if got.Subtotal != 100.00 || got.VAT != 15.00 || got.Total != 115 {
		t.Fatalf("CalculateVAT(115,15) = %+v", got)
	}

	// Zero rate falls back to the configured default.
	got = eng.CalculateVAT(115, 0)
	if got.Subtotal != 100.00 {
		t.Fatalf("default-rate subtotal = %v, want 100", got.Subtotal)
	}
}

func TestAggregation_IsIdempotent(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()
	orders := []domain.Order{
		completedOrder(1, at(12, 0), 450),
		{ID: 2, Status: domain.OrderNew, Timestamp: at(13, 0), Total: 120, Items: []domain.OrderItem{{Name: "x", Quantity: 1, Price: 120}}},
	}
	if err := st.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	first := eng.TodaysSales(ctx)
	second := eng.TodaysSales(ctx)
	if first != second {
		t.Fatalf("TodaysSales not idempotent: %v vs %v", first, second)
	}
	p1 := eng.PeakHours(ctx)
	p2 := eng.PeakHours(ctx)
	if len(p1) != len(p2) {
		t.Fatalf("PeakHours not idempotent: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("PeakHours bucket %d differs: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}
