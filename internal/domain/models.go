package domain

import "time"

// Enumerations
const (
	OrderNew       OrderStatus = "new"
	OrderPreparing OrderStatus = "preparing"
	OrderCompleted OrderStatus = "completed"
	OrderServed    OrderStatus = "served"

	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"

	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"

	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

type OrderStatus string
type PaymentMethod string
type StaffStatus string
type AttendanceStatus string

// Order is one customer transaction. Line items are denormalized at
// creation time so historical orders survive later menu edits.
type Order struct {
	ID            int64         `json:"id"`
	OrderNumber   string        `json:"orderNumber"`
	Items         []OrderItem   `json:"items"`
	Status        OrderStatus   `json:"status"`
	Timestamp     time.Time     `json:"timestamp"`
	Table         string        `json:"table,omitempty"`
	Cashier       string        `json:"cashier,omitempty"`
	CustomerName  string        `json:"customerName,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	Total         float64       `json:"total"`
	Discount      float64       `json:"discount"`
	PrepStartTime *time.Time    `json:"prepStartTime,omitempty"`
	PrepEndTime   *time.Time    `json:"prepEndTime,omitempty"`
}

type OrderItem struct {
	MenuItemID int64   `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
}

// Subtotal is the pre-discount sum of line items.
func (o Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// InventoryItem is a stock-keeping unit. UsagePerDay and PredictedRunOut
// are advisory, recomputed by the periodic prediction pass.
type InventoryItem struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Quantity        float64    `json:"quantity"`
	Unit            string     `json:"unit"`
	MinLevel        float64    `json:"minLevel"`
	Supplier        string     `json:"supplier"`
	SupplierContact string     `json:"supplierContact,omitempty"`
	LastRestocked   *time.Time `json:"lastRestocked,omitempty"`
	UsagePerDay     float64    `json:"usagePerDay,omitempty"`
	PredictedRunOut *time.Time `json:"predictedRunOut,omitempty"`
	Cost            float64    `json:"cost"`
}

// LowStock reports whether the item is below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity < i.MinLevel
}

type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type MenuItem struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	Price           float64      `json:"price"`
	Image           string       `json:"image,omitempty"`
	Available       bool         `json:"available"`
	Ingredients     []Ingredient `json:"ingredients"`
	PreparationTime int          `json:"preparationTime"`
	Cost            float64      `json:"cost"`
	SoldToday       int          `json:"soldToday,omitempty"`
	SoldThisWeek    int          `json:"soldThisWeek,omitempty"`
}

type StaffMember struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Role            string             `json:"role"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	HourlyRate      float64            `json:"hourlyRate"`
	Status          StaffStatus        `json:"status"`
	TotalSales      float64            `json:"totalSales,omitempty"`
	OrdersCompleted int                `json:"ordersCompleted,omitempty"`
	AvgPrepTime     float64            `json:"avgPrepTime,omitempty"`
	Attendance      []AttendanceRecord `json:"attendance,omitempty"`
}

type AttendanceRecord struct {
	Date     time.Time        `json:"date"`
	ClockIn  *time.Time       `json:"clockIn,omitempty"`
	ClockOut *time.Time       `json:"clockOut,omitempty"`
	Status   AttendanceStatus `json:"status"`
}

type Expense struct {
	ID            int64     `json:"id"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
}

type ActivityLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// SalesData is a persisted daily rollup kept for exports.
type SalesData struct {
	Date            time.Time         `json:"date"`
	HourlyBreakdown []HourlySalesSlot `json:"hourlyBreakdown"`
	TotalSales      float64           `json:"totalSales"`
	TotalOrders     int               `json:"totalOrders"`
	TopItems        []ItemSales       `json:"topItems"`
}

type HourlySalesSlot struct {
	Hour   int     `json:"hour"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type Settings struct {
	BusinessName         string    `json:"businessName"`
	BusinessAddress      string    `json:"businessAddress"`
	BusinessPhone        string    `json:"businessPhone"`
	CurrencyCode         string    `json:"currencyCode"`
	VATRate              float64   `json:"vatRate"`
	ReceiptFooter        string    `json:"receiptFooter"`
	DefaultPaymentMethod string    `json:"defaultPaymentMethod"`
	Notifications        bool      `json:"notifications"`
	TrackStock           bool      `json:"trackStock"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
