package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountInterpretation says how a stored bill discount is read when
// profit is re-derived per line.
//
// Bills written by the composer always carry a percentage. Whether every
// backend path does the same is not known, so the reading is explicit
// rather than assumed.
type DiscountInterpretation int

const (
	// DiscountPercent reads bill.discount as a percentage of the subtotal.
	DiscountPercent DiscountInterpretation = iota
	// DiscountAbsolute reads bill.discount as an amount off the subtotal.
	DiscountAbsolute
)

// ItemsForBill returns the sold lines that belong to billID.
func ItemsForBill(billID string, items []OrderItem) []OrderItem {
	var out []OrderItem
	for _, it := range items {
		if it.BillID.ID != "" && it.BillID.ID == billID {
			out = append(out, it)
		}
	}
	return out
}

// BillProfit re-derives a bill's profit from its lines. The bill-level
// discount is spread over the lines in proportion to each line total, and
// each line contributes its discounted revenue less cost × quantity.
func BillProfit(bill Bill, items []OrderItem, mode DiscountInterpretation) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.LineTotal())
	}

	discountAmount := bill.Discount
	if mode == DiscountPercent {
		discountAmount = sub.Mul(bill.Discount).Div(hundred)
	}

	profit := decimal.Zero
	for _, it := range items {
		total := it.LineTotal()
		share := decimal.Zero
		if sub.IsPositive() {
			share = discountAmount.Mul(total).Div(sub)
		}
		cost := it.UnitCost().Mul(decimal.NewFromInt(int64(it.ItemQuantity)))
		profit = profit.Add(total.Sub(share).Sub(cost))
	}
	return profit
}

// DashboardInput is everything the dashboard screen loads.
type DashboardInput struct {
	Orders     []Order
	Stock      []StockItem
	Bills      []Bill
	OrderItems []OrderItem
	Expenses   []Expense
}

// DashboardSummary is the computed dashboard.
type DashboardSummary struct {
	Date           string          `json:"date"`
	DailySell      decimal.Decimal `json:"dailySell"`
	DailyProfit    decimal.Decimal `json:"dailyProfit"`
	TodayExpenses  decimal.Decimal `json:"todayExpenses"`
	NetDailyProfit decimal.Decimal `json:"netDailyProfit"`
	TodayOrders    int             `json:"todayOrders"`
	PendingOrders  int             `json:"pendingOrders"`
	TotalOrders    int             `json:"totalOrders"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	PendingBalance decimal.Decimal `json:"pendingBalance"`
	StockItems     int             `json:"stockItems"`
	LowStockItems  int             `json:"lowStockItems"`
}

// Summarize computes the dashboard for the calendar day of now, in now's
// location. Expenses are taken as already restricted to today.
func Summarize(in DashboardInput, now time.Time, mode DiscountInterpretation) DashboardSummary {
	s := DashboardSummary{
		Date:           now.Format("2006-01-02"),
		DailySell:      decimal.Zero,
		DailyProfit:    decimal.Zero,
		TotalSales:     decimal.Zero,
		PendingBalance: decimal.Zero,
	}

	for _, b := range in.Bills {
		if !sameDay(b.CreatedAt, now) {
			continue
		}
		s.DailySell = s.DailySell.Add(b.PaidAmount)
		s.DailyProfit = s.DailyProfit.Add(BillProfit(b, ItemsForBill(b.ID, in.OrderItems), mode))
	}
	s.TodayExpenses = TotalExpenses(in.Expenses)
	s.NetDailyProfit = s.DailyProfit.Sub(s.TodayExpenses)

	for _, o := range in.Orders {
		if sameDay(o.CreatedAt, now) {
			s.TodayOrders++
		}
		if o.OrderStatus == OrderPending {
			s.PendingOrders++
		}
		s.TotalSales = s.TotalSales.Add(o.OrderAmount)
		s.PendingBalance = s.PendingBalance.Add(o.Balance)
	}
	s.TotalOrders = len(in.Orders)

	s.StockItems = len(in.Stock)
	for _, it := range in.Stock {
		if it.Band() == BandLow {
			s.LowStockItems++
		}
	}
	return s
}

func sameDay(t, ref time.Time) bool {
	if t.IsZero() {
		return false
	}
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DailyReport is the backend's consolidated report for one day.
type DailyReport struct {
	Date          string            `json:"date"`
	Attendance    []AttendanceEntry `json:"attendance"`
	Advances      []Advance         `json:"advances"`
	Bills         []Bill            `json:"bills"`
	OrderItems    []OrderItem       `json:"orderItems"`
	Orders        []Order           `json:"orders"`
	SupplierBills []SupplierBill    `json:"supplierBills"`
	PaidBills     []SupplierPayment `json:"paidBills"`
	Expenses      []Expense         `json:"expenses"`
}

// SplitBills separates quick-sale bills from bills paid against an order.
func (r DailyReport) SplitBills() (standalone, forOrders []Bill) {
	for _, b := range r.Bills {
		if b.OrderRef() == "" {
			standalone = append(standalone, b)
		} else {
			forOrders = append(forOrders, b)
		}
	}
	return standalone, forOrders
}

// BillsForOrder returns the day's bills paid against orderID.
func (r DailyReport) BillsForOrder(orderID string) []Bill {
	var out []Bill
	for _, b := range r.Bills {
		if b.OrderRef() == orderID {
			out = append(out, b)
		}
	}
	return out
}

// ItemsForBill returns the day's sold lines of billID.
func (r DailyReport) ItemsForBill(billID string) []OrderItem {
	return ItemsForBill(billID, r.OrderItems)
}

// DailyTotals are the headline figures of a daily report.
type DailyTotals struct {
	Collected     decimal.Decimal `json:"collected"`
	Salaries      decimal.Decimal `json:"salaries"`
	Advances      decimal.Decimal `json:"advances"`
	SupplierPaid  decimal.Decimal `json:"supplierPaid"`
	Expenses      decimal.Decimal `json:"expenses"`
	NetCashInHand decimal.Decimal `json:"netCashInHand"`
}

// Totals sums the report's cash movements. NetCashInHand is what was
// collected less salaries, advances, supplier payments and expenses.
func (r DailyReport) Totals() DailyTotals {
	t := DailyTotals{
		Collected:    decimal.Zero,
		Salaries:     decimal.Zero,
		Advances:     decimal.Zero,
		SupplierPaid: decimal.Zero,
	}
	for _, b := range r.Bills {
		t.Collected = t.Collected.Add(b.PaidAmount)
	}
	for _, a := range r.Attendance {
		t.Salaries = t.Salaries.Add(a.DailySalary)
	}
	for _, a := range r.Advances {
		t.Advances = t.Advances.Add(a.Amount)
	}
	for _, p := range r.PaidBills {
		t.SupplierPaid = t.SupplierPaid.Add(p.PaidAmount)
	}
	t.Expenses = TotalExpenses(r.Expenses)
	t.NetCashInHand = t.Collected.Sub(t.Salaries).Sub(t.Advances).Sub(t.SupplierPaid).Sub(t.Expenses)
	return t
}
