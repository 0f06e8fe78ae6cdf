package core_test

import (
	"testing"
	"time"

	"curtain-pos/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func saleLines() []core.OrderItem {
	return []core.OrderItem{
		{ID: "i1", BillID: core.Ref{ID: "b1"}, ItemName: "Velvet Red", ItemQuantity: 2, ItemRate: dec("1500"), CostPrice: nd("900")},
		{ID: "i2", BillID: core.Ref{ID: "b1"}, ItemName: "Hooks", ItemQuantity: 2, ItemRate: dec("500"), Cost: nd("200"), Total: nd("1000")},
		{ID: "i3", BillID: core.Ref{ID: "b2"}, ItemName: "Brass Rod", ItemQuantity: 1, ItemRate: dec("2000"), CostPrice: nd("1200")},
	}
}

func TestBillProfit(t *testing.T) {
	items := core.ItemsForBill("b1", saleLines())
	require.Len(t, items, 2)

	tests := []struct {
		name string
		bill core.Bill
		mode core.DiscountInterpretation
		want string
	}{
		{name: "percent", bill: core.Bill{ID: "b1", Discount: dec("10")}, mode: core.DiscountPercent, want: "1400"},
		{name: "absolute", bill: core.Bill{ID: "b1", Discount: dec("400")}, mode: core.DiscountAbsolute, want: "1400"},
		{name: "no discount", bill: core.Bill{ID: "b1"}, mode: core.DiscountPercent, want: "1800"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, core.BillProfit(tt.bill, items, tt.mode))
		})
	}

	assertDecimal(t, "0", core.BillProfit(core.Bill{ID: "none"}, nil, core.DiscountPercent))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	in := core.DashboardInput{
		Bills: []core.Bill{
			{ID: "b1", Discount: dec("10"), PaidAmount: dec("3600"), CreatedAt: now.Add(-2 * time.Hour)},
			{ID: "b2", PaidAmount: dec("2000"), CreatedAt: yesterday},
		},
		OrderItems: saleLines(),
		Expenses:   []core.Expense{{Amount: dec("150")}, {Amount: dec("50")}},
		Orders: []core.Order{
			{ID: "o1", OrderStatus: core.OrderPending, OrderAmount: dec("5000"), Balance: dec("2000"), CreatedAt: now},
			{ID: "o2", OrderStatus: core.OrderCompleted, OrderAmount: dec("3000"), Balance: dec("0"), CreatedAt: yesterday},
		},
		Stock: []core.StockItem{{Quantity: 5}, {Quantity: 30}, {Quantity: 60}},
	}

	s := core.Summarize(in, now, core.DiscountPercent)
	assert.Equal(t, "2025-03-10", s.Date)
	assertDecimal(t, "3600", s.DailySell)
	assertDecimal(t, "1400", s.DailyProfit)
	assertDecimal(t, "200", s.TodayExpenses)
	assertDecimal(t, "1200", s.NetDailyProfit)
	assert.Equal(t, 1, s.TodayOrders)
	assert.Equal(t, 1, s.PendingOrders)
	assert.Equal(t, 2, s.TotalOrders)
	assertDecimal(t, "8000", s.TotalSales)
	assertDecimal(t, "2000", s.PendingBalance)
	assert.Equal(t, 3, s.StockItems)
	assert.Equal(t, 1, s.LowStockItems)
}

func TestDailyReport(t *testing.T) {
	r := core.DailyReport{
		Date: "2025-03-10",
		Bills: []core.Bill{
			{ID: "b1", PaidAmount: dec("3600")},
			{ID: "b2", Order: core.Ref{ID: "o1"}, PaidAmount: dec("1000")},
			{ID: "b3", OrderID: core.Ref{ID: "o1"}, PaidAmount: dec("500")},
		},
		OrderItems: saleLines(),
		Attendance: []core.AttendanceEntry{{DailySalary: dec("2000")}},
		Advances:   []core.Advance{{Amount: dec("300")}},
		PaidBills:  []core.SupplierPayment{{PaidAmount: dec("1000")}},
		Expenses:   []core.Expense{{Amount: dec("200")}},
	}

	standalone, forOrders := r.SplitBills()
	require.Len(t, standalone, 1)
	assert.Equal(t, "b1", standalone[0].ID)
	assert.Len(t, forOrders, 2)
	assert.Len(t, r.BillsForOrder("o1"), 2)
	assert.Len(t, r.ItemsForBill("b1"), 2)

	tot := r.Totals()
	assertDecimal(t, "5100", tot.Collected)
	assertDecimal(t, "2000", tot.Salaries)
	assertDecimal(t, "300", tot.Advances)
	assertDecimal(t, "1000", tot.SupplierPaid)
	assertDecimal(t, "200", tot.Expenses)
	assertDecimal(t, "1600", tot.NetCashInHand)
}
