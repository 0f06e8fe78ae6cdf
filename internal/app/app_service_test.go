package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"
	"curtain-pos/internal/printer"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

var errBackendDown = errors.New("backend down")

// fakeBackend answers the calls the tests exercise. Calls to anything else
// panic through the nil embedded interface.
type fakeBackend struct {
	app.Backend

	stock         []core.StockItem
	stockCalls    int
	stockFailFrom int // ListStock fails from this call on; 0 never fails
	lastItemType  core.Category

	quickSellErr error
	quickSells   []*core.QuickSellRequest
	fullOrders   []*core.FullOrderRequest

	orders      []core.Order
	payments    []*core.OrderPaymentRequest
	statusSet   map[string]core.OrderStatus
	bills       []core.Bill
	orderItems  []core.OrderItem
	expenses    []core.Expense
	newExpenses []*core.NewExpense

	employees  []core.Employee
	advances   []core.Advance
	sheets     []core.AttendanceSheet
	monthFeed  []core.EmployeeMonthFeed
	report     *core.DailyReport
	reportDate string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		stock: []core.StockItem{
			{ID: "s1", Name: "Velvet Red", Category: core.CategoryCurtain, Quantity: 10, Cost: dec("900"), SellPrice: dec("1500")},
			{ID: "s3", Name: "Brass Rod", Category: core.CategoryPole, Quantity: 25, Cost: dec("1200"), SellPrice: dec("2000")},
		},
		statusSet: map[string]core.OrderStatus{},
	}
}

func (f *fakeBackend) ListStock(_ context.Context, itemType core.Category) ([]core.StockItem, error) {
	f.stockCalls++
	f.lastItemType = itemType
	if f.stockFailFrom > 0 && f.stockCalls >= f.stockFailFrom {
		return nil, errBackendDown
	}
	out := make([]core.StockItem, len(f.stock))
	copy(out, f.stock)
	return out, nil
}

func (f *fakeBackend) QuickSell(_ context.Context, req *core.QuickSellRequest) (*core.QuickSellResult, error) {
	if f.quickSellErr != nil {
		return nil, f.quickSellErr
	}
	f.quickSells = append(f.quickSells, req)
	for _, it := range req.Items {
		for i := range f.stock {
			if f.stock[i].Name == it.ItemName {
				f.stock[i].Quantity -= it.ItemQuantity
			}
		}
	}
	return &core.QuickSellResult{Bill: core.Bill{ID: "b1", BillNo: "B-0001", BillTotal: req.BillTotal}}, nil
}

func (f *fakeBackend) CreateFullOrder(_ context.Context, req *core.FullOrderRequest) (*core.FullOrderResult, error) {
	f.fullOrders = append(f.fullOrders, req)
	return &core.FullOrderResult{Order: core.Order{ID: "o1", OrderAmount: req.BillDetails.BillTotal}}, nil
}

func (f *fakeBackend) ListOrders(context.Context) ([]core.Order, error) { return f.orders, nil }

func (f *fakeBackend) GetOrder(_ context.Context, id string) (*core.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) UpdateOrderStatus(_ context.Context, id string, st core.OrderStatus) error {
	f.statusSet[id] = st
	return nil
}

func (f *fakeBackend) AddOrderPayment(_ context.Context, req *core.OrderPaymentRequest) (*core.OrderPaymentResult, error) {
	f.payments = append(f.payments, req)
	return &core.OrderPaymentResult{}, nil
}

func (f *fakeBackend) ListBills(context.Context) ([]core.Bill, error)           { return f.bills, nil }
func (f *fakeBackend) ListOrderItems(context.Context) ([]core.OrderItem, error) { return f.orderItems, nil }

func (f *fakeBackend) TodayExpenses(context.Context) ([]core.Expense, decimal.Decimal, error) {
	return f.expenses, core.TotalExpenses(f.expenses), nil
}

func (f *fakeBackend) CreateExpense(_ context.Context, e *core.NewExpense) error {
	f.newExpenses = append(f.newExpenses, e)
	return nil
}

func (f *fakeBackend) ListEmployees(context.Context) ([]core.Employee, error) { return f.employees, nil }

func (f *fakeBackend) AddAdvance(_ context.Context, a core.Advance) error {
	f.advances = append(f.advances, a)
	return nil
}

func (f *fakeBackend) SaveAttendance(_ context.Context, sheet core.AttendanceSheet) error {
	f.sheets = append(f.sheets, sheet)
	return nil
}

func (f *fakeBackend) MonthlyAttendance(context.Context, int, time.Month) ([]core.EmployeeMonthFeed, error) {
	return f.monthFeed, nil
}

func (f *fakeBackend) DailyReport(context.Context) (*core.DailyReport, error) { return f.report, nil }

func (f *fakeBackend) ReportForDate(_ context.Context, date string) (*core.DailyReport, error) {
	f.reportDate = date
	return f.report, nil
}

type fakePrinter struct {
	err      error
	receipts []printer.Receipt
}

func (p *fakePrinter) Print(_ context.Context, r printer.Receipt) error {
	p.receipts = append(p.receipts, r)
	return p.err
}

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newService(b *fakeBackend, p printer.Printer) app.ApplicationService {
	return app.NewAppService(b, p, zerolog.Nop(), app.Options{Now: func() time.Time { return fixedNow }})
}

func quickSession(t *testing.T, svc app.ApplicationService, qty, payment string) *app.Session {
	t.Helper()
	sess, err := svc.NewSession(context.Background(), app.ModeQuickSell)
	require.NoError(t, err)
	sess.AddRow(core.CategoryCurtain)
	require.NoError(t, sess.SelectItem(core.CategoryCurtain, 0, "Velvet Red"))
	ok, err := sess.SetQuantity(core.CategoryCurtain, 0, qty)
	require.NoError(t, err)
	require.True(t, ok)
	sess.SetPayment(payment)
	return sess
}

// ── Quick sell ────────────────────────────────────────────────────────────────

func TestSubmitQuickSell_Success(t *testing.T) {
	b := newFakeBackend()
	p := &fakePrinter{}
	svc := newService(b, p)
	sess := quickSession(t, svc, "3", "4500")

	res, err := svc.SubmitQuickSell(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, "B-0001", res.Bill.BillNo)
	assert.Empty(t, res.PrintError)
	assert.False(t, res.CatalogStale)
	assertDecimal(t, "4500", res.Totals.GrandTotal)

	require.Len(t, b.quickSells, 1)
	assert.Equal(t, core.PaymentCash, b.quickSells[0].PaymentType)
	require.Len(t, p.receipts, 1)
	assert.Equal(t, "B-0001", p.receipts[0].BillNo)
	assertDecimal(t, "4500", p.receipts[0].GrandTotal)

	item, ok := sess.StockOf(core.CategoryCurtain, "Velvet Red")
	require.True(t, ok)
	assert.Equal(t, 7, item.Quantity)

	view := sess.View()
	assert.Empty(t, view.Sections[0].Lines)
	assertDecimal(t, "0", view.Payment)
}

func TestSubmitQuickSell_PrintFailureKeepsSale(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, &fakePrinter{err: errors.New("printer offline")})
	sess := quickSession(t, svc, "1", "1500")

	res, err := svc.SubmitQuickSell(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "printer offline", res.PrintError)
	assert.Len(t, b.quickSells, 1)
}

func TestSubmitQuickSell_StaleCatalogKeepsMirror(t *testing.T) {
	b := newFakeBackend()
	b.stockFailFrom = 2 // the session load succeeds, the refresh fails
	svc := newService(b, nil)
	sess := quickSession(t, svc, "4", "6000")

	res, err := svc.SubmitQuickSell(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, res.CatalogStale)

	item, ok := sess.StockOf(core.CategoryCurtain, "Velvet Red")
	require.True(t, ok)
	assert.Equal(t, 6, item.Quantity)
}

func TestSubmitQuickSell_FailuresLeaveSessionUntouched(t *testing.T) {
	tests := []struct {
		name    string
		payment string
		sellErr error
		wantErr error
	}{
		{"underpaid", "1000", nil, core.ErrInsufficientPayment},
		{"backend rejects", "3000", errBackendDown, errBackendDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			b.quickSellErr = tt.sellErr
			svc := newService(b, nil)
			sess := quickSession(t, svc, "2", tt.payment)
			before := sess.View()

			_, err := svc.SubmitQuickSell(context.Background(), sess)
			require.ErrorIs(t, err, tt.wantErr)

			after := sess.View()
			assert.Equal(t, before.Sections, after.Sections)
			assert.True(t, before.Payment.Equal(after.Payment))
			item, _ := sess.StockOf(core.CategoryCurtain, "Velvet Red")
			assert.Equal(t, 10, item.Quantity)
		})
	}
}

func TestSubmitQuickSell_NoItems(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, nil)
	sess, err := svc.NewSession(context.Background(), app.ModeQuickSell)
	require.NoError(t, err)

	_, err = svc.SubmitQuickSell(context.Background(), sess)
	require.ErrorIs(t, err, core.ErrNoItems)
	assert.Empty(t, b.quickSells)
}

func TestSession_QuickSellQuantityCappedByStock(t *testing.T) {
	svc := newService(newFakeBackend(), nil)
	sess := quickSession(t, svc, "2", "0")

	ok, err := sess.SetQuantity(core.CategoryCurtain, 0, "11")
	var se *core.StockError
	require.ErrorAs(t, err, &se)
	assert.False(t, ok)
	assert.Equal(t, 10, se.Available)
	assert.Equal(t, 2, sess.View().Sections[0].Lines[0].Quantity)
}

func TestSubmit_WrongMode(t *testing.T) {
	svc := newService(newFakeBackend(), nil)
	sess, err := svc.NewSession(context.Background(), app.ModeFullOrder)
	require.NoError(t, err)

	_, err = svc.SubmitQuickSell(context.Background(), sess)
	assert.ErrorIs(t, err, app.ErrWrongMode)
}

func TestSubmitQuickSell_SoldOutItemCannotBeSelected(t *testing.T) {
	b := newFakeBackend()
	b.stock = append(b.stock, core.StockItem{ID: "s9", Name: "Sold Out", Category: core.CategoryCurtain,
		Quantity: 0, Cost: dec("100"), SellPrice: dec("200")})
	svc := newService(b, nil)
	sess, err := svc.NewSession(context.Background(), app.ModeQuickSell)
	require.NoError(t, err)

	sess.AddRow(core.CategoryCurtain)
	err = sess.SelectItem(core.CategoryCurtain, 0, "Sold Out")
	require.ErrorIs(t, err, core.ErrInsufficientStock)
	sess.SetPayment("200")

	_, err = svc.SubmitQuickSell(context.Background(), sess)
	assert.ErrorIs(t, err, core.ErrNoItems)
	assert.Empty(t, b.quickSells)

	full, err := svc.NewSession(context.Background(), app.ModeFullOrder)
	require.NoError(t, err)
	assert.NoError(t, full.SelectItem(core.CategoryCurtain, 0, "Sold Out"), "full orders take items without stock")
}

// ── Full order ────────────────────────────────────────────────────────────────

func TestSubmitFullOrder(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, nil)
	sess, err := svc.NewSession(context.Background(), app.ModeFullOrder)
	require.NoError(t, err)

	require.NoError(t, sess.SelectItem(core.CategoryCurtain, 0, "Velvet Red"))
	_, err = sess.SetQuantity(core.CategoryCurtain, 0, "12")
	require.NoError(t, err, "full orders may exceed stock")

	_, err = svc.SubmitFullOrder(context.Background(), sess)
	require.ErrorIs(t, err, core.ErrMissingCustomerFields)
	assert.Empty(t, b.fullOrders)

	require.NoError(t, sess.SetCustomer(core.Customer{Name: "Nimal", Mobile1: "0771234567"}))
	res, err := svc.SubmitFullOrder(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, "o1", res.Order.ID)
	assert.False(t, res.CatalogStale)
	require.Len(t, b.fullOrders, 1)
	req := b.fullOrders[0]
	assertDecimal(t, "18000", req.BillDetails.PaidAmount)
	assert.Equal(t, fixedNow.Format(time.RFC3339), req.OrderDetails.FixingDate)

	view := sess.View()
	require.NotNil(t, view.Customer)
	assert.Empty(t, view.Customer.Name)
	assert.Len(t, view.Sections[0].Lines, 1)
	assert.True(t, view.Sections[0].Lines[0].Empty())
}

// ── Orders ────────────────────────────────────────────────────────────────────

func TestAddOrderPayment_UsesBalance(t *testing.T) {
	b := newFakeBackend()
	b.orders = []core.Order{{ID: "o9", Balance: dec("2500")}}
	svc := newService(b, nil)

	_, err := svc.AddOrderPayment(context.Background(), app.OrderPaymentRequest{OrderID: "o9", Amount: "1000", PaymentType: "card"})
	require.NoError(t, err)
	require.Len(t, b.payments, 1)
	assertDecimal(t, "2500", b.payments[0].BillTotal)
	assertDecimal(t, "1000", b.payments[0].PaidAmount)
	assert.Equal(t, core.PaymentCard, b.payments[0].PaymentType)
}

func TestAddOrderPayment_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		req     app.OrderPaymentRequest
		wantErr error
	}{
		{"missing order", app.OrderPaymentRequest{Amount: "10"}, app.ErrInvalidRequest},
		{"zero amount", app.OrderPaymentRequest{OrderID: "o9", Amount: "0"}, core.ErrInvalidAmount},
		{"bad payment type", app.OrderPaymentRequest{OrderID: "o9", Amount: "5", PaymentType: "cheque"}, core.ErrInvalidPaymentType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			b.orders = []core.Order{{ID: "o9", Balance: dec("100")}}
			_, err := newService(b, nil).AddOrderPayment(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, b.payments)
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, nil)

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), "o1", "in-progress"))
	assert.Equal(t, core.OrderInProgress, b.statusSet["o1"])

	err := svc.UpdateOrderStatus(context.Background(), "o1", "shipped")
	assert.ErrorIs(t, err, core.ErrInvalidStatus)
}

func TestListStock_Category(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, nil)

	_, err := svc.ListStock(context.Background(), "Poles")
	require.NoError(t, err)
	assert.Equal(t, core.CategoryPole, b.lastItemType)

	_, err = svc.ListStock(context.Background(), "Sofas")
	assert.ErrorIs(t, err, app.ErrInvalidRequest)
}

// ── Reporting and expenses ────────────────────────────────────────────────────

func TestDashboard(t *testing.T) {
	b := newFakeBackend()
	b.orders = []core.Order{
		{ID: "o1", OrderStatus: core.OrderPending, Balance: dec("500"), CreatedAt: fixedNow},
		{ID: "o2", OrderStatus: core.OrderCompleted, CreatedAt: fixedNow.AddDate(0, 0, -3)},
	}
	b.bills = []core.Bill{{ID: "b1", BillTotal: dec("3000"), PaidAmount: dec("3000"), CreatedAt: fixedNow}}
	b.expenses = []core.Expense{{Name: "Tea", Amount: dec("200")}}
	svc := newService(b, nil)

	sum, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalOrders)
	assert.Equal(t, 1, sum.TodayOrders)
	assert.Equal(t, 1, sum.PendingOrders)
	assertDecimal(t, "3000", sum.DailySell)
	assertDecimal(t, "200", sum.TodayExpenses)
	assert.Equal(t, 2, sum.StockItems)
}

func TestDailyReport_Date(t *testing.T) {
	b := newFakeBackend()
	b.report = &core.DailyReport{Date: "2025-03-01"}
	svc := newService(b, nil)

	res, err := svc.DailyReport(context.Background(), "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", b.reportDate)
	assert.Equal(t, "2025-03-01", res.Report.Date)

	_, err = svc.DailyReport(context.Background(), "01/03/2025")
	assert.ErrorIs(t, err, app.ErrInvalidRequest)
}

func TestAddExpense(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, nil)

	require.NoError(t, svc.AddExpense(context.Background(), "Transport", "350"))
	require.Len(t, b.newExpenses, 1)
	assert.Equal(t, "Transport", b.newExpenses[0].Name)

	assert.Error(t, svc.AddExpense(context.Background(), "", "350"))
	assert.Len(t, b.newExpenses, 1)
}

// ── Payroll ───────────────────────────────────────────────────────────────────

func TestRecordAttendance(t *testing.T) {
	b := newFakeBackend()
	b.employees = []core.Employee{{ID: "e1", Name: "Kamal", DailyRate: dec("2000")}}
	svc := newService(b, nil)

	res, err := svc.RecordAttendance(context.Background(), core.AttendanceSheet{
		Records: []core.AttendanceInput{{EmployeeID: "e1", InTime: "08:00", OutTime: "17:00", OTHours: dec("2")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", res.Date)
	require.Len(t, res.Lines, 1)
	assertDecimal(t, "2500", res.Lines[0].Salary)
	assertDecimal(t, "2500", res.Total)
	require.Len(t, b.sheets, 1)
	assert.Equal(t, "2025-03-14", b.sheets[0].Date)

	_, err = svc.RecordAttendance(context.Background(), core.AttendanceSheet{
		Records: []core.AttendanceInput{{EmployeeID: "ghost"}},
	})
	assert.ErrorIs(t, err, app.ErrInvalidRequest)
	assert.Len(t, b.sheets, 1)
}

func TestAddAdvance(t *testing.T) {
	b := newFakeBackend()
	svc := newService(b, nil)

	require.NoError(t, svc.AddAdvance(context.Background(), app.AdvanceRequest{EmployeeID: "e1", Amount: "1500"}))
	require.Len(t, b.advances, 1)
	assert.Equal(t, "e1", b.advances[0].EmployeeID.ID)
	assert.Equal(t, "2025-03-14", b.advances[0].Date)

	err := svc.AddAdvance(context.Background(), app.AdvanceRequest{EmployeeID: "e1", Amount: "-5"})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestMonthlySheet(t *testing.T) {
	b := newFakeBackend()
	b.monthFeed = []core.EmployeeMonthFeed{{EmployeeID: "e1", Name: "Kamal"}}
	svc := newService(b, nil)

	res, err := svc.MonthlySheet(context.Background(), 2025, time.February)
	require.NoError(t, err)
	assert.Len(t, res.Dates, 28)
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "Kamal", res.Employees[0].Name)

	_, err = svc.MonthlySheet(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, app.ErrInvalidRequest)
}
