package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"curtain-pos/internal/core"

	"github.com/shopspring/decimal"
)

// ── Stock ─────────────────────────────────────────────────────────────────────

// ListStock returns the catalog, optionally narrowed to one itemType.
func (c *Client) ListStock(ctx context.Context, itemType core.Category) ([]core.StockItem, error) {
	var q url.Values
	if itemType != "" {
		q = url.Values{"itemType": {string(itemType)}}
	}
	var items []core.StockItem
	if err := c.do(ctx, http.MethodGet, "/stock", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) DeleteStock(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/stock/"+escape(id), nil, nil, nil)
}

// ── Orders and bills ──────────────────────────────────────────────────────────

func (c *Client) CreateFullOrder(ctx context.Context, req *core.FullOrderRequest) (*core.FullOrderResult, error) {
	var res core.FullOrderResult
	if err := c.do(ctx, http.MethodPost, "/orders/full", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) QuickSell(ctx context.Context, req *core.QuickSellRequest) (*core.QuickSellResult, error) {
	var res core.QuickSellResult
	if err := c.do(ctx, http.MethodPost, "/orders/quick-sell", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]core.Order, error) {
	var orders []core.Order
	if err := c.do(ctx, http.MethodGet, "/orders/details", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order with its bills.
func (c *Client) GetOrder(ctx context.Context, id string) (*core.Order, error) {
	var o core.Order
	if err := c.do(ctx, http.MethodGet, "/orders/details/"+escape(id), nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status core.OrderStatus) error {
	body := map[string]core.OrderStatus{"status": status}
	return c.do(ctx, http.MethodPut, "/orders/update-status/"+escape(id), nil, body, nil)
}

// AddOrderPayment raises a bill against an order's outstanding balance.
func (c *Client) AddOrderPayment(ctx context.Context, req *core.OrderPaymentRequest) (*core.OrderPaymentResult, error) {
	var res core.OrderPaymentResult
	if err := c.do(ctx, http.MethodPost, "/bills/payment", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+escape(id)+"/cancel", nil, nil, nil)
}

func (c *Client) CancelBill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bills/cancel/"+escape(id), nil, nil, nil)
}

func (c *Client) ListBills(ctx context.Context) ([]core.Bill, error) {
	var bills []core.Bill
	if err := c.do(ctx, http.MethodGet, "/bills", nil, nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (c *Client) ListOrderItems(ctx context.Context) ([]core.OrderItem, error) {
	var items []core.OrderItem
	if err := c.do(ctx, http.MethodGet, "/order-items", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (c *Client) ListSuppliers(ctx context.Context) ([]core.Supplier, error) {
	var out []core.Supplier
	if err := c.do(ctx, http.MethodGet, "/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, s core.Supplier) (*core.Supplier, error) {
	var out core.Supplier
	if err := c.do(ctx, http.MethodPost, "/suppliers", nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupplierBill(ctx context.Context, req *core.NewSupplierBill) (*core.SupplierBill, error) {
	var out core.SupplierBill
	if err := c.do(ctx, http.MethodPost, "/supplier-bills", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSupplierBills lists bills of one supplier, or all when supplierID is empty.
func (c *Client) ListSupplierBills(ctx context.Context, supplierID string) ([]core.SupplierBill, error) {
	var q url.Values
	if supplierID != "" {
		q = url.Values{"supplierId": {supplierID}}
	}
	var out []core.SupplierBill
	if err := c.do(ctx, http.MethodGet, "/supplier-bills", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PaySupplierBill(ctx context.Context, req *core.SupplierPaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/payments", nil, req, nil)
}

// ── Expenses ──────────────────────────────────────────────────────────────────

type expenseList struct {
	Success bool            `json:"success"`
	Data    []core.Expense  `json:"data"`
	Total   decimal.Decimal `json:"total"`
}

// TodayExpenses returns today's expenses and the backend's total.
func (c *Client) TodayExpenses(ctx context.Context) ([]core.Expense, decimal.Decimal, error) {
	var res expenseList
	if err := c.do(ctx, http.MethodGet, "/expenses/today", nil, nil, &res); err != nil {
		return nil, decimal.Zero, err
	}
	return res.Data, res.Total, nil
}

func (c *Client) CreateExpense(ctx context.Context, e *core.NewExpense) error {
	return c.do(ctx, http.MethodPost, "/expenses", nil, e, nil)
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+escape(id), nil, nil, nil)
}

// ── Employees and attendance ──────────────────────────────────────────────────

func (c *Client) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	var out []core.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, e core.Employee) (*core.Employee, error) {
	var out core.Employee
	if err := c.do(ctx, http.MethodPost, "/employees", nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, e core.Employee) error {
	return c.do(ctx, http.MethodPut, "/employees/"+escape(e.ID), nil, e, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+escape(id), nil, nil, nil)
}

func (c *Client) AddAdvance(ctx context.Context, a core.Advance) error {
	return c.do(ctx, http.MethodPost, "/advances", nil, a, nil)
}

func (c *Client) SaveAttendance(ctx context.Context, sheet core.AttendanceSheet) error {
	return c.do(ctx, http.MethodPost, "/attendance/bulk", nil, sheet, nil)
}

func (c *Client) MonthlyAttendance(ctx context.Context, year int, month time.Month) ([]core.EmployeeMonthFeed, error) {
	var out []core.EmployeeMonthFeed
	path := fmt.Sprintf("/attendance/month/%d/%d", year, int(month))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (c *Client) DailyReport(ctx context.Context) (*core.DailyReport, error) {
	var r core.DailyReport
	if err := c.do(ctx, http.MethodGet, "/report/daily", nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReportForDate returns the report of a past day, date in YYYY-MM-DD form.
func (c *Client) ReportForDate(ctx context.Context, date string) (*core.DailyReport, error) {
	var r core.DailyReport
	if err := c.do(ctx, http.MethodGet, "/report/"+escape(date), nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) SaveReport(ctx context.Context, r *core.DailyReport) error {
	return c.do(ctx, http.MethodPost, "/report/save", nil, r, nil)
}
