package app

import (
	"context"
	"time"

	"curtain-pos/internal/core"

	"github.com/shopspring/decimal"
)

// Backend is the subset of the shop's REST backend the application calls.
// *backend.Client satisfies it.
type Backend interface {
	ListStock(ctx context.Context, itemType core.Category) ([]core.StockItem, error)
	DeleteStock(ctx context.Context, id string) error

	CreateFullOrder(ctx context.Context, req *core.FullOrderRequest) (*core.FullOrderResult, error)
	QuickSell(ctx context.Context, req *core.QuickSellRequest) (*core.QuickSellResult, error)
	ListOrders(ctx context.Context) ([]core.Order, error)
	GetOrder(ctx context.Context, id string) (*core.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status core.OrderStatus) error
	AddOrderPayment(ctx context.Context, req *core.OrderPaymentRequest) (*core.OrderPaymentResult, error)
	CancelOrder(ctx context.Context, id string) error
	CancelBill(ctx context.Context, id string) error
	ListBills(ctx context.Context) ([]core.Bill, error)
	ListOrderItems(ctx context.Context) ([]core.OrderItem, error)

	ListSuppliers(ctx context.Context) ([]core.Supplier, error)
	CreateSupplier(ctx context.Context, s core.Supplier) (*core.Supplier, error)
	CreateSupplierBill(ctx context.Context, req *core.NewSupplierBill) (*core.SupplierBill, error)
	ListSupplierBills(ctx context.Context, supplierID string) ([]core.SupplierBill, error)
	PaySupplierBill(ctx context.Context, req *core.SupplierPaymentRequest) error

	TodayExpenses(ctx context.Context) ([]core.Expense, decimal.Decimal, error)
	CreateExpense(ctx context.Context, e *core.NewExpense) error
	DeleteExpense(ctx context.Context, id string) error

	ListEmployees(ctx context.Context) ([]core.Employee, error)
	CreateEmployee(ctx context.Context, e core.Employee) (*core.Employee, error)
	UpdateEmployee(ctx context.Context, e core.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	AddAdvance(ctx context.Context, a core.Advance) error
	SaveAttendance(ctx context.Context, sheet core.AttendanceSheet) error
	MonthlyAttendance(ctx context.Context, year int, month time.Month) ([]core.EmployeeMonthFeed, error)

	DailyReport(ctx context.Context) (*core.DailyReport, error)
	ReportForDate(ctx context.Context, date string) (*core.DailyReport, error)
	SaveReport(ctx context.Context, r *core.DailyReport) error
}

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ListStock returns the catalog, optionally narrowed to one category.
	ListStock(ctx context.Context, category string) (*StockResult, error)

	// DeleteStock removes a stock item.
	DeleteStock(ctx context.Context, id string) error

	// NewSession starts a sale of the given mode over a freshly fetched catalog.
	NewSession(ctx context.Context, mode SaleMode) (*Session, error)

	// RefreshCatalog re-fetches the catalog into the session.
	RefreshCatalog(ctx context.Context, sess *Session) error

	// SubmitFullOrder validates the session's customer and items and creates
	// the order with its first bill. On failure the session is left untouched.
	SubmitFullOrder(ctx context.Context, sess *Session) (*FullOrderSubmitResult, error)

	// SubmitQuickSell validates payment and items, records the sale, prints a
	// receipt and refreshes the catalog. On failure the session is left untouched.
	SubmitQuickSell(ctx context.Context, sess *Session) (*QuickSellSubmitResult, error)

	// ListOrders returns orders matching filter, newest first.
	ListOrders(ctx context.Context, filter core.OrderFilter) (*OrderListResult, error)

	// GetOrder returns one order with its bills.
	GetOrder(ctx context.Context, id string) (*OrderResult, error)

	// UpdateOrderStatus moves an order to pending, in-progress or completed.
	UpdateOrderStatus(ctx context.Context, id, status string) error

	// AddOrderPayment records a follow-up payment against an order's balance.
	AddOrderPayment(ctx context.Context, req OrderPaymentRequest) (*core.OrderPaymentResult, error)

	// CancelOrder cancels an order.
	CancelOrder(ctx context.Context, id string) error

	// CancelBill cancels a bill.
	CancelBill(ctx context.Context, id string) error

	// Dashboard computes today's sales, profit and order figures.
	Dashboard(ctx context.Context) (*core.DashboardSummary, error)

	// DailyReport returns the report of date (YYYY-MM-DD), or of today when
	// date is empty.
	DailyReport(ctx context.Context, date string) (*ReportResult, error)

	// SaveDailyReport stores today's report on the backend.
	SaveDailyReport(ctx context.Context) error

	// TodayExpenses lists today's expenses.
	TodayExpenses(ctx context.Context) (*ExpenseListResult, error)

	// AddExpense records an expense for today.
	AddExpense(ctx context.Context, name, amount string) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, id string) error

	// ListSuppliers returns all suppliers.
	ListSuppliers(ctx context.Context) (*SupplierListResult, error)

	// CreateSupplier adds a supplier.
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*core.Supplier, error)

	// ListSupplierBills lists bills of one supplier, or all when supplierID is empty.
	ListSupplierBills(ctx context.Context, supplierID string) (*SupplierBillListResult, error)

	// CreateSupplierBill saves a drafted supplier bill.
	CreateSupplierBill(ctx context.Context, draft *core.SupplierBillDraft) (*core.SupplierBill, error)

	// PaySupplierBill records a payment against a supplier bill.
	PaySupplierBill(ctx context.Context, billID, amount string) error

	// ListEmployees returns all employees.
	ListEmployees(ctx context.Context) (*EmployeeListResult, error)

	// CreateEmployee adds an employee.
	CreateEmployee(ctx context.Context, req EmployeeRequest) (*core.Employee, error)

	// UpdateEmployee replaces an employee's details.
	UpdateEmployee(ctx context.Context, id string, req EmployeeRequest) error

	// DeleteEmployee removes an employee.
	DeleteEmployee(ctx context.Context, id string) error

	// AddAdvance records a salary advance.
	AddAdvance(ctx context.Context, req AdvanceRequest) error

	// RecordAttendance saves a day's attendance and returns the computed
	// daily salaries.
	RecordAttendance(ctx context.Context, sheet core.AttendanceSheet) (*AttendanceResult, error)

	// MonthlySheet returns the running salary sheet of a month.
	MonthlySheet(ctx context.Context, year int, month time.Month) (*MonthlySheetResult, error)
}
