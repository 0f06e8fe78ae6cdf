package app

import (
	"time"

	"curtain-pos/internal/core"

	"github.com/shopspring/decimal"
)

// StockResult is returned by ListStock.
type StockResult struct {
	Items    []core.StockItem `json:"items"`
	Category core.Category    `json:"category,omitempty"`
}

// FullOrderSubmitResult is returned by SubmitFullOrder.
type FullOrderSubmitResult struct {
	Order  core.Order  `json:"order"`
	Bill   *core.Bill  `json:"bill,omitempty"`
	Totals core.Totals `json:"totals"`
	// CatalogStale is set when the catalog could not be re-fetched after the sale.
	CatalogStale bool `json:"catalogStale"`
}

// QuickSellSubmitResult is returned by SubmitQuickSell. A failed print
// does not undo the sale; PrintError carries the reason.
type QuickSellSubmitResult struct {
	Bill         core.Bill       `json:"bill"`
	Items        []core.SaleItem `json:"items"`
	Totals       core.Totals     `json:"totals"`
	PrintError   string          `json:"printError,omitempty"`
	CatalogStale bool            `json:"catalogStale"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.Order `json:"orders"`
}

// OrderResult is returned by GetOrder.
type OrderResult struct {
	Order *core.Order `json:"order"`
}

// ReportResult is returned by DailyReport.
type ReportResult struct {
	Report          *core.DailyReport `json:"report"`
	StandaloneBills []core.Bill       `json:"standaloneBills"`
	OrderBills      []core.Bill       `json:"orderBills"`
	Totals          core.DailyTotals  `json:"totals"`
}

// ExpenseListResult is returned by TodayExpenses.
type ExpenseListResult struct {
	Expenses []core.Expense  `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

// SupplierListResult is returned by ListSuppliers.
type SupplierListResult struct {
	Suppliers []core.Supplier `json:"suppliers"`
}

// SupplierBillListResult is returned by ListSupplierBills.
type SupplierBillListResult struct {
	Bills       []core.SupplierBill `json:"bills"`
	Outstanding decimal.Decimal     `json:"outstanding"`
}

// EmployeeListResult is returned by ListEmployees.
type EmployeeListResult struct {
	Employees []core.Employee `json:"employees"`
}

// AttendanceLine is one employee's computed pay for the day.
type AttendanceLine struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	InTime     string          `json:"inTime"`
	OutTime    string          `json:"outTime"`
	OTHours    decimal.Decimal `json:"otHours"`
	Salary     decimal.Decimal `json:"salary"`
}

// AttendanceResult is returned by RecordAttendance.
type AttendanceResult struct {
	Date  string           `json:"date"`
	Lines []AttendanceLine `json:"lines"`
	Total decimal.Decimal  `json:"total"`
}

// MonthlySheetResult is returned by MonthlySheet.
type MonthlySheetResult struct {
	Year      int                  `json:"year"`
	Month     time.Month           `json:"month"`
	Dates     []time.Time          `json:"dates"`
	Employees []core.EmployeeMonth `json:"employees"`
}
