package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"curtain-pos/internal/core"
	"curtain-pos/internal/printer"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Options tunes the application service. Zero values pick the defaults.
type Options struct {
	PaymentType  core.PaymentType
	DiscountMode core.DiscountInterpretation
	Now          func() time.Time
}

type appService struct {
	backend      Backend
	printer      printer.Printer
	log          zerolog.Logger
	paymentType  core.PaymentType
	discountMode core.DiscountInterpretation
	now          func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
// A nil printer disables receipt printing.
func NewAppService(backend Backend, p printer.Printer, log zerolog.Logger, opts Options) ApplicationService {
	if p == nil {
		p = printer.Noop{}
	}
	if opts.PaymentType == "" {
		opts.PaymentType = core.PaymentCash
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &appService{
		backend:      backend,
		printer:      p,
		log:          log,
		paymentType:  opts.PaymentType,
		discountMode: opts.DiscountMode,
		now:          opts.Now,
	}
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// ListStock returns the catalog, optionally narrowed to one category.
func (s *appService) ListStock(ctx context.Context, category string) (*StockResult, error) {
	var cat core.Category
	if strings.TrimSpace(category) != "" {
		var err error
		if cat, err = core.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	items, err := s.backend.ListStock(ctx, cat)
	if err != nil {
		return nil, err
	}
	return &StockResult{Items: items, Category: cat}, nil
}

// DeleteStock removes a stock item.
func (s *appService) DeleteStock(ctx context.Context, id string) error {
	return s.backend.DeleteStock(ctx, id)
}

// ── Sales ─────────────────────────────────────────────────────────────────────

// NewSession starts a sale over a freshly fetched catalog.
func (s *appService) NewSession(ctx context.Context, mode SaleMode) (*Session, error) {
	if mode != ModeFullOrder && mode != ModeQuickSell {
		return nil, fmt.Errorf("%w: unknown sale mode %q", ErrInvalidRequest, mode)
	}
	items, err := s.backend.ListStock(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loading stock: %w", err)
	}
	return newSession(mode, core.NewCatalog(items), s.paymentType), nil
}

// RefreshCatalog re-fetches the catalog into the session. Existing lines
// keep the rates they were given when their items were picked.
func (s *appService) RefreshCatalog(ctx context.Context, sess *Session) error {
	items, err := s.backend.ListStock(ctx, "")
	if err != nil {
		return fmt.Errorf("loading stock: %w", err)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.replaceCatalog(core.NewCatalog(items))
	return nil
}

// SubmitFullOrder validates and creates a full order. The customer is
// checked before the items and nothing is sent when either check fails.
func (s *appService) SubmitFullOrder(ctx context.Context, sess *Session) (*FullOrderSubmitResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Mode != ModeFullOrder {
		return nil, ErrWrongMode
	}

	req, err := core.BuildFullOrder(sess.composer, sess.customer, sess.paymentType, s.now())
	if err != nil {
		return nil, err
	}
	totals := sess.composer.Totals()

	res, err := s.backend.CreateFullOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("order_id", res.Order.ID).
		Str("customer", req.Customer.Name).
		Str("grand_total", totals.GrandTotal.StringFixed(2)).
		Msg("full order created")

	out := &FullOrderSubmitResult{Order: res.Order, Bill: res.Bill, Totals: totals}
	out.CatalogStale = !s.refreshLocked(ctx, sess)
	sess.reset()
	return out, nil
}

// SubmitQuickSell validates and records an immediate sale. Payment is
// checked before the items. After the backend accepts the sale the receipt
// is printed, the mirror is decremented and then replaced by a fresh
// catalog when one can be fetched.
func (s *appService) SubmitQuickSell(ctx context.Context, sess *Session) (*QuickSellSubmitResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Mode != ModeQuickSell {
		return nil, ErrWrongMode
	}

	req, err := core.BuildQuickSell(sess.composer, sess.paymentType)
	if err != nil {
		return nil, err
	}
	totals := sess.composer.Totals()

	res, err := s.backend.QuickSell(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("bill_no", res.Bill.BillNo).
		Str("grand_total", totals.GrandTotal.StringFixed(2)).
		Msg("quick sale recorded")

	out := &QuickSellSubmitResult{Bill: res.Bill, Items: req.Items, Totals: totals}
	receipt := printer.Receipt{BillNo: res.Bill.BillNo, Items: req.Items, GrandTotal: totals.GrandTotal}
	if err := s.printer.Print(ctx, receipt); err != nil {
		s.log.Warn().Err(err).Str("bill_no", res.Bill.BillNo).Msg("receipt not printed")
		out.PrintError = err.Error()
	}

	core.ApplySale(sess.catalog, req.Items)
	out.CatalogStale = !s.refreshLocked(ctx, sess)
	sess.reset()
	return out, nil
}

// refreshLocked replaces the session catalog with a fresh fetch. On failure
// the current mirror is kept. Callers hold sess.mu.
func (s *appService) refreshLocked(ctx context.Context, sess *Session) bool {
	items, err := s.backend.ListStock(ctx, "")
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog refresh after sale failed; keeping local mirror")
		return false
	}
	sess.replaceCatalog(core.NewCatalog(items))
	return true
}

// ── Orders ────────────────────────────────────────────────────────────────────

// ListOrders returns orders matching filter, newest first.
func (s *appService) ListOrders(ctx context.Context, filter core.OrderFilter) (*OrderListResult, error) {
	orders, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: core.FilterOrders(orders, filter)}, nil
}

// GetOrder returns one order with its bills.
func (s *appService) GetOrder(ctx context.Context, id string) (*OrderResult, error) {
	o, err := s.backend.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: o}, nil
}

// UpdateOrderStatus moves an order to pending, in-progress or completed.
func (s *appService) UpdateOrderStatus(ctx context.Context, id, status string) error {
	st, err := core.ParseOrderStatus(status)
	if err != nil {
		return err
	}
	return s.backend.UpdateOrderStatus(ctx, id, st)
}

// AddOrderPayment records a follow-up payment. The bill total is the
// order's current balance, so the order is fetched first.
func (s *appService) AddOrderPayment(ctx context.Context, req OrderPaymentRequest) (*core.OrderPaymentResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	pt, err := core.ParsePaymentType(req.PaymentType)
	if err != nil {
		return nil, err
	}
	order, err := s.backend.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ID == "" {
		order.ID = req.OrderID
	}
	body, err := core.NewOrderPayment(*order, req.Amount, pt)
	if err != nil {
		return nil, err
	}
	return s.backend.AddOrderPayment(ctx, body)
}

// CancelOrder cancels an order.
func (s *appService) CancelOrder(ctx context.Context, id string) error {
	return s.backend.CancelOrder(ctx, id)
}

// CancelBill cancels a bill.
func (s *appService) CancelBill(ctx context.Context, id string) error {
	return s.backend.CancelBill(ctx, id)
}

// ── Reporting ─────────────────────────────────────────────────────────────────

// Dashboard loads orders, stock, bills, sold lines and today's expenses and
// summarizes them for the current day.
func (s *appService) Dashboard(ctx context.Context) (*core.DashboardSummary, error) {
	var in core.DashboardInput
	var err error

	if in.Orders, err = s.backend.ListOrders(ctx); err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	if in.Stock, err = s.backend.ListStock(ctx, ""); err != nil {
		return nil, fmt.Errorf("loading stock: %w", err)
	}
	if in.Bills, err = s.backend.ListBills(ctx); err != nil {
		return nil, fmt.Errorf("loading bills: %w", err)
	}
	if in.OrderItems, err = s.backend.ListOrderItems(ctx); err != nil {
		return nil, fmt.Errorf("loading order items: %w", err)
	}
	if in.Expenses, _, err = s.backend.TodayExpenses(ctx); err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	summary := core.Summarize(in, s.now(), s.discountMode)
	return &summary, nil
}

// DailyReport returns the report of date, or today's when date is empty.
func (s *appService) DailyReport(ctx context.Context, date string) (*ReportResult, error) {
	var (
		r   *core.DailyReport
		err error
	)
	date = strings.TrimSpace(date)
	if date == "" {
		r, err = s.backend.DailyReport(ctx)
	} else {
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidRequest)
		}
		r, err = s.backend.ReportForDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}
	standalone, forOrders := r.SplitBills()
	return &ReportResult{
		Report:          r,
		StandaloneBills: standalone,
		OrderBills:      forOrders,
		Totals:          r.Totals(),
	}, nil
}

// SaveDailyReport fetches today's report and stores it.
func (s *appService) SaveDailyReport(ctx context.Context) error {
	r, err := s.backend.DailyReport(ctx)
	if err != nil {
		return err
	}
	if err := s.backend.SaveReport(ctx, r); err != nil {
		return err
	}
	s.log.Info().Str("date", r.Date).Msg("daily report saved")
	return nil
}

// ── Expenses ──────────────────────────────────────────────────────────────────

// TodayExpenses lists today's expenses with their total.
func (s *appService) TodayExpenses(ctx context.Context) (*ExpenseListResult, error) {
	list, _, err := s.backend.TodayExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return &ExpenseListResult{Expenses: list, Total: core.TotalExpenses(list)}, nil
}

// AddExpense records an expense for today.
func (s *appService) AddExpense(ctx context.Context, name, amount string) error {
	e, err := core.ParseExpense(name, amount)
	if err != nil {
		return err
	}
	return s.backend.CreateExpense(ctx, e)
}

// DeleteExpense removes an expense.
func (s *appService) DeleteExpense(ctx context.Context, id string) error {
	return s.backend.DeleteExpense(ctx, id)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	list, err := s.backend.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &SupplierListResult{Suppliers: list}, nil
}

func (s *appService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*core.Supplier, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.backend.CreateSupplier(ctx, core.Supplier{
		Name:    req.Name,
		Mobile:  strings.TrimSpace(req.Mobile),
		Address: strings.TrimSpace(req.Address),
	})
}

// ListSupplierBills lists supplier bills along with the unpaid total.
func (s *appService) ListSupplierBills(ctx context.Context, supplierID string) (*SupplierBillListResult, error) {
	bills, err := s.backend.ListSupplierBills(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	outstanding := decimal.Zero
	for _, b := range bills {
		outstanding = outstanding.Add(b.Outstanding())
	}
	return &SupplierBillListResult{Bills: bills, Outstanding: outstanding}, nil
}

// CreateSupplierBill saves a drafted supplier bill.
func (s *appService) CreateSupplierBill(ctx context.Context, draft *core.SupplierBillDraft) (*core.SupplierBill, error) {
	req, ok := draft.Build()
	if !ok {
		return nil, fmt.Errorf("%w: select a supplier and add at least one item", ErrInvalidRequest)
	}
	return s.backend.CreateSupplierBill(ctx, req)
}

// PaySupplierBill records a payment against a supplier bill.
func (s *appService) PaySupplierBill(ctx context.Context, billID, amount string) error {
	req, err := core.NewSupplierPayment(billID, amount)
	if err != nil {
		return err
	}
	return s.backend.PaySupplierBill(ctx, req)
}

// ── Employees ─────────────────────────────────────────────────────────────────

func (s *appService) ListEmployees(ctx context.Context) (*EmployeeListResult, error) {
	list, err := s.backend.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeListResult{Employees: list}, nil
}

func (s *appService) CreateEmployee(ctx context.Context, req EmployeeRequest) (*core.Employee, error) {
	if err := req.check(); err != nil {
		return nil, err
	}
	return s.backend.CreateEmployee(ctx, req.employee(""))
}

func (s *appService) UpdateEmployee(ctx context.Context, id string, req EmployeeRequest) error {
	if err := req.check(); err != nil {
		return err
	}
	return s.backend.UpdateEmployee(ctx, req.employee(id))
}

func (s *appService) DeleteEmployee(ctx context.Context, id string) error {
	return s.backend.DeleteEmployee(ctx, id)
}

// AddAdvance records a salary advance; the date defaults to today.
func (s *appService) AddAdvance(ctx context.Context, req AdvanceRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return core.ErrInvalidAmount
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	return s.backend.AddAdvance(ctx, core.Advance{
		EmployeeID: core.Ref{ID: req.EmployeeID},
		Amount:     amount,
		Date:       date,
	})
}

// RecordAttendance saves a day's attendance. Salaries are computed locally
// from each employee's rates so the caller can show what was earned.
func (s *appService) RecordAttendance(ctx context.Context, sheet core.AttendanceSheet) (*AttendanceResult, error) {
	if strings.TrimSpace(sheet.Date) == "" {
		sheet.Date = s.now().Format("2006-01-02")
	}
	if len(sheet.Records) == 0 {
		return nil, fmt.Errorf("%w: no attendance records", ErrInvalidRequest)
	}
	employees, err := s.backend.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	byID := make(map[string]core.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	res := &AttendanceResult{Date: sheet.Date, Total: decimal.Zero}
	for _, rec := range sheet.Records {
		emp, ok := byID[rec.EmployeeID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown employee %s", ErrInvalidRequest, rec.EmployeeID)
		}
		salary := core.DailySalary(emp, rec)
		res.Lines = append(res.Lines, AttendanceLine{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			InTime:     rec.InTime,
			OutTime:    rec.OutTime,
			OTHours:    rec.OTHours,
			Salary:     salary,
		})
		res.Total = res.Total.Add(salary)
	}

	if err := s.backend.SaveAttendance(ctx, sheet); err != nil {
		return nil, err
	}
	return res, nil
}

// MonthlySheet returns the running salary sheet of a month.
func (s *appService) MonthlySheet(ctx context.Context, year int, month time.Month) (*MonthlySheetResult, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, fmt.Errorf("%w: invalid month %d-%02d", ErrInvalidRequest, year, int(month))
	}
	feed, err := s.backend.MonthlyAttendance(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return &MonthlySheetResult{
		Year:      year,
		Month:     month,
		Dates:     core.MonthDates(year, month),
		Employees: core.BuildMonthlySheet(year, month, feed),
	}, nil
}
