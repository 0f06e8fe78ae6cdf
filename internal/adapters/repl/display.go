package repl

import (
	"fmt"
	"io"
	"strings"
	"time"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"
)

func rule(out io.Writer, ch string, n int) {
	fmt.Fprintln(out, strings.Repeat(ch, n))
}

func printStock(out io.Writer, result *app.StockResult) {
	fmt.Fprintln(out)
	rule(out, "=", 72)
	title := "STOCK"
	if result.Category != "" {
		title += " - " + result.Category.Label()
	}
	fmt.Fprintf(out, "  %s\n", title)
	rule(out, "=", 72)
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "  No stock items found.")
		rule(out, "=", 72)
		return
	}
	fmt.Fprintf(out, "  %-26s %-12s %-18s %6s %12s\n", "ITEM", "COLOUR", "SECTION", "QTY", "PRICE")
	rule(out, "-", 72)
	for _, it := range result.Items {
		fmt.Fprintf(out, "  %-26s %-12s %-18s %6d %12s  %s\n",
			it.Name, it.Color, it.Category.Label(), it.Quantity, it.SellPrice.StringFixed(2), it.Band())
	}
	rule(out, "=", 72)
}

func printSession(out io.Writer, v app.SessionView) {
	fmt.Fprintln(out)
	title := "FULL ORDER"
	if v.Mode == app.ModeQuickSell {
		title = "QUICK SELL"
	}
	rule(out, "=", 66)
	fmt.Fprintf(out, "  %s\n", title)
	rule(out, "=", 66)
	for _, sec := range v.Sections {
		if len(sec.Lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s\n", sec.Label)
		for i, l := range sec.Lines {
			name := l.ItemName
			if l.Empty() {
				name = "(no item)"
			}
			fmt.Fprintf(out, "    %2d. %-28s %4d x %10s = %12s\n",
				i+1, name, l.Quantity, l.Rate.StringFixed(2), l.LineTotal().StringFixed(2))
		}
	}
	rule(out, "-", 66)
	printTotals(out, v.Totals)
	fmt.Fprintf(out, "  %-16s %s\n", "Payment type", v.PaymentType)
	if v.Customer != nil && v.Customer.Name != "" {
		fmt.Fprintf(out, "  %-16s %s (%s)\n", "Customer", v.Customer.Name, v.Customer.Mobile1)
	}
	rule(out, "=", 66)
}

func printTotals(out io.Writer, t core.Totals) {
	fmt.Fprintf(out, "  %-16s %14s\n", "Sub total", t.SubTotal.StringFixed(2))
	fmt.Fprintf(out, "  %-16s %14s  (%d%%)\n", "Discount", t.DiscountAmount.StringFixed(2), t.Discount)
	fmt.Fprintf(out, "  %-16s %14s\n", "Grand total", t.GrandTotal.StringFixed(2))
	fmt.Fprintf(out, "  %-16s %14s\n", "Payment", t.Payment.StringFixed(2))
	fmt.Fprintf(out, "  %-16s %14s\n", "Balance", t.Balance.StringFixed(2))
}

func printAvailable(out io.Writer, cat core.Category, items []core.StockItem) {
	if len(items) == 0 {
		fmt.Fprintf(out, "  No %s available.\n", cat.Label())
		return
	}
	for _, it := range items {
		fmt.Fprintf(out, "  %-28s %6d in stock  @ %s\n", it.Name, it.Quantity, it.SellPrice.StringFixed(2))
	}
}

func printOrders(out io.Writer, result *app.OrderListResult) {
	fmt.Fprintln(out)
	rule(out, "=", 92)
	fmt.Fprintf(out, "  %-24s %-20s %-12s %-10s %12s %12s\n", "ID", "CUSTOMER", "STATUS", "PAYMENT", "AMOUNT", "BALANCE")
	rule(out, "-", 92)
	if len(result.Orders) == 0 {
		fmt.Fprintln(out, "  No orders found.")
	}
	for _, o := range result.Orders {
		fmt.Fprintf(out, "  %-24s %-20s %-12s %-10s %12s %12s\n",
			o.ID, o.CustomerName(), o.OrderStatus, o.PaymentStatus,
			o.OrderAmount.StringFixed(2), o.Balance.StringFixed(2))
	}
	rule(out, "=", 92)
}

func printOrderDetail(out io.Writer, o *core.Order) {
	fmt.Fprintln(out)
	rule(out, "=", 66)
	fmt.Fprintf(out, "  Order     : %s\n", o.ID)
	fmt.Fprintf(out, "  Customer  : %s\n", o.CustomerName())
	if o.Customer != nil {
		fmt.Fprintf(out, "  Phone     : %s\n", o.Customer.Phone())
	}
	fmt.Fprintf(out, "  Status    : %s / %s\n", o.OrderStatus, o.PaymentStatus)
	fmt.Fprintf(out, "  Fixing    : %s\n", o.FixingDate)
	fmt.Fprintf(out, "  Amount    : %s   Balance: %s\n", o.OrderAmount.StringFixed(2), o.Balance.StringFixed(2))
	rule(out, "-", 66)
	for _, it := range o.Items {
		fmt.Fprintf(out, "  %-30s %4d x %10s\n", it.ItemName, it.ItemQuantity, it.ItemRate.StringFixed(2))
	}
	if len(o.Bills) > 0 {
		rule(out, "-", 66)
		fmt.Fprintln(out, "  Bills")
		for _, b := range o.Bills {
			fmt.Fprintf(out, "    %-12s %-12s paid %12s  (%s)\n",
				b.BillNo, formatDate(b.CreatedAt), b.PaidAmount.StringFixed(2), b.PaymentType)
		}
	}
	rule(out, "=", 66)
}

func printDashboard(out io.Writer, s *core.DashboardSummary) {
	fmt.Fprintln(out)
	rule(out, "=", 50)
	fmt.Fprintf(out, "  DASHBOARD  %s\n", s.Date)
	rule(out, "=", 50)
	fmt.Fprintf(out, "  %-22s %16s\n", "Daily sell", s.DailySell.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Daily profit", s.DailyProfit.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Today's expenses", s.TodayExpenses.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Net daily profit", s.NetDailyProfit.StringFixed(2))
	rule(out, "-", 50)
	fmt.Fprintf(out, "  %-22s %16d\n", "Orders today", s.TodayOrders)
	fmt.Fprintf(out, "  %-22s %16d\n", "Pending orders", s.PendingOrders)
	fmt.Fprintf(out, "  %-22s %16d\n", "Total orders", s.TotalOrders)
	fmt.Fprintf(out, "  %-22s %16s\n", "Total sales", s.TotalSales.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Pending balance", s.PendingBalance.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %10d (%d low)\n", "Stock items", s.StockItems, s.LowStockItems)
	rule(out, "=", 50)
}

func printReport(out io.Writer, res *app.ReportResult) {
	r := res.Report
	fmt.Fprintln(out)
	rule(out, "=", 66)
	fmt.Fprintf(out, "  DAILY REPORT  %s\n", r.Date)
	rule(out, "=", 66)
	if len(res.StandaloneBills) > 0 {
		fmt.Fprintln(out, "  Quick sales")
		for _, b := range res.StandaloneBills {
			fmt.Fprintf(out, "    %-14s %12s  %s\n", b.BillNo, b.PaidAmount.StringFixed(2), b.PaymentType)
		}
	}
	if len(res.OrderBills) > 0 {
		fmt.Fprintln(out, "  Order payments")
		for _, b := range res.OrderBills {
			fmt.Fprintf(out, "    %-14s %12s  order %s\n", b.BillNo, b.PaidAmount.StringFixed(2), b.OrderRef())
		}
	}
	if len(r.Expenses) > 0 {
		fmt.Fprintln(out, "  Expenses")
		for _, e := range r.Expenses {
			fmt.Fprintf(out, "    %-24s %12s\n", e.Name, e.Amount.StringFixed(2))
		}
	}
	rule(out, "-", 66)
	t := res.Totals
	fmt.Fprintf(out, "  %-22s %16s\n", "Collected", t.Collected.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Salaries", t.Salaries.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Advances", t.Advances.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Suppliers paid", t.SupplierPaid.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Expenses", t.Expenses.StringFixed(2))
	fmt.Fprintf(out, "  %-22s %16s\n", "Net cash in hand", t.NetCashInHand.StringFixed(2))
	rule(out, "=", 66)
}

func printExpenses(out io.Writer, res *app.ExpenseListResult) {
	fmt.Fprintln(out)
	rule(out, "=", 56)
	if len(res.Expenses) == 0 {
		fmt.Fprintln(out, "  No expenses recorded today.")
	}
	for _, e := range res.Expenses {
		fmt.Fprintf(out, "  %-24s %-26s %12s\n", e.ID, e.Name, e.Amount.StringFixed(2))
	}
	rule(out, "-", 56)
	fmt.Fprintf(out, "  %-51s %12s\n", "Total", res.Total.StringFixed(2))
	rule(out, "=", 56)
}

func printSuppliers(out io.Writer, res *app.SupplierListResult) {
	fmt.Fprintln(out)
	rule(out, "=", 72)
	if len(res.Suppliers) == 0 {
		fmt.Fprintln(out, "  No suppliers found.")
	}
	for _, s := range res.Suppliers {
		fmt.Fprintf(out, "  %-24s %-24s %-14s %s\n", s.ID, s.Name, s.Mobile, s.Address)
	}
	rule(out, "=", 72)
}

func printSupplierBills(out io.Writer, res *app.SupplierBillListResult) {
	fmt.Fprintln(out)
	rule(out, "=", 80)
	fmt.Fprintf(out, "  %-24s %-20s %12s %12s %12s\n", "BILL", "SUPPLIER", "TOTAL", "PAID", "OUTSTANDING")
	rule(out, "-", 80)
	for _, b := range res.Bills {
		fmt.Fprintf(out, "  %-24s %-20s %12s %12s %12s\n",
			b.ID, b.SupplierName(), b.TotalBill.StringFixed(2), b.PaidAmount.StringFixed(2), b.Outstanding().StringFixed(2))
	}
	rule(out, "-", 80)
	fmt.Fprintf(out, "  %-73s %s\n", "Outstanding", res.Outstanding.StringFixed(2))
	rule(out, "=", 80)
}

func printEmployees(out io.Writer, res *app.EmployeeListResult) {
	fmt.Fprintln(out)
	rule(out, "=", 72)
	for _, e := range res.Employees {
		fmt.Fprintf(out, "  %-24s %-22s %10s/day  OT %s/h\n",
			e.ID, e.Name, e.DailyRate.StringFixed(2), e.HourlyOTRate().StringFixed(2))
	}
	if len(res.Employees) == 0 {
		fmt.Fprintln(out, "  No employees found.")
	}
	rule(out, "=", 72)
}

func printAttendance(out io.Writer, res *app.AttendanceResult) {
	fmt.Fprintln(out)
	rule(out, "=", 62)
	fmt.Fprintf(out, "  ATTENDANCE  %s\n", res.Date)
	rule(out, "-", 62)
	for _, l := range res.Lines {
		fmt.Fprintf(out, "  %-22s %5s-%-5s OT %-5s %12s\n", l.Name, l.InTime, l.OutTime, l.OTHours.String(), l.Salary.StringFixed(2))
	}
	rule(out, "-", 62)
	fmt.Fprintf(out, "  %-47s %12s\n", "Total", res.Total.StringFixed(2))
	rule(out, "=", 62)
}

func printMonthlySheet(out io.Writer, res *app.MonthlySheetResult) {
	fmt.Fprintln(out)
	rule(out, "=", 72)
	fmt.Fprintf(out, "  SALARY SHEET  %s %d\n", res.Month, res.Year)
	rule(out, "=", 72)
	for _, emp := range res.Employees {
		fmt.Fprintf(out, "  %s\n", emp.Name)
		for _, d := range emp.Days {
			if !d.HasRecords {
				continue
			}
			fmt.Fprintf(out, "    %s  salary %10s  advance %10s  balance %12s\n",
				d.Date, d.Salary.StringFixed(2), d.Advance.StringFixed(2), d.Balance.StringFixed(2))
		}
		fmt.Fprintf(out, "    %-50s %12s\n", "Closing balance", emp.Closing.StringFixed(2))
		rule(out, "-", 72)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `
Sales
  /order                      Start a full order (customer, partial payment)
  /quick                      Start a quick sale (full payment, prints receipt)
  /stock [section]            List stock, optionally one section

Orders
  /orders [status]            List orders, newest first
  /order-detail <id>          Show an order with its bills
  /status <id> <status>       Set pending, in-progress or completed
  /pay <id> <amount> [type]   Take a payment against an order's balance
  /cancel-order <id>          Cancel an order
  /cancel-bill <id>           Cancel a bill

Back office
  /dashboard                  Today's sales, profit and orders
  /report [YYYY-MM-DD]        Daily report (today when no date)
  /save-report                Store today's report
  /expenses                   Today's expenses
  /add-expense <amount> <name...>
  /suppliers                  List suppliers
  /supplier-bills [supplier]  List supplier bills and what is owed
  /supplier-bill <supplier>   Enter a supplier bill item by item
  /pay-supplier <bill> <amount>
  /employees                  List employees
  /advance <employee> <amount> [YYYY-MM-DD]
  /attendance [YYYY-MM-DD]    Enter the day's attendance
  /salary <year> <month>      Monthly salary sheet

  /help                       This list
  /exit                       Leave`)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
