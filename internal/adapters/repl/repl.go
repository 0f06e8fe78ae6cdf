package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"
)

var errExit = errors.New("exit")

// console is one interactive terminal: the service plus its input and output.
type console struct {
	ctx context.Context
	svc app.ApplicationService
	in  *bufio.Reader
	out io.Writer
}

// readLine prints label and reads one trimmed line. ok is false once input
// is exhausted.
func (c *console) readLine(label string) (line string, ok bool) {
	fmt.Fprint(c.out, label)
	raw, err := c.in.ReadString('\n')
	if err != nil && raw == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

// Run starts the interactive REPL loop. Slash commands are dispatched until
// /exit or end of input.
func Run(ctx context.Context, svc app.ApplicationService, in io.Reader, out io.Writer) {
	c := &console{ctx: ctx, svc: svc, in: bufio.NewReader(in), out: out}

	fmt.Fprintln(out, "Curtain POS")
	fmt.Fprintln(out, "Type /order or /quick to start a sale, /help for all commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		input, ok := c.readLine("\n> ")
		if !ok {
			fmt.Fprintln(out, "\nGoodbye!")
			return
		}
		if input == "" {
			continue
		}
		if !strings.HasPrefix(input, "/") {
			fmt.Fprintln(out, "Commands start with '/'. Type /help for the list.")
			continue
		}
		if err := c.dispatch(input); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (c *console) dispatch(input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]
	ctx, svc, out := c.ctx, c.svc, c.out

	switch cmd {
	// ── Sales ─────────────────────────────────────────────────────────────────
	case "order", "new-order":
		return c.runSale(app.ModeFullOrder)

	case "quick", "quick-sell":
		return c.runSale(app.ModeQuickSell)

	case "stock":
		result, err := svc.ListStock(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printStock(out, result)

	// ── Orders ────────────────────────────────────────────────────────────────
	case "orders":
		var filter core.OrderFilter
		if len(args) > 0 {
			filter.OrderStatus = core.OrderStatus(strings.ToLower(args[0]))
		}
		result, err := svc.ListOrders(ctx, filter)
		if err != nil {
			return err
		}
		printOrders(out, result)

	case "order-detail", "od":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /order-detail <order-id>")
			return nil
		}
		result, err := svc.GetOrder(ctx, args[0])
		if err != nil {
			return err
		}
		printOrderDetail(out, result.Order)

	case "status":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /status <order-id> <pending|in-progress|completed>")
			return nil
		}
		if err := svc.UpdateOrderStatus(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Order %s is now %s.\n", args[0], strings.ToLower(args[1]))

	case "pay":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /pay <order-id> <amount> [cash|card|bank-transfer]")
			return nil
		}
		req := app.OrderPaymentRequest{OrderID: args[0], Amount: args[1]}
		if len(args) >= 3 {
			req.PaymentType = args[2]
		}
		result, err := svc.AddOrderPayment(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Payment recorded. Bill %s. Remaining balance: %s (%s)\n",
			result.Bill.BillNo, result.Order.Balance.StringFixed(2), result.Order.PaymentStatus)

	case "cancel-order":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /cancel-order <order-id>")
			return nil
		}
		if !c.confirm(fmt.Sprintf("Cancel order %s?", args[0])) {
			fmt.Fprintln(out, "Not cancelled.")
			return nil
		}
		if err := svc.CancelOrder(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Order %s cancelled.\n", args[0])

	case "cancel-bill":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /cancel-bill <bill-id>")
			return nil
		}
		if !c.confirm(fmt.Sprintf("Cancel bill %s?", args[0])) {
			fmt.Fprintln(out, "Not cancelled.")
			return nil
		}
		if err := svc.CancelBill(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Bill %s cancelled.\n", args[0])

	// ── Back office ───────────────────────────────────────────────────────────
	case "dashboard", "dash":
		result, err := svc.Dashboard(ctx)
		if err != nil {
			return err
		}
		printDashboard(out, result)

	case "report":
		date := ""
		if len(args) > 0 {
			date = args[0]
		}
		result, err := svc.DailyReport(ctx, date)
		if err != nil {
			return err
		}
		printReport(out, result)

	case "save-report":
		if err := svc.SaveDailyReport(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Today's report saved.")

	case "expenses":
		result, err := svc.TodayExpenses(ctx)
		if err != nil {
			return err
		}
		printExpenses(out, result)

	case "add-expense":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /add-expense <amount> <name...>")
			return nil
		}
		name := strings.Join(args[1:], " ")
		if err := svc.AddExpense(ctx, name, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Expense recorded: %s %s\n", name, args[0])

	case "delete-expense":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /delete-expense <expense-id>")
			return nil
		}
		if err := svc.DeleteExpense(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(out, "Expense deleted.")

	case "suppliers":
		result, err := svc.ListSuppliers(ctx)
		if err != nil {
			return err
		}
		printSuppliers(out, result)

	case "supplier-bills":
		supplierID := ""
		if len(args) > 0 {
			supplierID = args[0]
		}
		result, err := svc.ListSupplierBills(ctx, supplierID)
		if err != nil {
			return err
		}
		printSupplierBills(out, result)

	case "supplier-bill":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /supplier-bill <supplier-id>")
			return nil
		}
		return c.runSupplierBill(args[0])

	case "pay-supplier":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /pay-supplier <bill-id> <amount>")
			return nil
		}
		if err := svc.PaySupplierBill(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(out, "Supplier payment recorded.")

	case "employees":
		result, err := svc.ListEmployees(ctx)
		if err != nil {
			return err
		}
		printEmployees(out, result)

	case "advance":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /advance <employee-id> <amount> [YYYY-MM-DD]")
			return nil
		}
		req := app.AdvanceRequest{EmployeeID: args[0], Amount: args[1]}
		if len(args) >= 3 {
			req.Date = args[2]
		}
		if err := svc.AddAdvance(ctx, req); err != nil {
			return err
		}
		fmt.Fprintln(out, "Advance recorded.")

	case "attendance":
		date := ""
		if len(args) > 0 {
			date = args[0]
		}
		return c.runAttendance(date)

	case "salary":
		year, month, err := parseYearMonth(args)
		if err != nil {
			fmt.Fprintln(out, "Usage: /salary <year> <month>")
			return nil
		}
		result, err := svc.MonthlySheet(ctx, year, month)
		if err != nil {
			return err
		}
		printMonthlySheet(out, result)

	case "help", "h":
		printHelp(out)

	case "exit", "quit", "e", "q":
		return errExit

	default:
		fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

// confirm asks a y/n question; anything but y/yes is a no.
func (c *console) confirm(question string) bool {
	answer, ok := c.readLine(question + " (y/n): ")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// parseYearMonth reads "<year> <month>", defaulting to the current month.
func parseYearMonth(args []string) (int, time.Month, error) {
	now := time.Now()
	if len(args) == 0 {
		return now.Year(), now.Month(), nil
	}
	if len(args) < 2 {
		return 0, 0, errors.New("year and month required")
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	return year, time.Month(month), nil
}
