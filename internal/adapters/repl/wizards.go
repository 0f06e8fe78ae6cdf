package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/shopspring/decimal"
)

const saleHelp = `Sale commands (sections: curtain, poles, accessories; rows start at 1):
  add <section>                   add an empty row
  items <section>                 list items you can pick
  item <section> <row> <name...>  pick an item; its price becomes the rate
  qty <section> <row> <n>         set the quantity
  rm <section> <row>              remove a row
  discount <percent>              discount on the sub total
  pay <amount>                    amount tendered
  type <cash|card|bank-transfer>  payment type
  customer                        enter customer details (full order)
  show | refresh | submit | done`

// runSale drives one sale screen until the user leaves it. A successful
// submission resets the screen for the next sale.
func (c *console) runSale(mode app.SaleMode) error {
	sess, err := c.svc.NewSession(c.ctx, mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, saleHelp)
	printSession(c.out, sess.View())

	for {
		line, ok := c.readLine("sale> ")
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		verb := strings.ToLower(fields[0])
		args := fields[1:]

		switch verb {
		case "done", "cancel", "exit", "quit":
			return nil
		case "help", "?":
			fmt.Fprintln(c.out, saleHelp)
		case "show":
			printSession(c.out, sess.View())
		case "refresh":
			if err := c.svc.RefreshCatalog(c.ctx, sess); err != nil {
				fmt.Fprintf(c.out, "Could not refresh stock: %v\n", err)
				continue
			}
			fmt.Fprintln(c.out, "Stock refreshed.")
		case "submit":
			c.submitSale(sess)
		case "customer":
			c.editCustomer(sess)
		default:
			if err := c.editSale(sess, verb, args); err != nil {
				fmt.Fprintf(c.out, "  %v\n", err)
				continue
			}
			printSession(c.out, sess.View())
		}
	}
}

var errSaleUsage = errors.New("unrecognised sale command (type 'help')")

// editSale applies one line-editing command to the session.
func (c *console) editSale(sess *app.Session, verb string, args []string) error {
	switch verb {
	case "discount":
		if len(args) < 1 {
			return errSaleUsage
		}
		sess.SetDiscount(args[0])
		return nil
	case "pay":
		if len(args) < 1 {
			return errSaleUsage
		}
		sess.SetPayment(args[0])
		return nil
	case "type":
		if len(args) < 1 {
			return errSaleUsage
		}
		return sess.SetPaymentType(args[0])
	}

	if len(args) < 1 {
		return errSaleUsage
	}
	cat, err := core.ParseCategory(args[0])
	if err != nil {
		return err
	}

	switch verb {
	case "add":
		sess.AddRow(cat)
		return nil
	case "items":
		printAvailable(c.out, cat, sess.Available(cat))
		return nil
	}

	if len(args) < 2 {
		return errSaleUsage
	}
	row, err := strconv.Atoi(args[1])
	if err != nil || row < 1 {
		return fmt.Errorf("row must be a number from 1")
	}
	idx := row - 1

	switch verb {
	case "rm", "remove":
		sess.RemoveRow(cat, idx)
	case "item":
		name := strings.Join(args[2:], " ")
		if _, found := sess.StockOf(cat, name); !found {
			return fmt.Errorf("no %s named %q", cat.Label(), name)
		}
		return sess.SelectItem(cat, idx, name)
	case "qty":
		if len(args) < 3 {
			return errSaleUsage
		}
		changed, err := sess.SetQuantity(cat, idx, args[2])
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("quantity must be a whole number of at least 1")
		}
	default:
		return errSaleUsage
	}
	return nil
}

func (c *console) editCustomer(sess *app.Session) {
	if sess.Mode != app.ModeFullOrder {
		fmt.Fprintln(c.out, "  Quick sales have no customer.")
		return
	}
	var cust core.Customer
	fields := []struct {
		label string
		dst   *string
	}{
		{"Customer name: ", &cust.Name},
		{"Mobile: ", &cust.Mobile1},
		{"Second mobile (optional): ", &cust.Mobile2},
		{"Address (optional): ", &cust.Address},
		{"Description (optional): ", &cust.Description},
		{"Fixing date (YYYY-MM-DD, blank for today): ", &cust.FixingDate},
	}
	for _, f := range fields {
		v, ok := c.readLine(f.label)
		if !ok {
			return
		}
		*f.dst = v
	}
	if err := sess.SetCustomer(cust); err != nil {
		fmt.Fprintf(c.out, "  %v\n", err)
		return
	}
	printSession(c.out, sess.View())
}

func (c *console) submitSale(sess *app.Session) {
	switch sess.Mode {
	case app.ModeQuickSell:
		res, err := c.svc.SubmitQuickSell(c.ctx, sess)
		if err != nil {
			fmt.Fprintf(c.out, "Not submitted: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Sale recorded. Bill %s, total %s.\n", res.Bill.BillNo, res.Totals.GrandTotal.StringFixed(2))
		if res.PrintError != "" {
			fmt.Fprintf(c.out, "Receipt was not printed: %s\n", res.PrintError)
		}
		if res.CatalogStale {
			fmt.Fprintln(c.out, "Stock could not be reloaded; showing local counts. Type 'refresh' to retry.")
		}
	default:
		res, err := c.svc.SubmitFullOrder(c.ctx, sess)
		if err != nil {
			fmt.Fprintf(c.out, "Not submitted: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Order %s created. Total %s, balance %s.\n",
			res.Order.ID, res.Totals.GrandTotal.StringFixed(2), res.Totals.Balance.StringFixed(2))
		if res.CatalogStale {
			fmt.Fprintln(c.out, "Stock could not be reloaded. Type 'refresh' to retry.")
		}
	}
	fmt.Fprintln(c.out, "Ready for the next sale. Type 'done' to leave.")
}

// runSupplierBill collects supplier bill items, one per line, and saves them.
func (c *console) runSupplierBill(supplierID string) error {
	draft := &core.SupplierBillDraft{SupplierID: supplierID}
	fmt.Fprintln(c.out, "Enter items as: name | colour | section | cost | sell price | qty")
	fmt.Fprintln(c.out, "Type 'done' to save, 'cancel' to abort.")

	for n := 1; ; {
		line, ok := c.readLine(fmt.Sprintf("  Item %d: ", n))
		if !ok || strings.EqualFold(line, "cancel") {
			fmt.Fprintln(c.out, "Supplier bill discarded.")
			return nil
		}
		if strings.EqualFold(line, "done") {
			break
		}
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		for len(parts) < 6 {
			parts = append(parts, "")
		}
		if err := draft.AddItem(parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]); err != nil {
			fmt.Fprintf(c.out, "  %v\n", err)
			continue
		}
		n++
	}

	bill, err := c.svc.CreateSupplierBill(c.ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Supplier bill %s saved. Total %s.\n", bill.ID, draft.Total().StringFixed(2))
	return nil
}

// runAttendance walks the employee list asking for clock times. A blank
// in-time skips the employee.
func (c *console) runAttendance(date string) error {
	employees, err := c.svc.ListEmployees(c.ctx)
	if err != nil {
		return err
	}
	if len(employees.Employees) == 0 {
		fmt.Fprintln(c.out, "No employees found.")
		return nil
	}

	sheet := core.AttendanceSheet{Date: date}
	fmt.Fprintln(c.out, "Times are HH:MM. Leave the in-time blank to skip an employee.")
	for _, emp := range employees.Employees {
		fmt.Fprintf(c.out, "%s\n", emp.Name)
		in, ok := c.readLine("  In: ")
		if !ok {
			return nil
		}
		if in == "" {
			continue
		}
		outTime, ok := c.readLine("  Out: ")
		if !ok {
			return nil
		}
		ot, ok := c.readLine("  OT hours (blank for none): ")
		if !ok {
			return nil
		}
		rec := core.AttendanceInput{EmployeeID: emp.ID, InTime: in, OutTime: outTime}
		if ot != "" {
			hours, err := parseHours(ot)
			if err != nil {
				fmt.Fprintf(c.out, "  %v; recording no overtime.\n", err)
			} else {
				rec.OTHours = hours
			}
		}
		sheet.Records = append(sheet.Records, rec)
	}

	result, err := c.svc.RecordAttendance(c.ctx, sheet)
	if err != nil {
		return err
	}
	printAttendance(c.out, result)
	return nil
}

func parseHours(raw string) (decimal.Decimal, error) {
	h, err := decimal.NewFromString(raw)
	if err != nil || h.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid overtime %q", raw)
	}
	return h, nil
}
