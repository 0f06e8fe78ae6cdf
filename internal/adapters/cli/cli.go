package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"curtain-pos/internal/adapters/repl"
	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	ucli "github.com/urfave/cli/v2"
)

// ServiceFactory builds the application service once flags are parsed, so
// that --help works without configuration.
type ServiceFactory func(c *ucli.Context) (app.ApplicationService, error)

// NewApp returns the command-line application. With no subcommand it starts
// the interactive REPL on in/out; subcommands run once and print JSON.
func NewApp(build ServiceFactory, in io.Reader, out io.Writer) *ucli.App {
	withService := func(run func(c *ucli.Context, svc app.ApplicationService) error) ucli.ActionFunc {
		return func(c *ucli.Context) error {
			svc, err := build(c)
			if err != nil {
				return ucli.Exit(err.Error(), 1)
			}
			return run(c, svc)
		}
	}

	return &ucli.App{
		Name:      "curtain-pos",
		Usage:     "point of sale for a curtain shop",
		Writer:    out,
		ErrWriter: out,
		Reader:    in,
		Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
			repl.Run(c.Context, svc, in, out)
			return nil
		}),
		Commands: []*ucli.Command{
			{
				Name:  "repl",
				Usage: "start the interactive terminal",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					repl.Run(c.Context, svc, in, out)
					return nil
				}),
			},
			{
				Name:  "stock",
				Usage: "list stock",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "curtain, poles or accessories"},
				},
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.ListStock(c.Context, c.String("category"))
					return emit(out, res, err)
				}),
			},
			{
				Name:  "orders",
				Usage: "list orders, newest first",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "status", Usage: "pending, in-progress, completed or cancelled"},
					&ucli.StringFlag{Name: "customer", Usage: "customer name contains"},
					&ucli.StringFlag{Name: "payment", Usage: "payment status"},
				},
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.ListOrders(c.Context, core.OrderFilter{
						CustomerName:  c.String("customer"),
						OrderStatus:   core.OrderStatus(c.String("status")),
						PaymentStatus: c.String("payment"),
					})
					return emit(out, res, err)
				}),
			},
			{
				Name:      "order",
				Usage:     "show one order with its bills",
				ArgsUsage: "<order-id>",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					if c.NArg() < 1 {
						return ucli.Exit("order id required", 2)
					}
					res, err := svc.GetOrder(c.Context, c.Args().First())
					return emit(out, res, err)
				}),
			},
			{
				Name:      "pay",
				Usage:     "take a payment against an order's balance",
				ArgsUsage: "<order-id> <amount>",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "type", Value: "cash", Usage: "cash, card or bank-transfer"},
				},
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					if c.NArg() < 2 {
						return ucli.Exit("order id and amount required", 2)
					}
					res, err := svc.AddOrderPayment(c.Context, app.OrderPaymentRequest{
						OrderID:     c.Args().Get(0),
						Amount:      c.Args().Get(1),
						PaymentType: c.String("type"),
					})
					return emit(out, res, err)
				}),
			},
			{
				Name:      "status",
				Usage:     "set an order's status",
				ArgsUsage: "<order-id> <pending|in-progress|completed>",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					if c.NArg() < 2 {
						return ucli.Exit("order id and status required", 2)
					}
					return fail(svc.UpdateOrderStatus(c.Context, c.Args().Get(0), c.Args().Get(1)))
				}),
			},
			{
				Name:  "dashboard",
				Usage: "today's sales, profit and orders",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.Dashboard(c.Context)
					return emit(out, res, err)
				}),
			},
			{
				Name:  "report",
				Usage: "daily report",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, today when empty"},
					&ucli.BoolFlag{Name: "save", Usage: "store today's report on the backend"},
				},
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					if c.Bool("save") {
						if err := svc.SaveDailyReport(c.Context); err != nil {
							return fail(err)
						}
					}
					res, err := svc.DailyReport(c.Context, c.String("date"))
					return emit(out, res, err)
				}),
			},
			{
				Name:  "expenses",
				Usage: "today's expenses",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.TodayExpenses(c.Context)
					return emit(out, res, err)
				}),
			},
			{
				Name:  "suppliers",
				Usage: "list suppliers",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.ListSuppliers(c.Context)
					return emit(out, res, err)
				}),
			},
			{
				Name:  "employees",
				Usage: "list employees",
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.ListEmployees(c.Context)
					return emit(out, res, err)
				}),
			},
			{
				Name:  "attendance",
				Usage: "monthly salary sheet",
				Flags: []ucli.Flag{
					&ucli.IntFlag{Name: "year", Value: time.Now().Year()},
					&ucli.IntFlag{Name: "month", Value: int(time.Now().Month())},
				},
				Action: withService(func(c *ucli.Context, svc app.ApplicationService) error {
					res, err := svc.MonthlySheet(c.Context, c.Int("year"), time.Month(c.Int("month")))
					return emit(out, res, err)
				}),
			},
		},
	}
}

// emit prints v as indented JSON, or turns err into a non-zero exit.
func emit(out io.Writer, v any, err error) error {
	if err != nil {
		return fail(err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func fail(err error) error {
	if err == nil {
		return nil
	}
	return ucli.Exit(err.Error(), 1)
}
