package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Customer is the customer block of a full order. Name and the primary
// mobile number are required.
type Customer struct {
	Name        string `json:"name" validate:"required"`
	Mobile1     string `json:"mobile1" validate:"required"`
	Mobile2     string `json:"mobile2"`
	Address     string `json:"address"`
	Description string `json:"description"`
	FixingDate  string `json:"fixingDate"`
}

func (c Customer) normalized() Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Mobile1 = strings.TrimSpace(c.Mobile1)
	c.Mobile2 = strings.TrimSpace(c.Mobile2)
	c.Address = strings.TrimSpace(c.Address)
	c.Description = strings.TrimSpace(c.Description)
	c.FixingDate = strings.TrimSpace(c.FixingDate)
	return c
}

// Validate reports ErrMissingCustomerFields naming every missing field.
func (c Customer) Validate() error {
	err := validate.Struct(c.normalized())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: %s", ErrMissingCustomerFields, strings.Join(fields, ", "))
	}
	return fmt.Errorf("validating customer: %w", err)
}

// OrderDetails is the fulfilment block of a full order.
type OrderDetails struct {
	FixingDate  string      `json:"fixingDate"`
	OrderStatus OrderStatus `json:"orderStatus"`
}

// BillDetails is the first bill raised with a full order.
type BillDetails struct {
	BillTotal   decimal.Decimal `json:"billTotal"`
	Discount    int             `json:"discount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaymentType PaymentType     `json:"paymentType"`
}

// FullOrderRequest is the body of POST /orders/full.
type FullOrderRequest struct {
	Customer     Customer     `json:"customer"`
	OrderDetails OrderDetails `json:"orderDetails"`
	Items        []SaleItem   `json:"items"`
	BillDetails  BillDetails  `json:"billDetails"`
}

// QuickSellRequest is the body of POST /orders/quick-sell.
type QuickSellRequest struct {
	Items       []SaleItem      `json:"items"`
	BillTotal   decimal.Decimal `json:"billTotal"`
	Discount    int             `json:"discount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaymentType PaymentType     `json:"paymentType"`
}

// BuildFullOrder validates a full order and assembles its request. The
// customer is checked before the items. A zero payment is sent as the
// grand total; an empty fixing date becomes now.
func BuildFullOrder(c *Composer, customer Customer, paymentType PaymentType, now time.Time) (*FullOrderRequest, error) {
	customer = customer.normalized()
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	items, err := c.BuildSubmissionPayload()
	if err != nil {
		return nil, err
	}

	t := c.Totals()
	paid := t.Payment
	if paid.IsZero() {
		paid = t.GrandTotal
	}
	fixing := customer.FixingDate
	if fixing == "" {
		fixing = now.UTC().Format(time.RFC3339)
	}
	if paymentType == "" {
		paymentType = PaymentCash
	}

	return &FullOrderRequest{
		Customer:     customer,
		OrderDetails: OrderDetails{FixingDate: fixing, OrderStatus: OrderPending},
		Items:        items,
		BillDetails: BillDetails{
			BillTotal:   t.GrandTotal,
			Discount:    t.Discount,
			PaidAmount:  paid,
			PaymentType: paymentType,
		},
	}, nil
}

// BuildQuickSell validates an immediate sale and assembles its request.
// The payment must cover the grand total; it is checked before the items,
// and no item may be sold beyond the catalog's stock.
func BuildQuickSell(c *Composer, paymentType PaymentType) (*QuickSellRequest, error) {
	t := c.Totals()
	if t.Payment.LessThan(t.GrandTotal) {
		return nil, &PaymentError{Required: t.GrandTotal, Tendered: t.Payment}
	}
	items, err := c.BuildSubmissionPayload()
	if err != nil {
		return nil, err
	}
	if err := c.checkStock(); err != nil {
		return nil, err
	}
	if paymentType == "" {
		paymentType = PaymentCash
	}
	return &QuickSellRequest{
		Items:       items,
		BillTotal:   t.GrandTotal,
		Discount:    t.Discount,
		PaidAmount:  t.Payment,
		PaymentType: paymentType,
	}, nil
}

// ApplySale decrements catalog quantities by the sold items.
func ApplySale(catalog *Catalog, items []SaleItem) {
	for _, it := range items {
		catalog.Decrement(it.Category, it.ItemName, it.ItemQuantity)
	}
}

// OrderPaymentRequest is the body of POST /bills/payment, a follow-up
// payment against an order's outstanding balance.
type OrderPaymentRequest struct {
	OrderID     string          `json:"orderId"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	BillTotal   decimal.Decimal `json:"billTotal"`
	Discount    int             `json:"discount"`
	PaymentType PaymentType     `json:"paymentType"`
}

// NewOrderPayment validates a follow-up payment. The bill total is the
// order's current balance and no discount applies.
func NewOrderPayment(order Order, rawAmount string, paymentType PaymentType) (*OrderPaymentRequest, error) {
	amount, err := parsePositiveAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	if paymentType == "" {
		paymentType = PaymentCash
	}
	return &OrderPaymentRequest{
		OrderID:     order.ID,
		PaidAmount:  amount,
		BillTotal:   order.Balance,
		Discount:    0,
		PaymentType: paymentType,
	}, nil
}

// OrderPaymentResult is the backend reply to a follow-up payment.
type OrderPaymentResult struct {
	Order struct {
		Balance       decimal.Decimal `json:"balance"`
		PaymentStatus string          `json:"paymentStatus"`
	} `json:"order"`
	Bill Bill `json:"bill"`
}

// QuickSellResult is the backend reply to a quick sale.
type QuickSellResult struct {
	Bill Bill `json:"bill"`
}

// FullOrderResult is the backend reply to a full order.
type FullOrderResult struct {
	Order Order `json:"order"`
	Bill  *Bill `json:"bill,omitempty"`
}

func parsePositiveAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
