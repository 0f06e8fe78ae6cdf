package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of a full order.
//
//	pending → in-progress → completed
//	cancelled is set by the backend when an order is cancelled.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in-progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus accepts the statuses a user may set on an order.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderPending, OrderInProgress, OrderCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// PaymentType is how a bill was settled.
type PaymentType string

const (
	PaymentCash         PaymentType = "cash"
	PaymentCard         PaymentType = "card"
	PaymentBankTransfer PaymentType = "bank-transfer"
)

// ParsePaymentType validates a payment type; empty means cash.
func ParsePaymentType(s string) (PaymentType, error) {
	switch pt := PaymentType(strings.ToLower(strings.TrimSpace(s))); pt {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentCard, PaymentBankTransfer:
		return pt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentType, s)
}

// Ref is a backend reference that arrives either as a bare id or as the
// populated document. It always marshals back to the bare id.
type Ref struct {
	ID   string
	Name string
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*r = Ref{}
		return nil
	}
	switch b[0] {
	case '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	case '{':
		var doc struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return err
		}
		*r = Ref{ID: doc.ID, Name: doc.Name}
		return nil
	}
	return fmt.Errorf("unsupported reference %s", string(b))
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// OrderCustomer is the customer block stored on an order.
type OrderCustomer struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile,omitempty"`
	Mobile1 string `json:"mobile1,omitempty"`
	Mobile2 string `json:"mobile2,omitempty"`
	Address string `json:"address,omitempty"`
}

// Phone returns the first contact number present.
func (c OrderCustomer) Phone() string {
	if c.Mobile != "" {
		return c.Mobile
	}
	return c.Mobile1
}

// Order is a full order as returned by the backend.
type Order struct {
	ID            string          `json:"_id"`
	Customer      *OrderCustomer  `json:"customer,omitempty"`
	CustomerID    Ref             `json:"customerId"`
	OrderStatus   OrderStatus     `json:"orderStatus"`
	PaymentStatus string          `json:"paymentStatus"`
	OrderAmount   decimal.Decimal `json:"orderAmount"`
	Balance       decimal.Decimal `json:"balance"`
	FixingDate    string          `json:"fixingDate"`
	Items         []SaleItem      `json:"items,omitempty"`
	Bills         []Bill          `json:"bills,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CustomerName prefers the embedded customer and falls back to the
// populated customerId.
func (o Order) CustomerName() string {
	if o.Customer != nil && o.Customer.Name != "" {
		return o.Customer.Name
	}
	return o.CustomerID.Name
}

// Bill is a payment record, either a quick sale or a payment against an order.
type Bill struct {
	ID          string          `json:"_id"`
	BillNo      string          `json:"billNo"`
	Order       Ref             `json:"order"`
	OrderID     Ref             `json:"orderId"`
	BillTotal   decimal.Decimal `json:"billTotal"`
	Discount    decimal.Decimal `json:"discount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaymentType PaymentType     `json:"paymentType"`
	Items       []SaleItem      `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OrderRef returns the id of the order the bill pays, if any.
func (b Bill) OrderRef() string {
	if b.Order.ID != "" {
		return b.Order.ID
	}
	return b.OrderID.ID
}

// OrderItem is a sold line as stored by the backend. Total and CostPrice
// may be absent on older records.
type OrderItem struct {
	ID           string              `json:"_id"`
	BillID       Ref                 `json:"billId"`
	ItemName     string              `json:"itemName"`
	ItemQuantity int                 `json:"itemQuantity"`
	ItemRate     decimal.Decimal     `json:"itemRate"`
	CostPrice    decimal.NullDecimal `json:"costPrice"`
	Cost         decimal.NullDecimal `json:"cost"`
	Total        decimal.NullDecimal `json:"total"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// LineTotal returns the stored total, or rate × quantity when absent.
func (it OrderItem) LineTotal() decimal.Decimal {
	if it.Total.Valid {
		return it.Total.Decimal
	}
	return it.ItemRate.Mul(decimal.NewFromInt(int64(it.ItemQuantity)))
}

// UnitCost returns costPrice, falling back to cost, then zero.
func (it OrderItem) UnitCost() decimal.Decimal {
	if it.CostPrice.Valid {
		return it.CostPrice.Decimal
	}
	if it.Cost.Valid {
		return it.Cost.Decimal
	}
	return decimal.Zero
}

// OrderFilter narrows an order list. Empty fields match everything.
type OrderFilter struct {
	CustomerName  string
	OrderStatus   OrderStatus
	PaymentStatus string
}

// FilterOrders applies f and sorts the result newest first. Orders with no
// creation time sort last.
func FilterOrders(orders []Order, f OrderFilter) []Order {
	name := strings.ToLower(f.CustomerName)
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if name != "" && !strings.Contains(strings.ToLower(o.CustomerName()), name) {
			continue
		}
		if f.OrderStatus != "" && o.OrderStatus != f.OrderStatus {
			continue
		}
		if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
