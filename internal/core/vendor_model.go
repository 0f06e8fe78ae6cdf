package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a vendor the shop buys stock from.
type Supplier struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// SupplierBillItem is one stock line received on a supplier bill. Saving
// the bill adds the quantity to stock at the given cost and sell price.
type SupplierBillItem struct {
	ItemName  string          `json:"itemName"`
	ItemColor string          `json:"itemColor"`
	ItemType  Category        `json:"itemType"`
	Cost      decimal.Decimal `json:"cost"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Quantity  int             `json:"quantity"`
}

// LineCost is cost × quantity.
func (i SupplierBillItem) LineCost() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SupplierBill is a bill received from a supplier.
type SupplierBill struct {
	ID            string             `json:"_id"`
	Supplier      Ref                `json:"supplier"`
	SupplierID    Ref                `json:"supplierId"`
	Items         []SupplierBillItem `json:"items"`
	TotalBill     decimal.Decimal    `json:"totalBill"`
	PaidAmount    decimal.Decimal    `json:"paidAmount"`
	PaymentDate   *time.Time         `json:"paymentDate,omitempty"`
	PaymentStatus string             `json:"paymentStatus,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// Outstanding is the unpaid part of the bill.
func (b SupplierBill) Outstanding() decimal.Decimal {
	return b.TotalBill.Sub(b.PaidAmount)
}

// SupplierName prefers the populated supplier reference.
func (b SupplierBill) SupplierName() string {
	if b.Supplier.Name != "" {
		return b.Supplier.Name
	}
	return b.SupplierID.Name
}

// SupplierBillDraft collects items before a supplier bill is saved.
type SupplierBillDraft struct {
	SupplierID  string
	PaymentDate *time.Time
	items       []SupplierBillItem
}

// AddItem validates and appends one item. Name, cost, sell price and
// quantity are required; colour is optional and the type defaults to
// curtain.
func (d *SupplierBillDraft) AddItem(name, color, itemType, rawCost, rawSell, rawQty string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(rawCost) == "" || strings.TrimSpace(rawSell) == "" || strings.TrimSpace(rawQty) == "" {
		return ErrIncompleteBillItem
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(rawCost))
	if err != nil {
		return ErrIncompleteBillItem
	}
	sell, err := decimal.NewFromString(strings.TrimSpace(rawSell))
	if err != nil {
		return ErrIncompleteBillItem
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
	if err != nil {
		return ErrIncompleteBillItem
	}
	cat := CategoryCurtain
	if strings.TrimSpace(itemType) != "" {
		if cat, err = ParseCategory(itemType); err != nil {
			return err
		}
	}
	d.items = append(d.items, SupplierBillItem{
		ItemName:  name,
		ItemColor: strings.TrimSpace(color),
		ItemType:  cat,
		Cost:      cost,
		SellPrice: sell,
		Quantity:  qty,
	})
	return nil
}

// Items returns a copy of the drafted items.
func (d *SupplierBillDraft) Items() []SupplierBillItem {
	out := make([]SupplierBillItem, len(d.items))
	copy(out, d.items)
	return out
}

// Total is Σ cost × quantity.
func (d *SupplierBillDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.items {
		total = total.Add(it.LineCost())
	}
	return total
}

// NewSupplierBill is the body of POST /supplier-bills.
type NewSupplierBill struct {
	SupplierID  string             `json:"supplierId"`
	Items       []SupplierBillItem `json:"items"`
	TotalBill   decimal.Decimal    `json:"totalBill"`
	PaymentDate *string            `json:"paymentDate"`
}

// Build returns the request, or false when no supplier or items are set.
func (d *SupplierBillDraft) Build() (*NewSupplierBill, bool) {
	if d.SupplierID == "" || len(d.items) == 0 {
		return nil, false
	}
	req := &NewSupplierBill{
		SupplierID: d.SupplierID,
		Items:      d.Items(),
		TotalBill:  d.Total(),
	}
	if d.PaymentDate != nil {
		s := d.PaymentDate.UTC().Format(time.RFC3339)
		req.PaymentDate = &s
	}
	return req, true
}

// SupplierPaymentRequest is the body of POST /payments.
type SupplierPaymentRequest struct {
	SupplierBillID string          `json:"supplierBillId"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
}

// NewSupplierPayment validates a payment against a supplier bill.
func NewSupplierPayment(billID, rawAmount string) (*SupplierPaymentRequest, error) {
	amount, err := parsePositiveAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	return &SupplierPaymentRequest{SupplierBillID: billID, PaidAmount: amount}, nil
}

// SupplierPayment is a payment made against a supplier bill.
type SupplierPayment struct {
	ID           string          `json:"_id"`
	SupplierBill *SupplierBill   `json:"supplierBill,omitempty"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	PaidDate     time.Time       `json:"paidDate"`
}
