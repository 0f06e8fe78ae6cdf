package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one row of a sale: a catalog item picked by display name, a
// quantity and the rate snapped from the catalog when the item was chosen.
type LineItem struct {
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
}

// Empty reports whether no item has been chosen for the row.
func (l LineItem) Empty() bool { return l.ItemName == "" }

// LineTotal is rate × quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Rate.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func emptyLine() LineItem {
	return LineItem{Quantity: 1, Rate: decimal.Zero}
}

// SaleItem is one entry of a submitted order or bill.
type SaleItem struct {
	Category     Category        `json:"-"`
	ItemName     string          `json:"itemName"`
	ItemQuantity int             `json:"itemQuantity"`
	ItemRate     decimal.Decimal `json:"itemRate"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	Total        decimal.Decimal `json:"total"`
}

// Composer holds the line items of one sale, keyed by category, together
// with the raw discount and the tendered payment. Totals are derived on
// every read.
//
// A Composer is not safe for concurrent use.
type Composer struct {
	catalog   *Catalog
	lines     map[Category][]LineItem
	discount  int
	payment   decimal.Decimal
	startRows int
}

// NewComposer returns a composer over catalog with startRows empty rows in
// every section. The full-order screen starts with one row per section, the
// quick-sell screen with none.
func NewComposer(catalog *Catalog, startRows int) *Composer {
	c := &Composer{catalog: catalog, startRows: startRows}
	c.Reset()
	return c
}

// Reset clears all rows, the discount and the payment.
func (c *Composer) Reset() {
	c.lines = make(map[Category][]LineItem, len(Categories))
	for _, cat := range Categories {
		rows := make([]LineItem, c.startRows)
		for i := range rows {
			rows[i] = emptyLine()
		}
		c.lines[cat] = rows
	}
	c.discount = 0
	c.payment = decimal.Zero
}

// Catalog returns the catalog rates and costs are looked up in.
func (c *Composer) Catalog() *Catalog { return c.catalog }

// SetCatalog swaps the catalog. Existing rows keep their snapped rates.
func (c *Composer) SetCatalog(catalog *Catalog) { c.catalog = catalog }

// Lines returns a copy of the rows of cat.
func (c *Composer) Lines(cat Category) []LineItem {
	out := make([]LineItem, len(c.lines[cat]))
	copy(out, c.lines[cat])
	return out
}

// AllLines returns every row in section order.
func (c *Composer) AllLines() []LineItem {
	var out []LineItem
	for _, cat := range Categories {
		out = append(out, c.lines[cat]...)
	}
	return out
}

// AddRow appends an empty row to cat.
func (c *Composer) AddRow(cat Category) {
	if !cat.Valid() {
		return
	}
	c.lines[cat] = append(c.lines[cat], emptyLine())
}

// RemoveRow deletes row idx of cat. Out-of-range indices are ignored.
func (c *Composer) RemoveRow(cat Category, idx int) {
	rows := c.lines[cat]
	if idx < 0 || idx >= len(rows) {
		return
	}
	c.lines[cat] = append(rows[:idx:idx], rows[idx+1:]...)
}

// SelectItem puts the named catalog item on row idx of cat. The rate snaps
// to the catalog sell price (zero when the name is unknown) and the
// quantity resets to 1.
func (c *Composer) SelectItem(cat Category, idx int, name string) {
	rows := c.lines[cat]
	if idx < 0 || idx >= len(rows) {
		return
	}
	rate := decimal.Zero
	if it, ok := c.catalog.Find(cat, name); ok {
		rate = it.SellPrice
	}
	rows[idx] = LineItem{ItemName: name, Quantity: 1, Rate: rate}
}

// SelectItemWithinStock is SelectItem for the quick-sell screen: an item
// that is unknown or has nothing on hand is rejected with a *StockError and
// the row is left unchanged.
func (c *Composer) SelectItemWithinStock(cat Category, idx int, name string) error {
	rows := c.lines[cat]
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	it, ok := c.catalog.Find(cat, name)
	if !ok || it.Quantity < 1 {
		return &StockError{ItemName: name, Available: it.Quantity, Requested: 1}
	}
	rows[idx] = LineItem{ItemName: name, Quantity: 1, Rate: it.SellPrice}
	return nil
}

// SetQuantity parses raw as a positive integer and stores it on row idx of
// cat. It reports whether the edit was applied; unparsable or non-positive
// input leaves the row unchanged.
func (c *Composer) SetQuantity(cat Category, idx int, raw string) bool {
	rows := c.lines[cat]
	if idx < 0 || idx >= len(rows) {
		return false
	}
	qty, ok := parseQuantity(raw)
	if !ok {
		return false
	}
	rows[idx].Quantity = qty
	return true
}

// SetQuantityWithinStock is SetQuantity for the quick-sell screen: a
// quantity above the stock on hand of the selected item is rejected with a
// *StockError and the row is left unchanged.
func (c *Composer) SetQuantityWithinStock(cat Category, idx int, raw string) (bool, error) {
	rows := c.lines[cat]
	if idx < 0 || idx >= len(rows) {
		return false, nil
	}
	qty, ok := parseQuantity(raw)
	if !ok {
		return false, nil
	}
	if it, found := c.catalog.Find(cat, rows[idx].ItemName); found && qty > it.Quantity {
		return false, &StockError{ItemName: it.Name, Available: it.Quantity, Requested: qty}
	}
	rows[idx].Quantity = qty
	return true, nil
}

// SetDiscount reads the leading integer of raw as a percentage, so "10.5"
// stores 10; input without one stores 0. The value is kept as entered and
// only clamped when totals are computed.
func (c *Composer) SetDiscount(raw string) {
	c.discount = leadingInt(raw)
}

// Discount returns the raw discount as entered.
func (c *Composer) Discount() int { return c.discount }

// SetPayment parses raw as a decimal amount; invalid or negative input
// stores 0.
func (c *Composer) SetPayment(raw string) {
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || p.IsNegative() {
		p = decimal.Zero
	}
	c.payment = p
}

// Payment returns the tendered amount.
func (c *Composer) Payment() decimal.Decimal { return c.payment }

// Totals derives the bill summary from the current rows, discount and
// payment.
func (c *Composer) Totals() Totals {
	return ComputeTotals(c.AllLines(), c.discount, c.payment)
}

// BuildSubmissionPayload maps every row with a chosen item to a SaleItem,
// looking the cost price up in the catalog. It returns ErrNoItems when no
// row has an item.
func (c *Composer) BuildSubmissionPayload() ([]SaleItem, error) {
	var items []SaleItem
	for _, cat := range Categories {
		for _, l := range c.lines[cat] {
			if l.Empty() {
				continue
			}
			cost := decimal.Zero
			if it, ok := c.catalog.Find(cat, l.ItemName); ok {
				cost = it.Cost
			}
			items = append(items, SaleItem{
				Category:     cat,
				ItemName:     l.ItemName,
				ItemQuantity: l.Quantity,
				ItemRate:     l.Rate,
				CostPrice:    cost,
				Total:        l.LineTotal(),
			})
		}
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// leadingInt parses an optional sign and the digits that follow it,
// ignoring anything after them.
func leadingInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// checkStock reports a *StockError when the rows of an item together ask
// for more than the catalog holds.
func (c *Composer) checkStock() error {
	for _, cat := range Categories {
		wanted := map[string]int{}
		var order []string
		for _, l := range c.lines[cat] {
			if l.Empty() {
				continue
			}
			if _, seen := wanted[l.ItemName]; !seen {
				order = append(order, l.ItemName)
			}
			wanted[l.ItemName] += l.Quantity
		}
		for _, name := range order {
			it, _ := c.catalog.Find(cat, name)
			if wanted[name] > it.Quantity {
				return &StockError{ItemName: name, Available: it.Quantity, Requested: wanted[name]}
			}
		}
	}
	return nil
}

func parseQuantity(raw string) (int, bool) {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || q <= 0 {
		return 0, false
	}
	return q, true
}
