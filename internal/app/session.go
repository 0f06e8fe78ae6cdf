package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"curtain-pos/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleMode selects the policy a session's composer runs under.
type SaleMode string

const (
	// ModeFullOrder needs customer details and accepts partial payment.
	ModeFullOrder SaleMode = "order"
	// ModeQuickSell needs full payment and checks stock on every pick and
	// quantity edit.
	ModeQuickSell SaleMode = "quick"
)

// ParseSaleMode accepts "order"/"full" and "quick"/"quick-sell".
func ParseSaleMode(s string) (SaleMode, error) {
	switch s {
	case "order", "full", "full-order":
		return ModeFullOrder, nil
	case "quick", "quick-sell":
		return ModeQuickSell, nil
	}
	return "", fmt.Errorf("%w: unknown sale mode %q", ErrInvalidRequest, s)
}

// ErrWrongMode is returned when a submission does not match the session's mode.
var ErrWrongMode = errors.New("operation not available in this sale mode")

// Session is one open sale screen: a composer over a catalog mirror plus the
// customer and payment type entered so far. All methods are safe for
// concurrent use.
type Session struct {
	ID   string
	Mode SaleMode

	mu          sync.Mutex
	catalog     *core.Catalog
	composer    *core.Composer
	customer    core.Customer
	paymentType core.PaymentType

	// touched is in UnixNano and is read without mu.
	touched atomic.Int64
}

func newSession(mode SaleMode, catalog *core.Catalog, paymentType core.PaymentType) *Session {
	rows := 1
	if mode == ModeQuickSell {
		rows = 0
	}
	s := &Session{
		ID:          uuid.NewString(),
		Mode:        mode,
		catalog:     catalog,
		composer:    core.NewComposer(catalog, rows),
		paymentType: paymentType,
	}
	s.touch()
	return s
}

func (s *Session) touch() { s.touched.Store(time.Now().UnixNano()) }

// LastUsed returns when the session was last read or edited. It does not
// wait for an in-flight submission.
func (s *Session) LastUsed() time.Time {
	ns := s.touched.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// AddRow appends an empty row to cat.
func (s *Session) AddRow(cat core.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.composer.AddRow(cat)
}

// RemoveRow deletes row idx of cat.
func (s *Session) RemoveRow(cat core.Category, idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.composer.RemoveRow(cat, idx)
}

// SelectItem puts a catalog item on row idx of cat. In quick-sell mode an
// item with no stock on hand returns a *core.StockError and changes nothing.
func (s *Session) SelectItem(cat core.Category, idx int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.Mode == ModeQuickSell {
		return s.composer.SelectItemWithinStock(cat, idx, name)
	}
	s.composer.SelectItem(cat, idx, name)
	return nil
}

// SetQuantity applies a quantity edit. In quick-sell mode a quantity above
// the stock on hand returns a *core.StockError and changes nothing.
func (s *Session) SetQuantity(cat core.Category, idx int, raw string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.Mode == ModeQuickSell {
		return s.composer.SetQuantityWithinStock(cat, idx, raw)
	}
	return s.composer.SetQuantity(cat, idx, raw), nil
}

// SetDiscount stores the discount percentage as entered.
func (s *Session) SetDiscount(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.composer.SetDiscount(raw)
}

// SetPayment stores the amount tendered.
func (s *Session) SetPayment(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.composer.SetPayment(raw)
}

// SetCustomer stores the customer block of a full order.
func (s *Session) SetCustomer(c core.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode != ModeFullOrder {
		return ErrWrongMode
	}
	s.touch()
	s.customer = c
	return nil
}

// SetPaymentType validates and stores how the sale is paid.
func (s *Session) SetPaymentType(raw string) error {
	pt, err := core.ParsePaymentType(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.paymentType = pt
	return nil
}

// Available lists the items of cat that may be offered. Quick sell only
// offers items with stock on hand.
func (s *Session) Available(cat core.Category) []core.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode == ModeQuickSell {
		return s.catalog.Available(cat)
	}
	return s.catalog.Items(cat)
}

// StockOf returns the mirrored stock item of cat named name.
func (s *Session) StockOf(cat core.Category, name string) (core.StockItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Find(cat, name)
}

// SessionSection is one category of a session view.
type SessionSection struct {
	Category core.Category   `json:"category"`
	Label    string          `json:"label"`
	Lines    []core.LineItem `json:"lines"`
}

// SessionView is a point-in-time copy of a session for display.
type SessionView struct {
	ID          string           `json:"id"`
	Mode        SaleMode         `json:"mode"`
	Sections    []SessionSection `json:"sections"`
	RawDiscount int              `json:"rawDiscount"`
	Payment     decimal.Decimal  `json:"payment"`
	Totals      core.Totals      `json:"totals"`
	Customer    *core.Customer   `json:"customer,omitempty"`
	PaymentType core.PaymentType `json:"paymentType"`
}

// View returns the current lines and derived totals.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	v := SessionView{
		ID:          s.ID,
		Mode:        s.Mode,
		RawDiscount: s.composer.Discount(),
		Payment:     s.composer.Payment(),
		Totals:      s.composer.Totals(),
		PaymentType: s.paymentType,
	}
	for _, cat := range core.Categories {
		v.Sections = append(v.Sections, SessionSection{
			Category: cat,
			Label:    cat.Label(),
			Lines:    s.composer.Lines(cat),
		})
	}
	if s.Mode == ModeFullOrder {
		c := s.customer
		v.Customer = &c
	}
	return v
}

// replaceCatalog swaps the mirror. Callers hold mu.
func (s *Session) replaceCatalog(c *core.Catalog) {
	s.catalog = c
	s.composer.SetCatalog(c)
}

// reset clears the sale after a successful submission. Callers hold mu.
func (s *Session) reset() {
	s.composer.Reset()
	s.customer = core.Customer{}
}
