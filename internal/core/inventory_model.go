package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the backend itemType of a stock item. Each category is one
// section of a sale.
type Category string

const (
	CategoryCurtain   Category = "Curtain"
	CategoryPole      Category = "Poles"
	CategoryAccessory Category = "Other Accessories"
)

// Categories lists the sale sections in display order.
var Categories = []Category{CategoryCurtain, CategoryPole, CategoryAccessory}

// Valid reports whether c is one of the sale sections.
func (c Category) Valid() bool {
	switch c {
	case CategoryCurtain, CategoryPole, CategoryAccessory:
		return true
	}
	return false
}

// Label is the plural section heading shown to the user.
func (c Category) Label() string {
	switch c {
	case CategoryCurtain:
		return "Curtains"
	case CategoryPole:
		return "Poles"
	case CategoryAccessory:
		return "Accessories"
	}
	return string(c)
}

// ParseCategory accepts the backend itemType or a short section name
// ("curtain", "poles", "accessories", ...), case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "curtain", "curtains":
		return CategoryCurtain, nil
	case "pole", "poles":
		return CategoryPole, nil
	case "accessory", "accessories", "other accessories":
		return CategoryAccessory, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// StockItem is one row of the backend stock catalog.
type StockItem struct {
	ID        string          `json:"_id"`
	Name      string          `json:"itemName"`
	Color     string          `json:"itemColor,omitempty"`
	Category  Category        `json:"itemType"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	SellPrice decimal.Decimal `json:"sellPrice"`
}

// QuantityBand classifies stock levels for the inventory listing.
type QuantityBand string

const (
	BandHigh   QuantityBand = "high"
	BandMedium QuantityBand = "medium"
	BandLow    QuantityBand = "low"
)

// Band returns high above 50, medium from 20 to 50 and low below 20.
func (s StockItem) Band() QuantityBand {
	switch {
	case s.Quantity > 50:
		return BandHigh
	case s.Quantity >= 20:
		return BandMedium
	default:
		return BandLow
	}
}

// Catalog is the stock list partitioned by category.
// Items of unknown categories are kept but never offered in a sale section.
type Catalog struct {
	items map[Category][]StockItem
	order []Category
}

// NewCatalog partitions items by their itemType, preserving backend order.
func NewCatalog(items []StockItem) *Catalog {
	c := &Catalog{items: make(map[Category][]StockItem)}
	for _, it := range items {
		if _, seen := c.items[it.Category]; !seen {
			c.order = append(c.order, it.Category)
		}
		c.items[it.Category] = append(c.items[it.Category], it)
	}
	return c
}

// Items returns a copy of the items in cat.
func (c *Catalog) Items(cat Category) []StockItem {
	if c == nil {
		return nil
	}
	out := make([]StockItem, len(c.items[cat]))
	copy(out, c.items[cat])
	return out
}

// Available returns the items in cat that still have stock.
func (c *Catalog) Available(cat Category) []StockItem {
	var out []StockItem
	for _, it := range c.Items(cat) {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

// All returns every item, grouped by category in first-seen order.
func (c *Catalog) All() []StockItem {
	if c == nil {
		return nil
	}
	var out []StockItem
	for _, cat := range c.order {
		out = append(out, c.items[cat]...)
	}
	return out
}

// Find returns the first item in cat with the given display name.
func (c *Catalog) Find(cat Category, name string) (StockItem, bool) {
	if c == nil || name == "" {
		return StockItem{}, false
	}
	for _, it := range c.items[cat] {
		if it.Name == name {
			return it, true
		}
	}
	return StockItem{}, false
}

// Decrement lowers the quantity of the named item by qty. It reports
// whether the item was found.
func (c *Catalog) Decrement(cat Category, name string, qty int) bool {
	if c == nil {
		return false
	}
	list := c.items[cat]
	for i := range list {
		if list[i].Name == name {
			list[i].Quantity -= qty
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return NewCatalog(nil)
	}
	return NewCatalog(c.All())
}
