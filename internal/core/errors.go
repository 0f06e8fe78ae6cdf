package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Local validation failures. None of them results in a backend call.
var (
	ErrNoItems               = errors.New("cannot submit an order with zero items")
	ErrInsufficientPayment   = errors.New("payment below required total")
	ErrMissingCustomerFields = errors.New("missing required customer fields")
	ErrInsufficientStock     = errors.New("quantity exceeds available stock")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidPaymentType    = errors.New("invalid payment type")
	ErrIncompleteBillItem    = errors.New("item name, cost, sell price and quantity are required")
	ErrIncompleteExpense     = errors.New("expense name and amount are required")
)

// StockError is returned when a quick-sell quantity edit exceeds the stock
// on hand. It matches ErrInsufficientStock.
type StockError struct {
	ItemName  string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("cannot sell more than available stock (%d) of %s", e.Available, e.ItemName)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// PaymentError is returned when a quick sale is tendered less than its grand
// total. It matches ErrInsufficientPayment.
type PaymentError struct {
	Required decimal.Decimal
	Tendered decimal.Decimal
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment must be at least %s (tendered %s)", e.Required.StringFixed(2), e.Tendered.StringFixed(2))
}

func (e *PaymentError) Unwrap() error { return ErrInsufficientPayment }
