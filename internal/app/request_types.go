package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"curtain-pos/internal/core"

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

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// OrderPaymentRequest is the input for a follow-up payment on an order.
type OrderPaymentRequest struct {
	OrderID     string `json:"orderId" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	PaymentType string `json:"paymentType"`
}

// CreateSupplierRequest is the input for adding a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// EmployeeRequest is the input for adding or editing an employee.
type EmployeeRequest struct {
	Name      string          `json:"name" validate:"required"`
	Address   string          `json:"address"`
	Mobile    string          `json:"mobile"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	OTRate    decimal.Decimal `json:"otRate"`
}

func (r EmployeeRequest) check() error {
	r.Name = strings.TrimSpace(r.Name)
	if err := validateRequest(r); err != nil {
		return err
	}
	if !r.DailyRate.IsPositive() {
		return fmt.Errorf("%w: dailyRate must be greater than zero", ErrInvalidRequest)
	}
	if r.OTRate.IsNegative() {
		return fmt.Errorf("%w: otRate cannot be negative", ErrInvalidRequest)
	}
	return nil
}

func (r EmployeeRequest) employee(id string) core.Employee {
	return core.Employee{
		ID:        id,
		Name:      strings.TrimSpace(r.Name),
		Address:   strings.TrimSpace(r.Address),
		Mobile:    strings.TrimSpace(r.Mobile),
		DailyRate: r.DailyRate,
		OTRate:    r.OTRate,
	}
}

// AdvanceRequest is the input for a salary advance. Date defaults to today.
type AdvanceRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Amount     string `json:"amount" validate:"required"`
	Date       string `json:"date"`
}
