package invoice

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Form keys, as submitted by the invoice forms.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

var fieldMessages = map[string]string{
	FieldCustomerID: "Please select a customer.",
	FieldAmount:     "Please enter an amount greater than $0.",
	FieldStatus:     "Please select an invoice status.",
}

const msgAmountTooLarge = "Please enter an amount no greater than $21,474,836.47."

// FormInput is the raw payload accepted by Create and Edit. Amount is in major units ("45.00").
type FormInput struct {
	CustomerID string `json:"customerId"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

func FormInputFromValues(v url.Values) FormInput {
	return FormInput{
		CustomerID: v.Get(FieldCustomerID),
		Amount:     v.Get(FieldAmount),
		Status:     v.Get(FieldStatus),
	}
}

// FormInputFromInvoice pre-populates a form with a stored invoice.
func FormInputFromInvoice(inv *Invoice) FormInput {
	return FormInput{
		CustomerID: inv.CustomerID.String(),
		Amount:     decimal.New(inv.Amount, -2).StringFixed(2),
		Status:     string(inv.Status),
	}
}

// FieldErrors maps a form key to the messages describing what is wrong with it.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	if slices.Contains(f[field], msg) {
		return
	}

	f[field] = append(f[field], msg)
}

// schema covers the fields the validator checks. The amount is bounded by toCents.
type schema struct {
	CustomerID string `form:"customerId" validate:"required,uuid"`
	Status     string `form:"status" validate:"oneof=pending paid"`
}

// maxCents is the largest amount the invoices.amount column holds.
var maxCents = decimal.NewFromInt(math.MaxInt32)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	return v
}

type fields struct {
	CustomerID uuid.UUID
	Amount     int64
	Status     Status
}

func (in FormInput) validate() (fields, FieldErrors) {
	errs := FieldErrors{}
	s := schema{
		CustomerID: strings.TrimSpace(in.CustomerID),
		Status:     in.Status,
	}

	cents, msg := toCents(in.Amount)
	if msg != "" {
		errs.add(FieldAmount, msg)
	}

	var verrs validator.ValidationErrors
	if errors.As(validate.Struct(s), &verrs) {
		for _, fe := range verrs {
			errs.add(fe.Field(), fieldMessages[fe.Field()])
		}
	}

	if len(errs) > 0 {
		return fields{}, errs
	}

	return fields{
		CustomerID: uuid.MustParse(s.CustomerID),
		Amount:     cents,
		Status:     Status(s.Status),
	}, nil
}

// parseAmount coerces the submitted amount; a blank value counts as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(s)
}

// toCents rounds the amount to whole cents. A non-empty message means the amount was rejected.
func toCents(s string) (int64, string) {
	amount, err := parseAmount(s)
	if err != nil {
		return 0, fieldMessages[FieldAmount]
	}

	cents := amount.Shift(2).Round(0)

	switch {
	case !cents.IsPositive():
		return 0, fieldMessages[FieldAmount]
	case cents.GreaterThan(maxCents):
		return 0, msgAmountTooLarge
	}

	return cents.IntPart(), ""
}
