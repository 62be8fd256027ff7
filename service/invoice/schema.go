package invoicesvc

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"strings"

	"invoicedash/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Form field names, as posted by the invoice forms.
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

// invoiceFields is the user-editable part of an invoice. id and date are
// never read from the form.
type invoiceFields struct {
	CustomerID string  `form:"customerId" validate:"required"`
	Amount     float64 `form:"amount" validate:"gt=0"`
	Status     string  `form:"status" validate:"required,oneof=pending paid"`
}

// MaxCents is the largest amount the invoices.amount INT column holds.
const MaxCents = math.MaxInt32

var maxCents = decimal.NewFromInt(MaxCents)

// Input is a validated invoice form.
type Input struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     model.InvoiceStatus
}

// AmountInCents converts the dollar amount to whole cents, rounding half away
// from zero. Parse guarantees the result fits in MaxCents.
func (in Input) AmountInCents() int64 {
	return toCents(in.Amount).IntPart()
}

func toCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Round(0)
}

// Schema validates invoice forms for both create and update.
type Schema struct{ v *validator.Validate }

func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Schema{v: v}
}

// Parse validates the customerId, amount and status fields of form. It never
// panics; a rejected form comes back as *ValidationError.
func (s *Schema) Parse(form url.Values) (Input, error) {
	amount, ok := coerceAmount(form.Get(FieldAmount))

	raw := invoiceFields{
		CustomerID: form.Get(FieldCustomerID),
		Amount:     math.NaN(),
		Status:     form.Get(FieldStatus),
	}
	// amounts past the column range stay NaN and fail like any bad amount
	if ok && toCents(amount).Cmp(maxCents) <= 0 {
		raw.Amount = amount.InexactFloat64()
	}

	if err := s.v.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Input{}, err
		}
		fields := FieldErrors{}
		for _, fe := range verrs {
			name := fe.Field()
			fields[name] = append(fields[name], fieldMessages[name])
		}
		return Input{}, &ValidationError{Fields: fields}
	}

	return Input{
		CustomerID: raw.CustomerID,
		Amount:     amount,
		Status:     model.InvoiceStatus(raw.Status),
	}, nil
}

// coerceAmount follows numeric coercion rules: blank is zero, anything
// unparseable is not a number.
func coerceAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
