package invoicesvc

import (
	"net/url"
	"testing"

	"invoicedash/model"

	"github.com/stretchr/testify/require"
)

func TestSchema_Status(t *testing.T) {
	s := NewSchema()
	for _, st := range []string{"pending", "paid"} {
		in, err := s.Parse(url.Values{"customerId": {"c"}, "amount": {"1"}, "status": {st}})
		require.NoError(t, err, st)
		require.Equal(t, model.InvoiceStatus(st), in.Status)
		require.True(t, in.Status.Valid())
	}
	for _, st := range []string{"PAID", "overdue", " pending", "draft"} {
		_, err := s.Parse(url.Values{"customerId": {"c"}, "amount": {"1"}, "status": {st}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, st)
		require.Equal(t, FieldErrors{"status": {"Please select an invoice status."}}, ve.Fields)
	}
}

func TestSchema_IgnoresIDAndDate(t *testing.T) {
	in, err := NewSchema().Parse(url.Values{
		"id":         {"ignored"},
		"date":       {"1999-01-01"},
		"customerId": {"c"},
		"amount":     {"12.34"},
		"status":     {"paid"},
	})
	require.NoError(t, err)
	require.Equal(t, Input{CustomerID: "c", Amount: in.Amount, Status: model.InvoicePaid}, in)
	require.Equal(t, int64(1234), in.AmountInCents())
}

func TestCoerceAmount(t *testing.T) {
	d, ok := coerceAmount("")
	require.True(t, ok)
	require.True(t, d.IsZero())

	for _, in := range []string{"12abc", "Infinity", "NaN", "0x10"} {
		_, ok = coerceAmount(in)
		require.False(t, ok, in)
	}

	d, ok = coerceAmount("  7.5 ")
	require.True(t, ok)
	require.Equal(t, "7.5", d.String())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{"status": {"x"}, "amount": {"y"}}}
	require.Equal(t, "invalid fields: amount, status", err.Error())
}
