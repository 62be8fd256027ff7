package model

import "github.com/shopspring/decimal"

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoicePending || s == InvoicePaid
}

// Invoice mirrors a row of the invoices table. Amount is in cents and Date
// is a YYYY-MM-DD calendar date.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}

// InvoiceForm is an invoice shaped for the edit form, amount back in dollars.
type InvoiceForm struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
}

// InvoiceRow is one line of the dashboard invoices table.
type InvoiceRow struct {
	ID       string        `json:"id"`
	Amount   int64         `json:"amount"`
	Date     string        `json:"date"`
	Status   InvoiceStatus `json:"status"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	ImageURL string        `json:"image_url"`
}

type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// State is what a form action hands back to the page that submitted it.
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}
