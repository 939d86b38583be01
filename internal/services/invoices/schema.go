package invoices

import (
	"github.com/shopspring/decimal"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/validation"
)

// Form field names as submitted by the invoice form.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

// InvoiceInput is a validated invoice form. Amount is in dollars.
type InvoiceInput struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     string
}

// Schema validates the create and update forms. Id and date are never read from input.
var Schema = validation.NewSchema(
	validation.Field(FieldCustomerID, validation.String,
		func(in *InvoiceInput, v string) { in.CustomerID = v },
		validation.Must(validation.Tag("required"), MsgSelectCustomer)),
	validation.Field(FieldAmount, validation.AsNumber,
		func(in *InvoiceInput, v validation.Number) { in.Amount = v.Value },
		validation.Must(positiveCents, MsgAmountPositive)),
	validation.Field(FieldStatus, validation.String,
		func(in *InvoiceInput, v string) { in.Status = v },
		validation.Must(validation.Tag("oneof="+models.InvoiceStatusPending+" "+models.InvoiceStatusPaid), MsgSelectStatus)),
)

// positiveCents reports whether the amount is at least one cent once rounded.
func positiveCents(n validation.Number) bool {
	return n.Valid && n.Value.Mul(hundred).Round(0).IsPositive()
}
