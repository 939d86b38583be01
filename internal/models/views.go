package models

import "github.com/google/uuid"

// LatestInvoice is a dashboard row with its amount already formatted for display.
type LatestInvoice struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"image_url"`
	Amount   string    `json:"amount"`
}

// InvoiceRow is a row of the searchable invoices table.
type InvoiceRow struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ImageURL   string    `gorm:"column:image_url" json:"image_url"`
	Amount     int64     `json:"amount"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
}

// InvoiceForm is an invoice as shown in the edit form, amount in dollars.
type InvoiceForm struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
}

// CustomerField is the id/name pair used by the invoice form's customer select.
type CustomerField struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CustomerRow is a customers table row with per-customer invoice totals.
type CustomerRow struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ImageURL      string    `gorm:"column:image_url" json:"image_url"`
	TotalInvoices int64     `json:"total_invoices"`
	TotalPending  int64     `json:"-"`
	TotalPaid     int64     `json:"-"`
}

// StatusTotal aggregates invoice count and amount for one status.
type StatusTotal struct {
	Status string
	Count  int64
	Sum    int64
}
