package models

import (
	"github.com/google/uuid"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// DateLayout is the calendar date format stored in invoices.date.
const DateLayout = "2006-01-02"

// Invoice amounts are stored in cents.
type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID string    `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	Status     string    `gorm:"type:varchar(16);not null;index" json:"status"`
	Date       string    `gorm:"type:varchar(10);not null;index" json:"date"`
}
