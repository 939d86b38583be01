package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"invoice-dashboard-backend/internal/models"
)

// NewTestDB opens a private in-memory SQLite database with the full schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedCustomer inserts a customer and returns it.
func SeedCustomer(t *testing.T, db *gorm.DB, name, email string) models.Customer {
	t.Helper()

	customer := models.Customer{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		ImageURL: "/customers/" + name + ".png",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

// SeedInvoice inserts an invoice for the customer and returns it.
func SeedInvoice(t *testing.T, db *gorm.DB, customerID uuid.UUID, amount int64, status, date string) models.Invoice {
	t.Helper()

	invoice := models.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID.String(),
		Amount:     amount,
		Status:     status,
		Date:       date,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("failed to seed invoice: %v", err)
	}
	return invoice
}
