package repository

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ListFields returns id and name of every customer, ordered by name.
func (r *CustomerRepository) ListFields(ctx context.Context) ([]models.CustomerField, error) {
	var fields []models.CustomerField
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Select("id, name").
		Order("name ASC").
		Scan(&fields).Error
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return fields, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return count, nil
}

// SearchWithTotals filters customers by name or email and sums their invoices.
func (r *CustomerRepository) SearchWithTotals(ctx context.Context, query string) ([]models.CustomerRow, error) {
	var rows []models.CustomerRow

	dbQuery := r.db.WithContext(ctx).Table("customers").
		Select(`customers.id, customers.name, customers.email, customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid`).
		Joins("LEFT JOIN invoices ON invoices.customer_id = CAST(customers.id AS TEXT)")

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + escapeLike(strings.ToLower(query)) + "%"
		dbQuery = dbQuery.Where(`LOWER(customers.name) LIKE ? ESCAPE '\' OR LOWER(customers.email) LIKE ? ESCAPE '\'`, like, like)
	}

	err := dbQuery.
		Group("customers.id, customers.name, customers.email, customers.image_url").
		Order("customers.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "search customers")
	}
	return rows, nil
}
