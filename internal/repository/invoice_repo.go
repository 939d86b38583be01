package repository

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

const invoiceCustomerJoin = "JOIN customers ON invoices.customer_id = CAST(customers.id AS TEXT)"

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a single invoice row.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return errors.Wrap(err, "insert invoice")
	}
	return nil
}

// UpdateByID rewrites the mutable fields of an invoice. Id and date are never touched.
func (r *InvoiceRepository) UpdateByID(ctx context.Context, id string, customerID string, amount int64, status string) error {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return errors.Wrapf(err, "parse invoice id %q", id)
	}

	result := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"customer_id": customerID,
			"amount":      amount,
			"status":      status,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update invoice")
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(ErrInvoiceNotFound, "update invoice %s", invoiceID)
	}
	return nil
}

// DeleteByID hard deletes an invoice.
func (r *InvoiceRepository) DeleteByID(ctx context.Context, id string) error {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return errors.Wrapf(err, "parse invoice id %q", id)
	}

	result := r.db.WithContext(ctx).Where("id = ?", invoiceID).Delete(&models.Invoice{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete invoice")
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(ErrInvoiceNotFound, "delete invoice %s", invoiceID)
	}
	return nil
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}

	var invoice models.Invoice
	err = r.db.WithContext(ctx).First(&invoice, "id = ?", invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get invoice")
	}
	return &invoice, nil
}

// Latest returns the newest invoices joined with their customer.
func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error) {
	var rows []models.InvoiceRow
	err := r.db.WithContext(ctx).Table("invoices").
		Select("invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status, customers.name, customers.email, customers.image_url").
		Joins(invoiceCustomerJoin).
		Order("invoices.date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "latest invoices")
	}
	return rows, nil
}

// SearchInvoices matches the query against customer name, email, amount, date and status.
func (r *InvoiceRepository) SearchInvoices(ctx context.Context, query string, limit, offset int) ([]models.InvoiceRow, error) {
	var rows []models.InvoiceRow
	err := r.searchScope(ctx, query).
		Select("invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status, customers.name, customers.email, customers.image_url").
		Order("invoices.date DESC").
		Order("invoices.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "search invoices")
	}
	return rows, nil
}

// CountSearch counts the rows SearchInvoices would return without paging.
func (r *InvoiceRepository) CountSearch(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := r.searchScope(ctx, query).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count invoices")
	}
	return count, nil
}

// TotalsByStatus groups invoice count and amount sum by status.
func (r *InvoiceRepository) TotalsByStatus(ctx context.Context) ([]models.StatusTotal, error) {
	var rows []models.StatusTotal
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount),0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "invoice totals")
	}
	return rows, nil
}

func (r *InvoiceRepository) searchScope(ctx context.Context, query string) *gorm.DB {
	dbQuery := r.db.WithContext(ctx).Table("invoices").Joins(invoiceCustomerJoin)

	query = strings.TrimSpace(query)
	if query == "" {
		return dbQuery
	}

	like := "%" + escapeLike(strings.ToLower(query)) + "%"
	return dbQuery.Where(
		`LOWER(customers.name) LIKE ? ESCAPE '\' OR LOWER(customers.email) LIKE ? ESCAPE '\' OR CAST(invoices.amount AS TEXT) LIKE ? ESCAPE '\' OR invoices.date LIKE ? ESCAPE '\' OR LOWER(invoices.status) LIKE ? ESCAPE '\'`,
		like, like, like, like, like,
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
