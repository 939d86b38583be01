package seed

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/auth"
)

const (
	UserEmail    = "user@nextmail.com"
	UserPassword = "123456"
)

type placeholderInvoice struct {
	customer int
	amount   int64
	status   string
	date     string
}

var customers = []models.Customer{
	{ID: uuid.MustParse("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"), Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: uuid.MustParse("3958dc9e-712f-4377-85e9-fec4b6a6442a"), Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: uuid.MustParse("3958dc9e-742f-4377-85e9-fec4b6a6442a"), Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: uuid.MustParse("76d65c26-f784-44a2-ac19-586678f7c2f2"), Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: uuid.MustParse("cc27c14a-0acf-4f4a-a6c9-d45682c144b9"), Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: uuid.MustParse("13d07535-c59e-4157-a011-f8d2ef4e0cbb"), Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var invoices = []placeholderInvoice{
	{0, 15795, models.InvoiceStatusPending, "2022-12-06"},
	{1, 20348, models.InvoiceStatusPending, "2022-11-14"},
	{4, 3040, models.InvoiceStatusPaid, "2022-10-29"},
	{3, 44800, models.InvoiceStatusPaid, "2023-09-10"},
	{5, 34577, models.InvoiceStatusPending, "2023-08-05"},
	{2, 54246, models.InvoiceStatusPending, "2023-07-16"},
	{0, 666, models.InvoiceStatusPending, "2023-06-27"},
	{3, 32545, models.InvoiceStatusPaid, "2023-06-09"},
	{4, 1250, models.InvoiceStatusPaid, "2023-06-17"},
	{5, 8546, models.InvoiceStatusPaid, "2023-06-07"},
	{1, 500, models.InvoiceStatusPaid, "2023-08-19"},
	{5, 8945, models.InvoiceStatusPaid, "2023-06-03"},
	{2, 1000, models.InvoiceStatusPaid, "2022-06-05"},
}

var revenue = []models.Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}

// Run loads the placeholder user, customers, invoices and revenue. It does
// nothing when the placeholder user already exists.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", UserEmail).Count(&existing).Error; err != nil {
		return errors.Wrap(err, "check seed user")
	}
	if existing > 0 {
		log.Info("seed skipped, data present")
		return nil
	}

	hash, err := auth.HashPassword(UserPassword)
	if err != nil {
		return errors.Wrap(err, "hash seed password")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{ID: uuid.New(), Name: "User", Email: UserEmail, PasswordHash: hash}
		if err := tx.Create(&user).Error; err != nil {
			return errors.Wrap(err, "seed user")
		}
		if err := tx.Create(&customers).Error; err != nil {
			return errors.Wrap(err, "seed customers")
		}

		rows := make([]models.Invoice, 0, len(invoices))
		for _, inv := range invoices {
			rows = append(rows, models.Invoice{
				ID:         uuid.New(),
				CustomerID: customers[inv.customer].ID.String(),
				Amount:     inv.amount,
				Status:     inv.status,
				Date:       inv.date,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return errors.Wrap(err, "seed invoices")
		}
		if err := tx.Create(&revenue).Error; err != nil {
			return errors.Wrap(err, "seed revenue")
		}

		log.Info("seed data loaded",
			zap.Int("customers", len(customers)),
			zap.Int("invoices", len(rows)),
		)
		return nil
	})
}
