package repository

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/testutil"
)

func TestInvoiceRepositoryCreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	inv := &models.Invoice{
		ID:         uuid.New(),
		CustomerID: "c1",
		Amount:     4999,
		Status:     models.InvoiceStatusPaid,
		Date:       "2026-10-14",
	}
	require.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, *inv, *got)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceRepositoryUpdateByIDKeepsDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Lee", "lee@example.com")
	inv := testutil.SeedInvoice(t, db, customer.ID, 1000, models.InvoiceStatusPending, "2025-01-02")

	require.NoError(t, repo.UpdateByID(ctx, inv.ID.String(), "c2", 2500, models.InvoiceStatusPaid))

	got, err := repo.GetByID(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "c2", got.CustomerID)
	assert.Equal(t, int64(2500), got.Amount)
	assert.Equal(t, models.InvoiceStatusPaid, got.Status)
	assert.Equal(t, "2025-01-02", got.Date)
}

func TestInvoiceRepositoryMissingRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	err := repo.UpdateByID(ctx, uuid.NewString(), "c1", 100, models.InvoiceStatusPaid)
	assert.True(t, errors.Is(err, ErrInvoiceNotFound))

	err = repo.DeleteByID(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, ErrInvoiceNotFound))

	err = repo.DeleteByID(ctx, "bogus")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvoiceNotFound))
}

func TestInvoiceRepositoryDeleteByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Lee", "lee@example.com")
	inv := testutil.SeedInvoice(t, db, customer.ID, 1000, models.InvoiceStatusPending, "2025-01-02")

	require.NoError(t, repo.DeleteByID(ctx, inv.ID.String()))
	_, err := repo.GetByID(ctx, inv.ID.String())
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceRepositorySearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	lee := testutil.SeedCustomer(t, db, "Delba de Oliveira", "delba@oliveira.com")
	amy := testutil.SeedCustomer(t, db, "Amy Burns", "amy@burns.com")
	testutil.SeedInvoice(t, db, lee.ID, 15795, models.InvoiceStatusPending, "2025-12-06")
	testutil.SeedInvoice(t, db, lee.ID, 20348, models.InvoiceStatusPaid, "2025-11-14")
	testutil.SeedInvoice(t, db, amy.ID, 3040, models.InvoiceStatusPaid, "2025-10-29")

	rows, err := repo.SearchInvoices(ctx, "", 6, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-12-06", rows[0].Date)
	assert.Equal(t, "Delba de Oliveira", rows[0].Name)

	rows, err = repo.SearchInvoices(ctx, "AMY", 6, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3040), rows[0].Amount)

	rows, err = repo.SearchInvoices(ctx, "pend", 6, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = repo.SearchInvoices(ctx, "203", 6, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = repo.SearchInvoices(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	count, err := repo.CountSearch(ctx, "oliveira")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, wildcard := range []string{"%", "_", "2025-1_-"} {
		count, err = repo.CountSearch(ctx, wildcard)
		require.NoError(t, err)
		assert.Zero(t, count, wildcard)
	}

	count, err = repo.CountSearch(ctx, "2025-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestInvoiceRepositoryTotalsAndLatest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	c := testutil.SeedCustomer(t, db, "Lee", "lee@example.com")
	testutil.SeedInvoice(t, db, c.ID, 100, models.InvoiceStatusPaid, "2025-01-01")
	testutil.SeedInvoice(t, db, c.ID, 250, models.InvoiceStatusPaid, "2025-01-03")
	testutil.SeedInvoice(t, db, c.ID, 75, models.InvoiceStatusPending, "2025-01-02")

	totals, err := repo.TotalsByStatus(ctx)
	require.NoError(t, err)

	byStatus := map[string]models.StatusTotal{}
	for _, row := range totals {
		byStatus[row.Status] = row
	}
	assert.Equal(t, int64(2), byStatus[models.InvoiceStatusPaid].Count)
	assert.Equal(t, int64(350), byStatus[models.InvoiceStatusPaid].Sum)
	assert.Equal(t, int64(75), byStatus[models.InvoiceStatusPending].Sum)

	latest, err := repo.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "2025-01-03", latest[0].Date)
	assert.Equal(t, "2025-01-02", latest[1].Date)
}
