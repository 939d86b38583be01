package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/testutil"
)

func TestRunLoadsPlaceholderDataOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db, zap.NewNop()))
	require.NoError(t, Run(ctx, db, zap.NewNop()))

	var nCustomers, nInvoices, nRevenue int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&nCustomers).Error)
	require.NoError(t, db.Model(&models.Invoice{}).Count(&nInvoices).Error)
	require.NoError(t, db.Model(&models.Revenue{}).Count(&nRevenue).Error)
	assert.Equal(t, int64(len(customers)), nCustomers)
	assert.Equal(t, int64(len(invoices)), nInvoices)
	assert.Equal(t, int64(12), nRevenue)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", UserEmail).Error)
	assert.True(t, auth.VerifyPassword(UserPassword, user.PasswordHash))
}
