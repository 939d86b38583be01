package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
)

type RevenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) *RevenueRepository {
	return &RevenueRepository{db: db}
}

func (r *RevenueRepository) All(ctx context.Context) ([]models.Revenue, error) {
	var revenue []models.Revenue
	if err := r.db.WithContext(ctx).Find(&revenue).Error; err != nil {
		return nil, errors.Wrap(err, "fetch revenue")
	}
	return revenue, nil
}
