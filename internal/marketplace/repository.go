package marketplace

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvestly/harvestly-backend/pkg/db/models"
)

// ReviewAggregate is the per-product rating summary supplied by the review
// collaborator.
type ReviewAggregate struct {
	ProductID     uuid.UUID `gorm:"column:product_id"`
	AverageRating float64   `gorm:"column:average_rating"`
	ReviewCount   int       `gorm:"column:review_count"`
}

// Repository performs the catalog reads the ranking engine is fed from. It is
// the only marketplace component that touches storage; everything downstream
// operates on the materialized snapshot.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires the catalog read surface.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ActiveProducts loads every active listing with its farm attached.
func (r *Repository) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Farm").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ReviewAggregates computes the mean rating and review count per product.
func (r *Repository) ReviewAggregates(ctx context.Context) (map[uuid.UUID]ReviewAggregate, error) {
	var rows []ReviewAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("product_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggregates := make(map[uuid.UUID]ReviewAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.ProductID] = row
	}
	return aggregates, nil
}
