package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harvestly/harvestly-backend/pkg/db/models"
	"github.com/harvestly/harvestly-backend/pkg/enums"
)

// Repository performs the cart reads and writes. Absent rows surface as nil
// records, not errors; the service decides what absence means.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires the cart storage surface.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductByID loads one listing for cart admission checks.
func (r *Repository) ProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ActiveCart loads the buyer's active cart with its lines and their products.
func (r *Repository) ActiveCart(ctx context.Context, buyerID uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		Where("buyer_id = ? AND status = ?", buyerID, enums.CartStatusActive).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateCart inserts a fresh active cart for the buyer.
func (r *Repository) CreateCart(ctx context.Context, record *models.CartRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// SaveItem inserts or updates one cart line.
func (r *Repository) SaveItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateSubtotal persists the recomputed cart subtotal.
func (r *Repository) UpdateSubtotal(ctx context.Context, cartID uuid.UUID, subtotal decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", cartID).
		Update("subtotal", subtotal).Error
}
