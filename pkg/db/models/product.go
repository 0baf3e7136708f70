package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/harvestly/harvestly-backend/pkg/enums"
)

// Product represents the canonical farm listing.
type Product struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FarmID            uuid.UUID             `gorm:"column:farm_id;type:uuid;not null"`
	Name              string                `gorm:"column:name;not null"`
	Description       *string               `gorm:"column:description"`
	Category          enums.ProduceCategory `gorm:"column:category;type:produce_category;not null"`
	Unit              enums.ProductUnit     `gorm:"column:unit;type:product_unit;not null"`
	Price             *decimal.Decimal      `gorm:"column:price;type:numeric(12,2)"`
	QuantityAvailable int                   `gorm:"column:quantity_available;not null;default:0"`
	QuantitySold      int                   `gorm:"column:quantity_sold;not null;default:0"`
	MOQ               int                   `gorm:"column:moq;not null;default:1"`
	Tags              pq.StringArray        `gorm:"column:tags;type:text[]"`
	IsActive          bool                  `gorm:"column:is_active;not null;default:true"`
	Farm              *Farm                 `gorm:"foreignKey:FarmID"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
