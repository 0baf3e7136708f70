package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harvestly/harvestly-backend/pkg/types"
)

// Farm represents a seller account with a geocoded pickup location.
type Farm struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	OwnerName   string                `gorm:"column:owner_name;not null"`
	Description *string               `gorm:"column:description"`
	Phone       *string               `gorm:"column:phone"`
	Email       *string               `gorm:"column:email"`
	IsVerified  bool                  `gorm:"column:is_verified;not null;default:false"`
	Address     *types.Address        `gorm:"column:address;type:jsonb;serializer:json"`
	Geom        *types.GeographyPoint `gorm:"column:geom;type:geography(Point,4326)"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
