package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestly/harvestly-backend/pkg/checkout"
	"github.com/harvestly/harvestly-backend/pkg/db/models"
	"github.com/harvestly/harvestly-backend/pkg/enums"
)

// AddItemInput is the body of an add-to-cart request.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// ItemDTO is one cart line as returned to clients.
type ItemDTO struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	MOQ          int             `json:"moq"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

// CartDTO is the buyer-facing cart payload. An absent persisted cart renders as
// an empty one rather than a 404.
type CartDTO struct {
	ID       uuid.UUID       `json:"id"`
	BuyerID  uuid.UUID       `json:"buyer_id"`
	Status   string          `json:"status"`
	Items    []ItemDTO       `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ValidationDTO is the whole-cart minimum-order report. Violations cover every
// failing line at once.
type ValidationDTO struct {
	Valid      bool                    `json:"valid"`
	Violations []checkout.MOQViolation `json:"violations"`
}

// NewCartDTO flattens a persisted cart.
func NewCartDTO(record *models.CartRecord) CartDTO {
	dto := CartDTO{
		ID:       record.ID,
		BuyerID:  record.BuyerID,
		Status:   record.Status.String(),
		Items:    make([]ItemDTO, 0, len(record.Items)),
		Subtotal: record.Subtotal,
	}
	for _, item := range record.Items {
		line := ItemDTO{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineSubtotal: item.LineSubtotal,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.Unit = item.Product.Unit.String()
			line.MOQ = item.Product.MOQ
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

// emptyCartDTO renders the no-cart-yet state for a buyer.
func emptyCartDTO(buyerID uuid.UUID) CartDTO {
	return CartDTO{
		BuyerID:  buyerID,
		Status:   enums.CartStatusActive.String(),
		Items:    []ItemDTO{},
		Subtotal: decimal.Zero,
	}
}
