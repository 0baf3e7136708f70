package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestly/harvestly-backend/pkg/checkout"
	"github.com/harvestly/harvestly-backend/pkg/db"
	"github.com/harvestly/harvestly-backend/pkg/db/models"
	"github.com/harvestly/harvestly-backend/pkg/enums"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
	"github.com/harvestly/harvestly-backend/pkg/metrics"
)

// Service exposes the buyer cart operations.
type Service interface {
	AddItem(ctx context.Context, buyerID uuid.UUID, input AddItemInput) (*CartDTO, error)
	GetCart(ctx context.Context, buyerID uuid.UUID) (*CartDTO, error)
	ValidateCart(ctx context.Context, buyerID uuid.UUID) (*ValidationDTO, error)
}

// Store is the persistence collaborator behind the cart service.
type Store interface {
	ProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ActiveCart(ctx context.Context, buyerID uuid.UUID) (*models.CartRecord, error)
	CreateCart(ctx context.Context, record *models.CartRecord) error
	SaveItem(ctx context.Context, item *models.CartItem) error
	UpdateSubtotal(ctx context.Context, cartID uuid.UUID, subtotal decimal.Decimal) error
}

// ServiceParams wires the cart service dependencies. Metrics is optional.
type ServiceParams struct {
	Store   Store
	Metrics *metrics.RankingMetrics
}

type service struct {
	store   Store
	metrics *metrics.RankingMetrics
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: params.Store, metrics: params.Metrics}, nil
}

// AddItem admits one line into the buyer's active cart. The minimum-order gate
// runs against the prospective line quantity before anything is persisted, so a
// refused add leaves the cart untouched.
func (s *service) AddItem(ctx context.Context, buyerID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.store.ProductByID(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is no longer available")
	}
	if product.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product has no listed price")
	}

	record, err := s.store.ActiveCart(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	existing := findLine(record, input.ProductID)
	quantity := input.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}

	if err := checkout.ValidateLineMOQ(checkout.MOQLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Unit:        product.Unit,
		MOQ:         product.MOQ,
		Quantity:    quantity,
	}); err != nil {
		s.metrics.IncMOQRejection()
		return nil, err
	}

	if quantity > product.QuantityAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").WithDetails(map[string]any{
			"product_id": product.ID,
			"available":  product.QuantityAvailable,
			"requested":  quantity,
		})
	}

	if record == nil {
		record = &models.CartRecord{
			BuyerID: buyerID,
			Status:  enums.CartStatusActive,
		}
		if err := s.store.CreateCart(ctx, record); err != nil {
			// A concurrent add may have created the buyer's active cart first.
			if db.IsUniqueViolation(err, "idx_cart_records_active_buyer") {
				record, err = s.store.ActiveCart(ctx, buyerID)
				if err != nil || record == nil {
					return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart after conflict")
				}
			} else {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}
	}

	line := models.CartItem{
		CartID:       record.ID,
		ProductID:    product.ID,
		Quantity:     quantity,
		UnitPrice:    *product.Price,
		LineSubtotal: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if existing != nil {
		line.ID = existing.ID
		line.CreatedAt = existing.CreatedAt
	}
	if err := s.store.SaveItem(ctx, &line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
	}

	refreshed, err := s.store.ActiveCart(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	if refreshed == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart disappeared after save")
	}

	subtotal := cartSubtotal(refreshed)
	if err := s.store.UpdateSubtotal(ctx, refreshed.ID, subtotal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subtotal")
	}
	refreshed.Subtotal = subtotal

	dto := NewCartDTO(refreshed)
	return &dto, nil
}

// GetCart returns the buyer's active cart, or an empty one when none exists.
func (s *service) GetCart(ctx context.Context, buyerID uuid.UUID) (*CartDTO, error) {
	record, err := s.store.ActiveCart(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if record == nil {
		dto := emptyCartDTO(buyerID)
		return &dto, nil
	}
	dto := NewCartDTO(record)
	return &dto, nil
}

// ValidateCart runs the minimum-order check over every line and reports all
// violations together; the buyer fixes the whole cart in one pass.
func (s *service) ValidateCart(ctx context.Context, buyerID uuid.UUID) (*ValidationDTO, error) {
	record, err := s.store.ActiveCart(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	result := &ValidationDTO{Valid: true, Violations: []checkout.MOQViolation{}}
	if record == nil {
		return result, nil
	}

	for _, item := range record.Items {
		line := checkout.MOQLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.Unit = item.Product.Unit
			line.MOQ = item.Product.MOQ
		}
		if violation := checkout.CheckLineMOQ(line); violation != nil {
			result.Violations = append(result.Violations, *violation)
		}
	}

	result.Valid = len(result.Violations) == 0
	return result, nil
}

func findLine(record *models.CartRecord, productID uuid.UUID) *models.CartItem {
	if record == nil {
		return nil
	}
	for i := range record.Items {
		if record.Items[i].ProductID == productID {
			return &record.Items[i]
		}
	}
	return nil
}

func cartSubtotal(record *models.CartRecord) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range record.Items {
		subtotal = subtotal.Add(item.LineSubtotal)
	}
	return subtotal
}
