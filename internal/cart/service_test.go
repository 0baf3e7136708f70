package cart

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/harvestly/harvestly-backend/pkg/db/models"
	"github.com/harvestly/harvestly-backend/pkg/enums"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
	"github.com/harvestly/harvestly-backend/pkg/metrics"
)

type fakeStore struct {
	products map[uuid.UUID]*models.Product
	record   *models.CartRecord
}

func newFakeStore(products ...*models.Product) *fakeStore {
	store := &fakeStore{products: make(map[uuid.UUID]*models.Product)}
	for _, product := range products {
		store.products[product.ID] = product
	}
	return store
}

func (f *fakeStore) ProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return f.products[productID], nil
}

func (f *fakeStore) ActiveCart(ctx context.Context, buyerID uuid.UUID) (*models.CartRecord, error) {
	if f.record == nil || f.record.BuyerID != buyerID {
		return nil, nil
	}
	return f.record, nil
}

func (f *fakeStore) CreateCart(ctx context.Context, record *models.CartRecord) error {
	record.ID = uuid.New()
	f.record = record
	return nil
}

func (f *fakeStore) SaveItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Product = f.products[item.ProductID]
	for i := range f.record.Items {
		if f.record.Items[i].ProductID == item.ProductID {
			f.record.Items[i] = *item
			return nil
		}
	}
	f.record.Items = append(f.record.Items, *item)
	return nil
}

func (f *fakeStore) UpdateSubtotal(ctx context.Context, cartID uuid.UUID, subtotal decimal.Decimal) error {
	f.record.Subtotal = subtotal
	return nil
}

func priceOf(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func eggsProduct() *models.Product {
	return &models.Product{
		ID:                uuid.New(),
		Name:              "Farm eggs",
		Unit:              enums.ProductUnitDozen,
		Price:             priceOf(6),
		QuantityAvailable: 40,
		MOQ:               5,
		IsActive:          true,
	}
}

func newTestService(t *testing.T, store Store, m *metrics.RankingMetrics) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Store: store, Metrics: m})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddItemBelowMOQRefused(t *testing.T) {
	product := eggsProduct()
	store := newFakeStore(product)
	rankingMetrics := metrics.NewRankingMetrics(prometheus.NewRegistry())
	svc := newTestService(t, store, rankingMetrics)
	buyerID := uuid.New()

	_, err := svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: product.ID, Quantity: 3})
	if err == nil {
		t.Fatal("expected MOQ refusal")
	}

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if !strings.Contains(appErr.Message(), "Farm eggs requires a minimum order of 5 dozen") {
		t.Fatalf("violation message should name product, minimum and unit: %q", appErr.Message())
	}

	// A refused add must leave no cart behind.
	if store.record != nil {
		t.Fatal("cart was created despite the refusal")
	}
}

func TestAddItemAtMOQSucceeds(t *testing.T) {
	product := eggsProduct()
	store := newFakeStore(product)
	svc := newTestService(t, store, nil)
	buyerID := uuid.New()

	dto, err := svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: product.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(dto.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(dto.Items))
	}
	line := dto.Items[0]
	if line.Quantity != 5 || line.ProductName != "Farm eggs" || line.MOQ != 5 {
		t.Fatalf("unexpected line: %+v", line)
	}
	if !line.LineSubtotal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected line subtotal 30, got %s", line.LineSubtotal)
	}
	if !dto.Subtotal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected cart subtotal 30, got %s", dto.Subtotal)
	}
}

func TestAddItemMergesRepeatedProduct(t *testing.T) {
	product := eggsProduct()
	store := newFakeStore(product)
	svc := newTestService(t, store, nil)
	buyerID := uuid.New()

	if _, err := svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: product.ID, Quantity: 5}); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	dto, err := svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}

	if len(dto.Items) != 1 {
		t.Fatalf("repeat product must merge into one line, got %d", len(dto.Items))
	}
	if dto.Items[0].Quantity != 7 {
		t.Fatalf("expected merged quantity 7, got %d", dto.Items[0].Quantity)
	}
	if !dto.Subtotal.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("expected subtotal 42, got %s", dto.Subtotal)
	}
}

func TestAddItemInsufficientStock(t *testing.T) {
	product := eggsProduct()
	product.QuantityAvailable = 6
	store := newFakeStore(product)
	svc := newTestService(t, store, nil)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{ProductID: product.ID, Quantity: 10})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for stock, got %v", err)
	}
}

func TestAddItemRejectsUnknownInactiveAndUnpriced(t *testing.T) {
	inactive := eggsProduct()
	inactive.IsActive = false
	unpriced := eggsProduct()
	unpriced.Price = nil
	store := newFakeStore(inactive, unpriced)
	svc := newTestService(t, store, nil)
	buyerID := uuid.New()

	_, err := svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: uuid.New(), Quantity: 5})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unknown product: expected not found, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: inactive.ID, Quantity: 5})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("inactive product: expected state conflict, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: unpriced.ID, Quantity: 5})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unpriced product: expected state conflict, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), buyerID, AddItemInput{ProductID: inactive.ID, Quantity: 0})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("zero quantity: expected validation error, got %v", err)
	}
}

func TestGetCartEmptyForNewBuyer(t *testing.T) {
	svc := newTestService(t, newFakeStore(), nil)
	buyerID := uuid.New()

	dto, err := svc.GetCart(context.Background(), buyerID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if dto.BuyerID != buyerID || len(dto.Items) != 0 || !dto.Subtotal.IsZero() {
		t.Fatalf("expected empty cart, got %+v", dto)
	}
}

func TestValidateCartCollectsAllViolations(t *testing.T) {
	honey := &models.Product{ID: uuid.New(), Name: "Honey", Unit: enums.ProductUnitPiece, MOQ: 6}
	milk := &models.Product{ID: uuid.New(), Name: "Milk", Unit: enums.ProductUnitLitre, MOQ: 4}
	herbs := &models.Product{ID: uuid.New(), Name: "Basil", Unit: enums.ProductUnitBundle, MOQ: 1}

	store := newFakeStore(honey, milk, herbs)
	buyerID := uuid.New()
	store.record = &models.CartRecord{
		ID:      uuid.New(),
		BuyerID: buyerID,
		Status:  enums.CartStatusActive,
		Items: []models.CartItem{
			{ProductID: honey.ID, Quantity: 2, Product: honey},
			{ProductID: herbs.ID, Quantity: 3, Product: herbs},
			{ProductID: milk.ID, Quantity: 1, Product: milk},
		},
	}
	svc := newTestService(t, store, nil)

	result, err := svc.ValidateCart(context.Background(), buyerID)
	if err != nil {
		t.Fatalf("ValidateCart: %v", err)
	}

	if result.Valid {
		t.Fatal("expected invalid cart")
	}
	// Both failures reported at once, in line order; the compliant line is absent.
	if len(result.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %+v", result.Violations)
	}
	if result.Violations[0].ProductID != honey.ID || result.Violations[1].ProductID != milk.ID {
		t.Fatalf("violations out of order: %+v", result.Violations)
	}
	if result.Violations[0].Message != "Honey requires a minimum order of 6 piece" {
		t.Fatalf("unexpected message: %q", result.Violations[0].Message)
	}
}

func TestValidateCartEmptyCartIsValid(t *testing.T) {
	svc := newTestService(t, newFakeStore(), nil)

	result, err := svc.ValidateCart(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ValidateCart: %v", err)
	}
	if !result.Valid || len(result.Violations) != 0 {
		t.Fatalf("expected valid empty result, got %+v", result)
	}
}
