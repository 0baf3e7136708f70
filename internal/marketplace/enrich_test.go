package marketplace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestly/harvestly-backend/pkg/db/models"
	"github.com/harvestly/harvestly-backend/pkg/enums"
	"github.com/harvestly/harvestly-backend/pkg/types"
)

func TestBuildOffersMapsProductFields(t *testing.T) {
	productID := uuid.New()
	description := "vine-ripened"
	price := decimal.NewFromFloat(12.50)

	products := []models.Product{{
		ID:                productID,
		Name:              "Tomatoes",
		Description:       &description,
		Category:          enums.ProduceCategoryVegetables,
		Unit:              enums.ProductUnitKg,
		Price:             &price,
		QuantityAvailable: 30,
		QuantitySold:      12,
		MOQ:               5,
		IsActive:          true,
		Farm: &models.Farm{
			Name: "Sunrise Acres",
			Geom: &types.GeographyPoint{Lat: 36.15, Lng: -95.99},
		},
	}}
	reviews := map[uuid.UUID]ReviewAggregate{
		productID: {ProductID: productID, AverageRating: 4.5, ReviewCount: 8},
	}

	offers := BuildOffers(products, reviews)
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}

	offer := offers[0]
	if offer.ID != productID || offer.Name != "Tomatoes" || offer.Description != "vine-ripened" {
		t.Fatalf("identity fields mismatched: %+v", offer)
	}
	if offer.Price == nil || *offer.Price != 12.5 {
		t.Fatalf("expected price 12.5, got %v", offer.Price)
	}
	if offer.MOQ != 5 || offer.QuantityAvailable != 30 || offer.QuantitySold != 12 {
		t.Fatalf("quantity fields mismatched: %+v", offer)
	}
	if offer.IsActive == nil || !*offer.IsActive {
		t.Fatal("expected explicit active flag")
	}
	if offer.FarmName != "Sunrise Acres" {
		t.Fatalf("expected farm name, got %q", offer.FarmName)
	}
	if offer.FarmLocation == nil || offer.FarmLocation.Lat != 36.15 || offer.FarmLocation.Lng != -95.99 {
		t.Fatalf("expected geocoded location, got %+v", offer.FarmLocation)
	}
	if offer.Rating != 4.5 || offer.ReviewCount != 8 {
		t.Fatalf("review aggregate not attached: %+v", offer)
	}
}

func TestBuildOffersOptionalFieldsStayAbsent(t *testing.T) {
	products := []models.Product{{
		ID:       uuid.New(),
		Name:     "Mystery box",
		Category: enums.ProduceCategoryVegetables,
	}}

	offers := BuildOffers(products, nil)

	offer := offers[0]
	if offer.Price != nil {
		t.Fatal("unpriced product must yield a nil price, not zero")
	}
	if offer.FarmLocation != nil || offer.FarmName != "" {
		t.Fatal("product without a farm must stay farm-less")
	}
	if offer.Rating != 0 || offer.ReviewCount != 0 {
		t.Fatal("product without reviews must stay unrated")
	}
}

func TestFarmLocationFallsBackToAddress(t *testing.T) {
	withGeom := &models.Farm{
		Geom:    &types.GeographyPoint{Lat: 1, Lng: 2},
		Address: &types.Address{Lat: 3, Lng: 4},
	}
	if loc := farmLocation(withGeom); loc == nil || loc.Lat != 1 || loc.Lng != 2 {
		t.Fatalf("expected geography column to win, got %+v", loc)
	}

	addressOnly := &models.Farm{Address: &types.Address{Lat: 3, Lng: 4}}
	if loc := farmLocation(addressOnly); loc == nil || loc.Lat != 3 || loc.Lng != 4 {
		t.Fatalf("expected address fallback, got %+v", loc)
	}

	if loc := farmLocation(&models.Farm{}); loc != nil {
		t.Fatalf("expected nil location for unlocated farm, got %+v", loc)
	}
}
