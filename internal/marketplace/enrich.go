package marketplace

import (
	"github.com/google/uuid"

	"github.com/harvestly/harvestly-backend/pkg/db/models"
)

// BuildOffers normalizes persisted products plus review aggregates into the
// snapshot shape the ranking engine consumes. All duck-typed location variants
// collapse here: the engine only ever sees the normalized optional LatLng.
func BuildOffers(products []models.Product, reviews map[uuid.UUID]ReviewAggregate) []Offer {
	offers := make([]Offer, 0, len(products))
	for _, product := range products {
		offer := Offer{
			ID:                product.ID,
			Name:              product.Name,
			Category:          product.Category,
			Unit:              product.Unit,
			QuantityAvailable: product.QuantityAvailable,
			QuantitySold:      product.QuantitySold,
			MOQ:               product.MOQ,
			CreatedAt:         product.CreatedAt,
		}

		if product.Description != nil {
			offer.Description = *product.Description
		}
		if product.Price != nil {
			price := product.Price.InexactFloat64()
			offer.Price = &price
		}

		active := product.IsActive
		offer.IsActive = &active

		if product.Farm != nil {
			offer.FarmName = product.Farm.Name
			offer.FarmLocation = farmLocation(product.Farm)
		}

		if aggregate, ok := reviews[product.ID]; ok {
			offer.Rating = aggregate.AverageRating
			offer.ReviewCount = aggregate.ReviewCount
		}

		offers = append(offers, offer)
	}
	return offers
}

// farmLocation prefers the geocoded geography column and falls back to the
// coordinates embedded in the mailing address. A farm with neither stays
// location-less and scores the neutral proximity default.
func farmLocation(farm *models.Farm) *LatLng {
	if farm.Geom != nil && (farm.Geom.Lat != 0 || farm.Geom.Lng != 0) {
		return &LatLng{Lat: farm.Geom.Lat, Lng: farm.Geom.Lng}
	}
	if farm.Address != nil && (farm.Address.Lat != 0 || farm.Address.Lng != 0) {
		return &LatLng{Lat: farm.Address.Lat, Lng: farm.Address.Lng}
	}
	return nil
}
