package marketplace

import (
	"time"

	"github.com/google/uuid"

	"github.com/harvestly/harvestly-backend/pkg/enums"
)

// LatLng is a normalized coordinate pair. Buyer and farm locations reach the
// ranking engine only in this shape; any alternate upstream field layout is
// resolved during enrichment.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Offer is a product listing as evaluated by the ranking engine. It is an
// immutable snapshot assembled from the catalog, farm, and review collaborators;
// the engine never mutates it.
type Offer struct {
	ID                uuid.UUID
	Name              string
	Description       string
	FarmName          string
	Category          enums.ProduceCategory
	Unit              enums.ProductUnit
	Price             *float64
	QuantityAvailable int
	QuantitySold      int
	MOQ               int
	Rating            float64
	ReviewCount       int
	CreatedAt         time.Time
	IsActive          *bool
	FarmLocation      *LatLng
}

// Active reports whether the offer should be shown. Absence of an explicit
// status means included, because partially populated catalog data is expected.
func (o Offer) Active() bool {
	return o.IsActive == nil || *o.IsActive
}

// FactorBreakdown holds the four [0,1] factors computed for one offer during a
// smart-match pass. Transient, never persisted.
type FactorBreakdown struct {
	Proximity     float64 `json:"proximity"`
	PriceFairness float64 `json:"price_fairness"`
	Demand        float64 `json:"demand"`
	Rating        float64 `json:"rating"`
}

// ScoredOffer is an Offer plus the score side-channel produced by the smart and
// proximity sort modes.
type ScoredOffer struct {
	Offer

	SmartScore   float64         `json:"smart_score"`
	DistanceKm   *float64        `json:"distance_km,omitempty"`
	MatchReason  string          `json:"match_reason,omitempty"`
	IsSmartMatch bool            `json:"is_smart_match"`
	Factors      FactorBreakdown `json:"factors"`
}
