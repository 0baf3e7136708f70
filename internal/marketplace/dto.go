package marketplace

import (
	"time"

	"github.com/google/uuid"
)

// OfferDTO is the browse payload returned to clients.
type OfferDTO struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	FarmName          string           `json:"farm_name,omitempty"`
	Category          string           `json:"category"`
	Unit              string           `json:"unit"`
	Price             *float64         `json:"price,omitempty"`
	QuantityAvailable int              `json:"quantity_available"`
	QuantitySold      int              `json:"quantity_sold"`
	MOQ               int              `json:"moq"`
	Rating            float64          `json:"rating"`
	ReviewCount       int              `json:"review_count"`
	CreatedAt         time.Time        `json:"created_at"`
	SmartScore        *float64         `json:"smart_score,omitempty"`
	DistanceKm        *float64         `json:"distance_km,omitempty"`
	MatchReason       string           `json:"match_reason,omitempty"`
	IsSmartMatch      *bool            `json:"is_smart_match,omitempty"`
	Factors           *FactorBreakdown `json:"factors,omitempty"`
}

// BrowseResult bundles a ranked page with the request echo clients need to
// render filter state.
type BrowseResult struct {
	Offers   []OfferDTO `json:"offers"`
	Total    int        `json:"total"`
	Category string     `json:"category"`
	Sort     string     `json:"sort"`
}

// CategorySummary reports how many active offers a category currently has.
type CategorySummary struct {
	Category string `json:"category"`
	Offers   int    `json:"offers"`
}

// NewOfferDTO flattens a scored offer. The score side-channel is attached only
// for smart-sort passes; the distance observation travels whenever it was
// computed.
func NewOfferDTO(entry ScoredOffer, scoredPass bool) OfferDTO {
	dto := OfferDTO{
		ID:                entry.ID,
		Name:              entry.Name,
		Description:       entry.Description,
		FarmName:          entry.FarmName,
		Category:          string(entry.Category),
		Unit:              string(entry.Unit),
		Price:             entry.Price,
		QuantityAvailable: entry.QuantityAvailable,
		QuantitySold:      entry.QuantitySold,
		MOQ:               entry.MOQ,
		Rating:            entry.Rating,
		ReviewCount:       entry.ReviewCount,
		CreatedAt:         entry.CreatedAt,
		DistanceKm:        entry.DistanceKm,
	}
	if scoredPass {
		score := entry.SmartScore
		isMatch := entry.IsSmartMatch
		factors := entry.Factors
		dto.SmartScore = &score
		dto.IsSmartMatch = &isMatch
		dto.MatchReason = entry.MatchReason
		dto.Factors = &factors
	}
	return dto
}
