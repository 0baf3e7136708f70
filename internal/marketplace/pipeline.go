package marketplace

import (
	"math"
	"sort"
	"strings"

	"github.com/harvestly/harvestly-backend/pkg/enums"
)

// RankInput carries every knob of a ranking pass as an explicit parameter. The
// pipeline reads no ambient state; a re-rank with the same inputs over the same
// snapshot is fully deterministic.
type RankInput struct {
	Category      string
	Search        string
	Sort          enums.SortMode
	BuyerLocation *LatLng
}

// Rank filters and orders a catalog snapshot. Stages run in a fixed order:
// category filter, free-text search filter, active-status filter, then the
// selected sort. Stages only narrow or reorder; offer content is never mutated
// beyond attaching the transient score fields. Missing optional data never
// errors: every comparator substitutes a documented default instead.
func Rank(offers []Offer, in RankInput, averages map[enums.ProduceCategory]float64) []ScoredOffer {
	filtered := make([]Offer, 0, len(offers))
	query := strings.ToLower(strings.TrimSpace(in.Search))

	for _, offer := range offers {
		if !matchesCategory(offer, in.Category) {
			continue
		}
		if query != "" && !matchesSearch(offer, query) {
			continue
		}
		if !offer.Active() {
			continue
		}
		filtered = append(filtered, offer)
	}

	mode := in.Sort
	if mode == "" {
		mode = enums.SortModeSmart
	}

	scored := make([]ScoredOffer, 0, len(filtered))
	for _, offer := range filtered {
		switch mode {
		case enums.SortModeSmart:
			scored = append(scored, ScoreOffer(offer, in.BuyerLocation, averages))
		case enums.SortModeProximity:
			entry := ScoredOffer{Offer: offer}
			if in.BuyerLocation != nil && offer.FarmLocation != nil {
				distance := DistanceKm(in.BuyerLocation.Lat, in.BuyerLocation.Lng, offer.FarmLocation.Lat, offer.FarmLocation.Lng)
				entry.DistanceKm = &distance
			}
			scored = append(scored, entry)
		default:
			scored = append(scored, ScoredOffer{Offer: offer})
		}
	}

	sortScored(scored, mode)
	return scored
}

func matchesCategory(offer Offer, category string) bool {
	if category == "" || category == enums.CategoryAll {
		return true
	}
	return string(offer.Category) == category
}

func matchesSearch(offer Offer, loweredQuery string) bool {
	for _, haystack := range []string{offer.Name, offer.Description, offer.FarmName, string(offer.Category)} {
		if strings.Contains(strings.ToLower(haystack), loweredQuery) {
			return true
		}
	}
	return false
}

// sortScored applies the selected ordering. Every sort is stable so offers with
// equal keys retain their pre-sort relative order.
func sortScored(scored []ScoredOffer, mode enums.SortMode) {
	switch mode {
	case enums.SortModeSmart:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].SmartScore > scored[j].SmartScore
		})
	case enums.SortModeProximity:
		sort.SliceStable(scored, func(i, j int) bool {
			return distanceOrInf(scored[i]) < distanceOrInf(scored[j])
		})
	case enums.SortModePriceLow:
		sort.SliceStable(scored, func(i, j int) bool {
			return priceOrZero(scored[i].Offer) < priceOrZero(scored[j].Offer)
		})
	case enums.SortModePriceHigh:
		sort.SliceStable(scored, func(i, j int) bool {
			return priceOrZero(scored[i].Offer) > priceOrZero(scored[j].Offer)
		})
	case enums.SortModeStock:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].QuantityAvailable > scored[j].QuantityAvailable
		})
	case enums.SortModeRating:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Rating > scored[j].Rating
		})
	case enums.SortModeNewest:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].CreatedAt.After(scored[j].CreatedAt)
		})
	case enums.SortModePopular:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].QuantitySold > scored[j].QuantitySold
		})
	}
}

// distanceOrInf treats unknown distances as +Inf so they sort last.
func distanceOrInf(entry ScoredOffer) float64 {
	if entry.DistanceKm == nil {
		return math.Inf(1)
	}
	return *entry.DistanceKm
}

// priceOrZero substitutes 0 for a missing price.
func priceOrZero(offer Offer) float64 {
	if offer.Price == nil {
		return 0
	}
	return *offer.Price
}
