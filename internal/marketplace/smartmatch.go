package marketplace

import "github.com/harvestly/harvestly-backend/pkg/enums"

// Composite weights. They sum to 1.0 by construction; the invariant is pinned
// by a test rather than enforced at runtime.
const (
	weightProximity = 0.4
	weightPrice     = 0.3
	weightDemand    = 0.2
	weightRating    = 0.1
)

// An offer is labeled a smart match when its composite score clears this bar.
const smartMatchThreshold = 0.6

// Match reason labels shown to buyers.
const (
	ReasonNearLocation = "Near your location"
	ReasonGreatValue   = "Great value"
	ReasonPopular      = "Popular choice"
	ReasonHighlyRated  = "Highly rated"
	ReasonBalanced     = "Balanced match"
)

const (
	// reasonTieEpsilon absorbs floating-point noise when comparing a factor
	// against the maximum; ties resolve to the first factor in the fixed order
	// {proximity, price, demand, rating}.
	reasonTieEpsilon = 1e-9
	// balancedSpread is the max-to-min spread at or under which no single
	// factor is considered dominant.
	balancedSpread = 0.05
)

// ScoreOffer computes the composite smart-match score for one offer against the
// buyer's location and the per-category price averages. The distance to the
// farm is attached as a side observation when both locations are known.
func ScoreOffer(offer Offer, buyer *LatLng, averages map[enums.ProduceCategory]float64) ScoredOffer {
	proximity, distance := proximityFactor(buyer, offer.FarmLocation)
	average, haveAverage := averages[offer.Category]

	factors := FactorBreakdown{
		Proximity:     proximity,
		PriceFairness: priceFairnessFactor(offer.Price, average, haveAverage),
		Demand:        demandFactor(offer.QuantitySold, offer.QuantityAvailable),
		Rating:        ratingFactor(offer.Rating),
	}

	score := factors.Proximity*weightProximity +
		factors.PriceFairness*weightPrice +
		factors.Demand*weightDemand +
		factors.Rating*weightRating

	return ScoredOffer{
		Offer:        offer,
		SmartScore:   score,
		DistanceKm:   distance,
		MatchReason:  matchReason(factors),
		IsSmartMatch: score > smartMatchThreshold,
		Factors:      factors,
	}
}

// matchReason picks the label for the dominant factor. When the spread between
// the strongest and weakest factor is within balancedSpread no factor dominates
// and the balanced label is used instead.
func matchReason(factors FactorBreakdown) string {
	ordered := []struct {
		value float64
		label string
	}{
		{factors.Proximity, ReasonNearLocation},
		{factors.PriceFairness, ReasonGreatValue},
		{factors.Demand, ReasonPopular},
		{factors.Rating, ReasonHighlyRated},
	}

	max := ordered[0].value
	min := ordered[0].value
	for _, entry := range ordered[1:] {
		if entry.value > max {
			max = entry.value
		}
		if entry.value < min {
			min = entry.value
		}
	}

	if max-min <= balancedSpread {
		return ReasonBalanced
	}

	for _, entry := range ordered {
		if entry.value >= max-reasonTieEpsilon {
			return entry.label
		}
	}
	return ReasonBalanced
}
