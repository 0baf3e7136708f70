package marketplace

// Factor tuning constants. neutralFactor is the documented default whenever an
// input needed by a factor is missing; it must never penalize offers (or
// buyers) for absent optional data.
const (
	maxProximityKm = 50.0
	neutralFactor  = 0.5

	// Price fairness band: ratios below the band earn a flat reward, ratios
	// above it a flat penalty. The flat reward (rather than a continuous one)
	// avoids over-favoring extreme underpricing, which may signal poor quality.
	fairnessLowRatio  = 0.7
	fairnessHighRatio = 1.3
	fairnessLowScore  = 0.7
	fairnessHighScore = 0.3

	maxRatingStars = 5.0
)

// proximityFromDistance maps a known distance onto [0,1]: 0 km scores 1, the
// threshold distance and anything beyond scores exactly 0.
func proximityFromDistance(distanceKm float64) float64 {
	return clamp01(1 - distanceKm/maxProximityKm)
}

// proximityFactor resolves the proximity factor and the distance side
// observation. When either location is missing the factor is neutral and no
// distance is reported.
func proximityFactor(buyer, farm *LatLng) (float64, *float64) {
	if buyer == nil || farm == nil {
		return neutralFactor, nil
	}
	distance := DistanceKm(buyer.Lat, buyer.Lng, farm.Lat, farm.Lng)
	return proximityFromDistance(distance), &distance
}

// priceFairnessFactor scores how the offer price compares to its category
// average. Inside the [0.7, 1.3] ratio band the score descends linearly from
// 1.0; a missing price or missing category average yields the neutral default.
func priceFairnessFactor(price *float64, categoryAverage float64, haveAverage bool) float64 {
	if price == nil || !haveAverage || categoryAverage <= 0 {
		return neutralFactor
	}
	ratio := *price / categoryAverage
	switch {
	case ratio < fairnessLowRatio:
		return fairnessLowScore
	case ratio > fairnessHighRatio:
		return fairnessHighScore
	default:
		return clamp01(1 - (ratio-fairnessLowRatio)/(fairnessHighRatio-fairnessLowRatio))
	}
}

// demandFactor scores sell-through, doubled so a 50% sell-through already earns
// the maximum. An offer with zero remaining stock scores exactly 0 regardless
// of how much it sold: out-of-stock items must never rank as "in demand" for a
// buyer who cannot purchase them.
func demandFactor(sold, stock int) float64 {
	if stock <= 0 {
		return 0
	}
	total := sold + stock
	if total <= 0 || sold <= 0 {
		return 0
	}
	sellThrough := float64(sold) / float64(total)
	return clamp01(sellThrough * 2)
}

// ratingFactor maps the 0-5 star scale linearly onto [0,1].
func ratingFactor(rating float64) float64 {
	return clamp01(rating / maxRatingStars)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
