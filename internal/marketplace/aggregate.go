package marketplace

import "github.com/harvestly/harvestly-backend/pkg/enums"

// CategoryAverages computes the arithmetic mean unit price per category across
// the provided offers. Offers without a price or category are skipped rather
// than counted as zero, and a category with no priced contributors is absent
// from the result so downstream scoring falls back to its neutral default
// instead of treating "no data" as "average of zero".
func CategoryAverages(offers []Offer) map[enums.ProduceCategory]float64 {
	type acc struct {
		sum   float64
		count int
	}

	byCategory := make(map[enums.ProduceCategory]*acc)
	for _, offer := range offers {
		if offer.Price == nil || offer.Category == "" {
			continue
		}
		entry := byCategory[offer.Category]
		if entry == nil {
			entry = &acc{}
			byCategory[offer.Category] = entry
		}
		entry.sum += *offer.Price
		entry.count++
	}

	averages := make(map[enums.ProduceCategory]float64, len(byCategory))
	for category, entry := range byCategory {
		averages[category] = entry.sum / float64(entry.count)
	}
	return averages
}
