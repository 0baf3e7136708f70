package enums

import "fmt"

// SortMode selects one of the marketplace browse orderings.
type SortMode string

const (
	SortModeSmart     SortMode = "smart"
	SortModeProximity SortMode = "proximity"
	SortModePriceLow  SortMode = "price-low"
	SortModePriceHigh SortMode = "price-high"
	SortModeStock     SortMode = "stock"
	SortModeRating    SortMode = "rating"
	SortModeNewest    SortMode = "newest"
	SortModePopular   SortMode = "popular"
)

var validSortModes = []SortMode{
	SortModeSmart,
	SortModeProximity,
	SortModePriceLow,
	SortModePriceHigh,
	SortModeStock,
	SortModeRating,
	SortModeNewest,
	SortModePopular,
}

// String implements fmt.Stringer.
func (m SortMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known SortMode.
func (m SortMode) IsValid() bool {
	for _, candidate := range validSortModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseSortMode converts raw input into a SortMode, defaulting empty input to smart.
func ParseSortMode(value string) (SortMode, error) {
	if value == "" {
		return SortModeSmart, nil
	}
	for _, candidate := range validSortModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q", value)
}
