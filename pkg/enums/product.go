package enums

import "fmt"

// ProduceCategory represents the canonical produce categories supported by the catalog.
type ProduceCategory string

const (
	ProduceCategoryVegetables ProduceCategory = "vegetables"
	ProduceCategoryFruits     ProduceCategory = "fruits"
	ProduceCategoryGrains     ProduceCategory = "grains"
	ProduceCategoryDairy      ProduceCategory = "dairy"
	ProduceCategoryEggs       ProduceCategory = "eggs"
	ProduceCategoryPoultry    ProduceCategory = "poultry"
	ProduceCategoryMeat       ProduceCategory = "meat"
	ProduceCategoryHerbs      ProduceCategory = "herbs"
	ProduceCategoryHoney      ProduceCategory = "honey"
	ProduceCategoryFlowers    ProduceCategory = "flowers"
)

// CategoryAll is the browse sentinel meaning "no category filter". It is not a
// persistable category and deliberately absent from validProduceCategories.
const CategoryAll = "all"

var validProduceCategories = []ProduceCategory{
	ProduceCategoryVegetables,
	ProduceCategoryFruits,
	ProduceCategoryGrains,
	ProduceCategoryDairy,
	ProduceCategoryEggs,
	ProduceCategoryPoultry,
	ProduceCategoryMeat,
	ProduceCategoryHerbs,
	ProduceCategoryHoney,
	ProduceCategoryFlowers,
}

// String implements fmt.Stringer.
func (c ProduceCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProduceCategory.
func (c ProduceCategory) IsValid() bool {
	for _, candidate := range validProduceCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProduceCategory converts raw input into a ProduceCategory.
func ParseProduceCategory(value string) (ProduceCategory, error) {
	for _, candidate := range validProduceCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid produce category %q", value)
}

// ProduceCategories returns every valid category key.
func ProduceCategories() []ProduceCategory {
	out := make([]ProduceCategory, len(validProduceCategories))
	copy(out, validProduceCategories)
	return out
}

// ProductUnit represents the unit an offer is sold by.
type ProductUnit string

const (
	ProductUnitKg     ProductUnit = "kg"
	ProductUnitGram   ProductUnit = "gram"
	ProductUnitPiece  ProductUnit = "piece"
	ProductUnitDozen  ProductUnit = "dozen"
	ProductUnitLitre  ProductUnit = "litre"
	ProductUnitBundle ProductUnit = "bundle"
	ProductUnitCrate  ProductUnit = "crate"
)

var validProductUnits = []ProductUnit{
	ProductUnitKg,
	ProductUnitGram,
	ProductUnitPiece,
	ProductUnitDozen,
	ProductUnitLitre,
	ProductUnitBundle,
	ProductUnitCrate,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
