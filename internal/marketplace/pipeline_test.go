package marketplace

import (
	"testing"
	"time"

	"github.com/harvestly/harvestly-backend/pkg/enums"
)

func boolPtr(v bool) *bool { return &v }

func rankedNames(scored []ScoredOffer) []string {
	names := make([]string, 0, len(scored))
	for _, entry := range scored {
		names = append(names, entry.Name)
	}
	return names
}

func assertOrder(t *testing.T, scored []ScoredOffer, want ...string) {
	t.Helper()
	got := rankedNames(scored)
	if len(got) != len(want) {
		t.Fatalf("expected %d offers %v, got %v", len(want), want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRankCategoryFilter(t *testing.T) {
	offers := []Offer{
		{Name: "carrots", Category: enums.ProduceCategoryVegetables},
		{Name: "apples", Category: enums.ProduceCategoryFruits},
		{Name: "clover honey", Category: enums.ProduceCategoryHoney},
	}

	scored := Rank(offers, RankInput{Category: "fruits", Sort: enums.SortModeNewest}, nil)
	assertOrder(t, scored, "apples")

	// Empty and the explicit sentinel both mean no filtering.
	for _, category := range []string{"", enums.CategoryAll} {
		scored = Rank(offers, RankInput{Category: category, Sort: enums.SortModeNewest}, nil)
		if len(scored) != 3 {
			t.Fatalf("category %q: expected all 3 offers, got %d", category, len(scored))
		}
	}
}

func TestRankSearchFilter(t *testing.T) {
	offers := []Offer{
		{Name: "Heirloom Tomatoes", Category: enums.ProduceCategoryVegetables},
		{Name: "eggs", Description: "pasture-raised, tomato-fed hens", Category: enums.ProduceCategoryEggs},
		{Name: "jam", FarmName: "Tomato Creek Farm", Category: enums.ProduceCategoryFruits},
		{Name: "wildflower honey", Category: enums.ProduceCategoryHoney},
	}

	// Case-insensitive, matches across name, description, and farm name.
	scored := Rank(offers, RankInput{Search: "TOMATO", Sort: enums.SortModeNewest}, nil)
	if len(scored) != 3 {
		t.Fatalf("expected 3 tomato matches, got %v", rankedNames(scored))
	}

	// Category text is searchable too.
	scored = Rank(offers, RankInput{Search: "honey", Sort: enums.SortModeNewest}, nil)
	assertOrder(t, scored, "wildflower honey")

	// Blank search is a no-op filter.
	scored = Rank(offers, RankInput{Search: "   ", Sort: enums.SortModeNewest}, nil)
	if len(scored) != 4 {
		t.Fatalf("expected all 4 offers for blank search, got %d", len(scored))
	}
}

func TestRankActiveFilterAbsentMeansIncluded(t *testing.T) {
	offers := []Offer{
		{Name: "explicit-active", IsActive: boolPtr(true)},
		{Name: "explicit-inactive", IsActive: boolPtr(false)},
		{Name: "unknown-status", IsActive: nil},
	}

	scored := Rank(offers, RankInput{Sort: enums.SortModeNewest}, nil)
	if len(scored) != 2 {
		t.Fatalf("expected 2 offers, got %v", rankedNames(scored))
	}
	for _, entry := range scored {
		if entry.Name == "explicit-inactive" {
			t.Fatal("inactive offer leaked through the filter")
		}
	}
}

func TestRankPriceSorts(t *testing.T) {
	offers := []Offer{
		{Name: "mid", Price: floatPtr(20)},
		{Name: "cheap", Price: floatPtr(5)},
		{Name: "dear", Price: floatPtr(90)},
		{Name: "unpriced"},
	}

	// Missing price sorts as 0: first ascending, last descending.
	low := Rank(offers, RankInput{Sort: enums.SortModePriceLow}, nil)
	assertOrder(t, low, "unpriced", "cheap", "mid", "dear")

	high := Rank(offers, RankInput{Sort: enums.SortModePriceHigh}, nil)
	assertOrder(t, high, "dear", "mid", "cheap", "unpriced")
}

func TestRankPriceSortIsStable(t *testing.T) {
	offers := []Offer{
		{Name: "first", Price: floatPtr(10)},
		{Name: "second", Price: floatPtr(10)},
		{Name: "third", Price: floatPtr(10)},
	}

	scored := Rank(offers, RankInput{Sort: enums.SortModePriceLow}, nil)
	assertOrder(t, scored, "first", "second", "third")
}

func TestRankProximitySort(t *testing.T) {
	buyer := &LatLng{Lat: 0, Lng: 0}
	offers := []Offer{
		{Name: "far", FarmLocation: &LatLng{Lat: latAtKm(30), Lng: 0}},
		{Name: "nowhere"},
		{Name: "near", FarmLocation: &LatLng{Lat: latAtKm(3), Lng: 0}},
	}

	scored := Rank(offers, RankInput{Sort: enums.SortModeProximity, BuyerLocation: buyer}, nil)
	assertOrder(t, scored, "near", "far", "nowhere")

	if scored[0].DistanceKm == nil {
		t.Fatal("proximity sort should attach distances")
	}
	if scored[2].DistanceKm != nil {
		t.Fatal("offer without a farm location must not carry a distance")
	}
}

func TestRankStockRatingNewestPopularSorts(t *testing.T) {
	now := time.Now()
	offers := []Offer{
		{Name: "a", QuantityAvailable: 3, QuantitySold: 40, Rating: 2, CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "b", QuantityAvailable: 9, QuantitySold: 10, Rating: 5, CreatedAt: now.Add(-1 * time.Hour)},
		{Name: "c", QuantityAvailable: 6, QuantitySold: 25, Rating: 4, CreatedAt: now},
	}

	assertOrder(t, Rank(offers, RankInput{Sort: enums.SortModeStock}, nil), "b", "c", "a")
	assertOrder(t, Rank(offers, RankInput{Sort: enums.SortModeRating}, nil), "b", "c", "a")
	assertOrder(t, Rank(offers, RankInput{Sort: enums.SortModeNewest}, nil), "c", "b", "a")
	assertOrder(t, Rank(offers, RankInput{Sort: enums.SortModePopular}, nil), "a", "c", "b")
}

func TestRankSmartSortOrdersByScore(t *testing.T) {
	buyer := &LatLng{Lat: 0, Lng: 0}
	averages := map[enums.ProduceCategory]float64{enums.ProduceCategoryVegetables: 150}

	offers := []Offer{
		{
			Name:              "C",
			Category:          enums.ProduceCategoryVegetables,
			Price:             floatPtr(150),
			QuantityAvailable: 20,
			QuantitySold:      1,
			Rating:            3,
			FarmLocation:      &LatLng{Lat: latAtKm(40), Lng: 0},
		},
		{
			Name:              "A",
			Category:          enums.ProduceCategoryVegetables,
			Price:             floatPtr(100),
			QuantityAvailable: 10,
			QuantitySold:      5,
			Rating:            4,
			FarmLocation:      &LatLng{Lat: latAtKm(5), Lng: 0},
		},
		{
			Name:              "B",
			Category:          enums.ProduceCategoryVegetables,
			Price:             floatPtr(200),
			QuantityAvailable: 0,
			QuantitySold:      50,
			Rating:            5,
			FarmLocation:      &LatLng{Lat: latAtKm(2), Lng: 0},
		},
	}

	scored := Rank(offers, RankInput{Sort: enums.SortModeSmart, BuyerLocation: buyer}, averages)
	assertOrder(t, scored, "A", "B", "C")

	if scored[0].MatchReason == "" {
		t.Fatal("smart sort should attach a match reason")
	}
}

func TestRankEmptySortDefaultsToSmart(t *testing.T) {
	offers := []Offer{{Name: "solo", QuantityAvailable: 1}}

	scored := Rank(offers, RankInput{}, nil)
	if len(scored) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(scored))
	}
	if scored[0].MatchReason == "" {
		t.Fatal("default sort should run the smart scoring pass")
	}
}

func TestRankEmptyInput(t *testing.T) {
	scored := Rank(nil, RankInput{Sort: enums.SortModeSmart}, nil)
	if len(scored) != 0 {
		t.Fatalf("expected empty result, got %d", len(scored))
	}
}
