package search

import (
	"math"
	"strconv"

	"dishfinder/models"
)

const (
	lowCeiling  = 1500
	highFloor   = 3000
	maxDigitRun = 18
)

// ApplyFilters narrows candidates by cuisine, price tier and minimum rating,
// in that order. Every filter is an independent predicate so the result set
// does not depend on the order; unset filters match everything.
func ApplyFilters(candidates []models.Restaurant, f models.FilterSet) []models.Restaurant {
	results := make([]models.Restaurant, 0, len(candidates))
	for _, r := range candidates {
		if f.Cuisine != "" && r.Cuisine != f.Cuisine {
			continue
		}
		if f.PriceTier != "" && !InPriceTier(r.PriceRange, f.PriceTier) {
			continue
		}
		if f.MinRating != nil && r.Rating < *f.MinRating {
			continue
		}
		results = append(results, r)
	}
	return results
}

// InPriceTier reports whether the lower bound embedded in priceRange falls in
// tier. A price range with no digits passes every tier, as does an unknown
// tier.
func InPriceTier(priceRange string, tier models.PriceTier) bool {
	bound, ok := PriceBound(priceRange)
	if !ok {
		return true
	}
	switch tier {
	case models.PriceLow:
		return bound < lowCeiling
	case models.PriceMedium:
		return bound >= lowCeiling && bound <= highFloor
	case models.PriceHigh:
		return bound > highFloor
	default:
		return true
	}
}

// PriceBound extracts the first run of decimal digits in priceRange, e.g.
// 1000 from "KES 1000-2000". Runs too long for an int saturate.
func PriceBound(priceRange string) (int, bool) {
	start := -1
	end := len(priceRange)
	for i := 0; i < len(priceRange); i++ {
		isDigit := priceRange[i] >= '0' && priceRange[i] <= '9'
		if start < 0 && isDigit {
			start = i
		} else if start >= 0 && !isDigit {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	run := priceRange[start:end]
	if len(run) > maxDigitRun {
		return math.MaxInt, true
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}
