// Package personalize selects the region, demo people, and review cards shown
// on the landing globe for a given visitor.
package personalize

import "math"

// Region is one stop on the globe tour.
type Region struct {
	Label     string   `json:"label"`
	Countries []string `json:"countries"`
}

// Regions is the fixed globe itinerary, in tour order.
var Regions = []Region{
	{Label: "Asia", Countries: []string{"PK", "IN", "BD", "JP", "SG"}},
	{Label: "Middle East", Countries: []string{"AE", "SA", "QA", "KW", "OM"}},
	{Label: "Europe", Countries: []string{"GB", "DE", "FR", "NL", "ES", "IT"}},
	{Label: "North America", Countries: []string{"US", "CA", "MX"}},
	{Label: "Africa", Countries: []string{"NG", "KE", "ZA", "EG", "MA"}},
	{Label: "Oceania", Countries: []string{"AU", "NZ"}},
}

// RegionIndexForCountry returns the index of the region containing the
// country code, or 0 when the code is not part of the tour.
func RegionIndexForCountry(code string) int {
	for i, r := range Regions {
		for _, c := range r.Countries {
			if c == code {
				return i
			}
		}
	}
	return 0
}

// RegionIndexForProgress maps a scroll progress in [0, 1] to a region index.
// Out-of-range progress clamps to the first or last region.
func RegionIndexForProgress(progress float64) int {
	idx := int(math.Floor(progress * float64(len(Regions))))
	if idx < 0 {
		return 0
	}
	if idx > len(Regions)-1 {
		return len(Regions) - 1
	}
	return idx
}

// cardThresholds are the scroll positions at which the four review cards
// become visible.
var cardThresholds = [4]float64{0.14, 0.34, 0.56, 0.78}

// CardVisibility reports which of the four review cards are revealed at the
// given progress.
func CardVisibility(progress float64) [4]bool {
	var vis [4]bool
	for i, th := range cardThresholds {
		vis[i] = progress > th
	}
	return vis
}

// ActiveCardIndex returns the index of the highlighted card at the given
// progress. Before the first threshold the first card is highlighted.
func ActiveCardIndex(progress float64) int {
	for i := len(cardThresholds) - 1; i >= 0; i-- {
		if progress > cardThresholds[i] {
			return i
		}
	}
	return 0
}

// CountryForRegion picks the country to load reviews for: the visitor's own
// country when the active region includes it, otherwise the region's first
// country.
func CountryForRegion(regionIndex int, visitorCountry string) string {
	r := Regions[regionIndex%len(Regions)]
	for _, c := range r.Countries {
		if c == visitorCountry {
			return visitorCountry
		}
	}
	return r.Countries[0]
}
