package gazetteer

import (
	"math"
	"strings"
)

const earthRadiusMiles = 3959

// Distance returns the great-circle distance in miles between two
// coordinates, rounded to a tenth of a mile.
func Distance(a, b Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return math.Round(earthRadiusMiles*c*10) / 10
}

var (
	northCounties   = []string{"morris", "bergen", "passaic", "sussex", "warren", "essex"}
	centralCounties = []string{"middlesex", "union", "somerset", "hunterdon", "mercer"}
	southCounties   = []string{"camden", "gloucester", "burlington", "ocean", "monmouth", "atlantic", "cape", "salem", "cumberland"}
)

// EstimateDistance guesses a vendor-to-market distance in miles from two raw
// location strings when neither resolves. The numbers are coarse
// state-geography averages, good enough for aggregate mileage reporting.
func EstimateDistance(vendorLoc, marketLoc string) float64 {
	if vendorLoc == "" && marketLoc == "" {
		return 30.0
	}

	if vendorLoc != "" && marketLoc != "" {
		marketLower := strings.ToLower(marketLoc)
		for _, word := range strings.Fields(strings.ToLower(vendorLoc)) {
			if len(word) > 3 && strings.Contains(marketLower, word) {
				return 15.0
			}
		}
	}

	vendorRegion := classifyRegion(vendorLoc)
	marketRegion := classifyRegion(marketLoc)

	if vendorRegion == marketRegion && vendorRegion != regionUnknown {
		return 20.0
	}
	if vendorRegion != regionUnknown && marketRegion != regionUnknown {
		if abs(int(vendorRegion)-int(marketRegion)) == 1 {
			return 35.0
		}
		return 50.0
	}

	return 30.0
}

type region int

const (
	regionUnknown region = 0
	regionNorth   region = 1
	regionCentral region = 2
	regionSouth   region = 3
)

func classifyRegion(location string) region {
	if location == "" {
		return regionUnknown
	}
	lower := strings.ToLower(location)

	for _, kw := range northCounties {
		if strings.Contains(lower, kw) {
			return regionNorth
		}
	}
	for _, kw := range centralCounties {
		if strings.Contains(lower, kw) {
			return regionCentral
		}
	}
	for _, kw := range southCounties {
		if strings.Contains(lower, kw) {
			return regionSouth
		}
	}
	return regionUnknown
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
