package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	princeton := NJTowns["PRINCETON"]
	trenton := NJTowns["TRENTON"]

	d := Distance(princeton, trenton)
	assert.InDelta(t, 10.5, d, 0.5)
	assert.Equal(t, d, Distance(trenton, princeton))

	assert.Equal(t, 0.0, Distance(princeton, princeton))

	// Rounded to a tenth of a mile.
	assert.Equal(t, d, float64(int(d*10))/10)
}

func TestEstimateDistance(t *testing.T) {
	tests := []struct {
		name      string
		vendorLoc string
		marketLoc string
		want      float64
	}{
		{"both empty", "", "", 30.0},
		{"shared place word", "Hopewell Township", "Hopewell", 15.0},
		{"same region", "Morristown", "Sussex", 20.0},
		{"adjacent regions", "Bergen", "Mercer", 35.0},
		{"opposite ends", "Bergen", "Camden", 50.0},
		{"unknown region", "somewhere rural", "Bergen", 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateDistance(tt.vendorLoc, tt.marketLoc))
		})
	}
}
