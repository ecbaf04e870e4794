// Package gazetteer resolves free-text location strings to coordinates
// using a static place-name table, with distance helpers for annotating
// vendor records with how far they travel to market.
package gazetteer

import "context"

// Result holds the resolution output for a location string.
type Result struct {
	Latitude  float64
	Longitude float64
	Place     string // canonical place name that matched
	Source    string // "exact" or "partial"
	Matched   bool
}

// Resolver resolves location strings to coordinates.
type Resolver interface {
	// Resolve resolves a single location string.
	Resolve(ctx context.Context, location string) (*Result, error)

	// BatchResolve resolves multiple location strings.
	BatchResolve(ctx context.Context, locations []string) ([]Result, error)
}
