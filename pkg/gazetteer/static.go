package gazetteer

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	leadingNumberRe = regexp.MustCompile(`^\d+\s+`)
	streetWordRe    = regexp.MustCompile(`(?i)\b(road|rd|street|st|avenue|ave|lane|ln|drive|dr|boulevard|blvd)\b`)
	stateWordRe     = regexp.MustCompile(`(?i)\b(new jersey|nj)\b`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

// StaticResolver resolves locations against an in-memory place table.
// Lookups are substring matches against cleaned input, so "123 Valley Road,
// Princeton NJ" resolves to PRINCETON. Results, including misses, are cached.
type StaticResolver struct {
	table map[string]Coord
	names []string // table keys, sorted for deterministic matching

	mu               sync.RWMutex
	cache            map[string]*Result
	batchConcurrency int
}

// StaticOption configures a StaticResolver.
type StaticOption func(*StaticResolver)

// WithTable replaces the default place table.
func WithTable(table map[string]Coord) StaticOption {
	return func(r *StaticResolver) {
		r.table = table
	}
}

// WithBatchConcurrency sets the max parallel lookups for BatchResolve.
func WithBatchConcurrency(n int) StaticOption {
	return func(r *StaticResolver) {
		if n > 0 {
			r.batchConcurrency = n
		}
	}
}

// NewStatic creates a StaticResolver over NJTowns unless WithTable overrides it.
func NewStatic(opts ...StaticOption) *StaticResolver {
	r := &StaticResolver{
		table:            NJTowns,
		cache:            make(map[string]*Result),
		batchConcurrency: 10,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.names = make([]string, 0, len(r.table))
	for name := range r.table {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	return r
}

// Resolve implements Resolver.
func (r *StaticResolver) Resolve(_ context.Context, location string) (*Result, error) {
	if len(strings.TrimSpace(location)) < 3 {
		return &Result{Matched: false}, nil
	}

	key := strings.ToUpper(strings.TrimSpace(location))

	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result := r.lookup(location)

	r.mu.Lock()
	r.cache[key] = result
	r.mu.Unlock()

	return result, nil
}

func (r *StaticResolver) lookup(location string) *Result {
	clean := strings.ToUpper(CleanLocation(location))

	for _, name := range r.names {
		if strings.Contains(clean, name) {
			coord := r.table[name]
			return &Result{
				Latitude:  coord.Lat,
				Longitude: coord.Lon,
				Place:     name,
				Source:    "exact",
				Matched:   true,
			}
		}
	}

	// Fall back to matching just the city-looking part of the string in
	// either direction, so "Princeton Junction" still lands on PRINCETON.
	city := strings.ToUpper(extractCityName(clean))
	if city != "" {
		for _, name := range r.names {
			if strings.Contains(name, city) || strings.Contains(city, name) {
				coord := r.table[name]
				return &Result{
					Latitude:  coord.Lat,
					Longitude: coord.Lon,
					Place:     name,
					Source:    "partial",
					Matched:   true,
				}
			}
		}
	}

	return &Result{Matched: false}
}

// BatchResolve implements Resolver by resolving locations in parallel.
func (r *StaticResolver) BatchResolve(ctx context.Context, locations []string) ([]Result, error) {
	if len(locations) == 0 {
		return nil, nil
	}

	results := make([]Result, len(locations))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.batchConcurrency)

	for i, loc := range locations {
		eg.Go(func() error {
			res, err := r.Resolve(gCtx, loc)
			if err != nil || res == nil {
				results[i] = Result{Matched: false}
				return nil
			}
			results[i] = *res
			return nil
		})
	}

	_ = eg.Wait()
	return results, nil
}

// CleanLocation strips street-address noise so place names match better:
// leading house numbers, street-type words, and state markers.
func CleanLocation(location string) string {
	location = leadingNumberRe.ReplaceAllString(location, "")
	location = streetWordRe.ReplaceAllString(location, "")
	location = stateWordRe.ReplaceAllString(location, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(location, " "))
}

// extractCityName pulls the most city-like token out of a location string.
// "Farm Rd, Hopewell, NJ" yields "Hopewell".
func extractCityName(location string) string {
	if strings.Contains(location, ",") {
		parts := strings.Split(location, ",")
		if len(parts) > 1 {
			return strings.TrimSpace(parts[len(parts)-2])
		}
		return strings.TrimSpace(parts[0])
	}

	words := strings.Fields(location)
	for i := len(words) - 1; i >= 0; i-- {
		if len(words[i]) > 2 && isAlpha(words[i]) {
			return words[i]
		}
	}
	return location
}

func isAlpha(s string) bool {
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return s != ""
}
