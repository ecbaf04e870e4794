package model

import "strings"

// Market is one row of the input list: a farmers market and its website.
type Market struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SiteType categorizes a market website by who operates it. Municipal and
// chamber sites tend to bury vendor lists several clicks deep; dedicated
// market sites usually link them from the front page.
type SiteType string

const (
	SiteTypeFacebook  SiteType = "facebook"
	SiteTypeMunicipal SiteType = "municipal"
	SiteTypeChamber   SiteType = "chamber"
	SiteTypeDedicated SiteType = "dedicated_market"
	SiteTypeOther     SiteType = "other"
	SiteTypeInvalid   SiteType = "invalid"
)

// ClassifySite buckets a URL into a SiteType from host and path hints.
func ClassifySite(rawURL string) SiteType {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	if u == "" {
		return SiteTypeInvalid
	}

	switch {
	case strings.Contains(u, "facebook.com"):
		return SiteTypeFacebook
	case strings.Contains(u, ".gov") || strings.Contains(u, "township") ||
		strings.Contains(u, "borough") || strings.Contains(u, "cityof"):
		return SiteTypeMunicipal
	case strings.Contains(u, "chamber"):
		return SiteTypeChamber
	case strings.Contains(u, "market") || strings.Contains(u, "farmers"):
		return SiteTypeDedicated
	}
	return SiteTypeOther
}
