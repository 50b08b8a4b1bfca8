package location

import "strings"

// localPlaceNames is the shorter list the directory pages use to split
// listings into local and global sections. It overlaps with, but is not the
// same as, the classifier gazetteer.
var localPlaceNames = []string{
	"kuwait city", "hawalli", "salmiya", "farwaniya", "jahra", "ahmadi",
	"mangaf", "rumaithiya", "bayan", "mishref", "salwa", "shaab",
	"siddiq", "jabriya", "surra", "sharq", "qibla", "mirgab",
	"dasman", "abdullah al-salem", "adiliya", "kaifan", "khaldiya",
	"mansouriya", "nuzha", "qadsiya", "qortuba", "rawda", "shamiya",
	"shuwaikh", "sulaibikhat", "yarmouk", "bneid al-gar", "andalous",
	"abdullah al-mubarak", "ardhiya", "khaitan", "ferdous",
	"jleeb al-shuyoukh", "fahaheel", "fintas", "mahboula",
	"abu halifa", "sabahiya", "wafra", "sulaibiya", "qasr",
	"taima", "naeem", "saad al-abdullah", "abdali", "kabd",
	"qurain", "qusour", "funaitees", "messila", "sabah al-salem",
	"jaber al-ali", "sabah al-ahmad", "khairan",
}

// ListingContext selects which listings a directory section shows.
type ListingContext string

const (
	ListingContextLocal  ListingContext = "local"
	ListingContextGlobal ListingContext = "global"
	ListingContextAll    ListingContext = "all"
)

// ParseListingContext maps a query value to a ListingContext, defaulting to local.
func ParseListingContext(s string) ListingContext {
	switch ListingContext(strings.ToLower(strings.TrimSpace(s))) {
	case ListingContextGlobal:
		return ListingContextGlobal
	case ListingContextAll:
		return ListingContextAll
	default:
		return ListingContextLocal
	}
}

// Placeable is implemented by anything the directory can route by place.
type Placeable interface {
	Place() (city, location string)
	IsFeatured() bool
}

// IsLocal reports whether either field contains a local place name.
func IsLocal(city, location string) bool {
	cityLower := strings.ToLower(city)
	locationLower := strings.ToLower(location)

	for _, name := range localPlaceNames {
		if strings.Contains(cityLower, name) || strings.Contains(locationLower, name) {
			return true
		}
	}
	return false
}

// FilterFeatured keeps featured items that belong in the given section.
func FilterFeatured[T Placeable](items []T, ctx ListingContext) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !item.IsFeatured() {
			continue
		}

		city, loc := item.Place()
		switch ctx {
		case ListingContextLocal:
			if !IsLocal(city, loc) {
				continue
			}
		case ListingContextGlobal:
			if IsLocal(city, loc) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// URLPrefix returns the path prefix listing links use in a section.
func URLPrefix(ctx ListingContext) string {
	if ctx == ListingContextGlobal {
		return "/global-listings"
	}
	return "/listings"
}
