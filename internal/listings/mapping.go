package listings

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/pkg/query"
	"github.com/JaimeStill/bizz/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "listings", "l").
	Project("id", "ID").
	Project("slug", "Slug").
	Project("title", "Title").
	Project("description", "Description").
	Project("city", "City").
	Project("location", "Location").
	Project("featured", "Featured").
	Project("rating", "Rating").
	Project("rating_score", "RatingScore").
	Project("review_count", "ReviewCount").
	Project("phone", "Phone").
	Project("verified", "Verified").
	Project("status", "Status").
	Project("image_url", "ImageURL").
	Project("is_global", "IsGlobal").
	Project("location_confirmation", "LocationConfirmation").
	Project("location_verified", "LocationVerified").
	Project("location_detection", "LocationDetection").
	Project("needs_admin_review", "NeedsAdminReview").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// returning lists the listing columns in projection order for INSERT and UPDATE statements.
const returning = `id, slug, title, description, city, location, featured, rating, rating_score,
		review_count, phone, verified, status, image_url, is_global, location_confirmation,
		location_verified, location_detection, needs_admin_review, created_at, updated_at`

var categoryProjection = query.
	NewProjectionMap("public", "listing_categories", "c").
	Project("listing_id", "ListingID").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("is_primary", "IsPrimary")

var categorySort = query.SortField{Field: "c.position"}

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

const categoryExists = "EXISTS (SELECT 1 FROM public.listing_categories lc WHERE lc.listing_id = l.id AND lc.slug = $%d)"

// Filters contains optional filtering criteria for listing queries.
// Nil fields are ignored. City and Location use case-insensitive contains
// matching; Category matches a category slug.
type Filters struct {
	IsGlobal          *bool   `json:"is_global,omitempty"`
	Featured          *bool   `json:"featured,omitempty"`
	NeedsAdminReview  *bool   `json:"needs_admin_review,omitempty"`
	LocationVerified  *bool   `json:"location_verified,omitempty"`
	LocationDetection *string `json:"location_detection,omitempty"`
	Category          *string `json:"category,omitempty"`
	City              *string `json:"city,omitempty"`
	Location          *string `json:"location,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("IsGlobal", f.IsGlobal).
		WhereEquals("Featured", f.Featured).
		WhereEquals("NeedsAdminReview", f.NeedsAdminReview).
		WhereEquals("LocationVerified", f.LocationVerified).
		WhereEquals("LocationDetection", f.LocationDetection).
		WhereContains("City", f.City).
		WhereContains("Location", f.Location)

	if f.Category != nil && *f.Category != "" {
		b.Where(categoryExists, *f.Category)
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Boolean parameters that do not parse are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	f.IsGlobal = parseBool(values.Get("is_global"))
	f.Featured = parseBool(values.Get("featured"))
	f.NeedsAdminReview = parseBool(values.Get("needs_admin_review"))
	f.LocationVerified = parseBool(values.Get("location_verified"))

	if d := values.Get("location_detection"); d != "" {
		f.LocationDetection = &d
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if c := values.Get("city"); c != "" {
		f.City = &c
	}

	if l := values.Get("location"); l != "" {
		f.Location = &l
	}

	return f
}

func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

func scanListing(s repository.Scanner) (Listing, error) {
	var l Listing
	err := s.Scan(
		&l.ID,
		&l.Slug,
		&l.Title,
		&l.Description,
		&l.City,
		&l.Location,
		&l.Featured,
		&l.Rating,
		&l.RatingScore,
		&l.ReviewCount,
		&l.Phone,
		&l.Verified,
		&l.Status,
		&l.ImageURL,
		&l.IsGlobal,
		&l.LocationConfirmation,
		&l.LocationVerified,
		&l.LocationDetection,
		&l.NeedsAdminReview,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

type listingCategory struct {
	listingID uuid.UUID
	Category
}

func scanCategory(s repository.Scanner) (listingCategory, error) {
	var c listingCategory
	err := s.Scan(&c.listingID, &c.Name, &c.Slug, &c.IsPrimary)
	return c, err
}
