// Package listings implements the business listing domain: storage of
// listing records, location processing on submission and edit, the
// detect-location hint, and the featured sections shown by the site.
package listings

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/location"
)

// Rating tiers used by listing cards.
const (
	RatingHigh = "high"
	RatingMid  = "mid"
	RatingLow  = "low"
)

// Category is a listing category. At most one category per listing is primary.
type Category struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	IsPrimary bool   `json:"is_primary"`
}

// Listing is a stored business listing with its derived location record.
type Listing struct {
	ID                   uuid.UUID                `json:"id"`
	Slug                 string                   `json:"slug"`
	Title                string                   `json:"title"`
	Description          string                   `json:"description"`
	City                 string                   `json:"city"`
	Location             string                   `json:"location"`
	Categories           []Category               `json:"categories"`
	Featured             bool                     `json:"featured"`
	Rating               string                   `json:"rating"`
	RatingScore          float64                  `json:"rating_score"`
	ReviewCount          int                      `json:"review_count"`
	Phone                string                   `json:"phone"`
	Verified             bool                     `json:"verified"`
	Status               string                   `json:"status"`
	ImageURL             string                   `json:"image_url"`
	IsGlobal             bool                     `json:"is_global"`
	LocationConfirmation *location.Confirmation   `json:"location_confirmation"`
	LocationVerified     bool                     `json:"location_verified"`
	LocationDetection    location.DetectionSource `json:"location_detection"`
	NeedsAdminReview     bool                     `json:"needs_admin_review"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
}

// Place implements location.Placeable.
func (l Listing) Place() (string, string) {
	return l.City, l.Location
}

// IsFeatured implements location.Placeable.
func (l Listing) IsFeatured() bool {
	return l.Featured
}

// PrimaryCategory returns the primary category, falling back to the first.
func (l Listing) PrimaryCategory() Category {
	for _, c := range l.Categories {
		if c.IsPrimary {
			return c
		}
	}
	if len(l.Categories) > 0 {
		return l.Categories[0]
	}
	return Category{}
}

// URL returns the site path of the listing within a directory section.
func (l Listing) URL(ctx location.ListingContext) string {
	category := l.PrimaryCategory().Slug
	if category == "" {
		category = "general"
	}
	return location.URLPrefix(ctx) + "/" + category + "/" + l.Slug
}

// Section returns the directory section a listing is published under.
func (l Listing) Section() location.ListingContext {
	if l.IsGlobal {
		return location.ListingContextGlobal
	}
	return location.ListingContextLocal
}

// apply copies a processed location record onto the listing.
func (l *Listing) apply(p location.ProcessedData) {
	l.IsGlobal = p.IsGlobal
	l.LocationConfirmation = p.LocationConfirmation
	l.LocationVerified = p.LocationVerified
	l.LocationDetection = p.LocationDetectionSource
	l.NeedsAdminReview = p.NeedsAdminReview
}

// CategoryInput is a category as submitted. Slug is derived from Name when empty.
type CategoryInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Slug      string `json:"slug" validate:"omitempty,max=100"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateCommand carries a listing submission. LocationConfirmation is the
// submitter's optional answer to the "is this business in Kuwait?" prompt.
type CreateCommand struct {
	Title                string          `json:"title" validate:"required,max=200"`
	Description          string          `json:"description" validate:"max=5000"`
	City                 string          `json:"city" validate:"max=100"`
	Location             string          `json:"location" validate:"max=200"`
	Categories           []CategoryInput `json:"categories" validate:"required,min=1,max=10,dive"`
	Featured             bool            `json:"featured"`
	Rating               string          `json:"rating" validate:"omitempty,oneof=high mid low"`
	RatingScore          float64         `json:"rating_score" validate:"gte=0,lte=5"`
	ReviewCount          int             `json:"review_count" validate:"gte=0"`
	Phone                string          `json:"phone" validate:"omitempty,max=40"`
	Verified             bool            `json:"verified"`
	Status               string          `json:"status" validate:"max=60"`
	ImageURL             string          `json:"image_url" validate:"omitempty,max=500"`
	LocationConfirmation string          `json:"location_confirmation" validate:"confirmation"`
}

// UpdateCommand carries a partial listing edit. Nil fields are left unchanged.
// A changed City or LocationConfirmation re-processes the location record;
// an empty LocationConfirmation clears a previous confirmation.
type UpdateCommand struct {
	Title                *string          `json:"title" validate:"omitnil,min=1,max=200"`
	Description          *string          `json:"description" validate:"omitnil,max=5000"`
	City                 *string          `json:"city" validate:"omitnil,max=100"`
	Location             *string          `json:"location" validate:"omitnil,max=200"`
	Categories           *[]CategoryInput `json:"categories" validate:"omitnil,min=1,max=10,dive"`
	Featured             *bool            `json:"featured"`
	Rating               *string          `json:"rating" validate:"omitnil,oneof=high mid low"`
	RatingScore          *float64         `json:"rating_score" validate:"omitnil,gte=0,lte=5"`
	ReviewCount          *int             `json:"review_count" validate:"omitnil,gte=0"`
	Phone                *string          `json:"phone" validate:"omitnil,max=40"`
	Verified             *bool            `json:"verified"`
	Status               *string          `json:"status" validate:"omitnil,max=60"`
	ImageURL             *string          `json:"image_url" validate:"omitnil,max=500"`
	LocationConfirmation *string          `json:"location_confirmation" validate:"omitnil,confirmation"`
}

// DetectRequest is the body of the detect-location endpoint.
type DetectRequest struct {
	City string `json:"city"`
}

// ReviewRequired is the payload published when a listing needs location review.
type ReviewRequired struct {
	ListingID            uuid.UUID              `json:"listing_id"`
	Slug                 string                 `json:"slug"`
	City                 string                 `json:"city"`
	Classification       location.Result        `json:"classification"`
	LocationConfirmation *location.Confirmation `json:"location_confirmation"`
}
