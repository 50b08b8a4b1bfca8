package listings

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/location"
	"github.com/JaimeStill/bizz/pkg/pagination"
)

// System defines the public contract for listing domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Listing], error)

	Find(ctx context.Context, id uuid.UUID) (*Listing, error)
	FindBySlug(ctx context.Context, slug string) (*Listing, error)
	Create(ctx context.Context, cmd CreateCommand) (*Listing, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Detect classifies a city for the submission form's live hint.
	Detect(ctx context.Context, city string) location.Result

	// Featured returns the featured listings for a directory section.
	Featured(ctx context.Context, section location.ListingContext) ([]Listing, error)

	// Invalidate drops cached featured sections after an out-of-band change.
	Invalidate(ctx context.Context)
}
