package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/pkg/pagination"
)

// System defines the public contract for location review operations.
type System interface {
	Handler() *Handler

	// Pending returns listings awaiting review, oldest first.
	Pending(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[listings.Listing], error)

	Approve(ctx context.Context, listingID uuid.UUID, cmd ApproveCommand) (*Review, error)
	Override(ctx context.Context, listingID uuid.UUID, cmd OverrideCommand) (*Review, error)

	// History returns every decision recorded for a listing, newest first.
	History(ctx context.Context, listingID uuid.UUID) ([]Review, error)
}
