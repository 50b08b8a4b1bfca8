package api

import (
	"github.com/JaimeStill/bizz/internal/attachments"
	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Listings    listings.System
	Reviews     reviews.System
	Attachments attachments.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	listingsSystem := listings.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Cache,
		runtime.Events,
		runtime.Metrics,
		runtime.Logger,
		runtime.Pagination,
	)

	reviewsSystem := reviews.New(
		runtime.Database.Connection(),
		listingsSystem,
		runtime.Events,
		runtime.Metrics,
		runtime.Logger,
		runtime.Pagination,
	)

	attachmentsSystem := attachments.New(
		runtime.Database.Connection(),
		runtime.Storage,
		listingsSystem,
		runtime.Logger,
	)

	return &Domain{
		Listings:    listingsSystem,
		Reviews:     reviewsSystem,
		Attachments: attachmentsSystem,
	}
}
