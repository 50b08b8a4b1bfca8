package reviews

import (
	"github.com/JaimeStill/bizz/pkg/query"
	"github.com/JaimeStill/bizz/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "location_reviews", "r").
	Project("id", "ID").
	Project("listing_id", "ListingID").
	Project("action", "Action").
	Project("confirmation", "Confirmation").
	Project("is_global", "IsGlobal").
	Project("reviewer", "Reviewer").
	Project("note", "Note").
	Project("reviewed_at", "ReviewedAt")

var historySort = query.SortField{
	Field:      "ReviewedAt",
	Descending: true,
}

func scanReview(s repository.Scanner) (Review, error) {
	var r Review
	err := s.Scan(
		&r.ID,
		&r.ListingID,
		&r.Action,
		&r.Confirmation,
		&r.IsGlobal,
		&r.Reviewer,
		&r.Note,
		&r.ReviewedAt,
	)
	return r, err
}
