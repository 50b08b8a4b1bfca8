// Package reviews implements admin moderation of listing placement. Listings
// flagged with needs_admin_review form the pending queue; a reviewer either
// approves the stored placement or overrides it, and every decision is kept
// as history.
package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/location"
)

// Action is the kind of decision a reviewer made.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionOverride Action = "override"
)

// Review is a recorded placement decision.
type Review struct {
	ID           uuid.UUID              `json:"id"`
	ListingID    uuid.UUID              `json:"listing_id"`
	Action       Action                 `json:"action"`
	Confirmation *location.Confirmation `json:"confirmation"`
	IsGlobal     bool                   `json:"is_global"`
	Reviewer     string                 `json:"reviewer"`
	Note         string                 `json:"note"`
	ReviewedAt   time.Time              `json:"reviewed_at"`
}

// ApproveCommand accepts the listing's current placement.
type ApproveCommand struct {
	Note string `json:"note" validate:"max=1000"`
}

// OverrideCommand replaces the listing's placement with the reviewer's answer.
type OverrideCommand struct {
	Confirmation string `json:"confirmation" validate:"required,oneof=kuwait other"`
	Note         string `json:"note" validate:"max=1000"`
}

// Reviewed is the payload published after a decision.
type Reviewed struct {
	ReviewID  uuid.UUID `json:"review_id"`
	ListingID uuid.UUID `json:"listing_id"`
	Action    Action    `json:"action"`
	IsGlobal  bool      `json:"is_global"`
	Reviewer  string    `json:"reviewer"`
}
