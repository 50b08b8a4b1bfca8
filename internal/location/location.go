// Package location classifies free-text city names as Kuwaiti, international,
// or uncertain, and derives the location record stored with a listing.
// Everything in this package is pure and safe for concurrent use.
package location

// Context is the coarse bucket a location is assigned to.
type Context string

const (
	ContextKuwait    Context = "kuwait"
	ContextOther     Context = "other"
	ContextUncertain Context = "uncertain"
)

// Confidence is the qualitative certainty of a classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Confirmation is a submitter's explicit answer to "is this business in Kuwait?".
// The zero value means no answer was given.
type Confirmation string

const (
	ConfirmationNone   Confirmation = ""
	ConfirmationKuwait Confirmation = "kuwait"
	ConfirmationOther  Confirmation = "other"
)

// ParseConfirmation accepts "kuwait" or "other". An empty string parses to
// ConfirmationNone; anything else is rejected.
func ParseConfirmation(s string) (Confirmation, bool) {
	switch Confirmation(s) {
	case ConfirmationNone, ConfirmationKuwait, ConfirmationOther:
		return Confirmation(s), true
	}
	return ConfirmationNone, false
}

// DetectionSource records where a stored placement decision came from.
type DetectionSource string

const (
	SourceUserConfirmed DetectionSource = "user_confirmed"
	SourceAuto          DetectionSource = "auto"
)

// Result is the outcome of classifying a single city string.
type Result struct {
	Context               Context    `json:"context"`
	Confidence            Confidence `json:"confidence"`
	Reason                string     `json:"reason"`
	NeedsUserConfirmation bool       `json:"needs_user_confirmation"`
}

// ProcessedData is the location record attached to a listing.
// LocationVerified implies NeedsAdminReview is false.
type ProcessedData struct {
	IsGlobal                bool            `json:"is_global"`
	LocationConfirmation    *Confirmation   `json:"location_confirmation"`
	LocationVerified        bool            `json:"location_verified"`
	LocationDetectionSource DetectionSource `json:"location_detection"`
	NeedsAdminReview        bool            `json:"needs_admin_review"`
}
