package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/internal/location"
	"github.com/JaimeStill/bizz/pkg/auth"
	"github.com/JaimeStill/bizz/pkg/events"
	"github.com/JaimeStill/bizz/pkg/metrics"
	"github.com/JaimeStill/bizz/pkg/pagination"
	"github.com/JaimeStill/bizz/pkg/query"
	"github.com/JaimeStill/bizz/pkg/repository"
)

// anonymousReviewer is recorded when auth is disabled and no principal is present.
const anonymousReviewer = "anonymous"

type repo struct {
	db         *sql.DB
	listings   listings.System
	events     events.Publisher
	metrics    *metrics.Metrics
	validate   *validator.Validate
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a review repository implementing the System interface.
func New(
	db *sql.DB,
	listingsSys listings.System,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		listings:   listingsSys,
		events:     publisher,
		metrics:    m,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger.With("system", "reviews"),
		pagination: pagination,
	}
}

type decision struct {
	listingID    uuid.UUID
	action       Action
	confirmation *location.Confirmation
	isGlobal     bool
	detection    location.DetectionSource
	note         string
	reviewer     string
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Pending(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[listings.Listing], error) {
	if len(page.Sort) == 0 {
		page.Sort = pagination.SortFields{{Field: "CreatedAt"}}
	}

	pending := true
	return r.listings.List(ctx, page, listings.Filters{NeedsAdminReview: &pending})
}

func (r *repo) Approve(ctx context.Context, listingID uuid.UUID, cmd ApproveCommand) (*Review, error) {
	if err := r.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReview, err)
	}

	l, err := r.find(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !l.NeedsAdminReview {
		return nil, ErrNotPending
	}

	return r.decide(ctx, decision{
		listingID:    listingID,
		action:       ActionApprove,
		confirmation: l.LocationConfirmation,
		isGlobal:     l.IsGlobal,
		detection:    l.LocationDetection,
		note:         cmd.Note,
		reviewer:     reviewer(ctx),
	})
}

func (r *repo) Override(ctx context.Context, listingID uuid.UUID, cmd OverrideCommand) (*Review, error) {
	if err := r.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReview, err)
	}

	if _, err := r.find(ctx, listingID); err != nil {
		return nil, err
	}

	confirmation := location.Confirmation(cmd.Confirmation)
	return r.decide(ctx, decision{
		listingID:    listingID,
		action:       ActionOverride,
		confirmation: &confirmation,
		isGlobal:     confirmation == location.ConfirmationOther,
		detection:    location.SourceUserConfirmed,
		note:         cmd.Note,
		reviewer:     reviewer(ctx),
	})
}

func (r *repo) History(ctx context.Context, listingID uuid.UUID) ([]Review, error) {
	q, args := query.
		NewBuilder(projection, historySort).
		WhereEquals("ListingID", listingID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, fmt.Errorf("query review history: %w", err)
	}
	return items, nil
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*listings.Listing, error) {
	l, err := r.listings.Find(ctx, id)
	if errors.Is(err, listings.ErrNotFound) {
		return nil, ErrNotFound
	}
	return l, err
}

// decide marks the listing verified with the decided placement and records
// the review. Approvals only apply while the listing is still pending.
func (r *repo) decide(ctx context.Context, d decision) (*Review, error) {
	updateQ := `
		UPDATE listings
		SET is_global = $1, location_confirmation = $2, location_detection = $3,
			location_verified = TRUE, needs_admin_review = FALSE, updated_at = NOW()
		WHERE id = $4`
	if d.action == ActionApprove {
		updateQ += " AND needs_admin_review"
	}

	insertQ := `
		INSERT INTO location_reviews(id, listing_id, action, confirmation, is_global, reviewer, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, listing_id, action, confirmation, is_global, reviewer, note, reviewed_at`

	var confirmation any
	if d.confirmation != nil {
		confirmation = string(*d.confirmation)
	}

	review, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Review, error) {
		if err := repository.ExecExpectOne(
			ctx, tx, updateQ,
			d.isGlobal, confirmation, string(d.detection), d.listingID,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Review{}, ErrNotPending
			}
			return Review{}, err
		}

		return repository.QueryOne(ctx, tx, insertQ,
			[]any{uuid.New(), d.listingID, string(d.action), confirmation, d.isGlobal, d.reviewer, d.note},
			scanReview,
		)
	})

	if err != nil {
		return nil, err
	}

	r.listings.Invalidate(ctx)
	r.metrics.ObserveDecision(string(review.Action))

	event := events.NewEvent(events.ListingReviewed, Reviewed{
		ReviewID:  review.ID,
		ListingID: review.ListingID,
		Action:    review.Action,
		IsGlobal:  review.IsGlobal,
		Reviewer:  review.Reviewer,
	})
	if err := r.events.Publish(ctx, event); err != nil {
		r.logger.Warn("reviewed event publish failed", "listing_id", review.ListingID, "error", err)
	}

	r.logger.Info("listing reviewed",
		"listing_id", review.ListingID,
		"action", review.Action,
		"is_global", review.IsGlobal,
		"reviewer", review.Reviewer,
	)
	return &review, nil
}

func reviewer(ctx context.Context) string {
	p, ok := auth.FromContext(ctx)
	if !ok {
		return anonymousReviewer
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Subject
}
