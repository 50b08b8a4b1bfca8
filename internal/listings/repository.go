package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/location"
	"github.com/JaimeStill/bizz/pkg/cache"
	"github.com/JaimeStill/bizz/pkg/events"
	"github.com/JaimeStill/bizz/pkg/metrics"
	"github.com/JaimeStill/bizz/pkg/pagination"
	"github.com/JaimeStill/bizz/pkg/query"
	"github.com/JaimeStill/bizz/pkg/repository"
	"github.com/JaimeStill/bizz/pkg/slug"
	"github.com/JaimeStill/bizz/pkg/storage"
)

const (
	maxSlugAttempts = 20
	featuredLimit   = 48

	slugConstraint = "listings_slug_key"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	cache      cache.System
	events     events.Publisher
	metrics    *metrics.Metrics
	validate   *validator.Validate
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a listing repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	c cache.System,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		cache:      c,
		events:     publisher,
		metrics:    m,
		validate:   newValidator(),
		logger:     logger.With("system", "listings"),
		pagination: pagination,
	}
}

// StoragePrefix is the blob key prefix that holds every object owned by a listing.
func StoragePrefix(id uuid.UUID) string {
	return fmt.Sprintf("listings/%s/", id)
}

func featuredKey(section location.ListingContext) string {
	return "listings:featured:" + string(section)
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Listing], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	items, total, err := repository.QueryPage(ctx, r.db, qb, page.Page, page.PageSize, scanListing)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}

	if err := r.attachCategories(ctx, r.db, items); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return r.findBy(ctx, "ID", id)
}

func (r *repo) FindBySlug(ctx context.Context, s string) (*Listing, error) {
	return r.findBy(ctx, "Slug", s)
}

func (r *repo) findBy(ctx context.Context, field string, value any) (*Listing, error) {
	q, args := query.NewBuilder(projection).BuildSingle(field, value)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanListing)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	items := []Listing{l}
	if err := r.attachCategories(ctx, r.db, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Listing, error) {
	if err := validate(r.validate, cmd); err != nil {
		return nil, err
	}

	confirmation, _ := location.ParseConfirmation(cmd.LocationConfirmation)
	detection := r.Detect(ctx, cmd.City)
	processed := location.Process(cmd.City, confirmation)
	categories := normalizeCategories(cmd.Categories)

	draft := Listing{
		Title:       strings.TrimSpace(cmd.Title),
		Description: cmd.Description,
		City:        strings.TrimSpace(cmd.City),
		Location:    strings.TrimSpace(cmd.Location),
		Categories:  categories,
		Featured:    cmd.Featured,
		Rating:      cmd.Rating,
		RatingScore: cmd.RatingScore,
		ReviewCount: cmd.ReviewCount,
		Phone:       cmd.Phone,
		Verified:    cmd.Verified,
		Status:      cmd.Status,
		ImageURL:    cmd.ImageURL,
	}
	draft.apply(processed)

	base := slug.Make(draft.Title)

	var (
		l   Listing
		err error
	)
	for n := 1; n <= maxSlugAttempts; n++ {
		draft.Slug = slug.WithSuffix(base, n)
		l, err = r.insert(ctx, draft)
		if !repository.IsUniqueViolation(err, slugConstraint) {
			break
		}
	}
	if repository.IsUniqueViolation(err, slugConstraint) {
		return nil, fmt.Errorf("%w: %s", ErrSlugExhausted, base)
	}
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.metrics.ObserveMutation("create")
	if l.NeedsAdminReview {
		r.flag(ctx, l, detection)
	}
	r.Invalidate(ctx)

	r.logger.Info("listing created",
		"id", l.ID,
		"slug", l.Slug,
		"is_global", l.IsGlobal,
		"needs_admin_review", l.NeedsAdminReview,
	)
	return &l, nil
}

func (r *repo) insert(ctx context.Context, d Listing) (Listing, error) {
	q := `
		INSERT INTO listings(
			id, slug, title, description, city, location, featured, rating, rating_score,
			review_count, phone, verified, status, image_url, is_global, location_confirmation,
			location_verified, location_detection, needs_admin_review
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + returning

	args := []any{
		uuid.New(),
		d.Slug,
		d.Title,
		d.Description,
		d.City,
		d.Location,
		d.Featured,
		d.Rating,
		d.RatingScore,
		d.ReviewCount,
		d.Phone,
		d.Verified,
		d.Status,
		d.ImageURL,
		d.IsGlobal,
		confirmationArg(d.LocationConfirmation),
		d.LocationVerified,
		string(d.LocationDetection),
		d.NeedsAdminReview,
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Listing, error) {
		l, err := repository.QueryOne(ctx, tx, q, args, scanListing)
		if err != nil {
			return Listing{}, err
		}
		if err := insertCategories(ctx, tx, l.ID, d.Categories); err != nil {
			return Listing{}, err
		}
		l.Categories = d.Categories
		return l, nil
	})

	return l, err
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Listing, error) {
	if err := validate(r.validate, cmd); err != nil {
		return nil, err
	}

	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	var detection location.Result
	reprocess := applyUpdate(&next, cmd)
	if reprocess {
		confirmation := location.ConfirmationNone
		if next.LocationConfirmation != nil {
			confirmation = *next.LocationConfirmation
		}
		detection = r.Detect(ctx, next.City)
		next.apply(location.Process(next.City, confirmation))
	}

	q := `
		UPDATE listings SET
			title = $1, description = $2, city = $3, location = $4, featured = $5,
			rating = $6, rating_score = $7, review_count = $8, phone = $9, verified = $10,
			status = $11, image_url = $12, is_global = $13, location_confirmation = $14,
			location_verified = $15, location_detection = $16, needs_admin_review = $17,
			updated_at = NOW()
		WHERE id = $18
		RETURNING ` + returning

	args := []any{
		next.Title,
		next.Description,
		next.City,
		next.Location,
		next.Featured,
		next.Rating,
		next.RatingScore,
		next.ReviewCount,
		next.Phone,
		next.Verified,
		next.Status,
		next.ImageURL,
		next.IsGlobal,
		confirmationArg(next.LocationConfirmation),
		next.LocationVerified,
		string(next.LocationDetection),
		next.NeedsAdminReview,
		id,
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Listing, error) {
		l, err := repository.QueryOne(ctx, tx, q, args, scanListing)
		if err != nil {
			return Listing{}, err
		}
		if cmd.Categories != nil {
			if _, err := tx.ExecContext(ctx, "DELETE FROM listing_categories WHERE listing_id = $1", id); err != nil {
				return Listing{}, fmt.Errorf("clear categories: %w", err)
			}
			if err := insertCategories(ctx, tx, id, next.Categories); err != nil {
				return Listing{}, err
			}
		}
		l.Categories = next.Categories
		return l, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.metrics.ObserveMutation("update")
	if reprocess && l.NeedsAdminReview {
		r.flag(ctx, l, detection)
	}
	r.Invalidate(ctx)

	r.logger.Info("listing updated",
		"id", l.ID,
		"relocated", reprocess,
		"needs_admin_review", l.NeedsAdminReview,
	)
	return &l, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM listings WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.purgeBlobs(ctx, id)
	r.metrics.ObserveMutation("delete")
	r.Invalidate(ctx)

	r.logger.Info("listing deleted", "id", id)
	return nil
}

func (r *repo) Detect(ctx context.Context, city string) location.Result {
	result := location.Classify(city)
	r.metrics.ObserveClassification(string(result.Context), string(result.Confidence))
	r.logger.Debug("location classified",
		"city", city,
		"context", result.Context,
		"confidence", result.Confidence,
	)
	return result
}

func (r *repo) Featured(ctx context.Context, section location.ListingContext) ([]Listing, error) {
	key := featuredKey(section)

	var cached []Listing
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		r.metrics.ObserveCache(true)
		return cached, nil
	}
	r.metrics.ObserveCache(false)
	if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn("featured cache read failed", "key", key, "error", err)
	}

	qb := query.NewBuilder(projection, defaultSort).WhereEquals("Featured", true)
	q, args := qb.BuildPage(1, featuredLimit)

	items, err := repository.QueryMany(ctx, r.db, q, args, scanListing)
	if err != nil {
		return nil, fmt.Errorf("query featured listings: %w", err)
	}
	if err := r.attachCategories(ctx, r.db, items); err != nil {
		return nil, err
	}

	items = location.FilterFeatured(items, section)

	if err := r.cache.Set(ctx, key, items, 0); err != nil {
		r.logger.Warn("featured cache write failed", "key", key, "error", err)
	}
	return items, nil
}

func (r *repo) Invalidate(ctx context.Context) {
	keys := []string{
		featuredKey(location.ListingContextLocal),
		featuredKey(location.ListingContextGlobal),
		featuredKey(location.ListingContextAll),
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("featured cache invalidation failed", "error", err)
	}
}

func (r *repo) flag(ctx context.Context, l Listing, detection location.Result) {
	r.metrics.ObserveFlagged()

	event := events.NewEvent(events.ListingReviewRequired, ReviewRequired{
		ListingID:            l.ID,
		Slug:                 l.Slug,
		City:                 l.City,
		Classification:       detection,
		LocationConfirmation: l.LocationConfirmation,
	})
	if err := r.events.Publish(ctx, event); err != nil {
		r.logger.Warn("review event publish failed", "id", l.ID, "error", err)
	}
}

func (r *repo) purgeBlobs(ctx context.Context, id uuid.UUID) {
	prefix := StoragePrefix(id)
	blobs, err := r.storage.List(ctx, prefix, storage.MaxListCap)
	if err != nil {
		r.logger.Warn("list listing blobs failed", "prefix", prefix, "error", err)
		return
	}
	for _, b := range blobs {
		if err := r.storage.Delete(ctx, b.Key); err != nil {
			r.logger.Warn("blob delete failed after listing delete", "key", b.Key, "error", err)
		}
	}
}

func (r *repo) attachCategories(ctx context.Context, q repository.Querier, items []Listing) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]any, len(items))
	for i, l := range items {
		ids[i] = l.ID
	}

	stmt, args := query.
		NewBuilder(categoryProjection, categorySort).
		WhereIn("ListingID", ids).
		Build()

	rows, err := repository.QueryMany(ctx, q, stmt, args, scanCategory)
	if err != nil {
		return fmt.Errorf("query listing categories: %w", err)
	}

	byListing := make(map[uuid.UUID][]Category, len(items))
	for _, row := range rows {
		byListing[row.listingID] = append(byListing[row.listingID], row.Category)
	}
	for i := range items {
		items[i].Categories = byListing[items[i].ID]
		if items[i].Categories == nil {
			items[i].Categories = []Category{}
		}
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, id uuid.UUID, categories []Category) error {
	for i, c := range categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO listing_categories(listing_id, name, slug, is_primary, position) VALUES ($1, $2, $3, $4, $5)",
			id, c.Name, c.Slug, c.IsPrimary, i,
		); err != nil {
			return fmt.Errorf("insert category %s: %w", c.Slug, err)
		}
	}
	return nil
}

// normalizeCategories derives missing slugs, drops repeated slugs, and
// leaves exactly one primary category.
func normalizeCategories(in []CategoryInput) []Category {
	out := make([]Category, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	primary := -1

	for _, c := range in {
		s := c.Slug
		if s == "" {
			s = c.Name
		}
		s = slug.Make(s)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		isPrimary := c.IsPrimary && primary < 0
		if isPrimary {
			primary = len(out)
		}
		out = append(out, Category{Name: strings.TrimSpace(c.Name), Slug: s, IsPrimary: isPrimary})
	}

	if primary < 0 && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out
}

// applyUpdate copies non-nil fields from cmd onto l and reports whether the
// location record must be recomputed.
func applyUpdate(l *Listing, cmd UpdateCommand) bool {
	reprocess := false

	if cmd.Title != nil {
		l.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Description != nil {
		l.Description = *cmd.Description
	}
	if cmd.City != nil {
		city := strings.TrimSpace(*cmd.City)
		if city != l.City {
			reprocess = true
		}
		l.City = city
	}
	if cmd.Location != nil {
		l.Location = strings.TrimSpace(*cmd.Location)
	}
	if cmd.Categories != nil {
		l.Categories = normalizeCategories(*cmd.Categories)
	}
	if cmd.Featured != nil {
		l.Featured = *cmd.Featured
	}
	if cmd.Rating != nil {
		l.Rating = *cmd.Rating
	}
	if cmd.RatingScore != nil {
		l.RatingScore = *cmd.RatingScore
	}
	if cmd.ReviewCount != nil {
		l.ReviewCount = *cmd.ReviewCount
	}
	if cmd.Phone != nil {
		l.Phone = *cmd.Phone
	}
	if cmd.Verified != nil {
		l.Verified = *cmd.Verified
	}
	if cmd.Status != nil {
		l.Status = *cmd.Status
	}
	if cmd.ImageURL != nil {
		l.ImageURL = *cmd.ImageURL
	}
	if cmd.LocationConfirmation != nil {
		next, _ := location.ParseConfirmation(*cmd.LocationConfirmation)
		current := location.ConfirmationNone
		if l.LocationConfirmation != nil {
			current = *l.LocationConfirmation
		}
		if next != current {
			reprocess = true
			if next == location.ConfirmationNone {
				l.LocationConfirmation = nil
			} else {
				l.LocationConfirmation = &next
			}
		}
	}

	return reprocess
}

func confirmationArg(c *location.Confirmation) any {
	if c == nil {
		return nil
	}
	return string(*c)
}
