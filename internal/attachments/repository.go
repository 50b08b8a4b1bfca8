package attachments

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/pkg/query"
	"github.com/JaimeStill/bizz/pkg/repository"
	"github.com/JaimeStill/bizz/pkg/storage"
)

const batchWorkers = 4

type repo struct {
	db       *sql.DB
	storage  storage.System
	listings listings.System
	logger   *slog.Logger
}

// New creates an attachment repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	listingsSys listings.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		storage:  store,
		listings: listingsSys,
		logger:   logger.With("system", "attachments"),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) List(ctx context.Context, listingID uuid.UUID) ([]Attachment, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ListingID", listingID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanAttachment)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAttachment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Attachment, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}
	if !cmd.Kind.Accepts(cmd.ContentType) {
		return nil, fmt.Errorf("%w: %s not allowed for %s", ErrInvalidFile, cmd.ContentType, cmd.Kind)
	}

	if _, err := r.listings.Find(ctx, cmd.ListingID); err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	id := uuid.New()
	key := buildStorageKey(cmd.ListingID, id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload attachment blob: %w", err)
	}

	q := `
		INSERT INTO attachments(id, listing_id, kind, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, listing_id, kind, filename, content_type, size_bytes, page_count, storage_key, uploaded_at`

	insertArgs := []any{
		id,
		cmd.ListingID,
		string(cmd.Kind),
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Attachment, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanAttachment)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		if repository.IsForeignKeyViolation(err, "") {
			return nil, ErrListingNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("attachment created",
		"id", a.ID,
		"listing_id", a.ListingID,
		"kind", a.Kind,
		"filename", a.Filename,
	)
	return &a, nil
}

func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	var g errgroup.Group
	g.SetLimit(batchWorkers)

	for i := range cmds {
		g.Go(func() error {
			results[i].Filename = cmds[i].Filename
			if err := ctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}

			a, err := r.Create(ctx, cmds[i])
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Attachment = a
			return nil
		})
	}

	g.Wait()
	return results
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Attachment, io.ReadCloser, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	body, err := r.storage.Download(ctx, a.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: blob missing for %s", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("download attachment blob: %w", err)
	}
	return a, body, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM attachments WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, a.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", a.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("attachment deleted", "id", id, "listing_id", a.ListingID)
	return nil
}

func buildStorageKey(listingID, id uuid.UUID, filename string) string {
	return listings.StoragePrefix(listingID) + id.String() + "/" + filename
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" || name == "" {
		name = "attachment"
	}
	return url.PathEscape(name)
}
