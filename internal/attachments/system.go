package attachments

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// System defines the public contract for attachment operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(ctx context.Context, listingID uuid.UUID) ([]Attachment, error)
	Find(ctx context.Context, id uuid.UUID) (*Attachment, error)
	Create(ctx context.Context, cmd CreateCommand) (*Attachment, error)

	// CreateBatch stores each file independently. A failed file does not
	// stop the others; its error is reported in its BatchResult.
	CreateBatch(ctx context.Context, cmds []CreateCommand) []BatchResult

	// Download returns the attachment record and a stream of its blob.
	// The caller must close the reader.
	Download(ctx context.Context, id uuid.UUID) (*Attachment, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
