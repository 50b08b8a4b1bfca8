// Package storage keeps listing attachments in Azure Blob Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/JaimeStill/bizz/pkg/lifecycle"
)

// BlobMeta is a blob's properties without its content.
type BlobMeta struct {
	Key           string    `json:"key"`
	ContentType   string    `json:"content_type"`
	ContentLength int64     `json:"content_length"`
	LastModified  time.Time `json:"last_modified"`
}

// System is the blob store. Keys are slash-separated and may not be
// empty or contain "..". Missing blobs surface as ErrNotFound.
type System interface {
	Start(lc *lifecycle.Coordinator) error
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	// Download streams a blob. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Find(ctx context.Context, key string) (*BlobMeta, error)
	// List walks every blob under prefix, maxResults per service page.
	List(ctx context.Context, prefix string, maxResults int32) ([]BlobMeta, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type azure struct {
	container *container.Client
	name      string
	logger    *slog.Logger
	ready     atomic.Bool
}

// New builds the container client. The service is not contacted until
// the startup hook runs.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := containerClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &azure{
		container: client,
		name:      cfg.ContainerName,
		logger:    logger.With("system", "storage", "container", cfg.ContainerName),
	}, nil
}

const applicationID = "bizz"

func containerClient(cfg *Config) (*container.Client, error) {
	opts := &azblob.ClientOptions{ClientOptions: azcore.ClientOptions{
		Telemetry: policy.TelemetryOptions{ApplicationID: applicationID},
		Retry:     policy.RetryOptions{MaxRetries: cfg.MaxRetries},
	}}

	if !cfg.UsesTokenCredential() {
		svc, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, opts)
		if err != nil {
			return nil, err
		}
		return svc.ServiceClient().NewContainerClient(cfg.ContainerName), nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("default azure credential: %w", err)
	}
	svc, err := azblob.NewClient(cfg.AccountURL, cred, opts)
	if err != nil {
		return nil, err
	}
	return svc.ServiceClient().NewContainerClient(cfg.ContainerName), nil
}

// Ready reports whether the container was confirmed at startup.
func (a *azure) Ready() bool { return a.ready.Load() }

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	lc.Require("storage", a)

	lc.OnStartup(func() {
		_, err := a.container.Create(lc.Context(), nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			a.logger.Error("storage container unavailable", "error", err)
			return
		}
		a.ready.Store(true)
		a.logger.Info("storage container ready")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		a.ready.Store(false)
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := a.container.NewBlockBlobClient(key).UploadStream(ctx, r, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	return wrap(err, "upload", key)
}

func (a *azure) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	resp, err := a.container.NewBlobClient(key).DownloadStream(ctx, nil)
	if err != nil {
		return nil, wrap(err, "download", key)
	}
	return resp.Body, nil
}

func (a *azure) Find(ctx context.Context, key string) (*BlobMeta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	props, err := a.container.NewBlobClient(key).GetProperties(ctx, nil)
	if err != nil {
		return nil, wrap(err, "find", key)
	}
	return &BlobMeta{
		Key:           key,
		ContentType:   deref(props.ContentType),
		ContentLength: deref(props.ContentLength),
		LastModified:  deref(props.LastModified),
	}, nil
}

func (a *azure) List(ctx context.Context, prefix string, maxResults int32) ([]BlobMeta, error) {
	if strings.Contains(prefix, "..") {
		return nil, ErrInvalidKey
	}

	pager := a.container.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{
		Prefix:     &prefix,
		MaxResults: &maxResults,
	})

	out := []BlobMeta{}
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, wrap(err, "list", prefix)
		}
		for _, item := range page.Segment.BlobItems {
			meta := BlobMeta{Key: deref(item.Name)}
			if p := item.Properties; p != nil {
				meta.ContentType = deref(p.ContentType)
				meta.ContentLength = deref(p.ContentLength)
				meta.LastModified = deref(p.LastModified)
			}
			out = append(out, meta)
		}
	}
	return out, nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := a.container.NewBlobClient(key).Delete(ctx, nil)
	return wrap(err, "delete", key)
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.Find(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// wrap maps missing blobs to ErrNotFound and annotates everything else.
func wrap(err error, op, key string) error {
	if err == nil {
		return nil
	}
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s blob %s: %w", op, key, err)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
