package storage_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/JaimeStill/bizz/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=bizzstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/bizzstore;"

func TestNewReturnsSystem(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "listings",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "listings",
		ConnectionString: "not-a-connection-string",
	}

	_, err := storage.New(cfg, slog.Default())
	if err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ErrNotFound maps to 404", storage.ErrNotFound, http.StatusNotFound},
		{"ErrEmptyKey maps to 400", storage.ErrEmptyKey, http.StatusBadRequest},
		{"ErrInvalidKey maps to 400", storage.ErrInvalidKey, http.StatusBadRequest},
		{"ErrInvalidMaxResults maps to 400", storage.ErrInvalidMaxResults, http.StatusBadRequest},
		{"wrapped ErrNotFound maps to 404", fmt.Errorf("operation failed: %w", storage.ErrNotFound), http.StatusNotFound},
		{"unknown error maps to 500", fmt.Errorf("unexpected failure"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int32
		wantErr bool
	}{
		{name: "empty returns fallback", input: "", want: 50},
		{name: "valid value within cap", input: "100", want: 100},
		{name: "value exceeding cap is clamped", input: "9999", want: storage.MaxListCap},
		{name: "value at cap returns cap", input: "5000", want: storage.MaxListCap},
		{name: "zero is invalid", input: "0", wantErr: true},
		{name: "negative is invalid", input: "-1", wantErr: true},
		{name: "non-numeric is invalid", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ParseMaxResults(tt.input, 50)
			if tt.wantErr {
				if !errors.Is(err, storage.ErrInvalidMaxResults) {
					t.Errorf("ParseMaxResults(%q) error = %v, want ErrInvalidMaxResults", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMaxResults(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMaxResults(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyValidation(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "listings",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "empty key", key: "", wantErr: storage.ErrEmptyKey},
		{name: "path traversal", key: "listings/../secrets/key", wantErr: storage.ErrInvalidKey},
		{name: "double dot in middle", key: "listings/..hidden/logo.png", wantErr: storage.ErrInvalidKey},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sys.Upload(ctx, tt.key, bytes.NewReader(nil), "image/png"); !errors.Is(err, tt.wantErr) {
				t.Errorf("Upload() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Download() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := sys.Find(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Find() error = %v, want %v", err, tt.wantErr)
			}
			if err := sys.Delete(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Exists() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := sys.List(ctx, "listings/../", 10); !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("List() error = %v, want ErrInvalidKey", err)
	}
}

func TestKeyShapeRejected(t *testing.T) {
	sys, err := storage.New(&storage.Config{ContainerName: "listings", ConnectionString: azuriteConnString}, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, key := range []string{"/listings/abc/menu.pdf", `listings\abc\menu.pdf`} {
		if _, err := sys.Find(context.Background(), key); !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Find(%q) error = %v, want ErrInvalidKey", key, err)
		}
		if ok, err := sys.Exists(context.Background(), key); ok || !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Exists(%q) = %v, %v", key, ok, err)
		}
	}
}
