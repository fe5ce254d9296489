package files

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
)

//go:generate mockgen -destination=mock_store.go -package=files . Store

// Store is the broker every storage item talks to. Implementations perform
// the actual I/O against a local disk or a remote server.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	CreateDir(ctx context.Context, path string) error
	CreateFile(ctx context.Context, path string) error

	// Open opens path for reading. Other readers are not locked out.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// RemoveDir removes an empty directory.
	RemoveDir(ctx context.Context, path string) error
	// Move renames from into to and fails if to already exists.
	Move(ctx context.Context, from, to string) error
	Attributes(ctx context.Context, path string) (AttributeData, error)
}

var ErrNotImplemented = errors.New("not implemented")
