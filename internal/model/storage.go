package model

import (
	"context"
	"io"
)

// DocumentStorage archives raw uploaded documents, keyed by object name.
type DocumentStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
