package document

import (
	"context"
	"fmt"

	"relstamp/internal/core/tracker"
)

// MetadataStore reads and writes front matter fields of markdown files.
// Documents are identified by their file path.
type MetadataStore struct{}

// NewMetadataStore returns a file-backed metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{}
}

// ReadField returns the front matter value stored under key.
func (store *MetadataStore) ReadField(ctx context.Context, path, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	matter, _, err := Read(path)
	if err != nil {
		return "", err
	}
	value, ok := matter.Get(key)
	if !ok {
		return "", fmt.Errorf("%s: %s: %w", path, key, tracker.ErrNoMetadata)
	}
	return value, nil
}

// WriteField sets key in the front matter of path, leaving the body untouched.
func (store *MetadataStore) WriteField(ctx context.Context, path, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	matter, body, err := Read(path)
	if err != nil {
		return err
	}
	matter.Set(key, value)
	if err := Write(path, matter, body); err != nil {
		return fmt.Errorf("write %s metadata: %w", path, err)
	}
	return nil
}
