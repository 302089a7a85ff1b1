package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
)

// LocalStore keeps attachments on the local filesystem, one directory per
// owning record. The returned reference is the path relative to the store
// root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a document store rooted at the given directory.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document store root %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

var _ portssvc.DocumentStore = (*LocalStore)(nil)

func (s *LocalStore) Attach(ctx context.Context, ownerRef string, blob []byte, metadata map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString()
	if ext := filepath.Ext(metadata["name"]); ext != "" {
		name += ext
	}

	dir := filepath.Join(s.root, ownerRef)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment dir for %s: %w", ownerRef, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve attachment ref: %w", err)
	}
	return rel, nil
}
