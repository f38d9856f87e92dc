package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource reads hint and answer resources from the served static
// directory on disk. Used when the assets are co-located with the
// frontend instead of on a remote host.
type DirSource struct {
	root string
}

// NewDirSource creates an asset source rooted at the given directory.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

// Hint returns the hint text for the identifier.
func (s *DirSource) Hint(_ context.Context, id string) (string, error) {
	return s.read(HintPath(id))
}

// Answer returns the expected answer text for the identifier.
func (s *DirSource) Answer(_ context.Context, id string) (string, error) {
	return s.read(AnswerPath(id))
}

func (s *DirSource) read(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}
