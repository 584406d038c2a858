package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Compose opens an empty scratch file named filename in the editor and
// returns what the user wrote. The scratch directory is always removed.
func (m *Manager) Compose(ctx context.Context, filename string) ([]byte, error) {
	if m.editor == nil {
		return nil, ErrNoEditor
	}

	err := validateLocalName(filename)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(m.tempRoot, "gist-new-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, filename)

	err = os.WriteFile(path, nil, filePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}

	err = m.editor.Open(ctx, dir, []string{filename})
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is inside our scratch directory
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return content, nil
}
