package staging

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/gist/pkg/svc/cipher"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
)

type decryptMode int

const (
	decryptNone decryptMode = iota
	// decryptStrict fails the populate on the first file that does not decrypt.
	decryptStrict
	// decryptLenient keeps files that do not decrypt as they are.
	decryptLenient
)

// Populate fetches gist id and writes its files into dir. An empty dir
// creates a temporary directory; otherwise dir must not exist yet. With
// decrypt, files carrying the cipher suffix are written decrypted under the
// unmarked name.
func (m *Manager) Populate(ctx context.Context, id, dir string, decrypt bool) (*WorkingCopy, error) {
	mode := decryptNone
	if decrypt {
		mode = decryptStrict
	}

	return m.populate(ctx, id, dir, mode)
}

func (m *Manager) populate(ctx context.Context, id, dir string, mode decryptMode) (*WorkingCopy, error) {
	if mode != decryptNone && m.cipher == nil {
		return nil, fmt.Errorf("%w: %w", gisterr.ErrConfig, cipher.ErrNotConfigured)
	}

	gist, err := m.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wc := &WorkingCopy{Gist: gist, State: StateEmpty, Snapshot: Snapshot{GistID: gist.ID}}

	entries, contents, err := m.prepare(ctx, wc, mode)
	if err != nil {
		return nil, err
	}

	err = m.createDir(wc, dir)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		err = os.WriteFile(filepath.Join(wc.Dir, entry.Local), contents[i], filePerm)
		if err != nil {
			m.discard(wc)

			return nil, fmt.Errorf("failed to write %s: %w", entry.Local, err)
		}
	}

	wc.Snapshot.Files = entries

	err = wc.writeSnapshot()
	if err != nil {
		m.discard(wc)

		return nil, err
	}

	wc.State = StatePopulated

	m.logger.WithField("dir", wc.Dir).WithField("files", len(entries)).Debug("populated working copy")

	return wc, nil
}

// prepare decrypts everything up front so a failure leaves no directory behind.
func (m *Manager) prepare(ctx context.Context, wc *WorkingCopy, mode decryptMode) ([]Entry, [][]byte, error) {
	files := wc.Gist.SortedFiles()
	taken := make(map[string]bool, len(files))

	for _, file := range files {
		err := validateLocalName(file.Name)
		if err != nil {
			return nil, nil, err
		}

		taken[file.Name] = true
	}

	entries := make([]Entry, 0, len(files))
	contents := make([][]byte, 0, len(files))

	for _, file := range files {
		entry := Entry{Remote: file.Name, Local: file.Name}
		content := []byte(file.Content)

		if mode != decryptNone && file.HasSuffix(m.cipher.Suffix()) {
			local := strings.TrimSuffix(file.Name, m.cipher.Suffix())

			if taken[local] {
				m.logger.WithField("file", file.Name).Warn("decrypted name collides with another file; keeping it encrypted")
			} else {
				plaintext, err := m.cipher.Decrypt(ctx, content)

				switch {
				case err == nil:
					taken[local] = true
					entry.Local = local
					entry.Encrypted = true
					content = plaintext
				case mode == decryptStrict || ctx.Err() != nil:
					return nil, nil, fmt.Errorf("failed to decrypt %s: %w", file.Name, err)
				default:
					m.logger.WithField("file", file.Name).WithError(err).Warn("unable to decrypt; keeping it as is")
					wc.Undecrypted = append(wc.Undecrypted, file.Name)
				}
			}
		}

		entry.SHA256 = hashContent(content)
		entries = append(entries, entry)
		contents = append(contents, content)
	}

	return entries, contents, nil
}

func (m *Manager) createDir(wc *WorkingCopy, dir string) error {
	if dir == "" {
		tempDir, err := os.MkdirTemp(m.tempRoot, "gist-"+wc.Snapshot.GistID+"-")
		if err != nil {
			return fmt.Errorf("failed to create working directory: %w", err)
		}

		wc.Dir = tempDir
		wc.temporary = true

		return nil
	}

	err := os.Mkdir(dir, dirPerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return gisterr.Validationf("destination %q already exists", dir)
		}

		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	wc.Dir = dir

	return nil
}

// discard removes a directory the manager created during a failed populate.
func (m *Manager) discard(wc *WorkingCopy) {
	if wc.Dir != "" {
		_ = os.RemoveAll(wc.Dir)
	}

	wc.State = StateDiscarded
}

func validateLocalName(name string) error {
	if name == "" || name == "." || name == ".." || name == SnapshotFile ||
		strings.ContainsAny(name, `/\`) {
		return gisterr.Validationf("gist file name %q cannot be written to disk", name)
	}

	return nil
}
