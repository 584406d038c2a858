package staging

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
)

// Diff is the difference between a working copy and its snapshot.
type Diff struct {
	// Changed holds the entries whose content hash differs, with their new local content.
	Changed []Change
	// Missing lists tracked files removed from the directory. They are not deleted remotely.
	Missing []string
	// Untracked lists files present on disk but absent from the gist. They are not uploaded.
	Untracked []string
}

// Change is a modified file.
type Change struct {
	Entry   Entry
	Content []byte
}

// Result summarizes a reconcile.
type Result struct {
	Diff
	// Pushed reports whether an update call was made.
	Pushed bool
	// Declined reports whether the confirmation policy rejected the push.
	Declined bool
	// Undecrypted lists suffixed files that did not decrypt and were edited as they are.
	Undecrypted []string
}

// ChangedNames returns the remote names of changed files.
func (d Diff) ChangedNames() []string {
	names := make([]string, 0, len(d.Changed))
	for _, change := range d.Changed {
		names = append(names, change.Entry.Remote)
	}

	return names
}

// Edit opens the working copy in the editor and blocks until it exits.
func (m *Manager) Edit(ctx context.Context, wc *WorkingCopy) error {
	if wc.State != StatePopulated {
		return fmt.Errorf("%w: cannot edit a %s working copy", ErrInvalidState, wc.State)
	}

	if m.editor == nil {
		return ErrNoEditor
	}

	err := m.editor.Open(ctx, wc.Dir, wc.LocalNames())
	if err != nil {
		return err
	}

	wc.State = StateEdited

	return nil
}

// Compare hashes every tracked file and reports what changed.
func (m *Manager) Compare(wc *WorkingCopy) (Diff, error) {
	var diff Diff

	tracked := make(map[string]bool, len(wc.Snapshot.Files)+1)
	tracked[SnapshotFile] = true

	for _, entry := range wc.Snapshot.Files {
		tracked[entry.Local] = true

		content, err := os.ReadFile(filepath.Join(wc.Dir, entry.Local))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				diff.Missing = append(diff.Missing, entry.Local)

				continue
			}

			return diff, fmt.Errorf("failed to read %s: %w", entry.Local, err)
		}

		if hashContent(content) != entry.SHA256 {
			diff.Changed = append(diff.Changed, Change{Entry: entry, Content: content})
		}
	}

	dirEntries, err := os.ReadDir(wc.Dir)
	if err != nil {
		return diff, fmt.Errorf("failed to list working copy: %w", err)
	}

	for _, dirEntry := range dirEntries {
		if !tracked[dirEntry.Name()] {
			diff.Untracked = append(diff.Untracked, dirEntry.Name())
		}
	}

	slices.Sort(diff.Untracked)

	return diff, nil
}

// Reconcile pushes the files changed since populate. Nothing is sent when
// nothing changed or when confirm declines. All re-encryption happens before
// the single update call, so a cipher failure leaves the remote untouched.
// A nil confirm approves.
func (m *Manager) Reconcile(ctx context.Context, wc *WorkingCopy, confirm func(question string) bool) (Result, error) {
	if wc.State != StateEdited {
		return Result{}, fmt.Errorf("%w: cannot reconcile a %s working copy", ErrInvalidState, wc.State)
	}

	diff, err := m.Compare(wc)
	if err != nil {
		return Result{}, err
	}

	result := Result{Diff: diff}

	for _, name := range diff.Missing {
		m.logger.WithField("file", name).Warn("file removed locally; the remote file is kept")
	}

	for _, name := range diff.Untracked {
		m.logger.WithField("file", name).Warn("new file is not part of the gist; ignoring it")
	}

	if len(diff.Changed) == 0 {
		wc.State = StateReconciled

		return result, nil
	}

	files, err := m.outgoing(ctx, diff.Changed)
	if err != nil {
		return result, err
	}

	if confirm != nil && !confirm(fmt.Sprintf("Push changes to gist %s?", wc.Snapshot.GistID)) {
		wc.State = StateDiscarded
		result.Declined = true

		return result, nil
	}

	updated, err := m.client.Update(ctx, wc.Snapshot.GistID, files)
	if err != nil {
		return result, err
	}

	wc.Gist = updated
	wc.State = StateReconciled
	result.Pushed = true

	m.logger.WithField("files", diff.ChangedNames()).Debug("pushed working copy")

	return result, nil
}

func (m *Manager) outgoing(ctx context.Context, changes []Change) ([]v1alpha1.File, error) {
	files := make([]v1alpha1.File, 0, len(changes))

	for _, change := range changes {
		content := change.Content

		if change.Entry.Encrypted {
			if m.cipher == nil {
				return nil, fmt.Errorf("%w: %s was decrypted without a cipher", ErrInvalidState, change.Entry.Remote)
			}

			ciphertext, err := m.cipher.Encrypt(ctx, content)
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt %s: %w", change.Entry.Local, err)
			}

			content = ciphertext
		}

		files = append(files, v1alpha1.File{Name: change.Entry.Remote, Content: string(content)})
	}

	return files, nil
}

// Cleanup removes a temporary working copy unless tempfiles are retained.
// Directories the caller named (clone targets) are never removed.
func (m *Manager) Cleanup(wc *WorkingCopy) error {
	if wc == nil || !wc.temporary {
		return nil
	}

	if m.keep {
		m.logger.WithField("dir", wc.Dir).Info("keeping working copy")

		return nil
	}

	err := os.RemoveAll(wc.Dir)
	if err != nil {
		return fmt.Errorf("failed to remove working copy: %w", err)
	}

	if wc.State != StateReconciled {
		wc.State = StateDiscarded
	}

	return nil
}

// EditGist runs the full edit workflow: populate (decrypting when a cipher
// is configured), edit, reconcile, cleanup. A file that carries the cipher
// suffix but does not decrypt is edited as it is and listed in
// Result.Undecrypted.
func (m *Manager) EditGist(ctx context.Context, id string, confirm func(question string) bool) (Result, error) {
	mode := decryptNone
	if m.cipher != nil {
		mode = decryptLenient
	}

	wc, err := m.populate(ctx, id, "", mode)
	if err != nil {
		return Result{}, err
	}

	defer func() {
		cleanupErr := m.Cleanup(wc)
		if cleanupErr != nil {
			m.logger.WithError(cleanupErr).Warn("cleanup failed")
		}
	}()

	err = m.Edit(ctx, wc)
	if err != nil {
		return Result{}, err
	}

	result, err := m.Reconcile(ctx, wc, confirm)
	result.Undecrypted = wc.Undecrypted

	return result, err
}

// Clone materializes gist id into dest, which must not exist.
func (m *Manager) Clone(ctx context.Context, id, dest string, decrypt bool) (*WorkingCopy, error) {
	if dest == "" {
		dest = id
	}

	return m.Populate(ctx, id, dest, decrypt)
}
