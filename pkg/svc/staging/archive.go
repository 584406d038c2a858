package staging

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/devantler-tech/gist/pkg/svc/gisterr"
)

// ArchiveSuffix is appended to the gist id to name archives.
const ArchiveSuffix = ".tar.gz"

// Archive populates gist id into a temporary working copy, packs its files
// into <id>.tar.gz under a top-level <id>/ directory, and moves the archive
// into destDir. An existing archive is never overwritten.
func (m *Manager) Archive(ctx context.Context, id, destDir string) (string, error) {
	if destDir == "" {
		destDir = "."
	}

	target := filepath.Join(destDir, id+ArchiveSuffix)

	_, err := os.Lstat(target)
	if err == nil {
		return "", gisterr.Validationf("%s already exists", target)
	}

	wc, err := m.Populate(ctx, id, "", false)
	if err != nil {
		return "", err
	}

	defer func() {
		cleanupErr := m.Cleanup(wc)
		if cleanupErr != nil {
			m.logger.WithError(cleanupErr).Warn("cleanup failed")
		}
	}()

	staged, err := os.CreateTemp(m.tempRoot, "gist-"+id+"-*"+ArchiveSuffix)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	stagedPath := staged.Name()
	defer func() { _ = os.Remove(stagedPath) }()

	err = writeArchive(staged, wc)
	closeErr := staged.Close()

	if err != nil {
		return "", err
	}

	if closeErr != nil {
		return "", fmt.Errorf("failed to close archive: %w", closeErr)
	}

	err = moveFile(stagedPath, target)
	if err != nil {
		return "", err
	}

	wc.State = StateReconciled

	return target, nil
}

func writeArchive(w io.Writer, wc *WorkingCopy) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	root := wc.Snapshot.GistID

	err := tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     root + "/",
		Mode:     dirPerm,
		ModTime:  archiveTime(wc),
	})
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	for _, entry := range wc.Snapshot.Files {
		err = addFile(tw, filepath.Join(wc.Dir, entry.Local), root+"/"+entry.Local, wc)
		if err != nil {
			return err
		}
	}

	err = tw.Close()
	if err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	err = gz.Close()
	if err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	return nil
}

func addFile(tw *tar.Writer, path, name string, wc *WorkingCopy) error {
	content, err := os.ReadFile(path) //nolint:gosec // path is inside the working copy
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	err = tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     filePerm,
		Size:     int64(len(content)),
		ModTime:  archiveTime(wc),
	})
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	_, err = tw.Write(content)
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// moveFile renames src to dst, copying when they live on different filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return fmt.Errorf("failed to move archive: %w", err)
	}

	in, err := os.Open(src) //nolint:gosec // src is our staged archive
	if err != nil {
		return fmt.Errorf("failed to move archive: %w", err)
	}

	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm) //nolint:gosec // dst is the requested target
	if err != nil {
		return fmt.Errorf("failed to move archive: %w", err)
	}

	_, err = io.Copy(out, in)
	closeErr := out.Close()

	if err != nil {
		return fmt.Errorf("failed to move archive: %w", err)
	}

	if closeErr != nil {
		return fmt.Errorf("failed to move archive: %w", closeErr)
	}

	return nil
}

func archiveTime(wc *WorkingCopy) time.Time {
	if wc.Gist == nil || wc.Gist.UpdatedAt.IsZero() {
		return time.Unix(0, 0)
	}

	return wc.Gist.UpdatedAt
}
