package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
)

// SnapshotFile is the bookkeeping file kept in every working copy. It is never uploaded.
const SnapshotFile = ".gist-snapshot.json"

// State is the lifecycle position of a WorkingCopy.
type State int

// Working copy states.
const (
	StateEmpty State = iota
	StatePopulated
	StateEdited
	StateReconciled
	StateDiscarded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateEdited:
		return "edited"
	case StateReconciled:
		return "reconciled"
	case StateDiscarded:
		return "discarded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Entry tracks one gist file inside a working copy.
type Entry struct {
	// Remote is the file name in the gist.
	Remote string `json:"remote"`
	// Local is the file name on disk; it lacks the cipher suffix when Encrypted.
	Local string `json:"local"`
	// Encrypted is set when the file was decrypted on populate and must be re-encrypted on push.
	Encrypted bool   `json:"encrypted"`
	SHA256    string `json:"sha256"`
}

// Snapshot is the persisted pre-edit state of a working copy.
type Snapshot struct {
	GistID string  `json:"gist_id"`
	Files  []Entry `json:"files"`
}

// WorkingCopy is a directory holding one file per gist file.
type WorkingCopy struct {
	Dir      string
	Gist     *v1alpha1.Gist
	State    State
	Snapshot Snapshot
	// Undecrypted lists files carrying the cipher suffix that were kept
	// as they are because they did not decrypt.
	Undecrypted []string

	temporary bool
}

// LocalNames returns the on-disk file names in gist order.
func (wc *WorkingCopy) LocalNames() []string {
	names := make([]string, 0, len(wc.Snapshot.Files))
	for _, entry := range wc.Snapshot.Files {
		names = append(names, entry.Local)
	}

	return names
}

// Temporary reports whether the directory was created by the manager and may be removed.
func (wc *WorkingCopy) Temporary() bool {
	return wc.temporary
}

func (wc *WorkingCopy) writeSnapshot() error {
	data, err := json.MarshalIndent(wc.Snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	err = os.WriteFile(filepath.Join(wc.Dir, SnapshotFile), append(data, '\n'), filePerm)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)

	return hex.EncodeToString(sum[:])
}
