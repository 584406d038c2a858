package cipher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
)

// AgeSuffix marks files encrypted with age.
const AgeSuffix = ".age"

var errAppDataNotSet = errors.New("AppData environment variable not set")

// Age encrypts to X25519 recipients and decrypts with an identity file.
// When no recipients are configured, the identities' own recipients are used.
type Age struct {
	Recipients []string
	// IdentityPath defaults to the SOPS age key file.
	IdentityPath string
}

// Suffix implements Cipher.
func (a *Age) Suffix() string {
	return AgeSuffix
}

// Encrypt implements Cipher.
func (a *Age) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	recipients, err := a.recipients()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	armored := armor.NewWriter(&buf)

	writer, err := age.Encrypt(armored, recipients...)
	if err != nil {
		return nil, gisterr.Encryptionf("age encrypt: %v", err)
	}

	_, err = writer.Write(plaintext)
	if err != nil {
		return nil, gisterr.Encryptionf("age encrypt: %v", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, gisterr.Encryptionf("age encrypt: %v", err)
	}

	err = armored.Close()
	if err != nil {
		return nil, gisterr.Encryptionf("age armor: %v", err)
	}

	return buf.Bytes(), nil
}

// Decrypt implements Cipher.
func (a *Age) Decrypt(_ context.Context, ciphertext []byte) ([]byte, error) {
	identities, err := a.identities()
	if err != nil {
		return nil, err
	}

	reader, err := age.Decrypt(armor.NewReader(bytes.NewReader(ciphertext)), identities...)
	if err != nil {
		return nil, gisterr.Encryptionf("age decrypt: %v", err)
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, gisterr.Encryptionf("age decrypt: %v", err)
	}

	return plaintext, nil
}

func (a *Age) recipients() ([]age.Recipient, error) {
	recipients := make([]age.Recipient, 0, len(a.Recipients))

	for _, value := range a.Recipients {
		recipient, err := age.ParseX25519Recipient(value)
		if err != nil {
			return nil, gisterr.Configf("invalid age recipient %q: %v", value, err)
		}

		recipients = append(recipients, recipient)
	}

	if len(recipients) > 0 {
		return recipients, nil
	}

	identities, err := a.identities()
	if err != nil {
		return nil, err
	}

	for _, identity := range identities {
		if x25519, ok := identity.(*age.X25519Identity); ok {
			recipients = append(recipients, x25519.Recipient())
		}
	}

	if len(recipients) == 0 {
		return nil, gisterr.Configf("no age recipients configured")
	}

	return recipients, nil
}

func (a *Age) identities() ([]age.Identity, error) {
	path := a.IdentityPath
	if path == "" {
		defaultPath, err := DefaultAgeIdentityPath()
		if err != nil {
			return nil, gisterr.Configf("%v", err)
		}

		path = defaultPath
	}

	file, err := os.Open(path) //nolint:gosec // identity path comes from the user's config
	if err != nil {
		return nil, gisterr.Encryptionf("unable to open age identity: %v", err)
	}

	defer func() { _ = file.Close() }()

	identities, err := age.ParseIdentities(file)
	if err != nil {
		return nil, gisterr.Encryptionf("unable to parse age identity %s: %v", path, err)
	}

	return identities, nil
}

// DefaultAgeIdentityPath returns the age key file shared with SOPS.
func DefaultAgeIdentityPath() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "sops", "age", "keys.txt"), nil
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("AppData")
		if appData == "" {
			return "", errAppDataNotSet
		}

		return filepath.Join(appData, "sops", "age", "keys.txt"), nil
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}

		return filepath.Join(homeDir, "Library", "Application Support", "sops", "age", "keys.txt"), nil
	default:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}

		return filepath.Join(homeDir, ".config", "sops", "age", "keys.txt"), nil
	}
}
