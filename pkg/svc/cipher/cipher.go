package cipher

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
)

// ErrNotConfigured is returned when encryption is requested without the settings it needs.
var ErrNotConfigured = errors.New("encryption is not configured")

// Cipher encrypts and decrypts whole file contents.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	// Suffix is appended to the names of files this cipher encrypts.
	Suffix() string
}

// New builds the cipher selected by cfg.
func New(cfg *v1alpha1.Config) (Cipher, error) {
	if !cfg.EncryptionConfigured() {
		return nil, fmt.Errorf("%w: %w for backend %q", gisterr.ErrConfig, ErrNotConfigured, cfg.Encryption)
	}

	switch cfg.Encryption {
	case v1alpha1.EncryptionGPG, "":
		return &GPG{
			Command:     cfg.GnupgCommand,
			Homedir:     cfg.GnupgHomedir,
			Fingerprint: cfg.GnupgFingerprint,
		}, nil
	case v1alpha1.EncryptionOpenPGP:
		return &OpenPGP{
			Homedir:     cfg.GnupgHomedir,
			Fingerprint: cfg.GnupgFingerprint,
		}, nil
	case v1alpha1.EncryptionAge:
		return &Age{
			Recipients:   cfg.AgeRecipients,
			IdentityPath: cfg.AgeIdentity,
		}, nil
	default:
		return nil, gisterr.Configf("unknown encryption backend %q", cfg.Encryption)
	}
}
