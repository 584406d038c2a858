package cipher

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/devantler-tech/gist/pkg/svc/gisterr"
)

// GPGSuffix marks files encrypted with a PGP backend.
const GPGSuffix = ".asc"

// GPG delegates to an external GnuPG binary.
type GPG struct {
	// Command is the gpg executable, defaulting to "gpg".
	Command     string
	Homedir     string
	Fingerprint string
}

// Suffix implements Cipher.
func (g *GPG) Suffix() string {
	return GPGSuffix
}

// Encrypt implements Cipher.
func (g *GPG) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	if g.Fingerprint == "" {
		return nil, gisterr.Configf("gnupg-fingerprint is required to encrypt")
	}

	return g.run(ctx, "encrypt", plaintext, "--armor", "--encrypt", "--recipient", g.Fingerprint)
}

// Decrypt implements Cipher.
func (g *GPG) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return g.run(ctx, "decrypt", ciphertext, "--decrypt", "--quiet")
}

func (g *GPG) run(ctx context.Context, op string, input []byte, args ...string) ([]byte, error) {
	command := g.Command
	if command == "" {
		command = "gpg"
	}

	args = append([]string{"--homedir", g.Homedir}, args...)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, command, args...) //nolint:gosec // command comes from the user's config
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return nil, gisterr.Encryptionf("%s %s failed: %v: %s",
			command, op, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}
