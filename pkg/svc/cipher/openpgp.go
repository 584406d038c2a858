package cipher

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
)

// Keyring file names looked up inside the OpenPGP home directory.
const (
	PublicKeyringFile  = "public.asc"
	PrivateKeyringFile = "private.asc"
)

const messageType = "PGP MESSAGE"

// OpenPGP encrypts in-process with armored keyrings exported from GnuPG:
//
//	gpg --armor --export FPR > $HOMEDIR/public.asc
//	gpg --armor --export-secret-keys FPR > $HOMEDIR/private.asc
//
// Passphrase-protected private keys are not supported.
type OpenPGP struct {
	Homedir     string
	Fingerprint string
}

// Suffix implements Cipher.
func (o *OpenPGP) Suffix() string {
	return GPGSuffix
}

// Encrypt implements Cipher.
func (o *OpenPGP) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	keyring, err := readKeyRing(filepath.Join(o.Homedir, PublicKeyringFile))
	if err != nil {
		return nil, err
	}

	recipients := selectRecipients(keyring, o.Fingerprint)
	if len(recipients) == 0 {
		return nil, gisterr.Encryptionf("no public key matches fingerprint %q", o.Fingerprint)
	}

	var buf bytes.Buffer

	armored, err := armor.Encode(&buf, messageType, nil)
	if err != nil {
		return nil, gisterr.Encryptionf("armor: %v", err)
	}

	writer, err := openpgp.Encrypt(armored, recipients, nil, nil, nil)
	if err != nil {
		return nil, gisterr.Encryptionf("openpgp encrypt: %v", err)
	}

	_, err = writer.Write(plaintext)
	if err != nil {
		return nil, gisterr.Encryptionf("openpgp encrypt: %v", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, gisterr.Encryptionf("openpgp encrypt: %v", err)
	}

	err = armored.Close()
	if err != nil {
		return nil, gisterr.Encryptionf("armor: %v", err)
	}

	return buf.Bytes(), nil
}

// Decrypt implements Cipher.
func (o *OpenPGP) Decrypt(_ context.Context, ciphertext []byte) ([]byte, error) {
	keyring, err := readKeyRing(filepath.Join(o.Homedir, PrivateKeyringFile))
	if err != nil {
		return nil, err
	}

	block, err := armor.Decode(bytes.NewReader(ciphertext))
	if err != nil {
		return nil, gisterr.Encryptionf("content is not an armored PGP message: %v", err)
	}

	message, err := openpgp.ReadMessage(block.Body, keyring, nil, nil)
	if err != nil {
		return nil, gisterr.Encryptionf("openpgp decrypt: %v", err)
	}

	plaintext, err := io.ReadAll(message.UnverifiedBody)
	if err != nil {
		return nil, gisterr.Encryptionf("openpgp decrypt: %v", err)
	}

	return plaintext, nil
}

func readKeyRing(path string) (openpgp.EntityList, error) {
	file, err := os.Open(path) //nolint:gosec // keyring path comes from the user's config
	if err != nil {
		return nil, gisterr.Encryptionf("unable to open keyring: %v", err)
	}

	defer func() { _ = file.Close() }()

	keyring, err := openpgp.ReadArmoredKeyRing(file)
	if err != nil {
		return nil, gisterr.Encryptionf("unable to read keyring %s: %v", path, err)
	}

	return keyring, nil
}

// selectRecipients returns the entities whose primary fingerprint ends with
// fingerprint, so long key ids work too. An empty fingerprint selects all.
func selectRecipients(keyring openpgp.EntityList, fingerprint string) openpgp.EntityList {
	want := strings.ToUpper(strings.ReplaceAll(fingerprint, " ", ""))
	if want == "" {
		return keyring
	}

	var matched openpgp.EntityList

	for _, entity := range keyring {
		have := strings.ToUpper(hex.EncodeToString(entity.PrimaryKey.Fingerprint))
		if strings.HasSuffix(have, want) {
			matched = append(matched, entity)
		}
	}

	return matched
}
