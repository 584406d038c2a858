// Package cipher encrypts and decrypts gist file contents.
//
// Three backends are available, selected by the `encryption` config key:
// gpg shells out to the GnuPG binary, openpgp reads armored keyrings with
// ProtonMail/go-crypto, and age uses filippo.io/age X25519 keys. All
// backends produce ASCII-armored ciphertext so results stay valid gist text.
package cipher
