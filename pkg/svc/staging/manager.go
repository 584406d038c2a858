package staging

import (
	"errors"
	"io"

	"github.com/devantler-tech/gist/pkg/cli/editor"
	"github.com/devantler-tech/gist/pkg/client/gistapi"
	"github.com/devantler-tech/gist/pkg/svc/cipher"
	"github.com/sirupsen/logrus"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Errors returned by the manager.
var (
	// ErrInvalidState is returned when an operation is applied to a working copy in the wrong state.
	ErrInvalidState = errors.New("working copy is in the wrong state")
	ErrNoEditor     = errors.New("no editor configured")
)

// Manager creates, edits, reconciles and cleans up working copies.
type Manager struct {
	client   gistapi.Client
	cipher   cipher.Cipher
	editor   editor.Editor
	logger   logrus.FieldLogger
	keep     bool
	tempRoot string
}

// Option configures a Manager.
type Option func(*Manager)

// WithCipher enables decryption on populate and re-encryption on reconcile.
func WithCipher(c cipher.Cipher) Option {
	return func(m *Manager) {
		m.cipher = c
	}
}

// WithEditor sets the editor used by Edit and Compose.
func WithEditor(e editor.Editor) Option {
	return func(m *Manager) {
		m.editor = e
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithKeepTempfiles retains temporary working copies after use.
func WithKeepTempfiles(keep bool) Option {
	return func(m *Manager) {
		m.keep = keep
	}
}

// WithTempRoot sets the parent directory for temporary working copies.
func WithTempRoot(dir string) Option {
	return func(m *Manager) {
		m.tempRoot = dir
	}
}

// NewManager creates a staging manager backed by client.
func NewManager(client gistapi.Client, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	manager := &Manager{
		client: client,
		logger: discard,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// Cipher returns the configured cipher, or nil.
func (m *Manager) Cipher() cipher.Cipher {
	return m.cipher
}
