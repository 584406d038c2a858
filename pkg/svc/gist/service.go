package gist

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/client/gistapi"
	"github.com/devantler-tech/gist/pkg/svc/cipher"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/devantler-tech/gist/pkg/svc/staging"
	"github.com/sirupsen/logrus"
)

// Service runs gist workflows.
type Service struct {
	client    gistapi.Client
	staging   *staging.Manager
	cipher    cipher.Cipher
	cipherErr error
	logger    logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithCipher enables encryption workflows.
func WithCipher(c cipher.Cipher) Option {
	return func(s *Service) {
		s.cipher = c
	}
}

// WithCipherError records why no cipher is available; it is returned when
// a workflow needs one.
func WithCipherError(err error) Option {
	return func(s *Service) {
		s.cipherErr = err
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service.
func NewService(client gistapi.Client, manager *staging.Manager, opts ...Option) *Service {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	service := &Service{
		client:  client,
		staging: manager,
		logger:  discard,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// RequireCipher returns the configured cipher or a ConfigError.
func (s *Service) RequireCipher() (cipher.Cipher, error) {
	if s.cipher != nil {
		return s.cipher, nil
	}

	if s.cipherErr != nil {
		return nil, s.cipherErr
	}

	return nil, fmt.Errorf("%w: %w", gisterr.ErrConfig, cipher.ErrNotConfigured)
}

// CreateRequest describes a gist to create.
type CreateRequest struct {
	Description string
	Public      bool
	Encrypt     bool
	Files       []v1alpha1.File
}

// Create validates and uploads a new gist. With Encrypt every file is
// encrypted before the single create call and gains the cipher suffix.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*v1alpha1.Gist, error) {
	s.logger.WithField("files", len(req.Files)).WithField("encrypt", req.Encrypt).Debug("action: create")

	err := ValidateFiles(req.Files)
	if err != nil {
		return nil, err
	}

	files := req.Files

	if req.Encrypt {
		files, err = s.encryptAll(ctx, req.Files)
		if err != nil {
			return nil, err
		}
	}

	return s.client.Create(ctx, req.Description, v1alpha1.VisibilityFromPublic(req.Public), files)
}

// ValidateFiles rejects an empty file set, empty files, duplicate names and
// names that are not plain file names.
func ValidateFiles(files []v1alpha1.File) error {
	if len(files) == 0 {
		return gisterr.Validationf("a gist needs at least one file")
	}

	seen := make(map[string]bool, len(files))

	for _, file := range files {
		if file.Name == "" || file.Name != filepath.Base(file.Name) || strings.ContainsAny(file.Name, `/\`) {
			return gisterr.Validationf("'%s' is not a valid file name", file.Name)
		}

		if seen[file.Name] {
			return gisterr.Validationf("'%s' is given more than once", file.Name)
		}

		seen[file.Name] = true

		if strings.TrimSpace(file.Content) == "" {
			return gisterr.Validationf("'%s' is empty", file.Name)
		}
	}

	return nil
}

func (s *Service) encryptAll(ctx context.Context, files []v1alpha1.File) ([]v1alpha1.File, error) {
	c, err := s.RequireCipher()
	if err != nil {
		return nil, err
	}

	encrypted := make([]v1alpha1.File, 0, len(files))

	for _, file := range files {
		ciphertext, err := c.Encrypt(ctx, []byte(file.Content))
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt %s: %w", file.Name, err)
		}

		encrypted = append(encrypted, v1alpha1.File{Name: file.Name + c.Suffix(), Content: string(ciphertext)})
	}

	return encrypted, nil
}

// FileContent is one file as shown by `content`.
type FileContent struct {
	Name      string
	Content   string
	Decrypted bool
}

// Content returns the files of gist id, sorted by name, or only filename when
// given. With decrypt, files carrying the cipher suffix are decrypted.
func (s *Service) Content(ctx context.Context, id, filename string, decrypt bool) ([]FileContent, error) {
	s.logger.WithField("id", id).WithField("file", filename).Debug("action: content")

	var c cipher.Cipher

	if decrypt {
		var err error

		c, err = s.RequireCipher()
		if err != nil {
			return nil, err
		}
	}

	gist, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	files := gist.SortedFiles()

	if filename != "" {
		file, ok := gist.Files[filename]
		if !ok {
			return nil, gisterr.NotFoundf("gist %s has no file '%s'", id, filename)
		}

		file.Name = filename
		files = []v1alpha1.File{file}
	}

	contents := make([]FileContent, 0, len(files))

	for _, file := range files {
		content := FileContent{Name: file.Name, Content: file.Content}

		if c != nil && file.HasSuffix(c.Suffix()) {
			plaintext, err := c.Decrypt(ctx, []byte(file.Content))
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt %s: %w", file.Name, err)
			}

			content.Content = string(plaintext)
			content.Decrypted = true
		}

		contents = append(contents, content)
	}

	return contents, nil
}

// List returns the gists of owner, or of the authenticated user.
func (s *Service) List(ctx context.Context, owner string) ([]v1alpha1.Gist, error) {
	s.logger.WithField("owner", owner).Debug("action: list")

	return s.client.List(ctx, owner)
}

// Files returns the sorted file names of gist id.
func (s *Service) Files(ctx context.Context, id string) ([]string, error) {
	s.logger.WithField("id", id).Debug("action: files")

	gist, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return gist.FileNames(), nil
}

// Info returns the full gist model.
func (s *Service) Info(ctx context.Context, id string) (*v1alpha1.Gist, error) {
	s.logger.WithField("id", id).Debug("action: info")

	return s.client.Get(ctx, id)
}

// Delete removes gists in order and stops at the first failure. It returns
// the ids deleted before that failure.
func (s *Service) Delete(ctx context.Context, ids ...string) ([]string, error) {
	s.logger.WithField("ids", ids).Debug("action: delete")

	deleted := make([]string, 0, len(ids))

	for _, id := range ids {
		err := s.client.Delete(ctx, id)
		if err != nil {
			return deleted, err
		}

		deleted = append(deleted, id)
	}

	return deleted, nil
}

// Fork copies gist id into the authenticated user's account.
func (s *Service) Fork(ctx context.Context, id string) (*v1alpha1.Gist, error) {
	s.logger.WithField("id", id).Debug("action: fork")

	return s.client.Fork(ctx, id)
}

// Describe replaces the description of gist id.
func (s *Service) Describe(ctx context.Context, id, description string) (*v1alpha1.Gist, error) {
	s.logger.WithField("id", id).Debug("action: description")

	return s.client.UpdateDescription(ctx, id, description)
}

// Edit opens gist id in the editor and pushes changed files after confirm approves.
func (s *Service) Edit(ctx context.Context, id string, confirm func(question string) bool) (staging.Result, error) {
	s.logger.WithField("id", id).Debug("action: edit")

	return s.staging.EditGist(ctx, id, confirm)
}

// Clone writes gist id into dest (default: the id).
func (s *Service) Clone(ctx context.Context, id, dest string, decrypt bool) (string, error) {
	s.logger.WithField("id", id).WithField("dest", dest).Debug("action: clone")

	if decrypt {
		_, err := s.RequireCipher()
		if err != nil {
			return "", err
		}
	}

	wc, err := s.staging.Clone(ctx, id, dest, decrypt)
	if err != nil {
		return "", err
	}

	return wc.Dir, nil
}

// Archive writes <id>.tar.gz into dir and returns its path.
func (s *Service) Archive(ctx context.Context, id, dir string) (string, error) {
	s.logger.WithField("id", id).WithField("dir", dir).Debug("action: archive")

	return s.staging.Archive(ctx, id, dir)
}

// Compose collects the content of a new file from the editor.
func (s *Service) Compose(ctx context.Context, filename string) (v1alpha1.File, error) {
	content, err := s.staging.Compose(ctx, filename)
	if err != nil {
		return v1alpha1.File{}, err
	}

	return v1alpha1.File{Name: filename, Content: string(content)}, nil
}
