package gist_test

import (
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"
	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/client/gistapi"
	"github.com/devantler-tech/gist/pkg/client/gistapi/githubtest"
	"github.com/devantler-tech/gist/pkg/svc/cipher"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/devantler-tech/gist/pkg/svc/staging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAgeCipher(t *testing.T) cipher.Cipher {
	t.Helper()

	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte(identity.String()+"\n"), 0o600))

	return &cipher.Age{IdentityPath: path}
}

func newService(t *testing.T, c cipher.Cipher) (*gistsvc.Service, *githubtest.Server) {
	t.Helper()

	server := githubtest.NewServer(t)

	client, err := gistapi.NewGitHubClient(t.Context(), githubtest.DefaultToken, gistapi.WithBaseURL(server.URL))
	require.NoError(t, err)

	stagingOpts := []staging.Option{staging.WithTempRoot(t.TempDir())}

	var opts []gistsvc.Option

	if c != nil {
		stagingOpts = append(stagingOpts, staging.WithCipher(c))
		opts = append(opts, gistsvc.WithCipher(c))
	}

	return gistsvc.NewService(client, staging.NewManager(client, stagingOpts...), opts...), server
}

func TestCreateThenContentRoundTrip(t *testing.T) {
	t.Parallel()

	service, _ := newService(t, nil)

	created, err := service.Create(t.Context(), gistsvc.CreateRequest{
		Description: "note",
		Files:       []v1alpha1.File{{Name: "a.txt", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.VisibilityPrivate, created.Visibility)

	contents, err := service.Content(t.Context(), created.ID, "", false)
	require.NoError(t, err)
	assert.Equal(t, []gistsvc.FileContent{{Name: "a.txt", Content: "hi"}}, contents)
}

func TestCreatePublic(t *testing.T) {
	t.Parallel()

	service, server := newService(t, nil)

	created, err := service.Create(t.Context(), gistsvc.CreateRequest{
		Public: true,
		Files:  []v1alpha1.File{{Name: "a.txt", Content: "hi"}},
	})
	require.NoError(t, err)

	stored, ok := server.Gist(created.ID)
	require.True(t, ok)
	assert.True(t, stored.GetPublic())
}

func TestCreateEncrypted(t *testing.T) {
	t.Parallel()

	ageCipher := newAgeCipher(t)
	service, server := newService(t, ageCipher)

	created, err := service.Create(t.Context(), gistsvc.CreateRequest{
		Encrypt: true,
		Files: []v1alpha1.File{
			{Name: "a.txt", Content: "first"},
			{Name: "b.txt", Content: "second"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt.age", "b.txt.age"}, created.FileNames())

	stored, _ := server.Gist(created.ID)
	for _, file := range stored.Files {
		assert.NotContains(t, file.GetContent(), "first")
		assert.NotContains(t, file.GetContent(), "second")
	}

	contents, err := service.Content(t.Context(), created.ID, "", true)
	require.NoError(t, err)
	assert.Equal(t, []gistsvc.FileContent{
		{Name: "a.txt.age", Content: "first", Decrypted: true},
		{Name: "b.txt.age", Content: "second", Decrypted: true},
	}, contents)

	raw, err := service.Content(t.Context(), created.ID, "a.txt.age", false)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0].Content, "BEGIN AGE ENCRYPTED FILE")
}

func TestCreateEncryptWithoutCipher(t *testing.T) {
	t.Parallel()

	client := gistapi.NewMockClient()
	service := gistsvc.NewService(client, staging.NewManager(client))

	_, err := service.Create(t.Context(), gistsvc.CreateRequest{
		Encrypt: true,
		Files:   []v1alpha1.File{{Name: "a.txt", Content: "x"}},
	})
	require.ErrorIs(t, err, gisterr.ErrConfig)
	require.ErrorIs(t, err, cipher.ErrNotConfigured)
	client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   []v1alpha1.File
		message string
	}{
		{name: "no files", files: nil, message: "at least one file"},
		{name: "empty file", files: []v1alpha1.File{{Name: "a.txt", Content: "  \n"}}, message: "'a.txt' is empty"},
		{
			name:    "duplicate",
			files:   []v1alpha1.File{{Name: "a.txt", Content: "x"}, {Name: "a.txt", Content: "y"}},
			message: "more than once",
		},
		{name: "path", files: []v1alpha1.File{{Name: "dir/a.txt", Content: "x"}}, message: "not a valid file name"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client := gistapi.NewMockClient()
			service := gistsvc.NewService(client, staging.NewManager(client))

			_, err := service.Create(t.Context(), gistsvc.CreateRequest{Files: testCase.files})
			require.ErrorIs(t, err, gisterr.ErrValidation)
			assert.Contains(t, err.Error(), testCase.message)
			client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestContentNamedFile(t *testing.T) {
	t.Parallel()

	service, server := newService(t, nil)
	id := server.Seed(githubtest.DefaultLogin, "", false, map[string]string{"b.txt": "beta", "a.txt": "alpha"})

	all, err := service.Content(t.Context(), id, "", false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a.txt", all[0].Name)

	single, err := service.Content(t.Context(), id, "b.txt", false)
	require.NoError(t, err)
	assert.Equal(t, []gistsvc.FileContent{{Name: "b.txt", Content: "beta"}}, single)

	_, err = service.Content(t.Context(), id, "c.txt", false)
	require.ErrorIs(t, err, gisterr.ErrNotFound)

	_, err = service.Content(t.Context(), id, "", true)
	require.ErrorIs(t, err, gisterr.ErrConfig)
}

func TestFilesAreSorted(t *testing.T) {
	t.Parallel()

	service, server := newService(t, nil)
	id := server.Seed(githubtest.DefaultLogin, "", false, map[string]string{"z": "1", "a": "2", "m": "3"})

	names, err := service.Files(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, names)
}

func TestDeleteThenList(t *testing.T) {
	t.Parallel()

	service, server := newService(t, nil)
	keep := server.Seed(githubtest.DefaultLogin, "keep", false, map[string]string{"a": "1"})
	drop := server.Seed(githubtest.DefaultLogin, "drop", false, map[string]string{"a": "1"})

	deleted, err := service.Delete(t.Context(), drop)
	require.NoError(t, err)
	assert.Equal(t, []string{drop}, deleted)

	gists, err := service.List(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, gists, 1)
	assert.Equal(t, keep, gists[0].ID)
}

func TestDeleteStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	client := gistapi.NewMockClient()
	notFound := &gisterr.APIError{Op: "delete gist b", StatusCode: 404, Kind: gisterr.ErrNotFound}

	client.On("Delete", mock.Anything, "a").Return(nil).Once()
	client.On("Delete", mock.Anything, "b").Return(notFound).Once()

	service := gistsvc.NewService(client, staging.NewManager(client))

	deleted, err := service.Delete(t.Context(), "a", "b", "c")
	require.ErrorIs(t, err, gisterr.ErrNotFound)
	assert.Equal(t, []string{"a"}, deleted)

	client.AssertExpectations(t)
	client.AssertNotCalled(t, "Delete", mock.Anything, "c")
}

func TestDescribeAndFork(t *testing.T) {
	t.Parallel()

	service, server := newService(t, nil)
	own := server.Seed(githubtest.DefaultLogin, "old", false, map[string]string{"a": "1"})
	other := server.Seed("octocat", "shared", true, map[string]string{"b": "2"})

	described, err := service.Describe(t.Context(), own, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", described.Description)

	fork, err := service.Fork(t.Context(), other)
	require.NoError(t, err)
	assert.Equal(t, "shared", fork.Description)
	assert.Equal(t, githubtest.DefaultLogin, fork.Owner)

	_, err = service.Fork(t.Context(), own)
	require.ErrorIs(t, err, gisterr.ErrValidation)
}

func TestCloneRequiresCipherForDecrypt(t *testing.T) {
	t.Parallel()

	client := gistapi.NewMockClient()
	configured := gisterr.Configf("unknown encryption backend %q", "rot13")
	service := gistsvc.NewService(client, staging.NewManager(client), gistsvc.WithCipherError(configured))

	_, err := service.Clone(t.Context(), "abc", filepath.Join(t.TempDir(), "x"), true)
	require.ErrorIs(t, err, configured)
	client.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
