package cmd_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/cli/cmd"
	"github.com/devantler-tech/gist/pkg/cli/ui/confirm"
	"github.com/devantler-tech/gist/pkg/client/gistapi/githubtest"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/google/go-github/v72/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

// harness runs the real command tree against an in-memory gist API.
type harness struct {
	server *githubtest.Server
	config string
}

func newHarness(t *testing.T, extraConfig string) *harness {
	t.Helper()

	server := githubtest.NewServer(t)
	config := filepath.Join(t.TempDir(), "gist.ini")

	content := "[gist]\ntoken = " + server.Token + "\napi-url = " + server.APIURL() + "\n" + extraConfig
	require.NoError(t, os.WriteFile(config, []byte(content), 0o600))

	return &harness{server: server, config: config}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", h.config}, args...))

	err := cmd.Execute(t.Context(), root)

	return out.String(), err
}

func (h *harness) content(t *testing.T, id, name string) string {
	t.Helper()

	gist, ok := h.server.Gist(id)
	require.True(t, ok, "gist %s exists", id)

	file, ok := gist.Files[github.GistFilename(name)]
	require.True(t, ok, "gist %s has %s", id, name)

	return file.GetContent()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func createdID(t *testing.T, out string) string {
	t.Helper()

	url := strings.TrimSpace(out)
	require.NotEmpty(t, url)

	return path.Base(url)
}

func TestCreateThenContent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	dir := t.TempDir()

	out, err := h.run(t, "", "create", "note",
		writeFile(t, dir, "b.txt", "there\n"),
		writeFile(t, dir, "a.txt", "hi"),
	)
	require.NoError(t, err)

	id := createdID(t, out)
	gist, ok := h.server.Gist(id)
	require.True(t, ok)
	assert.Equal(t, "note", gist.GetDescription())
	assert.False(t, gist.GetPublic())

	out, err = h.run(t, "", "content", id)
	require.NoError(t, err)
	assert.Equal(t, "a.txt:\nhi\nb.txt:\nthere\n\n", out)

	out, err = h.run(t, "", "content", id, "b.txt")
	require.NoError(t, err)
	assert.Equal(t, "there\n", out)

	out, err = h.run(t, "", "files", id)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nb.txt\n", out)
}

func TestCreateFromStdin(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	out, err := h.run(t, "echo hello\n", "create", "--public", "--filename", "hello.sh", "script")
	require.NoError(t, err)

	id := createdID(t, out)
	gist, ok := h.server.Gist(id)
	require.True(t, ok)
	assert.True(t, gist.GetPublic())
	assert.Equal(t, "echo hello\n", h.content(t, id, "hello.sh"))

	out, err = h.run(t, "plain", "create", "default name")
	require.NoError(t, err)
	assert.Equal(t, "plain", h.content(t, createdID(t, out), cmd.DefaultFilename))
}

func TestCreateRejectsBadInput(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	dir := t.TempDir()

	tests := []struct {
		name  string
		stdin string
		args  []string
		msg   string
	}{
		{name: "empty stdin", stdin: "  \n", args: []string{"create", "empty"}, msg: "'file1.txt' is empty"},
		{
			name: "duplicate base names",
			args: []string{
				"create", "dup",
				writeFile(t, dir, "same.txt", "one"),
				writeFile(t, t.TempDir(), "same.txt", "two"),
			},
			msg: "more than once",
		},
		{name: "unreadable file", args: []string{"create", "missing", filepath.Join(dir, "nope.txt")}, msg: "nope.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.run(t, tc.stdin, tc.args...)
			require.ErrorIs(t, err, gisterr.ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}

	assert.Zero(t, h.server.CountRequests(http.MethodPost))
	assert.Zero(t, h.server.Len())
}

func TestCreateEncryptRequiresConfiguration(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	_, err := h.run(t, "secret", "create", "--encrypt", "secret")
	require.ErrorIs(t, err, gisterr.ErrConfig)
	assert.Zero(t, h.server.CountRequests(http.MethodPost))
}

func TestCreateEncryptedAndDecryptContent(t *testing.T) {
	t.Parallel()

	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	identityPath := writeFile(t, t.TempDir(), "keys.txt", identity.String()+"\n")
	h := newHarness(t, "encryption = age\nage-identity = "+identityPath+"\n")

	out, err := h.run(t, "top secret", "create", "--encrypt", "--filename", "s.txt", "vault")
	require.NoError(t, err)

	id := createdID(t, out)
	stored := h.content(t, id, "s.txt.age")
	assert.NotContains(t, stored, "top secret")

	out, err = h.run(t, "", "content", "--decrypt", id)
	require.NoError(t, err)
	assert.Equal(t, "s.txt.age (decrypted):\ntop secret\n", out)

	out, err = h.run(t, "", "content", id)
	require.NoError(t, err)
	assert.Equal(t, "s.txt.age:\n"+stored+"\n", out)
}

func TestContentUnknownFile(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{"a.txt": "a"})

	_, err := h.run(t, "", "content", id, "b.txt")
	require.ErrorIs(t, err, gisterr.ErrNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	public := h.server.Seed(h.server.Login, "shared notes", true, map[string]string{"a.txt": "a"})
	secret := h.server.Seed(h.server.Login, "private notes", false, map[string]string{"b.txt": "b"})
	other := h.server.Seed("octocat", "octo notes", true, map[string]string{"c.txt": "c"})

	out, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, public+" + shared notes\n")
	assert.Contains(t, out, secret+" - private notes\n")
	assert.NotContains(t, out, other)

	out, err = h.run(t, "", "list", "--user", "octocat")
	require.NoError(t, err)
	assert.Equal(t, other+" + octo notes\n", out)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	first := h.server.Seed(h.server.Login, "one", false, map[string]string{"a.txt": "a"})
	second := h.server.Seed(h.server.Login, "two", false, map[string]string{"b.txt": "b"})

	_, err := h.run(t, "", "delete", first, "0000", second)
	require.ErrorIs(t, err, gisterr.ErrNotFound)

	_, ok := h.server.Gist(first)
	assert.False(t, ok, "gists before the failure are deleted")

	_, ok = h.server.Gist(second)
	assert.True(t, ok, "gists after the failure are kept")

	out, err := h.run(t, "", "delete", second)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted gist "+second)

	out, err = h.run(t, "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, second)
}

func TestInfo(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "described", true, map[string]string{"a.txt": "alpha"})

	out, err := h.run(t, "", "info", id)
	require.NoError(t, err)

	var fromJSON v1alpha1.Gist
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	assert.Equal(t, id, fromJSON.ID)
	assert.Equal(t, v1alpha1.VisibilityPublic, fromJSON.Visibility)
	assert.Equal(t, "alpha", fromJSON.Files["a.txt"].Content)

	out, err = h.run(t, "", "info", "--output", "yaml", id)
	require.NoError(t, err)

	var fromYAML v1alpha1.Gist
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	assert.Equal(t, "described", fromYAML.Description)
}

func TestDescription(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "old", false, map[string]string{"a.txt": "a"})

	_, err := h.run(t, "", "description", id, "brand", "new")
	require.NoError(t, err)

	gist, ok := h.server.Gist(id)
	require.True(t, ok)
	assert.Equal(t, "brand new", gist.GetDescription())
	assert.Equal(t, "a", h.content(t, id, "a.txt"))
}

func TestFork(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	id := h.server.Seed("octocat", "theirs", true, map[string]string{"a.txt": "a"})

	out, err := h.run(t, "", "fork", id)
	require.NoError(t, err)

	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	assert.NotEqual(t, id, fields[0])
	assert.Equal(t, 2, h.server.Len())

	_, err = h.run(t, "", "fork", fields[0])
	require.ErrorIs(t, err, gisterr.ErrValidation, "forking your own gist is rejected")
}

func TestEdit(t *testing.T) {
	t.Parallel()

	script := writeFile(t, t.TempDir(), "edit.sh", "for f in \"$@\"; do printf 'edited\\n' >> \"$f\"; done\n")

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{"a.txt": "hello\n"})

	out, err := h.run(t, "", "edit", "--yes", "--editor", "sh "+script, id)
	require.NoError(t, err)
	assert.Contains(t, out, "opening gist "+id+" in the editor")
	assert.Contains(t, out, "updated 1 file(s) in gist "+id)
	assert.Equal(t, "hello\nedited\n", h.content(t, id, "a.txt"))
	assert.Equal(t, 1, h.server.CountRequests(http.MethodPatch))
}

func TestEditKeepsUndecryptableFile(t *testing.T) {
	t.Parallel()

	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	identityPath := writeFile(t, t.TempDir(), "keys.txt", identity.String()+"\n")
	script := writeFile(t, t.TempDir(), "edit.sh", "for f in \"$@\"; do printf 'edited\\n' >> \"$f\"; done\n")

	h := newHarness(t, "encryption = age\nage-identity = "+identityPath+"\n")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{
		"notes.age": "not ciphertext\n",
		"a.txt":     "hello\n",
	})

	out, err := h.run(t, "", "edit", "--yes", "--editor", "sh "+script, id)
	require.NoError(t, err)
	assert.Contains(t, out, "'notes.age' could not be decrypted and was edited as is")
	assert.Contains(t, out, "updated 2 file(s) in gist "+id)
	assert.Equal(t, "not ciphertext\nedited\n", h.content(t, id, "notes.age"))
	assert.Equal(t, "hello\nedited\n", h.content(t, id, "a.txt"))
}

func TestEditWithoutChangesSendsNothing(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "editor = true\n")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{"a.txt": "hello\n"})

	out, err := h.run(t, "", "edit", "--yes", id)
	require.NoError(t, err)
	assert.Contains(t, out, "no changes to gist "+id)
	assert.Zero(t, h.server.CountRequests(http.MethodPatch))
}

// Not parallel: overrides the process-wide confirmation input.
func TestEditDeclined(t *testing.T) {
	restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return true })
	defer restoreTTY()

	restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader("n\n"))
	defer restoreStdin()

	script := writeFile(t, t.TempDir(), "edit.sh", "for f in \"$@\"; do printf 'edited\\n' >> \"$f\"; done\n")

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{"a.txt": "hello\n"})

	out, err := h.run(t, "", "edit", "--editor", "sh "+script, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Push changes to gist "+id+"? [y/N]")
	assert.Contains(t, out, "were not pushed")
	assert.Zero(t, h.server.CountRequests(http.MethodPatch))
	assert.Equal(t, "hello\n", h.content(t, id, "a.txt"))
}

func TestClone(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{"a.txt": "alpha", "b.txt": "beta"})
	dest := filepath.Join(t.TempDir(), "copy")

	out, err := h.run(t, "", "clone", id, dest)
	require.NoError(t, err)
	assert.Contains(t, out, "cloned gist "+id)

	data, err := os.ReadFile(filepath.Join(dest, "b.txt")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))

	_, err = h.run(t, "", "clone", id, dest)
	require.ErrorIs(t, err, gisterr.ErrValidation, "an existing directory is never reused")
}

func TestArchive(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	id := h.server.Seed(h.server.Login, "desc", false, map[string]string{"a.txt": "alpha"})
	dir := t.TempDir()

	out, err := h.run(t, "", "archive", "--dir", dir, id)
	require.NoError(t, err)

	target := filepath.Join(dir, id+".tar.gz")
	assert.Contains(t, out, target)
	assert.FileExists(t, target)

	_, err = h.run(t, "", "archive", "--dir", dir, id)
	require.ErrorIs(t, err, gisterr.ErrValidation)
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	_, err := h.run(t, "", "files", "0000")
	require.ErrorIs(t, err, gisterr.ErrNotFound)

	h.server.FailNext(http.MethodGet, "/gists", http.StatusBadGateway)

	_, err = h.run(t, "", "list")
	require.ErrorIs(t, err, gisterr.ErrTransient)
	assert.Equal(t, http.StatusBadGateway, gisterr.StatusCode(err))
}

func TestBadToken(t *testing.T) {
	t.Parallel()

	server := githubtest.NewServer(t)
	config := writeFile(t, t.TempDir(), "gist.ini", "[gist]\ntoken = wrong\napi-url = "+server.APIURL()+"\n")

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", config, "list"})

	err := cmd.Execute(t.Context(), root)
	require.ErrorIs(t, err, gisterr.ErrAuth)
}

func TestMissingToken(t *testing.T) {
	t.Parallel()

	config := writeFile(t, t.TempDir(), "gist.ini", "[gist]\neditor = vi\n")

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", config, "list"})

	err := cmd.Execute(t.Context(), root)
	require.ErrorIs(t, err, gisterr.ErrConfig)
	assert.Contains(t, err.Error(), "missing 'token' field")
}
