package v1alpha1_test

import (
	"testing"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityMarker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+", v1alpha1.VisibilityFromPublic(true).Marker())
	assert.Equal(t, "-", v1alpha1.VisibilityFromPublic(false).Marker())
	assert.False(t, v1alpha1.VisibilityPrivate.IsPublic())
}

func TestFileHasSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		suffix   string
		expected bool
	}{
		{name: "marked", file: "notes.txt.asc", suffix: ".asc", expected: true},
		{name: "plain", file: "notes.txt", suffix: ".asc", expected: false},
		{name: "bare_suffix", file: ".asc", suffix: ".asc", expected: false},
		{name: "empty_suffix", file: "notes.txt", suffix: "", expected: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			file := v1alpha1.File{Name: testCase.file}
			assert.Equal(t, testCase.expected, file.HasSuffix(testCase.suffix))
		})
	}
}

func TestGistSortedFiles(t *testing.T) {
	t.Parallel()

	gist := &v1alpha1.Gist{
		Files: map[string]v1alpha1.File{
			"b.txt": {Content: "b"},
			"a.txt": {Name: "a.txt", Content: "a"},
		},
	}

	files := gist.SortedFiles()

	assert.Equal(t, []string{"a.txt", "b.txt"}, gist.FileNames())
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "b.txt", files[1].Name)
	assert.Equal(t, "b", files[1].Content)
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()

	assert.True(t, cfg.DeleteTempfiles)
	assert.Equal(t, v1alpha1.EncryptionGPG, cfg.Encryption)
	assert.False(t, cfg.EncryptionConfigured())

	cfg.GnupgHomedir = "/tmp/gnupg"
	assert.True(t, cfg.EncryptionConfigured())
}
