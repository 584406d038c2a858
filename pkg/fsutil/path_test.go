package fsutil_test

import (
	"testing"

	"github.com/devantler-tech/gist/pkg/fsutil"
	"github.com/stretchr/testify/assert"
)

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		home string
		want string
	}{
		{path: "~", home: "/home/me", want: "/home/me"},
		{path: "~/.gnupg", home: "/home/me", want: "/home/me/.gnupg"},
		{path: "~other/.gnupg", home: "/home/me", want: "~other/.gnupg"},
		{path: "/abs/path", home: "/home/me", want: "/abs/path"},
		{path: "relative", home: "/home/me", want: "relative"},
		{path: "~/.gnupg", home: "", want: "~/.gnupg"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, fsutil.ExpandHomePath(tc.path, tc.home))
		})
	}
}
