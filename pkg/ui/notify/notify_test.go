package notify_test

import (
	"bytes"
	"testing"

	"github.com/devantler-tech/gist/pkg/ui/notify"
)

func TestWriteMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		write func(buf *bytes.Buffer)
		want  string
	}{
		{
			name:  "error",
			write: func(buf *bytes.Buffer) { notify.Errorf(buf, "test error") },
			want:  "✗ test error\n",
		},
		{
			name:  "error with formatting",
			write: func(buf *bytes.Buffer) { notify.Errorf(buf, "error: %s (%d)", "failed", 42) },
			want:  "✗ error: failed (42)\n",
		},
		{
			name:  "warning",
			write: func(buf *bytes.Buffer) { notify.Warningf(buf, "careful") },
			want:  "⚠ careful\n",
		},
		{
			name:  "activity",
			write: func(buf *bytes.Buffer) { notify.Activityf(buf, "pushing") },
			want:  "► pushing\n",
		},
		{
			name:  "success",
			write: func(buf *bytes.Buffer) { notify.Successf(buf, "done") },
			want:  "✔ done\n",
		},
		{
			name:  "info",
			write: func(buf *bytes.Buffer) { notify.Infof(buf, "fyi") },
			want:  "ℹ fyi\n",
		},
		{
			name:  "multiline is indented",
			write: func(buf *bytes.Buffer) { notify.Warningf(buf, "first\nsecond\n\nthird") },
			want:  "⚠ first\n  second\n\n  third\n",
		},
		{
			name:  "percent without args is literal",
			write: func(buf *bytes.Buffer) { notify.Infof(buf, "100%") },
			want:  "ℹ 100%\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			testCase.write(&out)

			if got := out.String(); got != testCase.want {
				t.Fatalf("output mismatch. want %q, got %q", testCase.want, got)
			}
		})
	}
}
