package v1alpha1

import (
	"slices"
	"strings"
	"time"
)

// Visibility defines whether a gist is listed publicly.
type Visibility string

const (
	// VisibilityPrivate is a secret gist, only reachable by URL.
	VisibilityPrivate Visibility = "private"
	// VisibilityPublic is a gist listed on the owner's profile.
	VisibilityPublic Visibility = "public"
)

// VisibilityFromPublic maps the REST `public` flag to a Visibility.
func VisibilityFromPublic(public bool) Visibility {
	if public {
		return VisibilityPublic
	}

	return VisibilityPrivate
}

// IsPublic reports whether the visibility is public.
func (v Visibility) IsPublic() bool {
	return v == VisibilityPublic
}

// Marker returns the single-character marker used by `gist list`.
func (v Visibility) Marker() string {
	if v.IsPublic() {
		return "+"
	}

	return "-"
}

// File is a single named text file inside a gist.
type File struct {
	Name     string `json:"filename"`
	Content  string `json:"content,omitempty"`
	Size     int    `json:"size,omitempty"`
	Language string `json:"language,omitempty"`
	RawURL   string `json:"raw_url,omitempty"`
}

// HasSuffix reports whether the file name carries the given encryption marker.
func (f File) HasSuffix(suffix string) bool {
	return suffix != "" && strings.HasSuffix(f.Name, suffix) && len(f.Name) > len(suffix)
}

// Truncated reports whether Content holds fewer bytes than the file's size.
// The API cuts single-gist responses at about one megabyte per file.
func (f File) Truncated() bool {
	return f.Size > len(f.Content)
}

// Gist is a remote-hosted named collection of text files.
type Gist struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Visibility  Visibility      `json:"visibility"`
	Owner       string          `json:"owner,omitempty"`
	Files       map[string]File `json:"files"`
	HTMLURL     string          `json:"html_url,omitempty"`
	GitPullURL  string          `json:"git_pull_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitzero"`
	UpdatedAt   time.Time       `json:"updated_at,omitzero"`
}

// FileNames returns the gist's file names in lexical order.
func (g *Gist) FileNames() []string {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// SortedFiles returns the gist's files ordered by name.
func (g *Gist) SortedFiles() []File {
	names := g.FileNames()
	files := make([]File, 0, len(names))

	for _, name := range names {
		file := g.Files[name]
		if file.Name == "" {
			file.Name = name
		}

		files = append(files, file)
	}

	return files
}
