package gistapi

import (
	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/google/go-github/v72/github"
)

func fromGitHub(gist *github.Gist) *v1alpha1.Gist {
	files := make(map[string]v1alpha1.File, len(gist.Files))

	for key, file := range gist.Files {
		name := file.GetFilename()
		if name == "" {
			name = string(key)
		}

		files[name] = v1alpha1.File{
			Name:     name,
			Content:  file.GetContent(),
			Size:     file.GetSize(),
			Language: file.GetLanguage(),
			RawURL:   file.GetRawURL(),
		}
	}

	return &v1alpha1.Gist{
		ID:          gist.GetID(),
		Description: gist.GetDescription(),
		Visibility:  v1alpha1.VisibilityFromPublic(gist.GetPublic()),
		Owner:       gist.GetOwner().GetLogin(),
		Files:       files,
		HTMLURL:     gist.GetHTMLURL(),
		GitPullURL:  gist.GetGitPullURL(),
		CreatedAt:   gist.GetCreatedAt().Time,
		UpdatedAt:   gist.GetUpdatedAt().Time,
	}
}

func toGitHubFiles(files []v1alpha1.File) map[github.GistFilename]github.GistFile {
	out := make(map[github.GistFilename]github.GistFile, len(files))

	for _, file := range files {
		out[github.GistFilename(file.Name)] = github.GistFile{
			Filename: github.Ptr(file.Name),
			Content:  github.Ptr(file.Content),
		}
	}

	return out
}
