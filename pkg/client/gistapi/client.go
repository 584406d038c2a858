package gistapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

const listPageSize = 100

// Client is the set of gist operations used by the CLI.
type Client interface {
	// List returns the gists of owner, or of the authenticated user when owner is empty.
	List(ctx context.Context, owner string) ([]v1alpha1.Gist, error)
	// Get returns a single gist with file contents.
	Get(ctx context.Context, id string) (*v1alpha1.Gist, error)
	// Create uploads a new gist.
	Create(
		ctx context.Context,
		description string,
		visibility v1alpha1.Visibility,
		files []v1alpha1.File,
	) (*v1alpha1.Gist, error)
	// Update replaces the content of the named files in a single request.
	Update(ctx context.Context, id string, files []v1alpha1.File) (*v1alpha1.Gist, error)
	// UpdateDescription changes only the description.
	UpdateDescription(ctx context.Context, id, description string) (*v1alpha1.Gist, error)
	// Delete removes a gist.
	Delete(ctx context.Context, id string) error
	// Fork copies a gist into the authenticated user's account.
	Fork(ctx context.Context, id string) (*v1alpha1.Gist, error)
}

// GitHubClient implements Client on top of go-github.
type GitHubClient struct {
	gh *github.Client
}

// Option configures a GitHubClient.
type Option func(*options)

type options struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// WithBaseURL points the client at another REST endpoint, e.g. GitHub Enterprise.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient sets the underlying transport. The token is still applied on top of it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// NewGitHubClient creates a client authenticated with token.
func NewGitHubClient(ctx context.Context, token string, opts ...Option) (*GitHubClient, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.httpClient)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	gh := github.NewClient(httpClient)

	if cfg.baseURL != "" {
		base := cfg.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", cfg.baseURL, err)
		}

		gh.BaseURL = parsed
	}

	if cfg.userAgent != "" {
		gh.UserAgent = cfg.userAgent
	}

	return &GitHubClient{gh: gh}, nil
}

// List implements Client.
func (c *GitHubClient) List(ctx context.Context, owner string) ([]v1alpha1.Gist, error) {
	opts := &github.GistListOptions{ListOptions: github.ListOptions{PerPage: listPageSize}}

	var gists []v1alpha1.Gist

	for {
		page, resp, err := c.gh.Gists.List(ctx, owner, opts)
		if err != nil {
			return nil, translate("list gists", resp, err)
		}

		for _, gist := range page {
			gists = append(gists, *fromGitHub(gist))
		}

		if resp.NextPage == 0 {
			return gists, nil
		}

		opts.Page = resp.NextPage
	}
}

// Get implements Client.
func (c *GitHubClient) Get(ctx context.Context, id string) (*v1alpha1.Gist, error) {
	gist, resp, err := c.gh.Gists.Get(ctx, id)
	if err != nil {
		return nil, translate("get gist "+id, resp, err)
	}

	converted := fromGitHub(gist)

	err = c.fillTruncated(ctx, converted)
	if err != nil {
		return nil, err
	}

	return converted, nil
}

// fillTruncated replaces cut-off file contents with the full text served at
// the file's raw URL.
func (c *GitHubClient) fillTruncated(ctx context.Context, gist *v1alpha1.Gist) error {
	for name, file := range gist.Files {
		if !file.Truncated() {
			continue
		}

		if file.RawURL == "" {
			return gisterr.Validationf("file %s of gist %s is truncated and has no raw URL", name, gist.ID)
		}

		content, err := c.raw(ctx, file.RawURL)
		if err != nil {
			return err
		}

		file.Content = content
		gist.Files[name] = file
	}

	return nil
}

func (c *GitHubClient) raw(ctx context.Context, rawURL string) (string, error) {
	req, err := c.gh.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid raw URL %q: %w", rawURL, err)
	}

	var content strings.Builder

	resp, err := c.gh.Do(ctx, req, &content)
	if err != nil {
		return "", translate("fetch raw content "+rawURL, resp, err)
	}

	return content.String(), nil
}

// Create implements Client.
func (c *GitHubClient) Create(
	ctx context.Context,
	description string,
	visibility v1alpha1.Visibility,
	files []v1alpha1.File,
) (*v1alpha1.Gist, error) {
	input := &github.Gist{
		Description: github.Ptr(description),
		Public:      github.Ptr(visibility.IsPublic()),
		Files:       toGitHubFiles(files),
	}

	gist, resp, err := c.gh.Gists.Create(ctx, input)
	if err != nil {
		return nil, translate("create gist", resp, err)
	}

	return fromGitHub(gist), nil
}

// Update implements Client.
func (c *GitHubClient) Update(ctx context.Context, id string, files []v1alpha1.File) (*v1alpha1.Gist, error) {
	gist, resp, err := c.gh.Gists.Edit(ctx, id, &github.Gist{Files: toGitHubFiles(files)})
	if err != nil {
		return nil, translate("update gist "+id, resp, err)
	}

	return fromGitHub(gist), nil
}

// UpdateDescription implements Client.
func (c *GitHubClient) UpdateDescription(ctx context.Context, id, description string) (*v1alpha1.Gist, error) {
	gist, resp, err := c.gh.Gists.Edit(ctx, id, &github.Gist{Description: github.Ptr(description)})
	if err != nil {
		return nil, translate("update description of gist "+id, resp, err)
	}

	return fromGitHub(gist), nil
}

// Delete implements Client.
func (c *GitHubClient) Delete(ctx context.Context, id string) error {
	resp, err := c.gh.Gists.Delete(ctx, id)
	if err != nil {
		return translate("delete gist "+id, resp, err)
	}

	return nil
}

// Fork implements Client.
func (c *GitHubClient) Fork(ctx context.Context, id string) (*v1alpha1.Gist, error) {
	gist, resp, err := c.gh.Gists.Fork(ctx, id)
	if err != nil {
		return nil, translate("fork gist "+id, resp, err)
	}

	return fromGitHub(gist), nil
}
