package configmanager

import (
	"bytes"
	"context"
	"net/url"
	"os/exec"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/google/shlex"
)

const (
	// TokenCommandPrefix marks a token value as a command to execute.
	TokenCommandPrefix = "!"
	// TokenFromGitHubCLI makes the token come from the GitHub CLI login:
	// GH_TOKEN, GITHUB_TOKEN, the gh hosts file, then "gh auth token".
	TokenFromGitHubCLI = "@gh"
)

const defaultHost = "github.com"

// ResolveToken returns the token for a raw config value. Values starting with
// TokenCommandPrefix are split shell-style and executed; the trimmed stdout is
// the token. Other values are returned trimmed.
func ResolveToken(ctx context.Context, value string) (string, error) {
	command := strings.TrimSpace(value)
	if !strings.HasPrefix(command, TokenCommandPrefix) {
		return command, nil
	}

	args, err := shlex.Split(strings.TrimPrefix(command, TokenCommandPrefix))
	if err != nil {
		return "", gisterr.Configf("unable to parse token command: %v", err)
	}

	if len(args) == 0 {
		return "", gisterr.Configf("token command is empty")
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // executing the configured command is the feature
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", gisterr.Configf("token command %q failed: %v", args[0], err)
		}

		return "", gisterr.Configf("token command %q failed: %v: %s", args[0], err, detail)
	}

	token := strings.TrimSpace(stdout.String())
	if token == "" {
		return "", gisterr.Configf("token command %q printed nothing", args[0])
	}

	return token, nil
}

// GitHubCLIToken returns the GitHub CLI token for the host serving apiURL.
// An empty apiURL means github.com.
func GitHubCLIToken(apiURL string) (string, error) {
	host := defaultHost

	if apiURL != "" {
		parsed, err := url.Parse(apiURL)
		if err != nil || parsed.Host == "" {
			return "", gisterr.Configf("invalid api-url %q", apiURL)
		}

		host = auth.NormalizeHostname(parsed.Hostname())
	}

	token, _ := auth.TokenForHost(host)
	if token == "" {
		return "", gisterr.Configf("no GitHub CLI token found for %s; run 'gh auth login'", host)
	}

	return token, nil
}
