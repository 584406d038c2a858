package configmanager

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Environment variables consulted while searching for the config file.
const (
	EnvConfigPath  = "GIST_CONFIG"
	EnvXDGDataHome = "XDG_DATA_HOME"
)

const configFileName = "gist"

// Candidate is one config file location together with where it came from.
type Candidate struct {
	Path   string
	Source string
}

// CandidatePaths returns the config file locations in precedence order,
// highest first. Locations whose inputs are unset are omitted.
func (m *ConfigManager) CandidatePaths() []Candidate {
	var candidates []Candidate

	if m.explicitPath != "" {
		candidates = append(candidates, Candidate{Path: m.explicitPath, Source: "--config"})
	}

	if path := m.getenv(EnvConfigPath); path != "" {
		candidates = append(candidates, Candidate{Path: path, Source: "$" + EnvConfigPath})
	}

	if dir := m.getenv(EnvXDGDataHome); dir != "" {
		candidates = append(candidates, Candidate{
			Path:   filepath.Join(dir, configFileName),
			Source: "$" + EnvXDGDataHome,
		})
	}

	home, err := m.homeDir()
	if err == nil && home != "" {
		candidates = append(candidates,
			Candidate{Path: filepath.Join(home, ".config", configFileName), Source: "~/.config"},
			Candidate{Path: filepath.Join(home, "."+configFileName), Source: "~"},
		)
	}

	return candidates
}

// Locate returns the first candidate that exists as a readable regular file.
// An explicit --config path is authoritative: if it cannot be read, the
// search stops there.
func (m *ConfigManager) Locate() (string, error) {
	for _, candidate := range m.CandidatePaths() {
		err := checkReadable(candidate.Path)
		if err == nil {
			return candidate.Path, nil
		}

		if candidate.Source == "--config" {
			return "", err
		}
	}

	return "", ErrConfigNotFound
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrConfigNotFound
		}

		return err
	}

	if !info.Mode().IsRegular() {
		return ErrConfigNotRegular
	}

	file, err := os.Open(path) //nolint:gosec // path is a known config location
	if err != nil {
		return err
	}

	return file.Close()
}
