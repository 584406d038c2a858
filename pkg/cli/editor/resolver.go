package editor

import (
	"os"
	"os/exec"
)

// systemEditor is the Debian alternatives link for the default editor.
const systemEditor = "/usr/bin/editor"

// Resolver handles editor configuration resolution with proper precedence.
type Resolver struct {
	flagEditor   string
	configEditor string
	lookPath     func(string) (string, error)
	stat         func(string) (os.FileInfo, error)
}

// NewResolver creates a new editor resolver.
func NewResolver(flagEditor, configEditor string) *Resolver {
	return &Resolver{
		flagEditor:   flagEditor,
		configEditor: configEditor,
		lookPath:     exec.LookPath,
		stat:         os.Stat,
	}
}

// Resolve returns the editor command line, or "" when nothing is available.
func (r *Resolver) Resolve() string {
	if r.flagEditor != "" {
		return r.flagEditor
	}

	if r.configEditor != "" {
		return r.configEditor
	}

	for _, key := range []string{"EDITOR", "VISUAL"} {
		if editorEnv := os.Getenv(key); editorEnv != "" {
			return editorEnv
		}
	}

	if info, err := r.stat(systemEditor); err == nil && !info.IsDir() {
		return systemEditor
	}

	for _, editorName := range []string{"vim", "nano", "vi"} {
		editorPath, err := r.lookPath(editorName)
		if err == nil {
			return editorPath
		}
	}

	return ""
}
