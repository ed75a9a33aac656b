// Package workspace manages the ephemeral directories a launch works
// in. Each workspace belongs to exactly one acquisition attempt and
// holds the download/extraction scratch area plus the materialized
// runtime. A Session owns whichever workspace is currently active and
// is the single place cleanup decisions are made.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxNameLen limits the sanitized jar-name portion of the workspace
// directory name.
const maxNameLen = 30

// Workspace is an ephemeral directory for one acquisition attempt.
type Workspace struct {
	path string
}

// New creates a uniquely named workspace under the system temp
// directory. The name embeds a sanitized form of the jar's base name
// so workspaces are identifiable; a random suffix avoids collisions.
func New(jarPath string) (*Workspace, error) {
	name := sanitizeName(filepath.Base(jarPath))

	path, err := os.MkdirTemp("", "jarl-"+name+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return &Workspace{path: path}, nil
}

// Path returns the workspace root directory.
func (w *Workspace) Path() string {
	return w.path
}

// Scratch returns the extraction scratch directory, creating it if
// needed.
func (w *Workspace) Scratch() (string, error) {
	dir := filepath.Join(w.path, "extract")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return dir, nil
}

// DownloadPath returns the path downloads are fetched to.
func (w *Workspace) DownloadPath() string {
	return filepath.Join(w.path, "runtime.tar.gz")
}

// RuntimeRoot returns the canonical runtime root path. The directory
// does not exist until materialization moves a runtime tree there.
func (w *Workspace) RuntimeRoot() string {
	return filepath.Join(w.path, "runtime")
}

// Remove deletes the workspace and everything in it.
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.path)
}

// sanitizeName collapses runs of non-alphanumeric characters to a
// single underscore and truncates to maxNameLen.
func sanitizeName(name string) string {
	var b strings.Builder

	lastUnderscore := false
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	s := b.String()
	if len(s) > maxNameLen {
		s = s[:maxNameLen]
	}

	if s == "" {
		s = "jar"
	}

	return s
}
