// Package jre turns compressed runtime archives into executable Java
// runtimes. Materialization is the same code path whether the archive
// came from the cache or from a fresh download: extract into workspace
// scratch, normalize the tree into a canonical {root}/bin/java layout,
// and verify the entry point.
package jre

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/jarlaunch/jarl/internal/workspace"
)

// Runtime is a materialized runtime rooted at a directory with a
// verified executable entry point.
type Runtime struct {
	root string
}

// Root returns the runtime root directory.
func (r *Runtime) Root() string {
	return r.root
}

// JavaPath returns the path of the java executable.
func (r *Runtime) JavaPath() string {
	return filepath.Join(r.root, "bin", entryPointName())
}

func entryPointName() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}

	return "java"
}

// Materialize extracts the archive at archivePath into ws and
// normalizes it into a runtime rooted at the workspace's runtime root.
func Materialize(archivePath string, ws *workspace.Workspace) (*Runtime, error) {
	scratch, err := ws.Scratch()
	if err != nil {
		return nil, err
	}

	if err := extractTarGz(archivePath, scratch); err != nil {
		return nil, &ExtractionError{Archive: archivePath, Err: err}
	}

	top, err := locateRuntimeDir(scratch)
	if err != nil {
		return nil, &LayoutError{Archive: archivePath}
	}

	root := ws.RuntimeRoot()
	if err := os.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("failed to clear runtime root: %w", err)
	}

	if err := os.Rename(top, root); err != nil {
		return nil, fmt.Errorf("failed to move runtime into place: %w", err)
	}

	root, err = promoteBundleLayout(root)
	if err != nil {
		return nil, err
	}

	entry := filepath.Join(root, "bin", entryPointName())
	if _, err := os.Stat(entry); err != nil {
		return nil, &MissingEntryPointError{Root: root}
	}

	if err := os.Chmod(entry, 0o755); err != nil {
		return nil, fmt.Errorf("failed to mark entry point executable: %w", err)
	}

	if err := os.RemoveAll(scratch); err != nil {
		return nil, fmt.Errorf("failed to remove scratch directory: %w", err)
	}

	return &Runtime{root: root}, nil
}

// locateRuntimeDir picks the extracted top-level directory holding the
// runtime tree. Directories named like a JRE or JDK win; otherwise the
// last directory in enumeration order is taken. This mirrors how
// distributor archives are actually shaped: a single jdk-21.0.x+y-jre
// style directory at the top.
func locateRuntimeDir(scratch string) (string, error) {
	entries, err := os.ReadDir(scratch)
	if err != nil {
		return "", err
	}

	var fallback string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())
		if strings.Contains(name, "jre") || strings.Contains(name, "jdk") {
			return filepath.Join(scratch, entry.Name()), nil
		}

		fallback = filepath.Join(scratch, entry.Name())
	}

	if fallback == "" {
		return "", fmt.Errorf("no directories in %s", scratch)
	}

	return fallback, nil
}

// promoteBundleLayout handles macOS bundle archives. When the runtime
// root has no bin/java but does have Contents/Home, the Home directory
// is the real runtime: promote it to the root and drop the bundle
// wrapper.
func promoteBundleLayout(root string) (string, error) {
	entry := filepath.Join(root, "bin", entryPointName())
	if _, err := os.Stat(entry); err == nil {
		return root, nil
	}

	home := filepath.Join(root, "Contents", "Home")
	if _, err := os.Stat(home); err != nil {
		return root, nil
	}

	wrapper := root + ".bundle"
	if err := os.Rename(root, wrapper); err != nil {
		return "", fmt.Errorf("failed to unwrap bundle: %w", err)
	}

	if err := os.Rename(filepath.Join(wrapper, "Contents", "Home"), root); err != nil {
		return "", fmt.Errorf("failed to promote bundle home: %w", err)
	}

	if err := os.RemoveAll(wrapper); err != nil {
		return "", fmt.Errorf("failed to discard bundle wrapper: %w", err)
	}

	return root, nil
}

// extractTarGz unpacks a gzip-compressed tar archive into dir. Entries
// that would escape dir are rejected.
func extractTarGz(archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}

	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}

	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		target, err := securePath(dir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}

			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}

			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}

			if err := out.Close(); err != nil {
				return err
			}

		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}

			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}

		default:
			// Hard links, devices etc. do not occur in runtime archives
		}
	}
}

// securePath joins name onto dir, rejecting entries that escape it.
func securePath(dir, name string) (string, error) {
	target := filepath.Join(dir, name)

	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}

	return target, nil
}
