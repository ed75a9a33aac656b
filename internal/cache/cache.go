// Package cache provides the persistent runtime-archive cache.
//
// The cache is a single per-user directory holding one compressed
// runtime archive per (version, OS, architecture) key. There is no
// index file: the directory listing is the source of truth, and
// Enumerate reconstructs the cache state from it. Entries are written
// once per download and read on every subsequent hit; they are only
// ever removed by an explicit purge.
//
// The cache is advisory. Every failure at this layer (a failed copy, a
// corrupt entry) degrades to a fresh download rather than failing the
// launch, so callers treat errors here as warnings.
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultDirName is the cache directory name under the user cache root.
const DefaultDirName = "jarl"

// EntryInfo describes one cached archive for diagnostic listings.
type EntryInfo struct {
	Name string
	Size int64
}

// Store manages cached runtime archives under a root directory.
type Store struct {
	root string
}

// New creates a store rooted at dir. If dir is empty, the per-user
// cache directory is used.
func New(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user cache directory: %w", err)
		}

		dir = filepath.Join(base, DefaultDirName)
	}

	return &Store{root: dir}, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Lookup reports whether an archive for key is present, and its path.
// Presence only; the archive is not validated here.
func (s *Store) Lookup(key Key) (string, bool) {
	path := filepath.Join(s.root, key.Filename())

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	return path, true
}

// Put copies the archive at sourceFile into the cache under key,
// creating the cache root if needed. An existing entry for the same
// key is overwritten.
func (s *Store) Put(key Key, sourceFile string) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	dst := filepath.Join(s.root, key.Filename())
	if err := copyFile(sourceFile, dst); err != nil {
		return fmt.Errorf("failed to cache archive for %s: %w", key, err)
	}

	return nil
}

// Enumerate lists cached archives by directory listing. A missing
// cache root is an empty cache, not an error.
func (s *Store) Enumerate() ([]EntryInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var infos []EntryInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		infos = append(infos, EntryInfo{Name: entry.Name(), Size: fi.Size()})
	}

	return infos, nil
}

// PurgeAll removes the entire cache root. No-op if the root is absent.
func (s *Store) PurgeAll() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to remove cache directory: %w", err)
	}

	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.Chmod(dst, srcInfo.Mode())
}
