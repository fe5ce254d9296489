package estorage

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/filetug/estorage/pkg/files"
)

// isLocal tells whether paths of the store use the OS separator.
func isLocal(store files.Store) bool {
	u := store.RootURL()
	return u.Scheme == "" || u.Scheme == "file"
}

func baseName(store files.Store, p string) string {
	if isLocal(store) {
		return filepath.Base(p)
	}
	return path.Base(p)
}

func joinPath(store files.Store, dir, name string) string {
	if isLocal(store) {
		return filepath.Join(dir, name)
	}
	return path.Join(dir, name)
}

// parentDir returns the directory containing p. It reports false when p is
// already a root.
func parentDir(store files.Store, p string) (string, bool) {
	if isLocal(store) {
		clean := filepath.Clean(p)
		dir := filepath.Dir(clean)
		if dir == clean {
			return "", false
		}
		return dir, true
	}
	clean := path.Clean(p)
	if clean == "/" || clean == "." {
		return "", false
	}
	dir := path.Dir(clean)
	if dir == "." {
		dir = "/"
	}
	return dir, true
}

var ErrInvalidName = errors.New("invalid name")

// checkName accepts a single path element. Both separators are refused
// whatever the store.
func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%q: %w: has a path separator", name, ErrInvalidName)
	}
	return nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
