package osfile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/filetug/estorage/pkg/files"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname
var osMkdir = os.Mkdir
var osCreate = os.Create
var osOpen = os.Open
var osRemove = os.Remove
var osRename = os.Rename
var osLstat = os.Lstat
var osStat = os.Stat

var _ files.Store = (*Store)(nil)

type Store struct {
	title string
	root  string
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(s.root),
	}
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".local")
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func (s Store) CreateDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return osMkdir(path, 0755)
}

func (s Store) CreateFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := osCreate(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osOpen(path)
}

// Delete removes a file. Directories are refused so that a non-empty tree is
// never removed through this call.
func (s Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := osLstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "delete", Path: path, Err: fmt.Errorf("is a directory")}
	}
	return osRemove(path)
}

func (s Store) RemoveDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := osLstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "rmdir", Path: path, Err: fmt.Errorf("not a directory")}
	}
	return osRemove(path)
}

func (s Store) Move(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := osLstat(to); err == nil {
		return &os.LinkError{Op: "move", Old: from, New: to, Err: fs.ErrExist}
	} else if !os.IsNotExist(err) {
		return err
	}
	return osRename(from, to)
}

func (s Store) Attributes(ctx context.Context, path string) (files.AttributeData, error) {
	if err := ctx.Err(); err != nil {
		return files.AttributeData{}, err
	}
	return getAttributes(path)
}

// statAttributes is used where the platform offers nothing richer than os.Stat.
func statAttributes(path string) (files.AttributeData, error) {
	info, err := osStat(path)
	if err != nil {
		return files.AttributeData{}, err
	}
	return files.AttributeDataFromFileInfo(info), nil
}

func NewStore(root string) *Store {
	if root == "" {
		root = string(filepath.Separator)
	}
	store := Store{root: root}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	return &store
}
