package osfile

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	origHostname := osHostname
	defer func() { osHostname = origHostname }()

	t.Run("valid_root", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "test-host", nil
		}
		s := NewStore("/tmp")
		assert.NotNil(t, s)
		assert.Equal(t, "/tmp", s.root)
		assert.Equal(t, "test-host", s.RootTitle())
	})

	t.Run("hostname_error", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "", errors.New("hostname error")
		}
		s := NewStore("/tmp")
		assert.Equal(t, "hostname error", s.title)
	})

	t.Run("empty_root_defaults_to_separator", func(t *testing.T) {
		s := NewStore("")
		assert.Equal(t, string(filepath.Separator), s.root)
	})
}

func TestStore_RootURL(t *testing.T) {
	s := NewStore("/tmp")
	u := s.RootURL()
	assert.Equal(t, "file", u.Scheme)
	assert.Equal(t, "/tmp", u.Path)
}

func TestStore_RootTitle(t *testing.T) {
	s := Store{title: "my-host.local"}
	assert.Equal(t, "my-host", s.RootTitle())

	s = Store{title: "my-host"}
	assert.Equal(t, "my-host", s.RootTitle())
}

func TestStore_ReadDir(t *testing.T) {
	origReadDir := osReadDir
	defer func() { osReadDir = origReadDir }()

	s := NewStore("/tmp")

	t.Run("success", func(t *testing.T) {
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return []os.DirEntry{}, nil
		}
		entries, err := s.ReadDir(context.Background(), "/tmp")
		assert.NoError(t, err)
		assert.NotNil(t, entries)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		entries, err := s.ReadDir(ctx, "/tmp")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Nil(t, entries)
	})

	t.Run("read_error", func(t *testing.T) {
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return nil, errors.New("read error")
		}
		entries, err := s.ReadDir(context.Background(), "/tmp")
		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestStore_CreateAndOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, s.CreateDir(ctx, sub))
	assert.DirExists(t, sub)

	name := filepath.Join(sub, "a.txt")
	require.NoError(t, s.CreateFile(ctx, name))
	require.NoError(t, os.WriteFile(name, []byte("hello"), 0o644))

	r, err := s.Open(ctx, name)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.Equal(t, "hello", string(data))

	_, err = s.Open(ctx, filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStore_CreateFile_errors(t *testing.T) {
	origCreate := osCreate
	defer func() { osCreate = origCreate }()
	osCreate = func(name string) (*os.File, error) {
		return nil, errors.New("disk full")
	}
	s := NewStore("/")
	assert.EqualError(t, s.CreateFile(context.Background(), "/x"), "disk full")
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	name := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(name, nil, 0o644))

	t.Run("refuses_directory", func(t *testing.T) {
		err := s.Delete(ctx, dir)
		assert.Error(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("file", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, name))
		assert.NoFileExists(t, name)
	})

	t.Run("missing", func(t *testing.T) {
		err := s.Delete(ctx, name)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestStore_RemoveDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	file := filepath.Join(sub, "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.Error(t, s.RemoveDir(ctx, file), "files are not directories")
	assert.Error(t, s.RemoveDir(ctx, sub), "directory is not empty")

	require.NoError(t, os.Remove(file))
	assert.NoError(t, s.RemoveDir(ctx, sub))
	assert.NoDirExists(t, sub)
}

func TestStore_Move(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	c := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("c"), 0o644))

	t.Run("target_exists", func(t *testing.T) {
		err := s.Move(ctx, a, c)
		assert.True(t, errors.Is(err, fs.ErrExist))
		assert.FileExists(t, a)
		data, _ := os.ReadFile(c)
		assert.Equal(t, "c", string(data))
	})

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, s.Move(ctx, a, b))
		assert.NoFileExists(t, a)
		assert.FileExists(t, b)
	})

	t.Run("lstat_error", func(t *testing.T) {
		origLstat := osLstat
		defer func() { osLstat = origLstat }()
		osLstat = func(name string) (os.FileInfo, error) {
			return nil, errors.New("io error")
		}
		assert.EqualError(t, s.Move(ctx, b, a), "io error")
	})
}

func TestStore_Attributes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	name := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(name, []byte("0123456789"), 0o644))
	modTime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(name, modTime, modTime))

	t.Run("file", func(t *testing.T) {
		data, err := s.Attributes(ctx, name)
		require.NoError(t, err)
		assert.False(t, data.FileAttributes.IsDir())
		assert.Equal(t, int64(10), data.Size())
		assert.Equal(t, modTime, data.LastWriteTime.Time())
		assert.Equal(t, modTime, data.LastAccessTime.Time())
		assert.False(t, data.CreationTime.IsZero())
	})

	t.Run("directory", func(t *testing.T) {
		data, err := s.Attributes(ctx, dir)
		require.NoError(t, err)
		assert.True(t, data.FileAttributes.IsDir())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Attributes(ctx, filepath.Join(dir, "missing"))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("context_cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Attributes(cancelled, name)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
