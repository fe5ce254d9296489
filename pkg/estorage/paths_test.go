package estorage

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/filetug/estorage/pkg/files"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestParentDir_remote(t *testing.T) {
	store := files.NewMockStore(gomock.NewController(t))
	store.EXPECT().RootURL().Return(url.URL{Scheme: "ftp"}).AnyTimes()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"/pub/a.txt", "/pub", true},
		{"/pub/", "/", true},
		{"/pub", "/", true},
		{"a.txt", "/", true},
		{"/", "", false},
		{".", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parentDir(store, tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "/pub/b.txt", joinPath(store, "/pub", "b.txt"))
	assert.Equal(t, "b.txt", baseName(store, "/pub/b.txt"))
}

func TestParentDir_local(t *testing.T) {
	store := files.NewMockStore(gomock.NewController(t))
	store.EXPECT().RootURL().Return(url.URL{Scheme: "file"}).AnyTimes()

	dir := t.TempDir()
	got, ok := parentDir(store, filepath.Join(dir, "a.txt"))
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	_, ok = parentDir(store, filepath.VolumeName(dir)+string(filepath.Separator))
	assert.False(t, ok)
}

func TestTrimExt(t *testing.T) {
	assert.Equal(t, "b", trimExt("b.txt"))
	assert.Equal(t, "archive.tar", trimExt("archive.tar.gz"))
	assert.Equal(t, "README", trimExt("README"))
	assert.Equal(t, "", trimExt(".bashrc"))
}
