package viewers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/files/osfile"
	"github.com/stretchr/testify/require"
)

func localFile(t *testing.T, name string, content []byte) *estorage.File {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	file, err := estorage.GetFileFromPath(context.Background(), osfile.NewStore(dir), p)
	require.NoError(t, err)
	return file
}

func waitForUpdate(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for preview update")
	}
}

func runNow(done chan struct{}) func(func()) {
	return func(fn func()) {
		fn()
		close(done)
	}
}
