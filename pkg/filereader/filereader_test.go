package filereader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/files/httpfile"
	"github.com/filetug/estorage/pkg/files/osfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func newFile(t *testing.T, name string, content []byte) *estorage.File {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	file, err := estorage.GetFileFromPath(context.Background(), osfile.NewStore(""), p)
	require.NoError(t, err)
	return file
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadText(t *testing.T) {
	ctx := context.Background()

	t.Run("utf8", func(t *testing.T) {
		text := "héllo, wörld ✓\nline 2"
		file := newFile(t, "a.txt", []byte(text))
		got, ok := ReadText(ctx, file)
		assert.True(t, ok)
		assert.Equal(t, text, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, ok := ReadText(ctx, newFile(t, "empty.txt", nil))
		assert.True(t, ok)
		assert.Equal(t, "", got)
	})

	t.Run("invalid_bytes_are_replaced", func(t *testing.T) {
		got, ok := ReadText(ctx, newFile(t, "bad.txt", []byte{'a', 0xff, 'b'}))
		assert.True(t, ok)
		assert.Equal(t, "a�b", got)
	})

	t.Run("missing", func(t *testing.T) {
		file := newFile(t, "gone.txt", []byte("x"))
		require.NoError(t, os.Remove(file.Path()))
		got, ok := ReadText(ctx, file)
		assert.False(t, ok)
		assert.Equal(t, "", got)
	})

	t.Run("nil", func(t *testing.T) {
		_, ok := ReadText(ctx, nil)
		assert.False(t, ok)
	})
}

func TestReadText_reportedSizeIsOnlyAHint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Length", "1125899906842624")
			return
		}
		_, _ = w.Write([]byte("short body"))
	}))
	defer ts.Close()

	root, err := url.Parse(ts.URL)
	require.NoError(t, err)
	store := httpfile.NewStore(*root, httpfile.WithHttpClient(ts.Client()))
	ctx := context.Background()
	file, err := estorage.GetFileFromPath(ctx, store, "/big.txt")
	require.NoError(t, err)
	require.Equal(t, int64(1125899906842624), file.Size(ctx))

	got, ok := ReadText(ctx, file)
	assert.True(t, ok)
	assert.Equal(t, "short body", got)
}

func TestReadAll(t *testing.T) {
	data, err := readAll(bytes.NewReader([]byte("abc")), 1)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	data, err = readAll(bytes.NewReader([]byte("abc")), 0)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestTryGetImage(t *testing.T) {
	ctx := context.Background()

	t.Run("png", func(t *testing.T) {
		img := TryGetImage(ctx, newFile(t, "a.png", encodePNG(t, 3, 2)))
		require.NotNil(t, img)
		assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	})

	t.Run("bmp", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, bmp.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
		img := TryGetImage(ctx, newFile(t, "a.bmp", buf.Bytes()))
		require.NotNil(t, img)
		assert.Equal(t, 4, img.Bounds().Dx())
	})

	t.Run("not_an_image", func(t *testing.T) {
		assert.Nil(t, TryGetImage(ctx, newFile(t, "a.txt", []byte("plain text"))))
	})

	t.Run("missing", func(t *testing.T) {
		file := newFile(t, "gone.png", encodePNG(t, 1, 1))
		require.NoError(t, os.Remove(file.Path()))
		assert.Nil(t, TryGetImage(ctx, file))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, TryGetImage(ctx, nil))
	})
}

func TestTryGetImageAsync(t *testing.T) {
	ctx := context.Background()
	result := TryGetImageAsync(ctx, newFile(t, "a.png", encodePNG(t, 5, 5)))
	img, ok := <-result
	assert.True(t, ok)
	assert.NotNil(t, img)
	_, ok = <-result
	assert.False(t, ok, "channel is closed after the single value")

	img, ok = <-TryGetImageAsync(ctx, nil)
	assert.True(t, ok)
	assert.Nil(t, img)
}

func TestImageConfig(t *testing.T) {
	ctx := context.Background()

	cfg, format, ok := ImageConfig(ctx, newFile(t, "a.png", encodePNG(t, 7, 3)))
	assert.True(t, ok)
	assert.Equal(t, "png", format)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 3, cfg.Height)

	_, _, ok = ImageConfig(ctx, newFile(t, "a.txt", []byte("nope")))
	assert.False(t, ok)

	_, _, ok = ImageConfig(ctx, nil)
	assert.False(t, ok)
}
