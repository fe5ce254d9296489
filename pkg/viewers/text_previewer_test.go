package viewers

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTextPreviewer_render(t *testing.T) {
	ctx := context.Background()

	t.Run("head_only", func(t *testing.T) {
		previewer := NewTextPreviewer("dracula", 5)
		file := localFile(t, "notes.txt", []byte("0123456789"))
		text, err := previewer.render(ctx, file)
		require.NoError(t, err)
		assert.Contains(t, text, "01234")
		assert.NotContains(t, text, "56789")
	})

	t.Run("whole_file", func(t *testing.T) {
		previewer := NewTextPreviewer("dracula", 0)
		file := localFile(t, "notes.txt", []byte("0123456789"))
		text, err := previewer.render(ctx, file)
		require.NoError(t, err)
		assert.Contains(t, text, "0123456789")
	})

	t.Run("source_is_colorized", func(t *testing.T) {
		previewer := NewTextPreviewer("dracula", 1024)
		file := localFile(t, "main.go", []byte("package main\n"))
		text, err := previewer.render(ctx, file)
		require.NoError(t, err)
		assert.Contains(t, text, "[#")
		assert.Contains(t, text, "package")
	})

	t.Run("open_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := files.NewMockStore(ctrl)
		store.EXPECT().Attributes(gomock.Any(), "/a.txt").Return(files.AttributeData{FileAttributes: files.AttrNormal}, nil)
		store.EXPECT().RootURL().Return(url.URL{Scheme: "ftp", Host: "example.com"}).AnyTimes()
		store.EXPECT().Open(gomock.Any(), "/a.txt").Return(nil, errors.New("denied"))
		file, err := estorage.GetFileFromPath(ctx, store, "/a.txt")
		require.NoError(t, err)

		previewer := NewTextPreviewer("dracula", 1024)
		_, err = previewer.render(ctx, file)
		assert.ErrorContains(t, err, "denied")
	})
}

func TestTextPreviewer_Preview(t *testing.T) {
	previewer := NewTextPreviewer("dracula", 1024)
	assert.Equal(t, previewer.TextView, previewer.Main())

	file := localFile(t, "readme.txt", []byte("hello [world]"))
	done := make(chan struct{})
	previewer.Preview(context.Background(), file, runNow(done))
	waitForUpdate(t, done)

	assert.Contains(t, previewer.GetText(true), "hello [world]")
}

func TestTextPreviewer_showError(t *testing.T) {
	previewer := NewTextPreviewer("dracula", 1024)
	previewer.showError("failed [x]")
	assert.Equal(t, "failed [x]", previewer.GetText(true))
}
