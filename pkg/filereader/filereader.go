// Package filereader reads the content of storage files as text or images.
package filereader

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/text/encoding/unicode"
)

// ReadText reads the whole file and decodes it as UTF-8. Invalid sequences
// become U+FFFD. It reports false on any failure.
func ReadText(ctx context.Context, file *estorage.File) (string, bool) {
	if file == nil {
		return "", false
	}
	logger := zerolog.Ctx(ctx)
	size := file.Size(ctx)

	r, err := file.Store().Open(ctx, file.Path())
	if err != nil {
		logger.Debug().Err(err).Str("path", file.Path()).Msg("open failed")
		return "", false
	}
	defer func() {
		_ = r.Close()
	}()

	data, err := readAll(r, size)
	if err != nil {
		logger.Debug().Err(err).Str("path", file.Path()).Msg("read failed")
		return "", false
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		logger.Debug().Err(err).Str("path", file.Path()).Msg("decode failed")
		return "", false
	}
	return string(decoded), true
}

// maxSizeHint caps the buffer preallocated from a reported size. Stores may
// report sizes they can not back, a larger file still grows the buffer.
const maxSizeHint = 1 << 20

func readAll(r io.Reader, sizeHint int64) ([]byte, error) {
	if sizeHint <= 0 {
		return io.ReadAll(r)
	}
	buf := bytes.NewBuffer(make([]byte, 0, min(sizeHint, maxSizeHint)))
	_, err := buf.ReadFrom(r)
	return buf.Bytes(), err
}

// TryGetImage decodes the file as an image in any registered format.
// It returns nil for a nil file, an open failure or an unsupported format.
func TryGetImage(ctx context.Context, file *estorage.File) image.Image {
	if file == nil {
		return nil
	}
	r, err := file.Store().Open(ctx, file.Path())
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", file.Path()).Msg("open failed")
		return nil
	}
	defer func() {
		_ = r.Close()
	}()
	img, _, err := image.Decode(r)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", file.Path()).Msg("image decode failed")
		return nil
	}
	return img
}

// TryGetImageAsync runs TryGetImage in the background. The channel yields
// exactly one value, nil on failure, and is then closed.
func TryGetImageAsync(ctx context.Context, file *estorage.File) <-chan image.Image {
	result := make(chan image.Image, 1)
	go func() {
		defer close(result)
		result <- TryGetImage(ctx, file)
	}()
	return result
}

// ImageConfig reads the format and dimensions without decoding pixels.
func ImageConfig(ctx context.Context, file *estorage.File) (cfg image.Config, format string, ok bool) {
	if file == nil {
		return
	}
	r, err := file.Store().Open(ctx, file.Path())
	if err != nil {
		return
	}
	defer func() {
		_ = r.Close()
	}()
	cfg, format, err = image.DecodeConfig(r)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", file.Path()).Msg("image config failed")
		return image.Config{}, "", false
	}
	return cfg, format, true
}
