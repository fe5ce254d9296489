package viewers

import (
	"context"
	"strconv"
	"strings"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/filereader"
	"github.com/rivo/tview"
)

var _ Previewer = (*ImagePreviewer)(nil)

type ImagePreviewer struct {
	metaTable *MetaTable
}

func NewImagePreviewer() *ImagePreviewer {
	previewer := &ImagePreviewer{
		metaTable: NewMetaTable(),
	}
	previewer.metaTable.SetSelectable(true, true)
	return previewer
}

func (p *ImagePreviewer) Preview(ctx context.Context, file *estorage.File, queueUpdateDraw func(func())) {
	go func() {
		meta := GetImageMeta(ctx, file)
		queueUpdateDraw(func() {
			p.metaTable.SetMeta(meta)
		})
	}()
}

func (p *ImagePreviewer) Main() tview.Primitive {
	return p.metaTable
}

// GetImageMeta returns the format and dimensions of an image file, or nil
// when the file is not a decodable image.
func GetImageMeta(ctx context.Context, file *estorage.File) *Meta {
	cfg, format, ok := filereader.ImageConfig(ctx, file)
	if !ok {
		return nil
	}
	main := &MetaGroup{
		ID:    "image",
		Title: "Format: " + strings.ToUpper(format),
	}
	main.add("width", "Width", strconv.Itoa(cfg.Width), AlignRight)
	main.add("height", "Height", strconv.Itoa(cfg.Height), AlignRight)
	return &Meta{Groups: []*MetaGroup{main}}
}
