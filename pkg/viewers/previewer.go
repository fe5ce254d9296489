package viewers

import (
	"context"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/rivo/tview"
)

// Previewer renders a file in the inspector's preview pane.
type Previewer interface {
	Preview(ctx context.Context, file *estorage.File, queueUpdateDraw func(func()))
	Main() tview.Primitive
}

type Meta struct {
	Groups []*MetaGroup
}

type MetaGroup struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Records []*MetaRecord `json:"records"`
}

type MetaRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	ValueAlign Align
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

func (g *MetaGroup) add(id, title, value string, align Align) {
	g.Records = append(g.Records, &MetaRecord{
		ID:         id,
		Title:      title,
		Value:      value,
		ValueAlign: align,
	})
}
