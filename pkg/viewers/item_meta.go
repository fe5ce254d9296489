package viewers

import (
	"context"
	"time"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/fsutils"
)

const timeLayout = "2006-01-02 15:04:05"

// ItemMeta describes a storage item. Times the store could not report are
// shown as a dash.
func ItemMeta(ctx context.Context, item estorage.Item) *Meta {
	if estorage.IsOfType(item, estorage.KindNone) {
		return nil
	}
	main := &MetaGroup{
		ID:    "item",
		Title: item.Kind().String() + ": " + item.Name(),
	}
	main.add("path", "Path", item.Path(), AlignLeft)
	if file, ok := item.(*estorage.File); ok {
		main.add("display_name", "Display name", file.DisplayName(), AlignLeft)
		main.add("size", "Size", fsutils.GetSizeShortText(file.Size(ctx)), AlignRight)
	}
	main.add("attributes", "Attributes", item.Attributes().String(), AlignLeft)

	times := &MetaGroup{
		ID:    "times",
		Title: "Times",
	}
	times.add("created", "Created", formatTime(item.DateCreated()), AlignRight)
	times.add("last_write", "Last write", formatTime(item.LastWriteTime(ctx)), AlignRight)
	times.add("last_access", "Last access", formatTime(item.LastAccessTime(ctx)), AlignRight)

	parent := "-"
	if p := item.Parent(ctx); p != nil {
		parent = p.Path()
	}
	main.add("parent", "Parent", parent, AlignLeft)

	return &Meta{Groups: []*MetaGroup{main, times}}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
