// Package inspector is a terminal browser over estorage items.
package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/viewers"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const (
	pageMain    = "main"
	pageConfirm = "confirm"

	previewChildren = "children"
	previewText     = "text"
	previewImage    = "image"
)

const helpText = "Enter open  Backspace/p parent  Del delete  q/Esc quit"

var imageExtensions = map[string]bool{
	".bmp":  true,
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

type Options struct {
	Style    string
	MaxBytes int
}

type Inspector struct {
	ctx context.Context
	app App

	pages    *tview.Pages
	layout   *tview.Flex
	meta     *viewers.MetaTable
	preview  *tview.Pages
	children *tview.List
	text     *viewers.TextPreviewer
	image    *viewers.ImagePreviewer
	status   *tview.TextView

	current estorage.Item
	items   []estorage.Item
}

func New(ctx context.Context, app App, o Options) *Inspector {
	in := &Inspector{
		ctx:      ctx,
		app:      app,
		pages:    tview.NewPages(),
		meta:     viewers.NewMetaTable(),
		preview:  tview.NewPages(),
		children: tview.NewList().ShowSecondaryText(false),
		text:     viewers.NewTextPreviewer(o.Style, o.MaxBytes),
		image:    viewers.NewImagePreviewer(),
		status:   tview.NewTextView().SetDynamicColors(true),
	}
	in.meta.SetBorder(true).SetTitle(" Properties ")
	in.preview.SetBorder(true)
	in.children.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		in.Open(index)
	})

	in.preview.AddPage(previewChildren, in.children, true, true)
	in.preview.AddPage(previewText, in.text.Main(), true, false)
	in.preview.AddPage(previewImage, in.image.Main(), true, false)

	body := tview.NewFlex().
		AddItem(in.meta, 0, 1, false).
		AddItem(in.preview, 0, 2, true)
	in.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(in.status, 1, 0, false)
	in.layout.SetInputCapture(in.handleKey)

	in.pages.AddPage(pageMain, in.layout, true, true)
	in.setStatus(helpText)
	return in
}

// Run shows item and blocks until the user quits.
func Run(ctx context.Context, item estorage.Item, o Options) error {
	app := NewApp(tview.NewApplication())
	in := New(ctx, app, o)
	app.SetRoot(in.Root(), true)
	app.EnableMouse(true)
	in.Show(item)
	return app.Run()
}

func (in *Inspector) Root() tview.Primitive {
	return in.pages
}

func (in *Inspector) Current() estorage.Item {
	return in.current
}

// Show replaces the screen content with item.
func (in *Inspector) Show(item estorage.Item) {
	if estorage.IsOfType(item, estorage.KindNone) {
		return
	}
	in.current = item
	in.items = nil
	in.meta.SetMeta(viewers.ItemMeta(in.ctx, item))
	in.preview.SetTitle(" " + tview.Escape(item.Path()) + " ")

	switch v := item.(type) {
	case *estorage.Folder:
		in.showFolder(v)
	case *estorage.File:
		in.showFile(v)
	}
}

func (in *Inspector) showFolder(folder *estorage.Folder) {
	in.children.Clear()
	items, err := folder.GetItems(in.ctx)
	if err != nil {
		zerolog.Ctx(in.ctx).Debug().Err(err).Str("path", folder.Path()).Msg("listing failed")
		in.setError(fmt.Sprintf("failed to list %s", folder.Path()))
	} else {
		in.setStatus(helpText)
	}
	in.items = items
	for _, item := range items {
		name := item.Name()
		if item.Kind() == estorage.KindFolder {
			name += "/"
		}
		in.children.AddItem(tview.Escape(name), "", 0, nil)
	}
	in.preview.SwitchToPage(previewChildren)
	in.app.SetFocus(in.children)
}

func (in *Inspector) showFile(file *estorage.File) {
	in.setStatus(helpText)
	ext := strings.ToLower(filepath.Ext(file.Name()))
	if imageExtensions[ext] {
		in.preview.SwitchToPage(previewImage)
		in.image.Preview(in.ctx, file, in.app.QueueUpdateDraw)
		in.app.SetFocus(in.image.Main())
		return
	}
	in.preview.SwitchToPage(previewText)
	in.text.Preview(in.ctx, file, in.app.QueueUpdateDraw)
	in.app.SetFocus(in.text.Main())
}

// Open shows the child at index of the current folder.
func (in *Inspector) Open(index int) {
	if index < 0 || index >= len(in.items) {
		return
	}
	in.Show(in.items[index])
}

// Up shows the parent of the current item. At the root it does nothing.
func (in *Inspector) Up() {
	if in.current == nil {
		return
	}
	parent := in.current.Parent(in.ctx)
	if parent == nil {
		in.setError("no parent folder")
		return
	}
	in.Show(parent)
}

func (in *Inspector) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		in.app.Stop()
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		in.Up()
		return nil
	case tcell.KeyDelete:
		in.confirmDelete()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			in.app.Stop()
			return nil
		case 'p':
			in.Up()
			return nil
		}
	}
	return event
}

func (in *Inspector) confirmDelete() {
	if in.current == nil || in.pages.HasPage(pageConfirm) {
		return
	}
	text := fmt.Sprintf("Delete %s %s?", in.current.Kind(), in.current.Path())
	if in.current.Kind() == estorage.KindFolder {
		text += "\nEverything inside it is deleted too."
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			in.closeConfirm()
			if label == "Delete" {
				in.deleteCurrent()
			}
		})
	in.pages.AddPage(pageConfirm, modal, false, true)
	in.app.SetFocus(modal)
}

func (in *Inspector) closeConfirm() {
	in.pages.RemovePage(pageConfirm)
	in.app.SetFocus(in.layout)
}

// deleteCurrent removes the current item and moves to its parent. The app
// stops when there is no parent left to show.
func (in *Inspector) deleteCurrent() {
	item := in.current
	if item == nil {
		return
	}
	parent := item.Parent(in.ctx)

	if folder, ok := item.(*estorage.Folder); ok {
		result := folder.DeleteTree(in.ctx)
		if !result.OK() {
			in.setError(fmt.Sprintf("deleted %d, failed at %s", result.Deleted, result.FailedPath))
			in.refresh()
			return
		}
	} else if !item.Delete(in.ctx) {
		in.setError(fmt.Sprintf("failed to delete %s", item.Path()))
		return
	}

	if parent == nil {
		in.app.Stop()
		return
	}
	in.Show(parent)
	in.setStatus(fmt.Sprintf("deleted %s", tview.Escape(item.Path())))
}

// refresh lists the current folder again after a partial delete.
func (in *Inspector) refresh() {
	folder, ok := in.current.(*estorage.Folder)
	if !ok {
		return
	}
	status := in.status.GetText(false)
	in.Show(folder)
	in.status.SetText(status)
}

func (in *Inspector) setStatus(text string) {
	in.status.SetTextColor(tview.Styles.SecondaryTextColor)
	in.status.SetText(text)
}

func (in *Inspector) setError(text string) {
	in.status.SetTextColor(tcell.ColorRed)
	in.status.SetText(tview.Escape(text))
}
