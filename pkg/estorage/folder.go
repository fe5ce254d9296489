package estorage

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/filetug/estorage/pkg/files"
	"github.com/rs/zerolog"
)

type Folder struct {
	storageItem
}

func newFolder(store files.Store, p string, data files.AttributeData) *Folder {
	return &Folder{storageItem: newStorageItem(store, p, data)}
}

func (f *Folder) Kind() Kind { return KindFolder }

// GetItems lists the children of the folder sorted by name. Entries that
// vanish between listing and lookup are skipped. Symbolic links are never
// followed: a link, dangling or not, is listed as a *File carrying
// files.AttrReparsePoint.
func (f *Folder) GetItems(ctx context.Context) ([]Item, error) {
	entries, err := f.store.ReadDir(ctx, f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", f.path, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		childPath := joinPath(f.store, f.path, entry.Name())
		var item Item
		if entry.Type()&fs.ModeSymlink != 0 {
			item, err = linkFromEntry(f.store, childPath, entry)
		} else {
			item, err = GetFromPath(ctx, f.store, childPath)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			zerolog.Ctx(ctx).Debug().Err(err).Str("path", childPath).Msg("skipping child")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func linkFromEntry(store files.Store, p string, entry fs.DirEntry) (*File, error) {
	info, err := entry.Info()
	if err != nil {
		return nil, err
	}
	var data files.AttributeData
	if info != nil {
		data = files.AttributeDataFromFileInfo(info)
	}
	data.FileAttributes = data.FileAttributes&^(files.AttrDirectory|files.AttrNormal) | files.AttrReparsePoint
	return newFile(store, p, data), nil
}

func (f *Folder) GetFiles(ctx context.Context) ([]*File, error) {
	items, err := f.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	var result []*File
	for _, item := range items {
		if file, ok := item.(*File); ok {
			result = append(result, file)
		}
	}
	return result, nil
}

func (f *Folder) GetFolders(ctx context.Context) ([]*Folder, error) {
	items, err := f.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	var result []*Folder
	for _, item := range items {
		if folder, ok := item.(*Folder); ok {
			result = append(result, folder)
		}
	}
	return result, nil
}

// CreateFile creates an empty file named name inside the folder.
func (f *Folder) CreateFile(ctx context.Context, name string) (*File, error) {
	p := joinPath(f.store, f.path, name)
	if err := f.store.CreateFile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", p, err)
	}
	return GetFileFromPath(ctx, f.store, p)
}

// CreateFolder creates an empty folder named name inside the folder.
func (f *Folder) CreateFolder(ctx context.Context, name string) (*Folder, error) {
	p := joinPath(f.store, f.path, name)
	if err := f.store.CreateDir(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", p, err)
	}
	return GetFolderFromPath(ctx, f.store, p)
}

// Delete removes the folder and everything below it. See DeleteTree.
func (f *Folder) Delete(ctx context.Context) bool {
	return f.DeleteTree(ctx).OK()
}

// Rename moves the folder within its parent and returns f, or nil when the
// store refused.
func (f *Folder) Rename(ctx context.Context, newName string) Item {
	if !f.move(ctx, newName) {
		return nil
	}
	return f
}
