// Package estorage models files and folders reachable through a files.Store
// as storage items that can be deleted, renamed and queried for metadata.
//
// Every operation collapses failures into a nil, false or zero result. The
// underlying error is logged at debug level through the zerolog logger found
// in the context, if any.
package estorage

import (
	"context"
	"time"

	"github.com/filetug/estorage/pkg/files"
	"github.com/rs/zerolog"
)

type Kind int

const (
	KindNone Kind = iota
	KindFile
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Item is implemented by *File and *Folder only.
type Item interface {
	Kind() Kind
	Name() string
	Path() string
	Attributes() files.Attributes
	DateCreated() time.Time
	Store() files.Store

	Delete(ctx context.Context) bool
	Rename(ctx context.Context, newName string) Item
	LastWriteTime(ctx context.Context) time.Time
	LastAccessTime(ctx context.Context) time.Time
	Parent(ctx context.Context) *Folder

	base() *storageItem
}

var (
	_ Item = (*File)(nil)
	_ Item = (*Folder)(nil)
)

// IsOfType reports whether item is of the given kind. KindNone matches a nil
// item, including a nil *File or *Folder.
func IsOfType(item Item, kind Kind) bool {
	switch v := item.(type) {
	case nil:
		return kind == KindNone
	case *File:
		if v == nil {
			return kind == KindNone
		}
		return kind == KindFile
	case *Folder:
		if v == nil {
			return kind == KindNone
		}
		return kind == KindFolder
	default:
		return false
	}
}

// storageItem holds what files and folders have in common. Its fields may go
// stale: nothing keeps them in sync with the store after construction.
type storageItem struct {
	store       files.Store
	name        string
	path        string
	attributes  files.Attributes
	dateCreated time.Time
}

func newStorageItem(store files.Store, p string, data files.AttributeData) storageItem {
	return storageItem{
		store:       store,
		name:        baseName(store, p),
		path:        p,
		attributes:  data.FileAttributes,
		dateCreated: data.CreationTime.Time(),
	}
}

func (i *storageItem) base() *storageItem { return i }

func (i *storageItem) Name() string                 { return i.name }
func (i *storageItem) Path() string                 { return i.path }
func (i *storageItem) Attributes() files.Attributes { return i.attributes }
func (i *storageItem) DateCreated() time.Time       { return i.dateCreated }
func (i *storageItem) Store() files.Store           { return i.store }

func (i *storageItem) String() string { return i.path }

// LastWriteTime returns the zero time when the attribute query fails.
func (i *storageItem) LastWriteTime(ctx context.Context) time.Time {
	data, ok := i.attributeData(ctx)
	if !ok {
		return time.Time{}
	}
	return data.LastWriteTime.Time()
}

// LastAccessTime returns the zero time when the attribute query fails.
func (i *storageItem) LastAccessTime(ctx context.Context) time.Time {
	data, ok := i.attributeData(ctx)
	if !ok {
		return time.Time{}
	}
	return data.LastAccessTime.Time()
}

func (i *storageItem) attributeData(ctx context.Context) (files.AttributeData, bool) {
	data, err := i.store.Attributes(ctx, i.path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", i.path).Msg("attribute query failed")
		return files.AttributeData{}, false
	}
	return data, true
}

// Parent returns nil at the root of the store or when the parent can not
// be resolved.
func (i *storageItem) Parent(ctx context.Context) *Folder {
	parentPath, ok := parentDir(i.store, i.path)
	if !ok {
		return nil
	}
	folder, err := GetFolderFromPath(ctx, i.store, parentPath)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", parentPath).Msg("parent lookup failed")
		return nil
	}
	return folder
}

// move renames the entry in the store and updates path and name on success.
// newName must be a plain name, the item never leaves its folder.
func (i *storageItem) move(ctx context.Context, newName string) bool {
	if err := checkName(newName); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", i.path).Msg("rename refused")
		return false
	}
	parentPath, _ := parentDir(i.store, i.path)
	newPath := joinPath(i.store, parentPath, newName)
	if err := i.store.Move(ctx, i.path, newPath); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).
			Str("from", i.path).
			Str("to", newPath).
			Msg("rename failed")
		return false
	}
	i.path = newPath
	i.name = baseName(i.store, newName)
	return true
}
