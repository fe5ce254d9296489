package estorage

import (
	"context"

	"github.com/filetug/estorage/pkg/files"
	"github.com/rs/zerolog"
)

type File struct {
	storageItem
	displayName string
}

func newFile(store files.Store, p string, data files.AttributeData) *File {
	f := &File{storageItem: newStorageItem(store, p, data)}
	f.displayName = trimExt(f.name)
	return f
}

func (f *File) Kind() Kind { return KindFile }

// DisplayName is the name without its extension.
func (f *File) DisplayName() string { return f.displayName }

// Size returns the current size in bytes, or 0 when it can not be queried.
func (f *File) Size(ctx context.Context) int64 {
	data, ok := f.attributeData(ctx)
	if !ok {
		return 0
	}
	return data.Size()
}

// Delete reports whether the store deleted the file.
func (f *File) Delete(ctx context.Context) bool {
	if err := f.store.Delete(ctx, f.path); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", f.path).Msg("delete file failed")
		return false
	}
	return true
}

// Rename moves the file within its folder and returns f, or nil when the
// store refused. f is left untouched on failure.
func (f *File) Rename(ctx context.Context, newName string) Item {
	if !f.move(ctx, newName) {
		return nil
	}
	f.displayName = trimExt(f.name)
	return f
}
