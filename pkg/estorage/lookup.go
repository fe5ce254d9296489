package estorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/filetug/estorage/pkg/files"
)

var (
	ErrNotAFile   = errors.New("not a file")
	ErrNotAFolder = errors.New("not a folder")
)

// GetFromPath resolves p to a *File or *Folder with a single attribute query.
func GetFromPath(ctx context.Context, store files.Store, p string) (Item, error) {
	data, err := store.Attributes(ctx, p)
	if err != nil {
		return nil, err
	}
	if data.FileAttributes.IsDir() {
		return newFolder(store, p, data), nil
	}
	return newFile(store, p, data), nil
}

func GetFileFromPath(ctx context.Context, store files.Store, p string) (*File, error) {
	item, err := GetFromPath(ctx, store, p)
	if err != nil {
		return nil, err
	}
	file, ok := item.(*File)
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, ErrNotAFile)
	}
	return file, nil
}

func GetFolderFromPath(ctx context.Context, store files.Store, p string) (*Folder, error) {
	item, err := GetFromPath(ctx, store, p)
	if err != nil {
		return nil, err
	}
	folder, ok := item.(*Folder)
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, ErrNotAFolder)
	}
	return folder, nil
}
