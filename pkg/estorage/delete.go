package estorage

import (
	"context"

	"github.com/rs/zerolog"
)

// DeleteResult describes the outcome of a recursive delete.
type DeleteResult struct {
	// Deleted counts files and folders removed before the walk stopped.
	Deleted int
	// FailedPath is the entry the walk stopped at, empty on success.
	FailedPath string
	Err        error
}

func (r DeleteResult) OK() bool {
	return r.FailedPath == "" && r.Err == nil
}

// DeleteTree deletes the files of the folder, then each subfolder
// recursively, then the folder itself.
//
// The first failure stops the walk: remaining siblings are not attempted and
// the folder is kept. Nothing already deleted is restored, so a failed
// result may still have a non-zero Deleted count.
func (f *Folder) DeleteTree(ctx context.Context) (result DeleteResult) {
	defer func() {
		if !result.OK() {
			zerolog.Ctx(ctx).Debug().Err(result.Err).
				Str("path", f.path).
				Str("failed", result.FailedPath).
				Int("deleted", result.Deleted).
				Msg("delete tree stopped")
		}
	}()
	f.deleteTree(ctx, &result)
	return result
}

func (f *Folder) deleteTree(ctx context.Context, result *DeleteResult) bool {
	fail := func(p string, err error) bool {
		result.FailedPath = p
		result.Err = err
		return false
	}

	children, err := f.GetItems(ctx)
	if err != nil {
		return fail(f.path, err)
	}

	for _, child := range children {
		if file, ok := child.(*File); ok {
			if err = f.store.Delete(ctx, file.path); err != nil {
				return fail(file.path, err)
			}
			result.Deleted++
		}
	}

	for _, child := range children {
		if folder, ok := child.(*Folder); ok {
			if !folder.deleteTree(ctx, result) {
				return false
			}
		}
	}

	if err = f.store.RemoveDir(ctx, f.path); err != nil {
		return fail(f.path, err)
	}
	result.Deleted++
	return true
}

// Delete removes item whatever its kind. A nil item is never deleted.
func Delete(ctx context.Context, item Item) bool {
	switch v := item.(type) {
	case *File:
		return v != nil && v.Delete(ctx)
	case *Folder:
		return v != nil && v.Delete(ctx)
	default:
		return false
	}
}
