//go:build windows

package osfile

import (
	"io/fs"
	"unsafe"

	"github.com/filetug/estorage/pkg/files"
	"golang.org/x/sys/windows"
)

var getFileAttributesEx = windows.GetFileAttributesEx

func getAttributes(path string) (files.AttributeData, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return files.AttributeData{}, &fs.PathError{Op: "GetFileAttributesEx", Path: path, Err: err}
	}
	var raw windows.Win32FileAttributeData
	if err = getFileAttributesEx(name, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&raw))); err != nil {
		return files.AttributeData{}, &fs.PathError{Op: "GetFileAttributesEx", Path: path, Err: err}
	}
	return files.AttributeData{
		FileAttributes: files.Attributes(raw.FileAttributes),
		CreationTime:   fileTime(raw.CreationTime),
		LastAccessTime: fileTime(raw.LastAccessTime),
		LastWriteTime:  fileTime(raw.LastWriteTime),
		FileSizeHigh:   raw.FileSizeHigh,
		FileSizeLow:    raw.FileSizeLow,
	}, nil
}

func fileTime(ft windows.Filetime) files.FileTime {
	return files.FileTime{
		LowDateTime:  ft.LowDateTime,
		HighDateTime: ft.HighDateTime,
	}
}
