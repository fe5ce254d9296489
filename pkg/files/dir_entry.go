package files

import (
	"os"
	"path"
	"strings"
	"time"
)

type FileInfoOption func(*FileInfo)

// NewDirEntry creates a synthetic entry for stores that do not produce
// os.DirEntry values themselves.
func NewDirEntry(name string, isDir bool, o ...FileInfoOption) DirEntry {
	return newDirEntry(name, isDir, false, o...)
}

// A backslash is a valid name character on Unix and FTP servers, only the
// slash separates paths here.
func newDirEntry(name string, isDir, link bool, o ...FileInfoOption) DirEntry {
	if strings.Contains(name, "/") {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	entry := DirEntry{
		name:  name,
		isDir: isDir,
		link:  link,
	}
	if len(o) > 0 {
		entry.info = NewFileInfo(entry, o...)
	}
	return entry
}

// NewDirEntryFromAttributes builds an entry whose Info carries the attribute
// data as Sys(). A reparse point is reported as fs.ModeSymlink by Type.
func NewDirEntryFromAttributes(name string, data AttributeData) DirEntry {
	name = path.Base(strings.TrimSuffix(name, "/"))
	return newDirEntry(name, data.FileAttributes.IsDir(), data.FileAttributes.IsLink(),
		Size(data.Size()),
		ModTime(data.LastWriteTime.Time()),
		Sys(data),
	)
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	name  string
	isDir bool
	link  bool
	info  *FileInfo
}

func (d DirEntry) Name() string { return d.name }
func (d DirEntry) IsDir() bool  { return d.isDir }
func (d DirEntry) Type() os.FileMode {
	if d.link {
		return os.ModeSymlink
	}
	if d.isDir {
		return os.ModeDir
	}
	return 0
}
func (d DirEntry) Info() (os.FileInfo, error) {
	if d.info == nil {
		return nil, nil
	}
	return d.info, nil
}

var _ os.FileInfo = (*FileInfo)(nil)

type FileInfo struct {
	DirEntry
	size    int64
	modTime time.Time
	sys     any
}

func NewFileInfo(entry DirEntry, o ...FileInfoOption) (info *FileInfo) {
	info = &FileInfo{
		DirEntry: entry,
	}
	for _, opt := range o {
		opt(info)
	}
	return
}

func Size(v int64) FileInfoOption {
	return func(info *FileInfo) {
		info.size = v
	}
}

func ModTime(v time.Time) FileInfoOption {
	return func(info *FileInfo) {
		info.modTime = v
	}
}

func Sys(v any) FileInfoOption {
	return func(info *FileInfo) {
		info.sys = v
	}
}

func (f *FileInfo) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}
func (f *FileInfo) Size() int64 {
	if f == nil {
		return 0
	}
	return f.size
}
func (f *FileInfo) Mode() os.FileMode {
	if f == nil {
		return 0
	}
	return f.Type()
}
func (f *FileInfo) ModTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.modTime
}
func (f *FileInfo) IsDir() bool {
	if f == nil {
		return false
	}
	return f.isDir
}
func (f *FileInfo) Sys() any {
	if f == nil {
		return nil
	}
	return f.sys
}
