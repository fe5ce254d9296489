//go:build linux

package osfile

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/filetug/estorage/pkg/files"
	"golang.org/x/sys/unix"
)

var unixStatx = unix.Statx

func getAttributes(path string) (files.AttributeData, error) {
	var stx unix.Statx_t
	mask := unix.STATX_BASIC_STATS | unix.STATX_BTIME
	if err := unixStatx(unix.AT_FDCWD, path, 0, mask, &stx); err != nil {
		if errors.Is(err, unix.ENOSYS) {
			return statAttributes(path)
		}
		return files.AttributeData{}, &fs.PathError{Op: "statx", Path: path, Err: err}
	}
	mode := fileModeFromUnix(uint32(stx.Mode))
	data := files.AttributeData{
		FileAttributes: files.AttributesFromMode(filepath.Base(path), mode),
		LastAccessTime: files.NewFileTime(statxTime(stx.Atime)),
		LastWriteTime:  files.NewFileTime(statxTime(stx.Mtime)),
	}
	// Birth time is missing on some filesystems, fall back to change time.
	if stx.Mask&unix.STATX_BTIME != 0 {
		data.CreationTime = files.NewFileTime(statxTime(stx.Btime))
	} else {
		data.CreationTime = files.NewFileTime(statxTime(stx.Ctime))
	}
	if !mode.IsDir() {
		data.SetSize(int64(stx.Size))
	}
	return data, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

func fileModeFromUnix(m uint32) fs.FileMode {
	mode := fs.FileMode(m & 0o777)
	switch m & unix.S_IFMT {
	case unix.S_IFDIR:
		mode |= fs.ModeDir
	case unix.S_IFLNK:
		mode |= fs.ModeSymlink
	case unix.S_IFIFO:
		mode |= fs.ModeNamedPipe
	case unix.S_IFSOCK:
		mode |= fs.ModeSocket
	case unix.S_IFCHR:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFBLK:
		mode |= fs.ModeDevice
	}
	return mode
}
