package files

import (
	"io/fs"
	"strings"
	"time"
)

// Attributes is a bitset of entry flags using the Win32 FILE_ATTRIBUTE_* values.
type Attributes uint32

const (
	AttrReadOnly  Attributes = 0x1
	AttrHidden    Attributes = 0x2
	AttrSystem    Attributes = 0x4
	AttrDirectory Attributes = 0x10
	AttrArchive   Attributes = 0x20
	AttrNormal    Attributes = 0x80
	// AttrReparsePoint marks symbolic links and other reparse points.
	AttrReparsePoint Attributes = 0x400
)

var attributeNames = []struct {
	attr Attributes
	name string
}{
	{AttrReadOnly, "ReadOnly"},
	{AttrHidden, "Hidden"},
	{AttrSystem, "System"},
	{AttrDirectory, "Directory"},
	{AttrArchive, "Archive"},
	{AttrNormal, "Normal"},
	{AttrReparsePoint, "ReparsePoint"},
}

func (a Attributes) Has(flag Attributes) bool {
	return a&flag == flag
}

func (a Attributes) IsDir() bool {
	return a.Has(AttrDirectory)
}

func (a Attributes) IsLink() bool {
	return a.Has(AttrReparsePoint)
}

func (a Attributes) String() string {
	if a == 0 {
		return "None"
	}
	var names []string
	for _, n := range attributeNames {
		if a.Has(n.attr) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// AttributesFromMode maps a unix style mode and base name to an attribute set.
func AttributesFromMode(name string, mode fs.FileMode) (a Attributes) {
	if mode.IsDir() {
		a |= AttrDirectory
	}
	if mode&fs.ModeSymlink != 0 {
		a |= AttrReparsePoint
	}
	if mode.Perm()&0o200 == 0 {
		a |= AttrReadOnly
	}
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		a |= AttrHidden
	}
	if a == 0 {
		a = AttrNormal
	}
	return a
}

// AttributeDataFromFileInfo maps an fs.FileInfo. Info built by
// NewDirEntryFromAttributes returns its attribute data as is. Otherwise the
// modification time stands in for creation and access time.
func AttributeDataFromFileInfo(info fs.FileInfo) AttributeData {
	if data, ok := info.Sys().(AttributeData); ok {
		return data
	}
	modTime := NewFileTime(info.ModTime())
	data := AttributeData{
		FileAttributes: AttributesFromMode(info.Name(), info.Mode()),
		CreationTime:   modTime,
		LastAccessTime: modTime,
		LastWriteTime:  modTime,
	}
	if !info.IsDir() {
		data.SetSize(info.Size())
	}
	return data
}

// fileTimeEpochDelta is the number of seconds between 1601-01-01 and 1970-01-01.
const fileTimeEpochDelta = 11644473600

const ticksPerSecond = 10_000_000

// FileTime is a timestamp split into two 32-bit words. Together they count
// 100ns ticks since 1601-01-01 UTC.
type FileTime struct {
	LowDateTime  uint32
	HighDateTime uint32
}

func (ft FileTime) Ticks() int64 {
	return int64(ft.HighDateTime)<<32 | int64(ft.LowDateTime)
}

func (ft FileTime) IsZero() bool {
	return ft.LowDateTime == 0 && ft.HighDateTime == 0
}

// Time converts to UTC. The zero FileTime converts to the zero time.Time.
func (ft FileTime) Time() time.Time {
	if ft.IsZero() {
		return time.Time{}
	}
	ticks := ft.Ticks()
	sec := ticks/ticksPerSecond - fileTimeEpochDelta
	nsec := (ticks % ticksPerSecond) * 100
	return time.Unix(sec, nsec).UTC()
}

func NewFileTime(t time.Time) FileTime {
	if t.IsZero() {
		return FileTime{}
	}
	ticks := (t.Unix()+fileTimeEpochDelta)*ticksPerSecond + int64(t.Nanosecond())/100
	if ticks <= 0 {
		return FileTime{}
	}
	return FileTime{
		LowDateTime:  uint32(ticks),
		HighDateTime: uint32(ticks >> 32),
	}
}

// AttributeData is the result of an attribute query.
type AttributeData struct {
	FileAttributes Attributes
	CreationTime   FileTime
	LastAccessTime FileTime
	LastWriteTime  FileTime
	FileSizeHigh   uint32
	FileSizeLow    uint32
}

func (d AttributeData) Size() int64 {
	return int64(d.FileSizeHigh)<<32 | int64(d.FileSizeLow)
}

func (d *AttributeData) SetSize(size int64) {
	d.FileSizeHigh = uint32(size >> 32)
	d.FileSizeLow = uint32(size)
}
