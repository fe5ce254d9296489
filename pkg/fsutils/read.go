package fsutils

import (
	"io"
	"os"
)

// ReadFileData reads the whole file when max is 0, the first max bytes when
// max is positive and the last -max bytes when max is negative.
func ReadFileData(name string, max int) (data []byte, err error) {
	if max == 0 {
		return os.ReadFile(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadData(f, max)
}

// ReadData is ReadFileData for an already opened source. A negative max
// needs r to be an io.Seeker, otherwise the tail is found by reading
// everything.
func ReadData(r io.Reader, max int) ([]byte, error) {
	switch {
	case max == 0:
		return io.ReadAll(r)
	case max > 0:
		return io.ReadAll(io.LimitReader(r, int64(max)))
	}
	limit := int64(-max)
	if seeker, ok := r.(io.Seeker); ok {
		size, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, err
		}
		offset := size - limit
		if offset < 0 {
			offset = 0
		}
		if _, err = seeker.Seek(offset, io.SeekStart); err != nil {
			return nil, err
		}
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		data = data[int64(len(data))-limit:]
	}
	return data, nil
}
