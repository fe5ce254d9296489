//go:build !linux && !windows

package osfile

import (
	"github.com/filetug/estorage/pkg/files"
)

func getAttributes(path string) (files.AttributeData, error) {
	return statAttributes(path)
}
