package fsutils

import "strconv"

var sizeUnits = []string{"KB", "MB", "GB", "TB"}

// GetSizeShortText returns a human readable size rounded to the nearest unit.
// TB is the largest unit used.
func GetSizeShortText(size int64) string {
	const unit = 1024
	if size < unit {
		return strconv.FormatInt(size, 10) + "B"
	}
	div := int64(unit)
	exp := 0
	for exp < len(sizeUnits)-1 && (size+div/2)/div >= unit {
		div *= unit
		exp++
	}
	return strconv.FormatInt((size+div/2)/div, 10) + sizeUnits[exp]
}
