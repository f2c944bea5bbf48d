package storage

import "fmt"

// GB is the largest unit; anything bigger renders as a large GB value.
var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count as a human-readable string using binary
// units: "0 B", "512.00 B", "1.50 KB", "2.35 MB".
func FormatSize(size int64) string {
	if size == 0 {
		return "0 B"
	}

	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}
