package core

import (
	"fmt"
	"math"
)

// FormatSize renders a byte count for messages, e.g. 1536 → "1.5 KiB"
func FormatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// ClampSize converts an unsigned byte total for ValidateSpace, saturating at
// math.MaxInt64 instead of wrapping negative
func ClampSize(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}
