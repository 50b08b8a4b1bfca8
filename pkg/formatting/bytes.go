// Package formatting parses and renders the byte sizes used for upload
// limits.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Sizes are binary: 1 KB is 1024 bytes. IEC spellings (KiB, MiB, GiB)
// are accepted as aliases.
var units = []string{"B", "KB", "MB", "GB", "TB"}

var aliases = map[string]string{
	"":    "B",
	"K":   "KB",
	"M":   "MB",
	"G":   "GB",
	"T":   "TB",
	"KIB": "KB",
	"MIB": "MB",
	"GIB": "GB",
	"TIB": "TB",
}

// FormatBytes renders n with the largest unit that keeps the value at or
// above one. Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}

	if i == 0 {
		precision = 0
	}
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses sizes such as "50MB", "1.5 GiB", or "2048". Unit
// matching is case-insensitive and a bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	num, unit := s, ""
	if split >= 0 {
		num, unit = s[:split], strings.TrimSpace(s[split:])
	}
	if num == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	unit = strings.ToUpper(unit)
	if canonical, ok := aliases[unit]; ok {
		unit = canonical
	}

	for i, u := range units {
		if u == unit {
			return int64(value * math.Pow(1024, float64(i))), nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", unit)
}
