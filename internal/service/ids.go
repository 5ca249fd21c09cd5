// Package service implements the operations the HTTP tier dispatches
// to: event-layout submission and the layout view compositor. The
// repositories it drives are injected as small interfaces so the logic
// is testable against in-memory fakes.
package service

import (
	"fmt"
	"strconv"
)

// Identifiers are opaque integers at rest. The "layout_<n>" /
// "section_<n>" / "row_<n>" / "seat_<n>" string forms are purely a
// presentation convention, so prefixing and stripping both live here
// and nowhere else.

// LayoutKey formats a layout id for the wire.
func LayoutKey(id uint64) string { return fmt.Sprintf("layout_%d", id) }

// SectionKey formats a section id for the wire.
func SectionKey(id uint64) string { return fmt.Sprintf("section_%d", id) }

// RowKey formats a row id for the wire.
func RowKey(id uint64) string { return fmt.Sprintf("row_%d", id) }

// SeatKey formats a seat id for the wire. The same form keys the
// compositor's status map.
func SeatKey(id uint64) string { return fmt.Sprintf("seat_%d", id) }

// ExtractNumericID normalizes an externally supplied identifier to its
// numeric form. Raw JSON numbers and numeric strings pass through;
// prefixed strings like "section_42" yield their first digit run.
// Anything without digits reports false.
func ExtractNumericID(v interface{}) (uint64, bool) {
	switch t := v.(type) {
	case uint64:
		return t, true
	case int:
		if t < 0 {
			return 0, false
		}
		return uint64(t), true
	case int64:
		if t < 0 {
			return 0, false
		}
		return uint64(t), true
	case float64:
		if t < 0 {
			return 0, false
		}
		return uint64(t), true
	case string:
		return firstDigitRun(t)
	}
	return 0, false
}

// firstDigitRun extracts the first contiguous run of ASCII digits.
func firstDigitRun(s string) (uint64, bool) {
	start, end := -1, -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
		} else if start >= 0 {
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(s[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
