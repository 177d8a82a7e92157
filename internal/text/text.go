// Package text converts between UTF-8 Go strings and the UTF-16 code-unit
// offsets used by the language server protocol.
package text

import (
	"strings"
	"unicode/utf8"
)

// UTF16Len returns the number of UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += unitCount(r)
	}
	return n
}

// ByteOffset converts a UTF-16 offset within s to a byte offset.
// It reports false when the offset is past the end of s or lands in the
// middle of a surrogate pair.
func ByteOffset(s string, character int) (int, bool) {
	if character < 0 {
		return 0, false
	}
	units := 0
	for i, r := range s {
		if units == character {
			return i, true
		}
		units += unitCount(r)
		if units > character {
			return 0, false
		}
	}
	if units == character {
		return len(s), true
	}
	return 0, false
}

// SplitLines splits s on "\n" and "\r\n". The result always holds at
// least one element and never contains line break characters.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

func unitCount(r rune) int {
	if r == utf8.RuneError || r <= 0xFFFF {
		return 1
	}
	return 2
}
